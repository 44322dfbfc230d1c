package shipments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brickshare-es/brickshare-backend/internal/mailer"
	"github.com/brickshare-es/brickshare-backend/pkg/correos"
	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	"github.com/brickshare-es/brickshare-backend/pkg/enums"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

const (
	returnPickupProvider = "Correos (Sin Etiqueta)"
	fallbackContactName  = "Cliente Brickshare"
	fallbackContactEmail = "info@brickshare.es"
	fallbackContactPhone = "000000000"
	defaultPudoName      = "Oficina de Correos"
)

// warehouseSender is the origin for outbound parcels.
var warehouseSender = correos.Party{
	Nombre:    "Brickshare Almacén",
	Direccion: "Avinguda Josep Tarradellas 97, 5",
	CP:        "08029",
	Poblacion: "Barcelona",
	Provincia: "Barcelona",
}

// officeRecipient receives returned sets.
var officeRecipient = correos.Party{
	Nombre:    "Brickshare Oficinas",
	Direccion: "Avinguda Josep Tarradellas 97, 5",
	CP:        "08029",
	Poblacion: "Barcelona",
	Provincia: "Barcelona",
}

// Preregister announces the outbound parcel to Correos, stores the carrier
// labeling code and moves the shipment to asignado.
func (s *service) Preregister(ctx context.Context, role enums.UserRole, id uuid.UUID) (*ShipmentDTO, error) {
	shipment, err := s.loadForCarrier(ctx, role, id)
	if err != nil {
		return nil, err
	}

	code, err := s.carrier.Preregister(ctx, correos.PreregisterRequest{
		Referencia:   shipment.ID.String(),
		Remitente:    warehouseSender,
		Destinatario: recipientParty(shipment),
	})
	if err != nil {
		return nil, err
	}

	updates := map[string]any{
		"correos_shipment_id": code,
		"estado_envio":        enums.ShipmentStatusAsignado,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store carrier registration")
	}
	return s.reload(ctx, id)
}

// RequestReturn preregisters the return leg with the label-free service and
// mails the drop-off code to the subscriber. The parcel originates at the
// user's selected pickup point when one exists, otherwise at the delivery
// address.
func (s *service) RequestReturn(ctx context.Context, role enums.UserRole, id uuid.UUID) (*ShipmentDTO, error) {
	shipment, err := s.loadForCarrier(ctx, role, id)
	if err != nil {
		return nil, err
	}

	// A missing or unreadable selection falls back to the delivery address.
	var pudo *models.PudoPoint
	if s.pudo != nil {
		pudo, _ = s.pudo.Get(ctx, shipment.UserID)
	}

	sender := recipientParty(shipment)
	if pudo != nil {
		sender.Direccion = pudo.CorreosDireccionCompleta
		sender.CP = pudo.CorreosCodigoPostal
		sender.Poblacion = pudo.CorreosCiudad
		sender.Provincia = pudo.CorreosProvincia
	}

	code, err := s.carrier.Preregister(ctx, correos.PreregisterRequest{
		Referencia:   "RET-" + shipment.ID.String()[:8],
		Remitente:    sender,
		Destinatario: officeRecipient,
		LabelFree:    true,
	})
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	updates := map[string]any{
		"numero_seguimiento":         code,
		"estado_envio":               enums.ShipmentStatusDevolucionSolicitada,
		"fecha_solicitud_devolucion": now,
		"proveedor_recogida":         returnPickupProvider,
	}
	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store return registration")
	}

	s.sendReturnEmail(ctx, shipment, pudo, code)

	return s.reload(ctx, id)
}

// FetchLabel retrieves the PDF label for a preregistered shipment.
func (s *service) FetchLabel(ctx context.Context, role enums.UserRole, id uuid.UUID) ([]byte, error) {
	shipment, err := s.loadForCarrier(ctx, role, id)
	if err != nil {
		return nil, err
	}
	if shipment.CorreosShipmentID == nil || *shipment.CorreosShipmentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipment has no carrier registration")
	}
	return s.carrier.RequestLabel(ctx, *shipment.CorreosShipmentID)
}

// RequestPickup schedules a courier collection at the delivery address and
// stores the carrier request code.
func (s *service) RequestPickup(ctx context.Context, role enums.UserRole, id uuid.UUID) (*ShipmentDTO, error) {
	shipment, err := s.loadForCarrier(ctx, role, id)
	if err != nil {
		return nil, err
	}

	req := correos.PickupRequest{
		Address:      shipment.DireccionEnvio,
		Locality:     shipment.CiudadEnvio,
		Province:     shipment.CiudadEnvio,
		PostalCode:   shipment.CodigoPostalEnvio,
		ContactName:  fallbackContactName,
		ContactEmail: fallbackContactEmail,
		ContactPhone: fallbackContactPhone,
	}
	if shipment.User != nil {
		if shipment.User.FullName != nil && *shipment.User.FullName != "" {
			req.ContactName = *shipment.User.FullName
		}
		if shipment.User.Email != "" {
			req.ContactEmail = shipment.User.Email
		}
		if shipment.User.Phone != nil && *shipment.User.Phone != "" {
			req.ContactPhone = *shipment.User.Phone
		}
	}

	code, err := s.carrier.RequestPickup(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, map[string]any{"pickup_id": code}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store pickup request")
	}
	return s.reload(ctx, id)
}

// Track pulls the carrier events for a shipment and stamps the poll time.
func (s *service) Track(ctx context.Context, role enums.UserRole, id uuid.UUID) (json.RawMessage, error) {
	shipment, err := s.loadForCarrier(ctx, role, id)
	if err != nil {
		return nil, err
	}
	if shipment.CorreosShipmentID == nil || *shipment.CorreosShipmentID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipment has no carrier registration")
	}

	events, err := s.carrier.Track(ctx, *shipment.CorreosShipmentID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, id, map[string]any{"last_tracking_update": time.Now().UTC()}); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "stamp tracking update")
	}
	return events, nil
}

// loadForCarrier runs the shared role gate and loads the shipment for a
// carrier operation.
func (s *service) loadForCarrier(ctx context.Context, role enums.UserRole, id uuid.UUID) (*models.Shipment, error) {
	if !role.CanManageLogistics() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "shipment access is restricted to logistics staff")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipment id is required")
	}
	if s.carrier == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "carrier integration is not configured")
	}

	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}
	return shipment, nil
}

func (s *service) reload(ctx context.Context, id uuid.UUID) (*ShipmentDTO, error) {
	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload shipment")
	}
	dto := toDTO(*shipment)
	return &dto, nil
}

func recipientParty(shipment *models.Shipment) correos.Party {
	party := correos.Party{
		Nombre:    fallbackContactName,
		Direccion: shipment.DireccionEnvio,
		CP:        shipment.CodigoPostalEnvio,
		Poblacion: shipment.CiudadEnvio,
		Provincia: shipment.CiudadEnvio,
	}
	if shipment.User != nil {
		if shipment.User.FullName != nil && *shipment.User.FullName != "" {
			party.Nombre = *shipment.User.FullName
		}
		party.Email = shipment.User.Email
		if shipment.User.Phone != nil {
			party.Telefono = *shipment.User.Phone
		}
	}
	return party
}

// sendReturnEmail mails the drop-off code. Delivery is best effort; a failed
// send never blocks the return.
func (s *service) sendReturnEmail(ctx context.Context, shipment *models.Shipment, pudo *models.PudoPoint, code string) {
	if s.mailer == nil || shipment.User == nil || shipment.User.Email == "" {
		return
	}

	name := fallbackContactName
	if shipment.User.FullName != nil && *shipment.User.FullName != "" {
		name = *shipment.User.FullName
	}
	office := defaultPudoName
	if pudo != nil && pudo.CorreosNombre != "" {
		office = pudo.CorreosNombre
	}

	_, _ = s.mailer.Send(ctx, mailer.SendInput{
		To:      shipment.User.Email,
		Subject: "Tu código de devolución Brickshare",
		HTML:    returnEmailHTML(name, office, code),
		Text:    fmt.Sprintf("Código de devolución: %s. Llévalo a %s; no necesitas imprimir nada.", code, office),
	})
}

func returnEmailHTML(name, office, code string) string {
	return fmt.Sprintf(`
		<div style="font-family: sans-serif; max-width: 600px; margin: auto;">
			<h2>¡Hola %s!</h2>
			<p>Has solicitado la devolución de tu set de LEGO. Hemos activado el servicio <strong>"Etiqueta sin Etiqueta"</strong> para tu comodidad.</p>
			<div style="background: #fdf6b2; padding: 20px; border-radius: 12px; border: 1px solid #facc15; text-align: center; margin: 20px 0;">
				<p style="margin: 0; font-size: 14px; color: #854d0e;">CÓDIGO DE DEVOLUCIÓN</p>
				<h1 style="margin: 10px 0; font-size: 32px; letter-spacing: 2px;">%s</h1>
			</div>
			<p><strong>Pasos a seguir:</strong></p>
			<ol>
				<li>Prepara el paquete de forma segura.</li>
				<li>Llévalo a tu oficina de Correos seleccionada: <strong>%s</strong>.</li>
				<li>Muestra este código al personal de Correos. <strong>No necesitas imprimir nada.</strong></li>
			</ol>
			<p>Gracias por jugar con Brickshare.</p>
		</div>
	`, name, code, office)
}
