package shipments

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brickshare-es/brickshare-backend/internal/mailer"
	"github.com/brickshare-es/brickshare-backend/pkg/correos"
	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	"github.com/brickshare-es/brickshare-backend/pkg/enums"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

type shipmentRepository interface {
	List(ctx context.Context) ([]models.Shipment, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Shipment, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
}

type carrierClient interface {
	Preregister(ctx context.Context, req correos.PreregisterRequest) (string, error)
	RequestLabel(ctx context.Context, shipmentID string) ([]byte, error)
	RequestPickup(ctx context.Context, req correos.PickupRequest) (string, error)
	Track(ctx context.Context, shipmentID string) (json.RawMessage, error)
}

type pudoLookup interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.PudoPoint, error)
}

type returnNotifier interface {
	Send(ctx context.Context, input mailer.SendInput) (*mailer.SendResultDTO, error)
}

// Service exposes the logistics console operations.
type Service interface {
	ListActive(ctx context.Context, role enums.UserRole) ([]ShipmentDTO, error)
	Update(ctx context.Context, role enums.UserRole, id uuid.UUID, input UpdateInput) (*ShipmentDTO, error)
	Preregister(ctx context.Context, role enums.UserRole, id uuid.UUID) (*ShipmentDTO, error)
	RequestReturn(ctx context.Context, role enums.UserRole, id uuid.UUID) (*ShipmentDTO, error)
	FetchLabel(ctx context.Context, role enums.UserRole, id uuid.UUID) ([]byte, error)
	RequestPickup(ctx context.Context, role enums.UserRole, id uuid.UUID) (*ShipmentDTO, error)
	Track(ctx context.Context, role enums.UserRole, id uuid.UUID) (json.RawMessage, error)
}

// ServiceParams groups dependencies for the shipment service. Carrier, Pudo
// and Mailer back the Correos operations; when Carrier is unset those
// operations fail fast without touching the network.
type ServiceParams struct {
	Repo    shipmentRepository
	Carrier carrierClient
	Pudo    pudoLookup
	Mailer  returnNotifier
}

type service struct {
	repo    shipmentRepository
	carrier carrierClient
	pudo    pudoLookup
	mailer  returnNotifier
}

// NewService builds a shipment service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipment repo is required")
	}
	return &service{
		repo:    params.Repo,
		carrier: params.Carrier,
		pudo:    params.Pudo,
		mailer:  params.Mailer,
	}, nil
}

// ListActive returns outbound-leg shipments for the console, newest first.
// The role gate runs before any data access.
func (s *service) ListActive(ctx context.Context, role enums.UserRole) ([]ShipmentDTO, error) {
	if !role.CanManageLogistics() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "shipment access is restricted to logistics staff")
	}

	shipments, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shipments")
	}

	active := make([]ShipmentDTO, 0, len(shipments))
	for _, shipment := range shipments {
		if !shipment.EstadoEnvio.IsActive() {
			continue
		}
		active = append(active, toDTO(shipment))
	}
	return active, nil
}

// Update patches the editable fields of one shipment and returns the result.
func (s *service) Update(ctx context.Context, role enums.UserRole, id uuid.UUID, input UpdateInput) (*ShipmentDTO, error) {
	if !role.CanManageLogistics() {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "shipment access is restricted to logistics staff")
	}
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shipment id is required")
	}

	updates, err := buildUpdates(input)
	if err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no shipment fields to update")
	}

	if err := s.repo.Update(ctx, id, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update shipment")
	}

	shipment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "shipment not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipment")
	}
	dto := toDTO(*shipment)
	return &dto, nil
}

func buildUpdates(input UpdateInput) (map[string]any, error) {
	updates := map[string]any{}
	if input.EstadoEnvio != nil {
		if !input.EstadoEnvio.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid shipment status")
		}
		updates["estado_envio"] = *input.EstadoEnvio
	}
	timeFields := map[string]*time.Time{
		"fecha_asignada":             input.FechaAsignada,
		"fecha_entrega":              input.FechaEntrega,
		"fecha_entrega_real":         input.FechaEntregaReal,
		"fecha_entrega_usuario":      input.FechaEntregaUsuario,
		"fecha_recepcion_almacen":    input.FechaRecepcionAlmacen,
		"fecha_recogida_almacen":     input.FechaRecogidaAlmacen,
		"fecha_solicitud_devolucion": input.FechaSolicitudDevolucion,
		"fecha_devolucion_estimada":  input.FechaDevolucionEstimada,
	}
	for column, value := range timeFields {
		if value != nil {
			updates[column] = *value
		}
	}

	stringFields := map[string]*string{
		"proveedor_envio":    input.ProveedorEnvio,
		"proveedor_recogida": input.ProveedorRecogida,
		"numero_seguimiento": input.NumeroSeguimiento,
		"transportista":      input.Transportista,
		"notas_adicionales":  input.NotasAdicionales,
	}
	for column, value := range stringFields {
		if value != nil {
			updates[column] = *value
		}
	}

	return updates, nil
}
