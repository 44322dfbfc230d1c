package shipments

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	"github.com/brickshare-es/brickshare-backend/pkg/enums"
)

// SetSummary is the slice of the rented set shown on the logistics console.
type SetSummary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	ImageURL *string   `json:"image_url,omitempty"`
	Theme    string    `json:"theme"`
}

// UserSummary identifies the subscriber a shipment belongs to.
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	FullName *string   `json:"full_name,omitempty"`
	Email    string    `json:"email"`
}

// ShipmentDTO is the console-facing shipment row with its joined context.
type ShipmentDTO struct {
	ID      uuid.UUID `json:"id"`
	OrderID uuid.UUID `json:"order_id"`

	EstadoEnvio enums.ShipmentStatus `json:"estado_envio"`

	FechaAsignada            *time.Time `json:"fecha_asignada,omitempty"`
	FechaEntrega             *time.Time `json:"fecha_entrega,omitempty"`
	FechaEntregaReal         *time.Time `json:"fecha_entrega_real,omitempty"`
	FechaEntregaUsuario      *time.Time `json:"fecha_entrega_usuario,omitempty"`
	FechaRecepcionAlmacen    *time.Time `json:"fecha_recepcion_almacen,omitempty"`
	FechaRecogidaAlmacen     *time.Time `json:"fecha_recogida_almacen,omitempty"`
	FechaSolicitudDevolucion *time.Time `json:"fecha_solicitud_devolucion,omitempty"`
	FechaDevolucionEstimada  *time.Time `json:"fecha_devolucion_estimada,omitempty"`

	DireccionEnvio    string `json:"direccion_envio"`
	CiudadEnvio       string `json:"ciudad_envio"`
	CodigoPostalEnvio string `json:"codigo_postal_envio"`
	PaisEnvio         string `json:"pais_envio"`

	ProveedorEnvio    *string          `json:"proveedor_envio,omitempty"`
	ProveedorRecogida *string          `json:"proveedor_recogida,omitempty"`
	NumeroSeguimiento *string          `json:"numero_seguimiento,omitempty"`
	CostoEnvio        *decimal.Decimal `json:"costo_envio,omitempty"`
	Transportista     *string          `json:"transportista,omitempty"`
	NotasAdicionales  *string          `json:"notas_adicionales,omitempty"`

	CorreosShipmentID  *string    `json:"correos_shipment_id,omitempty"`
	PickupID           *string    `json:"pickup_id,omitempty"`
	LastTrackingUpdate *time.Time `json:"last_tracking_update,omitempty"`

	Set  *SetSummary  `json:"set,omitempty"`
	User *UserSummary `json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateInput carries the operator-editable shipment fields. Nil fields are
// left untouched.
type UpdateInput struct {
	EstadoEnvio              *enums.ShipmentStatus `json:"estado_envio"`
	FechaAsignada            *time.Time            `json:"fecha_asignada"`
	FechaEntrega             *time.Time            `json:"fecha_entrega"`
	FechaEntregaReal         *time.Time            `json:"fecha_entrega_real"`
	FechaEntregaUsuario      *time.Time            `json:"fecha_entrega_usuario"`
	FechaRecepcionAlmacen    *time.Time            `json:"fecha_recepcion_almacen"`
	FechaRecogidaAlmacen     *time.Time            `json:"fecha_recogida_almacen"`
	FechaSolicitudDevolucion *time.Time            `json:"fecha_solicitud_devolucion"`
	FechaDevolucionEstimada  *time.Time            `json:"fecha_devolucion_estimada"`
	ProveedorEnvio           *string               `json:"proveedor_envio"`
	ProveedorRecogida        *string               `json:"proveedor_recogida"`
	NumeroSeguimiento        *string               `json:"numero_seguimiento"`
	Transportista            *string               `json:"transportista"`
	NotasAdicionales         *string               `json:"notas_adicionales"`
}

func toDTO(shipment models.Shipment) ShipmentDTO {
	dto := ShipmentDTO{
		ID:                       shipment.ID,
		OrderID:                  shipment.OrderID,
		EstadoEnvio:              shipment.EstadoEnvio,
		FechaAsignada:            shipment.FechaAsignada,
		FechaEntrega:             shipment.FechaEntrega,
		FechaEntregaReal:         shipment.FechaEntregaReal,
		FechaEntregaUsuario:      shipment.FechaEntregaUsuario,
		FechaRecepcionAlmacen:    shipment.FechaRecepcionAlmacen,
		FechaRecogidaAlmacen:     shipment.FechaRecogidaAlmacen,
		FechaSolicitudDevolucion: shipment.FechaSolicitudDevolucion,
		FechaDevolucionEstimada:  shipment.FechaDevolucionEstimada,
		DireccionEnvio:           shipment.DireccionEnvio,
		CiudadEnvio:              shipment.CiudadEnvio,
		CodigoPostalEnvio:        shipment.CodigoPostalEnvio,
		PaisEnvio:                shipment.PaisEnvio,
		ProveedorEnvio:           shipment.ProveedorEnvio,
		ProveedorRecogida:        shipment.ProveedorRecogida,
		NumeroSeguimiento:        shipment.NumeroSeguimiento,
		CostoEnvio:               shipment.CostoEnvio,
		Transportista:            shipment.Transportista,
		NotasAdicionales:         shipment.NotasAdicionales,
		CorreosShipmentID:        shipment.CorreosShipmentID,
		PickupID:                 shipment.PickupID,
		LastTrackingUpdate:       shipment.LastTrackingUpdate,
		CreatedAt:                shipment.CreatedAt,
		UpdatedAt:                shipment.UpdatedAt,
	}
	if shipment.Order != nil && shipment.Order.Set != nil {
		set := shipment.Order.Set
		dto.Set = &SetSummary{
			ID:       set.ID,
			Name:     set.Name,
			ImageURL: set.ImageURL,
			Theme:    set.Theme,
		}
	}
	if shipment.User != nil {
		dto.User = &UserSummary{
			ID:       shipment.User.ID,
			FullName: shipment.User.FullName,
			Email:    shipment.User.Email,
		}
	}
	return dto
}
