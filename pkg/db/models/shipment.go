package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/brickshare-es/brickshare-backend/pkg/enums"
)

// Shipment is one physical movement of a set between the warehouse and a
// user, covering both the outbound and the return leg. Rows are created when
// an order enters shipping and are never hard-deleted from the console view.
type Shipment struct {
	ID      uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	UserID  uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`

	FechaAsignada            *time.Time `gorm:"column:fecha_asignada"`
	FechaEntrega             *time.Time `gorm:"column:fecha_entrega"`
	FechaEntregaReal         *time.Time `gorm:"column:fecha_entrega_real"`
	FechaEntregaUsuario      *time.Time `gorm:"column:fecha_entrega_usuario"`
	FechaRecepcionAlmacen    *time.Time `gorm:"column:fecha_recepcion_almacen"`
	FechaRecogidaAlmacen     *time.Time `gorm:"column:fecha_recogida_almacen"`
	FechaSolicitudDevolucion *time.Time `gorm:"column:fecha_solicitud_devolucion"`
	FechaDevolucionEstimada  *time.Time `gorm:"column:fecha_devolucion_estimada"`

	EstadoEnvio enums.ShipmentStatus `gorm:"column:estado_envio;type:text;not null;default:'pendiente'"`

	DireccionEnvio    string `gorm:"column:direccion_envio;not null"`
	CiudadEnvio       string `gorm:"column:ciudad_envio;not null"`
	CodigoPostalEnvio string `gorm:"column:codigo_postal_envio;not null"`
	PaisEnvio         string `gorm:"column:pais_envio;not null;default:'España'"`

	ProveedorEnvio    *string          `gorm:"column:proveedor_envio"`
	ProveedorRecogida *string          `gorm:"column:proveedor_recogida"`
	NumeroSeguimiento *string          `gorm:"column:numero_seguimiento"`
	CostoEnvio        *decimal.Decimal `gorm:"column:costo_envio;type:numeric(10,2)"`
	Transportista     *string          `gorm:"column:transportista"`
	NotasAdicionales  *string          `gorm:"column:notas_adicionales"`

	CorreosShipmentID  *string    `gorm:"column:correos_shipment_id"`
	PickupID           *string    `gorm:"column:pickup_id"`
	LastTrackingUpdate *time.Time `gorm:"column:last_tracking_update"`

	Order *Order `gorm:"foreignKey:OrderID"`
	User  *User  `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy Spanish table name.
func (Shipment) TableName() string {
	return "envios"
}
