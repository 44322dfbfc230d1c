package enums

import "fmt"

// ShipmentStatus tracks a rental shipment through its outbound and return legs.
type ShipmentStatus string

const (
	ShipmentStatusPendiente             ShipmentStatus = "pendiente"
	ShipmentStatusAsignado              ShipmentStatus = "asignado"
	ShipmentStatusEnTransito            ShipmentStatus = "en_transito"
	ShipmentStatusEntregado             ShipmentStatus = "entregado"
	ShipmentStatusDevolucionSolicitada  ShipmentStatus = "devolucion_solicitada"
	ShipmentStatusEnDevolucion          ShipmentStatus = "en_devolucion"
	ShipmentStatusDevuelto              ShipmentStatus = "devuelto"
	ShipmentStatusRecibidoAlmacen       ShipmentStatus = "recibido_almacen"
)

var validShipmentStatuses = []ShipmentStatus{
	ShipmentStatusPendiente,
	ShipmentStatusAsignado,
	ShipmentStatusEnTransito,
	ShipmentStatusEntregado,
	ShipmentStatusDevolucionSolicitada,
	ShipmentStatusEnDevolucion,
	ShipmentStatusDevuelto,
	ShipmentStatusRecibidoAlmacen,
}

// activeShipmentStatuses are the outbound-leg states shown on the logistics console.
var activeShipmentStatuses = map[ShipmentStatus]struct{}{
	ShipmentStatusPendiente:  {},
	ShipmentStatusAsignado:   {},
	ShipmentStatusEnTransito: {},
	ShipmentStatusEntregado:  {},
}

// String implements fmt.Stringer.
func (s ShipmentStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is known.
func (s ShipmentStatus) IsValid() bool {
	for _, candidate := range validShipmentStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsActive reports whether the status belongs to the outbound leg.
func (s ShipmentStatus) IsActive() bool {
	_, ok := activeShipmentStatuses[s]
	return ok
}

// ParseShipmentStatus converts raw input into a ShipmentStatus.
func ParseShipmentStatus(value string) (ShipmentStatus, error) {
	for _, candidate := range validShipmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid shipment status %q", value)
}
