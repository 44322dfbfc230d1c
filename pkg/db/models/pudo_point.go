package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/brickshare-es/brickshare-backend/pkg/enums"
)

// PudoPoint is the Correos pickup/drop-off location a user selected for
// deliveries. At most one row per user; saves replace the whole row.
type PudoPoint struct {
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;primaryKey"`

	CorreosIDPudo            string              `gorm:"column:correos_id_pudo;not null"`
	CorreosNombre            string              `gorm:"column:correos_nombre;not null"`
	CorreosTipoPunto         enums.PudoPointType `gorm:"column:correos_tipo_punto;type:text;not null"`
	CorreosDireccionCalle    string              `gorm:"column:correos_direccion_calle;not null"`
	CorreosDireccionNumero   *string             `gorm:"column:correos_direccion_numero"`
	CorreosCodigoPostal      string              `gorm:"column:correos_codigo_postal;not null"`
	CorreosCiudad            string              `gorm:"column:correos_ciudad;not null"`
	CorreosProvincia         string              `gorm:"column:correos_provincia;not null"`
	CorreosPais              string              `gorm:"column:correos_pais;not null;default:'España'"`
	CorreosDireccionCompleta string              `gorm:"column:correos_direccion_completa;not null"`

	CorreosLatitud  float64 `gorm:"column:correos_latitud;not null"`
	CorreosLongitud float64 `gorm:"column:correos_longitud;not null"`

	CorreosHorarioApertura     *string         `gorm:"column:correos_horario_apertura"`
	CorreosHorarioEstructurado json.RawMessage `gorm:"column:correos_horario_estructurado;type:jsonb"`
	CorreosDisponible          bool            `gorm:"column:correos_disponible;not null;default:true"`

	CorreosTelefono             *string        `gorm:"column:correos_telefono"`
	CorreosEmail                *string        `gorm:"column:correos_email"`
	CorreosCodigoInterno        *string        `gorm:"column:correos_codigo_interno"`
	CorreosCapacidadLockers     *int           `gorm:"column:correos_capacidad_lockers"`
	CorreosServiciosAdicionales pq.StringArray `gorm:"column:correos_servicios_adicionales;type:text[]"`
	CorreosAccesibilidad        *bool          `gorm:"column:correos_accesibilidad"`
	CorreosParking              *bool          `gorm:"column:correos_parking"`

	// Stamped by the store on every save, never trusted from the caller.
	CorreosFechaSeleccion time.Time `gorm:"column:correos_fecha_seleccion;not null"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the legacy table name.
func (PudoPoint) TableName() string {
	return "users_correos_dropping"
}
