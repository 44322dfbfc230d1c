package pudopoints

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	"github.com/brickshare-es/brickshare-backend/pkg/enums"
)

// SaveInput carries the Correos point a user selected. The selection
// timestamp is always stamped server-side and never read from this input.
type SaveInput struct {
	IDPudo               string              `json:"correos_id_pudo" validate:"required"`
	Nombre               string              `json:"correos_nombre" validate:"required"`
	TipoPunto            enums.PudoPointType `json:"correos_tipo_punto" validate:"required"`
	DireccionCalle       string              `json:"correos_direccion_calle" validate:"required"`
	DireccionNumero      *string             `json:"correos_direccion_numero"`
	CodigoPostal         string              `json:"correos_codigo_postal" validate:"required"`
	Ciudad               string              `json:"correos_ciudad" validate:"required"`
	Provincia            string              `json:"correos_provincia" validate:"required"`
	Pais                 string              `json:"correos_pais"`
	DireccionCompleta    string              `json:"correos_direccion_completa" validate:"required"`
	Latitud              float64             `json:"correos_latitud" validate:"required"`
	Longitud             float64             `json:"correos_longitud" validate:"required"`
	HorarioApertura      *string             `json:"correos_horario_apertura"`
	HorarioEstructurado  json.RawMessage     `json:"correos_horario_estructurado"`
	Disponible           *bool               `json:"correos_disponible"`
	Telefono             *string             `json:"correos_telefono"`
	Email                *string             `json:"correos_email"`
	CodigoInterno        *string             `json:"correos_codigo_interno"`
	CapacidadLockers     *int                `json:"correos_capacidad_lockers"`
	ServiciosAdicionales []string            `json:"correos_servicios_adicionales"`
	Accesibilidad        *bool               `json:"correos_accesibilidad"`
	Parking              *bool               `json:"correos_parking"`
}

// PudoPointDTO is the wire shape of a stored selection.
type PudoPointDTO struct {
	UserID               uuid.UUID           `json:"user_id"`
	IDPudo               string              `json:"correos_id_pudo"`
	Nombre               string              `json:"correos_nombre"`
	TipoPunto            enums.PudoPointType `json:"correos_tipo_punto"`
	DireccionCalle       string              `json:"correos_direccion_calle"`
	DireccionNumero      *string             `json:"correos_direccion_numero,omitempty"`
	CodigoPostal         string              `json:"correos_codigo_postal"`
	Ciudad               string              `json:"correos_ciudad"`
	Provincia            string              `json:"correos_provincia"`
	Pais                 string              `json:"correos_pais"`
	DireccionCompleta    string              `json:"correos_direccion_completa"`
	Latitud              float64             `json:"correos_latitud"`
	Longitud             float64             `json:"correos_longitud"`
	HorarioApertura      *string             `json:"correos_horario_apertura,omitempty"`
	HorarioEstructurado  json.RawMessage     `json:"correos_horario_estructurado,omitempty"`
	Disponible           bool                `json:"correos_disponible"`
	Telefono             *string             `json:"correos_telefono,omitempty"`
	Email                *string             `json:"correos_email,omitempty"`
	CodigoInterno        *string             `json:"correos_codigo_interno,omitempty"`
	CapacidadLockers     *int                `json:"correos_capacidad_lockers,omitempty"`
	ServiciosAdicionales []string            `json:"correos_servicios_adicionales,omitempty"`
	Accesibilidad        *bool               `json:"correos_accesibilidad,omitempty"`
	Parking              *bool               `json:"correos_parking,omitempty"`
	FechaSeleccion       time.Time           `json:"correos_fecha_seleccion"`
}

// TerminalDTO is a nearby Correos point offered during selection.
type TerminalDTO struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion string  `json:"direccion"`
	CP        string  `json:"cp"`
	Ciudad    string  `json:"ciudad"`
	Lat       float64 `json:"lat"`
	Lng       float64 `json:"lng"`
	Horario   string  `json:"horario"`
	TipoPunto string  `json:"tipo_punto"`
}

func toDTO(point *models.PudoPoint) *PudoPointDTO {
	if point == nil {
		return nil
	}
	return &PudoPointDTO{
		UserID:               point.UserID,
		IDPudo:               point.CorreosIDPudo,
		Nombre:               point.CorreosNombre,
		TipoPunto:            point.CorreosTipoPunto,
		DireccionCalle:       point.CorreosDireccionCalle,
		DireccionNumero:      point.CorreosDireccionNumero,
		CodigoPostal:         point.CorreosCodigoPostal,
		Ciudad:               point.CorreosCiudad,
		Provincia:            point.CorreosProvincia,
		Pais:                 point.CorreosPais,
		DireccionCompleta:    point.CorreosDireccionCompleta,
		Latitud:              point.CorreosLatitud,
		Longitud:             point.CorreosLongitud,
		HorarioApertura:      point.CorreosHorarioApertura,
		HorarioEstructurado:  point.CorreosHorarioEstructurado,
		Disponible:           point.CorreosDisponible,
		Telefono:             point.CorreosTelefono,
		Email:                point.CorreosEmail,
		CodigoInterno:        point.CorreosCodigoInterno,
		CapacidadLockers:     point.CorreosCapacidadLockers,
		ServiciosAdicionales: point.CorreosServiciosAdicionales,
		Accesibilidad:        point.CorreosAccesibilidad,
		Parking:              point.CorreosParking,
		FechaSeleccion:       point.CorreosFechaSeleccion,
	}
}

func toModel(userID uuid.UUID, input SaveInput) *models.PudoPoint {
	pais := input.Pais
	if pais == "" {
		pais = "España"
	}
	disponible := true
	if input.Disponible != nil {
		disponible = *input.Disponible
	}
	return &models.PudoPoint{
		UserID:                      userID,
		CorreosIDPudo:               input.IDPudo,
		CorreosNombre:               input.Nombre,
		CorreosTipoPunto:            input.TipoPunto,
		CorreosDireccionCalle:       input.DireccionCalle,
		CorreosDireccionNumero:      input.DireccionNumero,
		CorreosCodigoPostal:         input.CodigoPostal,
		CorreosCiudad:               input.Ciudad,
		CorreosProvincia:            input.Provincia,
		CorreosPais:                 pais,
		CorreosDireccionCompleta:    input.DireccionCompleta,
		CorreosLatitud:              input.Latitud,
		CorreosLongitud:             input.Longitud,
		CorreosHorarioApertura:      input.HorarioApertura,
		CorreosHorarioEstructurado:  input.HorarioEstructurado,
		CorreosDisponible:           disponible,
		CorreosTelefono:             input.Telefono,
		CorreosEmail:                input.Email,
		CorreosCodigoInterno:        input.CodigoInterno,
		CorreosCapacidadLockers:     input.CapacidadLockers,
		CorreosServiciosAdicionales: pq.StringArray(input.ServiciosAdicionales),
		CorreosAccesibilidad:        input.Accesibilidad,
		CorreosParking:              input.Parking,
	}
}
