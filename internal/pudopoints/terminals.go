package pudopoints

import (
	"strings"

	"github.com/brickshare-es/brickshare-backend/pkg/correos"
)

const (
	defaultNombre  = "Oficina de Correos"
	defaultHorario = "Consultar en oficina"
)

// MapTerminal normalizes one raw Correos terminal into the selection payload
// the storefront renders. The upstream names the same attribute differently
// per terminal generation, so each field picks the first populated candidate.
func MapTerminal(terminal correos.Terminal) TerminalDTO {
	return TerminalDTO{
		ID:        firstNonEmpty(terminal.TerminalID, terminal.CodHomepaq, terminal.LegacyID),
		Nombre:    firstNonEmpty(terminal.Alias, terminal.ChannelDescription, terminal.Name, defaultNombre),
		Direccion: firstNonEmpty(terminal.Address, terminal.Direccion),
		CP:        firstNonEmpty(terminal.PostalCode, terminal.CP),
		Ciudad:    firstNonEmpty(terminal.Municipality, terminal.Poblacion, terminal.Location),
		Lat:       firstCoordinate(terminal.LatitudeWGS84, terminal.LatitudeETRS89, terminal.Latitude, terminal.Lat),
		Lng:       firstCoordinate(terminal.LongitudeWGS84, terminal.LongitudeETRS89, terminal.Longitude, terminal.Lng),
		Horario:   firstNonEmpty(terminal.OpeningDescription, terminal.OpeningHours, terminal.FullSchedule, defaultHorario),
		TipoPunto: pointType(terminal.TerminalType),
	}
}

// MapTerminals maps a search result set preserving order.
func MapTerminals(terminals []correos.Terminal) []TerminalDTO {
	mapped := make([]TerminalDTO, 0, len(terminals))
	for _, terminal := range terminals {
		mapped = append(mapped, MapTerminal(terminal))
	}
	return mapped
}

// pointType distinguishes public parcel lockers from staffed offices. "P" and
// "PUBLICO" are the locker markers used by the terminals API.
func pointType(terminalType string) string {
	switch strings.TrimSpace(terminalType) {
	case "P", "PUBLICO":
		return "Citypaq"
	default:
		return "Oficina"
	}
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

func firstCoordinate(values ...correos.Coordinate) float64 {
	for _, value := range values {
		if value != 0 {
			return float64(value)
		}
	}
	return 0
}
