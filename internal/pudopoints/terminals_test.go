package pudopoints

import (
	"testing"

	"github.com/brickshare-es/brickshare-backend/pkg/correos"
)

func TestMapTerminalKeepsProvidedFields(t *testing.T) {
	dto := MapTerminal(correos.Terminal{
		TerminalID:         " CP-042 ",
		Alias:              "Oficina Gran Vía",
		Address:            "Gran Vía 28",
		PostalCode:         "28013",
		Municipality:       "Madrid",
		LatitudeWGS84:      40.42,
		LongitudeWGS84:     -3.705,
		OpeningDescription: "L-V 8:30-20:30",
		TerminalType:       "OFICINA",
	})

	if dto.ID != "CP-042" {
		t.Fatalf("unexpected id %q", dto.ID)
	}
	if dto.Direccion != "Gran Vía 28" {
		t.Fatalf("unexpected direccion %q", dto.Direccion)
	}
	if dto.Horario != "L-V 8:30-20:30" {
		t.Fatalf("expected provided horario, got %q", dto.Horario)
	}
	if dto.TipoPunto != "Oficina" {
		t.Fatalf("expected office type, got %q", dto.TipoPunto)
	}
	if dto.Lat != 40.42 || dto.Lng != -3.705 {
		t.Fatalf("unexpected coordinates %+v", dto)
	}
}

func TestMapTerminalUsesFallbackFieldCandidates(t *testing.T) {
	dto := MapTerminal(correos.Terminal{
		CodHomepaq:   "HP-9",
		Name:         "Punto Luna",
		Direccion:    "Calle Luna 3",
		CP:           "28004",
		Poblacion:    "Madrid",
		Latitude:     40.425,
		Lng:          -3.701,
		FullSchedule: "24h",
		TerminalType: "PUBLICO",
	})

	if dto.ID != "HP-9" {
		t.Fatalf("unexpected id %q", dto.ID)
	}
	if dto.Nombre != "Punto Luna" {
		t.Fatalf("unexpected nombre %q", dto.Nombre)
	}
	if dto.Direccion != "Calle Luna 3" || dto.CP != "28004" || dto.Ciudad != "Madrid" {
		t.Fatalf("fallback fields not applied: %+v", dto)
	}
	if dto.Lat != 40.425 || dto.Lng != -3.701 {
		t.Fatalf("unexpected coordinates %+v", dto)
	}
	if dto.Horario != "24h" {
		t.Fatalf("unexpected horario %q", dto.Horario)
	}
	if dto.TipoPunto != "Citypaq" {
		t.Fatalf("expected locker type for PUBLICO terminals, got %q", dto.TipoPunto)
	}
}

func TestMapTerminalAppliesDefaults(t *testing.T) {
	dto := MapTerminal(correos.Terminal{
		TerminalID: "CP-100",
		Address:    "Calle Luna 3",
		PostalCode: "28004",
		Location:   "Madrid",
	})

	if dto.Nombre != "Oficina de Correos" {
		t.Fatalf("expected default nombre, got %q", dto.Nombre)
	}
	if dto.Horario != "Consultar en oficina" {
		t.Fatalf("expected default horario, got %q", dto.Horario)
	}
	if dto.TipoPunto != "Oficina" {
		t.Fatalf("expected office type without a locker marker, got %q", dto.TipoPunto)
	}
}

func TestMapTerminalsPreservesOrder(t *testing.T) {
	terminals := []correos.Terminal{
		{TerminalID: "A"},
		{TerminalID: "B"},
		{TerminalID: "C"},
	}
	mapped := MapTerminals(terminals)
	if len(mapped) != 3 {
		t.Fatalf("expected 3 terminals, got %d", len(mapped))
	}
	for i, want := range []string{"A", "B", "C"} {
		if mapped[i].ID != want {
			t.Fatalf("expected %q at %d, got %q", want, i, mapped[i].ID)
		}
	}
}
