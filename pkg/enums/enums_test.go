package enums

import "testing"

func TestShipmentStatusActiveSet(t *testing.T) {
	active := []ShipmentStatus{
		ShipmentStatusPendiente,
		ShipmentStatusAsignado,
		ShipmentStatusEnTransito,
		ShipmentStatusEntregado,
	}
	for _, status := range active {
		if !status.IsActive() {
			t.Fatalf("expected %s to be active", status)
		}
	}

	returnLeg := []ShipmentStatus{
		ShipmentStatusDevolucionSolicitada,
		ShipmentStatusEnDevolucion,
		ShipmentStatusDevuelto,
		ShipmentStatusRecibidoAlmacen,
	}
	for _, status := range returnLeg {
		if status.IsActive() {
			t.Fatalf("expected %s to be inactive", status)
		}
	}
}

func TestParseShipmentStatusRejectsUnknown(t *testing.T) {
	if _, err := ParseShipmentStatus("perdido"); err == nil {
		t.Fatal("expected error for unknown status")
	}
	status, err := ParseShipmentStatus("en_transito")
	if err != nil || status != ShipmentStatusEnTransito {
		t.Fatalf("unexpected result %s, %v", status, err)
	}
}

func TestUserRoleLogisticsGate(t *testing.T) {
	cases := map[UserRole]bool{
		UserRoleCliente:        false,
		UserRoleOperador:       true,
		UserRoleAdmin:          true,
		UserRole("supervisor"): false,
	}
	for role, want := range cases {
		if got := role.CanManageLogistics(); got != want {
			t.Fatalf("role %s: expected %v, got %v", role, want, got)
		}
	}
}

func TestPudoPointTypeValidity(t *testing.T) {
	for _, valid := range []PudoPointType{PudoPointTypeOficina, PudoPointTypeCitypaq, PudoPointTypeLocker} {
		if !valid.IsValid() {
			t.Fatalf("expected %s to be valid", valid)
		}
	}
	if PudoPointType("kiosko").IsValid() {
		t.Fatal("expected kiosko to be invalid")
	}
}
