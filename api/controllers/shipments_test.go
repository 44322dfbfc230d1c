package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brickshare-es/brickshare-backend/api/middleware"
	"github.com/brickshare-es/brickshare-backend/internal/shipments"
	"github.com/brickshare-es/brickshare-backend/pkg/enums"
)

type stubShipmentsService struct {
	dto    *shipments.ShipmentDTO
	label  []byte
	events json.RawMessage
	err    error

	preregisterIDs []uuid.UUID
	returnIDs      []uuid.UUID
	pickupIDs      []uuid.UUID
	roles          []enums.UserRole
}

func (s *stubShipmentsService) ListActive(ctx context.Context, role enums.UserRole) ([]shipments.ShipmentDTO, error) {
	return nil, s.err
}

func (s *stubShipmentsService) Update(ctx context.Context, role enums.UserRole, id uuid.UUID, input shipments.UpdateInput) (*shipments.ShipmentDTO, error) {
	return s.dto, s.err
}

func (s *stubShipmentsService) Preregister(ctx context.Context, role enums.UserRole, id uuid.UUID) (*shipments.ShipmentDTO, error) {
	s.roles = append(s.roles, role)
	s.preregisterIDs = append(s.preregisterIDs, id)
	return s.dto, s.err
}

func (s *stubShipmentsService) RequestReturn(ctx context.Context, role enums.UserRole, id uuid.UUID) (*shipments.ShipmentDTO, error) {
	s.returnIDs = append(s.returnIDs, id)
	return s.dto, s.err
}

func (s *stubShipmentsService) FetchLabel(ctx context.Context, role enums.UserRole, id uuid.UUID) ([]byte, error) {
	return s.label, s.err
}

func (s *stubShipmentsService) RequestPickup(ctx context.Context, role enums.UserRole, id uuid.UUID) (*shipments.ShipmentDTO, error) {
	s.pickupIDs = append(s.pickupIDs, id)
	return s.dto, s.err
}

func (s *stubShipmentsService) Track(ctx context.Context, role enums.UserRole, id uuid.UUID) (json.RawMessage, error) {
	return s.events, s.err
}

func shipmentRequest(method, target, shipmentID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("shipmentId", shipmentID)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx)
	ctx = middleware.WithUserID(ctx, uuid.NewString())
	ctx = middleware.WithRole(ctx, string(enums.UserRoleOperador))
	return req.WithContext(ctx)
}

func TestShipmentPreregisterPassesRoleAndID(t *testing.T) {
	id := uuid.New()
	svc := &stubShipmentsService{dto: &shipments.ShipmentDTO{ID: id}}
	rec := httptest.NewRecorder()

	ShipmentPreregister(svc, nil)(rec, shipmentRequest("POST", "/api/v1/shipments/"+id.String()+"/preregister", id.String()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(svc.preregisterIDs) != 1 || svc.preregisterIDs[0] != id {
		t.Fatalf("expected preregister for %s, got %v", id, svc.preregisterIDs)
	}
	if len(svc.roles) != 1 || svc.roles[0] != enums.UserRoleOperador {
		t.Fatalf("expected operator role forwarded, got %v", svc.roles)
	}
}

func TestShipmentPreregisterRejectsMalformedID(t *testing.T) {
	svc := &stubShipmentsService{}
	rec := httptest.NewRecorder()

	ShipmentPreregister(svc, nil)(rec, shipmentRequest("POST", "/api/v1/shipments/nope/preregister", "nope"))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if len(svc.preregisterIDs) != 0 {
		t.Fatal("service must not be called for malformed ids")
	}
}

func TestShipmentLabelStreamsPDF(t *testing.T) {
	id := uuid.New()
	svc := &stubShipmentsService{label: []byte("%PDF-1.4 label")}
	rec := httptest.NewRecorder()

	ShipmentLabel(svc, nil)(rec, shipmentRequest("GET", "/api/v1/shipments/"+id.String()+"/label", id.String()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", got)
	}
	if rec.Body.String() != "%PDF-1.4 label" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestShipmentTrackingWrapsRawEvents(t *testing.T) {
	id := uuid.New()
	svc := &stubShipmentsService{events: json.RawMessage(`{"shipment":[{"events":[]}]}`)}
	rec := httptest.NewRecorder()

	ShipmentTracking(svc, nil)(rec, shipmentRequest("GET", "/api/v1/shipments/"+id.String()+"/tracking", id.String()))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if _, ok := envelope.Data["shipment"]; !ok {
		t.Fatalf("expected raw events under data, got %s", rec.Body.String())
	}
}
