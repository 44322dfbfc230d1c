package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/brickshare-es/brickshare-backend/api/middleware"
	"github.com/brickshare-es/brickshare-backend/internal/pudopoints"
)

type stubPudoService struct {
	point       *pudopoints.PudoPointDTO
	saved       *pudopoints.SaveInput
	deleteCalls int
	terminals   []pudopoints.TerminalDTO
	err         error

	searchCalls int
	lastLat     float64
	lastLng     float64
}

func (s *stubPudoService) Get(ctx context.Context, userID uuid.UUID) (*pudopoints.PudoPointDTO, error) {
	return s.point, s.err
}

func (s *stubPudoService) Save(ctx context.Context, userID uuid.UUID, input pudopoints.SaveInput) (*pudopoints.PudoPointDTO, error) {
	s.saved = &input
	return s.point, s.err
}

func (s *stubPudoService) Delete(ctx context.Context, userID uuid.UUID) error {
	s.deleteCalls++
	return s.err
}

func (s *stubPudoService) SearchTerminals(ctx context.Context, lat, lng float64, radiusMeters int) ([]pudopoints.TerminalDTO, error) {
	s.searchCalls++
	s.lastLat = lat
	s.lastLng = lng
	return s.terminals, s.err
}

func authedRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	ctx := middleware.WithUserID(req.Context(), uuid.NewString())
	return req.WithContext(ctx)
}

func TestPudoPointGetReturnsNullWhenUnset(t *testing.T) {
	svc := &stubPudoService{}
	rec := httptest.NewRecorder()

	PudoPointGet(svc, nil)(rec, authedRequest("GET", "/api/v1/pudo-point", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var envelope struct {
		Data *pudopoints.PudoPointDTO `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if envelope.Data != nil {
		t.Fatalf("expected null data, got %+v", envelope.Data)
	}
}

func TestPudoPointGetRequiresUserContext(t *testing.T) {
	svc := &stubPudoService{}
	rec := httptest.NewRecorder()

	PudoPointGet(svc, nil)(rec, httptest.NewRequest("GET", "/api/v1/pudo-point", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestPudoPointDeleteIsIdempotentAtTheEdge(t *testing.T) {
	svc := &stubPudoService{}
	rec := httptest.NewRecorder()

	PudoPointDelete(svc, nil)(rec, authedRequest("DELETE", "/api/v1/pudo-point", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.deleteCalls != 1 {
		t.Fatalf("expected one delete call, got %d", svc.deleteCalls)
	}
}

func TestPudoPointsSearchValidatesCoordinates(t *testing.T) {
	svc := &stubPudoService{}
	rec := httptest.NewRecorder()

	body := `{"latitude": 140.0, "longitude": -3.7}`
	PudoPointsSearch(svc, nil)(rec, authedRequest("POST", "/api/v1/pudo-points/search", body))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestPudoPointsSearchAcceptsZeroCoordinates(t *testing.T) {
	svc := &stubPudoService{terminals: []pudopoints.TerminalDTO{}}
	rec := httptest.NewRecorder()

	body := `{"latitude": 0, "longitude": 0}`
	PudoPointsSearch(svc, nil)(rec, authedRequest("POST", "/api/v1/pudo-points/search", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for zero coordinates, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.searchCalls != 1 {
		t.Fatalf("expected search to reach the service, got %d calls", svc.searchCalls)
	}
	if svc.lastLat != 0 || svc.lastLng != 0 {
		t.Fatalf("expected zero coordinates passed through, got %v/%v", svc.lastLat, svc.lastLng)
	}
}
