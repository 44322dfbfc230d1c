package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

type stubRepo struct {
	orders []models.Order
	err    error
}

func (s *stubRepo) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return s.orders, s.err
}

func TestListForUserIncludesSetSummary(t *testing.T) {
	setID := uuid.New()
	repo := &stubRepo{
		orders: []models.Order{
			{
				ID:        uuid.New(),
				OrderDate: time.Now(),
				Status:    "entregado",
				SetID:     &setID,
				Set:       &models.Product{ID: setID, Name: "Gran Tiburón Blanco", Theme: "Creator"},
			},
			{
				ID:        uuid.New(),
				OrderDate: time.Now().Add(-30 * 24 * time.Hour),
				Status:    "devuelto",
			},
		},
	}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dtos, err := svc.ListForUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dtos) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(dtos))
	}
	if dtos[0].Set == nil || dtos[0].Set.Name != "Gran Tiburón Blanco" {
		t.Fatalf("expected joined set, got %+v", dtos[0].Set)
	}
	if dtos[1].Set != nil {
		t.Fatalf("expected nil set for setless order, got %+v", dtos[1].Set)
	}
}

func TestListForUserRequiresUserID(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubRepo{}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.ListForUser(context.Background(), uuid.Nil)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestListForUserWrapsRepoFailures(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubRepo{err: errors.New("timeout")}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.ListForUser(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
