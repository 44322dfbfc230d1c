package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

type stubRepo struct {
	products []models.Product
	err      error

	lastLimit  int
	lastOffset int
}

func (s *stubRepo) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	s.lastLimit = limit
	s.lastOffset = offset
	return s.products, s.err
}

func TestListAppliesDefaultLimit(t *testing.T) {
	repo := &stubRepo{
		products: []models.Product{
			{ID: uuid.New(), Name: "Castillo de Hogwarts", Theme: "Harry Potter", AgeRange: "9+", PieceCount: 6020, SkillBoost: pq.StringArray{"creatividad", "paciencia"}},
		},
	}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dtos, err := svc.List(context.Background(), 0, -5)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastLimit != defaultListLimit || repo.lastOffset != 0 {
		t.Fatalf("expected default limit/offset, got %d/%d", repo.lastLimit, repo.lastOffset)
	}
	if len(dtos) != 1 || dtos[0].Name != "Castillo de Hogwarts" {
		t.Fatalf("unexpected products %+v", dtos)
	}
	if len(dtos[0].SkillBoost) != 2 {
		t.Fatalf("expected skill boost carried over, got %+v", dtos[0].SkillBoost)
	}
}

func TestListCapsLimit(t *testing.T) {
	repo := &stubRepo{}
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	if _, err := svc.List(context.Background(), 10000, 20); err != nil {
		t.Fatalf("list: %v", err)
	}
	if repo.lastLimit != maxListLimit || repo.lastOffset != 20 {
		t.Fatalf("expected capped limit, got %d/%d", repo.lastLimit, repo.lastOffset)
	}
}

func TestListWrapsRepoFailures(t *testing.T) {
	svc, err := NewService(ServiceParams{Repo: &stubRepo{err: errors.New("timeout")}})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.List(context.Background(), 10, 0)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
