package wishlist

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

type stubRepo struct {
	items map[uuid.UUID]map[uuid.UUID]struct{}

	existsErr error
	addErr    error
	removeErr error
	listErr   error
}

func newStubRepo() *stubRepo {
	return &stubRepo{items: map[uuid.UUID]map[uuid.UUID]struct{}{}}
}

func (s *stubRepo) AddItem(ctx context.Context, userID, productID uuid.UUID) error {
	if s.addErr != nil {
		return s.addErr
	}
	if s.items[userID] == nil {
		s.items[userID] = map[uuid.UUID]struct{}{}
	}
	s.items[userID][productID] = struct{}{}
	return nil
}

func (s *stubRepo) RemoveItem(ctx context.Context, userID, productID uuid.UUID) error {
	if s.removeErr != nil {
		return s.removeErr
	}
	delete(s.items[userID], productID)
	return nil
}

func (s *stubRepo) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	ids := make([]uuid.UUID, 0, len(s.items[userID]))
	for id := range s.items[userID] {
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *stubRepo) Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if s.existsErr != nil {
		return false, s.existsErr
	}
	_, ok := s.items[userID][productID]
	return ok, nil
}

func newTestService(t *testing.T, repo wishlistRepository) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{Repo: repo})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestToggleAddsThenRemoves(t *testing.T) {
	repo := newStubRepo()
	svc := newTestService(t, repo)
	userID := uuid.New()
	productID := uuid.New()

	wishlisted, err := svc.Toggle(context.Background(), userID, productID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !wishlisted {
		t.Fatal("expected product wishlisted after first toggle")
	}

	wishlisted, err = svc.Toggle(context.Background(), userID, productID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if wishlisted {
		t.Fatal("expected product removed after second toggle")
	}

	ids, err := svc.ListIDs(context.Background(), userID)
	if err != nil {
		t.Fatalf("list ids: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected empty wishlist, got %v", ids)
	}
}

func TestToggleValidatesIDs(t *testing.T) {
	svc := newTestService(t, newStubRepo())

	_, err := svc.Toggle(context.Background(), uuid.Nil, uuid.New())
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing user, got %v", err)
	}

	_, err = svc.Toggle(context.Background(), uuid.New(), uuid.Nil)
	if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error for missing product, got %v", err)
	}
}

func TestToggleWrapsPersistenceFailures(t *testing.T) {
	repo := newStubRepo()
	repo.addErr = errors.New("insert failed")
	svc := newTestService(t, repo)

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
