package wishlist

import (
	"context"

	"github.com/google/uuid"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

type wishlistRepository interface {
	AddItem(ctx context.Context, userID, productID uuid.UUID) error
	RemoveItem(ctx context.Context, userID, productID uuid.UUID) error
	ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	Exists(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// Service exposes wishlist membership operations.
type Service interface {
	ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// Toggle flips membership and returns whether the product is
	// wishlisted after the call.
	Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo wishlistRepository
}

type service struct {
	repo wishlistRepository
}

// NewService builds a wishlist service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// ListIDs returns all favorited product ids for the user.
func (s *service) ListIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	ids, err := s.repo.ListIDs(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list wishlist")
	}
	return ids, nil
}

// Toggle flips the (user, product) membership. Two rapid toggles of the same
// product may race; last write wins.
func (s *service) Toggle(ctx context.Context, userID, productID uuid.UUID) (bool, error) {
	if userID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if productID == uuid.Nil {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	exists, err := s.repo.Exists(ctx, userID, productID)
	if err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check wishlist membership")
	}

	if exists {
		if err := s.repo.RemoveItem(ctx, userID, productID); err != nil {
			return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist item")
		}
		return false, nil
	}

	if err := s.repo.AddItem(ctx, userID, productID); err != nil {
		return false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add wishlist item")
	}
	return true, nil
}
