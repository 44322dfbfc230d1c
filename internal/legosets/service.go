package legosets

import (
	"context"
	"strings"

	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
	"github.com/brickshare-es/brickshare-backend/pkg/rebrickable"
)

type setFetcher interface {
	GetSet(ctx context.Context, setNumber string) (*rebrickable.Set, error)
}

// Service enriches catalog entries with official set data.
type Service interface {
	Fetch(ctx context.Context, setNumber string) (*SetDetailsDTO, error)
}

// ServiceParams groups dependencies for the lego set service.
type ServiceParams struct {
	Rebrickable setFetcher
}

type service struct {
	rebrickable setFetcher
}

// NewService builds a lego set service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Rebrickable == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "rebrickable client is required")
	}
	return &service{rebrickable: params.Rebrickable}, nil
}

// Fetch looks up one set by its catalog number and maps it.
func (s *service) Fetch(ctx context.Context, setNumber string) (*SetDetailsDTO, error) {
	if strings.TrimSpace(setNumber) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "set number is required")
	}

	set, err := s.rebrickable.GetSet(ctx, setNumber)
	if err != nil {
		return nil, err
	}
	dto := MapSet(*set)
	return &dto, nil
}
