package pudopoints

import (
	"context"

	"github.com/google/uuid"

	"github.com/brickshare-es/brickshare-backend/pkg/correos"
	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

const defaultSearchRadiusMeters = 5000

type pudoRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.PudoPoint, error)
	Save(ctx context.Context, point *models.PudoPoint) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type terminalSearcher interface {
	SearchTerminals(ctx context.Context, req correos.SearchRequest) ([]correos.Terminal, error)
}

// Service exposes pickup-point selection and nearby search.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (*PudoPointDTO, error)
	Save(ctx context.Context, userID uuid.UUID, input SaveInput) (*PudoPointDTO, error)
	Delete(ctx context.Context, userID uuid.UUID) error
	SearchTerminals(ctx context.Context, lat, lng float64, radiusMeters int) ([]TerminalDTO, error)
}

// ServiceParams groups dependencies for the pudo point service.
type ServiceParams struct {
	Repo    pudoRepository
	Correos terminalSearcher
}

type service struct {
	repo    pudoRepository
	correos terminalSearcher
}

// NewService builds a pudo point service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "pudo repo is required")
	}
	if params.Correos == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "correos client is required")
	}
	return &service{
		repo:    params.Repo,
		correos: params.Correos,
	}, nil
}

// Get returns the user's stored point, or nil when none exists.
func (s *service) Get(ctx context.Context, userID uuid.UUID) (*PudoPointDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	point, err := s.repo.Get(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pudo point")
	}
	return toDTO(point), nil
}

// Save replaces the user's selection and returns the stored row.
func (s *service) Save(ctx context.Context, userID uuid.UUID, input SaveInput) (*PudoPointDTO, error) {
	if userID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if !input.TipoPunto.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid pudo point type")
	}

	point := toModel(userID, input)
	if err := s.repo.Save(ctx, point); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save pudo point")
	}
	return toDTO(point), nil
}

// Delete removes the user's selection; removing an absent one is fine.
func (s *service) Delete(ctx context.Context, userID uuid.UUID) error {
	if userID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "user id is required")
	}
	if err := s.repo.Delete(ctx, userID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete pudo point")
	}
	return nil
}

// SearchTerminals finds nearby Correos points and normalizes them.
func (s *service) SearchTerminals(ctx context.Context, lat, lng float64, radiusMeters int) ([]TerminalDTO, error) {
	if radiusMeters <= 0 {
		radiusMeters = defaultSearchRadiusMeters
	}

	terminals, err := s.correos.SearchTerminals(ctx, correos.SearchRequest{
		Latitude:       lat,
		Longitude:      lng,
		DistanceMeters: radiusMeters,
	})
	if err != nil {
		return nil, err
	}
	return MapTerminals(terminals), nil
}
