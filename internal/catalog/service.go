package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	pkgerrors "github.com/brickshare-es/brickshare-backend/pkg/errors"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

type catalogRepository interface {
	List(ctx context.Context, limit, offset int) ([]models.Product, error)
}

// ProductDTO is the storefront shape of a rentable set.
type ProductDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	ImageURL    *string   `json:"image_url,omitempty"`
	Theme       string    `json:"theme"`
	AgeRange    string    `json:"age_range"`
	PieceCount  int       `json:"piece_count"`
	SetRef      *string   `json:"set_ref,omitempty"`
	SkillBoost  []string  `json:"skill_boost,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Service exposes read access to the rental catalog.
type Service interface {
	List(ctx context.Context, limit, offset int) ([]ProductDTO, error)
}

// ServiceParams groups dependencies for the catalog service.
type ServiceParams struct {
	Repo catalogRepository
}

type service struct {
	repo catalogRepository
}

// NewService builds a catalog service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "catalog repo is required")
	}
	return &service{repo: params.Repo}, nil
}

// List returns catalog products newest first.
func (s *service) List(ctx context.Context, limit, offset int) ([]ProductDTO, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	products, err := s.repo.List(ctx, limit, offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}

	dtos := make([]ProductDTO, 0, len(products))
	for _, product := range products {
		dtos = append(dtos, ProductDTO{
			ID:          product.ID,
			Name:        product.Name,
			Description: product.Description,
			ImageURL:    product.ImageURL,
			Theme:       product.Theme,
			AgeRange:    product.AgeRange,
			PieceCount:  product.PieceCount,
			SetRef:      product.SetRef,
			SkillBoost:  product.SkillBoost,
			CreatedAt:   product.CreatedAt,
		})
	}
	return dtos, nil
}
