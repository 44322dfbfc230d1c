package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
)

// Repository encapsulates catalog persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a catalog repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns products newest first.
func (r *Repository) List(ctx context.Context, limit, offset int) ([]models.Product, error) {
	var products []models.Product
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}
