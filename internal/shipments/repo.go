package shipments

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
)

// Repository encapsulates shipment persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a shipment repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns every shipment with its order, rented set and owning user
// preloaded, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Set").
		Preload("User").
		Order("created_at DESC").
		Find(&shipments).
		Error
	if err != nil {
		return nil, err
	}
	return shipments, nil
}

// FindByID loads one shipment with its joined context.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Shipment, error) {
	var shipment models.Shipment
	err := r.db.WithContext(ctx).
		Preload("Order").
		Preload("Order.Set").
		Preload("User").
		First(&shipment, "id = ?", id).
		Error
	if err != nil {
		return nil, err
	}
	return &shipment, nil
}

// Update applies the given column updates to one shipment.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Model(&models.Shipment{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}
