package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
)

// Repository encapsulates order persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an order repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListForUser returns the user's orders with their rented set, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.WithContext(ctx).
		Preload("Set").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).
		Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
