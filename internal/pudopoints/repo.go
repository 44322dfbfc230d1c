package pudopoints

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
)

// Repository encapsulates persistence for the per-user Correos selection.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a pudo point repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Get returns the user's selected point, or nil when none is stored.
// Absence is an ordinary outcome here, not an error.
func (r *Repository) Get(ctx context.Context, userID uuid.UUID) (*models.PudoPoint, error) {
	var point models.PudoPoint
	err := r.db.WithContext(ctx).First(&point, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &point, nil
}

// Save upserts the user's selection. A save always replaces the whole row and
// stamps a fresh selection time; stale fields from a prior point never survive.
func (r *Repository) Save(ctx context.Context, point *models.PudoPoint) error {
	if point == nil || point.UserID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	point.CorreosFechaSeleccion = time.Now().UTC()
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			UpdateAll: true,
		}).
		Create(point).
		Error
}

// Delete removes the user's selection. Deleting an absent row succeeds.
func (r *Repository) Delete(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.PudoPoint{}).
		Error
}
