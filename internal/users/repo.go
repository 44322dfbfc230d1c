package users

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/brickshare-es/brickshare-backend/pkg/db/models"
	"github.com/brickshare-es/brickshare-backend/pkg/enums"
)

// Repository encapsulates user persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a user repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByID loads one user by primary key.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByStripeCustomerID loads the user tied to a billing customer.
func (r *Repository) FindByStripeCustomerID(ctx context.Context, customerID string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "stripe_customer_id = ?", customerID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ActivateSubscription stores the billing identifiers and flips the user active.
// Used when a checkout session completes with the user ID in its metadata.
func (r *Repository) ActivateSubscription(ctx context.Context, userID uuid.UUID, customerID, subscriptionID, plan string) error {
	updates := map[string]any{
		"subscription_status": enums.SubscriptionStatusActive,
	}
	if customerID != "" {
		updates["stripe_customer_id"] = customerID
	}
	if subscriptionID != "" {
		updates["subscription_id"] = subscriptionID
	}
	if plan != "" {
		updates["subscription_type"] = plan
	}
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(updates).
		Error
}

// ActivateSubscriptionByCustomer marks the subscription active for the user
// owning the billing customer. Used on renewal invoices.
func (r *Repository) ActivateSubscriptionByCustomer(ctx context.Context, customerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("stripe_customer_id = ?", customerID).
		Update("subscription_status", enums.SubscriptionStatusActive)
	return result.RowsAffected, result.Error
}

// CancelSubscriptionByCustomer clears subscription state for the user owning
// the billing customer.
func (r *Repository) CancelSubscriptionByCustomer(ctx context.Context, customerID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("stripe_customer_id = ?", customerID).
		Updates(map[string]any{
			"subscription_status": enums.SubscriptionStatusCanceled,
			"subscription_id":     nil,
		})
	return result.RowsAffected, result.Error
}
