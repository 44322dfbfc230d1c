package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brickshare-es/brickshare-backend/pkg/enums"
)

// User represents the canonical identity entity. Authentication lives in an
// external provider; this row carries profile and subscription state only.
type User struct {
	ID                 uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email              string                   `gorm:"type:text;not null;uniqueIndex"`
	FullName           *string                  `gorm:"column:full_name"`
	Phone              *string                  `gorm:"column:phone"`
	Role               enums.UserRole           `gorm:"column:role;type:text;not null;default:'cliente'"`
	StripeCustomerID   *string                  `gorm:"column:stripe_customer_id;uniqueIndex"`
	SubscriptionID     *string                  `gorm:"column:subscription_id"`
	SubscriptionStatus enums.SubscriptionStatus `gorm:"column:subscription_status;type:text;not null;default:'inactive'"`
	SubscriptionType   *string                  `gorm:"column:subscription_type"`
	CreatedAt          time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
