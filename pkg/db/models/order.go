package models

import (
	"time"

	"github.com/google/uuid"
)

// Order records one rental cycle of a set by a user.
type Order struct {
	ID             uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID         uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	SetID          *uuid.UUID `gorm:"column:set_id;type:uuid;index"`
	OrderDate      time.Time  `gorm:"column:order_date;not null"`
	ShippedDate    *time.Time `gorm:"column:shipped_date"`
	DeliveredDate  *time.Time `gorm:"column:delivered_date"`
	ReturnedDate   *time.Time `gorm:"column:returned_date"`
	Status         string     `gorm:"column:status;not null;default:'pendiente'"`
	TrackingNumber *string    `gorm:"column:tracking_number"`
	Notes          *string    `gorm:"column:notes"`
	Set            *Product   `gorm:"foreignKey:SetID"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
