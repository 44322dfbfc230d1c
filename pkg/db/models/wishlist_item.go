package models

import (
	"time"

	"github.com/google/uuid"
)

// WishlistItem links a user to a favorited set. Existence implies "favorited".
type WishlistItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index:wishlist_user_id_idx;uniqueIndex:wishlist_user_product_key"`
	ProductID uuid.UUID `gorm:"column:product_id;type:uuid;not null;index:wishlist_product_id_idx;uniqueIndex:wishlist_user_product_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName matches the original single-word table.
func (WishlistItem) TableName() string {
	return "wishlist"
}
