package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Product is a LEGO set available for rental.
type Product struct {
	ID          uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name        string         `gorm:"column:name;not null"`
	Description *string        `gorm:"column:description"`
	ImageURL    *string        `gorm:"column:image_url"`
	Theme       string         `gorm:"column:theme;not null"`
	AgeRange    string         `gorm:"column:age_range;not null"`
	PieceCount  int            `gorm:"column:piece_count;not null;default:0"`
	SetRef      *string        `gorm:"column:set_ref"`
	SkillBoost  pq.StringArray `gorm:"column:skill_boost;type:text[]"`
	CreatedAt   time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
