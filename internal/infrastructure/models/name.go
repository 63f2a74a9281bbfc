package models

import (
	"time"

	"github.com/google/uuid"
)

// Name is the registration row. The name column holds the normalized form
// and is the lookup key; token_id is unique for the life of the name.
type Name struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name              string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	Owner             string    `gorm:"type:varchar(42);not null;index"`
	Controller        string    `gorm:"type:varchar(42);not null"`
	ExpiresAt         int64     `gorm:"not null"`
	TokenID           int64     `gorm:"not null;uniqueIndex"`
	AlternateResolver *string   `gorm:"type:varchar(42)"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
