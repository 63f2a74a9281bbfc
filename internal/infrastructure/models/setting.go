package models

import "time"

// Setting is a single owner-mutable key-value row (bindings, gate, prices).
type Setting struct {
	Key       string `gorm:"type:varchar(100);primaryKey"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// ApprovedRegistrar records which addresses may mutate registration state.
type ApprovedRegistrar struct {
	Address   string `gorm:"type:varchar(42);primaryKey"`
	Approved  bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
