package models

import (
	"time"

	"github.com/google/uuid"
)

// NameRecord stores one typed record. Position preserves key insertion order
// within (name, record_type) for the records list reads.
type NameRecord struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_record_name_type_key"`
	RecordType string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_record_name_type_key"`
	Key        string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_record_name_type_key"`
	Value      string    `gorm:"type:text;not null"`
	TypeOf     string    `gorm:"type:varchar(100)"`
	TTL        int64     `gorm:"not null;default:0"`
	Position   int64     `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NameEntry stores one caller-namespaced entry. Unlike records, rows are
// keyed by the setter as well, and the name need not be registered.
type NameEntry struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Setter    string    `gorm:"type:varchar(42);not null;uniqueIndex:idx_entry_setter_name_type_key"`
	Name      string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_entry_setter_name_type_key"`
	EntryType string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_entry_setter_name_type_key"`
	Key       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_entry_setter_name_type_key"`
	Value     string    `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
