package models

import (
	"time"

	"github.com/google/uuid"
)

// TokenBalance is a WRLD ledger balance row. Balances are decimal strings in
// the token's smallest unit.
type TokenBalance struct {
	Address   string `gorm:"type:varchar(42);primaryKey"`
	Balance   string `gorm:"type:varchar(100);not null;default:'0'"`
	UpdatedAt time.Time
}

// TokenAllowance is a WRLD ledger allowance row.
type TokenAllowance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Owner     string    `gorm:"type:varchar(42);not null;uniqueIndex:idx_allowance_owner_spender"`
	Spender   string    `gorm:"type:varchar(42);not null;uniqueIndex:idx_allowance_owner_spender"`
	Amount    string    `gorm:"type:varchar(100);not null;default:'0'"`
	UpdatedAt time.Time
}

// PassBalance is a pass ledger row per (holder, pass type).
type PassBalance struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Holder    string    `gorm:"type:varchar(42);not null;uniqueIndex:idx_pass_holder_type"`
	PassType  int64     `gorm:"not null;uniqueIndex:idx_pass_holder_type"`
	Quantity  int64     `gorm:"not null;default:0"`
	UpdatedAt time.Time
}

// PassRole records role grants on the pass ledger (burner role for the
// registrar).
type PassRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Role      string    `gorm:"type:varchar(66);not null;uniqueIndex:idx_pass_role_address"`
	Address   string    `gorm:"type:varchar(42);not null;uniqueIndex:idx_pass_role_address"`
	CreatedAt time.Time
}
