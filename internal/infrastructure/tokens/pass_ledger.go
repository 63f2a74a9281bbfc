package tokens

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/internal/domain/repositories"
	infraRepos "wrld-names.backend/internal/infrastructure/repositories"
	"wrld-names.backend/internal/infrastructure/models"
)

// passLedger implements PassLedger on the database: per (holder, pass type)
// quantities plus role grants. Burning is gated by the burner role, matching
// the role granted to the registrar at deployment.
type passLedger struct {
	db *gorm.DB
}

// NewPassLedger creates the database-backed pass ledger
func NewPassLedger(db *gorm.DB) repositories.PassLedger {
	return &passLedger{db: db}
}

// BalanceOf returns the pass quantity held (zero when absent)
func (l *passLedger) BalanceOf(ctx context.Context, holder string, passType int64) (int64, error) {
	var m models.PassBalance
	err := infraRepos.GetDB(ctx, l.db).WithContext(ctx).
		Where("holder = ? AND pass_type = ?", canonical(holder), passType).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return m.Quantity, nil
}

// Mint credits passes to an address
func (l *passLedger) Mint(ctx context.Context, to string, passType, quantity int64) error {
	if quantity <= 0 {
		return domainerrors.ErrInvalidInput
	}
	return l.adjust(ctx, canonical(to), passType, quantity)
}

// SafeTransferFrom moves passes between holders; only the holder may move
// their own passes.
func (l *passLedger) SafeTransferFrom(ctx context.Context, caller, from, to string, passType, quantity int64) error {
	if quantity <= 0 {
		return domainerrors.ErrInvalidInput
	}
	caller, from, to = canonical(caller), canonical(from), canonical(to)
	if caller != from {
		return domainerrors.ErrForbidden
	}

	balance, err := l.BalanceOf(ctx, from, passType)
	if err != nil {
		return err
	}
	if balance < quantity {
		return domainerrors.ErrNoPass
	}

	if err := l.adjust(ctx, from, passType, -quantity); err != nil {
		return err
	}
	return l.adjust(ctx, to, passType, quantity)
}

// Burn consumes passes from a holder; caller must hold the burner role
func (l *passLedger) Burn(ctx context.Context, caller, holder string, passType, quantity int64) error {
	if quantity <= 0 {
		return domainerrors.ErrInvalidInput
	}
	authorized, err := l.HasRole(ctx, repositories.PassBurnerRole, caller)
	if err != nil {
		return err
	}
	if !authorized {
		return domainerrors.ErrForbidden
	}

	holder = canonical(holder)
	balance, err := l.BalanceOf(ctx, holder, passType)
	if err != nil {
		return err
	}
	if balance < quantity {
		return domainerrors.ErrNoPass
	}
	return l.adjust(ctx, holder, passType, -quantity)
}

// GrantRole records a role grant
func (l *passLedger) GrantRole(ctx context.Context, role, address string) error {
	db := infraRepos.GetDB(ctx, l.db).WithContext(ctx)
	address = canonical(address)

	var existing models.PassRole
	err := db.Where("role = ? AND address = ?", role, address).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return db.Create(&models.PassRole{ID: uuid.New(), Role: role, Address: address}).Error
}

// HasRole reports whether the address holds the role
func (l *passLedger) HasRole(ctx context.Context, role, address string) (bool, error) {
	var m models.PassRole
	err := infraRepos.GetDB(ctx, l.db).WithContext(ctx).
		Where("role = ? AND address = ?", role, canonical(address)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (l *passLedger) adjust(ctx context.Context, holder string, passType, delta int64) error {
	db := infraRepos.GetDB(ctx, l.db).WithContext(ctx)

	var m models.PassBalance
	err := db.Where("holder = ? AND pass_type = ?", holder, passType).First(&m).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if delta < 0 {
			return domainerrors.ErrNoPass
		}
		return db.Create(&models.PassBalance{
			ID:       uuid.New(),
			Holder:   holder,
			PassType: passType,
			Quantity: delta,
		}).Error
	}

	next := m.Quantity + delta
	if next < 0 {
		return domainerrors.ErrNoPass
	}
	return db.Model(&models.PassBalance{}).Where("id = ?", m.ID).Update("quantity", next).Error
}
