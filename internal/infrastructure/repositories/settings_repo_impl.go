package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/internal/domain/repositories"
	"wrld-names.backend/internal/infrastructure/models"
)

// settingsRepo implements repositories.SettingsRepository
type settingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repositories.SettingsRepository {
	return &settingsRepo{db: db}
}

// Get reads a setting value
func (r *settingsRepo) Get(ctx context.Context, key string) (string, error) {
	var m models.Setting
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("key = ?", key).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domainerrors.ErrNotFound
		}
		return "", err
	}
	return m.Value, nil
}

// Set upserts a setting value
func (r *settingsRepo) Set(ctx context.Context, key, value string) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Model(&models.Setting{}).Where("key = ?", key).Update("value", value)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return db.Create(&models.Setting{Key: key, Value: value}).Error
	}
	return nil
}

// ApproveRegistrar toggles registrar approval for an address
func (r *settingsRepo) ApproveRegistrar(ctx context.Context, address string, approved bool) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Model(&models.ApprovedRegistrar{}).Where("address = ?", address).Update("approved", approved)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return db.Create(&models.ApprovedRegistrar{Address: address, Approved: approved}).Error
	}
	return nil
}

// IsApprovedRegistrar reports whether an address may mutate registrations
func (r *settingsRepo) IsApprovedRegistrar(ctx context.Context, address string) (bool, error) {
	var m models.ApprovedRegistrar
	err := GetDB(ctx, r.db).WithContext(ctx).Where("address = ?", address).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return m.Approved, nil
}
