package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"wrld-names.backend/internal/domain/entities"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/internal/domain/repositories"
	"wrld-names.backend/internal/infrastructure/models"
)

// recordRepo implements repositories.RecordRepository
type recordRepo struct {
	db *gorm.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *gorm.DB) repositories.RecordRepository {
	return &recordRepo{db: db}
}

// Upsert writes a record, appending the key to the per-type ordered list
// when it is new.
func (r *recordRepo) Upsert(ctx context.Context, record *entities.Record) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var existing models.NameRecord
	err := db.Where("name = ? AND record_type = ? AND key = ?",
		record.Name, string(record.Type), record.Key).First(&existing).Error
	if err == nil {
		updates := map[string]interface{}{
			"value":   record.Value,
			"type_of": record.TypeOf,
			"ttl":     record.TTL,
		}
		return db.Model(&models.NameRecord{}).Where("id = ?", existing.ID).Updates(updates).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	var maxPos int64
	if err := db.Model(&models.NameRecord{}).
		Where("name = ? AND record_type = ?", record.Name, string(record.Type)).
		Select("COALESCE(MAX(position), 0)").Scan(&maxPos).Error; err != nil {
		return err
	}

	m := &models.NameRecord{
		ID:         uuid.New(),
		Name:       record.Name,
		RecordType: string(record.Type),
		Key:        record.Key,
		Value:      record.Value,
		TypeOf:     record.TypeOf,
		TTL:        record.TTL,
		Position:   maxPos + 1,
	}
	return db.Create(m).Error
}

// Get reads a record by (name, type, key)
func (r *recordRepo) Get(ctx context.Context, name string, typ entities.RecordType, key string) (*entities.Record, error) {
	var m models.NameRecord
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("name = ? AND record_type = ? AND key = ?", name, string(typ), key).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListKeys returns the per-type key list in insertion order
func (r *recordRepo) ListKeys(ctx context.Context, name string, typ entities.RecordType) ([]string, error) {
	var keys []string
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.NameRecord{}).
		Where("name = ? AND record_type = ?", name, string(typ)).
		Order("position").Pluck("key", &keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

func (r *recordRepo) toEntity(m *models.NameRecord) *entities.Record {
	return &entities.Record{
		ID:        m.ID,
		Name:      m.Name,
		Type:      entities.RecordType(m.RecordType),
		Key:       m.Key,
		Value:     m.Value,
		TypeOf:    m.TypeOf,
		TTL:       m.TTL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// entryRepo implements repositories.EntryRepository
type entryRepo struct {
	db *gorm.DB
}

// NewEntryRepository creates a new entry repository
func NewEntryRepository(db *gorm.DB) repositories.EntryRepository {
	return &entryRepo{db: db}
}

// Upsert writes an entry under the setter's namespace
func (r *entryRepo) Upsert(ctx context.Context, entry *entities.Entry) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	var existing models.NameEntry
	err := db.Where("setter = ? AND name = ? AND entry_type = ? AND key = ?",
		entry.Setter, entry.Name, string(entry.Type), entry.Key).First(&existing).Error
	if err == nil {
		return db.Model(&models.NameEntry{}).Where("id = ?", existing.ID).
			Update("value", entry.Value).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	m := &models.NameEntry{
		ID:        uuid.New(),
		Setter:    entry.Setter,
		Name:      entry.Name,
		EntryType: string(entry.Type),
		Key:       entry.Key,
		Value:     entry.Value,
	}
	return db.Create(m).Error
}

// Get reads an entry by (setter, name, type, key)
func (r *entryRepo) Get(ctx context.Context, setter, name string, typ entities.RecordType, key string) (*entities.Entry, error) {
	var m models.NameEntry
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("setter = ? AND name = ? AND entry_type = ? AND key = ?", setter, name, string(typ), key).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return &entities.Entry{
		ID:        m.ID,
		Setter:    m.Setter,
		Name:      m.Name,
		Type:      entities.RecordType(m.EntryType),
		Key:       m.Key,
		Value:     m.Value,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}, nil
}
