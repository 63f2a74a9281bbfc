package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"wrld-names.backend/internal/domain/entities"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/internal/domain/repositories"
	"wrld-names.backend/internal/infrastructure/models"
	"wrld-names.backend/pkg/utils"
)

// nameRepo implements repositories.NameRepository
type nameRepo struct {
	db *gorm.DB
}

// NewNameRepository creates a new name repository
func NewNameRepository(db *gorm.DB) repositories.NameRepository {
	return &nameRepo{db: db}
}

// GetByName gets a registration by its normalized name
func (r *nameRepo) GetByName(ctx context.Context, name string) (*entities.Name, error) {
	var m models.Name
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("name = ?", name).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByTokenID gets a registration by token ID
func (r *nameRepo) GetByTokenID(ctx context.Context, tokenID int64) (*entities.Name, error) {
	var m models.Name
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("token_id = ?", tokenID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Create creates a new registration row
func (r *nameRepo) Create(ctx context.Context, name *entities.Name) error {
	if name.ID == uuid.Nil {
		name.ID = uuid.New()
	}
	m := r.toModel(name)
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	name.CreatedAt = m.CreatedAt
	name.UpdatedAt = m.UpdatedAt
	return nil
}

// Update rewrites the mutable registration fields
func (r *nameRepo) Update(ctx context.Context, name *entities.Name) error {
	var alt *string
	if name.AlternateResolver.Valid {
		alt = &name.AlternateResolver.String
	}
	updates := map[string]interface{}{
		"owner":              name.Owner,
		"controller":         name.Controller,
		"expires_at":         name.ExpiresAt,
		"alternate_resolver": alt,
	}

	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Name{}).Where("id = ?", name.ID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// NextTokenID returns MAX(token_id)+1. Runs inside the registration
// transaction, so assignment order matches registration order.
func (r *nameRepo) NextTokenID(ctx context.Context) (int64, error) {
	var max int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Name{}).
		Select("COALESCE(MAX(token_id), 0)").Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// List returns registrations ordered by token ID
func (r *nameRepo) List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Name, int64, error) {
	var ms []models.Name
	var totalCount int64

	query := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Name{})
	if err := query.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("token_id")
	if pagination.Limit > 0 {
		query = query.Limit(pagination.Limit).Offset(pagination.CalculateOffset())
	}

	if err := query.Find(&ms).Error; err != nil {
		return nil, 0, err
	}

	var names []*entities.Name
	for _, m := range ms {
		model := m
		names = append(names, r.toEntity(&model))
	}
	return names, totalCount, nil
}

func (r *nameRepo) toEntity(m *models.Name) *entities.Name {
	e := &entities.Name{
		ID:         m.ID,
		Name:       m.Name,
		Owner:      m.Owner,
		Controller: m.Controller,
		ExpiresAt:  m.ExpiresAt,
		TokenID:    m.TokenID,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
	if m.AlternateResolver != nil {
		e.AlternateResolver = null.StringFrom(*m.AlternateResolver)
	}
	return e
}

func (r *nameRepo) toModel(e *entities.Name) *models.Name {
	m := &models.Name{
		ID:         e.ID,
		Name:       e.Name,
		Owner:      e.Owner,
		Controller: e.Controller,
		ExpiresAt:  e.ExpiresAt,
		TokenID:    e.TokenID,
	}
	if e.AlternateResolver.Valid {
		m.AlternateResolver = &e.AlternateResolver.String
	}
	return m
}
