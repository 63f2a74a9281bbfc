package repositories

import (
	"context"

	"wrld-names.backend/internal/domain/entities"
	"wrld-names.backend/pkg/utils"
)

// NameRepository defines name registration data operations. All name
// arguments are expected to be normalized by the caller.
type NameRepository interface {
	GetByName(ctx context.Context, name string) (*entities.Name, error)
	GetByTokenID(ctx context.Context, tokenID int64) (*entities.Name, error)
	Create(ctx context.Context, name *entities.Name) error
	Update(ctx context.Context, name *entities.Name) error
	// NextTokenID returns the next unassigned token ID. Token IDs start at 1
	// and are assigned in registration order.
	NextTokenID(ctx context.Context) (int64, error)
	List(ctx context.Context, pagination utils.PaginationParams) ([]*entities.Name, int64, error)
}
