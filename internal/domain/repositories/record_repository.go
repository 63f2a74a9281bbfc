package repositories

import (
	"context"

	"wrld-names.backend/internal/domain/entities"
)

// RecordRepository defines typed record storage for names. Key lists preserve
// insertion order per record type.
type RecordRepository interface {
	Upsert(ctx context.Context, record *entities.Record) error
	Get(ctx context.Context, name string, typ entities.RecordType, key string) (*entities.Record, error)
	ListKeys(ctx context.Context, name string, typ entities.RecordType) ([]string, error)
}

// EntryRepository defines caller-namespaced entry storage. Absent entries are
// not an error at this layer; Get returns ErrNotFound and the usecase maps it
// to the type's zero value.
type EntryRepository interface {
	Upsert(ctx context.Context, entry *entities.Entry) error
	Get(ctx context.Context, setter, name string, typ entities.RecordType, key string) (*entities.Entry, error)
}
