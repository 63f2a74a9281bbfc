package usecases

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"wrld-names.backend/internal/domain/entities"
	"wrld-names.backend/pkg/logger"
)

// ResolverUsecase is the read-side resolution surface. It serves typed
// record lookups through the registry, with an optional TTL-driven cache:
// a record is cached only when its TTL is positive, for that many seconds.
type ResolverUsecase struct {
	registry *RegistryUsecase
	cache    RecordCache
}

// NewResolverUsecase creates a new resolver usecase. cache may be nil.
func NewResolverUsecase(registry *RegistryUsecase, cache RecordCache) *ResolverUsecase {
	return &ResolverUsecase{registry: registry, cache: cache}
}

// Resolve reads one typed record for a name
func (u *ResolverUsecase) Resolve(ctx context.Context, name string, typ entities.RecordType, key string) (*entities.Record, error) {
	name = NormalizeName(name)

	if u.cache != nil {
		if raw, ok := u.cache.Get(ctx, recordCacheKey(name, typ, key)); ok {
			var rec entities.Record
			if err := json.Unmarshal([]byte(raw), &rec); err == nil {
				return &rec, nil
			}
			logger.Warn(ctx, "dropping undecodable cached record",
				zap.String("name", name), zap.String("key", key))
		}
	}

	rec, err := u.registry.GetRecord(ctx, name, typ, key)
	if err != nil {
		return nil, err
	}

	if u.cache != nil && rec.TTL > 0 {
		if raw, err := json.Marshal(rec); err == nil {
			u.cache.Set(ctx, recordCacheKey(name, typ, key), string(raw), time.Duration(rec.TTL)*time.Second)
		}
	}
	return rec, nil
}

// ResolveAddress resolves a name to its default EVM address
func (u *ResolverUsecase) ResolveAddress(ctx context.Context, name string) (string, error) {
	rec, err := u.Resolve(ctx, name, entities.RecordTypeAddress, entities.DefaultAddressRecordKey)
	if err != nil {
		return "", err
	}
	return rec.Value, nil
}

// ListKeys returns the ordered record keys of a type for a name
func (u *ResolverUsecase) ListKeys(ctx context.Context, name string, typ entities.RecordType) ([]string, error) {
	return u.registry.GetRecordsList(ctx, NormalizeName(name), typ)
}
