package usecases

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"wrld-names.backend/internal/domain/entities"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/internal/domain/repositories"
	"wrld-names.backend/pkg/logger"
	"wrld-names.backend/pkg/utils"
)

// AlternateResolver resolves records against an external per-name resolver.
// Bound resolvers fully replace the registry's own record storage on reads.
type AlternateResolver interface {
	GetRecord(ctx context.Context, resolverAddress, name string, typ entities.RecordType, key string) (*entities.Record, error)
	ListRecordKeys(ctx context.Context, resolverAddress, name string, typ entities.RecordType) ([]string, error)
}

// RegistryUsecase is the canonical source of truth for name ownership,
// token-ID mapping and record/entry storage. Registration state is only
// mutable by approved registrars; records only by a name's owner/controller.
type RegistryUsecase struct {
	nameRepo     repositories.NameRepository
	recordRepo   repositories.RecordRepository
	entryRepo    repositories.EntryRepository
	settingsRepo repositories.SettingsRepository
	altResolver  AlternateResolver
	bridge       Bridge
	metadata     MetadataProvider
	cache        RecordCache
	owner        string
	yearSeconds  int64
	now          func() time.Time
}

// NewRegistryUsecase creates a new registry usecase. altResolver, bridge,
// metadata and cache may be nil; the corresponding operations then fail with
// a binding error or skip caching.
func NewRegistryUsecase(
	nameRepo repositories.NameRepository,
	recordRepo repositories.RecordRepository,
	entryRepo repositories.EntryRepository,
	settingsRepo repositories.SettingsRepository,
	altResolver AlternateResolver,
	bridge Bridge,
	metadata MetadataProvider,
	cache RecordCache,
	owner string,
	yearSeconds int64,
) *RegistryUsecase {
	if yearSeconds <= 0 {
		yearSeconds = DefaultYearSeconds
	}
	return &RegistryUsecase{
		nameRepo:     nameRepo,
		recordRepo:   recordRepo,
		entryRepo:    entryRepo,
		settingsRepo: settingsRepo,
		altResolver:  altResolver,
		bridge:       bridge,
		metadata:     metadata,
		cache:        cache,
		owner:        common.HexToAddress(owner).Hex(),
		yearSeconds:  yearSeconds,
		now:          time.Now,
	}
}

// SetClock overrides the registry clock. Used by tests to drive expiry.
func (u *RegistryUsecase) SetClock(now func() time.Time) {
	u.now = now
}

// Register creates or reclaims registrations for a batch of names. Caller
// must be an approved registrar; end users go through the Registrar. A name
// that is live and owned by someone else fails the whole batch. Expired names
// and names re-registered by their current owner keep their token ID.
func (u *RegistryUsecase) Register(ctx context.Context, caller, to string, names []string, years []int64) error {
	if err := u.requireApprovedRegistrar(ctx, caller); err != nil {
		return err
	}
	if len(names) == 0 || len(names) != len(years) {
		return domainerrors.ErrLengthMismatch
	}

	to = common.HexToAddress(to).Hex()
	now := u.now().Unix()

	for i, raw := range names {
		if years[i] <= 0 {
			return domainerrors.ErrInvalidDuration
		}
		name := NormalizeName(raw)
		if NameLength(name) == 0 {
			return domainerrors.ErrInvalidName
		}
		expiresAt := now + years[i]*u.yearSeconds

		existing, err := u.nameRepo.GetByName(ctx, name)
		if err != nil && err != domainerrors.ErrNotFound {
			return err
		}

		if existing != nil {
			if !existing.IsExpired(now) && existing.Owner != to {
				return domainerrors.ErrNameTaken
			}
			// Reclaim or re-register to the same owner: owner and controller
			// reset, token ID preserved.
			existing.Owner = to
			existing.Controller = to
			existing.ExpiresAt = expiresAt
			if err := u.nameRepo.Update(ctx, existing); err != nil {
				return err
			}
		} else {
			tokenID, err := u.nameRepo.NextTokenID(ctx)
			if err != nil {
				return err
			}
			if err := u.nameRepo.Create(ctx, &entities.Name{
				Name:       name,
				Owner:      to,
				Controller: to,
				ExpiresAt:  expiresAt,
				TokenID:    tokenID,
			}); err != nil {
				return err
			}
		}

		if err := u.recordRepo.Upsert(ctx, &entities.Record{
			Name:  name,
			Type:  entities.RecordTypeAddress,
			Key:   entities.DefaultAddressRecordKey,
			Value: to,
		}); err != nil {
			return err
		}
		u.invalidate(ctx, name, entities.RecordTypeAddress, entities.DefaultAddressRecordKey)

		logger.Info(ctx, "name registered",
			zap.String("name", name),
			zap.String("owner", to),
			zap.Int64("years", years[i]),
		)
	}
	return nil
}

// ExtendRegistration adds years to existing registrations. Registrar-only.
func (u *RegistryUsecase) ExtendRegistration(ctx context.Context, caller string, names []string, years []int64) error {
	if err := u.requireApprovedRegistrar(ctx, caller); err != nil {
		return err
	}
	if len(names) == 0 || len(names) != len(years) {
		return domainerrors.ErrLengthMismatch
	}

	for i, raw := range names {
		if years[i] <= 0 {
			return domainerrors.ErrInvalidDuration
		}
		name, err := u.nameRepo.GetByName(ctx, NormalizeName(raw))
		if err != nil {
			if err == domainerrors.ErrNotFound {
				return domainerrors.ErrNotRegistered
			}
			return err
		}
		name.ExpiresAt += years[i] * u.yearSeconds
		if err := u.nameRepo.Update(ctx, name); err != nil {
			return err
		}
	}
	return nil
}

// GetName returns the full registration read shape
func (u *RegistryUsecase) GetName(ctx context.Context, name string) (*entities.NameInfo, error) {
	n, err := u.get(ctx, name)
	if err != nil {
		return nil, err
	}
	return n.Info(), nil
}

// GetNameOwner returns the owner address
func (u *RegistryUsecase) GetNameOwner(ctx context.Context, name string) (string, error) {
	n, err := u.get(ctx, name)
	if err != nil {
		return "", err
	}
	return n.Owner, nil
}

// GetNameController returns the controller address
func (u *RegistryUsecase) GetNameController(ctx context.Context, name string) (string, error) {
	n, err := u.get(ctx, name)
	if err != nil {
		return "", err
	}
	return n.Controller, nil
}

// GetNameExpiration returns the expiry unix timestamp
func (u *RegistryUsecase) GetNameExpiration(ctx context.Context, name string) (int64, error) {
	n, err := u.get(ctx, name)
	if err != nil {
		return 0, err
	}
	return n.ExpiresAt, nil
}

// GetNameTokenID returns the token ID
func (u *RegistryUsecase) GetNameTokenID(ctx context.Context, name string) (int64, error) {
	n, err := u.get(ctx, name)
	if err != nil {
		return 0, err
	}
	return n.TokenID, nil
}

// GetTokenName returns the name a token ID is bound to
func (u *RegistryUsecase) GetTokenName(ctx context.Context, tokenID int64) (string, error) {
	n, err := u.nameRepo.GetByTokenID(ctx, tokenID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return "", domainerrors.ErrNotRegistered
		}
		return "", err
	}
	return n.Name, nil
}

// ListNames returns a page of registrations with the total count
func (u *RegistryUsecase) ListNames(ctx context.Context, pagination utils.PaginationParams) ([]*entities.NameInfo, int64, error) {
	names, total, err := u.nameRepo.List(ctx, pagination)
	if err != nil {
		return nil, 0, err
	}
	infos := make([]*entities.NameInfo, len(names))
	for i, n := range names {
		infos[i] = n.Info()
	}
	return infos, total, nil
}

// SetController reassigns the controller. Owner only.
func (u *RegistryUsecase) SetController(ctx context.Context, caller, name, newController string) error {
	n, err := u.get(ctx, name)
	if err != nil {
		return err
	}
	if common.HexToAddress(caller).Hex() != n.Owner {
		return domainerrors.ErrForbidden
	}
	if !common.IsHexAddress(newController) {
		return domainerrors.ErrInvalidInput
	}
	n.Controller = common.HexToAddress(newController).Hex()
	return u.nameRepo.Update(ctx, n)
}

// SetRecord upserts a typed record. Only the name's owner or controller may
// write records.
func (u *RegistryUsecase) SetRecord(ctx context.Context, caller, name string, typ entities.RecordType, key string, input *entities.SetRecordInput) error {
	n, err := u.get(ctx, name)
	if err != nil {
		return err
	}
	callerAddr := common.HexToAddress(caller).Hex()
	if callerAddr != n.Owner && callerAddr != n.Controller {
		return domainerrors.ErrForbidden
	}
	if !entities.ValidateRecordValue(typ, input.Value) {
		return domainerrors.ErrInvalidInput
	}
	if input.TTL < 0 {
		return domainerrors.ErrInvalidInput
	}

	value := input.Value
	if typ == entities.RecordTypeAddress {
		value = common.HexToAddress(value).Hex()
	}
	typeOf := ""
	if typ == entities.RecordTypeString {
		typeOf = input.TypeOf
	}

	if err := u.recordRepo.Upsert(ctx, &entities.Record{
		Name:   n.Name,
		Type:   typ,
		Key:    key,
		Value:  value,
		TypeOf: typeOf,
		TTL:    input.TTL,
	}); err != nil {
		return err
	}
	u.invalidate(ctx, n.Name, typ, key)
	return nil
}

// GetRecord reads a typed record, delegating to the name's alternate
// resolver when one is bound.
func (u *RegistryUsecase) GetRecord(ctx context.Context, name string, typ entities.RecordType, key string) (*entities.Record, error) {
	n, err := u.get(ctx, name)
	if err != nil {
		return nil, err
	}
	if n.HasAlternateResolver() {
		if u.altResolver == nil {
			return nil, domainerrors.BadRequest("alternate resolver is not available")
		}
		return u.altResolver.GetRecord(ctx, n.AlternateResolver.String, n.Name, typ, key)
	}
	return u.recordRepo.Get(ctx, n.Name, typ, key)
}

// GetRecordsList returns the ordered key list for a record type
func (u *RegistryUsecase) GetRecordsList(ctx context.Context, name string, typ entities.RecordType) ([]string, error) {
	n, err := u.get(ctx, name)
	if err != nil {
		return nil, err
	}
	if n.HasAlternateResolver() {
		if u.altResolver == nil {
			return nil, domainerrors.BadRequest("alternate resolver is not available")
		}
		return u.altResolver.ListRecordKeys(ctx, n.AlternateResolver.String, n.Name, typ)
	}
	return u.recordRepo.ListKeys(ctx, n.Name, typ)
}

// SetEntry upserts a caller-namespaced entry. Never gated by ownership; the
// name does not have to exist.
func (u *RegistryUsecase) SetEntry(ctx context.Context, caller, name string, typ entities.RecordType, key, value string) error {
	if !entities.ValidateRecordValue(typ, value) {
		return domainerrors.ErrInvalidInput
	}
	if typ == entities.RecordTypeAddress {
		value = common.HexToAddress(value).Hex()
	}
	return u.entryRepo.Upsert(ctx, &entities.Entry{
		Setter: common.HexToAddress(caller).Hex(),
		Name:   NormalizeName(name),
		Type:   typ,
		Key:    key,
		Value:  value,
	})
}

// GetEntry reads an entry; absent entries resolve to the type's zero value.
func (u *RegistryUsecase) GetEntry(ctx context.Context, setter, name string, typ entities.RecordType, key string) (*entities.Entry, error) {
	entry, err := u.entryRepo.Get(ctx, common.HexToAddress(setter).Hex(), NormalizeName(name), typ, key)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return &entities.Entry{
				Setter: common.HexToAddress(setter).Hex(),
				Name:   NormalizeName(name),
				Type:   typ,
				Key:    key,
				Value:  entities.ZeroRecordValue(typ),
			}, nil
		}
		return nil, err
	}
	return entry, nil
}

// Migrate forwards a migration request to the bound bridge. Owner or
// controller only; bridge rejection aborts.
func (u *RegistryUsecase) Migrate(ctx context.Context, caller, name string, mode int64) error {
	n, err := u.get(ctx, name)
	if err != nil {
		return err
	}
	callerAddr := common.HexToAddress(caller).Hex()
	if callerAddr != n.Owner && callerAddr != n.Controller {
		return domainerrors.ErrForbidden
	}

	if _, err := u.settingsRepo.Get(ctx, repositories.SettingBridgeContract); err != nil {
		if err == domainerrors.ErrNotFound {
			return domainerrors.BadRequest("bridge contract is not set")
		}
		return err
	}
	if u.bridge == nil {
		return domainerrors.BadRequest("bridge contract is not set")
	}

	if err := u.bridge.Migrate(ctx, n.Name, mode); err != nil {
		logger.Warn(ctx, "bridge rejected migration", zap.String("name", n.Name), zap.Error(err))
		return domainerrors.ErrBridgeRejected
	}
	return nil
}

// TokenURI renders metadata for a token via the bound metadata provider
func (u *RegistryUsecase) TokenURI(ctx context.Context, tokenID int64) (string, error) {
	if _, err := u.settingsRepo.Get(ctx, repositories.SettingMetadataContract); err != nil {
		if err == domainerrors.ErrNotFound {
			return "", domainerrors.BadRequest("metadata contract is not set")
		}
		return "", err
	}
	if u.metadata == nil {
		return "", domainerrors.BadRequest("metadata contract is not set")
	}

	n, err := u.nameRepo.GetByTokenID(ctx, tokenID)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return "", domainerrors.ErrNotRegistered
		}
		return "", err
	}
	return u.metadata.TokenURI(n.TokenID, n.Name, n.ExpiresAt)
}

// SetApprovedRegistrar toggles registrar approval. Registry owner only.
func (u *RegistryUsecase) SetApprovedRegistrar(ctx context.Context, caller, address string, approved bool) error {
	if err := u.requireOwner(caller); err != nil {
		return err
	}
	if !common.IsHexAddress(address) {
		return domainerrors.ErrInvalidInput
	}
	return u.settingsRepo.ApproveRegistrar(ctx, common.HexToAddress(address).Hex(), approved)
}

// SetBinding updates one of the owner-only contract bindings (resolver,
// bridge, metadata).
func (u *RegistryUsecase) SetBinding(ctx context.Context, caller, settingKey, address string) error {
	if err := u.requireOwner(caller); err != nil {
		return err
	}
	if !common.IsHexAddress(address) {
		return domainerrors.ErrInvalidInput
	}
	return u.settingsRepo.Set(ctx, settingKey, common.HexToAddress(address).Hex())
}

// SetAlternateResolver binds or clears a per-name alternate resolver.
// Registry owner only; an empty address clears the binding.
func (u *RegistryUsecase) SetAlternateResolver(ctx context.Context, caller, name, resolverAddress string) error {
	if err := u.requireOwner(caller); err != nil {
		return err
	}
	n, err := u.get(ctx, name)
	if err != nil {
		return err
	}

	if resolverAddress == "" {
		n.AlternateResolver.Valid = false
		n.AlternateResolver.String = ""
	} else {
		if !common.IsHexAddress(resolverAddress) {
			return domainerrors.ErrInvalidInput
		}
		n.AlternateResolver.SetValid(common.HexToAddress(resolverAddress).Hex())
	}
	return u.nameRepo.Update(ctx, n)
}

func (u *RegistryUsecase) get(ctx context.Context, name string) (*entities.Name, error) {
	n, err := u.nameRepo.GetByName(ctx, NormalizeName(name))
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.ErrNotRegistered
		}
		return nil, err
	}
	return n, nil
}

func (u *RegistryUsecase) requireApprovedRegistrar(ctx context.Context, caller string) error {
	approved, err := u.settingsRepo.IsApprovedRegistrar(ctx, common.HexToAddress(caller).Hex())
	if err != nil {
		return err
	}
	if !approved {
		return domainerrors.ErrNotApprovedRegistrar
	}
	return nil
}

func (u *RegistryUsecase) requireOwner(caller string) error {
	if common.HexToAddress(caller).Hex() != u.owner {
		return domainerrors.ErrForbidden
	}
	return nil
}

func (u *RegistryUsecase) invalidate(ctx context.Context, name string, typ entities.RecordType, key string) {
	if u.cache != nil {
		u.cache.Del(ctx, recordCacheKey(name, typ, key))
	}
}
