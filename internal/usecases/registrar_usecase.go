package usecases

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"wrld-names.backend/internal/domain/entities"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/internal/domain/repositories"
	"wrld-names.backend/pkg/logger"
)

// RegistrarUsecase is the public registration surface. It prices and charges
// paid registrations, consumes passes for free ones, and forwards the actual
// registration to the registry under its own approved-registrar identity.
type RegistrarUsecase struct {
	registry     *RegistryUsecase
	settingsRepo repositories.SettingsRepository
	payment      repositories.PaymentTokenLedger
	passes       repositories.PassLedger
	uow          repositories.UnitOfWork
	address      string
	owner        string
	passType     int64
	minLength    int
}

// NewRegistrarUsecase creates a new registrar usecase. address is the
// registrar's own approved identity at the registry and the destination for
// collected fees.
func NewRegistrarUsecase(
	registry *RegistryUsecase,
	settingsRepo repositories.SettingsRepository,
	payment repositories.PaymentTokenLedger,
	passes repositories.PassLedger,
	uow repositories.UnitOfWork,
	address, owner string,
	passType int64,
	minLength int,
) *RegistrarUsecase {
	if minLength <= 0 {
		minLength = MinStandardNameLength
	}
	return &RegistrarUsecase{
		registry:     registry,
		settingsRepo: settingsRepo,
		payment:      payment,
		passes:       passes,
		uow:          uow,
		address:      common.HexToAddress(address).Hex(),
		owner:        common.HexToAddress(owner).Hex(),
		passType:     passType,
		minLength:    minLength,
	}
}

// Address returns the registrar's own identity address
func (u *RegistrarUsecase) Address() string {
	return u.address
}

// EnableRegistration opens paid registration. Owner only, one way.
func (u *RegistrarUsecase) EnableRegistration(ctx context.Context, caller string) error {
	if err := u.requireOwner(caller); err != nil {
		return err
	}
	return u.settingsRepo.Set(ctx, repositories.SettingRegistrationEnabled, "true")
}

// RegistrationEnabled reports whether the paid path is open
func (u *RegistrarUsecase) RegistrationEnabled(ctx context.Context) (bool, error) {
	v, err := u.settingsRepo.Get(ctx, repositories.SettingRegistrationEnabled)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			return false, nil
		}
		return false, err
	}
	return v == "true", nil
}

// Register performs a paid batch registration. The caller pays the summed
// price for all names up front; any failing name aborts the whole batch.
func (u *RegistrarUsecase) Register(ctx context.Context, caller string, input *entities.RegisterInput) error {
	enabled, err := u.RegistrationEnabled(ctx)
	if err != nil {
		return err
	}
	if !enabled {
		return domainerrors.ErrRegistrationDisabled
	}

	years, err := broadcastYears(input.Names, input.Years)
	if err != nil {
		return err
	}
	if err := u.checkMinLengths(input.Names); err != nil {
		return err
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		total, err := u.quote(ctx, input.Names, years)
		if err != nil {
			return err
		}
		payer := common.HexToAddress(caller).Hex()
		if err := u.payment.TransferFrom(ctx, u.address, payer, u.address, total); err != nil {
			return err
		}
		if err := u.registry.Register(ctx, u.address, payer, input.Names, years); err != nil {
			return err
		}
		logger.Info(ctx, "paid registration",
			zap.String("payer", payer),
			zap.Int("names", len(input.Names)),
			zap.String("total", total.String()),
		)
		return nil
	})
}

// RegisterWithPass registers names for one year each by consuming one pass
// per name. The registrar owner registers for free without holding passes
// and may take one and two character names.
func (u *RegistrarUsecase) RegisterWithPass(ctx context.Context, caller string, names []string) error {
	if len(names) == 0 {
		return domainerrors.ErrInvalidInput
	}
	callerAddr := common.HexToAddress(caller).Hex()
	isOwner := callerAddr == u.owner

	if !isOwner {
		if err := u.checkMinLengths(names); err != nil {
			return err
		}
	}

	years := make([]int64, len(names))
	for i := range years {
		years[i] = 1
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		if !isOwner {
			held, err := u.passes.BalanceOf(ctx, callerAddr, u.passType)
			if err != nil {
				return err
			}
			if held < int64(len(names)) {
				return domainerrors.ErrNoPass
			}
			if err := u.passes.Burn(ctx, u.address, callerAddr, u.passType, int64(len(names))); err != nil {
				return err
			}
		}
		return u.registry.Register(ctx, u.address, callerAddr, names, years)
	})
}

// ExtendRegistration charges the per-year price for each name and forwards
// the extension to the registry. Anyone may pay to extend any name.
func (u *RegistrarUsecase) ExtendRegistration(ctx context.Context, caller string, input *entities.ExtendInput) error {
	years, err := broadcastYears(input.Names, input.Years)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		total, err := u.quote(ctx, input.Names, years)
		if err != nil {
			return err
		}
		payer := common.HexToAddress(caller).Hex()
		if err := u.payment.TransferFrom(ctx, u.address, payer, u.address, total); err != nil {
			return err
		}
		return u.registry.ExtendRegistration(ctx, u.address, input.Names, years)
	})
}

// Quote prices a prospective registration without charging
func (u *RegistrarUsecase) Quote(ctx context.Context, names []string, inputYears []int64) (*big.Int, error) {
	years, err := broadcastYears(names, inputYears)
	if err != nil {
		return nil, err
	}
	return u.quote(ctx, names, years)
}

// GetAnnualPrices returns the current five-bucket price schedule
func (u *RegistrarUsecase) GetAnnualPrices(ctx context.Context) (*entities.PriceSchedule, error) {
	var schedule entities.PriceSchedule
	for i := 0; i < entities.PriceBuckets; i++ {
		v, err := u.settingsRepo.Get(ctx, priceKey(i+1))
		if err != nil {
			if err == domainerrors.ErrNotFound {
				return nil, domainerrors.BadRequest("price schedule is not set")
			}
			return nil, err
		}
		schedule.Annual[i] = v
	}
	return &schedule, nil
}

// SetAnnualWrldPrices replaces the whole price schedule. Owner only.
func (u *RegistrarUsecase) SetAnnualWrldPrices(ctx context.Context, caller string, prices []string) error {
	if err := u.requireOwner(caller); err != nil {
		return err
	}
	if len(prices) != entities.PriceBuckets {
		return domainerrors.ErrInvalidInput
	}
	for _, p := range prices {
		if !validAmount(p) {
			return domainerrors.ErrInvalidInput
		}
	}
	return u.uow.Do(ctx, func(ctx context.Context) error {
		for i, p := range prices {
			if err := u.settingsRepo.Set(ctx, priceKey(i+1), p); err != nil {
				return err
			}
		}
		return nil
	})
}

// SetAnnualWrldPrice updates a single length bucket. Owner only; bucket is
// the 1-based name length (5 covers five characters and longer).
func (u *RegistrarUsecase) SetAnnualWrldPrice(ctx context.Context, caller string, bucket int, price string) error {
	if err := u.requireOwner(caller); err != nil {
		return err
	}
	if bucket < 1 || bucket > entities.PriceBuckets || !validAmount(price) {
		return domainerrors.ErrInvalidInput
	}
	return u.settingsRepo.Set(ctx, priceKey(bucket), price)
}

// SetApprovedWithdrawer designates a non-owner address allowed to withdraw
// collected fees. Owner only.
func (u *RegistrarUsecase) SetApprovedWithdrawer(ctx context.Context, caller, address string) error {
	if err := u.requireOwner(caller); err != nil {
		return err
	}
	if !common.IsHexAddress(address) {
		return domainerrors.ErrInvalidInput
	}
	return u.settingsRepo.Set(ctx, repositories.SettingApprovedWithdrawer, common.HexToAddress(address).Hex())
}

// WithdrawWrld moves the registrar's entire collected balance to the given
// address. Callable by the owner or the approved withdrawer.
func (u *RegistrarUsecase) WithdrawWrld(ctx context.Context, caller, to string) error {
	callerAddr := common.HexToAddress(caller).Hex()
	if callerAddr != u.owner {
		withdrawer, err := u.settingsRepo.Get(ctx, repositories.SettingApprovedWithdrawer)
		if err != nil {
			if err == domainerrors.ErrNotFound {
				return domainerrors.ErrForbidden
			}
			return err
		}
		if callerAddr != withdrawer {
			return domainerrors.ErrForbidden
		}
	}
	if !common.IsHexAddress(to) {
		return domainerrors.ErrInvalidInput
	}

	return u.uow.Do(ctx, func(ctx context.Context) error {
		balance, err := u.payment.BalanceOf(ctx, u.address)
		if err != nil {
			return err
		}
		if balance.Sign() == 0 {
			return nil
		}
		if err := u.payment.Transfer(ctx, u.address, common.HexToAddress(to).Hex(), balance); err != nil {
			return err
		}
		logger.Info(ctx, "fees withdrawn",
			zap.String("to", common.HexToAddress(to).Hex()),
			zap.String("amount", balance.String()),
		)
		return nil
	})
}

func (u *RegistrarUsecase) quote(ctx context.Context, names []string, years []int64) (*big.Int, error) {
	schedule, err := u.GetAnnualPrices(ctx)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for i, raw := range names {
		annual, ok := schedule.PriceFor(NameLength(NormalizeName(raw)))
		if !ok {
			return nil, domainerrors.ErrInvalidName
		}
		total.Add(total, new(big.Int).Mul(annual, big.NewInt(years[i])))
	}
	return total, nil
}

func (u *RegistrarUsecase) checkMinLengths(names []string) error {
	for _, raw := range names {
		if NameLength(NormalizeName(raw)) < u.minLength {
			return domainerrors.ErrNameTooShort
		}
	}
	return nil
}

func (u *RegistrarUsecase) requireOwner(caller string) error {
	if common.HexToAddress(caller).Hex() != u.owner {
		return domainerrors.ErrForbidden
	}
	return nil
}

// broadcastYears expands a single-element years slice across all names and
// validates the lengths otherwise.
func broadcastYears(names []string, years []int64) ([]int64, error) {
	if len(names) == 0 {
		return nil, domainerrors.ErrInvalidInput
	}
	if len(years) == 1 && len(names) > 1 {
		out := make([]int64, len(names))
		for i := range out {
			out[i] = years[0]
		}
		return out, nil
	}
	if len(years) != len(names) {
		return nil, domainerrors.ErrLengthMismatch
	}
	return years, nil
}

func priceKey(bucket int) string {
	return fmt.Sprintf("%s%d", repositories.SettingAnnualPricePrefix, bucket)
}

func validAmount(s string) bool {
	n, ok := new(big.Int).SetString(s, 10)
	return ok && n.Sign() >= 0
}
