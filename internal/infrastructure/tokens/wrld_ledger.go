package tokens

import (
	"context"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"gorm.io/gorm"
	domainerrors "wrld-names.backend/internal/domain/errors"
	"wrld-names.backend/internal/domain/repositories"
	infraRepos "wrld-names.backend/internal/infrastructure/repositories"
	"wrld-names.backend/internal/infrastructure/models"
)

// wrldLedger implements PaymentTokenLedger on the database. It mirrors the
// ERC-20 balance/allowance semantics of the WRLD token: transferFrom spends
// the spender's allowance and every debit is all-or-nothing within the
// surrounding transaction.
type wrldLedger struct {
	db *gorm.DB
}

// NewWRLDLedger creates the database-backed WRLD payment token ledger
func NewWRLDLedger(db *gorm.DB) repositories.PaymentTokenLedger {
	return &wrldLedger{db: db}
}

func canonical(address string) string {
	return common.HexToAddress(address).Hex()
}

// BalanceOf returns the balance for an address (zero when absent)
func (l *wrldLedger) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	var m models.TokenBalance
	err := infraRepos.GetDB(ctx, l.db).WithContext(ctx).Where("address = ?", canonical(address)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	bal, ok := new(big.Int).SetString(m.Balance, 10)
	if !ok {
		return nil, domainerrors.InternalError(errors.New("corrupt balance for " + m.Address))
	}
	return bal, nil
}

// Allowance returns the amount spender may debit from owner
func (l *wrldLedger) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	var m models.TokenAllowance
	err := infraRepos.GetDB(ctx, l.db).WithContext(ctx).
		Where("owner = ? AND spender = ?", canonical(owner), canonical(spender)).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return big.NewInt(0), nil
		}
		return nil, err
	}
	amount, ok := new(big.Int).SetString(m.Amount, 10)
	if !ok {
		return nil, domainerrors.InternalError(errors.New("corrupt allowance"))
	}
	return amount, nil
}

// Approve sets spender's allowance over owner's balance
func (l *wrldLedger) Approve(ctx context.Context, owner, spender string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domainerrors.ErrInvalidInput
	}
	db := infraRepos.GetDB(ctx, l.db).WithContext(ctx)
	owner, spender = canonical(owner), canonical(spender)

	result := db.Model(&models.TokenAllowance{}).
		Where("owner = ? AND spender = ?", owner, spender).
		Update("amount", amount.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return db.Create(&models.TokenAllowance{
			ID:      uuid.New(),
			Owner:   owner,
			Spender: spender,
			Amount:  amount.String(),
		}).Error
	}
	return nil
}

// Transfer moves tokens between addresses
func (l *wrldLedger) Transfer(ctx context.Context, from, to string, amount *big.Int) error {
	return l.move(ctx, canonical(from), canonical(to), amount)
}

// TransferFrom debits owner in favor of to, consuming spender's allowance
func (l *wrldLedger) TransferFrom(ctx context.Context, spender, owner, to string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domainerrors.ErrInvalidInput
	}
	spender, owner, to = canonical(spender), canonical(owner), canonical(to)

	allowance, err := l.Allowance(ctx, owner, spender)
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return domainerrors.ErrInsufficientAllowance
	}

	if err := l.move(ctx, owner, to, amount); err != nil {
		return err
	}

	remaining := new(big.Int).Sub(allowance, amount)
	return infraRepos.GetDB(ctx, l.db).WithContext(ctx).Model(&models.TokenAllowance{}).
		Where("owner = ? AND spender = ?", owner, spender).
		Update("amount", remaining.String()).Error
}

// Mint credits freshly minted tokens to an address
func (l *wrldLedger) Mint(ctx context.Context, to string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domainerrors.ErrInvalidInput
	}
	return l.credit(ctx, canonical(to), amount)
}

func (l *wrldLedger) move(ctx context.Context, from, to string, amount *big.Int) error {
	if amount == nil || amount.Sign() < 0 {
		return domainerrors.ErrInvalidInput
	}

	balance, err := l.BalanceOf(ctx, from)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domainerrors.ErrInsufficientBalance
	}

	db := infraRepos.GetDB(ctx, l.db).WithContext(ctx)
	remaining := new(big.Int).Sub(balance, amount)
	if err := db.Model(&models.TokenBalance{}).Where("address = ?", from).
		Update("balance", remaining.String()).Error; err != nil {
		return err
	}
	return l.credit(ctx, to, amount)
}

func (l *wrldLedger) credit(ctx context.Context, to string, amount *big.Int) error {
	db := infraRepos.GetDB(ctx, l.db).WithContext(ctx)

	balance, err := l.BalanceOf(ctx, to)
	if err != nil {
		return err
	}
	total := new(big.Int).Add(balance, amount)

	result := db.Model(&models.TokenBalance{}).Where("address = ?", to).
		Update("balance", total.String())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return db.Create(&models.TokenBalance{Address: to, Balance: total.String()}).Error
	}
	return nil
}
