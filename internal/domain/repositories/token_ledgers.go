package repositories

import (
	"context"
	"math/big"
)

// PaymentTokenLedger is the WRLD payment token collaborator: an ERC-20 shaped
// balance/allowance ledger. Amounts are in the token's smallest unit.
type PaymentTokenLedger interface {
	BalanceOf(ctx context.Context, address string) (*big.Int, error)
	Allowance(ctx context.Context, owner, spender string) (*big.Int, error)
	Approve(ctx context.Context, owner, spender string, amount *big.Int) error
	Transfer(ctx context.Context, from, to string, amount *big.Int) error
	// TransferFrom debits owner in favor of to, spending spender's allowance.
	TransferFrom(ctx context.Context, spender, owner, to string, amount *big.Int) error
	Mint(ctx context.Context, to string, amount *big.Int) error
}

// PassBurnerRole authorizes an address to consume passes on registration.
// The value matches the role hash granted to the registrar in deployment.
const PassBurnerRole = "0x6a9720191e216fcceabcf977981e1960eca316ba25983a901c27600afc53f108"

// PassLedger is the WNS pass collaborator: a multi-token ownership ledger
// granting free registrations. Burning requires the burner role.
type PassLedger interface {
	BalanceOf(ctx context.Context, holder string, passType int64) (int64, error)
	Mint(ctx context.Context, to string, passType, quantity int64) error
	SafeTransferFrom(ctx context.Context, caller, from, to string, passType, quantity int64) error
	Burn(ctx context.Context, caller, holder string, passType, quantity int64) error
	GrantRole(ctx context.Context, role, address string) error
	HasRole(ctx context.Context, role, address string) (bool, error)
}
