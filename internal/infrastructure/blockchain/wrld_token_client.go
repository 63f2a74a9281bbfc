package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	domainerrors "wrld-names.backend/internal/domain/errors"
)

const erc20ABI = `[
	{"constant":true,"inputs":[{"name":"owner","type":"address"}],"name":"balanceOf","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"name":"allowance","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transfer","outputs":[{"name":"","type":"bool"}],"type":"function"},
	{"constant":false,"inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"name":"transferFrom","outputs":[{"name":"","type":"bool"}],"type":"function"}
]`

var dialEVMClient = ethclient.Dial

// WRLDTokenClient implements PaymentTokenLedger against the WRLD ERC-20
// contract over RPC. Reads go through eth_call; debits are transactions
// signed with the operator key (the address holders approved as spender).
// Approve and Mint are on-chain holder/owner operations and are rejected here.
type WRLDTokenClient struct {
	client       *ethclient.Client
	contract     common.Address
	parsedABI    abi.ABI
	chainID      *big.Int
	operator     *ecdsa.PrivateKey
	operatorAddr common.Address
}

// NewWRLDTokenClient dials the RPC endpoint and prepares the token binding
func NewWRLDTokenClient(rpcURL, contractAddress, operatorKeyHex string) (*WRLDTokenClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}

	parsed, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse erc20 abi: %w", err)
	}

	c := &WRLDTokenClient{
		client:    client,
		contract:  common.HexToAddress(contractAddress),
		parsedABI: parsed,
		chainID:   chainID,
	}

	if operatorKeyHex != "" {
		key, err := crypto.HexToECDSA(strings.TrimPrefix(operatorKeyHex, "0x"))
		if err != nil {
			return nil, fmt.Errorf("invalid operator key: %w", err)
		}
		c.operator = key
		c.operatorAddr = crypto.PubkeyToAddress(key.PublicKey)
	}

	return c, nil
}

// BalanceOf reads balanceOf(owner) from the token contract
func (c *WRLDTokenClient) BalanceOf(ctx context.Context, address string) (*big.Int, error) {
	return c.callUint(ctx, "balanceOf", common.HexToAddress(address))
}

// Allowance reads allowance(owner, spender) from the token contract
func (c *WRLDTokenClient) Allowance(ctx context.Context, owner, spender string) (*big.Int, error) {
	return c.callUint(ctx, "allowance", common.HexToAddress(owner), common.HexToAddress(spender))
}

// Approve is a holder-side on-chain operation; the backend never signs it
func (c *WRLDTokenClient) Approve(ctx context.Context, owner, spender string, amount *big.Int) error {
	return domainerrors.ErrForbidden
}

// Mint is restricted to the token contract owner on-chain
func (c *WRLDTokenClient) Mint(ctx context.Context, to string, amount *big.Int) error {
	return domainerrors.ErrForbidden
}

// Transfer sends transfer(to, amount) signed by the operator. Used for fee
// withdrawal where the operator address is the fee account.
func (c *WRLDTokenClient) Transfer(ctx context.Context, from, to string, amount *big.Int) error {
	if c.operator == nil {
		return domainerrors.ErrForbidden
	}
	if common.HexToAddress(from) != c.operatorAddr {
		return domainerrors.ErrForbidden
	}
	return c.transact(ctx, "transfer", common.HexToAddress(to), amount)
}

// TransferFrom sends transferFrom(owner, to, amount) signed by the operator;
// fails on-chain when the holder has not approved the operator.
func (c *WRLDTokenClient) TransferFrom(ctx context.Context, spender, owner, to string, amount *big.Int) error {
	if c.operator == nil {
		return domainerrors.ErrForbidden
	}

	allowance, err := c.Allowance(ctx, owner, c.operatorAddr.Hex())
	if err != nil {
		return err
	}
	if allowance.Cmp(amount) < 0 {
		return domainerrors.ErrInsufficientAllowance
	}
	balance, err := c.BalanceOf(ctx, owner)
	if err != nil {
		return err
	}
	if balance.Cmp(amount) < 0 {
		return domainerrors.ErrInsufficientBalance
	}

	return c.transact(ctx, "transferFrom", common.HexToAddress(owner), common.HexToAddress(to), amount)
}

func (c *WRLDTokenClient) callUint(ctx context.Context, method string, args ...interface{}) (*big.Int, error) {
	data, err := c.parsedABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	msg := ethereum.CallMsg{To: &c.contract, Data: data}
	raw, err := c.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s failed: %w", method, err)
	}

	out, err := c.parsedABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	value, ok := out[0].(*big.Int)
	if !ok {
		return nil, fmt.Errorf("unexpected %s return type", method)
	}
	return value, nil
}

func (c *WRLDTokenClient) transact(ctx context.Context, method string, args ...interface{}) error {
	auth, err := bind.NewKeyedTransactorWithChainID(c.operator, c.chainID)
	if err != nil {
		return fmt.Errorf("failed to build transactor: %w", err)
	}
	auth.Context = ctx

	contract := bind.NewBoundContract(c.contract, c.parsedABI, c.client, c.client, c.client)
	tx, err := contract.Transact(auth, method, args...)
	if err != nil {
		return fmt.Errorf("%s transaction failed: %w", method, err)
	}

	receipt, err := bind.WaitMined(ctx, c.client, tx)
	if err != nil {
		return fmt.Errorf("failed to wait for %s: %w", method, err)
	}
	if receipt.Status == 0 {
		return fmt.Errorf("%s reverted: %s", method, tx.Hash().Hex())
	}
	return nil
}
