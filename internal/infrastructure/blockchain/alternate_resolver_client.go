package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/ethclient"
	"wrld-names.backend/internal/domain/entities"
	domainerrors "wrld-names.backend/internal/domain/errors"
)

const resolverABI = `[
	{"constant":true,"inputs":[{"name":"name","type":"string"},{"name":"key","type":"string"}],"name":"getNameAddressRecord","outputs":[{"name":"","type":"address"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"name","type":"string"},{"name":"key","type":"string"}],"name":"getNameStringRecord","outputs":[{"name":"","type":"string"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"name","type":"string"},{"name":"key","type":"string"}],"name":"getNameUintRecord","outputs":[{"name":"","type":"uint256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"name","type":"string"},{"name":"key","type":"string"}],"name":"getNameIntRecord","outputs":[{"name":"","type":"int256"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"name","type":"string"}],"name":"getNameAddressRecordsList","outputs":[{"name":"","type":"string[]"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"name","type":"string"}],"name":"getNameStringRecordsList","outputs":[{"name":"","type":"string[]"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"name","type":"string"}],"name":"getNameUintRecordsList","outputs":[{"name":"","type":"string[]"}],"type":"function"},
	{"constant":true,"inputs":[{"name":"name","type":"string"}],"name":"getNameIntRecordsList","outputs":[{"name":"","type":"string[]"}],"type":"function"}
]`

// AlternateResolverClient reads records from a name's bound external resolver
// contract over RPC. All methods are eth_call reads; the backend never writes
// to alternate resolvers.
type AlternateResolverClient struct {
	client    *ethclient.Client
	parsedABI abi.ABI
}

// NewAlternateResolverClient dials the RPC endpoint and prepares the
// resolver binding
func NewAlternateResolverClient(rpcURL string) (*AlternateResolverClient, error) {
	client, err := dialEVMClient(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(resolverABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse resolver abi: %w", err)
	}
	return &AlternateResolverClient{client: client, parsedABI: parsed}, nil
}

// GetRecord reads one typed record from the given resolver contract
func (c *AlternateResolverClient) GetRecord(ctx context.Context, resolverAddress, name string, typ entities.RecordType, key string) (*entities.Record, error) {
	var method string
	switch typ {
	case entities.RecordTypeAddress:
		method = "getNameAddressRecord"
	case entities.RecordTypeString:
		method = "getNameStringRecord"
	case entities.RecordTypeUint:
		method = "getNameUintRecord"
	case entities.RecordTypeInt:
		method = "getNameIntRecord"
	default:
		return nil, domainerrors.ErrInvalidInput
	}

	out, err := c.call(ctx, resolverAddress, method, name, key)
	if err != nil {
		return nil, err
	}

	var value string
	switch v := out[0].(type) {
	case common.Address:
		value = v.Hex()
	case string:
		value = v
	case *big.Int:
		value = v.String()
	default:
		return nil, fmt.Errorf("unexpected %s return type", method)
	}

	return &entities.Record{
		Name:  name,
		Type:  typ,
		Key:   key,
		Value: value,
	}, nil
}

// ListRecordKeys reads the key list of a record type from the resolver
func (c *AlternateResolverClient) ListRecordKeys(ctx context.Context, resolverAddress, name string, typ entities.RecordType) ([]string, error) {
	var method string
	switch typ {
	case entities.RecordTypeAddress:
		method = "getNameAddressRecordsList"
	case entities.RecordTypeString:
		method = "getNameStringRecordsList"
	case entities.RecordTypeUint:
		method = "getNameUintRecordsList"
	case entities.RecordTypeInt:
		method = "getNameIntRecordsList"
	default:
		return nil, domainerrors.ErrInvalidInput
	}

	out, err := c.call(ctx, resolverAddress, method, name)
	if err != nil {
		return nil, err
	}
	keys, ok := out[0].([]string)
	if !ok {
		return nil, fmt.Errorf("unexpected %s return type", method)
	}
	return keys, nil
}

func (c *AlternateResolverClient) call(ctx context.Context, resolverAddress, method string, args ...interface{}) ([]interface{}, error) {
	data, err := c.parsedABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack %s: %w", method, err)
	}

	contract := common.HexToAddress(resolverAddress)
	msg := ethereum.CallMsg{To: &contract, Data: data}
	raw, err := c.client.CallContract(ctx, msg, nil)
	if err != nil {
		return nil, fmt.Errorf("call %s failed: %w", method, err)
	}

	out, err := c.parsedABI.Unpack(method, raw)
	if err != nil {
		return nil, fmt.Errorf("failed to unpack %s: %w", method, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty %s return", method)
	}
	return out, nil
}
