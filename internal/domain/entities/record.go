package entities

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
)

// RecordType discriminates the four typed record/entry variants.
type RecordType string

const (
	RecordTypeAddress RecordType = "address"
	RecordTypeString  RecordType = "string"
	RecordTypeUint    RecordType = "uint"
	RecordTypeInt     RecordType = "int"
)

// ParseRecordType validates a record type path/query parameter.
func ParseRecordType(s string) (RecordType, bool) {
	switch RecordType(s) {
	case RecordTypeAddress, RecordTypeString, RecordTypeUint, RecordTypeInt:
		return RecordType(s), true
	}
	return "", false
}

// DefaultAddressRecordKey is the record seeded at registration time with the
// registrant's address. It is always present once a name is registered.
const DefaultAddressRecordKey = "evm_default"

var (
	maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	maxInt256  = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	minInt256  = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
)

// Record is a typed, TTL-annotated value attached to a name. Uint and int
// values are stored as decimal strings to preserve the full 256-bit range;
// TypeOf is only meaningful for string records.
type Record struct {
	ID        uuid.UUID  `json:"-"`
	Name      string     `json:"name"`
	Type      RecordType `json:"type"`
	Key       string     `json:"key"`
	Value     string     `json:"value"`
	TypeOf    string     `json:"typeOf,omitempty"`
	TTL       int64      `json:"ttl"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

// ValidateRecordValue checks a value against its record type. Addresses must
// be hex addresses, uints non-negative decimals within uint256, ints decimals
// within int256. String values are unrestricted.
func ValidateRecordValue(typ RecordType, value string) bool {
	switch typ {
	case RecordTypeAddress:
		return common.IsHexAddress(value)
	case RecordTypeString:
		return true
	case RecordTypeUint:
		v, ok := new(big.Int).SetString(value, 10)
		return ok && v.Sign() >= 0 && v.Cmp(maxUint256) <= 0
	case RecordTypeInt:
		v, ok := new(big.Int).SetString(value, 10)
		return ok && v.Cmp(minInt256) >= 0 && v.Cmp(maxInt256) <= 0
	}
	return false
}

// ZeroRecordValue returns the absent-value representation for a type:
// the zero address, empty string, or "0".
func ZeroRecordValue(typ RecordType) string {
	switch typ {
	case RecordTypeAddress:
		return common.Address{}.Hex()
	case RecordTypeString:
		return ""
	default:
		return "0"
	}
}
