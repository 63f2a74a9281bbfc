package entities

import "math/big"

// PriceBuckets is the number of name-length price buckets (1, 2, 3, 4, 5+).
const PriceBuckets = 5

// PriceSchedule maps name-length buckets to an annual price in the payment
// token's smallest unit, stored as decimal strings.
type PriceSchedule struct {
	Annual [PriceBuckets]string `json:"annual"`
}

// PriceFor returns the annual price for a name of the given character length.
func (p *PriceSchedule) PriceFor(length int) (*big.Int, bool) {
	if length < 1 {
		return nil, false
	}
	bucket := length
	if bucket > PriceBuckets {
		bucket = PriceBuckets
	}
	return new(big.Int).SetString(p.Annual[bucket-1], 10)
}

// RegisterInput is the request body for paid and pass registrations.
// Years broadcasts a single value across all names when it has one element.
type RegisterInput struct {
	Names []string `json:"names" binding:"required,min=1"`
	Years []int64  `json:"years"`
}

// ExtendInput is the request body for registration extension.
type ExtendInput struct {
	Names []string `json:"names" binding:"required,min=1"`
	Years []int64  `json:"years" binding:"required,min=1"`
}

// SetPricesInput is the owner request body for the annual price schedule.
type SetPricesInput struct {
	Prices []string `json:"prices" binding:"required,len=5"`
}

// WithdrawInput is the request body for fee withdrawal.
type WithdrawInput struct {
	To string `json:"to" binding:"required"`
}

// SetControllerInput reassigns a name's controller.
type SetControllerInput struct {
	Controller string `json:"controller" binding:"required"`
}

// SetRecordInput is the request body for typed record writes.
type SetRecordInput struct {
	Value  string `json:"value" binding:"required"`
	TypeOf string `json:"typeOf"`
	TTL    int64  `json:"ttl"`
}

// SetEntryInput is the request body for typed entry writes.
type SetEntryInput struct {
	Value string `json:"value" binding:"required"`
}

// MigrateInput selects the bridge migration mode.
type MigrateInput struct {
	Mode int64 `json:"mode"`
}

// SetAddressInput carries a single address for admin binding updates.
type SetAddressInput struct {
	Address string `json:"address" binding:"required"`
}

// SetRegistrarInput toggles approval for a registrar address.
type SetRegistrarInput struct {
	Address  string `json:"address" binding:"required"`
	Approved bool   `json:"approved"`
}
