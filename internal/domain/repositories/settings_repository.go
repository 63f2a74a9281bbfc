package repositories

import "context"

// Setting keys for administrative bindings and registrar state.
const (
	SettingRegistrationEnabled = "registration_enabled"
	SettingApprovedWithdrawer  = "approved_withdrawer"
	SettingBridgeContract      = "bridge_contract"
	SettingMetadataContract    = "metadata_contract"
	SettingResolverContract    = "resolver_contract"
	SettingAnnualPricePrefix   = "annual_price_" // annual_price_1 .. annual_price_5
)

// SettingsRepository stores owner-mutable registrar/registry state: bindings,
// the registration gate, the price schedule and registrar approvals.
type SettingsRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	ApproveRegistrar(ctx context.Context, address string, approved bool) error
	IsApprovedRegistrar(ctx context.Context, address string) (bool, error)
}
