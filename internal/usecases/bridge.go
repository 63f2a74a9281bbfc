package usecases

import "context"

// Bridge receives migration calls when a name owner moves a name off-chain.
// The registry only invokes it and trusts the accept/reject result; a
// returned error aborts the migration.
type Bridge interface {
	Migrate(ctx context.Context, name string, mode int64) error
}

type acceptingBridge struct{}

// NewAcceptingBridge returns a bridge that accepts every migration.
func NewAcceptingBridge() Bridge {
	return acceptingBridge{}
}

func (acceptingBridge) Migrate(ctx context.Context, name string, mode int64) error {
	return nil
}
