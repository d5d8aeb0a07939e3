package payment

import (
	"context"

	"github.com/pkg/errors"

	"github.com/plasma-fi/presale-server/pkg/presale/common"
)

var (
	ErrInsufficientFunds = errors.New("source has insufficient funds")
)

// Rail moves the funding leg of a purchase. The settlement flows only assume
// transfers are atomic and fail cleanly, so implementations can be backed by
// a blockchain submission pipeline or a ledger.
type Rail interface {
	// Transfer moves lamports from a source account to a destination account
	Transfer(ctx context.Context, source, destination *common.Account, lamports uint64) error
}
