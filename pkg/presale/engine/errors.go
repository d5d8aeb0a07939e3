package engine

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrInvalidParameter   = errors.New("parameter is invalid")
	ErrSaleExists         = errors.New("sale already exists for mint")
	ErrSaleNotFound       = errors.New("no sale exists for mint")
	ErrSaleInactive       = errors.New("sale is not active")
	ErrUnauthorized       = errors.New("owner is not the sale authority")
	ErrDuplicatePurchase  = errors.New("buyer already has a purchase for mint")
	ErrNoPurchaseRecord   = errors.New("buyer has no purchase for mint")
	ErrAlreadyClaimed     = errors.New("purchase was already claimed")
	ErrArithmeticOverflow = errors.New("cost calculation overflows")
)

// AllocationExceededError is returned when a purchase would push tokens sold
// beyond the sale's total allocation.
type AllocationExceededError struct {
	Requested uint64
	Remaining uint64
}

func (e *AllocationExceededError) Error() string {
	return fmt.Sprintf("purchase of %d tokens exceeds remaining allocation of %d", e.Requested, e.Remaining)
}

// StillLockedError is returned when a claim is attempted before the purchase's
// unlock timestamp.
type StillLockedError struct {
	UnlockAt  time.Time
	Remaining time.Duration
}

func (e *StillLockedError) Error() string {
	return fmt.Sprintf("tokens remain locked until %s", e.UnlockAt.UTC().Format(time.RFC3339))
}
