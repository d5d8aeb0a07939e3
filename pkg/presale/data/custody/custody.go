package custody

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrVaultNotFound       = errors.New("no records could be found")
	ErrVaultAlreadyExists  = errors.New("vault record already exists")
	ErrStaleVaultState     = errors.New("vault state is stale")
	ErrInsufficientBalance = errors.New("vault balance is insufficient")
	ErrBalanceOverflow     = errors.New("vault balance would overflow")
)

// Record tracks the token balance held by a custodial vault. The sale vault
// and per-buyer vaults are both modelled as custody records, distinguished by
// their authority.
type Record struct {
	Id uint64

	Address string
	Bump    uint8

	Authority string
	Mint      string

	Balance uint64

	LastUpdatedAt time.Time
}

func (r *Record) Clone() *Record {
	return &Record{
		Id: r.Id,

		Address: r.Address,
		Bump:    r.Bump,

		Authority: r.Authority,
		Mint:      r.Mint,

		Balance: r.Balance,

		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Bump = r.Bump

	dst.Authority = r.Authority
	dst.Mint = r.Mint

	dst.Balance = r.Balance

	dst.LastUpdatedAt = r.LastUpdatedAt
}

func (r *Record) Validate() error {
	if r == nil {
		return errors.New("record is nil")
	}

	if len(r.Address) == 0 {
		return errors.New("vault address is required")
	}

	if len(r.Authority) == 0 {
		return errors.New("authority is required")
	}

	if len(r.Mint) == 0 {
		return errors.New("mint is required")
	}

	return nil
}
