package purchase

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrPurchaseNotFound       = errors.New("no records could be found")
	ErrPurchaseAlreadyExists  = errors.New("purchase record already exists")
	ErrPurchaseAlreadyClaimed = errors.New("purchase record already claimed")
)

// Record tracks a buyer's locked token purchase against a sale. A buyer gets
// at most one record per mint, and the record transitions to claimed exactly
// once after the unlock timestamp passes.
type Record struct {
	Id uint64

	Address string
	Bump    uint8

	Sale  string
	Buyer string
	Mint  string

	VaultAddress string

	Amount   uint64
	UnlockAt int64

	Claimed bool

	CreatedAt     time.Time
	LastUpdatedAt time.Time
}

func (r *Record) IsUnlocked(at time.Time) bool {
	return at.Unix() >= r.UnlockAt
}

func (r *Record) Clone() *Record {
	return &Record{
		Id: r.Id,

		Address: r.Address,
		Bump:    r.Bump,

		Sale:  r.Sale,
		Buyer: r.Buyer,
		Mint:  r.Mint,

		VaultAddress: r.VaultAddress,

		Amount:   r.Amount,
		UnlockAt: r.UnlockAt,

		Claimed: r.Claimed,

		CreatedAt:     r.CreatedAt,
		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Bump = r.Bump

	dst.Sale = r.Sale
	dst.Buyer = r.Buyer
	dst.Mint = r.Mint

	dst.VaultAddress = r.VaultAddress

	dst.Amount = r.Amount
	dst.UnlockAt = r.UnlockAt

	dst.Claimed = r.Claimed

	dst.CreatedAt = r.CreatedAt
	dst.LastUpdatedAt = r.LastUpdatedAt
}

func (r *Record) Validate() error {
	if r == nil {
		return errors.New("record is nil")
	}

	if len(r.Address) == 0 {
		return errors.New("purchase address is required")
	}

	if len(r.Sale) == 0 {
		return errors.New("sale address is required")
	}

	if len(r.Buyer) == 0 {
		return errors.New("buyer is required")
	}

	if len(r.Mint) == 0 {
		return errors.New("mint is required")
	}

	if len(r.VaultAddress) == 0 {
		return errors.New("vault address is required")
	}

	if r.Amount == 0 {
		return errors.New("amount must be positive")
	}

	if r.UnlockAt <= 0 {
		return errors.New("unlock timestamp is required")
	}

	return nil
}
