package sale

import (
	"time"

	"github.com/pkg/errors"
)

var (
	ErrSaleNotFound      = errors.New("no records could be found")
	ErrSaleAlreadyExists = errors.New("sale record already exists")
	ErrStaleSaleState    = errors.New("sale state is stale")
)

// Record tracks the settlement state of a single presale, keyed by the token
// mint it sells. Version implements optimistic concurrency on updates, so two
// settlement flows racing on the same sale can't both apply.
type Record struct {
	Id uint64

	Address string
	Bump    uint8

	VaultAddress string
	VaultBump    uint8

	Authority string
	Mint      string
	Treasury  string

	PricePerToken   uint64
	TotalAllocation uint64
	TokensSold      uint64

	IsActive bool

	Version uint64

	LastUpdatedAt time.Time
}

func (r *Record) RemainingAllocation() uint64 {
	return r.TotalAllocation - r.TokensSold
}

func (r *Record) Clone() *Record {
	return &Record{
		Id: r.Id,

		Address: r.Address,
		Bump:    r.Bump,

		VaultAddress: r.VaultAddress,
		VaultBump:    r.VaultBump,

		Authority: r.Authority,
		Mint:      r.Mint,
		Treasury:  r.Treasury,

		PricePerToken:   r.PricePerToken,
		TotalAllocation: r.TotalAllocation,
		TokensSold:      r.TokensSold,

		IsActive: r.IsActive,

		Version: r.Version,

		LastUpdatedAt: r.LastUpdatedAt,
	}
}

func (r *Record) CopyTo(dst *Record) {
	dst.Id = r.Id

	dst.Address = r.Address
	dst.Bump = r.Bump

	dst.VaultAddress = r.VaultAddress
	dst.VaultBump = r.VaultBump

	dst.Authority = r.Authority
	dst.Mint = r.Mint
	dst.Treasury = r.Treasury

	dst.PricePerToken = r.PricePerToken
	dst.TotalAllocation = r.TotalAllocation
	dst.TokensSold = r.TokensSold

	dst.IsActive = r.IsActive

	dst.Version = r.Version

	dst.LastUpdatedAt = r.LastUpdatedAt
}

func (r *Record) Validate() error {
	if r == nil {
		return errors.New("record is nil")
	}

	if len(r.Address) == 0 {
		return errors.New("sale address is required")
	}

	if len(r.VaultAddress) == 0 {
		return errors.New("vault address is required")
	}

	if len(r.Authority) == 0 {
		return errors.New("authority is required")
	}

	if len(r.Mint) == 0 {
		return errors.New("mint is required")
	}

	if len(r.Treasury) == 0 {
		return errors.New("treasury is required")
	}

	if r.PricePerToken == 0 {
		return errors.New("price per token must be positive")
	}

	if r.TotalAllocation == 0 {
		return errors.New("total allocation must be positive")
	}

	if r.TokensSold > r.TotalAllocation {
		return errors.New("tokens sold cannot exceed total allocation")
	}

	return nil
}
