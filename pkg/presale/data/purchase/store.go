package purchase

import (
	"context"

	"github.com/plasma-fi/presale-server/pkg/database/query"
)

type Store interface {
	// Put creates a new purchase record. ErrPurchaseAlreadyExists is returned
	// if the buyer already has a record for the record's mint.
	Put(ctx context.Context, record *Record) error

	// GetByAddress gets a purchase record by its state address
	GetByAddress(ctx context.Context, address string) (*Record, error)

	// GetByBuyerAndMint gets a buyer's purchase record for a mint
	GetByBuyerAndMint(ctx context.Context, buyer, mint string) (*Record, error)

	// MarkClaimed transitions a purchase record to the claimed state.
	// ErrPurchaseAlreadyClaimed is returned if the transition was already
	// applied.
	MarkClaimed(ctx context.Context, address string) (*Record, error)

	// GetBySale gets all purchase records against a sale using the provided
	// pagination options
	GetBySale(ctx context.Context, sale string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*Record, error)

	// CountBySale gets the count of purchase records against a sale
	CountBySale(ctx context.Context, sale string) (uint64, error)
}
