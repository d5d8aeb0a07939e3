package sale

import (
	"context"

	"github.com/plasma-fi/presale-server/pkg/database/query"
)

type Store interface {
	// Put creates a new sale record. ErrSaleAlreadyExists is returned if a
	// sale already exists for the record's address or mint.
	Put(ctx context.Context, record *Record) error

	// GetByAddress gets a sale record by its state address
	GetByAddress(ctx context.Context, address string) (*Record, error)

	// GetByMint gets a sale record by the mint being sold
	GetByMint(ctx context.Context, mint string) (*Record, error)

	// Update saves the mutable portion of a sale record (tokens sold and
	// active flag), guarded by the record's version. ErrStaleSaleState is
	// returned if another writer got there first.
	Update(ctx context.Context, record *Record) error

	// GetAll gets all sale records using the provided pagination options
	GetAll(ctx context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*Record, error)
}
