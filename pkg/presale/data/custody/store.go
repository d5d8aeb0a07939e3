package custody

import "context"

type Store interface {
	// Put creates a new vault record. ErrVaultAlreadyExists is returned if a
	// vault already exists at the record's address.
	Put(ctx context.Context, record *Record) error

	// GetByAddress gets a vault record by its address
	GetByAddress(ctx context.Context, address string) (*Record, error)

	// Credit adds tokens to a vault's balance. ErrBalanceOverflow is returned
	// if the balance can't hold the new amount.
	Credit(ctx context.Context, address string, amount uint64) (*Record, error)

	// Debit removes tokens from a vault's balance. ErrInsufficientBalance is
	// returned if the vault doesn't hold the requested amount.
	Debit(ctx context.Context, address string, amount uint64) (*Record, error)
}
