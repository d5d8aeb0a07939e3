package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/plasma-fi/presale-server/pkg/database/query"
	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed purchase.Store
func New(db *sql.DB) purchase.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements purchase.Store.Put
func (s *store) Put(ctx context.Context, record *purchase.Record) error {
	model, err := toModel(record)
	if err != nil {
		return err
	}

	if err := model.dbPut(ctx, s.db); err != nil {
		return err
	}

	res := fromModel(model)
	res.CopyTo(record)

	return nil
}

// GetByAddress implements purchase.Store.GetByAddress
func (s *store) GetByAddress(ctx context.Context, address string) (*purchase.Record, error) {
	model, err := dbGetByAddress(ctx, s.db, address)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetByBuyerAndMint implements purchase.Store.GetByBuyerAndMint
func (s *store) GetByBuyerAndMint(ctx context.Context, buyer, mint string) (*purchase.Record, error) {
	model, err := dbGetByBuyerAndMint(ctx, s.db, buyer, mint)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// MarkClaimed implements purchase.Store.MarkClaimed
func (s *store) MarkClaimed(ctx context.Context, address string) (*purchase.Record, error) {
	model, err := dbMarkClaimed(ctx, s.db, address)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// GetBySale implements purchase.Store.GetBySale
func (s *store) GetBySale(ctx context.Context, sale string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*purchase.Record, error) {
	res, err := dbGetBySale(ctx, s.db, sale, cursor, limit, direction)
	if err != nil {
		return nil, err
	}

	purchases := make([]*purchase.Record, len(res))
	for i, model := range res {
		purchases[i] = fromModel(model)
	}
	return purchases, nil
}

// CountBySale implements purchase.Store.CountBySale
func (s *store) CountBySale(ctx context.Context, sale string) (uint64, error) {
	return dbCountBySale(ctx, s.db, sale)
}
