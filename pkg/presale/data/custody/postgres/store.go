package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/plasma-fi/presale-server/pkg/presale/data/custody"
)

type store struct {
	db *sqlx.DB
}

// New returns a new postgres-backed custody.Store
func New(db *sql.DB) custody.Store {
	return &store{
		db: sqlx.NewDb(db, "pgx"),
	}
}

// Put implements custody.Store.Put
func (s *store) Put(ctx context.Context, record *custody.Record) error {
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

// GetByAddress implements custody.Store.GetByAddress
func (s *store) GetByAddress(ctx context.Context, address string) (*custody.Record, error) {
	model, err := dbGetByAddress(ctx, s.db, address)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// Credit implements custody.Store.Credit
func (s *store) Credit(ctx context.Context, address string, amount uint64) (*custody.Record, error) {
	model, err := dbCredit(ctx, s.db, address, amount)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}

// Debit implements custody.Store.Debit
func (s *store) Debit(ctx context.Context, address string, amount uint64) (*custody.Record, error) {
	model, err := dbDebit(ctx, s.db, address, amount)
	if err != nil {
		return nil, err
	}

	return fromModel(model), nil
}
