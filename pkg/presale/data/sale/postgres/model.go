package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/plasma-fi/presale-server/pkg/database/postgres"
	q "github.com/plasma-fi/presale-server/pkg/database/query"
	"github.com/plasma-fi/presale-server/pkg/presale/data/sale"
)

const (
	tableName = "presale__core_sale"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Address string `db:"address"`
	Bump    uint   `db:"bump"`

	VaultAddress string `db:"vault_address"`
	VaultBump    uint   `db:"vault_bump"`

	Authority string `db:"authority"`
	Mint      string `db:"mint"`
	Treasury  string `db:"treasury"`

	PricePerToken   uint64 `db:"price_per_token"`
	TotalAllocation uint64 `db:"total_allocation"`
	TokensSold      uint64 `db:"tokens_sold"`

	IsActive bool `db:"is_active"`

	Version uint64 `db:"version"`

	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *sale.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Address: obj.Address,
		Bump:    uint(obj.Bump),

		VaultAddress: obj.VaultAddress,
		VaultBump:    uint(obj.VaultBump),

		Authority: obj.Authority,
		Mint:      obj.Mint,
		Treasury:  obj.Treasury,

		PricePerToken:   obj.PricePerToken,
		TotalAllocation: obj.TotalAllocation,
		TokensSold:      obj.TokensSold,

		IsActive: obj.IsActive,

		Version: obj.Version,

		LastUpdatedAt: obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *sale.Record {
	return &sale.Record{
		Id: uint64(obj.Id.Int64),

		Address: obj.Address,
		Bump:    uint8(obj.Bump),

		VaultAddress: obj.VaultAddress,
		VaultBump:    uint8(obj.VaultBump),

		Authority: obj.Authority,
		Mint:      obj.Mint,
		Treasury:  obj.Treasury,

		PricePerToken:   obj.PricePerToken,
		TotalAllocation: obj.TotalAllocation,
		TokensSold:      obj.TokensSold,

		IsActive: obj.IsActive,

		Version: obj.Version,

		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(address, bump, vault_address, vault_bump, authority, mint, treasury, price_per_token, total_allocation, tokens_sold, is_active, version, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, 0, $12)

			RETURNING
				id, address, bump, vault_address, vault_bump, authority, mint, treasury, price_per_token, total_allocation, tokens_sold, is_active, version, last_updated_at`

		m.LastUpdatedAt = time.Now()

		err := tx.QueryRowxContext(
			ctx,
			query,

			m.Address,
			m.Bump,

			m.VaultAddress,
			m.VaultBump,

			m.Authority,
			m.Mint,
			m.Treasury,

			m.PricePerToken,
			m.TotalAllocation,
			m.TokensSold,

			m.IsActive,

			m.LastUpdatedAt.UTC(),
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, sale.ErrSaleAlreadyExists)
	})
}

func (m *model) dbUpdate(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `UPDATE ` + tableName + `
			SET tokens_sold = $2, is_active = $3, version = version + 1, last_updated_at = $4
			WHERE address = $1 AND version = $5

			RETURNING
				id, address, bump, vault_address, vault_bump, authority, mint, treasury, price_per_token, total_allocation, tokens_sold, is_active, version, last_updated_at`

		m.LastUpdatedAt = time.Now()

		err := tx.QueryRowxContext(
			ctx,
			query,

			m.Address,
			m.TokensSold,
			m.IsActive,
			m.LastUpdatedAt.UTC(),
			m.Version,
		).StructScan(m)

		return pgutil.CheckNoRows(err, sale.ErrStaleSaleState)
	})
}

func dbGetByAddress(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	res := &model{}

	query := `SELECT
		id, address, bump, vault_address, vault_bump, authority, mint, treasury, price_per_token, total_allocation, tokens_sold, is_active, version, last_updated_at
		FROM ` + tableName + `
		WHERE address = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, sale.ErrSaleNotFound)
	}
	return res, nil
}

func dbGetByMint(ctx context.Context, db *sqlx.DB, mint string) (*model, error) {
	res := &model{}

	query := `SELECT
		id, address, bump, vault_address, vault_bump, authority, mint, treasury, price_per_token, total_allocation, tokens_sold, is_active, version, last_updated_at
		FROM ` + tableName + `
		WHERE mint = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, mint)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, sale.ErrSaleNotFound)
	}
	return res, nil
}

func dbGetAll(ctx context.Context, db *sqlx.DB, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	res := []*model{}

	query := `SELECT
		id, address, bump, vault_address, vault_bump, authority, mint, treasury, price_per_token, total_allocation, tokens_sold, is_active, version, last_updated_at
		FROM ` + tableName + `
		WHERE (1=1)
	`

	opts := []interface{}{}
	query, opts = q.PaginateQuery(query, opts, cursor, limit, direction)

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, sale.ErrSaleNotFound)
	}

	if len(res) == 0 {
		return nil, sale.ErrSaleNotFound
	}
	return res, nil
}
