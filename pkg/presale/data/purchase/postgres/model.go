package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/plasma-fi/presale-server/pkg/database/postgres"
	q "github.com/plasma-fi/presale-server/pkg/database/query"
	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase"
)

const (
	tableName = "presale__core_purchase"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Address string `db:"address"`
	Bump    uint   `db:"bump"`

	Sale  string `db:"sale"`
	Buyer string `db:"buyer"`
	Mint  string `db:"mint"`

	VaultAddress string `db:"vault_address"`

	Amount   uint64 `db:"amount"`
	UnlockAt int64  `db:"unlock_at"`

	Claimed bool `db:"claimed"`

	CreatedAt     time.Time `db:"created_at"`
	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *purchase.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Address: obj.Address,
		Bump:    uint(obj.Bump),

		Sale:  obj.Sale,
		Buyer: obj.Buyer,
		Mint:  obj.Mint,

		VaultAddress: obj.VaultAddress,

		Amount:   obj.Amount,
		UnlockAt: obj.UnlockAt,

		Claimed: obj.Claimed,

		CreatedAt:     obj.CreatedAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *purchase.Record {
	return &purchase.Record{
		Id: uint64(obj.Id.Int64),

		Address: obj.Address,
		Bump:    uint8(obj.Bump),

		Sale:  obj.Sale,
		Buyer: obj.Buyer,
		Mint:  obj.Mint,

		VaultAddress: obj.VaultAddress,

		Amount:   obj.Amount,
		UnlockAt: obj.UnlockAt,

		Claimed: obj.Claimed,

		CreatedAt:     obj.CreatedAt,
		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(address, bump, sale, buyer, mint, vault_address, amount, unlock_at, claimed, created_at, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $10)

			RETURNING
				id, address, bump, sale, buyer, mint, vault_address, amount, unlock_at, claimed, created_at, last_updated_at`

		m.CreatedAt = time.Now()
		m.LastUpdatedAt = m.CreatedAt

		err := tx.QueryRowxContext(
			ctx,
			query,

			m.Address,
			m.Bump,

			m.Sale,
			m.Buyer,
			m.Mint,

			m.VaultAddress,

			m.Amount,
			m.UnlockAt,

			m.Claimed,

			m.CreatedAt.UTC(),
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, purchase.ErrPurchaseAlreadyExists)
	})
}

func dbMarkClaimed(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	res := &model{}

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		existenceQuery := `SELECT id FROM ` + tableName + ` WHERE address = $1 LIMIT 1`

		var id sql.NullInt64
		err := tx.GetContext(ctx, &id, existenceQuery, address)
		if err != nil {
			return pgutil.CheckNoRows(err, purchase.ErrPurchaseNotFound)
		}

		query := `UPDATE ` + tableName + `
			SET claimed = TRUE, last_updated_at = $2
			WHERE address = $1 AND claimed IS FALSE

			RETURNING
				id, address, bump, sale, buyer, mint, vault_address, amount, unlock_at, claimed, created_at, last_updated_at`

		err = tx.QueryRowxContext(
			ctx,
			query,
			address,
			time.Now().UTC(),
		).StructScan(res)

		return pgutil.CheckNoRows(err, purchase.ErrPurchaseAlreadyClaimed)
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func dbGetByAddress(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	res := &model{}

	query := `SELECT
		id, address, bump, sale, buyer, mint, vault_address, amount, unlock_at, claimed, created_at, last_updated_at
		FROM ` + tableName + `
		WHERE address = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, purchase.ErrPurchaseNotFound)
	}
	return res, nil
}

func dbGetByBuyerAndMint(ctx context.Context, db *sqlx.DB, buyer, mint string) (*model, error) {
	res := &model{}

	query := `SELECT
		id, address, bump, sale, buyer, mint, vault_address, amount, unlock_at, claimed, created_at, last_updated_at
		FROM ` + tableName + `
		WHERE buyer = $1 AND mint = $2
		LIMIT 1`

	err := db.GetContext(ctx, res, query, buyer, mint)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, purchase.ErrPurchaseNotFound)
	}
	return res, nil
}

func dbGetBySale(ctx context.Context, db *sqlx.DB, sale string, cursor q.Cursor, limit uint64, direction q.Ordering) ([]*model, error) {
	res := []*model{}

	query := `SELECT
		id, address, bump, sale, buyer, mint, vault_address, amount, unlock_at, claimed, created_at, last_updated_at
		FROM ` + tableName + `
		WHERE (sale = $1)
	`

	opts := []interface{}{sale}
	query, opts = q.PaginateQuery(query, opts, cursor, limit, direction)

	err := db.SelectContext(ctx, &res, query, opts...)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, purchase.ErrPurchaseNotFound)
	}

	if len(res) == 0 {
		return nil, purchase.ErrPurchaseNotFound
	}
	return res, nil
}

func dbCountBySale(ctx context.Context, db *sqlx.DB, sale string) (uint64, error) {
	var res uint64

	query := `SELECT COUNT(*) FROM ` + tableName + ` WHERE sale = $1`
	err := db.GetContext(ctx, &res, query, sale)
	if err != nil {
		return 0, err
	}

	return res, nil
}
