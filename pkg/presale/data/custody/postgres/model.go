package postgres

import (
	"context"
	"database/sql"
	"math"
	"time"

	"github.com/jmoiron/sqlx"

	pgutil "github.com/plasma-fi/presale-server/pkg/database/postgres"
	"github.com/plasma-fi/presale-server/pkg/presale/data/custody"
)

const (
	tableName = "presale__core_vault"
)

type model struct {
	Id sql.NullInt64 `db:"id"`

	Address string `db:"address"`
	Bump    uint   `db:"bump"`

	Authority string `db:"authority"`
	Mint      string `db:"mint"`

	Balance uint64 `db:"balance"`

	LastUpdatedAt time.Time `db:"last_updated_at"`
}

func toModel(obj *custody.Record) (*model, error) {
	if err := obj.Validate(); err != nil {
		return nil, err
	}

	return &model{
		Address: obj.Address,
		Bump:    uint(obj.Bump),

		Authority: obj.Authority,
		Mint:      obj.Mint,

		Balance: obj.Balance,

		LastUpdatedAt: obj.LastUpdatedAt,
	}, nil
}

func fromModel(obj *model) *custody.Record {
	return &custody.Record{
		Id: uint64(obj.Id.Int64),

		Address: obj.Address,
		Bump:    uint8(obj.Bump),

		Authority: obj.Authority,
		Mint:      obj.Mint,

		Balance: obj.Balance,

		LastUpdatedAt: obj.LastUpdatedAt,
	}
}

func (m *model) dbPut(ctx context.Context, db *sqlx.DB) error {
	return pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		query := `INSERT INTO ` + tableName + `
			(address, bump, authority, mint, balance, last_updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)

			RETURNING
				id, address, bump, authority, mint, balance, last_updated_at`

		m.LastUpdatedAt = time.Now()

		err := tx.QueryRowxContext(
			ctx,
			query,

			m.Address,
			m.Bump,

			m.Authority,
			m.Mint,

			m.Balance,

			m.LastUpdatedAt.UTC(),
		).StructScan(m)

		return pgutil.CheckUniqueViolation(err, custody.ErrVaultAlreadyExists)
	})
}

func dbGetByAddress(ctx context.Context, db *sqlx.DB, address string) (*model, error) {
	res := &model{}

	query := `SELECT
		id, address, bump, authority, mint, balance, last_updated_at
		FROM ` + tableName + `
		WHERE address = $1
		LIMIT 1`

	err := db.GetContext(ctx, res, query, address)
	if err != nil {
		return nil, pgutil.CheckNoRows(err, custody.ErrVaultNotFound)
	}
	return res, nil
}

func dbApplyBalanceDelta(ctx context.Context, db *sqlx.DB, address string, applied func(balance uint64) (uint64, error)) (*model, error) {
	res := &model{}

	err := pgutil.ExecuteInTx(ctx, db, sql.LevelDefault, func(tx *sqlx.Tx) error {
		selectQuery := `SELECT
			id, address, bump, authority, mint, balance, last_updated_at
			FROM ` + tableName + `
			WHERE address = $1
			LIMIT 1`

		err := tx.GetContext(ctx, res, selectQuery, address)
		if err != nil {
			return pgutil.CheckNoRows(err, custody.ErrVaultNotFound)
		}

		newBalance, err := applied(res.Balance)
		if err != nil {
			return err
		}

		updateQuery := `UPDATE ` + tableName + `
			SET balance = $2, last_updated_at = $3
			WHERE address = $1 AND balance = $4

			RETURNING
				id, address, bump, authority, mint, balance, last_updated_at`

		err = tx.QueryRowxContext(
			ctx,
			updateQuery,
			address,
			newBalance,
			time.Now().UTC(),
			res.Balance,
		).StructScan(res)

		return pgutil.CheckNoRows(err, custody.ErrStaleVaultState)
	})
	if err != nil {
		return nil, err
	}

	return res, nil
}

func dbCredit(ctx context.Context, db *sqlx.DB, address string, amount uint64) (*model, error) {
	return dbApplyBalanceDelta(ctx, db, address, func(balance uint64) (uint64, error) {
		if amount > math.MaxUint64-balance {
			return 0, custody.ErrBalanceOverflow
		}
		return balance + amount, nil
	})
}

func dbDebit(ctx context.Context, db *sqlx.DB, address string, amount uint64) (*model, error) {
	return dbApplyBalanceDelta(ctx, db, address, func(balance uint64) (uint64, error) {
		if amount > balance {
			return 0, custody.ErrInsufficientBalance
		}
		return balance - amount, nil
	})
}
