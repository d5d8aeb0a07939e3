package data

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	pg "github.com/plasma-fi/presale-server/pkg/database/postgres"
	"github.com/plasma-fi/presale-server/pkg/database/query"

	"github.com/plasma-fi/presale-server/pkg/presale/data/custody"
	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase"
	"github.com/plasma-fi/presale-server/pkg/presale/data/sale"

	custody_memory_client "github.com/plasma-fi/presale-server/pkg/presale/data/custody/memory"
	purchase_memory_client "github.com/plasma-fi/presale-server/pkg/presale/data/purchase/memory"
	sale_memory_client "github.com/plasma-fi/presale-server/pkg/presale/data/sale/memory"

	custody_postgres_client "github.com/plasma-fi/presale-server/pkg/presale/data/custody/postgres"
	purchase_postgres_client "github.com/plasma-fi/presale-server/pkg/presale/data/purchase/postgres"
	sale_postgres_client "github.com/plasma-fi/presale-server/pkg/presale/data/sale/postgres"
)

type DatabaseData interface {
	// Sale
	// --------------------------------------------------------------------------------
	CreateSale(ctx context.Context, record *sale.Record) error
	UpdateSale(ctx context.Context, record *sale.Record) error
	GetSaleByAddress(ctx context.Context, address string) (*sale.Record, error)
	GetSaleByMint(ctx context.Context, mint string) (*sale.Record, error)
	GetAllSales(ctx context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*sale.Record, error)

	// Purchase
	// --------------------------------------------------------------------------------
	CreatePurchase(ctx context.Context, record *purchase.Record) error
	GetPurchaseByAddress(ctx context.Context, address string) (*purchase.Record, error)
	GetPurchaseByBuyerAndMint(ctx context.Context, buyer, mint string) (*purchase.Record, error)
	MarkPurchaseClaimed(ctx context.Context, address string) (*purchase.Record, error)
	GetAllPurchasesBySale(ctx context.Context, saleAddress string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*purchase.Record, error)
	GetPurchaseCountBySale(ctx context.Context, saleAddress string) (uint64, error)

	// Vault Custody
	// --------------------------------------------------------------------------------
	CreateVault(ctx context.Context, record *custody.Record) error
	GetVaultByAddress(ctx context.Context, address string) (*custody.Record, error)
	CreditVault(ctx context.Context, address string, amount uint64) (*custody.Record, error)
	DebitVault(ctx context.Context, address string, amount uint64) (*custody.Record, error)

	// ExecuteInTx executes fn with a single DB transaction that is scoped to
	// the call. This enables more complex transactions that can span many
	// stores.
	ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error
}

type DatabaseProvider struct {
	sales     sale.Store
	purchases purchase.Store
	vaults    custody.Store

	db *sqlx.DB
}

func NewDatabaseProvider(dbConfig *pg.Config) (DatabaseData, error) {
	db, err := pg.NewWithUsernameAndPassword(
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Host,
		fmt.Sprint(dbConfig.Port),
		dbConfig.DbName,
	)
	if err != nil {
		return nil, err
	}

	if dbConfig.MaxOpenConnections > 0 {
		db.SetMaxOpenConns(dbConfig.MaxOpenConnections)
	}
	if dbConfig.MaxIdleConnections > 0 {
		db.SetMaxIdleConns(dbConfig.MaxIdleConnections)
	}
	db.SetConnMaxIdleTime(time.Hour)
	db.SetConnMaxLifetime(time.Hour)

	return &DatabaseProvider{
		sales:     sale_postgres_client.New(db),
		purchases: purchase_postgres_client.New(db),
		vaults:    custody_postgres_client.New(db),

		db: sqlx.NewDb(db, "pgx"),
	}, nil
}

func NewTestDatabaseProvider() DatabaseData {
	return &DatabaseProvider{
		sales:     sale_memory_client.New(),
		purchases: purchase_memory_client.New(),
		vaults:    custody_memory_client.New(),
	}
}

func (dp *DatabaseProvider) ExecuteInTx(ctx context.Context, isolation sql.IsolationLevel, fn func(ctx context.Context) error) error {
	if dp.db == nil {
		return fn(ctx)
	}

	return pg.ExecuteTxWithinCtx(ctx, dp.db, isolation, fn)
}

// Sale
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateSale(ctx context.Context, record *sale.Record) error {
	return dp.sales.Put(ctx, record)
}
func (dp *DatabaseProvider) UpdateSale(ctx context.Context, record *sale.Record) error {
	return dp.sales.Update(ctx, record)
}
func (dp *DatabaseProvider) GetSaleByAddress(ctx context.Context, address string) (*sale.Record, error) {
	return dp.sales.GetByAddress(ctx, address)
}
func (dp *DatabaseProvider) GetSaleByMint(ctx context.Context, mint string) (*sale.Record, error) {
	return dp.sales.GetByMint(ctx, mint)
}
func (dp *DatabaseProvider) GetAllSales(ctx context.Context, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*sale.Record, error) {
	return dp.sales.GetAll(ctx, cursor, limit, direction)
}

// Purchase
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreatePurchase(ctx context.Context, record *purchase.Record) error {
	return dp.purchases.Put(ctx, record)
}
func (dp *DatabaseProvider) GetPurchaseByAddress(ctx context.Context, address string) (*purchase.Record, error) {
	return dp.purchases.GetByAddress(ctx, address)
}
func (dp *DatabaseProvider) GetPurchaseByBuyerAndMint(ctx context.Context, buyer, mint string) (*purchase.Record, error) {
	return dp.purchases.GetByBuyerAndMint(ctx, buyer, mint)
}
func (dp *DatabaseProvider) MarkPurchaseClaimed(ctx context.Context, address string) (*purchase.Record, error) {
	return dp.purchases.MarkClaimed(ctx, address)
}
func (dp *DatabaseProvider) GetAllPurchasesBySale(ctx context.Context, saleAddress string, cursor query.Cursor, limit uint64, direction query.Ordering) ([]*purchase.Record, error) {
	return dp.purchases.GetBySale(ctx, saleAddress, cursor, limit, direction)
}
func (dp *DatabaseProvider) GetPurchaseCountBySale(ctx context.Context, saleAddress string) (uint64, error) {
	return dp.purchases.CountBySale(ctx, saleAddress)
}

// Vault Custody
// --------------------------------------------------------------------------------
func (dp *DatabaseProvider) CreateVault(ctx context.Context, record *custody.Record) error {
	return dp.vaults.Put(ctx, record)
}
func (dp *DatabaseProvider) GetVaultByAddress(ctx context.Context, address string) (*custody.Record, error) {
	return dp.vaults.GetByAddress(ctx, address)
}
func (dp *DatabaseProvider) CreditVault(ctx context.Context, address string, amount uint64) (*custody.Record, error) {
	return dp.vaults.Credit(ctx, address, amount)
}
func (dp *DatabaseProvider) DebitVault(ctx context.Context, address string, amount uint64) (*custody.Record, error) {
	return dp.vaults.Debit(ctx, address, amount)
}
