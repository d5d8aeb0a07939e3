package engine

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plasma-fi/presale-server/pkg/presale/common"
	"github.com/plasma-fi/presale-server/pkg/presale/data"
	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase"
	"github.com/plasma-fi/presale-server/pkg/presale/data/sale"
	"github.com/plasma-fi/presale-server/pkg/presale/payment"
)

// Engine settles presale activity against durable state. Each flow mirrors a
// program instruction: a sale is initialized once per mint, buyers purchase
// locked tokens while the sale is active, and purchases are claimed exactly
// once after their unlock timestamp.
type Engine struct {
	log  *logrus.Entry
	conf *conf
	data data.Provider
	rail payment.Rail
	now  func() time.Time
}

type Option func(*Engine)

// WithClock overrides the engine's time source. Tests use this to cross the
// unlock boundary without waiting.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func New(data data.Provider, rail payment.Rail, configProvider ConfigProvider, opts ...Option) *Engine {
	e := &Engine{
		log:  logrus.StandardLogger().WithField("type", "presale/engine"),
		conf: configProvider(),
		data: data,
		rail: rail,
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// GetSale gets the current settlement state of the sale for a mint
func (e *Engine) GetSale(ctx context.Context, mint *common.Account) (*sale.Record, error) {
	record, err := e.data.GetSaleByMint(ctx, mint.ToBase58())
	if err == sale.ErrSaleNotFound {
		return nil, ErrSaleNotFound
	}
	return record, err
}

// GetPurchase gets a buyer's purchase record for a mint
func (e *Engine) GetPurchase(ctx context.Context, buyer, mint *common.Account) (*purchase.Record, error) {
	record, err := e.data.GetPurchaseByBuyerAndMint(ctx, buyer.ToBase58(), mint.ToBase58())
	if err == purchase.ErrPurchaseNotFound {
		return nil, ErrNoPurchaseRecord
	}
	return record, err
}

// GetSaleParticipantCount gets the number of purchases made against the sale
// for a mint
func (e *Engine) GetSaleParticipantCount(ctx context.Context, mint *common.Account) (uint64, error) {
	saleRecord, err := e.GetSale(ctx, mint)
	if err != nil {
		return 0, err
	}

	return e.data.GetPurchaseCountBySale(ctx, saleRecord.Address)
}
