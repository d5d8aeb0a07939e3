package engine

import (
	"context"
	"database/sql"

	"github.com/sirupsen/logrus"

	"github.com/plasma-fi/presale-server/pkg/metrics"
	"github.com/plasma-fi/presale-server/pkg/presale/common"
	"github.com/plasma-fi/presale-server/pkg/presale/data/sale"
)

const saleStatusChangedEventName = "SaleStatusChanged"

type SetSaleStatusArgs struct {
	Authority *common.Account
	Mint      *common.Account

	IsActive bool
}

// SetSaleStatus opens or pauses a sale. Only the sale's authority can change
// the status, and the target state is explicit rather than a blind flip so
// retries are safe.
func (e *Engine) SetSaleStatus(ctx context.Context, args *SetSaleStatusArgs) (*sale.Record, error) {
	if args.Authority == nil || args.Mint == nil {
		return nil, ErrInvalidParameter
	}

	log := e.log.WithFields(logrus.Fields{
		"method":    "SetSaleStatus",
		"mint":      args.Mint.ToBase58(),
		"is_active": args.IsActive,
	})

	record, err := e.data.GetSaleByMint(ctx, args.Mint.ToBase58())
	if err == sale.ErrSaleNotFound {
		return nil, ErrSaleNotFound
	} else if err != nil {
		log.WithError(err).Warn("failure getting sale record")
		return nil, err
	}

	if record.Authority != args.Authority.ToBase58() {
		return nil, ErrUnauthorized
	}

	if record.IsActive == args.IsActive {
		return record, nil
	}

	record.IsActive = args.IsActive
	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		return e.data.UpdateSale(ctx, record)
	})
	if err != nil {
		log.WithError(err).Warn("failure updating sale record")
		return nil, err
	}

	metrics.RecordEvent(ctx, saleStatusChangedEventName, map[string]interface{}{
		"mint":      record.Mint,
		"is_active": record.IsActive,
	})

	return record, nil
}
