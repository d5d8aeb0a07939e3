package engine

import (
	"context"
	"database/sql"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/plasma-fi/presale-server/pkg/metrics"
	"github.com/plasma-fi/presale-server/pkg/presale/common"
	"github.com/plasma-fi/presale-server/pkg/presale/data/custody"
	"github.com/plasma-fi/presale-server/pkg/presale/data/sale"
	splpresale "github.com/plasma-fi/presale-server/pkg/solana/presale"
)

const saleInitializedEventName = "SaleInitialized"

type InitializeSaleArgs struct {
	Authority *common.Account
	Mint      *common.Account
	Treasury  *common.Account

	PricePerToken   uint64
	TotalAllocation uint64
}

// InitializeSale creates the settlement state for a new sale. The sale's
// custody vault is created alongside it, seeded with the full allocation,
// and the sale opens active.
func (e *Engine) InitializeSale(ctx context.Context, args *InitializeSaleArgs) (*sale.Record, error) {
	if args.Authority == nil || args.Mint == nil || args.Treasury == nil {
		return nil, ErrInvalidParameter
	}
	if args.PricePerToken == 0 || args.TotalAllocation == 0 {
		return nil, ErrInvalidParameter
	}

	log := e.log.WithFields(logrus.Fields{
		"method": "InitializeSale",
		"mint":   args.Mint.ToBase58(),
	})

	saleAddress, saleBump, err := splpresale.GetSaleAddress(&splpresale.GetSaleAddressArgs{
		Mint: args.Mint.PublicKey().ToBytes(),
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving sale address")
		return nil, err
	}

	vaultAddress, vaultBump, err := splpresale.GetVaultAddress(&splpresale.GetVaultAddressArgs{
		Mint: args.Mint.PublicKey().ToBytes(),
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving vault address")
		return nil, err
	}

	saleRecord := &sale.Record{
		Address: base58.Encode(saleAddress),
		Bump:    saleBump,

		VaultAddress: base58.Encode(vaultAddress),
		VaultBump:    vaultBump,

		Authority: args.Authority.ToBase58(),
		Mint:      args.Mint.ToBase58(),
		Treasury:  args.Treasury.ToBase58(),

		PricePerToken:   args.PricePerToken,
		TotalAllocation: args.TotalAllocation,
		TokensSold:      0,

		IsActive: true,
	}

	vaultRecord := &custody.Record{
		Address: base58.Encode(vaultAddress),
		Bump:    vaultBump,

		Authority: base58.Encode(saleAddress),
		Mint:      args.Mint.ToBase58(),

		Balance: args.TotalAllocation,
	}

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		if err := e.data.CreateSale(ctx, saleRecord); err != nil {
			return err
		}
		return e.data.CreateVault(ctx, vaultRecord)
	})
	switch err {
	case nil:
	case sale.ErrSaleAlreadyExists, custody.ErrVaultAlreadyExists:
		return nil, ErrSaleExists
	default:
		log.WithError(err).Warn("failure creating sale state")
		return nil, err
	}

	metrics.RecordEvent(ctx, saleInitializedEventName, map[string]interface{}{
		"mint":             saleRecord.Mint,
		"price_per_token":  saleRecord.PricePerToken,
		"total_allocation": saleRecord.TotalAllocation,
	})

	return saleRecord, nil
}
