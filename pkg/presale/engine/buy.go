package engine

import (
	"context"
	"database/sql"

	"github.com/mr-tron/base58"
	"github.com/sirupsen/logrus"

	"github.com/plasma-fi/presale-server/pkg/metrics"
	"github.com/plasma-fi/presale-server/pkg/presale/common"
	"github.com/plasma-fi/presale-server/pkg/presale/data/custody"
	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase"
	"github.com/plasma-fi/presale-server/pkg/presale/data/sale"
	splpresale "github.com/plasma-fi/presale-server/pkg/solana/presale"
)

const tokensPurchasedEventName = "TokensPurchased"

type BuyTokensArgs struct {
	Buyer *common.Account
	Mint  *common.Account

	Amount uint64
}

// BuyTokens settles a purchase of locked tokens. The buyer pays the cost to
// the sale's treasury over the payment rail, tokens move from the sale vault
// into a per-buyer locked vault, and a purchase record starts the lock clock.
// A buyer gets at most one purchase per mint.
func (e *Engine) BuyTokens(ctx context.Context, args *BuyTokensArgs) (*purchase.Record, error) {
	if args.Buyer == nil || args.Mint == nil {
		return nil, ErrInvalidParameter
	}
	if args.Amount == 0 {
		return nil, ErrInvalidParameter
	}

	log := e.log.WithFields(logrus.Fields{
		"method": "BuyTokens",
		"buyer":  args.Buyer.ToBase58(),
		"mint":   args.Mint.ToBase58(),
		"amount": args.Amount,
	})

	saleRecord, err := e.data.GetSaleByMint(ctx, args.Mint.ToBase58())
	if err == sale.ErrSaleNotFound {
		return nil, ErrSaleNotFound
	} else if err != nil {
		log.WithError(err).Warn("failure getting sale record")
		return nil, err
	}

	if !saleRecord.IsActive {
		return nil, ErrSaleInactive
	}

	if args.Amount > saleRecord.RemainingAllocation() {
		return nil, &AllocationExceededError{
			Requested: args.Amount,
			Remaining: saleRecord.RemainingAllocation(),
		}
	}

	cost, ok := checkedMul(saleRecord.PricePerToken, args.Amount)
	if !ok {
		return nil, ErrArithmeticOverflow
	}

	// Check for an existing purchase before any money moves. The unique
	// constraint on the purchase record backstops races.
	_, err = e.data.GetPurchaseByBuyerAndMint(ctx, args.Buyer.ToBase58(), args.Mint.ToBase58())
	if err == nil {
		return nil, ErrDuplicatePurchase
	} else if err != purchase.ErrPurchaseNotFound {
		log.WithError(err).Warn("failure getting purchase record")
		return nil, err
	}

	userInfoAddress, userInfoBump, err := splpresale.GetUserInfoAddress(&splpresale.GetUserInfoAddressArgs{
		Buyer: args.Buyer.PublicKey().ToBytes(),
		Mint:  args.Mint.PublicKey().ToBytes(),
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving purchase address")
		return nil, err
	}

	userVaultAddress, userVaultBump, err := splpresale.GetUserVaultAddress(&splpresale.GetUserVaultAddressArgs{
		Buyer: args.Buyer.PublicKey().ToBytes(),
		Mint:  args.Mint.PublicKey().ToBytes(),
	})
	if err != nil {
		log.WithError(err).Warn("failure deriving user vault address")
		return nil, err
	}

	treasury, err := common.NewAccountFromPublicKeyString(saleRecord.Treasury)
	if err != nil {
		log.WithError(err).Warn("invalid treasury on sale record")
		return nil, err
	}

	// The rail is external to the DB, so the funding leg settles first and
	// the DB transaction below is the commit point for everything else.
	if err := e.rail.Transfer(ctx, args.Buyer, treasury, cost); err != nil {
		return nil, err
	}

	purchaseRecord := &purchase.Record{
		Address: base58.Encode(userInfoAddress),
		Bump:    userInfoBump,

		Sale:  saleRecord.Address,
		Buyer: args.Buyer.ToBase58(),
		Mint:  args.Mint.ToBase58(),

		VaultAddress: base58.Encode(userVaultAddress),

		Amount:   args.Amount,
		UnlockAt: e.now().Unix() + int64(e.conf.lockDuration.Get(ctx)),
	}

	userVaultRecord := &custody.Record{
		Address: base58.Encode(userVaultAddress),
		Bump:    userVaultBump,

		Authority: base58.Encode(userInfoAddress),
		Mint:      args.Mint.ToBase58(),

		Balance: 0,
	}

	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		if err := e.data.CreatePurchase(ctx, purchaseRecord); err != nil {
			return err
		}

		if err := e.data.CreateVault(ctx, userVaultRecord); err != nil {
			return err
		}

		if _, err := e.data.DebitVault(ctx, saleRecord.VaultAddress, args.Amount); err != nil {
			return err
		}

		if _, err := e.data.CreditVault(ctx, userVaultRecord.Address, args.Amount); err != nil {
			return err
		}

		saleRecord.TokensSold += args.Amount
		return e.data.UpdateSale(ctx, saleRecord)
	})
	switch err {
	case nil:
	case purchase.ErrPurchaseAlreadyExists:
		return nil, ErrDuplicatePurchase
	default:
		log.WithError(err).Warn("failure settling purchase")
		return nil, err
	}

	metrics.RecordEvent(ctx, tokensPurchasedEventName, map[string]interface{}{
		"mint":      purchaseRecord.Mint,
		"buyer":     purchaseRecord.Buyer,
		"amount":    purchaseRecord.Amount,
		"cost":      cost,
		"unlock_at": purchaseRecord.UnlockAt,
	})

	return purchaseRecord, nil
}

func checkedMul(a, b uint64) (uint64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}

	c := a * b
	if c/a != b {
		return 0, false
	}
	return c, true
}
