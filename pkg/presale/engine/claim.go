package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/plasma-fi/presale-server/pkg/metrics"
	"github.com/plasma-fi/presale-server/pkg/presale/common"
	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase"
)

const tokensClaimedEventName = "TokensClaimed"

type ClaimTokensArgs struct {
	Buyer *common.Account
	Mint  *common.Account

	// Destination is the external account receiving the unlocked tokens
	Destination *common.Account
}

// ClaimTokens releases a purchase's tokens after the lock expires. The locked
// vault is drained to the destination and the purchase record is marked
// claimed, which makes the release one-shot.
func (e *Engine) ClaimTokens(ctx context.Context, args *ClaimTokensArgs) (*purchase.Record, error) {
	if args.Buyer == nil || args.Mint == nil || args.Destination == nil {
		return nil, ErrInvalidParameter
	}

	log := e.log.WithFields(logrus.Fields{
		"method": "ClaimTokens",
		"buyer":  args.Buyer.ToBase58(),
		"mint":   args.Mint.ToBase58(),
	})

	record, err := e.data.GetPurchaseByBuyerAndMint(ctx, args.Buyer.ToBase58(), args.Mint.ToBase58())
	if err == purchase.ErrPurchaseNotFound {
		return nil, ErrNoPurchaseRecord
	} else if err != nil {
		log.WithError(err).Warn("failure getting purchase record")
		return nil, err
	}

	if record.Claimed {
		return nil, ErrAlreadyClaimed
	}

	now := e.now()
	if !record.IsUnlocked(now) {
		unlockAt := time.Unix(record.UnlockAt, 0)
		return nil, &StillLockedError{
			UnlockAt:  unlockAt,
			Remaining: unlockAt.Sub(now),
		}
	}

	var claimed *purchase.Record
	err = e.data.ExecuteInTx(ctx, sql.LevelDefault, func(ctx context.Context) error {
		claimed, err = e.data.MarkPurchaseClaimed(ctx, record.Address)
		if err != nil {
			return err
		}

		_, err = e.data.DebitVault(ctx, record.VaultAddress, record.Amount)
		return err
	})
	switch err {
	case nil:
	case purchase.ErrPurchaseAlreadyClaimed:
		return nil, ErrAlreadyClaimed
	default:
		log.WithError(err).Warn("failure settling claim")
		return nil, err
	}

	metrics.RecordEvent(ctx, tokensClaimedEventName, map[string]interface{}{
		"mint":        claimed.Mint,
		"buyer":       claimed.Buyer,
		"amount":      claimed.Amount,
		"destination": args.Destination.ToBase58(),
	})

	return claimed, nil
}
