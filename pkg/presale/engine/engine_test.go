package engine

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasma-fi/presale-server/pkg/presale/common"
	"github.com/plasma-fi/presale-server/pkg/presale/data"
	"github.com/plasma-fi/presale-server/pkg/presale/payment"
	payment_memory "github.com/plasma-fi/presale-server/pkg/presale/payment/memory"
)

type testEnv struct {
	ctx    context.Context
	engine *Engine
	data   data.Provider
	rail   *payment_memory.Ledger

	currentTime time.Time

	authority *common.Account
	treasury  *common.Account
	mint      *common.Account
	buyer     *common.Account
}

func setup(t *testing.T) *testEnv {
	return setupWithConfigProvider(t, WithEnvConfigs())
}

func setupWithConfigProvider(t *testing.T, configProvider ConfigProvider) *testEnv {
	env := &testEnv{
		ctx:         context.Background(),
		data:        data.NewTestDataProvider(),
		rail:        payment_memory.NewLedger(),
		currentTime: time.Now(),
	}

	env.engine = New(env.data, env.rail, configProvider, WithClock(func() time.Time {
		return env.currentTime
	}))

	var err error
	env.authority, err = common.NewRandomAccount()
	require.NoError(t, err)
	env.treasury, err = common.NewRandomAccount()
	require.NoError(t, err)
	env.mint, err = common.NewRandomAccount()
	require.NoError(t, err)
	env.buyer, err = common.NewRandomAccount()
	require.NoError(t, err)

	return env
}

func (env *testEnv) advance(d time.Duration) {
	env.currentTime = env.currentTime.Add(d)
}

func (env *testEnv) initializeSale(t *testing.T, pricePerToken, totalAllocation uint64) {
	_, err := env.engine.InitializeSale(env.ctx, &InitializeSaleArgs{
		Authority:       env.authority,
		Mint:            env.mint,
		Treasury:        env.treasury,
		PricePerToken:   pricePerToken,
		TotalAllocation: totalAllocation,
	})
	require.NoError(t, err)
}

func TestInitializeSale(t *testing.T) {
	env := setup(t)

	record, err := env.engine.InitializeSale(env.ctx, &InitializeSaleArgs{
		Authority:       env.authority,
		Mint:            env.mint,
		Treasury:        env.treasury,
		PricePerToken:   100_000_000,
		TotalAllocation: 1_000_000,
	})
	require.NoError(t, err)

	assert.Equal(t, env.authority.ToBase58(), record.Authority)
	assert.Equal(t, env.mint.ToBase58(), record.Mint)
	assert.Equal(t, env.treasury.ToBase58(), record.Treasury)
	assert.EqualValues(t, 100_000_000, record.PricePerToken)
	assert.EqualValues(t, 1_000_000, record.TotalAllocation)
	assert.EqualValues(t, 0, record.TokensSold)
	assert.True(t, record.IsActive)
	assert.NotEmpty(t, record.Address)
	assert.NotEmpty(t, record.VaultAddress)

	// The sale vault holds the full allocation up front

	vault, err := env.data.GetVaultByAddress(env.ctx, record.VaultAddress)
	require.NoError(t, err)
	assert.EqualValues(t, 1_000_000, vault.Balance)

	// One sale per mint

	_, err = env.engine.InitializeSale(env.ctx, &InitializeSaleArgs{
		Authority:       env.authority,
		Mint:            env.mint,
		Treasury:        env.treasury,
		PricePerToken:   1,
		TotalAllocation: 1,
	})
	assert.Equal(t, ErrSaleExists, err)
}

func TestInitializeSale_InvalidParameters(t *testing.T) {
	env := setup(t)

	for _, args := range []*InitializeSaleArgs{
		{Authority: env.authority, Mint: env.mint, Treasury: env.treasury, PricePerToken: 0, TotalAllocation: 100},
		{Authority: env.authority, Mint: env.mint, Treasury: env.treasury, PricePerToken: 100, TotalAllocation: 0},
		{Authority: nil, Mint: env.mint, Treasury: env.treasury, PricePerToken: 100, TotalAllocation: 100},
		{Authority: env.authority, Mint: nil, Treasury: env.treasury, PricePerToken: 100, TotalAllocation: 100},
		{Authority: env.authority, Mint: env.mint, Treasury: nil, PricePerToken: 100, TotalAllocation: 100},
	} {
		_, err := env.engine.InitializeSale(env.ctx, args)
		assert.Equal(t, ErrInvalidParameter, err)
	}
}

func TestBuyTokens_HappyPath(t *testing.T) {
	env := setup(t)
	env.initializeSale(t, 100_000_000, 1_000_000)

	env.rail.Deposit(env.buyer, 100_000_000_000)

	record, err := env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 100,
	})
	require.NoError(t, err)

	assert.Equal(t, env.buyer.ToBase58(), record.Buyer)
	assert.Equal(t, env.mint.ToBase58(), record.Mint)
	assert.EqualValues(t, 100, record.Amount)
	assert.False(t, record.Claimed)
	assert.Equal(t, env.currentTime.Unix()+31_536_000, record.UnlockAt)

	// The buyer paid price * amount to the treasury

	assert.EqualValues(t, 10_000_000_000, env.rail.BalanceOf(env.treasury))
	assert.EqualValues(t, 90_000_000_000, env.rail.BalanceOf(env.buyer))

	// Tokens moved from the sale vault into the buyer's locked vault

	saleRecord, err := env.engine.GetSale(env.ctx, env.mint)
	require.NoError(t, err)
	assert.EqualValues(t, 100, saleRecord.TokensSold)

	saleVault, err := env.data.GetVaultByAddress(env.ctx, saleRecord.VaultAddress)
	require.NoError(t, err)
	userVault, err := env.data.GetVaultByAddress(env.ctx, record.VaultAddress)
	require.NoError(t, err)

	assert.EqualValues(t, 999_900, saleVault.Balance)
	assert.EqualValues(t, 100, userVault.Balance)
	assert.Equal(t, saleRecord.TotalAllocation, saleVault.Balance+userVault.Balance)

	count, err := env.engine.GetSaleParticipantCount(env.ctx, env.mint)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestBuyTokens_LockDurationOverride(t *testing.T) {
	env := setupWithConfigProvider(t, withManualTestOverrides(&testOverrides{
		lockDuration: 3_600,
	}))
	env.initializeSale(t, 1, 1_000)

	env.rail.Deposit(env.buyer, 1_000)

	record, err := env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, env.currentTime.Unix()+3_600, record.UnlockAt)

	destination, err := common.NewRandomAccount()
	require.NoError(t, err)

	// The shorter lock unlocks the claim after an hour instead of a year

	_, err = env.engine.ClaimTokens(env.ctx, &ClaimTokensArgs{
		Buyer:       env.buyer,
		Mint:        env.mint,
		Destination: destination,
	})
	var lockedErr *StillLockedError
	require.ErrorAs(t, err, &lockedErr)

	env.advance(time.Hour)

	_, err = env.engine.ClaimTokens(env.ctx, &ClaimTokensArgs{
		Buyer:       env.buyer,
		Mint:        env.mint,
		Destination: destination,
	})
	require.NoError(t, err)
}

func TestBuyTokens_SaleInactive(t *testing.T) {
	env := setup(t)
	env.initializeSale(t, 1, 1_000)

	env.rail.Deposit(env.buyer, 1_000)

	_, err := env.engine.SetSaleStatus(env.ctx, &SetSaleStatusArgs{
		Authority: env.authority,
		Mint:      env.mint,
		IsActive:  false,
	})
	require.NoError(t, err)

	_, err = env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 10,
	})
	assert.Equal(t, ErrSaleInactive, err)
	assert.EqualValues(t, 1_000, env.rail.BalanceOf(env.buyer))
}

func TestBuyTokens_AllocationBoundary(t *testing.T) {
	env := setup(t)
	env.initializeSale(t, 1, 1_000)

	env.rail.Deposit(env.buyer, 10_000)

	// Exactly the remaining allocation is allowed

	record, err := env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 1_000,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1_000, record.Amount)

	saleRecord, err := env.engine.GetSale(env.ctx, env.mint)
	require.NoError(t, err)
	assert.EqualValues(t, 0, saleRecord.RemainingAllocation())

	// One token over is rejected

	other, err := common.NewRandomAccount()
	require.NoError(t, err)
	env.rail.Deposit(other, 10_000)

	_, err = env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  other,
		Mint:   env.mint,
		Amount: 1,
	})

	var allocationErr *AllocationExceededError
	require.ErrorAs(t, err, &allocationErr)
	assert.EqualValues(t, 1, allocationErr.Requested)
	assert.EqualValues(t, 0, allocationErr.Remaining)
}

func TestBuyTokens_DuplicatePurchase(t *testing.T) {
	env := setup(t)
	env.initializeSale(t, 1, 1_000)

	env.rail.Deposit(env.buyer, 10_000)

	_, err := env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 10,
	})
	require.NoError(t, err)

	_, err = env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 20,
	})
	assert.Equal(t, ErrDuplicatePurchase, err)

	// The failed purchase didn't move any funds

	assert.EqualValues(t, 10_000-10, env.rail.BalanceOf(env.buyer))
}

func TestBuyTokens_CostOverflow(t *testing.T) {
	env := setup(t)
	env.initializeSale(t, math.MaxUint64/2, 10)

	env.rail.Deposit(env.buyer, 10_000)

	_, err := env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 3,
	})
	assert.Equal(t, ErrArithmeticOverflow, err)
}

func TestBuyTokens_InsufficientFunds(t *testing.T) {
	env := setup(t)
	env.initializeSale(t, 100, 1_000)

	env.rail.Deposit(env.buyer, 999)

	_, err := env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 10,
	})
	assert.Equal(t, payment.ErrInsufficientFunds, err)

	// No settlement state was created

	_, err = env.engine.GetPurchase(env.ctx, env.buyer, env.mint)
	assert.Equal(t, ErrNoPurchaseRecord, err)
}

func TestClaimTokens(t *testing.T) {
	env := setup(t)
	env.initializeSale(t, 1, 1_000)

	env.rail.Deposit(env.buyer, 10_000)

	destination, err := common.NewRandomAccount()
	require.NoError(t, err)

	_, err = env.engine.ClaimTokens(env.ctx, &ClaimTokensArgs{
		Buyer:       env.buyer,
		Mint:        env.mint,
		Destination: destination,
	})
	assert.Equal(t, ErrNoPurchaseRecord, err)

	record, err := env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 100,
	})
	require.NoError(t, err)

	// Claims are rejected until the lock expires

	_, err = env.engine.ClaimTokens(env.ctx, &ClaimTokensArgs{
		Buyer:       env.buyer,
		Mint:        env.mint,
		Destination: destination,
	})

	var lockedErr *StillLockedError
	require.ErrorAs(t, err, &lockedErr)
	assert.Equal(t, record.UnlockAt, lockedErr.UnlockAt.Unix())
	assert.True(t, lockedErr.Remaining > 0)

	// One second before the boundary is still locked

	env.advance(365*24*time.Hour - time.Second)
	_, err = env.engine.ClaimTokens(env.ctx, &ClaimTokensArgs{
		Buyer:       env.buyer,
		Mint:        env.mint,
		Destination: destination,
	})
	require.ErrorAs(t, err, &lockedErr)

	// The boundary itself unlocks

	env.advance(time.Second)
	claimed, err := env.engine.ClaimTokens(env.ctx, &ClaimTokensArgs{
		Buyer:       env.buyer,
		Mint:        env.mint,
		Destination: destination,
	})
	require.NoError(t, err)
	assert.True(t, claimed.Claimed)

	// The locked vault was drained

	userVault, err := env.data.GetVaultByAddress(env.ctx, record.VaultAddress)
	require.NoError(t, err)
	assert.EqualValues(t, 0, userVault.Balance)

	// Claims are one-shot

	_, err = env.engine.ClaimTokens(env.ctx, &ClaimTokensArgs{
		Buyer:       env.buyer,
		Mint:        env.mint,
		Destination: destination,
	})
	assert.Equal(t, ErrAlreadyClaimed, err)
}

func TestSetSaleStatus(t *testing.T) {
	env := setup(t)
	env.initializeSale(t, 1, 1_000)

	env.rail.Deposit(env.buyer, 10_000)

	// Only the sale authority can change the status

	imposter, err := common.NewRandomAccount()
	require.NoError(t, err)

	_, err = env.engine.SetSaleStatus(env.ctx, &SetSaleStatusArgs{
		Authority: imposter,
		Mint:      env.mint,
		IsActive:  false,
	})
	assert.Equal(t, ErrUnauthorized, err)

	record, err := env.engine.SetSaleStatus(env.ctx, &SetSaleStatusArgs{
		Authority: env.authority,
		Mint:      env.mint,
		IsActive:  false,
	})
	require.NoError(t, err)
	assert.False(t, record.IsActive)

	// Setting the same status twice is a no-op

	record, err = env.engine.SetSaleStatus(env.ctx, &SetSaleStatusArgs{
		Authority: env.authority,
		Mint:      env.mint,
		IsActive:  false,
	})
	require.NoError(t, err)
	assert.False(t, record.IsActive)

	// Reactivating restores purchases

	_, err = env.engine.SetSaleStatus(env.ctx, &SetSaleStatusArgs{
		Authority: env.authority,
		Mint:      env.mint,
		IsActive:  true,
	})
	require.NoError(t, err)

	_, err = env.engine.BuyTokens(env.ctx, &BuyTokensArgs{
		Buyer:  env.buyer,
		Mint:   env.mint,
		Amount: 10,
	})
	require.NoError(t, err)

	_, err = env.engine.SetSaleStatus(env.ctx, &SetSaleStatusArgs{
		Authority: env.authority,
		Mint:      nil,
	})
	assert.Equal(t, ErrInvalidParameter, err)
}
