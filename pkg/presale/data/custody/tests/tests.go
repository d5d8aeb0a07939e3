package tests

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasma-fi/presale-server/pkg/presale/data/custody"
)

func RunTests(t *testing.T, s custody.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s custody.Store){
		testHappyPath,
		testCredit,
		testDebit,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s custody.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		start := time.Now()

		ctx := context.Background()

		expected := &custody.Record{
			Address: "vault",
			Bump:    254,

			Authority: "authority",
			Mint:      "mint",

			Balance: 1_000_000,
		}
		cloned := expected.Clone()

		// Validate the record initially doesn't exist

		_, err := s.GetByAddress(ctx, expected.Address)
		assert.Equal(t, custody.ErrVaultNotFound, err)

		// Create the record

		require.NoError(t, s.Put(ctx, expected))
		assert.True(t, expected.Id > 0)
		assert.True(t, expected.LastUpdatedAt.After(start))

		actual, err := s.GetByAddress(ctx, expected.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)

		// Vaults are unique by address

		duplicate := expected.Clone()
		duplicate.Id = 0
		assert.Equal(t, custody.ErrVaultAlreadyExists, s.Put(ctx, duplicate))
	})
}

func testCredit(t *testing.T, s custody.Store) {
	t.Run("testCredit", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.Credit(ctx, "not-found", 1)
		assert.Equal(t, custody.ErrVaultNotFound, err)

		record := &custody.Record{
			Address: "vault",
			Bump:    254,

			Authority: "authority",
			Mint:      "mint",
		}
		require.NoError(t, s.Put(ctx, record))

		actual, err := s.Credit(ctx, record.Address, 100)
		require.NoError(t, err)
		assert.EqualValues(t, 100, actual.Balance)

		actual, err = s.Credit(ctx, record.Address, 50)
		require.NoError(t, err)
		assert.EqualValues(t, 150, actual.Balance)

		// The balance can't overflow

		_, err = s.Credit(ctx, record.Address, math.MaxUint64)
		assert.Equal(t, custody.ErrBalanceOverflow, err)

		actual, err = s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 150, actual.Balance)
	})
}

func testDebit(t *testing.T, s custody.Store) {
	t.Run("testDebit", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.Debit(ctx, "not-found", 1)
		assert.Equal(t, custody.ErrVaultNotFound, err)

		record := &custody.Record{
			Address: "vault",
			Bump:    254,

			Authority: "authority",
			Mint:      "mint",

			Balance: 100,
		}
		require.NoError(t, s.Put(ctx, record))

		actual, err := s.Debit(ctx, record.Address, 30)
		require.NoError(t, err)
		assert.EqualValues(t, 70, actual.Balance)

		// The balance can't go negative

		_, err = s.Debit(ctx, record.Address, 71)
		assert.Equal(t, custody.ErrInsufficientBalance, err)

		actual, err = s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 70, actual.Balance)

		// The balance can be fully drained

		actual, err = s.Debit(ctx, record.Address, 70)
		require.NoError(t, err)
		assert.EqualValues(t, 0, actual.Balance)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *custody.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Bump, obj2.Bump)

	assert.Equal(t, obj1.Authority, obj2.Authority)
	assert.Equal(t, obj1.Mint, obj2.Mint)

	assert.Equal(t, obj1.Balance, obj2.Balance)
}
