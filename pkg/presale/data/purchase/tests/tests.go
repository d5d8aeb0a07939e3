package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasma-fi/presale-server/pkg/database/query"
	"github.com/plasma-fi/presale-server/pkg/presale/data/purchase"
)

func RunTests(t *testing.T, s purchase.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s purchase.Store){
		testHappyPath,
		testPutConstraints,
		testMarkClaimed,
		testGetBySale,
		testCountBySale,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s purchase.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		start := time.Now()

		ctx := context.Background()

		expected := &purchase.Record{
			Address: "user_info",
			Bump:    252,

			Sale:  "sale",
			Buyer: "buyer",
			Mint:  "mint",

			VaultAddress: "user_vault",

			Amount:   100,
			UnlockAt: time.Now().Add(365 * 24 * time.Hour).Unix(),
		}
		cloned := expected.Clone()

		// Validate the record initially doesn't exist

		_, err := s.GetByAddress(ctx, expected.Address)
		assert.Equal(t, purchase.ErrPurchaseNotFound, err)

		_, err = s.GetByBuyerAndMint(ctx, expected.Buyer, expected.Mint)
		assert.Equal(t, purchase.ErrPurchaseNotFound, err)

		// Create the record

		require.NoError(t, s.Put(ctx, expected))
		assert.True(t, expected.Id > 0)
		assert.True(t, expected.CreatedAt.After(start))

		// Ensure we can fetch the same record by all supported indices

		actual, err := s.GetByAddress(ctx, expected.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)

		actual, err = s.GetByBuyerAndMint(ctx, expected.Buyer, expected.Mint)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)
	})
}

func testPutConstraints(t *testing.T, s purchase.Store) {
	t.Run("testPutConstraints", func(t *testing.T) {
		ctx := context.Background()

		record := &purchase.Record{
			Address: "user_info1",
			Bump:    252,

			Sale:  "sale",
			Buyer: "buyer",
			Mint:  "mint",

			VaultAddress: "user_vault1",

			Amount:   100,
			UnlockAt: 1234567890,
		}
		require.NoError(t, s.Put(ctx, record))

		// Same address

		duplicate := record.Clone()
		duplicate.Id = 0
		duplicate.Buyer = "buyer2"
		assert.Equal(t, purchase.ErrPurchaseAlreadyExists, s.Put(ctx, duplicate))

		// One purchase per buyer and mint

		duplicate = record.Clone()
		duplicate.Id = 0
		duplicate.Address = "user_info2"
		duplicate.VaultAddress = "user_vault2"
		assert.Equal(t, purchase.ErrPurchaseAlreadyExists, s.Put(ctx, duplicate))

		// Same buyer against a different mint is allowed

		other := record.Clone()
		other.Id = 0
		other.Address = "user_info3"
		other.VaultAddress = "user_vault3"
		other.Mint = "mint2"
		require.NoError(t, s.Put(ctx, other))

		// Invalid record

		invalid := record.Clone()
		invalid.Id = 0
		invalid.Address = "user_info4"
		invalid.Mint = "mint3"
		invalid.Amount = 0
		assert.Error(t, s.Put(ctx, invalid))
	})
}

func testMarkClaimed(t *testing.T, s purchase.Store) {
	t.Run("testMarkClaimed", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.MarkClaimed(ctx, "not-found")
		assert.Equal(t, purchase.ErrPurchaseNotFound, err)

		record := &purchase.Record{
			Address: "user_info",
			Bump:    252,

			Sale:  "sale",
			Buyer: "buyer",
			Mint:  "mint",

			VaultAddress: "user_vault",

			Amount:   100,
			UnlockAt: 1234567890,
		}
		require.NoError(t, s.Put(ctx, record))

		previousLastUpdatedTs := record.LastUpdatedAt

		time.Sleep(time.Millisecond)
		actual, err := s.MarkClaimed(ctx, record.Address)
		require.NoError(t, err)
		assert.True(t, actual.Claimed)
		assert.True(t, actual.LastUpdatedAt.After(previousLastUpdatedTs))

		// The transition only applies once

		_, err = s.MarkClaimed(ctx, record.Address)
		assert.Equal(t, purchase.ErrPurchaseAlreadyClaimed, err)

		actual, err = s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		assert.True(t, actual.Claimed)
	})
}

func testGetBySale(t *testing.T, s purchase.Store) {
	t.Run("testGetBySale", func(t *testing.T) {
		ctx := context.Background()

		var expected []*purchase.Record
		for i := 0; i < 25; i++ {
			record := &purchase.Record{
				Address: fmt.Sprintf("user_info%d", i),
				Bump:    252,

				Sale:  "sale",
				Buyer: fmt.Sprintf("buyer%d", i),
				Mint:  "mint",

				VaultAddress: fmt.Sprintf("user_vault%d", i),

				Amount:   uint64(i + 1),
				UnlockAt: 1234567890,
			}

			require.NoError(t, s.Put(ctx, record))

			expected = append(expected, record.Clone())
		}

		_, err := s.GetBySale(ctx, "other-sale", query.EmptyCursor, 10, query.Ascending)
		assert.Equal(t, purchase.ErrPurchaseNotFound, err)

		var cursor query.Cursor
		var actual []*purchase.Record
		for {
			records, err := s.GetBySale(ctx, "sale", cursor, 10, query.Ascending)
			if err == purchase.ErrPurchaseNotFound {
				break
			}
			require.NoError(t, err)

			actual = append(actual, records...)
			cursor = query.ToCursor(records[len(records)-1].Id)
		}

		require.Len(t, actual, 25)
		for i, record := range expected {
			assertEquivalentRecords(t, record, actual[i])
		}

		records, err := s.GetBySale(ctx, "sale", query.EmptyCursor, 10, query.Descending)
		require.NoError(t, err)
		require.Len(t, records, 10)
		assertEquivalentRecords(t, expected[len(expected)-1], records[0])
	})
}

func testCountBySale(t *testing.T, s purchase.Store) {
	t.Run("testCountBySale", func(t *testing.T) {
		ctx := context.Background()

		count, err := s.CountBySale(ctx, "sale")
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)

		for i := 0; i < 5; i++ {
			record := &purchase.Record{
				Address: fmt.Sprintf("user_info%d", i),
				Bump:    252,

				Sale:  "sale",
				Buyer: fmt.Sprintf("buyer%d", i),
				Mint:  "mint",

				VaultAddress: fmt.Sprintf("user_vault%d", i),

				Amount:   100,
				UnlockAt: 1234567890,
			}

			require.NoError(t, s.Put(ctx, record))

			count, err = s.CountBySale(ctx, "sale")
			require.NoError(t, err)
			assert.EqualValues(t, i+1, count)
		}

		count, err = s.CountBySale(ctx, "other-sale")
		require.NoError(t, err)
		assert.EqualValues(t, 0, count)
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *purchase.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Bump, obj2.Bump)

	assert.Equal(t, obj1.Sale, obj2.Sale)
	assert.Equal(t, obj1.Buyer, obj2.Buyer)
	assert.Equal(t, obj1.Mint, obj2.Mint)

	assert.Equal(t, obj1.VaultAddress, obj2.VaultAddress)

	assert.Equal(t, obj1.Amount, obj2.Amount)
	assert.Equal(t, obj1.UnlockAt, obj2.UnlockAt)

	assert.Equal(t, obj1.Claimed, obj2.Claimed)
}
