package tests

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plasma-fi/presale-server/pkg/database/query"
	"github.com/plasma-fi/presale-server/pkg/presale/data/sale"
)

func RunTests(t *testing.T, s sale.Store, teardown func()) {
	for _, tf := range []func(t *testing.T, s sale.Store){
		testHappyPath,
		testPutConstraints,
		testVersionGuard,
		testGetAll,
	} {
		tf(t, s)
		teardown()
	}
}

func testHappyPath(t *testing.T, s sale.Store) {
	t.Run("testHappyPath", func(t *testing.T) {
		start := time.Now()

		ctx := context.Background()

		expected := &sale.Record{
			Address: "sale",
			Bump:    253,

			VaultAddress: "vault",
			VaultBump:    254,

			Authority: "authority",
			Mint:      "mint",
			Treasury:  "treasury",

			PricePerToken:   100_000_000,
			TotalAllocation: 1_000_000,
			TokensSold:      0,

			IsActive: true,
		}
		cloned := expected.Clone()

		// Validate the record initially doesn't exist

		_, err := s.GetByAddress(ctx, expected.Address)
		assert.Equal(t, sale.ErrSaleNotFound, err)

		_, err = s.GetByMint(ctx, expected.Mint)
		assert.Equal(t, sale.ErrSaleNotFound, err)

		// Create the record

		require.NoError(t, s.Put(ctx, expected))
		assert.True(t, expected.Id > 0)
		assert.EqualValues(t, 0, expected.Version)
		assert.True(t, expected.LastUpdatedAt.After(start))

		// Ensure we can fetch the same record by all supported indices

		actual, err := s.GetByAddress(ctx, expected.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)

		actual, err = s.GetByMint(ctx, expected.Mint)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)

		// Update the record's settlement state

		previousLastUpdatedTs := expected.LastUpdatedAt

		expected.TokensSold = 500
		expected.IsActive = false
		cloned = expected.Clone()

		time.Sleep(time.Millisecond)
		require.NoError(t, s.Update(ctx, expected))
		assert.EqualValues(t, 1, expected.Version)
		assert.True(t, expected.LastUpdatedAt.After(previousLastUpdatedTs))

		actual, err = s.GetByAddress(ctx, expected.Address)
		require.NoError(t, err)
		assertEquivalentRecords(t, cloned, actual)
		assert.EqualValues(t, 1, actual.Version)
	})
}

func testPutConstraints(t *testing.T, s sale.Store) {
	t.Run("testPutConstraints", func(t *testing.T) {
		ctx := context.Background()

		record := &sale.Record{
			Address: "sale1",
			Bump:    253,

			VaultAddress: "vault1",
			VaultBump:    254,

			Authority: "authority",
			Mint:      "mint1",
			Treasury:  "treasury",

			PricePerToken:   1,
			TotalAllocation: 100,

			IsActive: true,
		}
		require.NoError(t, s.Put(ctx, record))

		// Same address

		duplicate := record.Clone()
		duplicate.Id = 0
		duplicate.Mint = "mint2"
		assert.Equal(t, sale.ErrSaleAlreadyExists, s.Put(ctx, duplicate))

		// Same mint

		duplicate = record.Clone()
		duplicate.Id = 0
		duplicate.Address = "sale2"
		duplicate.VaultAddress = "vault2"
		assert.Equal(t, sale.ErrSaleAlreadyExists, s.Put(ctx, duplicate))

		// Invalid record

		invalid := record.Clone()
		invalid.Id = 0
		invalid.Address = "sale3"
		invalid.Mint = "mint3"
		invalid.PricePerToken = 0
		assert.Error(t, s.Put(ctx, invalid))
	})
}

func testVersionGuard(t *testing.T, s sale.Store) {
	t.Run("testVersionGuard", func(t *testing.T) {
		ctx := context.Background()

		record := &sale.Record{
			Address: "sale",
			Bump:    253,

			VaultAddress: "vault",
			VaultBump:    254,

			Authority: "authority",
			Mint:      "mint",
			Treasury:  "treasury",

			PricePerToken:   1,
			TotalAllocation: 100,

			IsActive: true,
		}
		require.NoError(t, s.Put(ctx, record))

		// Two flows read the same version of the record

		first, err := s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)

		second, err := s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)

		// Only the first writer wins

		first.TokensSold = 10
		require.NoError(t, s.Update(ctx, first))

		second.TokensSold = 20
		assert.Equal(t, sale.ErrStaleSaleState, s.Update(ctx, second))

		actual, err := s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		assert.EqualValues(t, 10, actual.TokensSold)

		// The loser can retry after re-reading

		second, err = s.GetByAddress(ctx, record.Address)
		require.NoError(t, err)
		second.TokensSold = 20
		require.NoError(t, s.Update(ctx, second))

		// Updates to unknown sales don't apply

		unknown := record.Clone()
		unknown.Address = "other-sale"
		err = s.Update(ctx, unknown)
		assert.Error(t, err)
	})
}

func testGetAll(t *testing.T, s sale.Store) {
	t.Run("testGetAll", func(t *testing.T) {
		ctx := context.Background()

		_, err := s.GetAll(ctx, query.EmptyCursor, 10, query.Ascending)
		assert.Equal(t, sale.ErrSaleNotFound, err)

		var expected []*sale.Record
		for i := 0; i < 25; i++ {
			record := &sale.Record{
				Address: fmt.Sprintf("sale%d", i),
				Bump:    253,

				VaultAddress: fmt.Sprintf("vault%d", i),
				VaultBump:    254,

				Authority: "authority",
				Mint:      fmt.Sprintf("mint%d", i),
				Treasury:  "treasury",

				PricePerToken:   1,
				TotalAllocation: 100,

				IsActive: i%2 == 0,
			}

			require.NoError(t, s.Put(ctx, record))

			expected = append(expected, record.Clone())
		}

		var cursor query.Cursor
		var actual []*sale.Record
		for {
			records, err := s.GetAll(ctx, cursor, 10, query.Ascending)
			if err == sale.ErrSaleNotFound {
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

		records, err := s.GetAll(ctx, query.EmptyCursor, 10, query.Descending)
		require.NoError(t, err)
		require.Len(t, records, 10)
		assertEquivalentRecords(t, expected[len(expected)-1], records[0])
	})
}

func assertEquivalentRecords(t *testing.T, obj1, obj2 *sale.Record) {
	assert.Equal(t, obj1.Address, obj2.Address)
	assert.Equal(t, obj1.Bump, obj2.Bump)

	assert.Equal(t, obj1.VaultAddress, obj2.VaultAddress)
	assert.Equal(t, obj1.VaultBump, obj2.VaultBump)

	assert.Equal(t, obj1.Authority, obj2.Authority)
	assert.Equal(t, obj1.Mint, obj2.Mint)
	assert.Equal(t, obj1.Treasury, obj2.Treasury)

	assert.Equal(t, obj1.PricePerToken, obj2.PricePerToken)
	assert.Equal(t, obj1.TotalAllocation, obj2.TotalAllocation)
	assert.Equal(t, obj1.TokensSold, obj2.TokensSold)

	assert.Equal(t, obj1.IsActive, obj2.IsActive)
}
