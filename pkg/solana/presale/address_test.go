package presale

import (
	"crypto/ed25519"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testMint  = ed25519.PublicKey(mustBase58Decode("ARTBJwHjYbxDFY9i2qLaGddmTgWDzXh4hkfuEWisFipZ"))
	testBuyer = ed25519.PublicKey([]byte{
		1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16,
		17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32,
	})
)

func TestGetSaleAddress(t *testing.T) {
	address, bump, err := GetSaleAddress(&GetSaleAddressArgs{
		Mint: testMint,
	})
	require.NoError(t, err)

	assert.Equal(t, "Cgfh6ioxGEDqeUXiGvGhXqQiHezLKmD2VzU2e58Joado", base58.Encode(address))
	assert.EqualValues(t, 253, bump)
}

func TestGetVaultAddress(t *testing.T) {
	address, bump, err := GetVaultAddress(&GetVaultAddressArgs{
		Mint: testMint,
	})
	require.NoError(t, err)

	assert.Equal(t, "F712fNTGvvqWD5kkKqQhYNpHZGWh263XSmmqCpvfnJYE", base58.Encode(address))
	assert.EqualValues(t, 254, bump)
}

func TestGetUserInfoAddress(t *testing.T) {
	address, bump, err := GetUserInfoAddress(&GetUserInfoAddressArgs{
		Buyer: testBuyer,
		Mint:  testMint,
	})
	require.NoError(t, err)

	assert.Equal(t, "9hpyqdYzDg7YiJb44GnURD1KDdjpsPDuZiRKNbFPtfWR", base58.Encode(address))
	assert.EqualValues(t, 252, bump)
}

func TestGetUserVaultAddress(t *testing.T) {
	address, bump, err := GetUserVaultAddress(&GetUserVaultAddressArgs{
		Buyer: testBuyer,
		Mint:  testMint,
	})
	require.NoError(t, err)

	assert.Equal(t, "DfyWyMiA8GohA8mbnB92G59ZYH4R2arEy23uuN4AKea4", base58.Encode(address))
	assert.EqualValues(t, 253, bump)
}
