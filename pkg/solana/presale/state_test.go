package presale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresaleAccount_RoundTrip(t *testing.T) {
	expected := &PresaleAccount{
		Authority:       testBuyer,
		Mint:            testMint,
		Treasury:        testBuyer,
		PricePerToken:   100_000_000,
		TotalAllocation: 1_000_000,
		TokensSold:      123,
		IsActive:        true,
	}

	marshalled := expected.Marshal()
	require.Len(t, marshalled, PresaleAccountSize)

	var actual PresaleAccount
	require.NoError(t, actual.Unmarshal(marshalled))
	assert.Equal(t, expected.ToString(), actual.ToString())

	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(marshalled[1:]))

	marshalled[0] += 1
	assert.Equal(t, ErrInvalidAccountData, actual.Unmarshal(marshalled))
}

func TestUserInfo_RoundTrip(t *testing.T) {
	expected := &UserInfo{
		Buyer:      testBuyer,
		Amount:     100,
		UnlockTime: 1735689600,
		Claimed:    false,
		Bump:       252,
	}

	marshalled := expected.Marshal()
	require.Len(t, marshalled, UserInfoSize)

	var actual UserInfo
	require.NoError(t, actual.Unmarshal(marshalled))
	assert.Equal(t, expected.ToString(), actual.ToString())
}

func TestInstruction_RoundTrip(t *testing.T) {
	buyArgs := &BuyTokensInstructionArgs{Amount: 42}
	buyAccounts := &BuyTokensInstructionAccounts{
		Presale:        testMint,
		Vault:          testMint,
		VaultAuthority: testMint,
		UserInfo:       testBuyer,
		UserVault:      testBuyer,
		Mint:           testMint,
		Treasury:       testBuyer,
		Buyer:          testBuyer,
	}

	instruction := NewBuyTokensInstruction(buyAccounts, buyArgs)
	assert.EqualValues(t, PROGRAM_ADDRESS, instruction.Program)

	// Simulate the account keys being packed alongside the args, the way
	// they appear when decompiling a transaction.
	data := instruction.Data
	require.Len(t, instruction.Accounts, 12)
	for _, account := range instruction.Accounts {
		data = append(data, account.PublicKey...)
	}

	actualArgs, actualAccounts, err := BuyTokensInstructionFromBinary(data)
	require.NoError(t, err)
	assert.Equal(t, buyArgs.Amount, actualArgs.Amount)
	assert.EqualValues(t, buyAccounts.Buyer, actualAccounts.Buyer)
	assert.EqualValues(t, buyAccounts.Vault, actualAccounts.Vault)

	_, _, err = BuyTokensInstructionFromBinary(instruction.Data)
	assert.Equal(t, ErrInvalidInstructionData, err)
}
