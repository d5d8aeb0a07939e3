package presale

import (
	"bytes"
	"crypto/ed25519"
)

var buyTokensInstructionDiscriminator = []byte{
	189, 21, 230, 133, 247, 2, 110, 42,
}

const (
	BuyTokensInstructionArgsSize = (8) // amount

	BuyTokensInstructionAccountsSize = (32 + // presale
		32 + // vault
		32 + // vaultAuthority
		32 + // userInfo
		32 + // userVault
		32 + // mint
		32 + // treasury
		32 + // buyer
		32 + // systemProgram
		32 + // splTokenProgram
		32 + // splAssociatedTokenProgram
		32) // sysvarRent

	BuyTokensInstructionSize = (8 + // discriminator
		BuyTokensInstructionArgsSize + // args
		BuyTokensInstructionAccountsSize) // accounts
)

type BuyTokensInstructionArgs struct {
	Amount uint64
}

type BuyTokensInstructionAccounts struct {
	Presale        ed25519.PublicKey
	Vault          ed25519.PublicKey
	VaultAuthority ed25519.PublicKey
	UserInfo       ed25519.PublicKey
	UserVault      ed25519.PublicKey
	Mint           ed25519.PublicKey
	Treasury       ed25519.PublicKey
	Buyer          ed25519.PublicKey
}

func NewBuyTokensInstruction(
	accounts *BuyTokensInstructionAccounts,
	args *BuyTokensInstructionArgs,
) Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte,
		len(buyTokensInstructionDiscriminator)+
			BuyTokensInstructionArgsSize)

	putDiscriminator(data, buyTokensInstructionDiscriminator, &offset)
	putUint64(data, args.Amount, &offset)

	return Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []AccountMeta{
			{
				PublicKey:  accounts.Presale,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Vault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.VaultAuthority,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserInfo,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.UserVault,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Treasury,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Buyer,
				IsWritable: true,
				IsSigner:   true,
			},
			{
				PublicKey:  SYSTEM_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func BuyTokensInstructionFromBinary(data []byte) (*BuyTokensInstructionArgs, *BuyTokensInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < BuyTokensInstructionSize {
		return nil, nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, buyTokensInstructionDiscriminator) {
		return nil, nil, ErrInvalidInstructionData
	}

	var args BuyTokensInstructionArgs
	var accounts BuyTokensInstructionAccounts

	// Instruction Args
	getUint64(data, &args.Amount, &offset)

	// Instruction Accounts
	getKey(data, &accounts.Presale, &offset)
	getKey(data, &accounts.Vault, &offset)
	getKey(data, &accounts.VaultAuthority, &offset)
	getKey(data, &accounts.UserInfo, &offset)
	getKey(data, &accounts.UserVault, &offset)
	getKey(data, &accounts.Mint, &offset)
	getKey(data, &accounts.Treasury, &offset)
	getKey(data, &accounts.Buyer, &offset)

	return &args, &accounts, nil
}
