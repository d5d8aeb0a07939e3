package presale

import (
	"bytes"
	"crypto/ed25519"
)

var claimTokensInstructionDiscriminator = []byte{
	108, 216, 210, 231, 0, 212, 42, 64,
}

const (
	ClaimTokensInstructionArgsSize = 0

	ClaimTokensInstructionAccountsSize = (32 + // userInfo
		32 + // userVault
		32 + // destination
		32 + // mint
		32 + // buyer
		32 + // systemProgram
		32 + // splTokenProgram
		32 + // splAssociatedTokenProgram
		32) // sysvarRent

	ClaimTokensInstructionSize = (8 + // discriminator
		ClaimTokensInstructionArgsSize + // args
		ClaimTokensInstructionAccountsSize) // accounts
)

type ClaimTokensInstructionAccounts struct {
	UserInfo    ed25519.PublicKey
	UserVault   ed25519.PublicKey
	Destination ed25519.PublicKey
	Mint        ed25519.PublicKey
	Buyer       ed25519.PublicKey
}

func NewClaimTokensInstruction(
	accounts *ClaimTokensInstructionAccounts,
) Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte, len(claimTokensInstructionDiscriminator))

	putDiscriminator(data, claimTokensInstructionDiscriminator, &offset)

	return Instruction{
		Program: PROGRAM_ADDRESS,

		// Instruction args
		Data: data,

		// Instruction accounts
		Accounts: []AccountMeta{
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
				PublicKey:  accounts.Destination,
				IsWritable: true,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Mint,
				IsWritable: false,
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

func ClaimTokensInstructionFromBinary(data []byte) (*ClaimTokensInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < ClaimTokensInstructionSize {
		return nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, claimTokensInstructionDiscriminator) {
		return nil, ErrInvalidInstructionData
	}

	var accounts ClaimTokensInstructionAccounts

	// Instruction Accounts
	getKey(data, &accounts.UserInfo, &offset)
	getKey(data, &accounts.UserVault, &offset)
	getKey(data, &accounts.Destination, &offset)
	getKey(data, &accounts.Mint, &offset)
	getKey(data, &accounts.Buyer, &offset)

	return &accounts, nil
}
