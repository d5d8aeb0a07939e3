package presale

import (
	"bytes"
	"crypto/ed25519"
)

var initializeInstructionDiscriminator = []byte{
	175, 175, 109, 31, 13, 152, 155, 237,
}

const (
	InitializeInstructionArgsSize = (8 + // pricePerToken
		8) // totalAllocation

	InitializeInstructionAccountsSize = (32 + // presale
		32 + // mint
		32 + // vault
		32 + // vaultAuthority
		32 + // treasury
		32 + // authority
		32 + // systemProgram
		32 + // splTokenProgram
		32) // sysvarRent

	InitializeInstructionSize = (8 + // discriminator
		InitializeInstructionArgsSize + // args
		InitializeInstructionAccountsSize) // accounts
)

type InitializeInstructionArgs struct {
	PricePerToken   uint64
	TotalAllocation uint64
}

type InitializeInstructionAccounts struct {
	Presale        ed25519.PublicKey
	Mint           ed25519.PublicKey
	Vault          ed25519.PublicKey
	VaultAuthority ed25519.PublicKey
	Treasury       ed25519.PublicKey
	Authority      ed25519.PublicKey
}

func NewInitializeInstruction(
	accounts *InitializeInstructionAccounts,
	args *InitializeInstructionArgs,
) Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte,
		len(initializeInstructionDiscriminator)+
			InitializeInstructionArgsSize)

	putDiscriminator(data, initializeInstructionDiscriminator, &offset)
	putUint64(data, args.PricePerToken, &offset)
	putUint64(data, args.TotalAllocation, &offset)

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
				PublicKey:  accounts.Mint,
				IsWritable: false,
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
				PublicKey:  accounts.Treasury,
				IsWritable: false,
				IsSigner:   false,
			},
			{
				PublicKey:  accounts.Authority,
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
				PublicKey:  SYSVAR_RENT_PUBKEY,
				IsWritable: false,
				IsSigner:   false,
			},
		},
	}
}

func InitializeInstructionFromBinary(data []byte) (*InitializeInstructionArgs, *InitializeInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < InitializeInstructionSize {
		return nil, nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, initializeInstructionDiscriminator) {
		return nil, nil, ErrInvalidInstructionData
	}

	var args InitializeInstructionArgs
	var accounts InitializeInstructionAccounts

	// Instruction Args
	getUint64(data, &args.PricePerToken, &offset)
	getUint64(data, &args.TotalAllocation, &offset)

	// Instruction Accounts
	getKey(data, &accounts.Presale, &offset)
	getKey(data, &accounts.Mint, &offset)
	getKey(data, &accounts.Vault, &offset)
	getKey(data, &accounts.VaultAuthority, &offset)
	getKey(data, &accounts.Treasury, &offset)
	getKey(data, &accounts.Authority, &offset)

	return &args, &accounts, nil
}
