package presale

import (
	"bytes"
	"crypto/ed25519"
)

var togglePresaleInstructionDiscriminator = []byte{
	122, 166, 96, 153, 253, 197, 152, 144,
}

const (
	TogglePresaleInstructionArgsSize = (1) // active

	TogglePresaleInstructionAccountsSize = (32 + // presale
		32) // authority

	TogglePresaleInstructionSize = (8 + // discriminator
		TogglePresaleInstructionArgsSize + // args
		TogglePresaleInstructionAccountsSize) // accounts
)

type TogglePresaleInstructionArgs struct {
	Active bool
}

type TogglePresaleInstructionAccounts struct {
	Presale   ed25519.PublicKey
	Authority ed25519.PublicKey
}

func NewTogglePresaleInstruction(
	accounts *TogglePresaleInstructionAccounts,
	args *TogglePresaleInstructionArgs,
) Instruction {
	var offset int

	// Serialize instruction arguments
	data := make([]byte,
		len(togglePresaleInstructionDiscriminator)+
			TogglePresaleInstructionArgsSize)

	putDiscriminator(data, togglePresaleInstructionDiscriminator, &offset)
	putBool(data, args.Active, &offset)

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
				PublicKey:  accounts.Authority,
				IsWritable: false,
				IsSigner:   true,
			},
		},
	}
}

func TogglePresaleInstructionFromBinary(data []byte) (*TogglePresaleInstructionArgs, *TogglePresaleInstructionAccounts, error) {
	var offset int
	var discriminator []byte

	if len(data) < TogglePresaleInstructionSize {
		return nil, nil, ErrInvalidInstructionData
	}

	getDiscriminator(data, &discriminator, &offset)

	if !bytes.Equal(discriminator, togglePresaleInstructionDiscriminator) {
		return nil, nil, ErrInvalidInstructionData
	}

	var args TogglePresaleInstructionArgs
	var accounts TogglePresaleInstructionAccounts

	// Instruction Args
	getBool(data, &args.Active, &offset)

	// Instruction Accounts
	getKey(data, &accounts.Presale, &offset)
	getKey(data, &accounts.Authority, &offset)

	return &args, &accounts, nil
}
