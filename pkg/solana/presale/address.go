package presale

import (
	"crypto/ed25519"

	"github.com/plasma-fi/presale-server/pkg/solana"
)

var (
	salePrefix     = []byte("presale")
	vaultPrefix    = []byte("vault")
	userInfoPrefix = []byte("user_info")
)

type GetSaleAddressArgs struct {
	Mint ed25519.PublicKey
}

type GetVaultAddressArgs struct {
	Mint ed25519.PublicKey
}

type GetUserInfoAddressArgs struct {
	Buyer ed25519.PublicKey
	Mint  ed25519.PublicKey
}

type GetUserVaultAddressArgs struct {
	Buyer ed25519.PublicKey
	Mint  ed25519.PublicKey
}

// GetSaleAddress derives the PresaleAccount address for a mint. Keying the
// sale by mint, rather than a single well-known address, allows concurrent
// sales of different tokens under one program deployment.
func GetSaleAddress(args *GetSaleAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		salePrefix,
		args.Mint,
	)
}

// GetVaultAddress derives the custody vault for a mint. The same derivation
// doubles as the vault's signing authority, so no private key exists for it.
func GetVaultAddress(args *GetVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		vaultPrefix,
		args.Mint,
	)
}

// GetUserInfoAddress derives the purchase record address for a (buyer, mint)
// pair. The record owns the buyer's locked vault until claim.
func GetUserInfoAddress(args *GetUserInfoAddressArgs) (ed25519.PublicKey, uint8, error) {
	return solana.FindProgramAddressAndBump(
		PROGRAM_ID,
		userInfoPrefix,
		args.Buyer,
		args.Mint,
	)
}

// GetUserVaultAddress derives the buyer's locked token account, which is the
// associated token account owned by the purchase record.
func GetUserVaultAddress(args *GetUserVaultAddressArgs) (ed25519.PublicKey, uint8, error) {
	userInfo, _, err := GetUserInfoAddress(&GetUserInfoAddressArgs{
		Buyer: args.Buyer,
		Mint:  args.Mint,
	})
	if err != nil {
		return nil, 0, err
	}

	return solana.FindProgramAddressAndBump(
		SPL_ASSOCIATED_TOKEN_PROGRAM_ID,
		userInfo,
		SPL_TOKEN_PROGRAM_ID,
		args.Mint,
	)
}
