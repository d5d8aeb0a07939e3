package presale

import (
	"bytes"
	"crypto/ed25519"
	"strconv"
	"time"

	"github.com/mr-tron/base58"
)

// PresaleAccount is the single on-chain record for a sale of a given mint.
type PresaleAccount struct {
	Authority       ed25519.PublicKey
	Mint            ed25519.PublicKey
	Treasury        ed25519.PublicKey
	PricePerToken   uint64
	TotalAllocation uint64
	TokensSold      uint64
	IsActive        bool
}

const PresaleAccountSize = (8 + // discriminator
	32 + // authority
	32 + // mint
	32 + // treasury
	8 + // price_per_token
	8 + // total_allocation
	8 + // tokens_sold
	1) // is_active

var presaleAccountDiscriminator = []byte{199, 34, 38, 30, 209, 182, 217, 206}

func (obj *PresaleAccount) Clone() *PresaleAccount {
	return &PresaleAccount{
		Authority:       obj.Authority,
		Mint:            obj.Mint,
		Treasury:        obj.Treasury,
		PricePerToken:   obj.PricePerToken,
		TotalAllocation: obj.TotalAllocation,
		TokensSold:      obj.TokensSold,
		IsActive:        obj.IsActive,
	}
}

func (obj *PresaleAccount) ToString() string {
	var authority, mint, treasury string

	if obj.Authority != nil {
		authority = base58.Encode(obj.Authority)
	}
	if obj.Mint != nil {
		mint = base58.Encode(obj.Mint)
	}
	if obj.Treasury != nil {
		treasury = base58.Encode(obj.Treasury)
	}

	return "PresaleAccount{" +
		"authority='" + authority + "'" +
		", mint='" + mint + "'" +
		", treasury='" + treasury + "'" +
		", price_per_token='" + strconv.FormatUint(obj.PricePerToken, 10) + "'" +
		", total_allocation='" + strconv.FormatUint(obj.TotalAllocation, 10) + "'" +
		", tokens_sold='" + strconv.FormatUint(obj.TokensSold, 10) + "'" +
		", is_active='" + strconv.FormatBool(obj.IsActive) + "'" +
		"}"
}

func (obj *PresaleAccount) Marshal() []byte {
	data := make([]byte, PresaleAccountSize)

	var offset int

	putDiscriminator(data, presaleAccountDiscriminator, &offset)
	putKey(data, obj.Authority, &offset)
	putKey(data, obj.Mint, &offset)
	putKey(data, obj.Treasury, &offset)
	putUint64(data, obj.PricePerToken, &offset)
	putUint64(data, obj.TotalAllocation, &offset)
	putUint64(data, obj.TokensSold, &offset)
	putBool(data, obj.IsActive, &offset)

	return data
}

func (obj *PresaleAccount) Unmarshal(data []byte) error {
	if len(data) != PresaleAccountSize {
		return ErrInvalidAccountData
	}

	var offset int
	var discriminator []byte

	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, presaleAccountDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Authority, &offset)
	getKey(data, &obj.Mint, &offset)
	getKey(data, &obj.Treasury, &offset)
	getUint64(data, &obj.PricePerToken, &offset)
	getUint64(data, &obj.TotalAllocation, &offset)
	getUint64(data, &obj.TokensSold, &offset)
	getBool(data, &obj.IsActive, &offset)

	return nil
}

// UserInfo is the per-(buyer, mint) purchase record. It doubles as the owner
// of the buyer's locked token vault, so claims are signed by the program and
// never by a human-held key.
type UserInfo struct {
	Buyer      ed25519.PublicKey
	Amount     uint64
	UnlockTime int64
	Claimed    bool
	Bump       uint8
}

const UserInfoSize = (8 + // discriminator
	32 + // buyer
	8 + // amount
	8 + // unlock_time
	1 + // claimed
	1) // bump

var userInfoDiscriminator = []byte{83, 134, 200, 56, 144, 56, 10, 62}

func (obj *UserInfo) Clone() *UserInfo {
	return &UserInfo{
		Buyer:      obj.Buyer,
		Amount:     obj.Amount,
		UnlockTime: obj.UnlockTime,
		Claimed:    obj.Claimed,
		Bump:       obj.Bump,
	}
}

func (obj *UserInfo) ToString() string {
	var buyer string
	if obj.Buyer != nil {
		buyer = base58.Encode(obj.Buyer)
	}

	return "UserInfo{" +
		"buyer='" + buyer + "'" +
		", amount='" + strconv.FormatUint(obj.Amount, 10) + "'" +
		", unlock_time='" + time.Unix(obj.UnlockTime, 0).String() + "'" +
		", claimed='" + strconv.FormatBool(obj.Claimed) + "'" +
		", bump='" + strconv.Itoa(int(obj.Bump)) + "'" +
		"}"
}

func (obj *UserInfo) Marshal() []byte {
	data := make([]byte, UserInfoSize)

	var offset int

	putDiscriminator(data, userInfoDiscriminator, &offset)
	putKey(data, obj.Buyer, &offset)
	putUint64(data, obj.Amount, &offset)
	putInt64(data, obj.UnlockTime, &offset)
	putBool(data, obj.Claimed, &offset)
	putUint8(data, obj.Bump, &offset)

	return data
}

func (obj *UserInfo) Unmarshal(data []byte) error {
	if len(data) != UserInfoSize {
		return ErrInvalidAccountData
	}

	var offset int
	var discriminator []byte

	getDiscriminator(data, &discriminator, &offset)
	if !bytes.Equal(discriminator, userInfoDiscriminator) {
		return ErrInvalidAccountData
	}

	getKey(data, &obj.Buyer, &offset)
	getUint64(data, &obj.Amount, &offset)
	getInt64(data, &obj.UnlockTime, &offset)
	getBool(data, &obj.Claimed, &offset)
	getUint8(data, &obj.Bump, &offset)

	return nil
}
