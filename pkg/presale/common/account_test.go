package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_FromKeys(t *testing.T) {
	account, err := NewRandomAccount()
	require.NoError(t, err)

	assert.True(t, account.IsManagedByLocalKey())
	assert.True(t, account.PublicKey().IsPublic())
	assert.False(t, account.PrivateKey().IsPublic())

	fromPublic, err := NewAccountFromPublicKeyString(account.ToBase58())
	require.NoError(t, err)
	assert.True(t, account.Equals(fromPublic))
	assert.False(t, fromPublic.IsManagedByLocalKey())

	_, err = NewAccountFromPublicKey(account.PrivateKey())
	assert.Error(t, err)
}

func TestAccount_Equals(t *testing.T) {
	a, err := NewRandomAccount()
	require.NoError(t, err)
	b, err := NewRandomAccount()
	require.NoError(t, err)

	assert.True(t, a.Equals(a))
	assert.False(t, a.Equals(b))
	assert.False(t, a.Equals(nil))
}

func TestKey_Validate(t *testing.T) {
	_, err := NewKeyFromBytes([]byte("too short"))
	assert.Error(t, err)

	_, err = NewKeyFromString("not-base58-0OIl")
	assert.Error(t, err)
}
