package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", hash)

	assert.NoError(t, h.Compare(hash, "secret1"))
	assert.ErrorIs(t, h.Compare(hash, "secret2"), ErrPasswordMismatch)
	assert.False(t, h.NeedsRehash(hash))
}

func TestHashRejectsShortPassword(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MinCost).Hash("abc")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestLegacyPlaintextPassword(t *testing.T) {
	h := NewBcryptHasher(bcrypt.MinCost)

	assert.NoError(t, h.Compare("secret1", "secret1"))
	assert.ErrorIs(t, h.Compare("secret1", "secret2"), ErrPasswordMismatch)
	assert.ErrorIs(t, h.Compare("", ""), ErrPasswordMismatch)
	assert.True(t, h.NeedsRehash("secret1"))
}

func TestNeedsRehashOnCostChange(t *testing.T) {
	hash, err := NewBcryptHasher(bcrypt.MinCost).Hash("secret1")
	require.NoError(t, err)

	assert.True(t, NewBcryptHasher(bcrypt.MinCost+1).NeedsRehash(hash))
}
