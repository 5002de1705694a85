package password

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	h, err := NewHasher(bcrypt.MinCost)
	require.NoError(t, err)
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	digest, err := h.Hash("pw")
	require.NoError(t, err)
	assert.NotEqual(t, "pw", digest)
	assert.NotContains(t, digest, "pw")

	assert.True(t, h.Verify("pw", digest))
	assert.False(t, h.Verify("pW", digest))
	assert.False(t, h.Verify("", digest))
}

func TestHashIsSalted(t *testing.T) {
	h := newTestHasher(t)

	a, err := h.Hash("secret")
	require.NoError(t, err)
	b, err := h.Hash("secret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.True(t, h.Verify("secret", a))
	assert.True(t, h.Verify("secret", b))
}

func TestHashRejectsEmpty(t *testing.T) {
	h := newTestHasher(t)
	_, err := h.Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestHashLongPassword(t *testing.T) {
	h := newTestHasher(t)
	long := strings.Repeat("x", 100)

	digest, err := h.Hash(long)
	require.NoError(t, err)
	assert.True(t, h.Verify(long, digest))
	assert.False(t, h.Verify(long[:72], digest))
}

func TestVerifyUsesEveryByte(t *testing.T) {
	h := newTestHasher(t)
	p72 := strings.Repeat("x", 72)

	digest, err := h.Hash(p72)
	require.NoError(t, err)
	assert.True(t, h.Verify(p72, digest))
	assert.False(t, h.Verify(p72+"EXTRA", digest))
}

func TestVerifyGarbageDigest(t *testing.T) {
	h := newTestHasher(t)
	assert.False(t, h.Verify("pw", "not-a-bcrypt-hash"))
}

func TestDummyIsValidDigest(t *testing.T) {
	h := newTestHasher(t)
	require.NotEmpty(t, h.Dummy())
	assert.False(t, h.Verify("", h.Dummy()))
	assert.False(t, h.Verify("pw", h.Dummy()))
}

func TestNewHasherClampsCost(t *testing.T) {
	h, err := NewHasher(0)
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
