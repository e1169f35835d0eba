package crypto

import (
	"bytes"
	"testing"

	"github.com/iov-one/jointbank/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignVerify(t *testing.T) {
	priv := GenPrivKeyEd25519()
	pub := priv.PublicKey()
	require.NoError(t, pub.Validate())

	msg := []byte("deposit 1000 into account 0")
	sig, err := priv.Sign(msg)
	require.NoError(t, err)

	assert.True(t, pub.Verify(msg, sig))
	assert.False(t, pub.Verify([]byte("deposit 9999 into account 0"), sig))

	other := GenPrivKeyEd25519().PublicKey()
	assert.False(t, other.Verify(msg, sig))
	assert.False(t, PublicKey([]byte("short")).Verify(msg, sig))
}

func TestDeterministicKeys(t *testing.T) {
	seed := bytes.Repeat([]byte{7}, 32)
	a, err := PrivKeyEd25519FromSeed(seed)
	require.NoError(t, err)
	b, err := PrivKeyEd25519FromSeed(seed)
	require.NoError(t, err)

	assert.Equal(t, a.PublicKey(), b.PublicKey())
	assert.Equal(t, a.PublicKey().Address(), b.PublicKey().Address())
	require.NoError(t, a.PublicKey().Address().Validate())

	_, err = PrivKeyEd25519FromSeed([]byte("too short"))
	assert.True(t, errors.ErrInput.Is(err))
}

func TestAddressesDiffer(t *testing.T) {
	a := GenPrivKeyEd25519().PublicKey().Address()
	b := GenPrivKeyEd25519().PublicKey().Address()
	assert.False(t, a.Equals(b))
}
