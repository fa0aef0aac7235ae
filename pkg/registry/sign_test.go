package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skynetlabs/go-skydb/internal/rand"
	"github.com/skynetlabs/go-skydb/pkg/errors"
	"github.com/skynetlabs/go-skydb/pkg/registry/status"
	"github.com/skynetlabs/go-skydb/pkg/skylink"
)

func TestKeys_HexRoundTrip(t *testing.T) {
	pk, sk, err := GenerateKeyPair()
	require.NoError(t, err)

	parsedPK, err := ParsePublicKey(pk.String())
	require.NoError(t, err)
	assert.Equal(t, pk, parsedPK)

	parsedSK, err := ParsePrivateKey(sk.String())
	require.NoError(t, err)
	assert.Equal(t, sk, parsedSK)

	assert.Equal(t, pk, sk.PublicKey())
}

func TestKeys_ParseFailures(t *testing.T) {
	_, err := ParsePublicKey("not-hex")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidKey))

	_, err = ParsePublicKey("abcd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidKey))

	_, err = ParsePrivateKey("abcd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidKey))
}

func TestSign_Verify(t *testing.T) {
	_, sk, err := GenerateKeyPair()
	require.NoError(t, err)

	e := Entry{DataKey: "app", Data: rand.Bytes(skylink.RawSize), Revision: 4}
	signed, err := Sign(sk, e)
	require.NoError(t, err)
	assert.Equal(t, sk.PublicKey(), signed.PublicKey)
	require.NoError(t, signed.Verify())
}

func TestSign_RejectsInvalidInput(t *testing.T) {
	_, sk, err := GenerateKeyPair()
	require.NoError(t, err)

	_, err = Sign(sk, Entry{DataKey: "", Data: nil})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidDataKey))

	_, err = Sign(PrivateKey(rand.Bytes(12)), Entry{DataKey: "app"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidKey))
}

func TestVerify_FailsOnTamper(t *testing.T) {
	pk, sk, err := GenerateKeyPair()
	require.NoError(t, err)

	signed, err := Sign(sk, Entry{DataKey: "app", Data: rand.Bytes(skylink.RawSize), Revision: 4})
	require.NoError(t, err)

	t.Run("tampered revision", func(t *testing.T) {
		bad := signed
		bad.Revision++
		err := bad.Verify()
		require.Error(t, err)
		assert.True(t, errors.Is(err, status.ErrBadSignature))
	})

	t.Run("tampered data", func(t *testing.T) {
		bad := signed
		bad.Data = append([]byte{}, signed.Data...)
		bad.Data[0] ^= 0x01
		assert.Error(t, bad.Verify())
	})

	t.Run("wrong owner", func(t *testing.T) {
		otherPK, _, err := GenerateKeyPair()
		require.NoError(t, err)
		bad := signed
		bad.PublicKey = otherPK
		assert.Error(t, bad.Verify())
		assert.NotEqual(t, pk, otherPK)
	})

	t.Run("tampered signature", func(t *testing.T) {
		bad := signed
		bad.Signature[0] ^= 0x01
		assert.Error(t, bad.Verify())
	})
}
