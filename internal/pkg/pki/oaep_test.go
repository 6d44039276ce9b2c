package pki_test

import (
	"bytes"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/widipratama/otpseal/internal/pkg/pki"
)

func TestMaxPayload(t *testing.T) {
	key, err := pki.Generate(2048)
	require.NoError(t, err)

	// modulus bytes minus 2*hLen+2
	assert.Equal(t, 2048/8-2*sha256.Size-2, pki.MaxPayload(&key.PublicKey))
}

func TestEncryptDecrypt_Roundtrip(t *testing.T) {
	key, err := pki.Generate(2048)
	require.NoError(t, err)

	plaintext := []byte("aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899")

	ciphertext, err := pki.Encrypt(plaintext, &key.PublicKey)
	require.NoError(t, err)
	assert.Len(t, ciphertext, key.Size())
	assert.NotEqual(t, plaintext, ciphertext)

	recovered, err := pki.Decrypt(ciphertext, key)
	require.NoError(t, err)
	assert.Equal(t, plaintext, recovered)
}

func TestEncrypt_PayloadBound(t *testing.T) {
	key, err := pki.Generate(testKeyBits)
	require.NoError(t, err)

	atBound := bytes.Repeat([]byte{0xAB}, pki.MaxPayload(&key.PublicKey))
	_, err = pki.Encrypt(atBound, &key.PublicKey)
	assert.NoError(t, err)

	overBound := append(atBound, 0xAB)
	_, err = pki.Encrypt(overBound, &key.PublicKey)
	assert.ErrorIs(t, err, pki.ErrPayloadTooLarge)
}

func TestDecrypt_SingleErrorSurface(t *testing.T) {
	key, err := pki.Generate(testKeyBits)
	require.NoError(t, err)
	otherKey, err := pki.Generate(testKeyBits)
	require.NoError(t, err)

	ciphertext, err := pki.Encrypt([]byte("payload"), &key.PublicKey)
	require.NoError(t, err)

	corrupted := append([]byte(nil), ciphertext...)
	corrupted[0] ^= 0xFF

	_, err = pki.Decrypt(corrupted, key)
	assert.ErrorIs(t, err, pki.ErrDecryption)

	_, err = pki.Decrypt(ciphertext, otherKey)
	assert.ErrorIs(t, err, pki.ErrDecryption)

	_, err = pki.Decrypt([]byte("short"), key)
	assert.ErrorIs(t, err, pki.ErrDecryption)
}

func TestBlobCodec(t *testing.T) {
	raw := []byte{0x00, 0x01, 0xFE, 0xFF}

	decoded, err := pki.DecodeBlob(pki.EncodeBlob(raw))
	require.NoError(t, err)
	assert.Equal(t, raw, decoded)

	_, err = pki.DecodeBlob("not base64!!")
	assert.ErrorIs(t, err, pki.ErrEncoding)
}
