package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/widipratama/otpseal/internal/enrollment/entity"
	"github.com/widipratama/otpseal/internal/enrollment/usecase"
	"github.com/widipratama/otpseal/internal/pkg/pki"
)

func TestDecryptSeed(t *testing.T) {
	holder, err := pki.Generate(2048)
	require.NoError(t, err)

	uc, store, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.HolderKey = holder
		dep.HolderPub = &holder.PublicKey
	})

	ciphertext, err := pki.Encrypt([]byte(testSeedHex), &holder.PublicKey)
	require.NoError(t, err)

	out, err := uc.DecryptSeed(context.Background(), usecase.DecryptSeedInput{
		EncryptedSeed: pki.EncodeBlob(ciphertext),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.Seed(testSeedHex), out.Seed)
	assert.True(t, store.set)
	assert.Equal(t, entity.Seed(testSeedHex), store.seed)
}

func TestDecryptSeed_NormalizesCase(t *testing.T) {
	holder, err := pki.Generate(2048)
	require.NoError(t, err)

	uc, store, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.HolderKey = holder
	})

	upper := "AABBCCDDEEFF00112233445566778899AABBCCDDEEFF00112233445566778899"
	ciphertext, err := pki.Encrypt([]byte(upper), &holder.PublicKey)
	require.NoError(t, err)

	out, err := uc.DecryptSeed(context.Background(), usecase.DecryptSeedInput{
		EncryptedSeed: pki.EncodeBlob(ciphertext),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.Seed(testSeedHex), out.Seed)
	assert.Equal(t, entity.Seed(testSeedHex), store.seed)
}

func TestDecryptSeed_Failures(t *testing.T) {
	holder, err := pki.Generate(2048)
	require.NoError(t, err)
	stranger, err := pki.Generate(2048)
	require.NoError(t, err)

	validCiphertext, err := pki.Encrypt([]byte(testSeedHex), &holder.PublicKey)
	require.NoError(t, err)
	strangerCiphertext, err := pki.Encrypt([]byte(testSeedHex), &stranger.PublicKey)
	require.NoError(t, err)
	notASeed, err := pki.Encrypt([]byte("hello, definitely not a seed"), &holder.PublicKey)
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      string
		noKey      bool
		wantStatus int
		wantMsg    string
	}{
		{
			name:       "empty payload",
			input:      "",
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "malformed base64",
			input:      "@@not-base64@@",
			wantStatus: http.StatusBadRequest,
			wantMsg:    "base64",
		},
		{
			name:       "wrong key",
			input:      pki.EncodeBlob(strangerCiphertext),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "decryption failed",
		},
		{
			name:       "corrupted ciphertext",
			input:      pki.EncodeBlob(append([]byte{0xFF}, validCiphertext[1:]...)),
			wantStatus: http.StatusUnprocessableEntity,
			wantMsg:    "decryption failed",
		},
		{
			name:       "decrypted payload is not a seed",
			input:      pki.EncodeBlob(notASeed),
			wantStatus: http.StatusBadRequest,
			wantMsg:    "hexadecimal",
		},
		{
			name:       "holder key not loaded",
			input:      pki.EncodeBlob(validCiphertext),
			noKey:      true,
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, store, _ := newUsecase(t, func(dep *usecase.Dependency) {
				if !tt.noKey {
					dep.HolderKey = holder
				}
			})

			_, err := uc.DecryptSeed(context.Background(), usecase.DecryptSeedInput{EncryptedSeed: tt.input})
			require.Error(t, err)

			assert.Equal(t, tt.wantStatus, statusOf(t, err))
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
			assert.False(t, store.set, "no failure may leave a partial slot")
		})
	}
}

func TestDecryptSeed_ErrorSurfaceIsConstant(t *testing.T) {
	holder, err := pki.Generate(2048)
	require.NoError(t, err)
	stranger, err := pki.Generate(2048)
	require.NoError(t, err)

	uc, _, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.HolderKey = holder
	})

	good, err := pki.Encrypt([]byte(testSeedHex), &holder.PublicKey)
	require.NoError(t, err)
	wrongKey, err := pki.Encrypt([]byte(testSeedHex), &stranger.PublicKey)
	require.NoError(t, err)

	corrupted := append([]byte(nil), good...)
	corrupted[len(corrupted)-1] ^= 0x01

	_, errWrongKey := uc.DecryptSeed(context.Background(), usecase.DecryptSeedInput{
		EncryptedSeed: pki.EncodeBlob(wrongKey),
	})
	_, errCorrupted := uc.DecryptSeed(context.Background(), usecase.DecryptSeedInput{
		EncryptedSeed: pki.EncodeBlob(corrupted),
	})

	// Wrong key and corrupted ciphertext must be indistinguishable.
	require.Error(t, errWrongKey)
	require.Error(t, errCorrupted)
	assert.Equal(t, errWrongKey.Error(), errCorrupted.Error())
	assert.Equal(t, statusOf(t, errWrongKey), statusOf(t, errCorrupted))
}
