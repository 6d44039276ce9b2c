package pki

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"errors"
)

var (
	// ErrEncoding indicates a transport payload that is not valid base64.
	// Distinct from ErrDecryption so the boundary can tell a malformed
	// request from a failed cryptographic operation.
	ErrEncoding = errors.New("malformed base64 payload")

	// ErrDecryption is the single error surface for every OAEP decryption
	// failure (wrong key, padding mismatch, corrupted ciphertext). Callers
	// must not learn which one occurred.
	ErrDecryption = errors.New("decryption failed")

	// ErrPayloadTooLarge indicates a plaintext exceeding the OAEP bound of
	// the recipient key.
	ErrPayloadTooLarge = errors.New("payload exceeds encryption bound")
)

// MaxPayload returns the OAEP-SHA256 plaintext bound for pub:
// modulus bytes minus 2*hLen+2 padding overhead (446 for a 4096-bit key).
func MaxPayload(pub *rsa.PublicKey) int {
	return pub.Size() - 2*sha256.Size - 2
}

// Encrypt encrypts plaintext for pub using RSA-OAEP with SHA-256 as both the
// digest and the MGF1 hash, no label.
func Encrypt(plaintext []byte, pub *rsa.PublicKey) ([]byte, error) {
	if len(plaintext) > MaxPayload(pub) {
		return nil, ErrPayloadTooLarge
	}

	ciphertext, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return nil, ErrPayloadTooLarge
	}

	return ciphertext, nil
}

// Decrypt reverses Encrypt with the matching private key. Every failure mode
// collapses into ErrDecryption.
func Decrypt(ciphertext []byte, key *rsa.PrivateKey) ([]byte, error) {
	plaintext, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, key, ciphertext, nil)
	if err != nil {
		return nil, ErrDecryption
	}

	return plaintext, nil
}

// EncodeBlob renders a ciphertext for the transport boundary.
func EncodeBlob(ciphertext []byte) string {
	return base64.StdEncoding.EncodeToString(ciphertext)
}

// DecodeBlob parses a transport payload back into ciphertext bytes.
func DecodeBlob(payload string) ([]byte, error) {
	ciphertext, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrEncoding
	}

	return ciphertext, nil
}
