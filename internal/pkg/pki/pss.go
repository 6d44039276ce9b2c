package pki

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"errors"
)

// ErrKeySizeTooSmall indicates a wrapping key whose OAEP bound cannot hold a
// signature produced by the signing key. Surfaced at startup, not per call.
var ErrKeySizeTooSmall = errors.New("wrapping key too small for signature payload")

var pssOpts = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthAuto, // maximum salt on sign, per protocol
	Hash:       crypto.SHA256,
}

// Sign produces an RSA-PSS SHA-256 signature over message.
//
// The message is signed as UTF-8 text exactly as transmitted. A commit hash
// is signed as its 40-character string, never as decoded binary: the
// verifier reconstructs the same text.
func Sign(message string, key *rsa.PrivateKey) ([]byte, error) {
	digest := sha256.Sum256([]byte(message))

	return rsa.SignPSS(rand.Reader, key, crypto.SHA256, digest[:], pssOpts)
}

// Verify reports whether signature is a valid PSS signature over message.
// All content and format mismatches return false; only a nil key is a
// programming error left to panic.
func Verify(message string, signature []byte, pub *rsa.PublicKey) bool {
	digest := sha256.Sum256([]byte(message))

	return rsa.VerifyPSS(pub, crypto.SHA256, digest[:], signature, pssOpts) == nil
}

// EnsureWrapCapacity verifies that a signature produced by signer (its size
// equals the signer modulus) fits the OAEP payload bound of wrap. A 4096-bit
// signature needs a wrapping modulus of at least 4624 bits.
func EnsureWrapCapacity(signer *rsa.PrivateKey, wrap *rsa.PublicKey) error {
	if signer.Size() > MaxPayload(wrap) {
		return ErrKeySizeTooSmall
	}

	return nil
}
