package entity

import (
	"errors"
	"strings"
)

// SeedLength is the canonical seed length in hex characters (32 bytes).
const SeedLength = 64

// ErrInvalidSeedFormat indicates a candidate seed that is not a 64-character
// hexadecimal string.
var ErrInvalidSeedFormat = errors.New("seed must be a 64-character hexadecimal string")

// Seed is the shared TOTP secret in canonical form: exactly 64 lowercase
// hexadecimal characters. It is born at the issuer, travels only as OAEP
// ciphertext, and lives in plaintext on the holder side for the life of the
// enrollment.
type Seed string

// ParseSeed validates candidate and normalizes it to canonical form. Input
// casing is accepted and normalized to lowercase, never rejected.
func ParseSeed(candidate string) (Seed, error) {
	candidate = strings.TrimSpace(candidate)
	if len(candidate) != SeedLength {
		return "", ErrInvalidSeedFormat
	}

	for _, c := range candidate {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') && (c < 'A' || c > 'F') {
			return "", ErrInvalidSeedFormat
		}
	}

	return Seed(strings.ToLower(candidate)), nil
}

// String returns the canonical hex representation.
func (s Seed) String() string {
	return string(s)
}
