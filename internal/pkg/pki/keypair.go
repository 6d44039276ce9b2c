package pki

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"os"
)

// DefaultKeySize is the modulus size (in bits) both protocol ends agree on.
// Generating a key of this size can take several seconds; treat it as a
// one-time setup action.
const DefaultKeySize = 4096

const (
	pemTypePrivate = "PRIVATE KEY"
	pemTypePublic  = "PUBLIC KEY"
)

// ErrKeyFormat indicates PEM or DER material that could not be parsed as the
// expected RSA key type.
var ErrKeyFormat = errors.New("malformed key material")

// Generate creates a fresh RSA key pair from crypto/rand. A non-positive
// bits falls back to DefaultKeySize. The public exponent is 65537 (fixed by
// crypto/rsa, matching the protocol parameter set).
func Generate(bits int) (*rsa.PrivateKey, error) {
	if bits <= 0 {
		bits = DefaultKeySize
	}

	return rsa.GenerateKey(rand.Reader, bits)
}

// MarshalPrivate encodes the private key as an unencrypted PKCS#8 PEM block.
//
// The key is intentionally not passphrase-protected: the holder machine is
// the trust boundary here. This is a documented exposure of the protocol,
// not an oversight.
func MarshalPrivate(key *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: pemTypePrivate, Bytes: der}), nil
}

// MarshalPublic encodes the public key as a PKIX (SubjectPublicKeyInfo) PEM block.
func MarshalPublic(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, err
	}

	return pem.EncodeToMemory(&pem.Block{Type: pemTypePublic, Bytes: der}), nil
}

// ParsePrivate decodes a PKCS#8 PEM private key. It also accepts the legacy
// PKCS#1 encoding so keys produced by other tooling keep working.
func ParsePrivate(data []byte) (*rsa.PrivateKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrKeyFormat
	}

	if key, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, ErrKeyFormat
		}
		return rsaKey, nil
	}

	rsaKey, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, ErrKeyFormat
	}

	return rsaKey, nil
}

// ParsePublic decodes a PKIX PEM public key.
func ParsePublic(data []byte) (*rsa.PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil {
		return nil, ErrKeyFormat
	}

	pub, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, ErrKeyFormat
	}

	rsaPub, ok := pub.(*rsa.PublicKey)
	if !ok {
		return nil, ErrKeyFormat
	}

	return rsaPub, nil
}

// LoadPrivate reads and parses a PEM private key file.
func LoadPrivate(path string) (*rsa.PrivateKey, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is from trusted config file.
	if err != nil {
		return nil, err
	}

	return ParsePrivate(data)
}

// LoadPublic reads and parses a PEM public key file.
func LoadPublic(path string) (*rsa.PublicKey, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is from trusted config file.
	if err != nil {
		return nil, err
	}

	return ParsePublic(data)
}
