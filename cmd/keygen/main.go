// Command keygen creates the holder RSA keypair and writes both halves as
// PEM files. Generating a 4096-bit key takes a few seconds; run it once
// during provisioning.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/widipratama/otpseal/internal/pkg/pki"
)

func main() {
	var (
		bits        = flag.Int("bits", pki.DefaultKeySize, "RSA modulus size in bits")
		privatePath = flag.String("private", "keys/holder_private.pem", "output path for the private key")
		publicPath  = flag.String("public", "keys/holder_public.pem", "output path for the public key")
	)
	flag.Parse()

	if err := run(*bits, *privatePath, *publicPath); err != nil {
		fmt.Fprintln(os.Stderr, "keygen:", err)
		os.Exit(1)
	}
}

func run(bits int, privatePath, publicPath string) error {
	key, err := pki.Generate(bits)
	if err != nil {
		return err
	}

	privPEM, err := pki.MarshalPrivate(key)
	if err != nil {
		return err
	}

	pubPEM, err := pki.MarshalPublic(&key.PublicKey)
	if err != nil {
		return err
	}

	for _, p := range []string{privatePath, publicPath} {
		if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
			return err
		}
	}

	if err := os.WriteFile(privatePath, privPEM, 0o600); err != nil {
		return err
	}

	if err := os.WriteFile(publicPath, pubPEM, 0o644); err != nil { //nolint:gosec // public half is shareable
		return err
	}

	fmt.Printf("wrote %s and %s (%d bits)\n", privatePath, publicPath, bits)

	return nil
}
