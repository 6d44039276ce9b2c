// Command proofgen builds a possession proof outside the server: it signs a
// commit hash with the holder private key, wraps the signature under the
// issuer public key, and prints the base64 result on stdout.
package main

import (
	"flag"
	"fmt"
	"os"
	"regexp"

	"github.com/widipratama/otpseal/internal/pkg/pki"
)

var reCommitHash = regexp.MustCompile(`^[0-9a-fA-F]{40}$`)

func main() {
	var (
		commitHash  = flag.String("commit", "", "40-character commit hash to sign")
		privatePath = flag.String("private", "keys/holder_private.pem", "holder private key path")
		issuerPath  = flag.String("issuer-public", "keys/issuer_public.pem", "issuer public key path")
	)
	flag.Parse()

	if err := run(*commitHash, *privatePath, *issuerPath); err != nil {
		fmt.Fprintln(os.Stderr, "proofgen:", err)
		os.Exit(1)
	}
}

func run(commitHash, privatePath, issuerPath string) error {
	if !reCommitHash.MatchString(commitHash) {
		return fmt.Errorf("commit must be a 40-character hexadecimal string, got %q", commitHash)
	}

	key, err := pki.LoadPrivate(privatePath)
	if err != nil {
		return err
	}

	issuerPub, err := pki.LoadPublic(issuerPath)
	if err != nil {
		return err
	}

	if err := pki.EnsureWrapCapacity(key, issuerPub); err != nil {
		return err
	}

	signature, err := pki.Sign(commitHash, key)
	if err != nil {
		return err
	}

	wrapped, err := pki.Encrypt(signature, issuerPub)
	if err != nil {
		return err
	}

	fmt.Println(pki.EncodeBlob(wrapped))

	return nil
}
