package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/widipratama/otpseal/internal/enrollment/entity"
	"github.com/widipratama/otpseal/internal/pkg/goerror"
	"github.com/widipratama/otpseal/internal/pkg/pki"
)

type DecryptSeedInput struct {
	EncryptedSeed string `validate:"required"`
}

type DecryptSeedOutput struct {
	Seed entity.Seed
}

// DecryptSeed unwraps a base64 OAEP ciphertext with the holder private key,
// validates the recovered seed, and persists it into the single slot.
// Re-submitting the same ciphertext lands on the same slot value.
//
// Every crypto-layer failure surfaces as the same answer; the caller learns
// nothing about which step broke.
func (s *Usecase) DecryptSeed(ctx context.Context, in DecryptSeedInput) (*DecryptSeedOutput, error) {
	ctx, span := s.startSpan(ctx, "DecryptSeed")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if s.holderKey == nil {
		slog.ErrorContext(ctx, "holder private key not loaded")
		return nil, goerror.NewServer(errors.New("holder private key not loaded"))
	}

	ciphertext, err := pki.DecodeBlob(in.EncryptedSeed)
	if err != nil {
		slog.WarnContext(ctx, "encrypted seed is not valid base64")
		return nil, goerror.NewInvalidFormat("encrypted_seed must be base64")
	}

	plaintext, err := pki.Decrypt(ciphertext, s.holderKey)
	if err != nil {
		slog.WarnContext(ctx, "seed decryption failed")
		return nil, goerror.NewBusiness("decryption failed", goerror.CodeInvalidInput)
	}

	seed, err := entity.ParseSeed(string(plaintext))
	if err != nil {
		slog.WarnContext(ctx, "decrypted payload is not a valid seed")
		return nil, goerror.NewInvalidFormat(err.Error())
	}

	if err := s.repoSeed.Persist(ctx, seed); err != nil {
		slog.ErrorContext(ctx, "failed to persist seed", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &DecryptSeedOutput{Seed: seed}, nil
}
