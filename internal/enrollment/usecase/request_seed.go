package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/widipratama/otpseal/internal/pkg/goerror"
	"github.com/widipratama/otpseal/internal/pkg/pki"
)

type RequestSeedInput struct {
	HolderID string `validate:"required,max=100"`
	RepoURL  string `validate:"required,url"`
}

type RequestSeedOutput struct {
	EncryptedSeed string
}

// RequestSeed asks the remote issuer to mint a seed for this holder,
// shipping the holder public key so the answer comes back as OAEP
// ciphertext only we can open. The ciphertext is returned untouched; the
// holder decrypts it in a separate step.
func (s *Usecase) RequestSeed(ctx context.Context, in RequestSeedInput) (*RequestSeedOutput, error) {
	ctx, span := s.startSpan(ctx, "RequestSeed")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if s.holderPub == nil {
		slog.ErrorContext(ctx, "holder public key not loaded")
		return nil, goerror.NewServer(errors.New("holder public key not loaded"))
	}

	pemBytes, err := pki.MarshalPublic(s.holderPub)
	if err != nil {
		slog.ErrorContext(ctx, "failed to encode holder public key", "error", err)
		return nil, goerror.NewServer(err)
	}

	encryptedSeed, err := s.repoIssuer.RequestSeed(ctx, in.HolderID, in.RepoURL, string(pemBytes))
	if err != nil {
		slog.ErrorContext(ctx, "issuer seed request failed", "error", err)
		return nil, goerror.NewBusiness("issuer did not grant a seed", goerror.CodeConflict)
	}

	return &RequestSeedOutput{EncryptedSeed: encryptedSeed}, nil
}
