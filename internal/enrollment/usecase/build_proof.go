package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/widipratama/otpseal/internal/enrollment/entity"
	"github.com/widipratama/otpseal/internal/pkg/goerror"
	"github.com/widipratama/otpseal/internal/pkg/pki"
)

type BuildProofInput struct {
	CommitHash string `validate:"required,len=40,hexadecimal"`
}

type BuildProofOutput struct {
	Proof entity.Proof
}

// BuildProof signs the commit hash with the holder private key, wraps the
// signature under the issuer public key, and returns both halves of the
// proof. The hash is signed as the 40-character text, never decoded.
func (s *Usecase) BuildProof(ctx context.Context, in BuildProofInput) (*BuildProofOutput, error) {
	ctx, span := s.startSpan(ctx, "BuildProof")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if s.holderKey == nil {
		slog.ErrorContext(ctx, "holder private key not loaded")
		return nil, goerror.NewServer(errors.New("holder private key not loaded"))
	}
	if s.issuerKey == nil {
		slog.ErrorContext(ctx, "issuer public key not loaded")
		return nil, goerror.NewServer(errors.New("issuer public key not loaded"))
	}

	signature, err := pki.Sign(in.CommitHash, s.holderKey)
	if err != nil {
		slog.ErrorContext(ctx, "failed to sign commit hash", "error", err)
		return nil, goerror.NewServer(err)
	}

	wrapped, err := pki.Encrypt(signature, s.issuerKey)
	if errors.Is(err, pki.ErrPayloadTooLarge) {
		slog.ErrorContext(ctx, "signature does not fit issuer key capacity")
		return nil, goerror.NewServer(pki.ErrKeySizeTooSmall)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to wrap signature", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &BuildProofOutput{Proof: entity.Proof{
		CommitHash:         in.CommitHash,
		EncryptedSignature: pki.EncodeBlob(wrapped),
	}}, nil
}
