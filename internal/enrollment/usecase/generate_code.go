package usecase

import (
	"context"
	"log/slog"

	"github.com/widipratama/otpseal/internal/pkg/goerror"
)

type GenerateCodeOutput struct {
	Code     string
	ValidFor int
}

// GenerateCode derives the current one-time code from the persisted seed.
// ValidFor is the whole-second remainder of the current time step, always in
// [1, period].
func (s *Usecase) GenerateCode(ctx context.Context) (*GenerateCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "GenerateCode")
	defer span.End()

	seed, err := s.loadSeed(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()

	code, err := s.totp.GenerateCode(seed.String(), now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to derive one-time code", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GenerateCodeOutput{
		Code:     code,
		ValidFor: s.totp.Remaining(now),
	}, nil
}
