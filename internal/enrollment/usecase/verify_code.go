package usecase

import (
	"context"
)

type VerifyCodeInput struct {
	Code string `validate:"required,len=6,numeric"`
}

type VerifyCodeOutput struct {
	Valid bool
}

// VerifyCode checks a candidate code against the persisted seed, accepting
// the adjacent time steps within the configured skew. A mismatched code is a
// successful verification with Valid=false, not an error.
func (s *Usecase) VerifyCode(ctx context.Context, in VerifyCodeInput) (*VerifyCodeOutput, error) {
	ctx, span := s.startSpan(ctx, "VerifyCode")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return &VerifyCodeOutput{Valid: false}, nil
	}

	seed, err := s.loadSeed(ctx)
	if err != nil {
		return nil, err
	}

	return &VerifyCodeOutput{
		Valid: s.totp.Validate(in.Code, seed.String(), s.clock.Now()),
	}, nil
}
