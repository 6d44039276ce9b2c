package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/widipratama/otpseal/internal/enrollment/usecase"
	"github.com/widipratama/otpseal/internal/pkg/otp"
)

func codeAt(t *testing.T, at time.Time) string {
	t.Helper()

	code, err := otp.NewTOTP(30, 1).GenerateCode(testSeedHex, at)
	require.NoError(t, err)

	return code
}

func TestVerifyCode(t *testing.T) {
	now := time.Unix(1700000015, 0)

	uc, store, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.Clock = fixedClock{at: now}
	})
	seeded(t, store)

	current := codeAt(t, now)
	wrong := "000000"
	if current == wrong {
		wrong = "000001"
	}

	tests := []struct {
		name string
		code string
		want bool
	}{
		{name: "current step", code: current, want: true},
		{name: "previous step", code: codeAt(t, now.Add(-30*time.Second)), want: true},
		{name: "next step", code: codeAt(t, now.Add(30*time.Second)), want: true},
		{name: "expired step", code: codeAt(t, now.Add(-90*time.Second)), want: false},
		{name: "wrong code", code: wrong, want: false},
		{name: "too short", code: "12345", want: false},
		{name: "non numeric", code: "12a456", want: false},
		{name: "empty", code: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := uc.VerifyCode(context.Background(), usecase.VerifyCodeInput{Code: tt.code})
			require.NoError(t, err, "a mismatch is an answer, not an error")
			assert.Equal(t, tt.want, out.Valid)
		})
	}
}

func TestVerifyCode_Reusable(t *testing.T) {
	now := time.Unix(1700000015, 0)

	uc, store, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.Clock = fixedClock{at: now}
	})
	seeded(t, store)

	code := codeAt(t, now)

	// No replay tracking: the same code stays valid for its whole window.
	for i := 0; i < 3; i++ {
		out, err := uc.VerifyCode(context.Background(), usecase.VerifyCodeInput{Code: code})
		require.NoError(t, err)
		assert.True(t, out.Valid)
	}
}

func TestVerifyCode_WithoutSeed(t *testing.T) {
	uc, _, _ := newUsecase(t, nil)

	_, err := uc.VerifyCode(context.Background(), usecase.VerifyCodeInput{Code: "123456"})
	assert.Error(t, err)
}
