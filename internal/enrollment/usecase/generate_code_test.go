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

func TestGenerateCode(t *testing.T) {
	at := time.Unix(1700000015, 0)

	uc, store, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.Clock = fixedClock{at: at}
	})
	seeded(t, store)

	out, err := uc.GenerateCode(context.Background())
	require.NoError(t, err)

	expected, err := otp.NewTOTP(30, 1).GenerateCode(testSeedHex, at)
	require.NoError(t, err)

	assert.Equal(t, expected, out.Code)
	assert.Len(t, out.Code, 6)

	// 1700000015 is 5 seconds into its 30-second step.
	assert.Equal(t, 25, out.ValidFor)
}

func TestGenerateCode_StableWithinStep(t *testing.T) {
	stepStart := time.Unix(1700000010, 0)

	first, store, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.Clock = fixedClock{at: stepStart}
	})
	seeded(t, store)

	second, store2, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.Clock = fixedClock{at: stepStart.Add(29 * time.Second)}
	})
	seeded(t, store2)

	out1, err := first.GenerateCode(context.Background())
	require.NoError(t, err)
	out2, err := second.GenerateCode(context.Background())
	require.NoError(t, err)

	assert.Equal(t, out1.Code, out2.Code)
	assert.Equal(t, 30, out1.ValidFor)
	assert.Equal(t, 1, out2.ValidFor)
}

func TestGenerateCode_WithoutSeed(t *testing.T) {
	uc, _, _ := newUsecase(t, nil)

	_, err := uc.GenerateCode(context.Background())
	assert.Error(t, err)
}
