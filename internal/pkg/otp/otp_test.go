package otp_test

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/widipratama/otpseal/internal/pkg/otp"
)

const testSeed = "3132333435363738393031323334353637383930313233343536373839303132"

// rfc6238Code derives the expected code straight from the RFC 6238 / RFC 4226
// definition so the implementation is checked against an independent source.
func rfc6238Code(t *testing.T, hexSeed string, at time.Time, period uint) string {
	t.Helper()

	secret, err := hex.DecodeString(hexSeed)
	require.NoError(t, err)

	counter := uint64(at.Unix()) / uint64(period)
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], counter)

	mac := hmac.New(sha1.New, secret)
	mac.Write(buf[:])
	sum := mac.Sum(nil)

	offset := sum[len(sum)-1] & 0xF
	value := uint32(sum[offset]&0x7F)<<24 |
		uint32(sum[offset+1])<<16 |
		uint32(sum[offset+2])<<8 |
		uint32(sum[offset+3])

	return fmt.Sprintf("%06d", value%1_000_000)
}

func TestSecretFromHex(t *testing.T) {
	secret, err := otp.SecretFromHex(testSeed)
	require.NoError(t, err)

	raw, err := base32.StdEncoding.DecodeString(secret)
	require.NoError(t, err)

	expected, err := hex.DecodeString(testSeed)
	require.NoError(t, err)
	assert.Equal(t, expected, raw)

	// Case and surrounding whitespace are normalized, never rejected.
	upper, err := otp.SecretFromHex("  " + "3132333435363738393031323334353637383930313233343536373839303132" + "\n")
	require.NoError(t, err)
	assert.Equal(t, secret, upper)

	_, err = otp.SecretFromHex("zz32333435363738393031323334353637383930313233343536373839303132")
	assert.Error(t, err)
}

func TestGenerateCode_MatchesReferenceDerivation(t *testing.T) {
	tp := otp.NewTOTP(30, 1)

	times := []time.Time{
		time.Unix(59, 0),
		time.Unix(1111111109, 0),
		time.Unix(1234567890, 0),
		time.Unix(2000000000, 0),
	}

	for _, at := range times {
		t.Run(at.UTC().Format(time.RFC3339), func(t *testing.T) {
			code, err := tp.GenerateCode(testSeed, at)
			require.NoError(t, err)

			assert.Len(t, code, 6)
			assert.Equal(t, rfc6238Code(t, testSeed, at, 30), code)
		})
	}
}

func TestGenerateCode_DeterministicWithinStep(t *testing.T) {
	tp := otp.NewTOTP(30, 1)
	base := time.Unix(1700000010, 0) // step covers [1699999990, 1700000020)

	first, err := tp.GenerateCode(testSeed, base)
	require.NoError(t, err)
	second, err := tp.GenerateCode(testSeed, base.Add(9*time.Second))
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateCode_RejectsBadSeed(t *testing.T) {
	tp := otp.NewTOTP(30, 1)

	_, err := tp.GenerateCode("not-hex", time.Now())
	assert.Error(t, err)
}

func TestValidate_Window(t *testing.T) {
	tp := otp.NewTOTP(30, 1)
	now := time.Unix(1700000015, 0)

	currentCode, err := tp.GenerateCode(testSeed, now)
	require.NoError(t, err)
	previousCode, err := tp.GenerateCode(testSeed, now.Add(-30*time.Second))
	require.NoError(t, err)
	nextCode, err := tp.GenerateCode(testSeed, now.Add(30*time.Second))
	require.NoError(t, err)
	staleCode, err := tp.GenerateCode(testSeed, now.Add(-90*time.Second))
	require.NoError(t, err)

	assert.True(t, tp.Validate(currentCode, testSeed, now))
	assert.True(t, tp.Validate(previousCode, testSeed, now), "one step behind must validate")
	assert.True(t, tp.Validate(nextCode, testSeed, now), "one step ahead must validate")
	assert.False(t, tp.Validate(staleCode, testSeed, now), "three steps behind must not validate")

	// Re-validating the same code within its window succeeds: no replay
	// tracking in this protocol.
	assert.True(t, tp.Validate(currentCode, testSeed, now))
}

func TestValidate_Rejections(t *testing.T) {
	tp := otp.NewTOTP(30, 1)
	now := time.Unix(1700000015, 0)

	code, err := tp.GenerateCode(testSeed, now)
	require.NoError(t, err)

	wrong := "000000"
	if code == wrong {
		wrong = "000001"
	}

	assert.False(t, tp.Validate(wrong, testSeed, now))
	assert.False(t, tp.Validate("12345", testSeed, now), "five digits")
	assert.False(t, tp.Validate("1234567", testSeed, now), "seven digits")
	assert.False(t, tp.Validate(code, "not-hex", now), "undecodable seed")
}

func TestRemaining(t *testing.T) {
	tp := otp.NewTOTP(30, 1)

	tests := []struct {
		unix int64
		want int
	}{
		{unix: 1700000010, want: 30}, // 1700000010 % 30 == 0, fresh step
		{unix: 1700000011, want: 29},
		{unix: 1700000039, want: 1}, // last second of the step
	}

	for _, tt := range tests {
		got := tp.Remaining(time.Unix(tt.unix, 0))
		assert.Equal(t, tt.want, got, "unix=%d", tt.unix)
		assert.GreaterOrEqual(t, got, 1)
		assert.LessOrEqual(t, got, 30)
	}
}

func TestNewTOTP_Defaults(t *testing.T) {
	tp := otp.NewTOTP(0, 0)

	// Defaults land on the common 30-second step.
	assert.Equal(t, 30, tp.Remaining(time.Unix(1700000010, 0)))
}
