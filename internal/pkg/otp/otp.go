package otp

import (
	"encoding/base32"
	"encoding/hex"
	"strings"
	"time"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// OTP defines the contract for TOTP operations over a hex-encoded seed.
type OTP interface {
	// GenerateCode derives the 6-digit code for the time step containing at.
	GenerateCode(hexSeed string, at time.Time) (string, error)
	// Validate checks whether a code is valid at any step within the skew
	// window around at.
	Validate(code, hexSeed string, at time.Time) bool
	// Remaining returns the seconds left (1..period) in the step containing at.
	Remaining(at time.Time) int
}

// TOTP implements OTP using the Time-based One-Time Password algorithm
// (HMAC-SHA1, 6 digits) over 30-second steps.
type TOTP struct {
	period uint
	skew   uint
}

// NewTOTP constructs a TOTP instance. A zero period falls back to the common
// 30-second step; a zero skew falls back to one step of tolerance either
// side (three consecutive steps accepted in total).
func NewTOTP(period, skew uint) *TOTP {
	if period == 0 {
		period = 30
	}

	if skew == 0 {
		skew = 1
	}

	return &TOTP{
		period: period,
		skew:   skew,
	}
}

// SecretFromHex converts the canonical 64-character hex seed into the base32
// alphabet the RFC 6238 derivation expects.
func SecretFromHex(hexSeed string) (string, error) {
	raw, err := hex.DecodeString(strings.ToLower(strings.TrimSpace(hexSeed)))
	if err != nil {
		return "", err
	}

	return base32.StdEncoding.EncodeToString(raw), nil
}

// GenerateCode derives the code for the step containing at, left-zero-padded
// to exactly six digits.
func (o *TOTP) GenerateCode(hexSeed string, at time.Time) (string, error) {
	secret, err := SecretFromHex(hexSeed)
	if err != nil {
		return "", err
	}

	return totp.GenerateCodeCustom(secret, at, o.opts())
}

// Validate checks code against every step in [step(at)-skew, step(at)+skew].
// Repeated validation of the same code within its window succeeds; the
// protocol defines no replay tracking.
func (o *TOTP) Validate(code, hexSeed string, at time.Time) bool {
	secret, err := SecretFromHex(hexSeed)
	if err != nil {
		return false
	}

	rv, err := totp.ValidateCustom(code, secret, at, o.opts())

	return rv && err == nil
}

// Remaining returns the seconds left in the current step, in [1, period].
func (o *TOTP) Remaining(at time.Time) int {
	period := int64(o.period)

	return int(period - at.Unix()%period)
}

func (o *TOTP) opts() totp.ValidateOpts {
	return totp.ValidateOpts{
		Period:    o.period,
		Skew:      o.skew,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	}
}
