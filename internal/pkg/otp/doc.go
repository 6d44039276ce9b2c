// Package otp derives and validates time-based one-time passwords (TOTP)
// from the enrollment seed.
//
// The seed's canonical form is a 64-character hex string; it is hex-decoded
// and re-encoded to base32 before entering the RFC 6238 derivation. That
// conversion is part of the wire contract, not an implementation detail: a
// verifier feeding the derivation a different encoding disagrees on every
// code.
package otp
