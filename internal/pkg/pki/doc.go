// Package pki implements the asymmetric side of the enrollment protocol:
// RSA key pair lifecycle (generation, PEM serialization), OAEP encryption of
// small payloads, and PSS signatures over textual messages.
//
// Both ends of the protocol run a fixed parameter set (4096-bit modulus,
// SHA-256 for OAEP and PSS); nothing here negotiates. Interoperability with
// the external verifier depends on these exact choices.
package pki
