package entity

// Proof is the transportable evidence of possession handed to the issuer:
// the signed fact (a commit hash) together with the PSS signature over it,
// re-encrypted under the issuer public key and base64-encoded. Built once
// per submission event and not persisted.
type Proof struct {
	CommitHash         string
	EncryptedSignature string
}
