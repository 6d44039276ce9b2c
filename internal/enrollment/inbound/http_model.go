package inbound

type RequestSeedRequest struct {
	HolderID string `json:"holder_id"`
	RepoURL  string `json:"repo_url"`
}

type RequestSeedResponse struct {
	EncryptedSeed string `json:"encrypted_seed"`
}

type DecryptSeedRequest struct {
	EncryptedSeed string `json:"encrypted_seed"`
}

type DecryptSeedResponse struct{}

func (DecryptSeedResponse) Message() string {
	return "Seed decrypted and stored."
}

type GenerateCodeResponse struct {
	Code     string `json:"code"`
	ValidFor int    `json:"valid_for"`
}

type VerifyCodeRequest struct {
	Code string `json:"code"`
}

type VerifyCodeResponse struct {
	Valid bool `json:"valid"`
}

type BuildProofRequest struct {
	CommitHash string `json:"commit_hash"`
}

type BuildProofResponse struct {
	CommitHash         string `json:"commit_hash"`
	EncryptedSignature string `json:"encrypted_signature"`
}
