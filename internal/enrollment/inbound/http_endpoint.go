package inbound

import (
	"github.com/widipratama/otpseal/internal/enrollment/usecase"
	"github.com/widipratama/otpseal/internal/pkg/router"
)

// HTTPEndpoint exposes HTTP handlers for the enrollment workflows.
type HTTPEndpoint struct {
	uc uc
}

// RequestSeed asks the issuer to mint a seed for this holder.
// @Summary Request encrypted seed
// @Description Ships the holder public key to the issuer and returns the encrypted seed it minted.
// @Tags Enrollment, Seed
// @Accept json
// @Produce json
// @Param request body RequestSeedRequest true "Seed request payload"
// @Success 200 {object} router.successResponse{data=RequestSeedResponse} "Encrypted seed"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 409 {object} router.errorResponse "Issuer did not grant a seed"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/enrollment/seed/request [post]
func (h *HTTPEndpoint) RequestSeed(r *router.Request) (any, error) {
	var req RequestSeedRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.RequestSeed(r.Context(), usecase.RequestSeedInput{
		HolderID: req.HolderID,
		RepoURL:  req.RepoURL,
	})
	if err != nil {
		return nil, err
	}

	return RequestSeedResponse{EncryptedSeed: resp.EncryptedSeed}, nil
}

// DecryptSeed unwraps and stores the seed delivered by the issuer.
// @Summary Decrypt and store seed
// @Description Decrypts a base64 OAEP ciphertext with the holder private key and persists the seed.
// @Tags Enrollment, Seed
// @Accept json
// @Produce json
// @Param request body DecryptSeedRequest true "Encrypted seed payload"
// @Success 200 {object} router.successResponse{data=DecryptSeedResponse} "Seed stored"
// @Failure 400 {object} router.errorResponse "Malformed base64 or invalid seed"
// @Failure 422 {object} router.errorResponse "Decryption failed"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/enrollment/seed/decrypt [post]
func (h *HTTPEndpoint) DecryptSeed(r *router.Request) (any, error) {
	var req DecryptSeedRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if _, err := h.uc.DecryptSeed(r.Context(), usecase.DecryptSeedInput{
		EncryptedSeed: req.EncryptedSeed,
	}); err != nil {
		return nil, err
	}

	return DecryptSeedResponse{}, nil
}

// GenerateCode returns the current one-time code.
// @Summary Generate one-time code
// @Description Derives the current code from the stored seed together with its remaining validity.
// @Tags Enrollment, Code
// @Produce json
// @Success 200 {object} router.successResponse{data=GenerateCodeResponse} "Current code"
// @Failure 404 {object} router.errorResponse "Seed not decrypted yet"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/enrollment/code [get]
func (h *HTTPEndpoint) GenerateCode(r *router.Request) (any, error) {
	resp, err := h.uc.GenerateCode(r.Context())
	if err != nil {
		return nil, err
	}

	return GenerateCodeResponse{
		Code:     resp.Code,
		ValidFor: resp.ValidFor,
	}, nil
}

// VerifyCode checks a candidate one-time code.
// @Summary Verify one-time code
// @Description Checks the candidate against the stored seed, accepting adjacent time steps.
// @Tags Enrollment, Code
// @Accept json
// @Produce json
// @Param request body VerifyCodeRequest true "Candidate code"
// @Success 200 {object} router.successResponse{data=VerifyCodeResponse} "Verification result"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 404 {object} router.errorResponse "Seed not decrypted yet"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/enrollment/code/verify [post]
func (h *HTTPEndpoint) VerifyCode(r *router.Request) (any, error) {
	var req VerifyCodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.VerifyCode(r.Context(), usecase.VerifyCodeInput{Code: req.Code})
	if err != nil {
		return nil, err
	}

	return VerifyCodeResponse{Valid: resp.Valid}, nil
}

// BuildProof signs a commit hash and wraps the signature for the issuer.
// @Summary Build possession proof
// @Description Signs the commit hash with the holder key and encrypts the signature under the issuer key.
// @Tags Enrollment, Proof
// @Accept json
// @Produce json
// @Param request body BuildProofRequest true "Commit hash payload"
// @Success 200 {object} router.successResponse{data=BuildProofResponse} "Proof material"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/enrollment/proof [post]
func (h *HTTPEndpoint) BuildProof(r *router.Request) (any, error) {
	var req BuildProofRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.BuildProof(r.Context(), usecase.BuildProofInput{CommitHash: req.CommitHash})
	if err != nil {
		return nil, err
	}

	return BuildProofResponse{
		CommitHash:         resp.Proof.CommitHash,
		EncryptedSignature: resp.Proof.EncryptedSignature,
	}, nil
}
