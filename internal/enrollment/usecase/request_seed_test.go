package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/widipratama/otpseal/internal/enrollment/usecase"
	"github.com/widipratama/otpseal/internal/pkg/pki"
)

func TestRequestSeed(t *testing.T) {
	holder, err := pki.Generate(1024)
	require.NoError(t, err)

	uc, _, iss := newUsecase(t, func(dep *usecase.Dependency) {
		dep.HolderPub = &holder.PublicKey
	})
	iss.encryptedSeed = "ZW5jcnlwdGVkLXNlZWQ="

	out, err := uc.RequestSeed(context.Background(), usecase.RequestSeedInput{
		HolderID: "holder-1",
		RepoURL:  "https://example.com/holder-1/work",
	})
	require.NoError(t, err)

	assert.Equal(t, "ZW5jcnlwdGVkLXNlZWQ=", out.EncryptedSeed)
	assert.Equal(t, "holder-1", iss.gotHolderID)
	assert.Equal(t, "https://example.com/holder-1/work", iss.gotRepoURL)

	// The PEM the issuer receives must parse back to the holder public key.
	parsed, err := pki.ParsePublic([]byte(iss.gotPEM))
	require.NoError(t, err)
	assert.True(t, holder.PublicKey.Equal(parsed))
}

func TestRequestSeed_InputValidation(t *testing.T) {
	holder, err := pki.Generate(1024)
	require.NoError(t, err)

	uc, _, _ := newUsecase(t, func(dep *usecase.Dependency) {
		dep.HolderPub = &holder.PublicKey
	})

	tests := []struct {
		name  string
		input usecase.RequestSeedInput
	}{
		{name: "missing holder id", input: usecase.RequestSeedInput{RepoURL: "https://example.com/r"}},
		{name: "missing repo url", input: usecase.RequestSeedInput{HolderID: "holder-1"}},
		{name: "repo url not a url", input: usecase.RequestSeedInput{HolderID: "holder-1", RepoURL: "not a url"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.RequestSeed(context.Background(), tt.input)
			require.Error(t, err)
			assert.Equal(t, http.StatusUnprocessableEntity, statusOf(t, err))
		})
	}
}

func TestRequestSeed_IssuerFailure(t *testing.T) {
	holder, err := pki.Generate(1024)
	require.NoError(t, err)

	uc, _, iss := newUsecase(t, func(dep *usecase.Dependency) {
		dep.HolderPub = &holder.PublicKey
	})
	iss.err = errors.New("issuer unreachable")

	_, err = uc.RequestSeed(context.Background(), usecase.RequestSeedInput{
		HolderID: "holder-1",
		RepoURL:  "https://example.com/holder-1/work",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, statusOf(t, err))
}

func TestRequestSeed_WithoutPublicKey(t *testing.T) {
	uc, _, _ := newUsecase(t, nil)

	_, err := uc.RequestSeed(context.Background(), usecase.RequestSeedInput{
		HolderID: "holder-1",
		RepoURL:  "https://example.com/holder-1/work",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, statusOf(t, err))
}
