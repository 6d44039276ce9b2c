package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/widipratama/otpseal/internal/enrollment/entity"
	"github.com/widipratama/otpseal/internal/enrollment/usecase"
	"github.com/widipratama/otpseal/internal/pkg/goerror"
	"github.com/widipratama/otpseal/internal/pkg/instrument"
	"github.com/widipratama/otpseal/internal/pkg/otp"
	"github.com/widipratama/otpseal/internal/pkg/validator"
)

const testSeedHex = "aabbccddeeff00112233445566778899aabbccddeeff00112233445566778899"

type memSeedStore struct {
	seed entity.Seed
	set  bool
	err  error
}

func (m *memSeedStore) Persist(_ context.Context, seed entity.Seed) error {
	if m.err != nil {
		return m.err
	}

	m.seed = seed
	m.set = true

	return nil
}

func (m *memSeedStore) Load(context.Context) (entity.Seed, error) {
	if m.err != nil {
		return "", m.err
	}
	if !m.set {
		return "", goerror.ErrNotFound
	}

	return m.seed, nil
}

type stubIssuer struct {
	encryptedSeed string
	err           error

	gotHolderID string
	gotRepoURL  string
	gotPEM      string
}

func (s *stubIssuer) RequestSeed(_ context.Context, holderID, repoURL, publicKeyPEM string) (string, error) {
	s.gotHolderID = holderID
	s.gotRepoURL = repoURL
	s.gotPEM = publicKeyPEM

	if s.err != nil {
		return "", s.err
	}

	return s.encryptedSeed, nil
}

type fixedClock struct{ at time.Time }

func (c fixedClock) Now() time.Time { return c.at }

func newValidator(t *testing.T) validator.Validator {
	t.Helper()

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	return v
}

// statusOf extracts the HTTP status a goerror would map to.
func statusOf(t *testing.T, err error) int {
	t.Helper()

	var gerr *goerror.Error
	require.ErrorAs(t, err, &gerr)

	return gerr.StatusCode()
}

func newUsecase(t *testing.T, mutate func(*usecase.Dependency)) (*usecase.Usecase, *memSeedStore, *stubIssuer) {
	t.Helper()

	store := &memSeedStore{}
	iss := &stubIssuer{}

	dep := usecase.Dependency{
		RepoSeed:   store,
		RepoIssuer: iss,
		Validator:  newValidator(t),
		Totp:       otp.NewTOTP(30, 1),
		Clock:      fixedClock{at: time.Unix(1700000015, 0)},
		Instrument: instrument.NewNoop(),
	}
	if mutate != nil {
		mutate(&dep)
	}

	return usecase.New(dep), store, iss
}

func seeded(t *testing.T, store *memSeedStore) entity.Seed {
	t.Helper()

	seed, err := entity.ParseSeed(testSeedHex)
	require.NoError(t, err)
	require.NoError(t, store.Persist(context.Background(), seed))

	return seed
}

var errStorage = errors.New("disk unavailable")

func TestLoadSeedMapping(t *testing.T) {
	uc, _, _ := newUsecase(t, nil)

	_, err := uc.GenerateCode(context.Background())
	require.Equal(t, http.StatusNotFound, statusOf(t, err))
	require.Contains(t, err.Error(), "seed not decrypted yet")

	uc, store, _ := newUsecase(t, nil)
	store.err = errStorage

	_, err = uc.GenerateCode(context.Background())
	require.Equal(t, http.StatusInternalServerError, statusOf(t, err))
	require.NotContains(t, err.Error(), "seed not decrypted yet")
}
