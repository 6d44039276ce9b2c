package usecase

import (
	"context"
	"crypto/rsa"
	"errors"

	"github.com/widipratama/otpseal/internal/enrollment/entity"
	"github.com/widipratama/otpseal/internal/pkg/clock"
	"github.com/widipratama/otpseal/internal/pkg/config"
	"github.com/widipratama/otpseal/internal/pkg/goerror"
	"github.com/widipratama/otpseal/internal/pkg/instrument"
	"github.com/widipratama/otpseal/internal/pkg/otp"
	"github.com/widipratama/otpseal/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

type repoSeed interface {
	Persist(ctx context.Context, seed entity.Seed) error
	Load(ctx context.Context) (entity.Seed, error)
}

type repoIssuer interface {
	RequestSeed(ctx context.Context, holderID, repoURL, publicKeyPEM string) (string, error)
}

type Usecase struct {
	repoSeed   repoSeed
	repoIssuer repoIssuer
	validator  validator.Validator
	cfg        config.Config
	totp       otp.OTP
	clock      clock.Clocker
	holderKey  *rsa.PrivateKey
	holderPub  *rsa.PublicKey
	issuerKey  *rsa.PublicKey
	ins        instrument.Instrumentation
}

type Dependency struct {
	RepoSeed   repoSeed
	RepoIssuer repoIssuer
	Validator  validator.Validator
	Config     config.Config
	Totp       otp.OTP
	Clock      clock.Clocker
	// HolderKey and HolderPub may be nil when the holder keypair has not been
	// generated yet; operations that need them fail per call.
	HolderKey *rsa.PrivateKey
	HolderPub *rsa.PublicKey
	// IssuerKey may be nil until the issuer public key is provisioned.
	IssuerKey  *rsa.PublicKey
	Instrument instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoSeed:   dep.RepoSeed,
		repoIssuer: dep.RepoIssuer,
		validator:  dep.Validator,
		cfg:        dep.Config,
		totp:       dep.Totp,
		clock:      dep.Clock,
		holderKey:  dep.HolderKey,
		holderPub:  dep.HolderPub,
		issuerKey:  dep.IssuerKey,
		ins:        dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("enrollment.usecase").Start(ctx, name)
}

// loadSeed fetches the persisted seed and maps the empty slot to the
// business answer every code operation shares.
func (s *Usecase) loadSeed(ctx context.Context) (entity.Seed, error) {
	seed, err := s.repoSeed.Load(ctx)
	if errors.Is(err, goerror.ErrNotFound) {
		return "", goerror.NewBusiness("seed not decrypted yet", goerror.CodeNotFound)
	}
	if err != nil {
		return "", goerror.NewServer(err)
	}

	return seed, nil
}
