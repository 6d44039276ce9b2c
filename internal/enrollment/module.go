package enrollment

import (
	"context"
	"crypto/rsa"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/widipratama/otpseal/internal/enrollment/inbound"
	"github.com/widipratama/otpseal/internal/enrollment/outbound/issuer"
	"github.com/widipratama/otpseal/internal/enrollment/outbound/seedfile"
	"github.com/widipratama/otpseal/internal/enrollment/usecase"
	"github.com/widipratama/otpseal/internal/pkg/clock"
	"github.com/widipratama/otpseal/internal/pkg/config"
	"github.com/widipratama/otpseal/internal/pkg/goroutine"
	"github.com/widipratama/otpseal/internal/pkg/instrument"
	"github.com/widipratama/otpseal/internal/pkg/otp"
	"github.com/widipratama/otpseal/internal/pkg/pki"
	"github.com/widipratama/otpseal/internal/pkg/router"
	"github.com/widipratama/otpseal/internal/pkg/validator"
)

type Dependency struct {
	Goroutine  *goroutine.Manager         `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Totp       otp.OTP                    `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	holderKey, holderPub, issuerKey, err := loadKeys(dep.Config)
	if err != nil {
		return err
	}

	// A signature is as large as the signing modulus; refuse to start with a
	// wrapping key that can never hold one.
	if holderKey != nil && issuerKey != nil {
		if err := pki.EnsureWrapCapacity(holderKey, issuerKey); err != nil {
			return err
		}
	}

	seeds := seedfile.NewStore(dep.Config.GetString("modules.enrollment.seed.path"), dep.Instrument)

	issuerClient := issuer.NewClient(issuer.Config{
		URL:         dep.Config.GetString("modules.enrollment.issuer.url"),
		Timeout:     dep.Config.GetSecond("modules.enrollment.issuer.timeout_seconds"),
		MaxAttempts: dep.Config.GetUint64("modules.enrollment.issuer.retry_max_attempts"),
		BaseDelay:   time.Duration(dep.Config.GetUint64("modules.enrollment.issuer.retry_base_delay_ms")) * time.Millisecond,
	}, dep.Instrument)

	uc := usecase.New(usecase.Dependency{
		RepoSeed:   seeds,
		RepoIssuer: issuerClient,
		Validator:  dep.Validator,
		Config:     dep.Config,
		Totp:       dep.Totp,
		Clock:      dep.Clock,
		HolderKey:  holderKey,
		HolderPub:  holderPub,
		IssuerKey:  issuerKey,
		Instrument: dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	if dep.Config.GetBool("modules.enrollment.codelog.enabled") {
		inbound.RegisterCodeLogger(context.Background(), dep.Goroutine, uc, inbound.CodeLoggerConfig{
			Path:     dep.Config.GetString("modules.enrollment.codelog.path"),
			Interval: dep.Config.GetSecond("modules.enrollment.codelog.interval_seconds"),
		})
	}

	return nil
}

// loadKeys reads the holder keypair and issuer public key from the configured
// paths. A missing file is survivable (the module serves what it can and the
// affected operations fail per call); a malformed file is not.
func loadKeys(cfg config.Config) (*rsa.PrivateKey, *rsa.PublicKey, *rsa.PublicKey, error) {
	holderKey, err := pki.LoadPrivate(cfg.GetString("modules.enrollment.keys.holder_private_path"))
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("holder private key missing, seed and proof operations disabled until provisioned")
		holderKey = nil
	} else if err != nil {
		return nil, nil, nil, err
	}

	holderPub, err := pki.LoadPublic(cfg.GetString("modules.enrollment.keys.holder_public_path"))
	if errors.Is(err, os.ErrNotExist) {
		holderPub = nil
	} else if err != nil {
		return nil, nil, nil, err
	}
	if holderPub == nil && holderKey != nil {
		holderPub = &holderKey.PublicKey
	}

	issuerKey, err := pki.LoadPublic(cfg.GetString("modules.enrollment.keys.issuer_public_path"))
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("issuer public key missing, proof operations disabled until provisioned")
		issuerKey = nil
	} else if err != nil {
		return nil, nil, nil, err
	}

	return holderKey, holderPub, issuerKey, nil
}
