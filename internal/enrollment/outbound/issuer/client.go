package issuer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/widipratama/otpseal/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
)

// ErrIssuerRejected indicates the issuer answered but did not hand out an
// encrypted seed (non-success status or missing payload).
var ErrIssuerRejected = errors.New("issuer rejected seed request")

// Config holds the issuer endpoint parameters.
type Config struct {
	// URL is the seed-issuance endpoint.
	URL string
	// Timeout bounds a single HTTP attempt.
	Timeout time.Duration
	// MaxAttempts bounds retries on transport-level failures.
	MaxAttempts uint64
	// BaseDelay seeds the fibonacci backoff between attempts.
	BaseDelay time.Duration
}

// Client requests an encrypted seed from the remote issuer.
type Client struct {
	cfg  Config
	http *http.Client
	ins  instrument.Instrumentation
}

// NewClient builds a Client with sane fallbacks for zero-valued config.
func NewClient(cfg Config, ins instrument.Instrumentation) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 4
	}
	if cfg.BaseDelay <= 0 {
		cfg.BaseDelay = 250 * time.Millisecond
	}

	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		ins:  ins,
	}
}

type seedRequest struct {
	HolderID  string `json:"holder_id"`
	RepoURL   string `json:"repo_url"`
	PublicKey string `json:"public_key"`
}

type seedResponse struct {
	Status        string `json:"status"`
	EncryptedSeed string `json:"encrypted_seed"`
}

// RequestSeed posts the holder public key PEM to the issuer and returns the
// base64 encrypted seed. Transport failures and 5xx answers are retried with
// fibonacci backoff; issuer rejections are not (they need human attention).
func (c *Client) RequestSeed(ctx context.Context, holderID, repoURL, publicKeyPEM string) (string, error) {
	ctx, span := c.ins.Tracer("enrollment.outbound.issuer").Start(ctx, "RequestSeed")
	defer span.End()

	body, err := json.Marshal(seedRequest{
		HolderID:  holderID,
		RepoURL:   repoURL,
		PublicKey: publicKeyPEM,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	var encryptedSeed string

	b := retry.NewFibonacci(c.cfg.BaseDelay)
	b = retry.WithMaxRetries(c.cfg.MaxAttempts, b)
	b = retry.WithCappedDuration(5*time.Second, b)

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		encryptedSeed = ""

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.URL, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusInternalServerError {
			return retry.RetryableError(fmt.Errorf("issuer returned status %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("%w: status %d", ErrIssuerRejected, resp.StatusCode)
		}

		var out seedResponse
		if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&out); err != nil {
			return fmt.Errorf("%w: %s", ErrIssuerRejected, "unreadable response")
		}

		if out.Status != "success" || out.EncryptedSeed == "" {
			return fmt.Errorf("%w: status %q", ErrIssuerRejected, out.Status)
		}

		encryptedSeed = out.EncryptedSeed

		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	return encryptedSeed, nil
}
