package seedfile

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/widipratama/otpseal/internal/enrollment/entity"
	"github.com/widipratama/otpseal/internal/pkg/goerror"
	"github.com/widipratama/otpseal/internal/pkg/instrument"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Store persists the single enrollment seed slot: one text file holding
// exactly the 64-character hex string, no trailing structure.
//
// Persist replaces the slot wholesale via write-temp-then-rename so a
// concurrent Load never observes a partially written value; the mutex
// serializes the slot across goroutines in this process.
type Store struct {
	path string
	mu   sync.RWMutex
	ins  instrument.Instrumentation
}

// NewStore creates a Store backed by the file at path.
func NewStore(path string, ins instrument.Instrumentation) *Store {
	return &Store{path: path, ins: ins}
}

// Persist writes seed into the slot. Overwriting with the same value is
// idempotent; there is no history and no versioning.
func (s *Store) Persist(ctx context.Context, seed entity.Seed) error {
	_, span := s.startSpan(ctx, "Persist")
	var err error
	defer func() { s.endSpan(span, err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err = os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".seed-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err = tmp.WriteString(seed.String()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err = tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	if err = tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err = os.Chmod(tmpName, 0o600); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err = os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}

	return nil
}

// Load reads the slot. A slot that has never been written returns
// goerror.ErrNotFound: the expected pre-enrollment state, distinct from a
// corrupted slot (entity.ErrInvalidSeedFormat).
func (s *Store) Load(ctx context.Context) (entity.Seed, error) {
	_, span := s.startSpan(ctx, "Load")
	var err error
	defer func() { s.endSpan(span, err) }()

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		err = goerror.ErrNotFound
		return "", err
	}
	if err != nil {
		return "", err
	}

	seed, err := entity.ParseSeed(string(data))
	if err != nil {
		return "", err
	}

	return seed, nil
}

func (s *Store) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("enrollment.outbound.seedfile").Start(ctx, name)
}

func (s *Store) endSpan(span trace.Span, err error) {
	if err != nil && !errors.Is(err, goerror.ErrNotFound) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
