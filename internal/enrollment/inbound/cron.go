package inbound

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/widipratama/otpseal/internal/pkg/goroutine"
)

// CodeLoggerConfig drives the periodic code journal.
type CodeLoggerConfig struct {
	// Path is the append-only journal file.
	Path string
	// Interval between journal entries.
	Interval time.Duration
}

// RegisterCodeLogger starts a background loop that appends the current
// one-time code to a journal file every interval, timestamped in UTC:
//
//	2026-01-02 15:04:05 - 2FA Code: 123456
//
// A missing seed is the normal pre-enrollment state and only logs a warning.
// The loop stops when ctx is canceled.
func RegisterCodeLogger(ctx context.Context, gm *goroutine.Manager, uc uc, cfg CodeLoggerConfig) {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Minute
	}

	gm.Go(ctx, func(ctx context.Context) error {
		ticker := time.NewTicker(cfg.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				logCurrentCode(ctx, uc, cfg.Path)
			}
		}
	})
}

func logCurrentCode(ctx context.Context, uc uc, path string) {
	resp, err := uc.GenerateCode(ctx)
	if err != nil {
		slog.WarnContext(ctx, "code journal skipped", "error", err)
		return
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		slog.ErrorContext(ctx, "failed to prepare code journal directory", "error", err)
		return
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) // #nosec G304 -- path is from trusted config file.
	if err != nil {
		slog.ErrorContext(ctx, "failed to open code journal", "error", err)
		return
	}
	defer f.Close()

	line := fmt.Sprintf("%s - 2FA Code: %s\n", time.Now().UTC().Format("2006-01-02 15:04:05"), resp.Code)
	if _, err := f.WriteString(line); err != nil {
		slog.ErrorContext(ctx, "failed to append code journal entry", "error", err)
	}
}
