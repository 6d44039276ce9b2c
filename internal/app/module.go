package app

import (
	"log/slog"
	"os"

	"github.com/widipratama/otpseal/internal/enrollment"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.enrollment.enabled") {
		if err := enrollment.New(enrollment.Dependency{
			Config:     a.config,
			Instrument: a.ins,
			Clock:      a.clock,
			Validator:  a.validator,
			Router:     a.router,
			Totp:       a.totp,
			Goroutine:  a.goroutine,
		}); err != nil {
			slog.Error("failed to init module enrollment", "error", err)
			os.Exit(1)
		}
	}
}
