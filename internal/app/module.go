package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/authenticator/internal/authenticator"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.authenticator.enabled") {
		if err := authenticator.New(authenticator.Dependency{
			Config:     a.config,
			Instrument: a.ins,
			UUID:       a.uuid,
			Clock:      a.clock,
			Goroutine:  a.goroutine,
			Validator:  a.validator,
			OTP:        a.totp,
			Router:     a.router,
		}); err != nil {
			slog.Error("failed to init module authenticator", "error", err)
			os.Exit(1)
		}
	}
}
