package app

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/authenticator/internal/pkg/clock"
	"github.com/shandysiswandi/authenticator/internal/pkg/config"
	"github.com/shandysiswandi/authenticator/internal/pkg/goroutine"
	"github.com/shandysiswandi/authenticator/internal/pkg/instrument"
	"github.com/shandysiswandi/authenticator/internal/pkg/otp"
	"github.com/shandysiswandi/authenticator/internal/pkg/router"
	"github.com/shandysiswandi/authenticator/internal/pkg/uid"
	"github.com/shandysiswandi/authenticator/internal/pkg/validator"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	goroutine *goroutine.Manager
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID
	totp      otp.OTP

	// server
	router     *router.Router
	httpServer *http.Server
	sseServer  *http.Server

	//
	closers []struct {
		name string
		fn   func(context.Context) error
	}
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	app := newApp()
	app.initConfig()

	return app.build()
}

// NewWithConfig wires the application around an already loaded configuration.
func NewWithConfig(cfg config.Config) *App {
	app := newApp()
	app.config = cfg

	return app.build()
}

func newApp() *App {
	ctx, cancel := context.WithCancel(context.Background())

	return &App{
		ctx:    ctx,
		cancel: cancel,
	}
}

func (a *App) build() *App {
	a.initInstrument()
	a.initLibraries()
	a.initHTTPServer()
	a.initModules()
	a.initClosers()

	return a
}
