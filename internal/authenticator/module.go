package authenticator

import (
	"github.com/shandysiswandi/authenticator/internal/authenticator/inbound"
	"github.com/shandysiswandi/authenticator/internal/authenticator/usecase"
	"github.com/shandysiswandi/authenticator/internal/pkg/clock"
	"github.com/shandysiswandi/authenticator/internal/pkg/config"
	"github.com/shandysiswandi/authenticator/internal/pkg/goroutine"
	"github.com/shandysiswandi/authenticator/internal/pkg/instrument"
	"github.com/shandysiswandi/authenticator/internal/pkg/otp"
	"github.com/shandysiswandi/authenticator/internal/pkg/router"
	"github.com/shandysiswandi/authenticator/internal/pkg/uid"
	"github.com/shandysiswandi/authenticator/internal/pkg/validator"
)

type Dependency struct {
	Config     config.Config
	Instrument instrument.Instrumentation
	UUID       uid.StringID
	Clock      clock.Clocker
	Goroutine  *goroutine.Manager
	Validator  validator.Validator
	OTP        otp.OTP
	Router     *router.Router
}

func New(dep Dependency) error {
	uc := usecase.NewAuthenticator(usecase.Dependency{
		Config:     dep.Config,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		OTP:        dep.OTP,
		Instrument: dep.Instrument,
		Goroutine:  dep.Goroutine,
		UUID:       dep.UUID,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc, dep.Config.GetSecond("modules.authenticator.heartbeat_seconds"))

	return nil
}
