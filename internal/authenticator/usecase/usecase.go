package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authenticator/internal/authenticator/entity"
	"github.com/shandysiswandi/authenticator/internal/pkg/clock"
	"github.com/shandysiswandi/authenticator/internal/pkg/config"
	"github.com/shandysiswandi/authenticator/internal/pkg/goerror"
	"github.com/shandysiswandi/authenticator/internal/pkg/goroutine"
	"github.com/shandysiswandi/authenticator/internal/pkg/instrument"
	"github.com/shandysiswandi/authenticator/internal/pkg/otp"
	"github.com/shandysiswandi/authenticator/internal/pkg/uid"
	"github.com/shandysiswandi/authenticator/internal/pkg/validator"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/atomic"
)

const defaultTickInterval = time.Second

type Usecase struct {
	cfg       config.Config
	clock     clock.Clocker
	validator validator.Validator
	otp       otp.OTP
	ins       instrument.Instrumentation
	goroutine *goroutine.Manager
	uuid      uid.StringID
	tick      time.Duration

	activeStreams  *atomic.Int64
	codeCounter    metric.Int64Counter
	streamGauge    metric.Int64UpDownCounter
	rejectCounter  metric.Int64Counter
	malformedCount metric.Int64Counter
}

type Dependency struct {
	Config     config.Config
	Clock      clock.Clocker
	Validator  validator.Validator
	OTP        otp.OTP
	Instrument instrument.Instrumentation
	Goroutine  *goroutine.Manager
	UUID       uid.StringID
	// TickInterval overrides the one second stream cadence. Zero keeps the default.
	TickInterval time.Duration
}

func NewAuthenticator(dep Dependency) *Usecase {
	ins := dep.Instrument
	if ins == nil {
		ins = instrument.NewNoop()
	}

	s := &Usecase{
		cfg:           dep.Config,
		clock:         dep.Clock,
		validator:     dep.Validator,
		otp:           dep.OTP,
		ins:           ins,
		goroutine:     dep.Goroutine,
		uuid:          dep.UUID,
		tick:          lo.Ternary(dep.TickInterval > 0, dep.TickInterval, defaultTickInterval),
		activeStreams: atomic.NewInt64(0),
	}

	meter := ins.Meter("authenticator.usecase")

	var err error
	if s.codeCounter, err = meter.Int64Counter("authenticator.codes",
		metric.WithDescription("Number of codes computed")); err != nil {
		slog.Error("failed to create code counter", "error", err)
	}
	if s.streamGauge, err = meter.Int64UpDownCounter("authenticator.streams.active",
		metric.WithDescription("Number of open code streams")); err != nil {
		slog.Error("failed to create stream gauge", "error", err)
	}
	if s.rejectCounter, err = meter.Int64Counter("authenticator.streams.rejected",
		metric.WithDescription("Number of code streams rejected for capacity")); err != nil {
		slog.Error("failed to create stream reject counter", "error", err)
	}
	if s.malformedCount, err = meter.Int64Counter("authenticator.uris.malformed",
		metric.WithDescription("Number of provisioning URIs rejected, by kind")); err != nil {
		slog.Error("failed to create malformed uri counter", "error", err)
	}

	return s
}

// ActiveStreams reports how many code streams are currently open.
func (s *Usecase) ActiveStreams() int64 {
	return s.activeStreams.Load()
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("authenticator.usecase").Start(ctx, name)
}

// parseURI runs the engine parser and maps its typed error onto a field error
// carrying the human message and the machine readable kind.
func (s *Usecase) parseURI(ctx context.Context, uri string) (otp.Spec, error) {
	spec, err := s.otp.Parse(uri)
	if err == nil {
		return spec, nil
	}

	var merr *otp.MalformedURIError
	if !errors.As(err, &merr) {
		slog.ErrorContext(ctx, "failed to parse otp uri", "error", err)
		return otp.Spec{}, goerror.NewServer(err)
	}

	slog.WarnContext(ctx, "otp uri rejected", "kind", merr.Kind.String(), "uri", uri)
	if s.malformedCount != nil {
		s.malformedCount.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", merr.Kind.String())))
	}

	return otp.Spec{}, toInvalidInput(merr)
}

func toInvalidInput(merr *otp.MalformedURIError) error {
	return goerror.NewInvalidInput(nil, "uri", merr.Error(), "kind", merr.Kind.String())
}

func (s *Usecase) countCode(ctx context.Context, spec otp.Spec) {
	if s.codeCounter == nil {
		return
	}
	s.codeCounter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("algorithm", spec.Algorithm().String()),
		attribute.Int("digits", spec.Digits().Value()),
	))
}

func (s *Usecase) tickAt(spec otp.Spec, at time.Time) entity.CodeTick {
	from := otp.WindowStart(spec, at)

	return entity.CodeTick{
		Code:       s.otp.Code(spec, at),
		Remaining:  s.otp.Remaining(spec, at),
		Period:     spec.Period(),
		At:         at,
		ValidFrom:  from,
		ValidUntil: from.Add(time.Duration(spec.Period()) * time.Second),
	}
}

func toAccount(spec otp.Spec) entity.Account {
	issuer, ok := spec.Issuer()

	return entity.Account{
		Label:      spec.Label(),
		Issuer:     lo.Ternary(ok, lo.ToPtr(issuer), nil),
		Algorithm:  spec.Algorithm().String(),
		Digits:     spec.Digits().Value(),
		Period:     spec.Period(),
		SecretHint: entity.SecretHint(spec.Secret()),
	}
}
