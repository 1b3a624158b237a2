package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shandysiswandi/authenticator/internal/authenticator/entity"
	"github.com/shandysiswandi/authenticator/internal/pkg/goerror"
	"github.com/shandysiswandi/authenticator/internal/pkg/goroutine"
	"github.com/shandysiswandi/authenticator/internal/pkg/otp"
)

type StreamInput struct {
	URI string `validate:"required"`
}

// StreamEvent is one message of a code stream.
type StreamEvent struct {
	StreamID string
	Account  entity.Account
	Tick     entity.CodeTick
	// Rotated is set when Tick carries a different code than the previous event.
	Rotated bool
}

// StreamCodes validates the URI up front and then emits the current code on
// every tick until ctx is done or modules.authenticator.stream_max_seconds
// elapses, at which point the channel is closed.
func (s *Usecase) StreamCodes(ctx context.Context, in StreamInput) (<-chan StreamEvent, error) {
	// The producer outlives the StreamCodes span, so it runs on the caller's context.
	streamCtx := ctx
	ctx, span := s.startSpan(ctx, "StreamCodes")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	spec, err := s.parseURI(ctx, in.URI)
	if err != nil {
		return nil, err
	}

	out := make(chan StreamEvent, 1)
	streamID := s.uuid.Generate()

	// The manager skips work whose context is already done; detaching the
	// cancellation keeps close(out) guaranteed while produce still watches streamCtx.
	err = s.goroutine.Go(context.WithoutCancel(streamCtx), func(context.Context) error {
		defer close(out)
		s.produce(streamCtx, streamID, spec, out)
		return nil
	})
	if errors.Is(err, goroutine.ErrLimitReached) {
		if s.rejectCounter != nil {
			s.rejectCounter.Add(ctx, 1)
		}
		return nil, goerror.NewBusiness("too many active code streams, try again later", goerror.CodeTooManyRequest)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to start code stream", "error", err)
		return nil, goerror.NewBusiness("code streaming is unavailable", goerror.CodeUnavailable)
	}

	return out, nil
}

func (s *Usecase) produce(ctx context.Context, streamID string, spec otp.Spec, out chan<- StreamEvent) {
	active := s.activeStreams.Inc()
	if s.streamGauge != nil {
		s.streamGauge.Add(ctx, 1)
	}
	slog.InfoContext(ctx, "code stream opened", "stream_id", streamID, "active_streams", active)

	defer func() {
		active := s.activeStreams.Dec()
		if s.streamGauge != nil {
			s.streamGauge.Add(ctx, -1)
		}
		slog.InfoContext(ctx, "code stream closed", "stream_id", streamID, "active_streams", active)
	}()

	var deadline <-chan time.Time
	if maxAge := s.streamMaxAge(); maxAge > 0 {
		timer := time.NewTimer(maxAge)
		defer timer.Stop()
		deadline = timer.C
	}

	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	account := toAccount(spec)
	last := ""

	for {
		tick := s.tickAt(spec, s.clock.Now())
		evt := StreamEvent{
			StreamID: streamID,
			Account:  account,
			Tick:     tick,
			Rotated:  last != "" && last != tick.Code,
		}
		if last != tick.Code {
			s.countCode(ctx, spec)
		}
		last = tick.Code

		select {
		case out <- evt:
		case <-ctx.Done():
			return
		case <-deadline:
			return
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			return
		case <-deadline:
			return
		}
	}
}

func (s *Usecase) streamMaxAge() time.Duration {
	if s.cfg == nil {
		return 0
	}
	return s.cfg.GetSecond("modules.authenticator.stream_max_seconds")
}
