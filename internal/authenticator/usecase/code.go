package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/authenticator/internal/authenticator/entity"
	"github.com/shandysiswandi/authenticator/internal/pkg/goerror"
)

type CodeInput struct {
	URI string `validate:"required"`
	// At overrides the current instant. Zero means now.
	At time.Time
}

type CodeOutput struct {
	Account entity.Account
	Current entity.CodeTick
	// Next is the code of the following window, useful when Remaining is small.
	Next entity.CodeTick
}

func (s *Usecase) Code(ctx context.Context, in CodeInput) (*CodeOutput, error) {
	ctx, span := s.startSpan(ctx, "Code")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	spec, err := s.parseURI(ctx, in.URI)
	if err != nil {
		return nil, err
	}

	at := in.At
	if at.IsZero() {
		at = s.clock.Now()
	}

	current := s.tickAt(spec, at)
	next := s.tickAt(spec, current.ValidUntil)
	s.countCode(ctx, spec)

	return &CodeOutput{
		Account: toAccount(spec),
		Current: current,
		Next:    next,
	}, nil
}
