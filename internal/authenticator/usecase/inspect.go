package usecase

import (
	"context"

	"github.com/shandysiswandi/authenticator/internal/authenticator/entity"
	"github.com/shandysiswandi/authenticator/internal/pkg/goerror"
)

type InspectInput struct {
	URI string `validate:"required"`
}

type InspectOutput struct {
	Account entity.Account
	// URI is the canonical form of the input, as GenerateURI would write it.
	URI string
}

func (s *Usecase) Inspect(ctx context.Context, in InspectInput) (*InspectOutput, error) {
	ctx, span := s.startSpan(ctx, "Inspect")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	spec, err := s.parseURI(ctx, in.URI)
	if err != nil {
		return nil, err
	}

	return &InspectOutput{
		Account: toAccount(spec),
		URI:     s.otp.URI(spec),
	}, nil
}
