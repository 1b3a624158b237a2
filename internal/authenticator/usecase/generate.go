package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/authenticator/internal/authenticator/entity"
	"github.com/shandysiswandi/authenticator/internal/pkg/goerror"
	"github.com/shandysiswandi/authenticator/internal/pkg/otp"
)

type GenerateInput struct {
	Label     string  `validate:"omitempty,max=256,otplabel"`
	Secret    string  `validate:"required,max=1024,otpsecret"`
	Issuer    *string `validate:"omitempty,max=256"`
	Algorithm string  `validate:"omitempty,oneof=SHA1 SHA256 SHA512"`
	Digits    int     `validate:"omitempty,oneof=6 7 8"`
	Period    int     `validate:"omitempty,gt=0,lte=86400"`
}

type GenerateOutput struct {
	Account entity.Account
	URI     string
}

// Generate builds a spec from loose fields and returns its canonical URI.
// Zero values take the engine defaults (SHA1, 6 digits, 30 seconds).
func (s *Usecase) Generate(ctx context.Context, in GenerateInput) (*GenerateOutput, error) {
	ctx, span := s.startSpan(ctx, "Generate")
	defer span.End()

	in.Label = strings.TrimSpace(in.Label)
	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	alg := otp.AlgorithmSHA1
	if in.Algorithm != "" {
		alg, _ = otp.ParseAlgorithm(in.Algorithm)
	}

	spec, err := otp.NewSpec(otp.SpecParams{
		Label:     in.Label,
		Secret:    in.Secret,
		Issuer:    in.Issuer,
		Algorithm: alg,
		Digits:    otp.Digits(in.Digits),
		Period:    in.Period,
	})
	if err != nil {
		var merr *otp.MalformedURIError
		if errors.As(err, &merr) {
			return nil, toInvalidInput(merr)
		}
		slog.ErrorContext(ctx, "failed to build otp spec", "error", err)
		return nil, goerror.NewServer(err)
	}

	return &GenerateOutput{
		Account: toAccount(spec),
		URI:     s.otp.URI(spec),
	}, nil
}
