package inbound

import (
	"context"

	"github.com/shandysiswandi/authenticator/internal/authenticator/usecase"
)

type ucStream interface {
	StreamCodes(ctx context.Context, in usecase.StreamInput) (<-chan usecase.StreamEvent, error)
}

type uc interface {
	ucStream

	Inspect(ctx context.Context, in usecase.InspectInput) (*usecase.InspectOutput, error)
	Code(ctx context.Context, in usecase.CodeInput) (*usecase.CodeOutput, error)
	Generate(ctx context.Context, in usecase.GenerateInput) (*usecase.GenerateOutput, error)
}
