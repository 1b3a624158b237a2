package inbound

import (
	"context"
	"net/http"
	"time"

	"github.com/samber/lo"
	"github.com/shandysiswandi/authenticator/internal/authenticator/usecase"
	"github.com/shandysiswandi/authenticator/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc         uc
	writeError func(ctx context.Context, w http.ResponseWriter, err error)
	heartbeat  time.Duration
}

// Inspect parses a provisioning URI and describes the account it encodes.
// @Summary Inspect provisioning URI
// @Description Parses an otpauth URI and returns its fields with the secret masked.
// @Tags Authenticator
// @Accept json
// @Produce json
// @Param request body URIRequest true "Provisioning URI"
// @Success 200 {object} router.successResponse{data=InspectResponse} "Account"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Malformed URI"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/authenticator/inspect [post]
func (h *HTTPEndpoint) Inspect(r *router.Request) (any, error) {
	var req URIRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Inspect(r.Context(), usecase.InspectInput{URI: req.URI})
	if err != nil {
		return nil, err
	}

	return InspectResponse{
		Account: toAccountResponse(out.Account),
		URI:     out.URI,
	}, nil
}

// Code returns the current and next code for a provisioning URI.
// @Summary Current code
// @Description Computes the TOTP code valid now (or at the given instant) and the one after it.
// @Tags Authenticator
// @Accept json
// @Produce json
// @Param request body CodeRequest true "Provisioning URI and optional instant"
// @Success 200 {object} router.successResponse{data=CodeResponse} "Codes"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Malformed URI"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/authenticator/code [post]
func (h *HTTPEndpoint) Code(r *router.Request) (any, error) {
	var req CodeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Code(r.Context(), usecase.CodeInput{
		URI: req.URI,
		At:  lo.FromPtr(req.At),
	})
	if err != nil {
		return nil, err
	}

	return CodeResponse{
		Account: toAccountResponse(out.Account),
		Current: toCodeTickResponse(out.Current),
		Next:    toCodeTickResponse(out.Next),
	}, nil
}

// GenerateURI builds the canonical provisioning URI from individual fields.
// @Summary Generate provisioning URI
// @Description Serializes label, secret, issuer, algorithm, digits and period into an otpauth URI.
// @Tags Authenticator
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Account fields"
// @Success 201 {object} router.successResponse{data=GenerateResponse} "Generated URI"
// @Failure 400 {object} router.errorResponse "Invalid request body"
// @Failure 422 {object} router.errorResponse "Validation error"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/authenticator/uri [post]
func (h *HTTPEndpoint) GenerateURI(r *router.Request) (any, error) {
	var req GenerateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	out, err := h.uc.Generate(r.Context(), usecase.GenerateInput{
		Label:     req.Label,
		Secret:    req.Secret,
		Issuer:    req.Issuer,
		Algorithm: req.Algorithm,
		Digits:    req.Digits,
		Period:    req.Period,
	})
	if err != nil {
		return nil, err
	}

	return GenerateResponse{
		Account: toAccountResponse(out.Account),
		URI:     out.URI,
	}, nil
}
