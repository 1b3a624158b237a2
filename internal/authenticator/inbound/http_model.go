package inbound

import (
	"net/http"
	"time"

	"github.com/shandysiswandi/authenticator/internal/authenticator/entity"
)

type URIRequest struct {
	URI string `json:"uri" example:"otpauth://totp/ACME:john?secret=JBSWY3DPEHPK3PXP&issuer=ACME"`
}

type CodeRequest struct {
	URI string `json:"uri" example:"otpauth://totp/ACME:john?secret=JBSWY3DPEHPK3PXP&issuer=ACME"`
	// At is an optional RFC 3339 instant; the server clock is used when absent.
	At *time.Time `json:"at,omitempty" example:"2023-01-17T07:47:46Z"`
}

type GenerateRequest struct {
	Label     string  `json:"label" example:"ACME john"`
	Secret    string  `json:"secret" example:"JBSWY3DPEHPK3PXP"`
	Issuer    *string `json:"issuer,omitempty" example:"ACME"`
	Algorithm string  `json:"algorithm,omitempty" example:"SHA1"`
	Digits    int     `json:"digits,omitempty" example:"6"`
	Period    int     `json:"period,omitempty" example:"30"`
}

type AccountResponse struct {
	Label      string  `json:"label"`
	Issuer     *string `json:"issuer"`
	Algorithm  string  `json:"algorithm"`
	Digits     int     `json:"digits"`
	Period     int     `json:"period"`
	SecretHint string  `json:"secret_hint"`
}

type CodeTickResponse struct {
	Code       string    `json:"code" example:"492039"`
	Remaining  int       `json:"remaining_seconds" example:"14"`
	Period     int       `json:"period" example:"30"`
	ValidFrom  time.Time `json:"valid_from"`
	ValidUntil time.Time `json:"valid_until"`
}

type InspectResponse struct {
	Account AccountResponse `json:"account"`
	URI     string          `json:"canonical_uri"`
}

type CodeResponse struct {
	Account AccountResponse  `json:"account"`
	Current CodeTickResponse `json:"current"`
	Next    CodeTickResponse `json:"next"`
}

type GenerateResponse struct {
	Account AccountResponse `json:"account"`
	URI     string          `json:"uri"`
}

func (GenerateResponse) StatusCode() int { return http.StatusCreated }
func (GenerateResponse) Message() string { return "uri generated" }

type StreamEventResponse struct {
	StreamID string           `json:"stream_id"`
	Rotated  bool             `json:"rotated"`
	Tick     CodeTickResponse `json:"tick"`
}

func toAccountResponse(a entity.Account) AccountResponse {
	return AccountResponse{
		Label:      a.Label,
		Issuer:     a.Issuer,
		Algorithm:  a.Algorithm,
		Digits:     a.Digits,
		Period:     a.Period,
		SecretHint: a.SecretHint,
	}
}

func toCodeTickResponse(t entity.CodeTick) CodeTickResponse {
	return CodeTickResponse{
		Code:       t.Code,
		Remaining:  t.Remaining,
		Period:     t.Period,
		ValidFrom:  t.ValidFrom,
		ValidUntil: t.ValidUntil,
	}
}
