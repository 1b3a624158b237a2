package router

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/shandysiswandi/authenticator/internal/pkg/goerror"
)

// maxBodyBytes bounds JSON request bodies; otpauth payloads are tiny.
const maxBodyBytes = 64 * 1024

// Request wraps http.Request with helpers for inbound handlers.
type Request struct {
	// Request is the underlying http.Request.
	*http.Request
}

// GetParam reads a path parameter from the request context (as stored by httprouter).
func (r *Request) GetParam(key string) string {
	return httprouter.ParamsFromContext(r.Context()).ByName(key)
}

// GetQuery returns the first value of the query parameter key.
//
// Values are not trimmed: spaces can be significant (an otpauth secret may
// legitimately contain them before normalization).
func (r *Request) GetQuery(key string) string {
	return r.URL.Query().Get(key)
}

// HasQuery reports whether key is present in the query string, even if empty.
func (r *Request) HasQuery(key string) bool {
	return r.URL.Query().Has(key)
}

// DecodeBody decodes a single JSON document into dst, rejecting unknown
// fields and trailing data.
func (r *Request) DecodeBody(dst any) error {
	if r == nil || r.Body == nil {
		return goerror.NewInvalidFormat()
	}

	ct := strings.ToLower(r.Header.Get("Content-Type"))
	if ct != "" && !strings.HasPrefix(ct, "application/json") {
		return goerror.NewInvalidFormat("Invalid request content-type")
	}

	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return goerror.NewInvalidFormat()
	}

	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return goerror.NewInvalidFormat()
	}

	return nil
}
