package otp

import (
	"strconv"
	"strings"
)

const (
	// DefaultLabel is used when a URI carries no usable label.
	DefaultLabel = "Unknown"
	// DefaultPeriod is the validity window, in seconds, when a URI omits period.
	DefaultPeriod = 30
)

// Spec is the validated content of a TOTP provisioning URI.
//
// A Spec is an immutable value: it is comparable with ==, and the With* methods
// return modified copies. The zero value is not a valid Spec; obtain one from
// ParseURI or NewSpec.
type Spec struct {
	label     string
	secret    string
	issuer    string
	hasIssuer bool
	algorithm Algorithm
	digits    Digits
	period    int
}

// SpecParams holds already-validated fields, typically coming from an edit form.
// Zero values fall back to the defaults used by ParseURI.
type SpecParams struct {
	Label     string
	Secret    string
	Issuer    *string
	Algorithm Algorithm
	Digits    Digits
	Period    int
}

// NewSpec builds a Spec from params.
//
// The secret goes through the same whitespace normalization as ParseURI. The
// label is kept as given except that an empty label becomes DefaultLabel.
func NewSpec(p SpecParams) (Spec, error) {
	secret := normalizeSecret(p.Secret)
	if secret == "" {
		return Spec{}, newMalformed(KindMissingSecret, "")
	}

	if !p.Algorithm.Valid() {
		return Spec{}, newMalformed(KindInvalidAlgorithm, p.Algorithm.String())
	}

	digits := p.Digits
	if digits == 0 {
		digits = DigitsSix
	}
	if !digits.Valid() {
		return Spec{}, newMalformed(KindInvalidDigitCount, digits.String())
	}

	period := p.Period
	if period == 0 {
		period = DefaultPeriod
	}
	if period < 0 {
		return Spec{}, newMalformed(KindInvalidValidity, strconv.Itoa(period))
	}

	s := Spec{
		label:     normalizeLabel(p.Label),
		secret:    secret,
		algorithm: p.Algorithm,
		digits:    digits,
		period:    period,
	}
	if p.Issuer != nil {
		s.issuer, s.hasIssuer = *p.Issuer, true
	}

	return s, nil
}

// Label returns the display name of the account.
func (s Spec) Label() string { return s.label }

// Secret returns the raw secret. It is never base32-decoded.
func (s Spec) Secret() string { return s.secret }

// Issuer returns the issuer and whether the URI carried one. An issuer can be
// present and empty.
func (s Spec) Issuer() (string, bool) { return s.issuer, s.hasIssuer }

// Algorithm returns the MAC algorithm.
func (s Spec) Algorithm() Algorithm { return s.algorithm }

// Digits returns the code length.
func (s Spec) Digits() Digits { return s.digits }

// Period returns the validity window in seconds.
func (s Spec) Period() int { return s.period }

// WithLabel returns a copy of s with the given label.
func (s Spec) WithLabel(label string) Spec {
	s.label = normalizeLabel(label)
	return s
}

// WithIssuer returns a copy of s with the issuer set.
func (s Spec) WithIssuer(issuer string) Spec {
	s.issuer, s.hasIssuer = issuer, true
	return s
}

// WithoutIssuer returns a copy of s with no issuer.
func (s Spec) WithoutIssuer() Spec {
	s.issuer, s.hasIssuer = "", false
	return s
}

// Params returns the fields of s in a form accepted by NewSpec.
func (s Spec) Params() SpecParams {
	p := SpecParams{
		Label:     s.label,
		Secret:    s.secret,
		Algorithm: s.algorithm,
		Digits:    s.digits,
		Period:    s.period,
	}
	if s.hasIssuer {
		issuer := s.issuer
		p.Issuer = &issuer
	}

	return p
}

// effectivePeriod keeps the calculator total on a zero Spec.
func (s Spec) effectivePeriod() int {
	if s.period <= 0 {
		return DefaultPeriod
	}
	return s.period
}

func (s Spec) effectiveDigits() Digits {
	if !s.digits.Valid() {
		return DigitsSix
	}
	return s.digits
}

// normalizeSecret drops literal spaces and literal "%20" sequences anywhere in
// the secret, not only at the ends. Removal repeats until nothing changes, so
// "%2%2020" cannot leave a "%20" behind.
func normalizeSecret(secret string) string {
	for {
		next := strings.ReplaceAll(strings.ReplaceAll(secret, " ", ""), "%20", "")
		if next == secret {
			return secret
		}
		secret = next
	}
}

// normalizeLabel strips trailing slashes and falls back to DefaultLabel.
func normalizeLabel(label string) string {
	label = strings.TrimRight(label, "/")
	if label == "" {
		return DefaultLabel
	}
	return label
}
