package otp

import "fmt"

// Kind identifies why a provisioning URI was rejected.
type Kind int

const (
	// KindInvalidSyntax means the input could not be parsed as a URI at all.
	KindInvalidSyntax Kind = iota + 1
	// KindMissingScheme means the URI has no scheme.
	KindMissingScheme
	// KindInvalidScheme means the scheme is not otpauth.
	KindInvalidScheme
	// KindMissingHost means the URI has no host (OTP type).
	KindMissingHost
	// KindInvalidHost means the OTP type is not totp.
	KindInvalidHost
	// KindMissingSecret means the secret parameter is absent or blank.
	KindMissingSecret
	// KindInvalidAlgorithm means the algorithm parameter is not SHA1, SHA256 or SHA512.
	KindInvalidAlgorithm
	// KindInvalidDigitCount means the digits parameter is not 6, 7 or 8.
	KindInvalidDigitCount
	// KindInvalidValidity means the period parameter is not a positive integer.
	KindInvalidValidity
)

// String returns a stable snake_case identifier for the kind.
func (k Kind) String() string {
	switch k {
	case KindInvalidSyntax:
		return "invalid_syntax"
	case KindMissingScheme:
		return "missing_scheme"
	case KindInvalidScheme:
		return "invalid_scheme"
	case KindMissingHost:
		return "missing_host"
	case KindInvalidHost:
		return "invalid_host"
	case KindMissingSecret:
		return "missing_secret"
	case KindInvalidAlgorithm:
		return "invalid_algorithm"
	case KindInvalidDigitCount:
		return "invalid_digit_count"
	case KindInvalidValidity:
		return "invalid_validity"
	default:
		return "unknown"
	}
}

// MalformedURIError is the only error returned by ParseURI and NewSpec.
//
// Actual carries the offending raw value for the kinds that have one
// (scheme, host, algorithm, digits, period); it is empty otherwise.
type MalformedURIError struct {
	Kind   Kind
	Actual string
}

// Sentinels for errors.Is. A sentinel matches any MalformedURIError of the same
// kind regardless of its Actual value.
var (
	ErrInvalidSyntax     = &MalformedURIError{Kind: KindInvalidSyntax}
	ErrMissingScheme     = &MalformedURIError{Kind: KindMissingScheme}
	ErrInvalidScheme     = &MalformedURIError{Kind: KindInvalidScheme}
	ErrMissingHost       = &MalformedURIError{Kind: KindMissingHost}
	ErrInvalidHost       = &MalformedURIError{Kind: KindInvalidHost}
	ErrMissingSecret     = &MalformedURIError{Kind: KindMissingSecret}
	ErrInvalidAlgorithm  = &MalformedURIError{Kind: KindInvalidAlgorithm}
	ErrInvalidDigitCount = &MalformedURIError{Kind: KindInvalidDigitCount}
	ErrInvalidValidity   = &MalformedURIError{Kind: KindInvalidValidity}
)

func newMalformed(kind Kind, actual string) *MalformedURIError {
	return &MalformedURIError{Kind: kind, Actual: actual}
}

// Error returns a message suitable for showing to the user.
func (e *MalformedURIError) Error() string {
	switch e.Kind {
	case KindInvalidSyntax:
		return "otp uri is not a valid uri"
	case KindMissingScheme:
		return "otp uri is missing a scheme"
	case KindInvalidScheme:
		return fmt.Sprintf("otp uri has invalid scheme %q, expected \"otpauth\"", e.Actual)
	case KindMissingHost:
		return "otp uri is missing the otp type"
	case KindInvalidHost:
		return fmt.Sprintf("otp uri has unsupported otp type %q, expected \"totp\"", e.Actual)
	case KindMissingSecret:
		return "otp uri is missing a secret"
	case KindInvalidAlgorithm:
		return fmt.Sprintf("otp uri has unsupported algorithm %q", e.Actual)
	case KindInvalidDigitCount:
		return fmt.Sprintf("otp uri has invalid digit count %q", e.Actual)
	case KindInvalidValidity:
		return fmt.Sprintf("otp uri has invalid period %q", e.Actual)
	default:
		return "otp uri is malformed"
	}
}

// Is reports whether target is a MalformedURIError of the same kind. A target
// with a non-empty Actual must also match the value.
func (e *MalformedURIError) Is(target error) bool {
	t, ok := target.(*MalformedURIError)
	if !ok {
		return false
	}

	if t.Kind != e.Kind {
		return false
	}

	return t.Actual == "" || t.Actual == e.Actual
}
