package otp

import "time"

// OTP defines the contract for TOTP operations.
type OTP interface {
	// Parse validates a provisioning URI and returns its Spec.
	Parse(uri string) (Spec, error)
	// Code returns the code for spec at the given time.
	Code(spec Spec, at time.Time) string
	// URI serializes spec into its canonical provisioning URI.
	URI(spec Spec) string
	// Remaining returns the seconds left before the code for at expires.
	Remaining(spec Spec, at time.Time) int
}

// TOTP implements OTP with the package level functions.
type TOTP struct{}

// NewTOTP returns the TOTP engine.
func NewTOTP() *TOTP {
	return &TOTP{}
}

// Parse validates a provisioning URI and returns its Spec.
func (*TOTP) Parse(uri string) (Spec, error) {
	return ParseURI(uri)
}

// Code returns the code for spec at the given time.
func (*TOTP) Code(spec Spec, at time.Time) string {
	return CalculateCode(spec, at)
}

// URI serializes spec into its canonical provisioning URI.
func (*TOTP) URI(spec Spec) string {
	return GenerateURI(spec)
}

// Remaining returns the seconds left before the code for at expires.
func (*TOTP) Remaining(spec Spec, at time.Time) int {
	return RemainingSeconds(spec, at)
}
