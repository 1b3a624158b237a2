// Package otp implements the time-based one-time password (TOTP) engine used by
// the authenticator: it parses otpauth:// provisioning URIs into an immutable
// Spec, computes the current code for a Spec at a given instant, and serializes
// a Spec back into its canonical URI.
//
// The secret carried by a URI is used as its raw byte encoding. It is NOT
// base32-decoded, even though most authenticator apps decode it. Existing vault
// items and their recorded codes depend on this, so do not change it without
// checking compatibility with the QR codes produced in production.
//
// Every function in this package is pure and safe for concurrent use. Time is
// always passed in by the caller; nothing here reads the system clock.
package otp
