// Package clock provides the time source used by the authenticator.
//
// Code that shows or streams one-time codes depends on the Clocker interface
// instead of calling time.Now() directly, so tests can pin the instant a code
// is computed for and get deterministic results.
package clock
