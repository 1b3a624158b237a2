// Package uid generates identifiers for correlation and stream sessions.
package uid

// StringID generates unique string identifiers.
type StringID interface {
	Generate() string
}
