// Package config exposes typed access to the service configuration.
package config

import (
	"io"
	"time"
)

// Config defines a set of methods for retrieving configuration values of various types.
// Implementations return the zero value (or the registered default) when a key is absent
// or cannot be converted.
type Config interface {
	io.Closer

	// GetBool retrieves the value associated with key as a bool.
	GetBool(key string) bool

	// GetInt retrieves the value associated with key as an int.
	GetInt(key string) int

	// GetUint retrieves the value associated with key as a uint.
	GetUint(key string) uint

	// GetFloat64 retrieves the value associated with key as a float64.
	GetFloat64(key string) float64

	// GetString retrieves the value associated with key as a string.
	GetString(key string) string

	// GetSecond retrieves the value associated with key as a number of seconds.
	GetSecond(key string) time.Duration

	// GetArray retrieves the value associated with key as a slice of strings.
	// Both YAML lists and "<element1>,<element2>,..." strings are accepted.
	GetArray(key string) []string
}
