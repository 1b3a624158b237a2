package entity

import (
	"strings"
	"time"
)

// Account is the view of a parsed provisioning URI returned to clients.
// The secret is never exposed in full.
type Account struct {
	Label      string
	Issuer     *string
	Algorithm  string
	Digits     int
	Period     int
	SecretHint string
}

// CodeTick is one code observation: the code valid at At and its window.
type CodeTick struct {
	Code       string
	Remaining  int
	Period     int
	At         time.Time
	ValidFrom  time.Time
	ValidUntil time.Time
}

// SecretHint masks everything but the first and last two characters of a
// secret. Secrets of four characters or fewer are masked entirely.
func SecretHint(secret string) string {
	runes := []rune(secret)
	if len(runes) <= 4 {
		return strings.Repeat("*", len(runes))
	}

	return string(runes[:2]) + strings.Repeat("*", len(runes)-4) + string(runes[len(runes)-2:])
}
