package otp

import (
	"hash"
	"strconv"

	libotp "github.com/pquerna/otp"
)

// Algorithm is the keyed-hash MAC used to derive a code.
type Algorithm int

const (
	// AlgorithmSHA1 is HMAC-SHA1, the default when a URI does not name one.
	AlgorithmSHA1 Algorithm = iota
	// AlgorithmSHA256 is HMAC-SHA256.
	AlgorithmSHA256
	// AlgorithmSHA512 is HMAC-SHA512.
	AlgorithmSHA512
)

// String returns the wire name used in the algorithm query parameter.
func (a Algorithm) String() string {
	switch a {
	case AlgorithmSHA1:
		return "SHA1"
	case AlgorithmSHA256:
		return "SHA256"
	case AlgorithmSHA512:
		return "SHA512"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether a is one of the supported algorithms.
func (a Algorithm) Valid() bool {
	return a == AlgorithmSHA1 || a == AlgorithmSHA256 || a == AlgorithmSHA512
}

// ParseAlgorithm maps a wire name to an Algorithm. Matching is case-sensitive.
func ParseAlgorithm(s string) (Algorithm, bool) {
	switch s {
	case "SHA1":
		return AlgorithmSHA1, true
	case "SHA256":
		return AlgorithmSHA256, true
	case "SHA512":
		return AlgorithmSHA512, true
	default:
		return 0, false
	}
}

func (a Algorithm) hash() func() hash.Hash {
	var alg libotp.Algorithm
	switch a {
	case AlgorithmSHA256:
		alg = libotp.AlgorithmSHA256
	case AlgorithmSHA512:
		alg = libotp.AlgorithmSHA512
	default:
		alg = libotp.AlgorithmSHA1
	}

	return alg.Hash
}

// Digits is the length of a generated code.
type Digits int

const (
	// DigitsSix produces six-digit codes, the default.
	DigitsSix Digits = 6
	// DigitsSeven produces seven-digit codes.
	DigitsSeven Digits = 7
	// DigitsEight produces eight-digit codes.
	DigitsEight Digits = 8
)

// Value returns the number of characters in a code.
func (d Digits) Value() int {
	return int(d)
}

// String returns the decimal form used in the digits query parameter.
func (d Digits) String() string {
	return strconv.Itoa(int(d))
}

// Valid reports whether d is one of the supported code lengths.
func (d Digits) Valid() bool {
	return d == DigitsSix || d == DigitsSeven || d == DigitsEight
}

// DigitsFromInt converts n into Digits if it is a supported length.
func DigitsFromInt(n int) (Digits, bool) {
	d := Digits(n)
	if !d.Valid() {
		return 0, false
	}

	return d, true
}

// format zero-pads code to exactly d characters.
func (d Digits) format(code uint32) string {
	return libotp.Digits(d).Format(int32(code)) //nolint:gosec // code < 10^8
}
