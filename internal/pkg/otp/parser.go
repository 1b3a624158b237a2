package otp

import (
	"net/url"
	"strconv"
	"strings"
)

const (
	uriScheme = "otpauth"
	uriHost   = "totp"

	paramSecret    = "secret"
	paramIssuer    = "issuer"
	paramAlgorithm = "algorithm"
	paramDigits    = "digits"
	paramPeriod    = "period"
)

// ParseURI validates an otpauth://totp/ provisioning URI and returns its Spec.
//
// Checks run in a fixed order (scheme, host, label, secret, issuer, algorithm,
// digits, period) and the first failure is returned as a *MalformedURIError.
// Optional parameters default to SHA1, 6 digits, a 30 second period and no
// issuer. When a parameter is repeated the first occurrence wins.
func ParseURI(raw string) (Spec, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return Spec{}, newMalformed(KindInvalidSyntax, raw)
	}

	if u.Scheme == "" {
		return Spec{}, newMalformed(KindMissingScheme, "")
	}
	// url.Parse lowercases the scheme, the comparison must see the original.
	if scheme := raw[:len(u.Scheme)]; scheme != uriScheme {
		return Spec{}, newMalformed(KindInvalidScheme, scheme)
	}

	host := u.Hostname()
	if host == "" {
		return Spec{}, newMalformed(KindMissingHost, "")
	}
	if host != uriHost {
		return Spec{}, newMalformed(KindInvalidHost, host)
	}

	query := parseQuery(u.RawQuery)

	secret, ok := lookup(query, paramSecret)
	if !ok {
		return Spec{}, newMalformed(KindMissingSecret, "")
	}
	secret = normalizeSecret(secret)
	if secret == "" {
		return Spec{}, newMalformed(KindMissingSecret, "")
	}

	spec := Spec{
		label:     parseLabel(u.Path),
		secret:    secret,
		algorithm: AlgorithmSHA1,
		digits:    DigitsSix,
		period:    DefaultPeriod,
	}

	if issuer, ok := lookup(query, paramIssuer); ok {
		spec.issuer, spec.hasIssuer = issuer, true
	}

	if v, ok := lookup(query, paramAlgorithm); ok {
		alg, valid := ParseAlgorithm(v)
		if !valid {
			return Spec{}, newMalformed(KindInvalidAlgorithm, v)
		}
		spec.algorithm = alg
	}

	if v, ok := lookup(query, paramDigits); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return Spec{}, newMalformed(KindInvalidDigitCount, v)
		}
		digits, valid := DigitsFromInt(n)
		if !valid {
			return Spec{}, newMalformed(KindInvalidDigitCount, v)
		}
		spec.digits = digits
	}

	if v, ok := lookup(query, paramPeriod); ok {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return Spec{}, newMalformed(KindInvalidValidity, v)
		}
		spec.period = n
	}

	return spec, nil
}

// parseLabel flattens "issuer:account" by dropping every colon, then strips
// trailing slashes.
func parseLabel(path string) string {
	label := strings.TrimPrefix(path, "/")
	return normalizeLabel(strings.ReplaceAll(label, ":", ""))
}

// parseQuery splits a raw query on '&' only, so values may contain ';'.
// Pairs whose key or value has a malformed escape are skipped, and the first
// occurrence of a key wins.
func parseQuery(raw string) map[string]string {
	out := make(map[string]string)
	for pair := range strings.SplitSeq(raw, "&") {
		if pair == "" {
			continue
		}
		k, v, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(k)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}
		if _, seen := out[key]; !seen {
			out[key] = value
		}
	}

	return out
}

func lookup(q map[string]string, key string) (string, bool) {
	v, ok := q[key]
	return v, ok
}
