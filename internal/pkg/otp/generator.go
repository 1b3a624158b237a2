package otp

import (
	"net/url"
	"strconv"
	"strings"
)

// GenerateURI serializes spec into its canonical provisioning URI:
//
//	otpauth://totp/<label>/?digits=<d>&algorithm=<A>&period=<p>&secret=<s>[&issuer=<i>]
//
// Parameter order is fixed. Any run of trailing slashes in the label collapses
// to the single slash that ends the path.
func GenerateURI(spec Spec) string {
	var b strings.Builder

	b.WriteString(uriScheme)
	b.WriteString("://")
	b.WriteString(uriHost)
	b.WriteByte('/')
	b.WriteString(url.PathEscape(strings.TrimRight(spec.label, "/")))
	b.WriteString("/?")

	writeParam(&b, paramDigits, spec.effectiveDigits().String(), false)
	writeParam(&b, paramAlgorithm, spec.algorithm.String(), true)
	writeParam(&b, paramPeriod, strconv.Itoa(spec.effectivePeriod()), true)
	writeParam(&b, paramSecret, spec.secret, true)
	if spec.hasIssuer {
		writeParam(&b, paramIssuer, spec.issuer, true)
	}

	return b.String()
}

func writeParam(b *strings.Builder, key, value string, sep bool) {
	if sep {
		b.WriteByte('&')
	}
	b.WriteString(key)
	b.WriteByte('=')
	b.WriteString(url.QueryEscape(value))
}
