package otp

import (
	"encoding/base32"
	"testing"
	"time"

	libotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Generated URIs must stay readable by a standard otpauth implementation.
func TestGenerateURI_ReadableByPquerna(t *testing.T) {
	spec := mustSpec(t, SpecParams{
		Label:     "thisisalabel",
		Secret:    "somerandomsecret",
		Issuer:    func(s string) *string { return &s }("theissuer"),
		Algorithm: AlgorithmSHA256,
		Digits:    DigitsEight,
		Period:    24,
	})

	key, err := libotp.NewKeyFromURL(GenerateURI(spec))

	require.NoError(t, err)
	assert.Equal(t, "totp", key.Type())
	assert.Equal(t, "somerandomsecret", key.Secret())
	assert.Equal(t, "theissuer", key.Issuer())
	assert.Equal(t, uint64(24), key.Period())
	assert.Equal(t, libotp.DigitsEight, key.Digits())
	assert.Equal(t, libotp.AlgorithmSHA256, key.Algorithm())
}

// The raw secret bytes, base32-encoded for a standard implementation, must
// produce the same codes.
func TestCalculateCode_MatchesPquernaOnEncodedSecret(t *testing.T) {
	algs := map[Algorithm]libotp.Algorithm{
		AlgorithmSHA1:   libotp.AlgorithmSHA1,
		AlgorithmSHA256: libotp.AlgorithmSHA256,
		AlgorithmSHA512: libotp.AlgorithmSHA512,
	}
	instants := []time.Time{
		time.Unix(59, 0),
		time.UnixMilli(1673941666206),
		time.Unix(2000000000, 0),
	}

	for alg, libAlg := range algs {
		for _, digits := range []Digits{DigitsSix, DigitsSeven, DigitsEight} {
			spec := mustSpec(t, SpecParams{Secret: "someRandomSecret", Algorithm: alg, Digits: digits, Period: 20})
			encoded := base32.StdEncoding.EncodeToString([]byte(spec.Secret()))

			for _, at := range instants {
				want, err := totp.GenerateCodeCustom(encoded, at, totp.ValidateOpts{
					Period:    20,
					Digits:    libotp.Digits(digits),
					Algorithm: libAlg,
				})
				require.NoError(t, err)

				assert.Equal(t, want, CalculateCode(spec, at), "%s/%d/%d", alg, digits, at.Unix())
			}
		}
	}
}
