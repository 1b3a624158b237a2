package otp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpec(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		spec, err := NewSpec(SpecParams{Secret: "s"})

		require.NoError(t, err)
		assert.Equal(t, DefaultLabel, spec.Label())
		assert.Equal(t, AlgorithmSHA1, spec.Algorithm())
		assert.Equal(t, DigitsSix, spec.Digits())
		assert.Equal(t, DefaultPeriod, spec.Period())
		_, ok := spec.Issuer()
		assert.False(t, ok)
	})

	t.Run("SecretNormalized", func(t *testing.T) {
		spec, err := NewSpec(SpecParams{Secret: " ABCD EFGH%20 "})

		require.NoError(t, err)
		assert.Equal(t, "ABCDEFGH", spec.Secret())
	})

	t.Run("LabelTrailingSlashesStripped", func(t *testing.T) {
		spec, err := NewSpec(SpecParams{Secret: "s", Label: "abc//"})
		require.NoError(t, err)

		again, err := ParseURI(GenerateURI(spec))

		require.NoError(t, err)
		assert.Equal(t, "abc", spec.Label())
		assert.Equal(t, spec, again)
		assert.Equal(t, DefaultLabel, spec.WithLabel("///").Label())
	})

	t.Run("IssuerCopied", func(t *testing.T) {
		issuer := "theissuer"
		spec, err := NewSpec(SpecParams{Secret: "s", Issuer: &issuer})
		require.NoError(t, err)

		issuer = "changed"

		got, ok := spec.Issuer()
		assert.True(t, ok)
		assert.Equal(t, "theissuer", got)
	})

	tests := []struct {
		name       string
		params     SpecParams
		wantKind   Kind
		wantActual string
	}{
		{name: "EmptySecret", params: SpecParams{}, wantKind: KindMissingSecret},
		{name: "BlankSecret", params: SpecParams{Secret: " %20 "}, wantKind: KindMissingSecret},
		{name: "UnknownAlgorithm", params: SpecParams{Secret: "s", Algorithm: Algorithm(9)}, wantKind: KindInvalidAlgorithm, wantActual: "UNKNOWN"},
		{name: "UnsupportedDigits", params: SpecParams{Secret: "s", Digits: Digits(9)}, wantKind: KindInvalidDigitCount, wantActual: "9"},
		{name: "NegativePeriod", params: SpecParams{Secret: "s", Period: -1}, wantKind: KindInvalidValidity, wantActual: "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpec(tt.params)

			var merr *MalformedURIError
			require.ErrorAs(t, err, &merr)
			assert.Equal(t, tt.wantKind, merr.Kind)
			assert.Equal(t, tt.wantActual, merr.Actual)
		})
	}
}

func TestSpec_CopyOnWrite(t *testing.T) {
	spec := mustSpec(t, SpecParams{Secret: "s", Label: "label"})

	withIssuer := spec.WithIssuer("")
	relabeled := spec.WithLabel("")

	_, ok := spec.Issuer()
	assert.False(t, ok)
	_, ok = withIssuer.Issuer()
	assert.True(t, ok)
	assert.NotEqual(t, spec, withIssuer)
	assert.Equal(t, spec, withIssuer.WithoutIssuer())
	assert.Equal(t, "label", spec.Label())
	assert.Equal(t, DefaultLabel, relabeled.Label())
}

func TestSpec_Params(t *testing.T) {
	spec, err := ParseURI("otpauth://totp/label?secret=s&issuer=i&algorithm=SHA512&digits=7&period=45")
	require.NoError(t, err)

	again, err := NewSpec(spec.Params())

	require.NoError(t, err)
	assert.Equal(t, spec, again)
}

func TestAlgorithmAndDigits(t *testing.T) {
	for _, name := range []string{"SHA1", "SHA256", "SHA512"} {
		alg, ok := ParseAlgorithm(name)
		assert.True(t, ok)
		assert.Equal(t, name, alg.String())
	}

	_, ok := ParseAlgorithm("Sha1")
	assert.False(t, ok)

	for _, n := range []int{6, 7, 8} {
		d, ok := DigitsFromInt(n)
		assert.True(t, ok)
		assert.Equal(t, n, d.Value())
	}

	for _, n := range []int{0, 5, 9, 300} {
		_, ok := DigitsFromInt(n)
		assert.False(t, ok)
	}
}
