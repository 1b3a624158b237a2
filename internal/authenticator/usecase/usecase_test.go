package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/authenticator/internal/pkg/clock"
	"github.com/shandysiswandi/authenticator/internal/pkg/config"
	"github.com/shandysiswandi/authenticator/internal/pkg/goerror"
	"github.com/shandysiswandi/authenticator/internal/pkg/goroutine"
	"github.com/shandysiswandi/authenticator/internal/pkg/instrument"
	"github.com/shandysiswandi/authenticator/internal/pkg/otp"
	"github.com/shandysiswandi/authenticator/internal/pkg/uid"
	"github.com/shandysiswandi/authenticator/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	uriSHA256 = "otpauth://totp/ACME%20Co:john?secret=someRandomSecret&issuer=ACME&algorithm=SHA256&digits=8&period=20"
	uriSHA1   = "otpauth://totp/thisisthelabel?secret=thisisthesecret"
)

var testNow = time.UnixMilli(1673941666206).UTC()

type fixture struct {
	uc    *Usecase
	clock *clock.Fixed
	gm    *goroutine.Manager
}

func newFixture(t *testing.T, yaml string, maxStreams int) fixture {
	t.Helper()

	cfg, err := config.NewViperFromBytes("yaml", []byte(yaml))
	require.NoError(t, err)

	v, err := validator.NewV10Validator()
	require.NoError(t, err)

	clk := clock.NewFixed(testNow)
	gm := goroutine.NewManager(maxStreams)

	uc := NewAuthenticator(Dependency{
		Config:       cfg,
		Clock:        clk,
		Validator:    v,
		OTP:          otp.NewTOTP(),
		Instrument:   instrument.NewNoop(),
		Goroutine:    gm,
		UUID:         uid.Static("stream-1"),
		TickInterval: 5 * time.Millisecond,
	})

	return fixture{uc: uc, clock: clk, gm: gm}
}

func requireFields(t *testing.T, err error) map[string]string {
	t.Helper()

	var gerr *goerror.Error
	require.True(t, errors.As(err, &gerr), "want goerror, got %v", err)
	assert.Equal(t, goerror.CodeInvalidInput, gerr.Code())

	var verr validator.V10ValidationError
	if errors.As(err, &verr) {
		return verr.Values()
	}
	return gerr.Fields()
}

func TestUsecase_Inspect(t *testing.T) {
	f := newFixture(t, "", 4)

	t.Run("Success", func(t *testing.T) {
		out, err := f.uc.Inspect(context.Background(), InspectInput{URI: uriSHA256})

		require.NoError(t, err)
		assert.Equal(t, "ACME Cojohn", out.Account.Label)
		require.NotNil(t, out.Account.Issuer)
		assert.Equal(t, "ACME", *out.Account.Issuer)
		assert.Equal(t, "SHA256", out.Account.Algorithm)
		assert.Equal(t, 8, out.Account.Digits)
		assert.Equal(t, 20, out.Account.Period)
		assert.Equal(t, "so************et", out.Account.SecretHint)
		assert.Equal(t, "otpauth://totp/ACME%20Cojohn/?digits=8&algorithm=SHA256&period=20&secret=someRandomSecret&issuer=ACME", out.URI)
	})

	t.Run("Defaults", func(t *testing.T) {
		out, err := f.uc.Inspect(context.Background(), InspectInput{URI: uriSHA1})

		require.NoError(t, err)
		assert.Nil(t, out.Account.Issuer)
		assert.Equal(t, "SHA1", out.Account.Algorithm)
		assert.Equal(t, 6, out.Account.Digits)
		assert.Equal(t, 30, out.Account.Period)
	})

	t.Run("Malformed", func(t *testing.T) {
		out, err := f.uc.Inspect(context.Background(), InspectInput{URI: "otpauth://hotp/label?secret=s"})

		assert.Nil(t, out)
		assert.Equal(t, map[string]string{
			"uri":  `otp uri has unsupported otp type "hotp", expected "totp"`,
			"kind": "invalid_host",
		}, requireFields(t, err))
	})

	t.Run("Required", func(t *testing.T) {
		_, err := f.uc.Inspect(context.Background(), InspectInput{})

		assert.Equal(t, map[string]string{"uri": "URI is a required field"}, requireFields(t, err))
	})
}

func TestUsecase_Code(t *testing.T) {
	f := newFixture(t, "", 4)

	t.Run("Now", func(t *testing.T) {
		out, err := f.uc.Code(context.Background(), CodeInput{URI: uriSHA256})

		require.NoError(t, err)
		assert.Equal(t, "91687215", out.Current.Code)
		assert.Equal(t, 14, out.Current.Remaining)
		assert.Equal(t, 20, out.Current.Period)
		assert.Equal(t, testNow, out.Current.At)
		assert.Equal(t, time.Unix(1673941660, 0).UTC(), out.Current.ValidFrom)
		assert.Equal(t, time.Unix(1673941680, 0).UTC(), out.Current.ValidUntil)

		assert.Equal(t, "67067932", out.Next.Code)
		assert.Equal(t, 20, out.Next.Remaining)
		assert.Equal(t, out.Current.ValidUntil, out.Next.ValidFrom)
	})

	t.Run("ExplicitInstant", func(t *testing.T) {
		out, err := f.uc.Code(context.Background(), CodeInput{URI: uriSHA1, At: time.Unix(1673941686, 0)})

		require.NoError(t, err)
		assert.Equal(t, "850092", out.Current.Code)
		assert.Equal(t, 24, out.Current.Remaining)
	})

	t.Run("FollowsClock", func(t *testing.T) {
		f.clock.Set(time.Unix(1673941666, 0))
		t.Cleanup(func() { f.clock.Set(testNow) })

		out, err := f.uc.Code(context.Background(), CodeInput{URI: uriSHA1})

		require.NoError(t, err)
		assert.Equal(t, "700921", out.Current.Code)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := f.uc.Code(context.Background(), CodeInput{URI: uriSHA1 + "&digits=300"})

		assert.Equal(t, map[string]string{
			"uri":  `otp uri has invalid digit count "300"`,
			"kind": "invalid_digit_count",
		}, requireFields(t, err))
	})
}

func TestUsecase_Generate(t *testing.T) {
	f := newFixture(t, "", 4)
	issuer := "the issuer"

	t.Run("AllFields", func(t *testing.T) {
		out, err := f.uc.Generate(context.Background(), GenerateInput{
			Label:     " thisisalabel ",
			Secret:    "somerandomsecret",
			Issuer:    &issuer,
			Algorithm: "SHA256",
			Digits:    8,
			Period:    24,
		})

		require.NoError(t, err)
		assert.Equal(t, "otpauth://totp/thisisalabel/?digits=8&algorithm=SHA256&period=24&secret=somerandomsecret&issuer=the+issuer", out.URI)
		assert.Equal(t, "the issuer", *out.Account.Issuer)
	})

	t.Run("Defaults", func(t *testing.T) {
		out, err := f.uc.Generate(context.Background(), GenerateInput{Secret: "SECRET"})

		require.NoError(t, err)
		assert.Equal(t, "otpauth://totp/Unknown/?digits=6&algorithm=SHA1&period=30&secret=SECRET", out.URI)
	})

	t.Run("RoundTripsThroughInspect", func(t *testing.T) {
		gen, err := f.uc.Generate(context.Background(), GenerateInput{Label: "a/b?c", Secret: "AB CD", Algorithm: "SHA512", Digits: 7, Period: 45})
		require.NoError(t, err)

		ins, err := f.uc.Inspect(context.Background(), InspectInput{URI: gen.URI})

		require.NoError(t, err)
		assert.Equal(t, gen.Account, ins.Account)
		assert.Equal(t, gen.URI, ins.URI)
	})

	t.Run("Validation", func(t *testing.T) {
		_, err := f.uc.Generate(context.Background(), GenerateInput{
			Label:     "acme:john",
			Secret:    "%20 ",
			Algorithm: "sha1",
			Digits:    5,
			Period:    -1,
		})

		fields := requireFields(t, err)
		assert.Len(t, fields, 5)
		assert.Contains(t, fields, "label")
		assert.Contains(t, fields, "secret")
		assert.Contains(t, fields, "algorithm")
		assert.Contains(t, fields, "digits")
		assert.Contains(t, fields, "period")
	})
}

func TestUsecase_StreamCodes(t *testing.T) {
	t.Run("EmitsAndRotates", func(t *testing.T) {
		f := newFixture(t, "", 4)
		ctx, cancel := context.WithCancel(context.Background())

		stream, err := f.uc.StreamCodes(ctx, StreamInput{URI: uriSHA256})
		require.NoError(t, err)

		first := <-stream
		assert.Equal(t, "stream-1", first.StreamID)
		assert.Equal(t, "91687215", first.Tick.Code)
		assert.Equal(t, 14, first.Tick.Remaining)
		assert.False(t, first.Rotated)
		assert.Equal(t, "ACME Cojohn", first.Account.Label)

		f.clock.Set(time.Unix(1673941680, 0))

		var rotated StreamEvent
		require.Eventually(t, func() bool {
			rotated = <-stream
			return rotated.Tick.Code != first.Tick.Code
		}, 2*time.Second, time.Millisecond)
		assert.Equal(t, "67067932", rotated.Tick.Code)
		assert.True(t, rotated.Rotated)
		assert.Equal(t, 20, rotated.Tick.Remaining)
		assert.Equal(t, int64(1), f.uc.ActiveStreams())

		cancel()
		for range stream {
		}

		assert.Equal(t, int64(0), f.uc.ActiveStreams())
		assert.NoError(t, f.gm.Wait())
	})

	t.Run("StopsAtMaxAge", func(t *testing.T) {
		f := newFixture(t, "modules:\n  authenticator:\n    stream_max_seconds: 1\n", 4)

		stream, err := f.uc.StreamCodes(context.Background(), StreamInput{URI: uriSHA1})
		require.NoError(t, err)

		closed := make(chan struct{})
		go func() {
			for range stream {
			}
			close(closed)
		}()

		select {
		case <-closed:
		case <-time.After(5 * time.Second):
			t.Fatal("stream was not closed after its maximum age")
		}
	})

	t.Run("LimitReached", func(t *testing.T) {
		f := newFixture(t, "", 1)
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		first, err := f.uc.StreamCodes(ctx, StreamInput{URI: uriSHA1})
		require.NoError(t, err)
		<-first

		_, err = f.uc.StreamCodes(ctx, StreamInput{URI: uriSHA1})

		var gerr *goerror.Error
		require.True(t, errors.As(err, &gerr))
		assert.Equal(t, goerror.CodeTooManyRequest, gerr.Code())
	})

	t.Run("ClosedWhenCallerAlreadyGone", func(t *testing.T) {
		f := newFixture(t, "", 1)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		stream, err := f.uc.StreamCodes(ctx, StreamInput{URI: uriSHA1})
		require.NoError(t, err)

		closed := make(chan struct{})
		go func() {
			for range stream {
			}
			close(closed)
		}()

		select {
		case <-closed:
		case <-time.After(5 * time.Second):
			t.Fatal("stream was not closed for a cancelled caller")
		}
		assert.NoError(t, f.gm.Wait())
		assert.Equal(t, int64(0), f.uc.ActiveStreams())
	})

	t.Run("MalformedBeforeStreaming", func(t *testing.T) {
		f := newFixture(t, "", 1)

		stream, err := f.uc.StreamCodes(context.Background(), StreamInput{URI: "otpauth://totp/label"})

		assert.Nil(t, stream)
		assert.Equal(t, "missing_secret", requireFields(t, err)["kind"])
		assert.Equal(t, 0, f.gm.Running())
	})
}
