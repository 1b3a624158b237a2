package validator

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generateInput struct {
	Label     string `validate:"omitempty,max=256,otplabel"`
	Secret    string `validate:"required,otpsecret"`
	Algorithm string `validate:"omitempty,oneof=SHA1 SHA256 SHA512"`
	Digits    int    `validate:"omitempty,oneof=6 7 8"`
	PeriodSec int    `validate:"omitempty,gt=0"`
}

func TestV10Validator_Validate(t *testing.T) {
	v, err := NewV10Validator()
	require.NoError(t, err)

	var _ Validator = v

	tests := []struct {
		name    string
		input   generateInput
		wantErr map[string]string
	}{
		{
			name:  "Valid",
			input: generateInput{Label: "ACME john", Secret: "JBSW Y3DP", Algorithm: "SHA256", Digits: 8, PeriodSec: 30},
		},
		{
			name:  "OnlySecret",
			input: generateInput{Secret: "s"},
		},
		{
			name:    "MissingSecret",
			input:   generateInput{},
			wantErr: map[string]string{"secret": "Secret is a required field"},
		},
		{
			name:    "BlankSecret",
			input:   generateInput{Secret: " %20 "},
			wantErr: map[string]string{"secret": "Secret must contain at least one non-space character"},
		},
		{
			name:    "LabelWithColon",
			input:   generateInput{Secret: "s", Label: "ACME:john"},
			wantErr: map[string]string{"label": "Label must not contain ':'"},
		},
		{
			name:  "BadEnums",
			input: generateInput{Secret: "s", Algorithm: "MD5", Digits: 9, PeriodSec: -1},
			wantErr: map[string]string{
				"algorithm":  "Algorithm must be one of [SHA1 SHA256 SHA512]",
				"digits":     "Digits must be one of [6 7 8]",
				"period_sec": "PeriodSec must be greater than 0",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.input)

			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			var verr V10ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantErr, verr.Values())

			var decoded map[string]string
			require.NoError(t, json.Unmarshal([]byte(verr.Error()), &decoded))
			assert.Equal(t, tt.wantErr, decoded)
		})
	}
}

func TestV10ValidationError_Empty(t *testing.T) {
	assert.Equal(t, "validation error", V10ValidationError{}.Error())
}
