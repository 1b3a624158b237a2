package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/authenticator/internal/pkg/strcase"
)

// secretBlanks are the separators removed from an otpauth secret before use.
var secretBlanks = strings.NewReplacer(" ", "", "%20", "")

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// V10Validator implements Validator using go-playground/validator v10.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// V10ValidationError is a field-to-message map returned when validation fails.
//
// Keys are field names in snake_case to match typical JSON conventions.
type V10ValidationError map[string]string

// Error implements the error interface.
func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// NewV10Validator constructs a V10Validator with English translations and custom rules.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	uni := ut.New(enLang, enLang)
	enTrans, ok := uni.GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, enTrans); err != nil {
		return nil, err
	}

	v10CustomValidation(validate, enTrans)

	return &V10Validator{
		validate:   validate,
		translator: enTrans,
	}, nil
}

// Validate validates a struct and returns a V10ValidationError on failure.
func (v *V10Validator) Validate(data any) error {
	if err := v.validate.Struct(data); err != nil {
		var validateErrs validator.ValidationErrors
		if !errors.As(err, &validateErrs) {
			return err
		}

		errV10 := make(V10ValidationError)
		for _, fe := range validateErrs {
			errV10[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
		}

		return errV10
	}

	return nil
}

//nolint:errcheck,gosec // registration only fails on programmer error
func v10CustomValidation(validate *validator.Validate, enTrans ut.Translator) {
	// otpsecret: a secret that is not empty once spaces and "%20" are removed.
	validate.RegisterValidation("otpsecret", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && secretBlanks.Replace(s) != ""
	})

	// otplabel: a label without the ':' issuer separator, which parsing strips.
	validate.RegisterValidation("otplabel", func(fl validator.FieldLevel) bool {
		s, ok := fl.Field().Interface().(string)
		return ok && !strings.Contains(s, ":")
	})

	registerMessage(validate, enTrans, "otpsecret", "{0} must contain at least one non-space character")
	registerMessage(validate, enTrans, "otplabel", "{0} must not contain ':'")
}

//nolint:errcheck,gosec // registration only fails on programmer error
func registerMessage(validate *validator.Validate, enTrans ut.Translator, tag, text string) {
	validate.RegisterTranslation(tag, enTrans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, false)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, err := ut.T(fe.Tag(), fe.Field())
			if err != nil {
				slog.Warn("warning: error translating", "tag", fe.Tag(), "error", err)
				return fe.Error()
			}
			return t
		},
	)
}
