// Package validator provides a small validation abstraction for request
// structs.
//
// Use cases depend on the Validator interface; V10Validator implements it on
// top of go-playground/validator v10 with English messages and the custom
// "otpsecret" and "otplabel" rules.
package validator

// Validator validates a struct and returns a field-keyed error on failure.
type Validator interface {
	Validate(data any) error
}
