package models

import "github.com/go-playground/validator/v10"

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a record against its struct tags. LLM output is untrusted
// input, so every record crossing that boundary goes through here before it
// reaches the result store.
func Validate(v any) error {
	return validate.Struct(v)
}
