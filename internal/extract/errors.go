package extract

import "errors"

// ErrMalformedJSON is returned when the language model reply cannot be read
// as the requested JSON object, even after repair.
var ErrMalformedJSON = errors.New("language model reply is not valid JSON")

// ValidationError reports a required field the extraction did not produce or
// produced in an unusable form.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return "extracted " + e.Field + " is missing or invalid"
}
