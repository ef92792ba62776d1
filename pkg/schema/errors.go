package schema

import "fmt"

// DuplicateIDError reports a field id that collides with another field in
// the same form.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("schema: duplicate field id %q", e.ID)
}

// MissingOptionsError reports a choice field with an empty option list.
type MissingOptionsError struct {
	ID string
}

func (e *MissingOptionsError) Error() string {
	return fmt.Sprintf("schema: choice field %q requires at least one option", e.ID)
}

// FieldError reports an invalid value on a single descriptor attribute.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("schema: field %q: %s", e.Field, e.Message)
}

// ParseError reports a serialized schema that could not be decoded. Parsing
// fails closed: callers receive a zero Form alongside this error and must
// treat the schema as unavailable rather than render a partial form.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("schema: parse serialized form: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
