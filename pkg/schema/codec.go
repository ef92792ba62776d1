package schema

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Marshal serializes a form into its canonical JSON wire shape. The output
// round-trips losslessly through Parse.
func Marshal(form Form) ([]byte, error) {
	payload, err := json.Marshal(form)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return payload, nil
}

// MarshalIndent is Marshal with indented output, used when schemas are
// written to files for hand editing.
func MarshalIndent(form Form) ([]byte, error) {
	payload, err := json.MarshalIndent(form, "", "  ")
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return payload, nil
}

// Parse decodes a serialized form. Any decode or invariant failure returns a
// zero Form and a ParseError; a partially decoded form is never returned.
func Parse(payload []byte) (Form, error) {
	var form Form
	if err := json.Unmarshal(payload, &form); err != nil {
		return Form{}, &ParseError{Err: err}
	}
	if err := form.Validate(); err != nil {
		return Form{}, &ParseError{Err: err}
	}
	return form, nil
}

// ParseYAML decodes the same document shape from YAML, for schemas authored
// as files rather than through the builder.
func ParseYAML(payload []byte) (Form, error) {
	var form Form
	if err := yaml.Unmarshal(payload, &form); err != nil {
		return Form{}, &ParseError{Err: err}
	}
	if err := form.Validate(); err != nil {
		return Form{}, &ParseError{Err: err}
	}
	return form, nil
}
