package render

import "strings"

// Value is the tagged union of things a rendered control can produce. Each
// concrete type defines its own presence rule, which is what required-field
// gating checks at submit time. Value shape beyond presence is not validated
// here: a number control that produced NaN-adjacent input is the control's
// concern, not the session's.
type Value interface {
	// Empty reports whether the value counts as absent for required-field
	// checking.
	Empty() bool
	// Interface returns the plain Go value placed into submission payloads.
	Interface() any
}

// StringValue carries text-like input: text, email, textarea, select, radio,
// date, time, datetime, url, tel, color.
type StringValue string

func (v StringValue) Empty() bool {
	return strings.TrimSpace(string(v)) == ""
}

func (v StringValue) Interface() any {
	return string(v)
}

// NumberValue carries numeric input. A typed number is always present; an
// untouched number control simply never sets a value.
type NumberValue float64

func (v NumberValue) Empty() bool {
	return false
}

func (v NumberValue) Interface() any {
	return float64(v)
}

// BoolValue carries a toggle. An unchecked required toggle counts as absent,
// matching the presence rule for boolean fields.
type BoolValue bool

func (v BoolValue) Empty() bool {
	return !bool(v)
}

func (v BoolValue) Interface() any {
	return bool(v)
}

// FileValue references a selected file by name; contents travel out of band.
type FileValue struct {
	Name        string `json:"name"`
	Size        int64  `json:"size,omitempty"`
	ContentType string `json:"contentType,omitempty"`
}

func (v FileValue) Empty() bool {
	return strings.TrimSpace(v.Name) == ""
}

func (v FileValue) Interface() any {
	return v
}
