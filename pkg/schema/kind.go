package schema

import (
	"fmt"
	"strings"
)

// FieldKind is the enumeration of input kinds a field descriptor can take.
// The string values double as the wire representation in serialized schemas.
type FieldKind string

const (
	KindText     FieldKind = "text"
	KindEmail    FieldKind = "email"
	KindNumber   FieldKind = "number"
	KindTextarea FieldKind = "textarea"
	KindSelect   FieldKind = "select"
	KindRadio    FieldKind = "radio"
	KindCheckbox FieldKind = "checkbox"
	KindDate     FieldKind = "date"
	KindTime     FieldKind = "time"
	KindDatetime FieldKind = "datetime"
	KindFile     FieldKind = "file"
	KindURL      FieldKind = "url"
	KindTel      FieldKind = "tel"
	KindColor    FieldKind = "color"
)

var knownKinds = map[FieldKind]struct{}{
	KindText:     {},
	KindEmail:    {},
	KindNumber:   {},
	KindTextarea: {},
	KindSelect:   {},
	KindRadio:    {},
	KindCheckbox: {},
	KindDate:     {},
	KindTime:     {},
	KindDatetime: {},
	KindFile:     {},
	KindURL:      {},
	KindTel:      {},
	KindColor:    {},
}

// Kinds returns the full enumeration in display order.
func Kinds() []FieldKind {
	return []FieldKind{
		KindText, KindEmail, KindNumber, KindTextarea,
		KindSelect, KindRadio, KindCheckbox,
		KindDate, KindTime, KindDatetime,
		KindFile, KindURL, KindTel, KindColor,
	}
}

// Known reports whether the kind belongs to the supported enumeration.
func (k FieldKind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

// IsChoice reports whether the kind selects from a fixed option list.
func (k FieldKind) IsChoice() bool {
	return k == KindSelect || k == KindRadio
}

// ParseKind normalises a raw string into a FieldKind. Unknown values return
// an UnknownKindError so callers can decide between rejecting and rendering
// a placeholder.
func ParseKind(raw string) (FieldKind, error) {
	kind := FieldKind(strings.ToLower(strings.TrimSpace(raw)))
	if !kind.Known() {
		return kind, &UnknownKindError{Kind: string(kind)}
	}
	return kind, nil
}

// UnknownKindError reports a field kind outside the supported enumeration.
type UnknownKindError struct {
	Kind string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("schema: unknown field kind %q", e.Kind)
}
