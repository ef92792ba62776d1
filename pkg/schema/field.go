package schema

import (
	"strings"

	"github.com/google/uuid"
)

// Field describes a single form input: its identity, display text, kind, and
// the option list for choice kinds. The struct tags define the wire shape
// persisted schemas must round-trip through.
type Field struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name,omitempty" yaml:"name,omitempty"`
	Kind        FieldKind `json:"type" yaml:"type"`
	Label       string    `json:"label" yaml:"label"`
	Placeholder string    `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Required    bool      `json:"required" yaml:"required"`
	Options     []string  `json:"options,omitempty" yaml:"options,omitempty"`
}

// New constructs a field descriptor for the given kind with a freshly
// generated id, a kind-derived label, and a two-entry default option list
// for choice kinds. Unknown kinds are rejected.
func New(kind FieldKind) (Field, error) {
	if !kind.Known() {
		return Field{}, &UnknownKindError{Kind: string(kind)}
	}
	field := Field{
		ID:    newFieldID(kind),
		Kind:  kind,
		Label: "New " + string(kind) + " field",
	}
	if kind.IsChoice() {
		field.Options = []string{"Option 1", "Option 2"}
	}
	return field, nil
}

func newFieldID(kind FieldKind) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return string(kind) + "-" + suffix
}

// Key returns the identifier values are stored under: the wire alias when
// present, the id otherwise.
func (f Field) Key() string {
	if strings.TrimSpace(f.Name) != "" {
		return f.Name
	}
	return f.ID
}

// DisplayLabel returns the label, falling back to a humanised form of the
// field key when the label is blank.
func (f Field) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return DefaultLabeler(f.Key())
}

// Clone returns a deep copy of the field.
func (f Field) Clone() Field {
	out := f
	if len(f.Options) > 0 {
		out.Options = append([]string(nil), f.Options...)
	}
	return out
}

// Patch describes a partial update to a field descriptor. Nil members leave
// the current value untouched. Patching does not enforce id uniqueness
// against the owning schema; the builder re-checks that before committing.
type Patch struct {
	ID          *string
	Label       *string
	Placeholder *string
	Required    *bool
	Options     []string
}

// Apply returns a copy of the field with the patch applied.
func (f Field) Apply(patch Patch) Field {
	out := f.Clone()
	if patch.ID != nil {
		out.ID = strings.TrimSpace(*patch.ID)
	}
	if patch.Label != nil {
		out.Label = *patch.Label
	}
	if patch.Placeholder != nil {
		out.Placeholder = *patch.Placeholder
	}
	if patch.Required != nil {
		out.Required = *patch.Required
	}
	if patch.Options != nil {
		out.Options = append([]string(nil), patch.Options...)
	}
	return out
}

// Validate checks the descriptor's own invariants: a non-empty id, a known
// kind, and a non-empty option list for choice kinds.
func (f Field) Validate() error {
	if strings.TrimSpace(f.ID) == "" {
		return &FieldError{Field: f.Key(), Message: "id is required"}
	}
	if !f.Kind.Known() {
		return &UnknownKindError{Kind: string(f.Kind)}
	}
	if f.Kind.IsChoice() && len(f.Options) == 0 {
		return &MissingOptionsError{ID: f.ID}
	}
	return nil
}
