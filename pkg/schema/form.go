package schema

// Form is an ordered collection of field descriptors plus a title. It is the
// unit of storage and transport: the builder emits it, the renderers consume
// it, and the store persists its serialized representation.
type Form struct {
	Title  string  `json:"title" yaml:"title"`
	Fields []Field `json:"fields" yaml:"fields"`
}

// Field looks up a descriptor by id. When duplicate ids slipped into a
// stored schema the first occurrence wins.
func (f Form) Field(id string) (Field, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

// Clone returns a deep copy of the form.
func (f Form) Clone() Form {
	out := Form{Title: f.Title}
	if len(f.Fields) > 0 {
		out.Fields = make([]Field, len(f.Fields))
		for i, field := range f.Fields {
			out.Fields[i] = field.Clone()
		}
	}
	return out
}

// Validate checks the form invariants: every field valid on its own terms
// and field ids unique across the form.
func (f Form) Validate() error {
	seen := make(map[string]struct{}, len(f.Fields))
	for _, field := range f.Fields {
		if err := field.Validate(); err != nil {
			return err
		}
		if _, dup := seen[field.ID]; dup {
			return &DuplicateIDError{ID: field.ID}
		}
		seen[field.ID] = struct{}{}
	}
	return nil
}

// RequiredFields returns the descriptors flagged as required, in display
// order.
func (f Form) RequiredFields() []Field {
	var out []Field
	for _, field := range f.Fields {
		if field.Required {
			out = append(out, field)
		}
	}
	return out
}
