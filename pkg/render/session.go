package render

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// SubmitFunc receives the collected value map once every required field has
// a present value. The session does not reset after a submit; the caller
// decides whether to clear or retry.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Session accumulates the submission value map for one rendered form. It is
// ephemeral: create one per render, discard after the submit callback fires.
// Later writes to the same field simply overwrite earlier ones.
type Session struct {
	form     schema.Form
	values   map[string]Value
	onSubmit SubmitFunc
}

// NewSession binds a form to a submit callback.
func NewSession(form schema.Form, onSubmit SubmitFunc) *Session {
	return &Session{
		form:     form.Clone(),
		values:   make(map[string]Value),
		onSubmit: onSubmit,
	}
}

// Form returns the schema the session renders.
func (s *Session) Form() schema.Form {
	return s.form.Clone()
}

// Set records the value for a field id. Last write wins.
func (s *Session) Set(id string, value Value) {
	if value == nil {
		delete(s.values, id)
		return
	}
	s.values[id] = value
}

// Value returns the current value for a field id.
func (s *Session) Value(id string) (Value, bool) {
	v, ok := s.values[id]
	return v, ok
}

// Values flattens the current state into the id-keyed map submitted to
// domain endpoints.
func (s *Session) Values() map[string]any {
	out := make(map[string]any, len(s.values))
	for id, value := range s.values {
		out[id] = value.Interface()
	}
	return out
}

// Missing returns the required fields whose value is currently absent or
// empty, in display order.
func (s *Session) Missing() []schema.Field {
	var missing []schema.Field
	for _, field := range s.form.Fields {
		if !field.Required {
			continue
		}
		value, ok := s.values[field.ID]
		if !ok || value.Empty() {
			missing = append(missing, field)
		}
	}
	return missing
}

// Submit runs required-field gating and, only when it passes, invokes the
// submit callback exactly once with the flattened value map. A gating
// failure returns a MissingFieldsError carrying the labels of the absent
// fields and leaves the callback untouched. Session state survives either
// outcome.
func (s *Session) Submit(ctx context.Context) error {
	if missing := s.Missing(); len(missing) > 0 {
		err := &MissingFieldsError{}
		for _, field := range missing {
			err.IDs = append(err.IDs, field.ID)
			err.Labels = append(err.Labels, field.DisplayLabel())
		}
		return err
	}
	if s.onSubmit == nil {
		return nil
	}
	if err := s.onSubmit(ctx, s.Values()); err != nil {
		return fmt.Errorf("render: submit: %w", err)
	}
	return nil
}

// MissingFieldsError blocks submission while required fields are absent. It
// reports the full list so hosts can surface every missing label at once
// instead of stopping at the first.
type MissingFieldsError struct {
	IDs    []string
	Labels []string
}

func (e *MissingFieldsError) Error() string {
	return "render: required fields missing: " + strings.Join(e.Labels, ", ")
}
