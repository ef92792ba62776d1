package render

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// Renderer converts a form schema into a byte representation: HTML markup,
// a completed terminal session's value payload, and so on.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, form schema.Form, options Options) ([]byte, error)
}

// Options carries per-render overrides: prefilled values, server-reported
// field errors, and hidden fields merged into the emitted form.
type Options struct {
	// Values prefills controls by field id.
	Values map[string]Value
	// Errors attaches messages to fields by id for display next to the
	// control.
	Errors map[string][]string
	// Hidden fields are emitted alongside the visible schema.
	Hidden map[string]string
}
