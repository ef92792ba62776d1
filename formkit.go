package formkit

import (
	"context"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/renderers/vanilla"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Version is the module release tag reported by the CLI.
const Version = "0.1.0"

// Form aliases schema.Form so callers assembling schemas by hand do not have
// to import the schema package for the common case.
type Form = schema.Form

// Field aliases schema.Field.
type Field = schema.Field

// FieldKind aliases schema.FieldKind.
type FieldKind = schema.FieldKind

// RenderOptions describes per-request overrides that renderers can use to
// prefill values or surface server-side validation errors.
type RenderOptions = render.Options

// Parse decodes a JSON schema blob. It fails closed: on any error the
// returned form is the zero value and must not be rendered.
func Parse(blob []byte) (schema.Form, error) {
	return schema.Parse(blob)
}

// RenderHTML parses a schema blob and renders it with the vanilla HTML
// renderer. It is the simplest entry point for callers that just want markup.
func RenderHTML(ctx context.Context, blob []byte, options ...vanilla.Option) ([]byte, error) {
	form, err := schema.Parse(blob)
	if err != nil {
		return nil, err
	}
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, render.Options{})
}

// RenderForm renders an already-parsed form with the vanilla HTML renderer.
func RenderForm(ctx context.Context, form schema.Form, opts render.Options, options ...vanilla.Option) ([]byte, error) {
	renderer, err := vanilla.New(options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, form, opts)
}
