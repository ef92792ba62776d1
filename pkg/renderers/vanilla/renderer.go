package vanilla

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/flosch/pongo2/v6"
	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

const formTemplatePath = "templates/form.tmpl"

// Option configures the renderer before construction.
type Option func(*config)

type config struct {
	templateFS fs.FS
	endpoint   string
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithEndpoint sets the form action attribute emitted in the chrome.
func WithEndpoint(endpoint string) Option {
	return func(cfg *config) {
		cfg.endpoint = strings.TrimSpace(endpoint)
	}
}

// Renderer emits standalone HTML for a form schema: one control per field in
// display order wrapped in a pongo2 chrome template.
type Renderer struct {
	template  *pongo2.Template
	sanitizer *bluemonday.Policy
	endpoint  string
}

// New constructs the vanilla renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	raw, err := fs.ReadFile(cfg.templateFS, formTemplatePath)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: read chrome template: %w", err)
	}
	template, err := pongo2.FromBytes(raw)
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: compile chrome template: %w", err)
	}

	return &Renderer{
		template:  template,
		sanitizer: bluemonday.StrictPolicy(),
		endpoint:  cfg.endpoint,
	}, nil
}

func (r *Renderer) Name() string {
	return "vanilla"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render emits the full form markup. Field text that may originate from an
// external schema store is stripped of markup before escaping.
func (r *Renderer) Render(ctx context.Context, form schema.Form, options render.Options) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var controls strings.Builder
	for _, field := range form.Fields {
		controls.WriteString(r.renderField(field, options))
	}

	out, err := r.template.Execute(pongo2.Context{
		"title":         r.sanitizer.Sanitize(form.Title),
		"endpoint":      r.endpoint,
		"hidden_fields": render.SortedHidden(options.Hidden),
		"fields":        controls.String(),
	})
	if err != nil {
		return nil, fmt.Errorf("vanilla renderer: execute chrome template: %w", err)
	}
	return []byte(out), nil
}
