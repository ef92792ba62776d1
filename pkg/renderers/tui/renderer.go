package tui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Option configures the renderer.
type Option func(*Renderer)

// WithDriver injects a custom prompt driver, used by tests and embedders.
func WithDriver(driver PromptDriver) Option {
	return func(r *Renderer) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// Renderer walks a form schema as a sequence of terminal prompts, collects
// the answers into a render session, and serializes the resulting value map
// as JSON.
type Renderer struct {
	driver PromptDriver
}

// New constructs a TUI renderer with the survey-backed driver by default.
func New(options ...Option) *Renderer {
	r := &Renderer{driver: newSurveyDriver()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	return r
}

func (r *Renderer) Name() string {
	return "tui"
}

func (r *Renderer) ContentType() string {
	return "application/json"
}

// Render prompts for every field in display order and returns the collected
// value map as JSON. Required fields re-prompt until a value is present, so
// gating cannot fail once all prompts complete; the check is still run to
// keep the submit guarantee uniform across renderers.
func (r *Renderer) Render(ctx context.Context, form schema.Form, options render.Options) ([]byte, error) {
	session, err := r.Fill(ctx, form, options)
	if err != nil {
		return nil, err
	}

	if err := session.Submit(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(session.Values())
	if err != nil {
		return nil, fmt.Errorf("tui: serialize values: %w", err)
	}
	return payload, nil
}

// Fill runs the prompt sequence and returns the populated session without
// submitting it, so callers can route the answers to their own sink.
func (r *Renderer) Fill(ctx context.Context, form schema.Form, options render.Options) (*render.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	session := render.NewSession(form, nil)
	for id, value := range options.Values {
		session.Set(id, value)
	}

	for _, field := range form.Fields {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := r.promptField(field, session); err != nil {
			return nil, err
		}
	}
	return session, nil
}

func (r *Renderer) promptField(field schema.Field, session *render.Session) error {
	message := field.DisplayLabel()

	switch field.Kind {
	case schema.KindCheckbox:
		answer, err := r.driver.Confirm(message)
		if err != nil {
			return promptError(field, err)
		}
		session.Set(field.ID, render.BoolValue(answer))

	case schema.KindSelect, schema.KindRadio:
		answer, err := r.driver.Select(message, field.Options, field.Required)
		if err != nil {
			return promptError(field, err)
		}
		if answer != "" {
			session.Set(field.ID, render.StringValue(answer))
		}

	case schema.KindTextarea:
		answer, err := r.driver.Multiline(message, field.Required)
		if err != nil {
			return promptError(field, err)
		}
		if answer != "" {
			session.Set(field.ID, render.StringValue(answer))
		}

	case schema.KindNumber:
		value, err := r.promptNumber(field, message)
		if err != nil {
			return err
		}
		if value != nil {
			session.Set(field.ID, *value)
		}

	case schema.KindFile:
		answer, err := r.driver.Input(message+" (path)", field.Placeholder, field.Required)
		if err != nil {
			return promptError(field, err)
		}
		if answer != "" {
			session.Set(field.ID, render.FileValue{Name: answer})
		}

	case schema.KindText, schema.KindEmail, schema.KindDate, schema.KindTime,
		schema.KindDatetime, schema.KindURL, schema.KindTel, schema.KindColor:
		answer, err := r.driver.Input(message, field.Placeholder, field.Required)
		if err != nil {
			return promptError(field, err)
		}
		if answer != "" {
			session.Set(field.ID, render.StringValue(answer))
		}

	default:
		r.driver.Note(fmt.Sprintf("Skipping %q: unsupported field type %q", message, field.Kind))
	}
	return nil
}

func (r *Renderer) promptNumber(field schema.Field, message string) (*render.NumberValue, error) {
	for {
		answer, err := r.driver.Input(message, field.Placeholder, field.Required)
		if err != nil {
			return nil, promptError(field, err)
		}
		trimmed := strings.TrimSpace(answer)
		if trimmed == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			r.driver.Note(fmt.Sprintf("%q is not a number, try again", trimmed))
			continue
		}
		value := render.NumberValue(parsed)
		return &value, nil
	}
}

func promptError(field schema.Field, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("tui: prompt %q: %w", field.ID, err)
}
