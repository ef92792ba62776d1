package tui

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

// fakeDriver replays scripted answers keyed by prompt message.
type fakeDriver struct {
	inputs   map[string][]string
	selects  map[string]string
	confirms map[string]bool
	notes    []string
}

func (d *fakeDriver) nextInput(message string) string {
	queue := d.inputs[message]
	if len(queue) == 0 {
		return ""
	}
	answer := queue[0]
	d.inputs[message] = queue[1:]
	return answer
}

func (d *fakeDriver) Input(message, _ string, _ bool) (string, error) {
	return d.nextInput(message), nil
}

func (d *fakeDriver) Multiline(message string, _ bool) (string, error) {
	return d.nextInput(message), nil
}

func (d *fakeDriver) Select(message string, _ []string, _ bool) (string, error) {
	return d.selects[message], nil
}

func (d *fakeDriver) Confirm(message string) (bool, error) {
	return d.confirms[message], nil
}

func (d *fakeDriver) Note(message string) {
	d.notes = append(d.notes, message)
}

func TestRenderCollectsAnswers(t *testing.T) {
	form := schema.Form{
		Title: "Signup",
		Fields: []schema.Field{
			{ID: "name", Kind: schema.KindText, Label: "Name", Required: true},
			{ID: "role", Kind: schema.KindSelect, Label: "Role", Required: true, Options: []string{"admin", "user"}},
			{ID: "subscribe", Kind: schema.KindCheckbox, Label: "Subscribe"},
		},
	}

	driver := &fakeDriver{
		inputs:   map[string][]string{"Name": {"Ada"}},
		selects:  map[string]string{"Role": "admin"},
		confirms: map[string]bool{"Subscribe": true},
	}

	out, err := New(WithDriver(driver)).Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	want := map[string]any{"name": "Ada", "role": "admin", "subscribe": true}
	if diff := cmp.Diff(want, values); diff != "" {
		t.Fatalf("values mismatch:\n%s", diff)
	}
}

func TestRenderNumberRepromptsOnGarbage(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "age", Kind: schema.KindNumber, Label: "Age"},
	}}

	driver := &fakeDriver{
		inputs: map[string][]string{"Age": {"not-a-number", "42"}},
	}

	out, err := New(WithDriver(driver)).Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if values["age"] != float64(42) {
		t.Fatalf("expected reprompted number, got %v", values["age"])
	}
	if len(driver.notes) == 0 {
		t.Fatal("expected a note about the invalid number")
	}
}

func TestRenderGatesMissingRequiredValues(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "name", Kind: schema.KindText, Label: "Name", Required: true},
	}}

	// The fake driver returns an empty answer even for required prompts,
	// simulating a driver that cannot enforce re-prompting.
	driver := &fakeDriver{inputs: map[string][]string{}}

	_, err := New(WithDriver(driver)).Render(context.Background(), form, render.Options{})
	var missing *render.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if diff := cmp.Diff([]string{"Name"}, missing.Labels); diff != "" {
		t.Fatalf("missing labels mismatch:\n%s", diff)
	}
}

func TestRenderSkipsUnknownKindWithNote(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "widget", Kind: schema.FieldKind("hologram"), Label: "Widget"},
	}}

	driver := &fakeDriver{}
	out, err := New(WithDriver(driver)).Render(context.Background(), form, render.Options{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(driver.notes) != 1 {
		t.Fatalf("expected one note, got %v", driver.notes)
	}

	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if len(values) != 0 {
		t.Fatalf("unknown kind must not produce a value, got %v", values)
	}
}

func TestRenderPrefilledValuesPassGating(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "name", Kind: schema.KindText, Label: "Name", Required: true},
	}}

	driver := &fakeDriver{inputs: map[string][]string{}}
	out, err := New(WithDriver(driver)).Render(context.Background(), form, render.Options{
		Values: map[string]render.Value{"name": render.StringValue("Grace")},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	var values map[string]any
	if err := json.Unmarshal(out, &values); err != nil {
		t.Fatalf("decode output: %v", err)
	}
	if values["name"] != "Grace" {
		t.Fatalf("expected prefilled value to survive, got %v", values)
	}
}
