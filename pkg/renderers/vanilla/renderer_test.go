package vanilla

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formkit/pkg/render"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func renderForm(t *testing.T, form schema.Form, options render.Options, opts ...Option) string {
	t.Helper()
	renderer, err := New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := renderer.Render(context.Background(), form, options)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRenderEmitsControlsInOrder(t *testing.T) {
	form := schema.Form{
		Title: "Profile",
		Fields: []schema.Field{
			{ID: "name", Kind: schema.KindText, Label: "Name", Required: true},
			{ID: "role", Kind: schema.KindSelect, Label: "Role", Options: []string{"admin", "user"}},
			{ID: "bio", Kind: schema.KindTextarea, Label: "Bio"},
		},
	}

	html := renderForm(t, form, render.Options{})

	nameIdx := strings.Index(html, `id="fk-name"`)
	roleIdx := strings.Index(html, `id="fk-role"`)
	bioIdx := strings.Index(html, `id="fk-bio"`)
	if nameIdx < 0 || roleIdx < 0 || bioIdx < 0 {
		t.Fatalf("missing controls in output:\n%s", html)
	}
	if !(nameIdx < roleIdx && roleIdx < bioIdx) {
		t.Fatalf("controls out of display order:\n%s", html)
	}
	if !strings.Contains(html, "Profile") {
		t.Fatalf("expected form title in chrome:\n%s", html)
	}
	if !strings.Contains(html, `<span class="fk-required">*</span>`) {
		t.Fatalf("expected required indicator:\n%s", html)
	}
}

func TestRenderKindSpecificControls(t *testing.T) {
	cases := []struct {
		kind schema.FieldKind
		want string
	}{
		{schema.KindEmail, `type="email"`},
		{schema.KindNumber, `type="number"`},
		{schema.KindDatetime, `type="datetime-local"`},
		{schema.KindFile, `type="file"`},
		{schema.KindColor, `type="color"`},
		{schema.KindCheckbox, `type="checkbox"`},
	}

	for _, tc := range cases {
		form := schema.Form{Fields: []schema.Field{{ID: "f", Kind: tc.kind, Label: "F"}}}
		html := renderForm(t, form, render.Options{})
		if !strings.Contains(html, tc.want) {
			t.Fatalf("kind %s: expected %s in output:\n%s", tc.kind, tc.want, html)
		}
	}
}

func TestRenderRadioGroup(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "size", Kind: schema.KindRadio, Label: "Size", Options: []string{"S", "M", "L"}},
	}}

	html := renderForm(t, form, render.Options{
		Values: map[string]render.Value{"size": render.StringValue("M")},
	})

	if got := strings.Count(html, `type="radio"`); got != 3 {
		t.Fatalf("expected 3 radio inputs, got %d:\n%s", got, html)
	}
	if !strings.Contains(html, `value="M" checked`) {
		t.Fatalf("expected prefilled radio to be checked:\n%s", html)
	}
}

func TestRenderSelectPrefill(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "role", Kind: schema.KindSelect, Label: "Role", Options: []string{"admin", "user"}},
	}}

	html := renderForm(t, form, render.Options{
		Values: map[string]render.Value{"role": render.StringValue("user")},
	})

	if !strings.Contains(html, `value="user" selected`) {
		t.Fatalf("expected selected option:\n%s", html)
	}
}

func TestRenderUnknownKindStaysVisible(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "widget", Kind: schema.FieldKind("hologram"), Label: "Widget"},
	}}

	html := renderForm(t, form, render.Options{})

	if !strings.Contains(html, "fk-unsupported") {
		t.Fatalf("unknown kind must render a visible placeholder:\n%s", html)
	}
	if !strings.Contains(html, "Widget") {
		t.Fatalf("placeholder must keep the field label visible:\n%s", html)
	}
}

func TestRenderEscapesSchemaText(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "x", Kind: schema.KindText, Label: `<script>alert("x")</script>Name`},
	}}

	html := renderForm(t, form, render.Options{})

	if strings.Contains(html, "<script>") {
		t.Fatalf("markup leaked into output:\n%s", html)
	}
	if !strings.Contains(html, "Name") {
		t.Fatalf("sanitizer dropped legitimate text:\n%s", html)
	}
}

func TestRenderHiddenFieldsAndEndpoint(t *testing.T) {
	form := schema.Form{Title: "T"}

	html := renderForm(t, form, render.Options{
		Hidden: map[string]string{"csrf": "tok", "version": "3"},
	}, WithEndpoint("/api/submit"))

	if !strings.Contains(html, `action="/api/submit"`) {
		t.Fatalf("expected endpoint action:\n%s", html)
	}
	if !strings.Contains(html, `name="csrf" value="tok"`) || !strings.Contains(html, `name="version" value="3"`) {
		t.Fatalf("expected hidden inputs:\n%s", html)
	}
}

func TestRenderFieldErrors(t *testing.T) {
	form := schema.Form{Fields: []schema.Field{
		{ID: "email", Kind: schema.KindEmail, Label: "Email"},
	}}

	html := renderForm(t, form, render.Options{
		Errors: map[string][]string{"email": {"already taken"}},
	})

	if !strings.Contains(html, `class="fk-error"`) || !strings.Contains(html, "already taken") {
		t.Fatalf("expected field error markup:\n%s", html)
	}
}

func TestRendererMetadata(t *testing.T) {
	renderer, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if renderer.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", renderer.Name())
	}
	if !strings.HasPrefix(renderer.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", renderer.ContentType())
	}
}
