package schema

import (
	"strings"
	"testing"
)

func TestNewGeneratesUniqueIDs(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		field, err := New(KindText)
		if err != nil {
			t.Fatalf("new field: %v", err)
		}
		if _, dup := seen[field.ID]; dup {
			t.Fatalf("duplicate generated id %q", field.ID)
		}
		seen[field.ID] = struct{}{}
	}
}

func TestNewDefaults(t *testing.T) {
	field, err := New(KindEmail)
	if err != nil {
		t.Fatalf("new field: %v", err)
	}
	if field.Kind != KindEmail {
		t.Fatalf("expected email kind, got %q", field.Kind)
	}
	if field.Label != "New email field" {
		t.Fatalf("unexpected default label %q", field.Label)
	}
	if field.Required {
		t.Fatal("required must default to false")
	}
	if len(field.Options) != 0 {
		t.Fatalf("non-choice field should have no options, got %v", field.Options)
	}
	if !strings.HasPrefix(field.ID, "email-") {
		t.Fatalf("expected kind-prefixed id, got %q", field.ID)
	}
}

func TestNewChoiceKindSeedsOptions(t *testing.T) {
	for _, kind := range []FieldKind{KindSelect, KindRadio} {
		field, err := New(kind)
		if err != nil {
			t.Fatalf("new %s field: %v", kind, err)
		}
		if len(field.Options) != 2 {
			t.Fatalf("expected two default options for %s, got %v", kind, field.Options)
		}
	}
}

func TestNewRejectsUnknownKind(t *testing.T) {
	if _, err := New(FieldKind("hologram")); err == nil {
		t.Fatal("expected unknown kind error")
	}
}

func TestApplyPatch(t *testing.T) {
	field, err := New(KindSelect)
	if err != nil {
		t.Fatalf("new field: %v", err)
	}

	label := "Role"
	required := true
	updated := field.Apply(Patch{
		Label:    &label,
		Required: &required,
		Options:  []string{"admin", "user"},
	})

	if updated.Label != "Role" || !updated.Required {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if got := updated.Options; len(got) != 2 || got[0] != "admin" {
		t.Fatalf("unexpected options %v", got)
	}
	if updated.ID != field.ID {
		t.Fatalf("id changed without patch: %q -> %q", field.ID, updated.ID)
	}
	if field.Label == "Role" {
		t.Fatal("patch mutated the original descriptor")
	}
}

func TestValidateChoiceRequiresOptions(t *testing.T) {
	field := Field{ID: "role", Kind: KindSelect}
	err := field.Validate()
	missing, ok := err.(*MissingOptionsError)
	if !ok {
		t.Fatalf("expected MissingOptionsError, got %v", err)
	}
	if missing.ID != "role" {
		t.Fatalf("unexpected id %q", missing.ID)
	}
}

func TestDisplayLabelFallsBackToKey(t *testing.T) {
	field := Field{ID: "first_name", Kind: KindText}
	if got := field.DisplayLabel(); got != "First Name" {
		t.Fatalf("expected humanised label, got %q", got)
	}
}

func TestParseKind(t *testing.T) {
	kind, err := ParseKind(" Select ")
	if err != nil {
		t.Fatalf("parse kind: %v", err)
	}
	if kind != KindSelect {
		t.Fatalf("expected select, got %q", kind)
	}
	if _, err := ParseKind("matrix"); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
