package builder

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/goliatone/go-formkit/pkg/schema"
)

func drain(t *testing.T, b *Builder) []Event {
	t.Helper()
	var events []Event
	for {
		select {
		case ev := <-b.Events():
			events = append(events, ev)
		default:
			return events
		}
	}
}

func ids(fields []schema.Field) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.ID
	}
	return out
}

func threeFieldBuilder(t *testing.T) *Builder {
	t.Helper()
	b := New(WithInitialFields([]schema.Field{
		{ID: "a", Kind: schema.KindText, Label: "A"},
		{ID: "b", Kind: schema.KindText, Label: "B"},
		{ID: "c", Kind: schema.KindText, Label: "C"},
	}))
	return b
}

func TestAppendIncreasesLengthByOne(t *testing.T) {
	b := New()
	defer b.Close()

	field, err := b.Append(schema.KindSelect)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if b.Len() != 1 {
		t.Fatalf("expected one field, got %d", b.Len())
	}
	if field.Kind != schema.KindSelect {
		t.Fatalf("expected select kind, got %q", field.Kind)
	}

	events := drain(t, b)
	if len(events) != 1 || events[0].Kind != EventAppended {
		t.Fatalf("expected single appended event, got %+v", events)
	}
	if events[0].Field.ID != field.ID {
		t.Fatalf("event field mismatch: %q vs %q", events[0].Field.ID, field.ID)
	}
}

func TestAppendRejectsUnknownKind(t *testing.T) {
	b := New()
	defer b.Close()

	if _, err := b.Append(schema.FieldKind("portal")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if b.Len() != 0 {
		t.Fatal("failed append must not grow the sequence")
	}
}

func TestMoveSwapsAdjacentEntries(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()

	b.Move(0, MoveDown)
	if diff := cmp.Diff([]string{"b", "a", "c"}, ids(b.Fields())); diff != "" {
		t.Fatalf("move down mismatch (-want +got):\n%s", diff)
	}

	b.Move(2, MoveUp)
	if diff := cmp.Diff([]string{"b", "c", "a"}, ids(b.Fields())); diff != "" {
		t.Fatalf("move up mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveOutOfBoundsIsNoOp(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()

	b.Move(0, MoveUp)
	b.Move(2, MoveDown)
	b.Move(-1, MoveDown)
	b.Move(9, MoveUp)

	if diff := cmp.Diff([]string{"a", "b", "c"}, ids(b.Fields())); diff != "" {
		t.Fatalf("sequence changed by out-of-bounds moves:\n%s", diff)
	}
	if events := drain(t, b); len(events) != 0 {
		t.Fatalf("no-op moves must not emit, got %+v", events)
	}
}

func TestReplacePreservesPosition(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()

	err := b.Replace("b", schema.Field{ID: "b", Kind: schema.KindEmail, Label: "Email"})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}

	fields := b.Fields()
	if fields[1].Kind != schema.KindEmail {
		t.Fatalf("expected replacement at index 1, got %+v", fields)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids(fields)); diff != "" {
		t.Fatalf("order changed by replace:\n%s", diff)
	}
}

func TestReplaceRejectsDuplicateID(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()
	drain(t, b)

	err := b.Replace("b", schema.Field{ID: "c", Kind: schema.KindText, Label: "Clash"})
	var dup *schema.DuplicateIDError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateIDError, got %v", err)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids(b.Fields())); diff != "" {
		t.Fatalf("rejected replace must leave sequence untouched:\n%s", diff)
	}
	if events := drain(t, b); len(events) != 0 {
		t.Fatalf("rejected replace must not emit, got %+v", events)
	}
}

func TestReplaceAllowsIDRename(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()

	if err := b.Replace("b", schema.Field{ID: "renamed", Kind: schema.KindText, Label: "B"}); err != nil {
		t.Fatalf("rename replace: %v", err)
	}
	if diff := cmp.Diff([]string{"a", "renamed", "c"}, ids(b.Fields())); diff != "" {
		t.Fatalf("rename mismatch:\n%s", diff)
	}
}

func TestReplaceUnknownID(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()

	err := b.Replace("ghost", schema.Field{ID: "ghost", Kind: schema.KindText})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()
	drain(t, b)

	b.Remove("b")
	after := ids(b.Fields())

	b.Remove("b")
	if diff := cmp.Diff(after, ids(b.Fields())); diff != "" {
		t.Fatalf("second remove changed the sequence:\n%s", diff)
	}

	events := drain(t, b)
	if len(events) != 1 || events[0].Kind != EventRemoved {
		t.Fatalf("expected exactly one removed event, got %+v", events)
	}
}

func TestLoadInitialReplacesSequenceAndEmits(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()
	drain(t, b)

	b.LoadInitial([]schema.Field{{ID: "only", Kind: schema.KindText, Label: "Only"}})

	if diff := cmp.Diff([]string{"only"}, ids(b.Fields())); diff != "" {
		t.Fatalf("load mismatch:\n%s", diff)
	}
	events := drain(t, b)
	if len(events) != 1 || events[0].Kind != EventLoaded {
		t.Fatalf("expected loaded event, got %+v", events)
	}
}

func TestEventsArriveInMutationOrder(t *testing.T) {
	b := New()
	defer b.Close()

	first, _ := b.Append(schema.KindText)
	second, _ := b.Append(schema.KindNumber)
	b.Remove(first.ID)

	events := drain(t, b)
	want := []EventKind{EventAppended, EventAppended, EventRemoved}
	if len(events) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(events))
	}
	for i, kind := range want {
		if events[i].Kind != kind {
			t.Fatalf("event %d: expected %q, got %q", i, kind, events[i].Kind)
		}
	}
	if got := ids(events[2].Fields); len(got) != 1 || got[0] != second.ID {
		t.Fatalf("final snapshot mismatch: %v", got)
	}
}

func TestSnapshotsAreIsolated(t *testing.T) {
	b := threeFieldBuilder(t)
	defer b.Close()

	snapshot := b.Fields()
	snapshot[0].Label = "mutated"

	if b.Fields()[0].Label != "A" {
		t.Fatal("snapshot mutation leaked into builder state")
	}
}
