package builder

import (
	"github.com/goliatone/go-formkit/pkg/schema"
)

// Direction selects the neighbor a field swaps with during a move.
type Direction string

const (
	MoveUp   Direction = "up"
	MoveDown Direction = "down"
)

// Option customises builder construction.
type Option func(*Builder)

// WithEventBuffer sets the capacity of the event channel. The default is 64;
// a mutation blocks when the buffer is full, so hosts must drain Events().
func WithEventBuffer(size int) Option {
	return func(b *Builder) {
		if size > 0 {
			b.bufferSize = size
		}
	}
}

// WithInitialFields seeds the working sequence at construction time without
// emitting a load event.
func WithInitialFields(fields []schema.Field) Option {
	return func(b *Builder) {
		b.fields = cloneFields(fields)
	}
}

// Builder maintains the ordered field sequence for one form-in-progress and
// emits an Event for every structural change, in mutation order. All methods
// are intended for a single goroutine, matching the event-driven editing
// model: one mutation per user action.
type Builder struct {
	fields     []schema.Field
	events     chan Event
	bufferSize int
	closed     bool
}

// New constructs a builder with an empty working sequence.
func New(options ...Option) *Builder {
	b := &Builder{bufferSize: 64}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	b.events = make(chan Event, b.bufferSize)
	return b
}

// Events returns the channel structural-change events are delivered on.
// Events arrive strictly in mutation order.
func (b *Builder) Events() <-chan Event {
	return b.events
}

// Close terminates the event stream. Mutations after Close still update the
// in-memory sequence but no longer emit.
func (b *Builder) Close() {
	if b.closed {
		return
	}
	b.closed = true
	close(b.events)
}

// Fields returns a snapshot copy of the current working sequence.
func (b *Builder) Fields() []schema.Field {
	return cloneFields(b.fields)
}

// Len reports the number of fields in the working sequence.
func (b *Builder) Len() int {
	return len(b.fields)
}

// Form assembles an immutable snapshot of the working sequence under the
// given title.
func (b *Builder) Form(title string) schema.Form {
	return schema.Form{Title: title, Fields: cloneFields(b.fields)}
}

// Append creates a new descriptor of the given kind and appends it to the
// end of the sequence. The returned field is the committed copy; hosts edit
// it further through Replace.
func (b *Builder) Append(kind schema.FieldKind) (schema.Field, error) {
	field, err := schema.New(kind)
	if err != nil {
		return schema.Field{}, err
	}
	b.fields = append(b.fields, field)
	b.emit(Event{Kind: EventAppended, Field: field, Index: len(b.fields) - 1, Fields: cloneFields(b.fields)})
	return field, nil
}

// Move swaps the field at index with its neighbor in the given direction.
// Moves that would leave the sequence are silently ignored and emit nothing.
func (b *Builder) Move(index int, dir Direction) {
	if index < 0 || index >= len(b.fields) {
		return
	}
	target := index - 1
	if dir == MoveDown {
		target = index + 1
	}
	if target < 0 || target >= len(b.fields) {
		return
	}
	b.fields[index], b.fields[target] = b.fields[target], b.fields[index]
	b.emit(Event{Kind: EventMoved, Field: b.fields[target], Index: target, Fields: cloneFields(b.fields)})
}

// Replace swaps the descriptor with matching id for the provided one,
// preserving position. A replacement whose id collides with a different
// field is rejected with a DuplicateIDError so ambiguous lookups can never
// be committed.
func (b *Builder) Replace(id string, field schema.Field) error {
	index := b.indexOf(id)
	if index < 0 {
		return &NotFoundError{ID: id}
	}
	if err := field.Validate(); err != nil {
		return err
	}
	for i, existing := range b.fields {
		if i != index && existing.ID == field.ID {
			return &schema.DuplicateIDError{ID: field.ID}
		}
	}
	b.fields[index] = field.Clone()
	b.emit(Event{Kind: EventReplaced, Field: b.fields[index], Index: index, Fields: cloneFields(b.fields)})
	return nil
}

// Remove deletes the descriptor with matching id. Removing an id that is
// not present leaves the sequence unchanged and emits nothing, so repeated
// removals are idempotent.
func (b *Builder) Remove(id string) {
	index := b.indexOf(id)
	if index < 0 {
		return
	}
	removed := b.fields[index]
	b.fields = append(b.fields[:index], b.fields[index+1:]...)
	b.emit(Event{Kind: EventRemoved, Field: removed, Index: index, Fields: cloneFields(b.fields)})
}

// LoadInitial replaces the entire working sequence, used when opening the
// builder against an existing persisted schema. Emits immediately.
func (b *Builder) LoadInitial(fields []schema.Field) {
	b.fields = cloneFields(fields)
	b.emit(Event{Kind: EventLoaded, Index: -1, Fields: cloneFields(b.fields)})
}

func (b *Builder) indexOf(id string) int {
	for i, field := range b.fields {
		if field.ID == id {
			return i
		}
	}
	return -1
}

func (b *Builder) emit(event Event) {
	if b.closed {
		return
	}
	b.events <- event
}

func cloneFields(fields []schema.Field) []schema.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]schema.Field, len(fields))
	for i, field := range fields {
		out[i] = field.Clone()
	}
	return out
}
