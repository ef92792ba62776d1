package builder

import (
	"fmt"

	"github.com/goliatone/go-formkit/pkg/schema"
)

// EventKind names the structural change an event describes.
type EventKind string

const (
	EventAppended EventKind = "appended"
	EventMoved    EventKind = "moved"
	EventReplaced EventKind = "replaced"
	EventRemoved  EventKind = "removed"
	EventLoaded   EventKind = "loaded"
)

// Event describes one structural change to the working sequence. Fields is a
// snapshot of the sequence after the change; Field and Index locate the
// affected descriptor (Index is -1 for loads).
type Event struct {
	Kind   EventKind
	Field  schema.Field
	Index  int
	Fields []schema.Field
}

// NotFoundError reports a mutation that referenced an id absent from the
// working sequence.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("builder: no field with id %q", e.ID)
}
