package neo

import (
	"fmt"

	"github.com/gnode/neonix/units"
)

// Event marks labelled points in time within a segment.
type Event struct {
	Attributes

	// Times are the event times.
	Times units.Quantity

	// Labels names each event, parallel to Times. May be empty.
	Labels []string
}

// NewEvent creates an Event from a time vector.
func NewEvent(name string, times units.Quantity) *Event {
	return &Event{
		Attributes: newAttributes(name),
		Times:      times,
	}
}

// WithLabels sets the per-event labels and returns the event.
func (e *Event) WithLabels(labels ...string) *Event {
	e.Labels = labels
	return e
}

// Validate checks that labels, when present, cover every event time.
func (e *Event) Validate() error {
	if len(e.Labels) > 0 && len(e.Labels) != e.Times.Len() {
		return fmt.Errorf("%w: %d labels for %d times",
			ErrMismatchedLengths, len(e.Labels), e.Times.Len())
	}
	return nil
}
