package neo

import (
	"errors"
	"fmt"

	"github.com/gnode/neonix/units"
)

// ErrMismatchedLengths indicates parallel arrays of unequal length, such
// as epoch durations that do not cover every epoch time.
var ErrMismatchedLengths = errors.New("parallel arrays have unequal lengths")

// Epoch marks named stretches of time within a segment: one start time,
// duration and label per entry.
type Epoch struct {
	Attributes

	// Times are the start times of the epochs.
	Times units.Quantity

	// Durations are the lengths of the epochs, parallel to Times.
	Durations units.Quantity

	// Labels names each epoch, parallel to Times. May be empty.
	Labels []string
}

// NewEpoch creates an Epoch from parallel time and duration vectors.
func NewEpoch(name string, times, durations units.Quantity) *Epoch {
	return &Epoch{
		Attributes: newAttributes(name),
		Times:      times,
		Durations:  durations,
	}
}

// WithLabels sets the per-epoch labels and returns the epoch.
func (e *Epoch) WithLabels(labels ...string) *Epoch {
	e.Labels = labels
	return e
}

// Validate checks that durations and labels cover every epoch time.
func (e *Epoch) Validate() error {
	if e.Durations.Len() != e.Times.Len() {
		return fmt.Errorf("%w: %d durations for %d times",
			ErrMismatchedLengths, e.Durations.Len(), e.Times.Len())
	}
	if len(e.Labels) > 0 && len(e.Labels) != e.Times.Len() {
		return fmt.Errorf("%w: %d labels for %d times",
			ErrMismatchedLengths, len(e.Labels), e.Times.Len())
	}
	return nil
}
