package nixio

import (
	"errors"
	"fmt"
)

// Sentinel errors for mapping operations.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrUnresolvedReference indicates that a cross-reference was
	// attempted before the target entity was written. This happens when a
	// signal or spike train is referenced only by a ChannelGroup or Unit
	// and was never placed in a Segment; only segment traversal enters an
	// entity into the identity table.
	//
	// Example:
	//	_, err := writer.WriteBlock(ctx, block)
	//	if errors.Is(err, nixio.ErrUnresolvedReference) {
	//	    log.Error("a referenced object is not part of any segment")
	//	}
	ErrUnresolvedReference = errors.New("reference to an entity that has not been written")

	// ErrInvalidEntity indicates that a source entity failed validation
	// before mapping (e.g. a spike train without t_stop).
	ErrInvalidEntity = errors.New("invalid source entity")
)

// Error kinds categorize mapping errors by their type.
const (
	// KindValidation marks errors in the source object graph itself.
	KindValidation = "validation"

	// KindUnresolved marks cross-reference resolution failures.
	KindUnresolved = "unresolved_reference"

	// KindStore marks failures propagated unchanged from the backing
	// store (name collisions, I/O failures).
	KindStore = "store"

	// KindInternal marks mapper bugs, such as a tracked path that no
	// longer resolves.
	KindInternal = "internal"
)

// IOError is a structured error wrapping the underlying cause with the
// operation that failed and the category of failure.
//
// IOError implements the error interface and supports unwrapping, so it
// is compatible with errors.Is() and errors.As().
type IOError struct {
	// Op is the operation that failed (e.g. "Writer.WriteBlock").
	Op string

	// Kind categorizes the error (e.g. KindUnresolved).
	Kind string

	// Err is the underlying error.
	Err error

	// Context provides additional detail about the failure (optional):
	// entity kinds, names, paths.
	Context map[string]any
}

// Error implements the error interface.
func (e *IOError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("nixio: %s: %s", e.Op, e.Kind)
	}
	if len(e.Context) > 0 {
		return fmt.Sprintf("nixio: %s (%s): %v [context: %+v]", e.Op, e.Kind, e.Err, e.Context)
	}
	return fmt.Sprintf("nixio: %s (%s): %v", e.Op, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *IOError) Unwrap() error {
	return e.Err
}

// Is matches another IOError by kind (and op, when the target sets one),
// or delegates to the underlying error.
func (e *IOError) Is(target error) bool {
	if target == nil {
		return false
	}
	if t, ok := target.(*IOError); ok {
		if t.Kind != "" && e.Kind == t.Kind {
			if t.Op == "" || e.Op == t.Op {
				return true
			}
		}
	}
	return errors.Is(e.Err, target)
}

// WithContext returns a copy of the error with the provided context
// entries added.
func (e *IOError) WithContext(ctx map[string]any) *IOError {
	out := *e
	out.Context = make(map[string]any, len(e.Context)+len(ctx))
	for k, v := range e.Context {
		out.Context[k] = v
	}
	for k, v := range ctx {
		out.Context[k] = v
	}
	return &out
}

func newValidationError(op string, err error) *IOError {
	return &IOError{Op: op, Kind: KindValidation, Err: err}
}

func newUnresolvedError(op string, err error) *IOError {
	return &IOError{Op: op, Kind: KindUnresolved, Err: err}
}

func newStoreError(op string, err error) *IOError {
	return &IOError{Op: op, Kind: KindStore, Err: err}
}

func newInternalError(op string, err error) *IOError {
	return &IOError{Op: op, Kind: KindInternal, Err: err}
}
