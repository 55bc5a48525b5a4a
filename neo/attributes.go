package neo

import (
	"time"

	"github.com/google/uuid"
)

// Attributes holds the fields shared by every entity in the model: the
// user-facing name and description, provenance information, and free-form
// annotations. A zero time.Time means the timestamp is absent.
type Attributes struct {
	// Name is the optional user-supplied label. Entities without a name
	// receive a synthesized name when they are written out.
	Name string

	// Description is optional free text describing the entity.
	Description string

	// FileOrigin is the path or URL of the file the data originated from.
	FileOrigin string

	// RecDatetime is the time the data was recorded.
	RecDatetime time.Time

	// FileDatetime is the time the original data file was created.
	FileDatetime time.Time

	// Annotations holds arbitrary scalar-valued keys attached by the user.
	Annotations map[string]any

	id string
}

func newAttributes(name string) Attributes {
	return Attributes{
		Name:        name,
		Annotations: make(map[string]any),
		id:          uuid.NewString(),
	}
}

// Identity returns the entity's stable identity key. The key is assigned
// at construction and never changes; two entities never share a key even
// if all their attributes are equal.
func (a *Attributes) Identity() string {
	return a.id
}

// Annotate attaches a scalar annotation. Values should be strings, bools
// or numbers; they are stored verbatim.
func (a *Attributes) Annotate(key string, value any) {
	if a.Annotations == nil {
		a.Annotations = make(map[string]any)
	}
	a.Annotations[key] = value
}
