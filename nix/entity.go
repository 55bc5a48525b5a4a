package nix

import (
	"time"

	"github.com/google/uuid"
)

// Entity is the common surface of every stored object: identity, name,
// type tag, and an optionally attached metadata section.
type Entity interface {
	// ID returns the object's globally unique identifier.
	ID() string

	// Name returns the object's name, unique within its collection.
	Name() string

	// Type returns the object's type tag (e.g. "neo.segment").
	Type() string

	// Metadata returns the attached metadata section, or nil.
	Metadata() *Section

	// SetMetadata attaches a metadata section to the object.
	SetMetadata(s *Section)
}

// entity carries the fields shared by all stored objects. Name and type
// are fixed at creation; definition and metadata are mutable.
type entity struct {
	id        string
	name      string
	typ       string
	createdAt time.Time
	metadata  *Section

	// Definition is optional free text describing the object.
	Definition string
}

func newEntity(name, typ string) entity {
	return entity{
		id:        uuid.NewString(),
		name:      name,
		typ:       typ,
		createdAt: time.Now().Truncate(time.Second),
	}
}

func (e *entity) ID() string   { return e.id }
func (e *entity) Name() string { return e.name }
func (e *entity) Type() string { return e.typ }

// CreatedAt returns the object's creation timestamp (second precision).
func (e *entity) CreatedAt() time.Time { return e.createdAt }

// ForceCreatedAt overrides the creation timestamp, truncated to seconds.
func (e *entity) ForceCreatedAt(t time.Time) {
	e.createdAt = t.Truncate(time.Second)
}

func (e *entity) Metadata() *Section     { return e.metadata }
func (e *entity) SetMetadata(s *Section) { e.metadata = s }
