package nix

// Source is a hierarchical descriptor of where data came from: a channel
// group, a single channel, or a sorted unit. Sources nest arbitrarily.
type Source struct {
	entity

	sources Collection[*Source]
}

func newSource(name, typ string) *Source {
	return &Source{entity: newEntity(name, typ)}
}

// CreateSource creates a child descriptor.
func (s *Source) CreateSource(name, typ string) (*Source, error) {
	child := newSource(name, typ)
	if err := s.sources.add(child); err != nil {
		return nil, err
	}
	return child, nil
}

// Sources returns the child descriptor collection.
func (s *Source) Sources() *Collection[*Source] {
	return &s.sources
}
