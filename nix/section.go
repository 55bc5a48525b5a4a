package nix

// Section is a node in the metadata tree. Sections nest and carry
// Properties; each section knows its parent (nil for sections attached
// directly to the file root).
type Section struct {
	entity

	parent     *Section
	sections   Collection[*Section]
	properties Collection[*Property]
}

func newSection(name, typ string, parent *Section) *Section {
	return &Section{entity: newEntity(name, typ), parent: parent}
}

// Parent returns the enclosing section, or nil for a root section.
func (s *Section) Parent() *Section {
	return s.parent
}

// CreateSection creates a nested child section.
func (s *Section) CreateSection(name, typ string) (*Section, error) {
	child := newSection(name, typ, s)
	if err := s.sections.add(child); err != nil {
		return nil, err
	}
	return child, nil
}

// Sections returns the child section collection.
func (s *Section) Sections() *Collection[*Section] {
	return &s.sections
}

// CreateProperty stores scalar values under a key in this section.
func (s *Section) CreateProperty(name string, values ...Value) (*Property, error) {
	p := &Property{name: name, values: values}
	if err := s.properties.add(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Properties returns the property collection.
func (s *Section) Properties() *Collection[*Property] {
	return &s.properties
}

// Property returns the property with the given name.
func (s *Section) Property(name string) (*Property, bool) {
	return s.properties.Get(name)
}

// Property is a named list of scalar values inside a Section.
type Property struct {
	name   string
	values []Value
}

// Name returns the property's key.
func (p *Property) Name() string { return p.name }

// Values returns the stored values in order.
func (p *Property) Values() []Value {
	out := make([]Value, len(p.values))
	copy(out, p.values)
	return out
}

// Value returns the first stored value. Properties written by the mapper
// are mostly single-valued; this is the common accessor.
func (p *Property) Value() Value {
	if len(p.values) == 0 {
		return Value{}
	}
	return p.values[0]
}
