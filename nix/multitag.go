package nix

// LinkType describes how a Feature's data relates to the tag positions.
type LinkType int

const (
	// LinkTagged marks feature data tagged as a whole.
	LinkTagged LinkType = iota

	// LinkUntagged marks feature data unrelated to the positions.
	LinkUntagged

	// LinkIndexed marks feature data with one entry per position.
	LinkIndexed
)

// MultiTag anchors a set of positions (and optionally extents) to
// referenced DataArrays. It is the store's representation of events,
// epochs and spike trains.
type MultiTag struct {
	entity

	// Extents optionally holds one extent per position.
	Extents *DataArray

	positions  *DataArray
	references []*DataArray
	sources    []*Source
	features   []*Feature
}

func newMultiTag(name, typ string, positions *DataArray) (*MultiTag, error) {
	if positions == nil {
		return nil, ErrNilPositions
	}
	return &MultiTag{entity: newEntity(name, typ), positions: positions}, nil
}

// Positions returns the positions array the tag is anchored to.
func (m *MultiTag) Positions() *DataArray {
	return m.positions
}

// AddReference appends a referenced data array.
func (m *MultiTag) AddReference(d *DataArray) {
	m.references = append(m.references, d)
}

// References returns the referenced data arrays in append order.
func (m *MultiTag) References() []*DataArray {
	out := make([]*DataArray, len(m.references))
	copy(out, m.references)
	return out
}

// HasReference reports whether the tag references the named data array.
func (m *MultiTag) HasReference(name string) bool {
	for _, d := range m.references {
		if d.Name() == name {
			return true
		}
	}
	return false
}

// AddSource appends a Source back-reference.
func (m *MultiTag) AddSource(s *Source) {
	m.sources = append(m.sources, s)
}

// Sources returns the Source back-references in append order.
func (m *MultiTag) Sources() []*Source {
	out := make([]*Source, len(m.sources))
	copy(out, m.sources)
	return out
}

// HasSource reports whether the tag back-references the named source.
func (m *MultiTag) HasSource(name string) bool {
	for _, s := range m.sources {
		if s.Name() == name {
			return true
		}
	}
	return false
}

// CreateFeature attaches auxiliary data to the tag.
func (m *MultiTag) CreateFeature(data *DataArray, link LinkType) *Feature {
	f := &Feature{data: data, link: link}
	m.features = append(m.features, f)
	return f
}

// Features returns the attached features in append order.
func (m *MultiTag) Features() []*Feature {
	out := make([]*Feature, len(m.features))
	copy(out, m.features)
	return out
}

// Feature is auxiliary data attached to a MultiTag.
type Feature struct {
	data *DataArray
	link LinkType
}

// Data returns the feature's data array.
func (f *Feature) Data() *DataArray { return f.data }

// Link returns how the data relates to the tag positions.
func (f *Feature) Link() LinkType { return f.link }

// Name returns the name of the feature's data array; features are
// addressed through it.
func (f *Feature) Name() string { return f.data.Name() }
