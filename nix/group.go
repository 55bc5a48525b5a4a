package nix

// Group collects references to the data arrays and multi tags belonging
// to one logical unit of the recording (one segment). The referenced
// objects are owned by the enclosing Block.
type Group struct {
	entity

	dataArrays Collection[*DataArray]
	multiTags  Collection[*MultiTag]
}

func newGroup(name, typ string) *Group {
	return &Group{entity: newEntity(name, typ)}
}

// AddDataArray references a data array from this group.
func (g *Group) AddDataArray(d *DataArray) error {
	return g.dataArrays.add(d)
}

// DataArrays returns the referenced data array collection.
func (g *Group) DataArrays() *Collection[*DataArray] {
	return &g.dataArrays
}

// AddMultiTag references a multi tag from this group.
func (g *Group) AddMultiTag(m *MultiTag) error {
	return g.multiTags.add(m)
}

// MultiTags returns the referenced multi tag collection.
func (g *Group) MultiTags() *Collection[*MultiTag] {
	return &g.multiTags
}
