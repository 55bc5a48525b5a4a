package nix

// Block is the top-level container of one recording session. It owns all
// data-bearing objects; Groups and MultiTags reference them.
type Block struct {
	entity

	groups     Collection[*Group]
	sources    Collection[*Source]
	dataArrays Collection[*DataArray]
	multiTags  Collection[*MultiTag]
}

func newBlock(name, typ string) *Block {
	return &Block{entity: newEntity(name, typ)}
}

// CreateGroup creates a group owned by this block.
func (b *Block) CreateGroup(name, typ string) (*Group, error) {
	g := newGroup(name, typ)
	if err := b.groups.add(g); err != nil {
		return nil, err
	}
	return g, nil
}

// Groups returns the group collection.
func (b *Block) Groups() *Collection[*Group] {
	return &b.groups
}

// CreateSource creates a root source descriptor owned by this block.
func (b *Block) CreateSource(name, typ string) (*Source, error) {
	s := newSource(name, typ)
	if err := b.sources.add(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Sources returns the root source collection.
func (b *Block) Sources() *Collection[*Source] {
	return &b.sources
}

// CreateDataArray creates a data array owned by this block. The shape
// defaults to one dimension covering the whole payload.
func (b *Block) CreateDataArray(name, typ string, data []float64, shape ...int) (*DataArray, error) {
	d, err := newDataArray(name, typ, data, shape)
	if err != nil {
		return nil, err
	}
	if err := b.dataArrays.add(d); err != nil {
		return nil, err
	}
	return d, nil
}

// DataArrays returns the data array collection.
func (b *Block) DataArrays() *Collection[*DataArray] {
	return &b.dataArrays
}

// CreateMultiTag creates a multi tag anchored to the given positions
// array, owned by this block.
func (b *Block) CreateMultiTag(name, typ string, positions *DataArray) (*MultiTag, error) {
	m, err := newMultiTag(name, typ, positions)
	if err != nil {
		return nil, err
	}
	if err := b.multiTags.add(m); err != nil {
		return nil, err
	}
	return m, nil
}

// MultiTags returns the multi tag collection.
func (b *Block) MultiTags() *Collection[*MultiTag] {
	return &b.multiTags
}
