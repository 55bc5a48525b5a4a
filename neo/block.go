package neo

// Block is the top-level container for one recording session.
type Block struct {
	Attributes

	// Segments are the time-aligned stretches of the recording, in order.
	Segments []*Segment

	// ChannelGroups are the channel groupings of the recording setup.
	ChannelGroups []*ChannelGroup
}

// NewBlock creates a Block. An empty name is allowed; a name is then
// synthesized at write time.
func NewBlock(name string) *Block {
	return &Block{Attributes: newAttributes(name)}
}

// WithDescription sets the description and returns the block for chaining.
func (b *Block) WithDescription(desc string) *Block {
	b.Description = desc
	return b
}

// AddSegment appends a segment to the block.
func (b *Block) AddSegment(s *Segment) *Block {
	b.Segments = append(b.Segments, s)
	return b
}

// AddChannelGroup appends a channel group to the block.
func (b *Block) AddChannelGroup(cg *ChannelGroup) *Block {
	b.ChannelGroups = append(b.ChannelGroups, cg)
	return b
}
