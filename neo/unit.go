package neo

// Unit is a spike-sorted neural unit. It references SpikeTrains owned by
// Segments; the references point at the same instances, not copies.
type Unit struct {
	Attributes

	// SpikeTrains references the spike trains attributed to this unit.
	SpikeTrains []*SpikeTrain
}

// NewUnit creates a Unit. An empty name is allowed.
func NewUnit(name string) *Unit {
	return &Unit{Attributes: newAttributes(name)}
}

// AddSpikeTrain references a spike train from this unit. The train must
// also be placed in a Segment before the block is written out.
func (u *Unit) AddSpikeTrain(st *SpikeTrain) *Unit {
	u.SpikeTrains = append(u.SpikeTrains, st)
	return u
}
