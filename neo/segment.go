package neo

// Segment is a time-aligned stretch of a recording. It owns the data
// objects recorded during that stretch.
type Segment struct {
	Attributes

	AnalogSignals             []*AnalogSignal
	IrregularlySampledSignals []*IrregularlySampledSignal
	Epochs                    []*Epoch
	Events                    []*Event
	SpikeTrains               []*SpikeTrain
}

// NewSegment creates a Segment. An empty name is allowed.
func NewSegment(name string) *Segment {
	return &Segment{Attributes: newAttributes(name)}
}

// WithDescription sets the description and returns the segment for chaining.
func (s *Segment) WithDescription(desc string) *Segment {
	s.Description = desc
	return s
}

// AddAnalogSignal appends an analog signal to the segment.
func (s *Segment) AddAnalogSignal(sig *AnalogSignal) *Segment {
	s.AnalogSignals = append(s.AnalogSignals, sig)
	return s
}

// AddIrregularlySampledSignal appends an irregularly sampled signal.
func (s *Segment) AddIrregularlySampledSignal(sig *IrregularlySampledSignal) *Segment {
	s.IrregularlySampledSignals = append(s.IrregularlySampledSignals, sig)
	return s
}

// AddEpoch appends an epoch to the segment.
func (s *Segment) AddEpoch(ep *Epoch) *Segment {
	s.Epochs = append(s.Epochs, ep)
	return s
}

// AddEvent appends an event to the segment.
func (s *Segment) AddEvent(ev *Event) *Segment {
	s.Events = append(s.Events, ev)
	return s
}

// AddSpikeTrain appends a spike train to the segment. The same SpikeTrain
// instance may additionally be referenced by a Unit.
func (s *Segment) AddSpikeTrain(st *SpikeTrain) *Segment {
	s.SpikeTrains = append(s.SpikeTrains, st)
	return s
}
