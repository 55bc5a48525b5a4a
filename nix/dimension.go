package nix

// DimensionKind discriminates the three dimension descriptor kinds.
type DimensionKind int

const (
	// DimensionSampled describes an axis sampled at a fixed interval.
	DimensionSampled DimensionKind = iota

	// DimensionRange describes an axis with explicit tick positions.
	DimensionRange

	// DimensionSet describes an unordered axis of discrete items.
	DimensionSet
)

// Dimension describes how to interpret one axis of a DataArray.
type Dimension interface {
	Kind() DimensionKind
}

// SampledDimension describes an axis sampled at a fixed interval,
// starting at Offset.
type SampledDimension struct {
	SamplingInterval float64
	Unit             string
	Label            string
	Offset           float64
}

// Kind returns DimensionSampled.
func (d *SampledDimension) Kind() DimensionKind { return DimensionSampled }

// RangeDimension describes an axis with one explicit tick per entry.
type RangeDimension struct {
	Ticks []float64
	Unit  string
	Label string
}

// Kind returns DimensionRange.
func (d *RangeDimension) Kind() DimensionKind { return DimensionRange }

// SetDimension describes an unordered axis, optionally labelling each
// position.
type SetDimension struct {
	Labels []string
}

// Kind returns DimensionSet.
func (d *SetDimension) Kind() DimensionKind { return DimensionSet }
