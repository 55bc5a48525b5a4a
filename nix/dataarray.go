package nix

import "fmt"

// DataArray holds a numeric payload with a shape, a physical unit, and
// one dimension descriptor per axis, appended in axis order. Sources
// back-reference the Source descriptors the data was recorded through.
type DataArray struct {
	entity

	// Unit is the physical unit of the stored values.
	Unit string

	data    []float64
	shape   []int
	dims    []Dimension
	sources []*Source
}

func newDataArray(name, typ string, data []float64, shape []int) (*DataArray, error) {
	if len(shape) == 0 {
		shape = []int{len(data)}
	}
	n := 1
	for _, s := range shape {
		n *= s
	}
	if n != len(data) {
		return nil, fmt.Errorf("data array %q: shape %v does not cover %d values", name, shape, len(data))
	}
	return &DataArray{entity: newEntity(name, typ), data: data, shape: shape}, nil
}

// Data returns the flat payload in row-major order.
func (d *DataArray) Data() []float64 {
	return d.data
}

// Shape returns the extent of each axis.
func (d *DataArray) Shape() []int {
	out := make([]int, len(d.shape))
	copy(out, d.shape)
	return out
}

// Len returns the total number of values.
func (d *DataArray) Len() int {
	return len(d.data)
}

// AppendSampledDimension appends a fixed-interval axis descriptor.
func (d *DataArray) AppendSampledDimension(interval float64) *SampledDimension {
	dim := &SampledDimension{SamplingInterval: interval}
	d.dims = append(d.dims, dim)
	return dim
}

// AppendRangeDimension appends an explicit-tick axis descriptor.
func (d *DataArray) AppendRangeDimension(ticks []float64) *RangeDimension {
	dim := &RangeDimension{Ticks: ticks}
	d.dims = append(d.dims, dim)
	return dim
}

// AppendSetDimension appends an unordered axis descriptor.
func (d *DataArray) AppendSetDimension() *SetDimension {
	dim := &SetDimension{}
	d.dims = append(d.dims, dim)
	return dim
}

// Dimensions returns the axis descriptors in axis order.
func (d *DataArray) Dimensions() []Dimension {
	out := make([]Dimension, len(d.dims))
	copy(out, d.dims)
	return out
}

// AddSource appends a Source back-reference.
func (d *DataArray) AddSource(s *Source) {
	d.sources = append(d.sources, s)
}

// Sources returns the Source back-references in append order.
func (d *DataArray) Sources() []*Source {
	out := make([]*Source, len(d.sources))
	copy(out, d.sources)
	return out
}

// HasSource reports whether the array back-references the named source.
func (d *DataArray) HasSource(name string) bool {
	for _, s := range d.sources {
		if s.Name() == name {
			return true
		}
	}
	return false
}
