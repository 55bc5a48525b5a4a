package neo

import (
	"errors"
	"fmt"

	"github.com/gnode/neonix/units"
)

// Sentinel errors for signal validation.
var (
	// ErrRaggedSamples indicates a sample matrix whose rows have unequal
	// lengths.
	ErrRaggedSamples = errors.New("sample matrix is not rectangular")

	// ErrBadTimeAxis indicates a missing or malformed time axis: an
	// irregular signal whose time vector does not match its sample count,
	// or an analog signal without a sampling period.
	ErrBadTimeAxis = errors.New("malformed time axis")
)

// AnalogSignal is a regularly sampled, possibly multi-channel signal.
// Samples is indexed [time][channel]; all rows must have the same length.
type AnalogSignal struct {
	Attributes

	// Samples holds the signal values, one row per sample time and one
	// column per channel.
	Samples [][]float64

	// Unit is the physical unit of the sample values.
	Unit string

	// SamplingPeriod is the scalar interval between consecutive samples.
	// It may carry a reciprocal-frequency unit such as "1/kHz".
	SamplingPeriod units.Quantity

	// TStart is the time of the first sample. Defaults to zero seconds.
	TStart units.Quantity
}

// NewAnalogSignal creates an AnalogSignal with TStart of zero seconds.
func NewAnalogSignal(name string, samples [][]float64, unit string, samplingPeriod units.Quantity) *AnalogSignal {
	return &AnalogSignal{
		Attributes:     newAttributes(name),
		Samples:        samples,
		Unit:           unit,
		SamplingPeriod: samplingPeriod,
		TStart:         units.Scalar(0, "s"),
	}
}

// WithTStart sets the time of the first sample and returns the signal.
func (s *AnalogSignal) WithTStart(t units.Quantity) *AnalogSignal {
	s.TStart = t
	return s
}

// ChannelCount returns the number of channels (columns).
func (s *AnalogSignal) ChannelCount() int {
	if len(s.Samples) == 0 {
		return 0
	}
	return len(s.Samples[0])
}

// Channel returns a copy of one channel's samples (one column).
func (s *AnalogSignal) Channel(i int) []float64 {
	col := make([]float64, len(s.Samples))
	for t, row := range s.Samples {
		col[t] = row[i]
	}
	return col
}

// Validate checks that the sample matrix is rectangular and the time axis
// is well formed.
func (s *AnalogSignal) Validate() error {
	if err := checkRectangular(s.Samples); err != nil {
		return err
	}
	if s.SamplingPeriod.Len() != 1 {
		return fmt.Errorf("%w: sampling period must be a scalar quantity", ErrBadTimeAxis)
	}
	if s.TStart.Len() != 1 {
		return fmt.Errorf("%w: t_start must be a scalar quantity", ErrBadTimeAxis)
	}
	return nil
}

// IrregularlySampledSignal is a multi-channel signal with an explicit
// time stamp per sample instead of a fixed sampling period.
type IrregularlySampledSignal struct {
	Attributes

	// Samples holds the signal values, one row per sample time and one
	// column per channel.
	Samples [][]float64

	// Unit is the physical unit of the sample values.
	Unit string

	// Times holds one time stamp per sample row.
	Times units.Quantity
}

// NewIrregularlySampledSignal creates an IrregularlySampledSignal.
func NewIrregularlySampledSignal(name string, times units.Quantity, samples [][]float64, unit string) *IrregularlySampledSignal {
	return &IrregularlySampledSignal{
		Attributes: newAttributes(name),
		Samples:    samples,
		Unit:       unit,
		Times:      times,
	}
}

// ChannelCount returns the number of channels (columns).
func (s *IrregularlySampledSignal) ChannelCount() int {
	if len(s.Samples) == 0 {
		return 0
	}
	return len(s.Samples[0])
}

// Channel returns a copy of one channel's samples (one column).
func (s *IrregularlySampledSignal) Channel(i int) []float64 {
	col := make([]float64, len(s.Samples))
	for t, row := range s.Samples {
		col[t] = row[i]
	}
	return col
}

// Validate checks that the sample matrix is rectangular and that the time
// vector covers every sample row.
func (s *IrregularlySampledSignal) Validate() error {
	if err := checkRectangular(s.Samples); err != nil {
		return err
	}
	if s.Times.Len() != len(s.Samples) {
		return fmt.Errorf("%w: %d time stamps for %d samples",
			ErrBadTimeAxis, s.Times.Len(), len(s.Samples))
	}
	return nil
}

func checkRectangular(samples [][]float64) error {
	if len(samples) == 0 {
		return nil
	}
	width := len(samples[0])
	for i, row := range samples {
		if len(row) != width {
			return fmt.Errorf("%w: row %d has %d values, expected %d",
				ErrRaggedSamples, i, len(row), width)
		}
	}
	return nil
}
