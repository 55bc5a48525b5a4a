package neo

import (
	"errors"
	"fmt"

	"github.com/gnode/neonix/units"
)

// Sentinel errors for spike train validation.
var (
	// ErrMissingTStop indicates a spike train without the mandatory
	// t_stop attribute.
	ErrMissingTStop = errors.New("spike train has no t_stop")

	// ErrBadTimeRange indicates a t_start or t_stop that is not a scalar
	// quantity.
	ErrBadTimeRange = errors.New("malformed time range")

	// ErrBadWaveforms indicates a waveform array that does not match the
	// spike train: wrong spike count, ragged shape, a missing sampling
	// period, or a non-scalar left sweep.
	ErrBadWaveforms = errors.New("malformed waveform array")
)

// SpikeTrain holds the spike times of one unit during one segment,
// optionally with a waveform snippet per spike.
type SpikeTrain struct {
	Attributes

	// Times are the spike times.
	Times units.Quantity

	// TStart is the optional start of the valid time range. A zero value
	// is treated as absent.
	TStart units.Quantity

	// TStop is the end of the valid time range. Mandatory.
	TStop units.Quantity

	// Waveforms optionally holds one snippet per spike, indexed
	// [spike][channel][sample]. Nil when not recorded.
	Waveforms [][][]float64

	// WaveformUnit is the physical unit of the waveform values.
	WaveformUnit string

	// SamplingPeriod is the sample interval of the waveform snippets.
	// Required when Waveforms is set.
	SamplingPeriod units.Quantity

	// LeftSweep is the optional time from the start of a snippet to its
	// spike time. A zero value is treated as absent.
	LeftSweep units.Quantity
}

// NewSpikeTrain creates a SpikeTrain from its spike times and t_stop.
func NewSpikeTrain(name string, times units.Quantity, tStop units.Quantity) *SpikeTrain {
	return &SpikeTrain{
		Attributes: newAttributes(name),
		Times:      times,
		TStop:      tStop,
	}
}

// WithTStart sets the start of the valid time range and returns the train.
func (st *SpikeTrain) WithTStart(t units.Quantity) *SpikeTrain {
	st.TStart = t
	return st
}

// WithWaveforms attaches waveform snippets and their sampling period.
func (st *SpikeTrain) WithWaveforms(waveforms [][][]float64, unit string, samplingPeriod units.Quantity) *SpikeTrain {
	st.Waveforms = waveforms
	st.WaveformUnit = unit
	st.SamplingPeriod = samplingPeriod
	return st
}

// WithLeftSweep sets the left sweep offset and returns the train.
func (st *SpikeTrain) WithLeftSweep(t units.Quantity) *SpikeTrain {
	st.LeftSweep = t
	return st
}

// WaveformShape returns the (spike, channel, sample) extent of the
// waveform array, or zeros when no waveforms are attached.
func (st *SpikeTrain) WaveformShape() (spikes, channels, samples int) {
	if len(st.Waveforms) == 0 {
		return 0, 0, 0
	}
	spikes = len(st.Waveforms)
	channels = len(st.Waveforms[0])
	if channels > 0 {
		samples = len(st.Waveforms[0][0])
	}
	return spikes, channels, samples
}

// Validate checks the mandatory t_stop, that the optional time range
// attributes are scalar, and, when waveforms are attached, that the
// waveform array is cuboid, covers every spike and carries a sampling
// period.
func (st *SpikeTrain) Validate() error {
	if st.TStop.IsZero() {
		return ErrMissingTStop
	}
	if st.TStop.Len() != 1 {
		return fmt.Errorf("%w: t_stop must be a scalar quantity", ErrBadTimeRange)
	}
	if !st.TStart.IsZero() && st.TStart.Len() != 1 {
		return fmt.Errorf("%w: t_start must be a scalar quantity", ErrBadTimeRange)
	}
	if len(st.Waveforms) == 0 {
		return nil
	}
	if len(st.Waveforms) != st.Times.Len() {
		return fmt.Errorf("%w: %d snippets for %d spikes",
			ErrBadWaveforms, len(st.Waveforms), st.Times.Len())
	}
	if st.SamplingPeriod.Len() != 1 {
		return fmt.Errorf("%w: no sampling period", ErrBadWaveforms)
	}
	if !st.LeftSweep.IsZero() && st.LeftSweep.Len() != 1 {
		return fmt.Errorf("%w: left sweep must be a scalar quantity", ErrBadWaveforms)
	}
	channels := len(st.Waveforms[0])
	samples := 0
	if channels > 0 {
		samples = len(st.Waveforms[0][0])
	}
	for i, spike := range st.Waveforms {
		if len(spike) != channels {
			return fmt.Errorf("%w: snippet %d has %d channels, expected %d",
				ErrBadWaveforms, i, len(spike), channels)
		}
		for c, ch := range spike {
			if len(ch) != samples {
				return fmt.Errorf("%w: snippet %d channel %d has %d samples, expected %d",
					ErrBadWaveforms, i, c, len(ch), samples)
			}
		}
	}
	return nil
}
