package neo

import (
	"errors"
	"fmt"

	"github.com/gnode/neonix/units"
)

// ErrRaggedChannels indicates that per-channel attribute lists disagree
// with the channel index list in a way the model cannot interpret.
var ErrRaggedChannels = errors.New("per-channel attributes do not match channel indexes")

// ChannelGroup is a logical grouping of recording channels, such as the
// channels of one electrode array. It owns Units and references the
// signals recorded through its channels; the signal references point at
// instances that are also owned by Segments.
type ChannelGroup struct {
	Attributes

	// ChannelIndexes are the indexes of the channels in this group.
	ChannelIndexes []int

	// ChannelNames optionally names each channel. The list may be empty;
	// if present but shorter than ChannelIndexes, the trailing channels
	// fall back to positional names at write time.
	ChannelNames []string

	// Coordinates optionally gives the spatial position of each channel
	// as a list of scalar quantities (one per spatial axis).
	Coordinates [][]units.Quantity

	// Units are the spike-sorted units recorded through this group.
	Units []*Unit

	// AnalogSignals references the analog signals recorded through this
	// group's channels.
	AnalogSignals []*AnalogSignal

	// IrregularlySampledSignals references the irregularly sampled
	// signals recorded through this group's channels.
	IrregularlySampledSignals []*IrregularlySampledSignal
}

// NewChannelGroup creates a ChannelGroup over the given channel indexes.
func NewChannelGroup(name string, channelIndexes []int) *ChannelGroup {
	return &ChannelGroup{
		Attributes:     newAttributes(name),
		ChannelIndexes: channelIndexes,
	}
}

// WithChannelNames sets the per-channel names and returns the group.
func (cg *ChannelGroup) WithChannelNames(names ...string) *ChannelGroup {
	cg.ChannelNames = names
	return cg
}

// WithCoordinates sets the per-channel spatial coordinates and returns
// the group.
func (cg *ChannelGroup) WithCoordinates(coords [][]units.Quantity) *ChannelGroup {
	cg.Coordinates = coords
	return cg
}

// AddUnit appends a unit to the group.
func (cg *ChannelGroup) AddUnit(u *Unit) *ChannelGroup {
	cg.Units = append(cg.Units, u)
	return cg
}

// Validate checks the per-channel attribute lists against the channel
// index list. Channel names may be absent or shorter than the index list;
// coordinates, when present, must cover every channel and hold a scalar
// quantity per spatial axis.
func (cg *ChannelGroup) Validate() error {
	if len(cg.ChannelNames) > len(cg.ChannelIndexes) {
		return fmt.Errorf("%w: %d names for %d channels",
			ErrRaggedChannels, len(cg.ChannelNames), len(cg.ChannelIndexes))
	}
	if len(cg.Coordinates) > 0 && len(cg.Coordinates) != len(cg.ChannelIndexes) {
		return fmt.Errorf("%w: %d coordinate sets for %d channels",
			ErrRaggedChannels, len(cg.Coordinates), len(cg.ChannelIndexes))
	}
	for ch, coords := range cg.Coordinates {
		for axis, c := range coords {
			if c.Len() != 1 {
				return fmt.Errorf("%w: coordinate axis %d of channel %d is not a scalar quantity",
					ErrRaggedChannels, axis, ch)
			}
		}
	}
	return nil
}
