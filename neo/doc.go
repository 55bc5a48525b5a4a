// Package neo defines the source object model for neural recording data.
//
// The model is a containment hierarchy rooted at Block:
//
//   - Block: one recording session, owning Segments and ChannelGroups
//   - Segment: a time-aligned stretch of recording, owning signals,
//     events, epochs and spike trains
//   - ChannelGroup: a logical grouping of recording channels (for example
//     one electrode array), owning Units and referencing signals
//   - Unit: a spike-sorted neural unit, referencing SpikeTrains
//
// Alongside containment the model carries cross-references: a SpikeTrain
// owned by a Segment may also be referenced by a Unit, and a ChannelGroup
// references the signals recorded through its channels. These references
// point at the same instances, not copies.
//
// Every entity carries a stable identity key assigned at construction.
// Mappers use that key, rather than pointer identity, to correlate an
// entity with whatever it was converted into.
//
// Objects in this package are plain data with builder-style helpers; they
// perform no I/O. See the nixio package for writing them to a NIX file.
package neo
