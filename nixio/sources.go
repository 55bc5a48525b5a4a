package nixio

import (
	"context"

	"github.com/gnode/neonix/neo"
	"github.com/gnode/neonix/nix"
)

// writeChannelGroup maps a channel group to a source descriptor with one
// child descriptor per channel. Channels inherit the group's description
// and file origin and carry their index and, when recorded, spatial
// coordinates in metadata. Units are mapped as further child
// descriptors, and every signal the group references is linked back to
// the group descriptor through the identity table.
func (w *Writer) writeChannelGroup(ctx context.Context, cg *neo.ChannelGroup, parentPath Path) (*nix.Source, error) {
	const op = "Writer.writeChannelGroup"

	if err := cg.Validate(); err != nil {
		return nil, newValidationError(op, err)
	}

	parentBlock, err := w.blockAt(op, parentPath)
	if err != nil {
		return nil, err
	}

	name := childName(cg.Name, parentBlock.Name(), "ChannelGroup", parentBlock.Sources().Len())
	source, err := parentBlock.CreateSource(name, typeChannelGroup)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	source.Definition = cg.Description
	path := parentPath.Append(StepSource, name)
	w.refs.put(cg, source)

	if err := w.writeCommonMetadata(op, &cg.Attributes, source, path); err != nil {
		return nil, err
	}

	for idx, channelIndex := range cg.ChannelIndexes {
		if err := w.writeChannel(op, cg, source, path, idx, channelIndex); err != nil {
			return nil, err
		}
	}

	for _, u := range cg.Units {
		if _, err := w.writeUnit(ctx, u, path); err != nil {
			return nil, err
		}
	}

	for _, sig := range cg.AnalogSignals {
		arrays, err := w.refs.resolveSplit(op, sig)
		if err != nil {
			return nil, err
		}
		for _, da := range arrays {
			da.AddSource(source)
		}
	}
	for _, sig := range cg.IrregularlySampledSignals {
		arrays, err := w.refs.resolveSplit(op, sig)
		if err != nil {
			return nil, err
		}
		for _, da := range arrays {
			da.AddSource(source)
		}
	}

	w.countObject(ctx, "channel_group")
	return source, nil
}

// writeChannel creates the child descriptor for one recording channel.
func (w *Writer) writeChannel(op string, cg *neo.ChannelGroup, group *nix.Source, groupPath Path, idx, channelIndex int) error {
	name := channelName(cg.ChannelNames, group.Name(), idx)
	channel, err := group.CreateSource(name, typeChannel)
	if err != nil {
		return newStoreError(op, err)
	}
	channel.Definition = cg.Description
	path := groupPath.Append(StepSource, name)

	md, err := w.ensureMetadata(channel, path)
	if err != nil {
		return err
	}
	if _, err := md.CreateProperty("index", nix.NewValue(channelIndex)); err != nil {
		return newStoreError(op, err)
	}
	if cg.FileOrigin != "" {
		if _, err := md.CreateProperty("file_origin", nix.NewValue(cg.FileOrigin)); err != nil {
			return newStoreError(op, err)
		}
	}

	if len(cg.Coordinates) > 0 {
		coords := cg.Coordinates[idx]
		values := make([]nix.Value, 0, len(coords))
		unitNames := make([]nix.Value, 0, len(coords))
		for _, c := range coords {
			values = append(values, nix.NewValue(c.Item()))
			unitNames = append(unitNames, nix.NewValue(c.Unit))
		}
		if _, err := md.CreateProperty("coordinates", values...); err != nil {
			return newStoreError(op, err)
		}
		if _, err := md.CreateProperty("coordinates.units", unitNames...); err != nil {
			return newStoreError(op, err)
		}
	}
	return nil
}

// writeUnit maps a sorted unit to a child descriptor of its channel
// group's descriptor. Spike trains the unit references must already have
// been mapped through a segment; each one gets the group descriptor and
// the unit descriptor appended to its sources.
func (w *Writer) writeUnit(ctx context.Context, u *neo.Unit, parentPath Path) (*nix.Source, error) {
	const op = "Writer.writeUnit"

	parentSource, err := w.sourceAt(op, parentPath)
	if err != nil {
		return nil, err
	}

	name := childName(u.Name, parentSource.Name(), "Unit", parentSource.Sources().Len())
	source, err := parentSource.CreateSource(name, typeUnit)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	source.Definition = u.Description
	path := parentPath.Append(StepSource, name)
	w.refs.put(u, source)

	if err := w.writeCommonMetadata(op, &u.Attributes, source, path); err != nil {
		return nil, err
	}

	for _, st := range u.SpikeTrains {
		tag, err := w.refs.resolveMultiTag(op, st)
		if err != nil {
			return nil, err
		}
		tag.AddSource(parentSource)
		tag.AddSource(source)
	}

	w.countObject(ctx, "unit")
	return source, nil
}
