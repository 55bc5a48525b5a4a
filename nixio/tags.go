package nixio

import (
	"context"

	"github.com/gnode/neonix/neo"
	"github.com/gnode/neonix/nix"
	"github.com/gnode/neonix/units"
)

// attachment selects where a spike train's tag is hooked in. The call
// site knows which structural case it is in, so the target is passed
// down explicitly instead of inspecting the resolved parent. The two
// targets are mutually exclusive per call; a tag is never attached to
// both.
type attachment int

const (
	attachToGroup attachment = iota
	attachToSource
)

// writeEpoch maps an epoch to a multi tag: times become the positions
// array, durations the extents array, labels a set dimension on the
// positions. The tag references every signal array the segment's group
// holds at this point.
func (w *Writer) writeEpoch(ctx context.Context, ep *neo.Epoch, parentPath Path) (*nix.MultiTag, error) {
	const op = "Writer.writeEpoch"

	if err := ep.Validate(); err != nil {
		return nil, newValidationError(op, err)
	}

	parentGroup, err := w.groupAt(op, parentPath)
	if err != nil {
		return nil, err
	}
	parentBlock, err := w.rootBlockOf(op, parentPath)
	if err != nil {
		return nil, err
	}

	name := childName(ep.Name, parentGroup.Name(), "Epoch", parentGroup.MultiTags().Len())

	timesDa, err := parentBlock.CreateDataArray(name+".times", typeEpochTimes, ep.Times.Values)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	timesDa.Unit = ep.Times.Unit

	durationsDa, err := parentBlock.CreateDataArray(name+".durations", typeEpochDurations, ep.Durations.Values)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	durationsDa.Unit = ep.Durations.Unit

	tag, err := parentBlock.CreateMultiTag(name, typeEpoch, timesDa)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	labelDim := tag.Positions().AppendSetDimension()
	labelDim.Labels = ep.Labels
	tag.Extents = durationsDa
	if err := parentGroup.AddMultiTag(tag); err != nil {
		return nil, newStoreError(op, err)
	}
	tag.Definition = ep.Description
	path := parentPath.Append(StepMultiTag, name)
	w.refs.put(ep, tag)

	if err := w.writeCommonMetadata(op, &ep.Attributes, tag, path); err != nil {
		return nil, err
	}

	for _, da := range containedSignals(parentGroup) {
		tag.AddReference(da)
	}
	w.countObject(ctx, "epoch")
	return tag, nil
}

// writeEvent maps an event to a multi tag; like an epoch, but with no
// extents array.
func (w *Writer) writeEvent(ctx context.Context, ev *neo.Event, parentPath Path) (*nix.MultiTag, error) {
	const op = "Writer.writeEvent"

	if err := ev.Validate(); err != nil {
		return nil, newValidationError(op, err)
	}

	parentGroup, err := w.groupAt(op, parentPath)
	if err != nil {
		return nil, err
	}
	parentBlock, err := w.rootBlockOf(op, parentPath)
	if err != nil {
		return nil, err
	}

	name := childName(ev.Name, parentGroup.Name(), "Event", parentGroup.MultiTags().Len())

	timesDa, err := parentBlock.CreateDataArray(name+".times", typeEventTimes, ev.Times.Values)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	timesDa.Unit = ev.Times.Unit

	tag, err := parentBlock.CreateMultiTag(name, typeEvent, timesDa)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	labelDim := tag.Positions().AppendSetDimension()
	labelDim.Labels = ev.Labels
	if err := parentGroup.AddMultiTag(tag); err != nil {
		return nil, newStoreError(op, err)
	}
	tag.Definition = ev.Description
	path := parentPath.Append(StepMultiTag, name)
	w.refs.put(ev, tag)

	if err := w.writeCommonMetadata(op, &ev.Attributes, tag, path); err != nil {
		return nil, err
	}

	for _, da := range containedSignals(parentGroup) {
		tag.AddReference(da)
	}
	w.countObject(ctx, "event")
	return tag, nil
}

// writeSpikeTrain maps a spike train to a multi tag anchored to its
// spike times. Attached to the segment's group when reached through
// segment traversal; a train reached through a Source descriptor gets
// the descriptor appended to its sources instead. The time range goes
// into metadata (t_start only when present and nonzero, t_stop always),
// rescaled into the unit of the positions array. Waveforms, when
// recorded, become an indexed feature array of shape
// (spike, channel, sample).
func (w *Writer) writeSpikeTrain(ctx context.Context, st *neo.SpikeTrain, parentPath Path, target attachment) (*nix.MultiTag, error) {
	const op = "Writer.writeSpikeTrain"

	if err := st.Validate(); err != nil {
		return nil, newValidationError(op, err)
	}

	parentBlock, err := w.rootBlockOf(op, parentPath)
	if err != nil {
		return nil, err
	}

	name := childName(st.Name, parentBlock.Name(), "SpikeTrain", parentBlock.MultiTags().Len())

	timeUnit := st.Times.Unit
	timesDa, err := parentBlock.CreateDataArray(name+".times", typeEpochTimes, st.Times.Values)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	timesDa.Unit = timeUnit

	tag, err := parentBlock.CreateMultiTag(name, typeSpikeTrain, timesDa)
	if err != nil {
		return nil, newStoreError(op, err)
	}

	switch target {
	case attachToGroup:
		parentGroup, err := w.groupAt(op, parentPath)
		if err != nil {
			return nil, err
		}
		if err := parentGroup.AddMultiTag(tag); err != nil {
			return nil, newStoreError(op, err)
		}
	case attachToSource:
		obj, ok := parentPath.Resolve(w.file)
		if !ok {
			return nil, newInternalError(op, errPathGone(parentPath))
		}
		src, ok := obj.(*nix.Source)
		if !ok {
			return nil, newInternalError(op, errWrongKind(parentPath, obj, "source"))
		}
		tag.AddSource(src)
	}

	tag.Definition = st.Description
	path := parentPath.Append(StepMultiTag, name)
	w.refs.put(st, tag)

	md, err := w.ensureMetadata(tag, path)
	if err != nil {
		return nil, err
	}
	if len(st.Annotations) > 0 {
		if err := addAnnotations(st.Annotations, md); err != nil {
			return nil, newStoreError(op, err)
		}
	}
	if st.FileOrigin != "" {
		if _, err := md.CreateProperty("file_origin", nix.NewValue(st.FileOrigin)); err != nil {
			return nil, newStoreError(op, err)
		}
	}
	if !st.TStart.IsZero() && st.TStart.Item() != 0 {
		tStart, err := st.TStart.Rescale(timeUnit)
		if err != nil {
			return nil, newValidationError(op, err)
		}
		if _, err := md.CreateProperty("t_start", nix.NewValue(tStart.Item())); err != nil {
			return nil, newStoreError(op, err)
		}
	}
	tStop, err := st.TStop.Rescale(timeUnit)
	if err != nil {
		return nil, newValidationError(op, err)
	}
	if _, err := md.CreateProperty("t_stop", nix.NewValue(tStop.Item())); err != nil {
		return nil, newStoreError(op, err)
	}

	if len(st.Waveforms) > 0 {
		if err := w.writeWaveforms(op, st, tag, parentBlock, path, name); err != nil {
			return nil, err
		}
	}
	w.countObject(ctx, "spike_train")
	return tag, nil
}

// writeWaveforms attaches the snippet array as an indexed feature with
// two set dimensions (spike, channel) and one sampled time dimension.
func (w *Writer) writeWaveforms(op string, st *neo.SpikeTrain, tag *nix.MultiTag, parentBlock *nix.Block, tagPath Path, tagName string) error {
	spikes, channels, samples := st.WaveformShape()
	flat := make([]float64, 0, spikes*channels*samples)
	for _, spike := range st.Waveforms {
		for _, ch := range spike {
			flat = append(flat, ch...)
		}
	}

	wfName := tagName + ".waveforms"
	wfDa, err := parentBlock.CreateDataArray(wfName, typeWaveforms, flat, spikes, channels, samples)
	if err != nil {
		return newStoreError(op, err)
	}
	wfDa.Unit = st.WaveformUnit
	tag.CreateFeature(wfDa, nix.LinkIndexed)

	timeUnit := units.Simplify(st.SamplingPeriod.Unit)
	interval, err := st.SamplingPeriod.Rescale(timeUnit)
	if err != nil {
		return newValidationError(op, err)
	}
	wfDa.AppendSetDimension()
	wfDa.AppendSetDimension()
	timeDim := wfDa.AppendSampledDimension(interval.Item())
	timeDim.Unit = timeUnit
	timeDim.Label = "time"

	wfPath := tagPath.Append(StepDataArray, wfName)
	wfMd, err := w.ensureMetadata(wfDa, wfPath)
	if err != nil {
		return err
	}
	if !st.LeftSweep.IsZero() && st.LeftSweep.Item() != 0 {
		leftSweep, err := st.LeftSweep.Rescale(timeUnit)
		if err != nil {
			return newValidationError(op, err)
		}
		if _, err := wfMd.CreateProperty("left_sweep", nix.NewValue(leftSweep.Item())); err != nil {
			return newStoreError(op, err)
		}
	}
	return nil
}
