package nixio

import (
	"context"

	"github.com/gnode/neonix/neo"
	"github.com/gnode/neonix/nix"
	"github.com/gnode/neonix/units"
)

// writeAnalogSignal splits a signal into one data array per channel.
// All arrays share one metadata section, created under the parent
// group's metadata, and each carries a sampled time dimension plus a set
// dimension for the channel axis. The time axis is rescaled into the
// simplified form of the sampling period's unit, so periods derived from
// rates in Hz come out in plain time units.
func (w *Writer) writeAnalogSignal(ctx context.Context, sig *neo.AnalogSignal, parentPath Path) ([]*nix.DataArray, error) {
	const op = "Writer.writeAnalogSignal"

	if err := sig.Validate(); err != nil {
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

	name := childName(sig.Name, parentBlock.Name(), "AnalogSignal", parentBlock.DataArrays().Len())

	parentMd, err := w.ensureMetadata(parentGroup, parentPath)
	if err != nil {
		return nil, err
	}
	section, err := parentMd.CreateSection(name, typeAnalogSignal+".metadata")
	if err != nil {
		return nil, newStoreError(op, err)
	}
	if sig.FileOrigin != "" {
		if _, err := section.CreateProperty("file_origin", nix.NewValue(sig.FileOrigin)); err != nil {
			return nil, newStoreError(op, err)
		}
	}
	if len(sig.Annotations) > 0 {
		if err := addAnnotations(sig.Annotations, section); err != nil {
			return nil, newStoreError(op, err)
		}
	}

	timeUnit := units.Simplify(sig.SamplingPeriod.Unit)
	interval, err := sig.SamplingPeriod.Rescale(timeUnit)
	if err != nil {
		return nil, newValidationError(op, err)
	}
	offset, err := sig.TStart.Rescale(timeUnit)
	if err != nil {
		return nil, newValidationError(op, err)
	}

	arrays := make([]*nix.DataArray, 0, sig.ChannelCount())
	for idx := 0; idx < sig.ChannelCount(); idx++ {
		da, err := parentBlock.CreateDataArray(splitName(name, idx), typeAnalogSignal, sig.Channel(idx))
		if err != nil {
			return nil, newStoreError(op, err)
		}
		da.Definition = sig.Description
		da.Unit = sig.Unit

		timeDim := da.AppendSampledDimension(interval.Item())
		timeDim.Unit = timeUnit
		timeDim.Label = "time"
		timeDim.Offset = offset.Item()
		da.AppendSetDimension()

		if err := parentGroup.AddDataArray(da); err != nil {
			return nil, newStoreError(op, err)
		}
		da.SetMetadata(section)
		arrays = append(arrays, da)
	}
	w.refs.put(sig, arrays)
	w.countObject(ctx, "analog_signal")
	return arrays, nil
}

// writeIrregularlySampledSignal is the per-channel split for signals
// with explicit time stamps: the time axis becomes a range dimension
// listing every tick in the times' own unit.
func (w *Writer) writeIrregularlySampledSignal(ctx context.Context, sig *neo.IrregularlySampledSignal, parentPath Path) ([]*nix.DataArray, error) {
	const op = "Writer.writeIrregularlySampledSignal"

	if err := sig.Validate(); err != nil {
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

	name := childName(sig.Name, parentBlock.Name(), "IrregularlySampledSignal", parentBlock.DataArrays().Len())

	parentMd, err := w.ensureMetadata(parentGroup, parentPath)
	if err != nil {
		return nil, err
	}
	section, err := parentMd.CreateSection(name, typeIrregularSignal+".metadata")
	if err != nil {
		return nil, newStoreError(op, err)
	}
	if sig.FileOrigin != "" {
		if _, err := section.CreateProperty("file_origin", nix.NewValue(sig.FileOrigin)); err != nil {
			return nil, newStoreError(op, err)
		}
	}
	if len(sig.Annotations) > 0 {
		if err := addAnnotations(sig.Annotations, section); err != nil {
			return nil, newStoreError(op, err)
		}
	}

	arrays := make([]*nix.DataArray, 0, sig.ChannelCount())
	for idx := 0; idx < sig.ChannelCount(); idx++ {
		da, err := parentBlock.CreateDataArray(splitName(name, idx), typeIrregularSignal, sig.Channel(idx))
		if err != nil {
			return nil, newStoreError(op, err)
		}
		da.Definition = sig.Description
		da.Unit = sig.Unit

		timeDim := da.AppendRangeDimension(sig.Times.Values)
		timeDim.Unit = sig.Times.Unit
		timeDim.Label = "time"
		da.AppendSetDimension()

		if err := parentGroup.AddDataArray(da); err != nil {
			return nil, newStoreError(op, err)
		}
		da.SetMetadata(section)
		arrays = append(arrays, da)
	}
	w.refs.put(sig, arrays)
	w.countObject(ctx, "irregularly_sampled_signal")
	return arrays, nil
}
