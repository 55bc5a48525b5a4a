package nixio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnode/neonix/neo"
	"github.com/gnode/neonix/nix"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Sink type tags. Each source kind maps to a fixed type tag on the
// objects created for it; the tags are also how contained signals are
// recognized when wiring tag references.
const (
	typeBlock           = "neo.block"
	typeSegment         = "neo.segment"
	typeChannelGroup    = "neo.channelgroup"
	typeChannel         = "neo.recordingchannel"
	typeUnit            = "neo.unit"
	typeAnalogSignal    = "neo.analogsignal"
	typeIrregularSignal = "neo.irregularlysampledsignal"
	typeEpoch           = "neo.epoch"
	typeEvent           = "neo.event"
	typeSpikeTrain      = "neo.spiketrain"
	typeEpochTimes      = "neo.epoch.times"
	typeEpochDurations  = "neo.epoch.durations"
	typeEventTimes      = "neo.event.times"
	typeWaveforms       = "neo.waveforms"
)

// Writer maps source object graphs into an exclusively-owned NIX file.
//
// A Writer is single-threaded: one mapping call runs to completion
// before the next may start, and callers must serialize any concurrent
// use. A failed call leaves the file partially written; there is no
// rollback. Closing the file remains the caller's responsibility.
type Writer struct {
	file   *nix.File
	refs   identityTable
	logger *slog.Logger
	tracer trace.Tracer
	meter  metric.Meter

	objectsWritten metric.Int64Counter
	blocksWritten  metric.Int64Counter
}

// NewWriter creates a Writer over an open file.
func NewWriter(file *nix.File, opts ...Option) (*Writer, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	w := &Writer{
		file:   file,
		refs:   make(identityTable),
		logger: cfg.logger,
		tracer: cfg.tracer,
		meter:  cfg.meter,
	}
	if err := w.initInstruments(); err != nil {
		return nil, err
	}
	return w, nil
}

// WriteBlock maps one source block and everything it contains into the
// file and returns the created sink block. Segments are mapped before
// channel groups; cross-references from channel groups and units are
// wired against objects the segment traversal already created.
func (w *Writer) WriteBlock(ctx context.Context, block *neo.Block) (*nix.Block, error) {
	const op = "Writer.WriteBlock"

	ctx, span := w.startSpan(ctx, "nixio.WriteBlock")
	defer span.End()

	name := blockName(block.Name, w.file.Blocks().Len())
	span.SetAttributes(attribute.String("block", name))

	nixBlock, err := w.file.CreateBlock(name, typeBlock)
	if err != nil {
		return nil, w.fail(span, newStoreError(op, err))
	}
	nixBlock.Definition = block.Description
	path := Path{}.Append(StepBlock, name)
	w.refs.put(block, nixBlock)

	if !block.RecDatetime.IsZero() {
		nixBlock.ForceCreatedAt(block.RecDatetime)
	}
	if err := w.writeCommonMetadata(op, &block.Attributes, nixBlock, path); err != nil {
		return nil, w.fail(span, err)
	}

	for _, seg := range block.Segments {
		if _, err := w.writeSegment(ctx, seg, path); err != nil {
			return nil, w.fail(span, err)
		}
	}
	for _, cg := range block.ChannelGroups {
		if _, err := w.writeChannelGroup(ctx, cg, path); err != nil {
			return nil, w.fail(span, err)
		}
	}

	w.countObject(ctx, "block")
	if w.blocksWritten != nil {
		w.blocksWritten.Add(ctx, 1)
	}
	w.logger.Debug("block written",
		"block", name,
		"segments", len(block.Segments),
		"channel_groups", len(block.ChannelGroups))
	return nixBlock, nil
}

// WriteAllBlocks maps a sequence of source blocks, preserving order in
// the result. Mapping stops at the first failure.
func (w *Writer) WriteAllBlocks(ctx context.Context, blocks []*neo.Block) ([]*nix.Block, error) {
	out := make([]*nix.Block, 0, len(blocks))
	for _, b := range blocks {
		nb, err := w.WriteBlock(ctx, b)
		if err != nil {
			return nil, err
		}
		out = append(out, nb)
	}
	return out, nil
}

// writeSegment maps a segment to a group and recurses into the
// segment's data collections.
func (w *Writer) writeSegment(ctx context.Context, seg *neo.Segment, parentPath Path) (*nix.Group, error) {
	const op = "Writer.writeSegment"

	parentBlock, err := w.blockAt(op, parentPath)
	if err != nil {
		return nil, err
	}

	name := childName(seg.Name, parentBlock.Name(), "Segment", parentBlock.Groups().Len())
	group, err := parentBlock.CreateGroup(name, typeSegment)
	if err != nil {
		return nil, newStoreError(op, err)
	}
	group.Definition = seg.Description
	path := parentPath.Append(StepGroup, name)
	w.refs.put(seg, group)

	if !seg.RecDatetime.IsZero() {
		group.ForceCreatedAt(seg.RecDatetime)
	}
	if err := w.writeCommonMetadata(op, &seg.Attributes, group, path); err != nil {
		return nil, err
	}

	for _, sig := range seg.AnalogSignals {
		if _, err := w.writeAnalogSignal(ctx, sig, path); err != nil {
			return nil, err
		}
	}
	for _, sig := range seg.IrregularlySampledSignals {
		if _, err := w.writeIrregularlySampledSignal(ctx, sig, path); err != nil {
			return nil, err
		}
	}
	for _, ep := range seg.Epochs {
		if _, err := w.writeEpoch(ctx, ep, path); err != nil {
			return nil, err
		}
	}
	for _, ev := range seg.Events {
		if _, err := w.writeEvent(ctx, ev, path); err != nil {
			return nil, err
		}
	}
	for _, st := range seg.SpikeTrains {
		if _, err := w.writeSpikeTrain(ctx, st, path, attachToGroup); err != nil {
			return nil, err
		}
	}

	w.countObject(ctx, "segment")
	return group, nil
}

func errPathGone(p Path) error {
	return fmt.Errorf("tracked path %s no longer resolves", p)
}

func errWrongKind(p Path, obj any, want string) error {
	return fmt.Errorf("object at %s is %T, expected %s", p, obj, want)
}

// blockAt resolves a tracked path that must point at a block.
func (w *Writer) blockAt(op string, path Path) (*nix.Block, error) {
	obj, ok := path.Resolve(w.file)
	if !ok {
		return nil, newInternalError(op, errPathGone(path))
	}
	blk, ok := obj.(*nix.Block)
	if !ok {
		return nil, newInternalError(op, errWrongKind(path, obj, "block"))
	}
	return blk, nil
}

// groupAt resolves a tracked path that must point at a group.
func (w *Writer) groupAt(op string, path Path) (*nix.Group, error) {
	obj, ok := path.Resolve(w.file)
	if !ok {
		return nil, newInternalError(op, errPathGone(path))
	}
	g, ok := obj.(*nix.Group)
	if !ok {
		return nil, newInternalError(op, errWrongKind(path, obj, "group"))
	}
	return g, nil
}

// sourceAt resolves a tracked path that must point at a source.
func (w *Writer) sourceAt(op string, path Path) (*nix.Source, error) {
	obj, ok := path.Resolve(w.file)
	if !ok {
		return nil, newInternalError(op, errPathGone(path))
	}
	src, ok := obj.(*nix.Source)
	if !ok {
		return nil, newInternalError(op, errWrongKind(path, obj, "source"))
	}
	return src, nil
}

// rootBlockOf returns the block at the first step of a path.
func (w *Writer) rootBlockOf(op string, path Path) (*nix.Block, error) {
	if len(path) == 0 {
		return nil, newInternalError(op, fmt.Errorf("empty path"))
	}
	return w.blockAt(op, path[:1])
}

// fail records the error on the span and logs it before returning.
func (w *Writer) fail(span trace.Span, err error) error {
	span.RecordError(err)
	w.logger.Error("mapping failed", "error", err)
	return err
}
