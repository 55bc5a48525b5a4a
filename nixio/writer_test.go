package nixio

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnode/neonix/neo"
	"github.com/gnode/neonix/nix"
	"github.com/gnode/neonix/units"
)

func newTestFile(t *testing.T) *nix.File {
	t.Helper()
	f, err := nix.Open("", nix.Overwrite, nix.WithInMemory())
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = f.Close()
	})
	return f
}

func newTestWriter(t *testing.T) (*Writer, *nix.File) {
	t.Helper()
	f := newTestFile(t)
	w, err := NewWriter(f)
	require.NoError(t, err)
	return w, f
}

func TestWriteBlockAnonymousNames(t *testing.T) {
	w, f := newTestWriter(t)
	ctx := context.Background()

	first, err := w.WriteBlock(ctx, neo.NewBlock(""))
	require.NoError(t, err)
	second, err := w.WriteBlock(ctx, neo.NewBlock(""))
	require.NoError(t, err)

	assert.Equal(t, "neo.Block0", first.Name())
	assert.Equal(t, "neo.Block1", second.Name())
	assert.Equal(t, "neo.block", first.Type())
	assert.True(t, f.Blocks().Has("neo.Block0"))
	assert.True(t, f.Blocks().Has("neo.Block1"))
}

func TestWriteBlockAttributes(t *testing.T) {
	w, f := newTestWriter(t)

	rec := time.Date(2015, 2, 14, 10, 30, 0, 500, time.UTC)
	fileTime := time.Date(2015, 2, 14, 12, 0, 0, 0, time.UTC)

	block := neo.NewBlock("session-7").WithDescription("overnight recording")
	block.RecDatetime = rec
	block.FileDatetime = fileTime
	block.FileOrigin = "/data/session-7.dat"
	block.Annotate("experimenter", "jd")
	block.Annotate("depth_um", 420)

	nixBlock, err := w.WriteBlock(context.Background(), block)
	require.NoError(t, err)

	assert.Equal(t, "overnight recording", nixBlock.Definition)
	assert.Equal(t, rec.Truncate(time.Second), nixBlock.CreatedAt())

	md := nixBlock.Metadata()
	require.NotNil(t, md)
	assert.Equal(t, "neo.block.metadata", md.Type())

	rootMd, ok := f.Sections().Get("session-7")
	require.True(t, ok)
	assert.Same(t, md, rootMd)

	origin, ok := md.Property("file_origin")
	require.True(t, ok)
	assert.Equal(t, "/data/session-7.dat", origin.Value().Any())

	datetime, ok := md.Property("file_datetime")
	require.True(t, ok)
	assert.Equal(t, fileTime.Unix(), datetime.Value().Any())

	depth, ok := md.Property("depth_um")
	require.True(t, ok)
	assert.Equal(t, int64(420), depth.Value().Any())
	_, ok = md.Property("experimenter")
	assert.True(t, ok)
}

func TestAnonymousSegmentNames(t *testing.T) {
	w, _ := newTestWriter(t)

	block := neo.NewBlock("b").
		AddSegment(neo.NewSegment("")).
		AddSegment(neo.NewSegment("")).
		AddSegment(neo.NewSegment(""))

	nixBlock, err := w.WriteBlock(context.Background(), block)
	require.NoError(t, err)

	require.Equal(t, 3, nixBlock.Groups().Len())
	for i, want := range []string{"b.Segment0", "b.Segment1", "b.Segment2"} {
		g := nixBlock.Groups().At(i)
		assert.Equal(t, want, g.Name())
		assert.Equal(t, "neo.segment", g.Type())
	}
}

func TestSynthesizedNamesDeterministic(t *testing.T) {
	build := func() *neo.Block {
		sig := neo.NewAnalogSignal("", [][]float64{{0, 1}}, "mV", units.Scalar(1, "ms"))
		st := neo.NewSpikeTrain("", units.New([]float64{1}, "s"), units.Scalar(2, "s"))
		return neo.NewBlock("").
			AddSegment(neo.NewSegment("").AddAnalogSignal(sig).AddSpikeTrain(st))
	}

	mapped := func() []string {
		w, _ := newTestWriter(t)
		nixBlock, err := w.WriteBlock(context.Background(), build())
		require.NoError(t, err)

		names := []string{nixBlock.Name()}
		for _, g := range nixBlock.Groups().All() {
			names = append(names, g.Name())
		}
		for _, da := range nixBlock.DataArrays().All() {
			names = append(names, da.Name())
		}
		for _, mt := range nixBlock.MultiTags().All() {
			names = append(names, mt.Name())
		}
		return names
	}

	assert.Equal(t, mapped(), mapped(), "fresh stores yield identical synthesized names")
}

func TestDuplicateExplicitNames(t *testing.T) {
	w, _ := newTestWriter(t)

	block := neo.NewBlock("b").
		AddSegment(neo.NewSegment("trial")).
		AddSegment(neo.NewSegment("trial"))

	_, err := w.WriteBlock(context.Background(), block)
	assert.ErrorIs(t, err, nix.ErrNameExists)
}

func TestAnalogSignalSplit(t *testing.T) {
	w, _ := newTestWriter(t)

	samples := [][]float64{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{9, 10, 11},
	}
	sig := neo.NewAnalogSignal("", samples, "mV", units.Scalar(1, "1/kHz"))
	sig.FileOrigin = "/data/raw.dat"
	sig.Annotate("probe", "A1")

	block := neo.NewBlock("b").AddSegment(neo.NewSegment("seg").AddAnalogSignal(sig))
	nixBlock, err := w.WriteBlock(context.Background(), block)
	require.NoError(t, err)

	require.Equal(t, 3, nixBlock.DataArrays().Len())
	group, ok := nixBlock.Groups().Get("seg")
	require.True(t, ok)
	require.Equal(t, 3, group.DataArrays().Len())

	var shared *nix.Section
	for i, want := range []string{"b.AnalogSignal0.0", "b.AnalogSignal0.1", "b.AnalogSignal0.2"} {
		da, ok := nixBlock.DataArrays().Get(want)
		require.True(t, ok, want)
		assert.Equal(t, "neo.analogsignal", da.Type())
		assert.Equal(t, "mV", da.Unit)
		assert.Equal(t, sig.Channel(i), da.Data())

		dims := da.Dimensions()
		require.Len(t, dims, 2)
		timeDim, ok := dims[0].(*nix.SampledDimension)
		require.True(t, ok)
		assert.Equal(t, 1.0, timeDim.SamplingInterval)
		assert.Equal(t, "ms", timeDim.Unit)
		assert.Equal(t, "time", timeDim.Label)
		assert.Equal(t, 0.0, timeDim.Offset)
		assert.Equal(t, nix.DimensionSet, dims[1].Kind())

		require.NotNil(t, da.Metadata())
		if shared == nil {
			shared = da.Metadata()
		} else {
			assert.Same(t, shared, da.Metadata())
		}
	}

	origin, ok := shared.Property("file_origin")
	require.True(t, ok)
	assert.Equal(t, "/data/raw.dat", origin.Value().Any())
	_, ok = shared.Property("probe")
	assert.True(t, ok)

	// shared section lives under the segment's metadata
	assert.Same(t, group.Metadata(), shared.Parent())
}

func TestIrregularlySampledSignal(t *testing.T) {
	w, _ := newTestWriter(t)

	times := units.New([]float64{0.1, 0.5, 1.2}, "s")
	samples := [][]float64{{1, 10}, {2, 20}, {3, 30}}
	sig := neo.NewIrregularlySampledSignal("breathing", times, samples, "uV")

	block := neo.NewBlock("b").AddSegment(neo.NewSegment("seg").AddIrregularlySampledSignal(sig))
	nixBlock, err := w.WriteBlock(context.Background(), block)
	require.NoError(t, err)

	da, ok := nixBlock.DataArrays().Get("breathing.0")
	require.True(t, ok)
	assert.Equal(t, "neo.irregularlysampledsignal", da.Type())

	dims := da.Dimensions()
	require.Len(t, dims, 2)
	timeDim, ok := dims[0].(*nix.RangeDimension)
	require.True(t, ok)
	assert.Equal(t, times.Values, timeDim.Ticks)
	assert.Equal(t, "s", timeDim.Unit)
}

func TestMetadataTreeFollowsStructure(t *testing.T) {
	w, f := newTestWriter(t)

	sig := neo.NewAnalogSignal("lfp", [][]float64{{0}}, "mV", units.Scalar(1, "ms"))
	block := neo.NewBlock("b").AddSegment(neo.NewSegment("seg").AddAnalogSignal(sig))
	block.FileOrigin = "/data/b.dat"

	nixBlock, err := w.WriteBlock(context.Background(), block)
	require.NoError(t, err)

	blockMd := nixBlock.Metadata()
	require.NotNil(t, blockMd)
	assert.Nil(t, blockMd.Parent())
	assert.True(t, f.Sections().Has("b"))

	group, _ := nixBlock.Groups().Get("seg")
	groupMd := group.Metadata()
	require.NotNil(t, groupMd)
	assert.Same(t, blockMd, groupMd.Parent())

	da, _ := nixBlock.DataArrays().Get("lfp.0")
	require.NotNil(t, da.Metadata())
	assert.Same(t, groupMd, da.Metadata().Parent())
}

func TestEpochMapping(t *testing.T) {
	w, _ := newTestWriter(t)

	sig := neo.NewAnalogSignal("lfp", [][]float64{{0, 0}, {1, 1}}, "mV", units.Scalar(1, "ms"))
	epoch := neo.NewEpoch("", units.New([]float64{1, 5, 9}, "s"), units.New([]float64{0.5, 0.5, 0.5}, "s")).
		WithLabels("rest", "stim", "rest")

	seg := neo.NewSegment("seg").AddAnalogSignal(sig).AddEpoch(epoch)
	nixBlock, err := w.WriteBlock(context.Background(), neo.NewBlock("b").AddSegment(seg))
	require.NoError(t, err)

	group, _ := nixBlock.Groups().Get("seg")
	tag, ok := group.MultiTags().Get("seg.Epoch0")
	require.True(t, ok)
	assert.Equal(t, "neo.epoch", tag.Type())

	positions := tag.Positions()
	assert.Equal(t, "seg.Epoch0.times", positions.Name())
	assert.Equal(t, "neo.epoch.times", positions.Type())
	assert.Equal(t, "s", positions.Unit)
	assert.Equal(t, []float64{1, 5, 9}, positions.Data())

	require.NotNil(t, tag.Extents)
	assert.Equal(t, "seg.Epoch0.durations", tag.Extents.Name())
	assert.Equal(t, []float64{0.5, 0.5, 0.5}, tag.Extents.Data())

	dims := positions.Dimensions()
	require.Len(t, dims, 1)
	labelDim, ok := dims[0].(*nix.SetDimension)
	require.True(t, ok)
	assert.Equal(t, []string{"rest", "stim", "rest"}, labelDim.Labels)

	assert.True(t, tag.HasReference("lfp.0"))
	assert.True(t, tag.HasReference("lfp.1"))
}

func TestEventMapping(t *testing.T) {
	w, _ := newTestWriter(t)

	event := neo.NewEvent("triggers", units.New([]float64{0.1, 0.2}, "s")).WithLabels("on", "off")
	seg := neo.NewSegment("seg").AddEvent(event)
	nixBlock, err := w.WriteBlock(context.Background(), neo.NewBlock("b").AddSegment(seg))
	require.NoError(t, err)

	group, _ := nixBlock.Groups().Get("seg")
	tag, ok := group.MultiTags().Get("triggers")
	require.True(t, ok)
	assert.Equal(t, "neo.event", tag.Type())
	assert.Equal(t, "neo.event.times", tag.Positions().Type())
	assert.Nil(t, tag.Extents)
}

func TestSpikeTrainTimeRange(t *testing.T) {
	w, _ := newTestWriter(t)

	withStart := neo.NewSpikeTrain("st-started",
		units.New([]float64{100, 200, 300}, "ms"), units.Scalar(1, "s")).
		WithTStart(units.Scalar(0.05, "s"))
	withoutStart := neo.NewSpikeTrain("st-bare",
		units.New([]float64{10, 20}, "ms"), units.Scalar(1, "s"))
	zeroStart := neo.NewSpikeTrain("st-zero",
		units.New([]float64{10, 20}, "ms"), units.Scalar(1, "s")).
		WithTStart(units.Scalar(0, "s"))

	seg := neo.NewSegment("seg").
		AddSpikeTrain(withStart).
		AddSpikeTrain(withoutStart).
		AddSpikeTrain(zeroStart)
	nixBlock, err := w.WriteBlock(context.Background(), neo.NewBlock("b").AddSegment(seg))
	require.NoError(t, err)

	group, _ := nixBlock.Groups().Get("seg")

	tag, ok := group.MultiTags().Get("st-started")
	require.True(t, ok)
	assert.Equal(t, "neo.spiketrain", tag.Type())
	assert.Equal(t, "neo.epoch.times", tag.Positions().Type())
	assert.Equal(t, "ms", tag.Positions().Unit)

	md := tag.Metadata()
	require.NotNil(t, md)
	tStart, ok := md.Property("t_start")
	require.True(t, ok)
	assert.InDelta(t, 50.0, tStart.Value().Any().(float64), 1e-9)
	tStop, ok := md.Property("t_stop")
	require.True(t, ok)
	assert.InDelta(t, 1000.0, tStop.Value().Any().(float64), 1e-9)

	for _, name := range []string{"st-bare", "st-zero"} {
		tag, ok := group.MultiTags().Get(name)
		require.True(t, ok)
		md := tag.Metadata()
		require.NotNil(t, md)
		_, ok = md.Property("t_start")
		assert.False(t, ok, name)
		_, ok = md.Property("t_stop")
		assert.True(t, ok, name)
	}
}

func TestSpikeTrainWaveforms(t *testing.T) {
	w, _ := newTestWriter(t)

	waveforms := [][][]float64{
		{{0, 1, 2, 3}, {4, 5, 6, 7}},
		{{8, 9, 10, 11}, {12, 13, 14, 15}},
		{{16, 17, 18, 19}, {20, 21, 22, 23}},
	}
	st := neo.NewSpikeTrain("st1", units.New([]float64{1, 2, 3}, "ms"), units.Scalar(5, "ms")).
		WithWaveforms(waveforms, "mV", units.Scalar(0.25, "ms")).
		WithLeftSweep(units.Scalar(1, "ms"))

	seg := neo.NewSegment("seg").AddSpikeTrain(st)
	nixBlock, err := w.WriteBlock(context.Background(), neo.NewBlock("b").AddSegment(seg))
	require.NoError(t, err)

	wfDa, ok := nixBlock.DataArrays().Get("st1.waveforms")
	require.True(t, ok)
	assert.Equal(t, "neo.waveforms", wfDa.Type())
	assert.Equal(t, "mV", wfDa.Unit)
	assert.Equal(t, []int{3, 2, 4}, wfDa.Shape())

	group, _ := nixBlock.Groups().Get("seg")
	tag, _ := group.MultiTags().Get("st1")
	features := tag.Features()
	require.Len(t, features, 1)
	assert.Same(t, wfDa, features[0].Data())
	assert.Equal(t, nix.LinkIndexed, features[0].Link())

	dims := wfDa.Dimensions()
	require.Len(t, dims, 3)
	assert.Equal(t, nix.DimensionSet, dims[0].Kind())
	assert.Equal(t, nix.DimensionSet, dims[1].Kind())
	timeDim, ok := dims[2].(*nix.SampledDimension)
	require.True(t, ok)
	assert.Equal(t, 0.25, timeDim.SamplingInterval)
	assert.Equal(t, "ms", timeDim.Unit)
	assert.Equal(t, "time", timeDim.Label)

	wfMd := wfDa.Metadata()
	require.NotNil(t, wfMd)
	assert.Same(t, tag.Metadata(), wfMd.Parent())
	leftSweep, ok := wfMd.Property("left_sweep")
	require.True(t, ok)
	assert.InDelta(t, 1.0, leftSweep.Value().Any().(float64), 1e-9)
}

func TestChannelGroupDescriptors(t *testing.T) {
	w, _ := newTestWriter(t)

	sig := neo.NewAnalogSignal("lfp", [][]float64{{0, 0, 0}, {1, 1, 1}}, "mV", units.Scalar(1, "ms"))
	cg := neo.NewChannelGroup("array", []int{4, 5, 6}).WithChannelNames("tip")
	cg.Description = "tetrode bundle"
	cg.FileOrigin = "/data/probes.yaml"
	cg.AnalogSignals = []*neo.AnalogSignal{sig}
	cg.Coordinates = [][]units.Quantity{
		{units.Scalar(0, "um"), units.Scalar(10, "um")},
		{units.Scalar(5, "um"), units.Scalar(10, "um")},
		{units.Scalar(10, "um"), units.Scalar(10, "um")},
	}

	block := neo.NewBlock("b").
		AddSegment(neo.NewSegment("seg").AddAnalogSignal(sig)).
		AddChannelGroup(cg)
	nixBlock, err := w.WriteBlock(context.Background(), block)
	require.NoError(t, err)

	source, ok := nixBlock.Sources().Get("array")
	require.True(t, ok)
	assert.Equal(t, "neo.channelgroup", source.Type())
	assert.Equal(t, "tetrode bundle", source.Definition)

	require.Equal(t, 3, source.Sources().Len())
	for i, want := range []string{"tip", "array.1", "array.2"} {
		ch := source.Sources().At(i)
		assert.Equal(t, want, ch.Name())
		assert.Equal(t, "neo.recordingchannel", ch.Type())
		assert.Equal(t, "tetrode bundle", ch.Definition)

		md := ch.Metadata()
		require.NotNil(t, md)
		index, ok := md.Property("index")
		require.True(t, ok)
		assert.Equal(t, int64(4+i), index.Value().Any())
		origin, ok := md.Property("file_origin")
		require.True(t, ok)
		assert.Equal(t, "/data/probes.yaml", origin.Value().Any())

		coords, ok := md.Property("coordinates")
		require.True(t, ok)
		require.Len(t, coords.Values(), 2)
		coordUnits, ok := md.Property("coordinates.units")
		require.True(t, ok)
		assert.Equal(t, "um", coordUnits.Value().Any())
	}

	// the split signal arrays point back at the group descriptor
	for _, name := range []string{"lfp.0", "lfp.1", "lfp.2"} {
		da, ok := nixBlock.DataArrays().Get(name)
		require.True(t, ok)
		assert.True(t, da.HasSource("array"), name)
	}
}

func TestUnitBackReferences(t *testing.T) {
	w, _ := newTestWriter(t)

	st := neo.NewSpikeTrain("train0", units.New([]float64{0.01, 3.3, 9.3}, "s"), units.Scalar(10, "s"))
	unit := neo.NewUnit("pyramidal").AddSpikeTrain(st)
	cg := neo.NewChannelGroup("array", []int{0}).AddUnit(unit)

	block := neo.NewBlock("b").
		AddSegment(neo.NewSegment("seg").AddSpikeTrain(st)).
		AddChannelGroup(cg)
	nixBlock, err := w.WriteBlock(context.Background(), block)
	require.NoError(t, err)

	cgSource, ok := nixBlock.Sources().Get("array")
	require.True(t, ok)
	unitSource, ok := cgSource.Sources().Get("pyramidal")
	require.True(t, ok)
	assert.Equal(t, "neo.unit", unitSource.Type())

	group, _ := nixBlock.Groups().Get("seg")
	tag, ok := group.MultiTags().Get("train0")
	require.True(t, ok)
	assert.True(t, tag.HasSource("array"))
	assert.True(t, tag.HasSource("pyramidal"))
}

func TestUnresolvedSpikeTrain(t *testing.T) {
	w, _ := newTestWriter(t)

	st := neo.NewSpikeTrain("orphan", units.New([]float64{1}, "s"), units.Scalar(2, "s"))
	unit := neo.NewUnit("u").AddSpikeTrain(st)
	cg := neo.NewChannelGroup("array", []int{0}).AddUnit(unit)

	// the spike train is never placed in a segment
	block := neo.NewBlock("b").
		AddSegment(neo.NewSegment("seg")).
		AddChannelGroup(cg)
	_, err := w.WriteBlock(context.Background(), block)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestUnresolvedSignal(t *testing.T) {
	w, _ := newTestWriter(t)

	sig := neo.NewAnalogSignal("lfp", [][]float64{{0}}, "mV", units.Scalar(1, "ms"))
	cg := neo.NewChannelGroup("array", []int{0})
	cg.AnalogSignals = []*neo.AnalogSignal{sig}

	block := neo.NewBlock("b").AddChannelGroup(cg)
	_, err := w.WriteBlock(context.Background(), block)
	assert.ErrorIs(t, err, ErrUnresolvedReference)
}

func TestValidationErrors(t *testing.T) {
	w, _ := newTestWriter(t)
	ctx := context.Background()

	ragged := neo.NewAnalogSignal("bad", [][]float64{{1, 2}, {3}}, "mV", units.Scalar(1, "ms"))
	block := neo.NewBlock("b").AddSegment(neo.NewSegment("seg").AddAnalogSignal(ragged))
	_, err := w.WriteBlock(ctx, block)
	assert.ErrorIs(t, err, neo.ErrRaggedSamples)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, KindValidation, ioErr.Kind)
}

func TestSpikeTrainAttachedToSource(t *testing.T) {
	w, f := newTestWriter(t)
	ctx := context.Background()

	blk, err := f.CreateBlock("b", typeBlock)
	require.NoError(t, err)
	_, err = blk.CreateSource("array", typeChannelGroup)
	require.NoError(t, err)

	st := neo.NewSpikeTrain("st", units.New([]float64{0.1}, "s"), units.Scalar(1, "s"))
	path := Path{}.Append(StepBlock, "b").Append(StepSource, "array")
	tag, err := w.writeSpikeTrain(ctx, st, path, attachToSource)
	require.NoError(t, err)

	assert.True(t, tag.HasSource("array"), "tag hangs off the descriptor, not a group")
	assert.Zero(t, blk.Groups().Len())
	assert.True(t, blk.MultiTags().Has("st"))
}

func TestVectorTimeRangeFailsValidation(t *testing.T) {
	w, _ := newTestWriter(t)
	ctx := context.Background()

	st := neo.NewSpikeTrain("st", units.New([]float64{0.1, 0.2}, "s"), units.Scalar(1, "s")).
		WithTStart(units.New([]float64{0, 0.05}, "s"))
	block := neo.NewBlock("b").AddSegment(neo.NewSegment("seg").AddSpikeTrain(st))

	_, err := w.WriteBlock(ctx, block)
	assert.ErrorIs(t, err, neo.ErrBadTimeRange)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, KindValidation, ioErr.Kind)
}

func TestVectorCoordinateFailsValidation(t *testing.T) {
	w, _ := newTestWriter(t)

	cg := neo.NewChannelGroup("array", []int{0}).
		WithCoordinates([][]units.Quantity{{units.New([]float64{1, 2}, "um")}})
	block := neo.NewBlock("b").AddChannelGroup(cg)

	_, err := w.WriteBlock(context.Background(), block)
	assert.ErrorIs(t, err, neo.ErrRaggedChannels)

	var ioErr *IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, KindValidation, ioErr.Kind)
}

func TestWriteAllBlocks(t *testing.T) {
	w, _ := newTestWriter(t)

	blocks := []*neo.Block{neo.NewBlock("alpha"), neo.NewBlock("beta"), neo.NewBlock("gamma")}
	out, err := w.WriteAllBlocks(context.Background(), blocks)
	require.NoError(t, err)

	require.Len(t, out, 3)
	for i, want := range []string{"alpha", "beta", "gamma"} {
		assert.Equal(t, want, out[i].Name())
	}
}

func TestWriteAllBlocksStopsAtFailure(t *testing.T) {
	w, f := newTestWriter(t)

	bad := neo.NewBlock("bad").AddSegment(neo.NewSegment("s")).AddSegment(neo.NewSegment("s"))
	blocks := []*neo.Block{neo.NewBlock("ok"), bad, neo.NewBlock("never")}
	_, err := w.WriteAllBlocks(context.Background(), blocks)
	require.Error(t, err)
	assert.True(t, f.Blocks().Has("ok"))
	assert.False(t, f.Blocks().Has("never"))
}
