package nix

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Serialized record layout. Every object is stored under a path-shaped
// key ("block/<b>/group/<g>"), with names escaped so they cannot collide
// with the separator. Links between objects are stored by name or ID.

type objectRecord struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Type       string            `json:"type"`
	Definition string            `json:"definition,omitempty"`
	CreatedAt  int64             `json:"created_at"`
	Metadata   string            `json:"metadata,omitempty"`
	Unit       string            `json:"unit,omitempty"`
	Shape      []int             `json:"shape,omitempty"`
	Data       []float64         `json:"data,omitempty"`
	Dimensions []dimensionRecord `json:"dimensions,omitempty"`
	Positions  string            `json:"positions,omitempty"`
	Extents    string            `json:"extents,omitempty"`
	References []string          `json:"references,omitempty"`
	MultiTags  []string          `json:"multi_tags,omitempty"`
	Sources    []string          `json:"sources,omitempty"`
	Features   []featureRecord   `json:"features,omitempty"`
}

type dimensionRecord struct {
	Kind     string    `json:"kind"`
	Interval float64   `json:"interval,omitempty"`
	Offset   float64   `json:"offset,omitempty"`
	Unit     string    `json:"unit,omitempty"`
	Label    string    `json:"label,omitempty"`
	Ticks    []float64 `json:"ticks,omitempty"`
	Labels   []string  `json:"labels,omitempty"`
}

type featureRecord struct {
	DataArray string `json:"data_array"`
	Link      string `json:"link"`
}

type sectionRecord struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Type       string           `json:"type"`
	Definition string           `json:"definition,omitempty"`
	Properties []propertyRecord `json:"properties,omitempty"`
}

type propertyRecord struct {
	Name   string `json:"name"`
	Values []any  `json:"values"`
}

func storeKey(parts ...string) []byte {
	escaped := make([]string, len(parts))
	for i, p := range parts {
		escaped[i] = url.PathEscape(p)
	}
	return []byte(strings.Join(escaped, "/"))
}

// persist writes the whole object tree into the store in one batch.
func (f *File) persist() error {
	wb := f.db.NewWriteBatch()
	defer wb.Cancel()

	w := &batchWriter{wb: wb}
	for _, blk := range f.blocks.All() {
		w.writeBlock(blk)
	}
	for _, sec := range f.sections.All() {
		w.writeSection([]string{"section"}, sec)
	}
	if w.err != nil {
		return w.err
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}
	f.logger.Debug("container flushed",
		"path", f.path,
		"blocks", f.blocks.Len(),
		"records", w.count)
	return nil
}

type batchWriter struct {
	wb    *badger.WriteBatch
	count int
	err   error
}

func (w *batchWriter) set(key []byte, rec any) {
	if w.err != nil {
		return
	}
	data, err := json.Marshal(rec)
	if err != nil {
		w.err = fmt.Errorf("encode record %q: %w", key, err)
		return
	}
	if err := w.wb.Set(key, data); err != nil {
		w.err = fmt.Errorf("write record %q: %w", key, err)
		return
	}
	w.count++
}

func baseRecord(e *entity) objectRecord {
	rec := objectRecord{
		ID:         e.id,
		Name:       e.name,
		Type:       e.typ,
		Definition: e.Definition,
		CreatedAt:  e.createdAt.Unix(),
	}
	if e.metadata != nil {
		rec.Metadata = e.metadata.ID()
	}
	return rec
}

func (w *batchWriter) writeBlock(b *Block) {
	prefix := []string{"block", b.Name()}
	w.set(storeKey(prefix...), baseRecord(&b.entity))

	for _, da := range b.dataArrays.All() {
		w.writeDataArray(append(prefix, "data_array"), da)
	}
	for _, g := range b.groups.All() {
		w.writeGroup(append(prefix, "group"), g)
	}
	for _, s := range b.sources.All() {
		w.writeSource(append(prefix, "source"), s)
	}
	for _, m := range b.multiTags.All() {
		w.writeMultiTag(append(prefix, "multi_tag"), m)
	}
}

func (w *batchWriter) writeDataArray(prefix []string, d *DataArray) {
	rec := baseRecord(&d.entity)
	rec.Unit = d.Unit
	rec.Shape = d.shape
	rec.Data = d.data
	for _, dim := range d.dims {
		rec.Dimensions = append(rec.Dimensions, encodeDimension(dim))
	}
	for _, s := range d.sources {
		rec.Sources = append(rec.Sources, s.ID())
	}
	w.set(storeKey(append(prefix, d.Name())...), rec)
}

func (w *batchWriter) writeGroup(prefix []string, g *Group) {
	rec := baseRecord(&g.entity)
	for _, da := range g.dataArrays.All() {
		rec.References = append(rec.References, da.Name())
	}
	for _, m := range g.multiTags.All() {
		rec.MultiTags = append(rec.MultiTags, m.Name())
	}
	w.set(storeKey(append(prefix, g.Name())...), rec)
}

func (w *batchWriter) writeSource(prefix []string, s *Source) {
	key := append(prefix, s.Name())
	w.set(storeKey(key...), baseRecord(&s.entity))
	for _, child := range s.sources.All() {
		w.writeSource(append(key, "source"), child)
	}
}

func (w *batchWriter) writeMultiTag(prefix []string, m *MultiTag) {
	rec := baseRecord(&m.entity)
	rec.Positions = m.positions.Name()
	if m.Extents != nil {
		rec.Extents = m.Extents.Name()
	}
	for _, r := range m.references {
		rec.References = append(rec.References, r.Name())
	}
	for _, s := range m.sources {
		rec.Sources = append(rec.Sources, s.ID())
	}
	for _, f := range m.features {
		rec.Features = append(rec.Features, featureRecord{
			DataArray: f.data.Name(),
			Link:      linkTypeName(f.link),
		})
	}
	w.set(storeKey(append(prefix, m.Name())...), rec)
}

func (w *batchWriter) writeSection(prefix []string, s *Section) {
	rec := sectionRecord{
		ID:         s.ID(),
		Name:       s.Name(),
		Type:       s.Type(),
		Definition: s.Definition,
	}
	for _, p := range s.properties.All() {
		pr := propertyRecord{Name: p.Name()}
		for _, v := range p.values {
			pr.Values = append(pr.Values, v.Any())
		}
		rec.Properties = append(rec.Properties, pr)
	}
	key := append(prefix, s.Name())
	w.set(storeKey(key...), rec)
	for _, child := range s.sections.All() {
		w.writeSection(key, child)
	}
}

func encodeDimension(dim Dimension) dimensionRecord {
	switch d := dim.(type) {
	case *SampledDimension:
		return dimensionRecord{
			Kind:     "sampled",
			Interval: d.SamplingInterval,
			Offset:   d.Offset,
			Unit:     d.Unit,
			Label:    d.Label,
		}
	case *RangeDimension:
		return dimensionRecord{
			Kind:  "range",
			Ticks: d.Ticks,
			Unit:  d.Unit,
			Label: d.Label,
		}
	case *SetDimension:
		return dimensionRecord{Kind: "set", Labels: d.Labels}
	default:
		return dimensionRecord{Kind: "unknown"}
	}
}

func linkTypeName(l LinkType) string {
	switch l {
	case LinkTagged:
		return "tagged"
	case LinkIndexed:
		return "indexed"
	default:
		return "untagged"
	}
}
