package nixio

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/gnode/neonix/nixio"

// initInstruments creates the metric instruments the writer records to.
func (w *Writer) initInstruments() error {
	var err error

	w.objectsWritten, err = w.meter.Int64Counter(
		"nixio.objects_written",
		metric.WithDescription("Number of sink objects created, by source kind"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("create objects counter: %w", err)
	}

	w.blocksWritten, err = w.meter.Int64Counter(
		"nixio.blocks_written",
		metric.WithDescription("Number of blocks mapped"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("create blocks counter: %w", err)
	}

	return nil
}

func (w *Writer) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return w.tracer.Start(ctx, name)
}

// countObject increments the object counter with the source kind
// attached as an attribute.
func (w *Writer) countObject(ctx context.Context, kind string) {
	if w.objectsWritten == nil {
		return
	}
	w.objectsWritten.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
