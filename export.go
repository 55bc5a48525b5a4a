package neonix

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/gnode/neonix/neo"
	"github.com/gnode/neonix/nix"
	"github.com/gnode/neonix/nixio"
)

// ExportOption configures an Export call.
type ExportOption func(*exportConfig)

type exportConfig struct {
	mode       nix.FileMode
	logger     *slog.Logger
	fileOpts   []nix.FileOption
	writerOpts []nixio.Option
}

// WithLogger sets the logger used by the container and the writer.
// If not provided, a default logger writing to stdout is created.
func WithLogger(logger *slog.Logger) ExportOption {
	return func(c *exportConfig) {
		c.logger = logger
	}
}

// WithReadWrite keeps existing container content instead of discarding
// it. By default Export overwrites.
func WithReadWrite() ExportOption {
	return func(c *exportConfig) {
		c.mode = nix.ReadWrite
	}
}

// WithSyncWrites enables synchronous writes on flush.
func WithSyncWrites() ExportOption {
	return func(c *exportConfig) {
		c.fileOpts = append(c.fileOpts, nix.WithSyncWrites(true))
	}
}

// WithTracer sets an OpenTelemetry tracer for the export.
func WithTracer(tracer trace.Tracer) ExportOption {
	return func(c *exportConfig) {
		c.writerOpts = append(c.writerOpts, nixio.WithTracer(tracer))
	}
}

// WithMeter sets an OpenTelemetry meter for the export.
func WithMeter(meter metric.Meter) ExportOption {
	return func(c *exportConfig) {
		c.writerOpts = append(c.writerOpts, nixio.WithMeter(meter))
	}
}

// Export writes the blocks to a container at the given path in one
// call: open, map, flush, close. Blocks keep their order. On failure the
// container may be left partially written.
//
// Example:
//
//	block := neo.NewBlock("session-1")
//	block.AddSegment(seg)
//	if err := neonix.Export(ctx, "session.nix", []*neo.Block{block}); err != nil {
//	    log.Fatal(err)
//	}
func Export(ctx context.Context, path string, blocks []*neo.Block, opts ...ExportOption) error {
	cfg := exportConfig{mode: nix.Overwrite}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
	}

	fileOpts := append([]nix.FileOption{nix.WithLogger(cfg.logger)}, cfg.fileOpts...)
	file, err := nix.Open(path, cfg.mode, fileOpts...)
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}
	defer file.Close()

	writerOpts := append([]nixio.Option{nixio.WithLogger(cfg.logger)}, cfg.writerOpts...)
	w, err := nixio.NewWriter(file, writerOpts...)
	if err != nil {
		return fmt.Errorf("create writer: %w", err)
	}

	if _, err := w.WriteAllBlocks(ctx, blocks); err != nil {
		return err
	}
	if err := file.Flush(); err != nil {
		return fmt.Errorf("flush container: %w", err)
	}
	return file.Close()
}

// ExportWithConfig is Export driven by a loaded configuration: the
// container location, mode and store options come from cfg, the logger
// defaults to one at the configured level. Options layer on top of the
// configuration, so WithReadWrite and WithSyncWrites override what cfg
// implies.
func ExportWithConfig(ctx context.Context, cfg *nixio.Config, blocks []*neo.Block, opts ...ExportOption) error {
	ec := exportConfig{mode: cfg.FileMode(), fileOpts: cfg.FileOptions()}
	for _, opt := range opts {
		opt(&ec)
	}
	if ec.logger == nil {
		ec.logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: cfg.SlogLevel(),
		}))
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("open container: %w", err)
	}
	fileOpts := append([]nix.FileOption{nix.WithLogger(ec.logger)}, ec.fileOpts...)
	file, err := nix.Open(cfg.Path, ec.mode, fileOpts...)
	if err != nil {
		return fmt.Errorf("open container: %w", err)
	}
	defer file.Close()

	writerOpts := append([]nixio.Option{nixio.WithLogger(ec.logger)}, ec.writerOpts...)
	w, err := nixio.NewWriter(file, writerOpts...)
	if err != nil {
		return fmt.Errorf("create writer: %w", err)
	}

	if _, err := w.WriteAllBlocks(ctx, blocks); err != nil {
		return err
	}
	if err := file.Flush(); err != nil {
		return fmt.Errorf("flush container: %w", err)
	}
	return file.Close()
}
