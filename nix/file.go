package nix

import (
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// FileMode controls how an existing container at the path is treated.
type FileMode int

const (
	// Overwrite discards any previous content of the container.
	Overwrite FileMode = iota

	// ReadWrite keeps previous content alongside new writes.
	ReadWrite
)

// FileOption configures an opened file.
type FileOption func(*fileConfig)

type fileConfig struct {
	inMemory   bool
	syncWrites bool
	logger     *slog.Logger
}

// WithInMemory keeps the container entirely in memory, with no files on
// disk. Intended for tests.
func WithInMemory() FileOption {
	return func(c *fileConfig) {
		c.inMemory = true
	}
}

// WithSyncWrites enables synchronous writes on flush for durability.
func WithSyncWrites(sync bool) FileOption {
	return func(c *fileConfig) {
		c.syncWrites = sync
	}
}

// WithLogger sets the logger used for store diagnostics. The container
// engine's internal logging stays disabled either way.
func WithLogger(logger *slog.Logger) FileOption {
	return func(c *fileConfig) {
		c.logger = logger
	}
}

// File is an open NIX container: the in-memory object tree plus the
// embedded store it flushes into. A File is exclusively owned and must
// be closed exactly once; Close is idempotent.
type File struct {
	path   string
	mode   FileMode
	db     *badger.DB
	logger *slog.Logger
	closed bool

	blocks   Collection[*Block]
	sections Collection[*Section]
}

// Open opens (or creates) a container at the given path. With Overwrite,
// previous content at the path is dropped.
func Open(path string, mode FileMode, opts ...FileOption) (*File, error) {
	cfg := fileConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}

	badgerOpts := badger.DefaultOptions(path).
		WithInMemory(cfg.inMemory).
		WithSyncWrites(cfg.syncWrites).
		WithLogger(nil)
	if cfg.inMemory {
		badgerOpts = badgerOpts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, fmt.Errorf("open container at %q: %w", path, err)
	}

	f := &File{
		path:   path,
		mode:   mode,
		db:     db,
		logger: cfg.logger,
	}

	if mode == Overwrite {
		if err := db.DropAll(); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("clear container at %q: %w", path, err)
		}
	}

	return f, nil
}

// Path returns the container path.
func (f *File) Path() string {
	return f.path
}

// CreateBlock creates a top-level block.
func (f *File) CreateBlock(name, typ string) (*Block, error) {
	if f.closed {
		return nil, ErrFileClosed
	}
	b := newBlock(name, typ)
	if err := f.blocks.add(b); err != nil {
		return nil, err
	}
	return b, nil
}

// Blocks returns the block collection.
func (f *File) Blocks() *Collection[*Block] {
	return &f.blocks
}

// CreateSection creates a metadata section attached to the file root.
func (f *File) CreateSection(name, typ string) (*Section, error) {
	if f.closed {
		return nil, ErrFileClosed
	}
	s := newSection(name, typ, nil)
	if err := f.sections.add(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Sections returns the root section collection.
func (f *File) Sections() *Collection[*Section] {
	return &f.sections
}

// Flush serializes the current object tree into the container.
func (f *File) Flush() error {
	if f.closed {
		return ErrFileClosed
	}
	if err := f.persist(); err != nil {
		return fmt.Errorf("flush container at %q: %w", f.path, err)
	}
	return nil
}

// Close flushes the object tree and releases the container. Calling
// Close more than once is a no-op.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	flushErr := f.persist()
	f.closed = true
	if err := f.db.Close(); err != nil {
		f.logger.Warn("failed to close container", "path", f.path, "error", err)
		if flushErr == nil {
			flushErr = err
		}
	}
	return flushErr
}
