package nix

import "errors"

// Sentinel errors for store operations.
var (
	// ErrNameExists indicates an attempt to create an object whose name
	// is already taken within the target collection.
	ErrNameExists = errors.New("name already exists in collection")

	// ErrNotFound indicates a lookup for an object that does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrFileClosed indicates an operation on a file that has already
	// been closed.
	ErrFileClosed = errors.New("file is closed")

	// ErrNilPositions indicates a multi tag created without a positions
	// array.
	ErrNilPositions = errors.New("multi tag requires a positions data array")
)
