// Package nix implements the sink-side object store for NIX data files.
//
// A File holds a hierarchy of typed objects: Blocks contain Groups,
// Sources, DataArrays and MultiTags; Sections form a parallel metadata
// tree of key-value Properties. Objects are created through the Create
// methods of their parent and are addressed by name within each
// name-indexed child collection. Names must be unique per collection and
// kind; creating a duplicate returns ErrNameExists.
//
// The object tree lives in memory while the file is open. Flush
// serializes it into an embedded BadgerDB container at the file's path;
// Close flushes and releases the container exactly once. Opening with
// Overwrite clears any previous content.
//
// A File is an exclusively-owned resource: it is not safe for concurrent
// use and callers must serialize access.
package nix
