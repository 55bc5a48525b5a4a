// Package neonix converts hierarchical electrophysiology recordings
// into the NIX container model.
//
// The module is organized in four packages:
//
//   - neo: the source object model (Blocks, Segments, signals, spike
//     trains, channel groups, units)
//   - nix: the sink container model (Blocks, Groups, DataArrays,
//     MultiTags, Sources, metadata Sections) with persistence
//   - nixio: the one-way mapper from neo trees into an open nix.File
//   - units: scalar and vector quantities with unit rescaling
//
// This root package is a thin facade over nixio for the common case of
// exporting whole blocks in one call:
//
//	err := neonix.Export(ctx, "session.nix", blocks,
//		neonix.WithLogger(logger))
//
// Callers that need finer control (keeping the file open across calls,
// read-write mode, in-memory containers, telemetry wiring) use the
// nixio and nix packages directly.
package neonix
