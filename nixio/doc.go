// Package nixio maps hierarchical electrophysiology object trees from
// the neo package into the container model of the nix package.
//
// The mapping is write-only and one-way: a Writer owns an open nix.File
// exclusively and converts whole neo.Block trees into blocks, groups,
// data arrays, tags and source descriptors, mirroring shared attributes
// into a metadata tree that follows the structural tree. Multi-channel
// signals are split into one data array per channel, and relationships
// that are not parent-child on the source side (channel groups and
// units referencing signals and spike trains owned by segments) are
// wired through an identity table after the owning side has been
// written.
//
// A minimal session:
//
//	file, err := nix.Open("session.nix", nix.Overwrite)
//	if err != nil {
//		return err
//	}
//	defer file.Close()
//
//	w, err := nixio.NewWriter(file)
//	if err != nil {
//		return err
//	}
//	if _, err := w.WriteBlock(ctx, block); err != nil {
//		return err
//	}
//	return file.Flush()
//
// Writers are not safe for concurrent use. A failed mapping call leaves
// the file partially written.
package nixio
