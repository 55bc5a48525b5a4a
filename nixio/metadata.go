package nixio

import (
	"fmt"
	"sort"

	"github.com/gnode/neonix/neo"
	"github.com/gnode/neonix/nix"
)

// ensureMetadata returns the metadata section attached to the object,
// creating it on first use. New sections are named after the object,
// typed "<object-type>.metadata", and attached under the metadata of the
// object's structural parent (itself created the same way) or under the
// file root for top-level objects. The recursion walks each
// ancestor at most once per writer: later descendants find the cached
// section on the object itself.
func (w *Writer) ensureMetadata(obj nix.Entity, path Path) (*nix.Section, error) {
	const op = "Writer.ensureMetadata"

	if md := obj.Metadata(); md != nil {
		return md, nil
	}

	var section *nix.Section
	var err error
	if len(path) <= 1 {
		section, err = w.file.CreateSection(obj.Name(), obj.Type()+".metadata")
	} else {
		parentPath := path.Parent()
		resolved, ok := parentPath.Resolve(w.file)
		if !ok {
			return nil, newInternalError(op,
				fmt.Errorf("tracked path %s no longer resolves", parentPath))
		}
		parent, ok := resolved.(nix.Entity)
		if !ok {
			return nil, newInternalError(op,
				fmt.Errorf("object at %s cannot carry metadata", parentPath))
		}
		var parentMd *nix.Section
		parentMd, err = w.ensureMetadata(parent, parentPath)
		if err != nil {
			return nil, err
		}
		section, err = parentMd.CreateSection(obj.Name(), obj.Type()+".metadata")
	}
	if err != nil {
		return nil, newStoreError(op, err)
	}
	obj.SetMetadata(section)
	return section, nil
}

// writeCommonMetadata mirrors the attributes every entity shares into
// the object's metadata: file timestamp, file origin, and annotations.
// The metadata section is only created when there is something to store.
func (w *Writer) writeCommonMetadata(op string, attrs *neo.Attributes, obj nix.Entity, path Path) error {
	if !attrs.FileDatetime.IsZero() {
		md, err := w.ensureMetadata(obj, path)
		if err != nil {
			return err
		}
		if _, err := md.CreateProperty("file_datetime", nix.NewValue(attrs.FileDatetime.Unix())); err != nil {
			return newStoreError(op, err)
		}
	}
	if attrs.FileOrigin != "" {
		md, err := w.ensureMetadata(obj, path)
		if err != nil {
			return err
		}
		if _, err := md.CreateProperty("file_origin", nix.NewValue(attrs.FileOrigin)); err != nil {
			return newStoreError(op, err)
		}
	}
	if len(attrs.Annotations) > 0 {
		md, err := w.ensureMetadata(obj, path)
		if err != nil {
			return err
		}
		if err := addAnnotations(attrs.Annotations, md); err != nil {
			return newStoreError(op, err)
		}
	}
	return nil
}

// addAnnotations stores annotation keys as properties. Keys are written
// in sorted order so repeated runs produce identical files.
func addAnnotations(annotations map[string]any, md *nix.Section) error {
	keys := make([]string, 0, len(annotations))
	for k := range annotations {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := md.CreateProperty(k, nix.NewValue(annotations[k])); err != nil {
			return err
		}
	}
	return nil
}
