package nixio

import (
	"strings"

	"github.com/gnode/neonix/nix"
)

// StepKind names the child-collection a path step descends into.
type StepKind string

// The step kinds a path may contain. An unrecognized kind resolves to
// "not found" rather than an error.
const (
	StepBlock     StepKind = "block"
	StepGroup     StepKind = "group"
	StepSource    StepKind = "source"
	StepDataArray StepKind = "data_array"
	StepTag       StepKind = "tag"
	StepMultiTag  StepKind = "multi_tag"
	StepFeature   StepKind = "feature"
)

// Step is one (kind, name) hop of a path.
type Step struct {
	Kind StepKind
	Name string
}

// Path locates an object in the store as the sequence of steps from the
// file root. Paths stand in for object handles: the mapper records where
// it created something and replays the path when it needs the object
// again.
type Path []Step

// Append returns a new path extended by one step. The receiver is never
// mutated; callers keep their own path untouched while descending.
func (p Path) Append(kind StepKind, name string) Path {
	out := make(Path, len(p), len(p)+1)
	copy(out, p)
	return append(out, Step{Kind: kind, Name: name})
}

// Parent returns the path without its final step.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// String renders the path for diagnostics.
func (p Path) String() string {
	parts := make([]string, len(p))
	for i, s := range p {
		parts[i] = string(s.Kind) + ":" + s.Name
	}
	return "/" + strings.Join(parts, "/")
}

// Resolve replays the path against the file, one step at a time,
// dispatching each step on its kind. It returns the object at the end of
// the path, or false if any step cannot be taken.
func (p Path) Resolve(f *nix.File) (any, bool) {
	var obj any = f
	for _, step := range p {
		next, ok := descend(obj, step)
		if !ok {
			return nil, false
		}
		obj = next
	}
	return obj, true
}

// descend takes a single step from the given object.
func descend(obj any, step Step) (any, bool) {
	switch step.Kind {
	case StepBlock:
		if f, ok := obj.(*nix.File); ok {
			return f.Blocks().Get(step.Name)
		}
	case StepGroup:
		if b, ok := obj.(*nix.Block); ok {
			return b.Groups().Get(step.Name)
		}
	case StepSource:
		switch o := obj.(type) {
		case *nix.Block:
			return o.Sources().Get(step.Name)
		case *nix.Source:
			return o.Sources().Get(step.Name)
		}
	case StepDataArray:
		switch o := obj.(type) {
		case *nix.Block:
			return o.DataArrays().Get(step.Name)
		case *nix.Group:
			return o.DataArrays().Get(step.Name)
		}
	case StepMultiTag:
		switch o := obj.(type) {
		case *nix.Block:
			return o.MultiTags().Get(step.Name)
		case *nix.Group:
			return o.MultiTags().Get(step.Name)
		}
	case StepFeature:
		if m, ok := obj.(*nix.MultiTag); ok {
			for _, feat := range m.Features() {
				if feat.Name() == step.Name {
					return feat, true
				}
			}
		}
	case StepTag:
		// Plain tags are in the path vocabulary but the mapper never
		// creates them; nothing to descend into.
	}
	return nil, false
}
