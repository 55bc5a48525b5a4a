package nixio

import (
	"fmt"

	"github.com/gnode/neonix/neo"
	"github.com/gnode/neonix/nix"
)

// identityTable maps source-entity identity keys to the sink objects
// created for them. Entries are appended during structural mapping and
// consulted afterwards to wire non-tree relationships. The table is
// append-only for the lifetime of one writer.
type identityTable map[string]any

func (t identityTable) put(entity interface{ Identity() string }, sink any) {
	t[entity.Identity()] = sink
}

// resolve returns the sink object created for the entity. A missing
// entry means the entity was referenced before being written, which for
// signals and spike trains means it was reachable only through a
// ChannelGroup or Unit and never placed in a Segment.
func (t identityTable) resolve(op, entityKind string, entity interface{ Identity() string }) (any, error) {
	sink, ok := t[entity.Identity()]
	if !ok {
		err := fmt.Errorf("%w: %s must be placed in a Segment before a ChannelGroup or Unit can reference it",
			ErrUnresolvedReference, entityKind)
		return nil, newUnresolvedError(op, err).WithContext(map[string]any{
			"entity_kind": entityKind,
			"identity":    entity.Identity(),
		})
	}
	return sink, nil
}

// resolveMultiTag resolves a spike train to its MultiTag.
func (t identityTable) resolveMultiTag(op string, st *neo.SpikeTrain) (*nix.MultiTag, error) {
	sink, err := t.resolve(op, "spike train", st)
	if err != nil {
		return nil, err
	}
	mt, ok := sink.(*nix.MultiTag)
	if !ok {
		return nil, newInternalError(op, fmt.Errorf("spike train mapped to %T, expected multi tag", sink))
	}
	return mt, nil
}

// resolveSplit resolves a signal to its per-channel DataArrays.
func (t identityTable) resolveSplit(op string, sig interface{ Identity() string }) ([]*nix.DataArray, error) {
	sink, err := t.resolve(op, "signal", sig)
	if err != nil {
		return nil, err
	}
	das, ok := sink.([]*nix.DataArray)
	if !ok {
		return nil, newInternalError(op, fmt.Errorf("signal mapped to %T, expected data array list", sink))
	}
	return das, nil
}

// containedSignals returns the signal data arrays referenced by a group,
// identified by their sink type tag.
func containedSignals(g *nix.Group) []*nix.DataArray {
	var out []*nix.DataArray
	for _, da := range g.DataArrays().All() {
		if da.Type() == typeAnalogSignal || da.Type() == typeIrregularSignal {
			out = append(out, da)
		}
	}
	return out
}
