package nixio

import "fmt"

// Name synthesis for anonymous entities. An explicit name is always used
// verbatim; collisions between explicit names surface as store errors.
// Synthesized names combine the parent's name with a kind tag and the
// current count of same-kind children, so they are deterministic for a
// given traversal but stable only until another anonymous sibling of the
// same kind is added.

// childName returns the name for an entity created under parent.
// siblings is the current number of same-kind children of the parent.
func childName(explicit, parentName, kindTag string, siblings int) string {
	if explicit != "" {
		return explicit
	}
	return fmt.Sprintf("%s.%s%d", parentName, kindTag, siblings)
}

// blockName returns the name for a top-level block. Anonymous blocks are
// numbered against the count of blocks already in the file.
func blockName(explicit string, existing int) string {
	if explicit != "" {
		return explicit
	}
	return fmt.Sprintf("neo.Block%d", existing)
}

// channelName returns the name for the idx-th channel of a group. The
// explicit name list may be shorter than the channel list; trailing
// channels fall back to positional names.
func channelName(names []string, groupName string, idx int) string {
	if idx < len(names) && names[idx] != "" {
		return names[idx]
	}
	return fmt.Sprintf("%s.%d", groupName, idx)
}

// splitName returns the name for one column of a per-channel signal
// split.
func splitName(signalName string, idx int) string {
	return fmt.Sprintf("%s.%d", signalName, idx)
}
