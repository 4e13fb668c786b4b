package scene

// Handle identifies a node slot. Generations start at 1 and are bumped
// when the slot is freed and again when it is reused, so a retained
// handle to a recycled slot goes stale instead of aliasing the new
// occupant. The zero Handle is never a live node.
//
// Gen 0 doubles as a discriminator inside the registry: a parentOrOrder
// entry with Gen 0 means the node is a member of the top-level stacking
// order (ID is its order slot) or detached, never a parent link.
type Handle struct {
	ID  uint32
	Gen uint32
}

// LayerHandle identifies a layer slot. Same generation scheme as Handle;
// a separate type so node and layer handles cannot be mixed up.
type LayerHandle struct {
	ID  uint32
	Gen uint32
}

// DataHandle identifies a data slot within one layer.
type DataHandle struct {
	ID  uint32
	Gen uint32
}

// Flags are per-node behavior bits.
type Flags uint8

const (
	// FlagHidden excludes the node and its entire subtree from the
	// visible order. Siblings are unaffected.
	FlagHidden Flags = 1 << iota

	// FlagClip restricts the node's subtree to the node's own rect
	// during clip culling. A clipped-away Clip node prunes its whole
	// subtree.
	FlagClip
)

// LayerCaps describe what a layer participates in.
type LayerCaps uint8

const (
	// LayerDraw layers produce contiguous draw ranges per top-level node.
	LayerDraw LayerCaps = 1 << iota

	// LayerEvent layers feed the reverse-order event candidate lists.
	LayerEvent
)
