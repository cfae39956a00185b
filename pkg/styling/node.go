package styling

// NodeFlags summarize which kinds of styling bindings an element carries.
// The rendering layer reads them to skip elements with nothing to flush.
type NodeFlags uint16

const (
	// FlagHasTemplateBindings is set once a template slot becomes dynamic.
	FlagHasTemplateBindings NodeFlags = 1 << iota
	// FlagHasHostBindings is set once a host slot becomes dynamic.
	FlagHasHostBindings
	// FlagHasStyleBindings is set by any registration on a property context.
	FlagHasStyleBindings
	// FlagHasClassBindings is set by any registration on a class context.
	FlagHasClassBindings
	// FlagHasMapBindings is set when a map-based binding is registered.
	FlagHasMapBindings
	// FlagNeedsSanitization is set when any registration requires sanitization.
	FlagNeedsSanitization
)

// Node is the static, per-element record the styling tables report into.
type Node struct {
	Flags NodeFlags
}

// Has reports whether all bits of f are set.
func (n *Node) Has(f NodeFlags) bool {
	return n != nil && n.Flags&f == f
}

func (n *Node) patch(f NodeFlags) {
	if n != nil {
		n.Flags |= f
	}
}
