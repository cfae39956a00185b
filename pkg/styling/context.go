package styling

// Options configure a new Context.
type Options struct {
	// ClassBased selects class-name mode. It only changes how Flush applies
	// resolved values, never how they are resolved.
	ClassBased bool
	// HostLayers is the number of host binding layers (matched directives)
	// the element accepts. Source indexes 1..HostLayers are valid.
	HostLayers int
}

// Context is the binding resolution table of one element for either its
// CSS properties or its class names.
type Context struct {
	entries    []*PropertyEntry
	index      map[string]int
	classBased bool
	hostLayers int
	nextSeq    int

	pendingTemplate GuardMask
	pendingHost     GuardMask
	dirty           bool

	// OnDirty is called when the context goes from clean to needing a flush.
	OnDirty func()
}

// NewContext creates an empty table.
func NewContext(opts Options) *Context {
	return &Context{
		index:           make(map[string]int),
		classBased:      opts.ClassBased,
		hostLayers:      opts.HostLayers,
		pendingTemplate: DefaultGuardMask,
		pendingHost:     DefaultGuardMask,
	}
}

// IsClassBased reports whether the context holds class names.
func (c *Context) IsClassBased() bool { return c.classBased }

// HostLayers returns the number of accepted host layers.
func (c *Context) HostLayers() int { return c.hostLayers }

// AddHostLayer accepts one more host layer and returns its source index.
// Directives must be added in matching order.
func (c *Context) AddHostLayer() int {
	c.hostLayers++
	return c.hostLayers
}

// Len returns the number of entries.
func (c *Context) Len() int { return len(c.entries) }

// Entry returns the entry for name, or nil.
func (c *Context) Entry(name string) *PropertyEntry {
	if i, ok := c.index[name]; ok {
		return c.entries[i]
	}
	return nil
}

// Entries returns the entries in insertion order.
func (c *Context) Entries() []*PropertyEntry {
	out := make([]*PropertyEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *Context) entryFor(name string, sanitizationRequired bool) *PropertyEntry {
	if e := c.Entry(name); e != nil {
		return e
	}
	e := newPropertyEntry(name, sanitizationRequired)
	c.index[name] = len(c.entries)
	c.entries = append(c.entries, e)
	c.markDirty()
	return e
}

func (c *Context) newSlot(bindingID, sourceIndex int, value Value, sanitize bool) *slot {
	s := &slot{
		bindingID:   bindingID,
		sourceIndex: sourceIndex,
		seq:         c.nextSeq,
		value:       value,
		sanitize:    sanitize,
	}
	c.nextSeq++
	return s
}

// MarkDirty asserts the pending bit of a binding so that entries guarded by
// it are re-resolved on the next Flush.
func (c *Context) MarkDirty(sourceIndex, bindingID int) {
	if categoryOf(sourceIndex) == CategoryHost {
		c.pendingHost = c.pendingHost.With(bindingID)
	} else {
		c.pendingTemplate = c.pendingTemplate.With(bindingID)
	}
	c.markDirty()
}

// PendingMasks returns the template and host bits asserted since the last
// Flush.
func (c *Context) PendingMasks() (template, host GuardMask) {
	return c.pendingTemplate, c.pendingHost
}

// NeedsFlush reports whether anything changed since the last Flush.
func (c *Context) NeedsFlush() bool { return c.dirty }

func (c *Context) markDirty() {
	if c.dirty {
		return
	}
	c.dirty = true
	if c.OnDirty != nil {
		c.OnDirty()
	}
}
