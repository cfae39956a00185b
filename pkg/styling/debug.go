package styling

import "slices"

// DebugView is a read-only view of a Context for tooling and tests.
type DebugView struct {
	ctx *Context
}

// NewDebugView wraps ctx.
func NewDebugView(ctx *Context) DebugView {
	return DebugView{ctx: ctx}
}

// IsClassBased reports whether the viewed context holds class names.
func (v DebugView) IsClassBased() bool { return v.ctx.classBased }

// Entry returns a view of the named entry.
func (v DebugView) Entry(name string) (EntryView, bool) {
	e := v.ctx.Entry(name)
	if e == nil {
		return EntryView{}, false
	}
	return EntryView{entry: e}, true
}

// Entries returns a view of every entry keyed by name.
func (v DebugView) Entries() map[string]EntryView {
	out := make(map[string]EntryView, len(v.ctx.entries))
	for _, e := range v.ctx.entries {
		out[e.name] = EntryView{entry: e}
	}
	return out
}

// Snapshots returns plain copies of every entry in insertion order.
func (v DebugView) Snapshots() []EntrySnapshot {
	out := make([]EntrySnapshot, 0, len(v.ctx.entries))
	for _, e := range v.ctx.entries {
		out = append(out, EntryView{entry: e}.Snapshot())
	}
	return out
}

// EntryView exposes the fields of one PropertyEntry.
type EntryView struct {
	entry *PropertyEntry
}

func (v EntryView) Name() string                 { return v.entry.name }
func (v EntryView) SanitizationRequired() bool   { return v.entry.sanitizationRequired }
func (v EntryView) ValuesCount() int             { return v.entry.ValuesCount() }
func (v EntryView) TemplateGuardMask() GuardMask { return v.entry.templateMask }
func (v EntryView) HostGuardMask() GuardMask     { return v.entry.hostMask }
func (v EntryView) DefaultValue() Value          { return v.entry.defaultValue }
func (v EntryView) Sources() []Value             { return v.entry.Sources() }

// Resolved returns the value that currently wins.
func (v EntryView) Resolved() Value { return Resolve(v.entry) }

// Slots describes every slot, tentative default included, in allocation order.
func (v EntryView) Slots() []SlotSnapshot {
	slots := make([]*slot, 0, len(v.entry.slots))
	for _, s := range v.entry.slots {
		slots = append(slots, s)
	}
	slices.SortFunc(slots, func(a, b *slot) int { return a.seq - b.seq })

	out := make([]SlotSnapshot, len(slots))
	for i, s := range slots {
		out[i] = SlotSnapshot{
			BindingID:   s.bindingID,
			SourceIndex: s.sourceIndex,
			Tag:         s.tag.String(),
			Value:       s.value,
		}
	}
	return out
}

// Snapshot copies the entry into a plain struct.
func (v EntryView) Snapshot() EntrySnapshot {
	return EntrySnapshot{
		Prop:                 v.Name(),
		ValuesCount:          v.ValuesCount(),
		SanitizationRequired: v.SanitizationRequired(),
		TemplateBitMask:      v.TemplateGuardMask(),
		HostBindingsBitMask:  v.HostGuardMask(),
		DefaultValue:         v.DefaultValue(),
		Sources:              v.Sources(),
	}
}

// EntrySnapshot is a comparable, serializable copy of a PropertyEntry.
type EntrySnapshot struct {
	Prop                 string    `json:"prop" yaml:"prop"`
	ValuesCount          int       `json:"valuesCount" yaml:"valuesCount"`
	SanitizationRequired bool      `json:"sanitizationRequired" yaml:"sanitizationRequired"`
	TemplateBitMask      GuardMask `json:"templateBitMask" yaml:"templateBitMask"`
	HostBindingsBitMask  GuardMask `json:"hostBindingsBitMask" yaml:"hostBindingsBitMask"`
	DefaultValue         Value     `json:"defaultValue" yaml:"defaultValue"`
	Sources              []Value   `json:"sources" yaml:"sources"`
}

// SlotSnapshot describes one binding slot.
type SlotSnapshot struct {
	BindingID   int    `json:"bindingId"`
	SourceIndex int    `json:"sourceIndex"`
	Tag         string `json:"tag"`
	Value       Value  `json:"value"`
}
