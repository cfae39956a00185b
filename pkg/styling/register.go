package styling

import (
	"go.uber.org/zap"

	"github.com/go-drift/stylebind/pkg/errors"
)

// MapBasedEntryName is the entry that map-based bindings (a whole style or
// class object bound at once) register under. Flush applies its value key by
// key, so the name itself never reaches a Renderer.
const MapBasedEntryName = "[MAP]"

// RegisterBinding records the value of one binding slot for prop.
//
// sourceIndex 0 is the template; 1..ctx.HostLayers() are host layers in
// directive matching order. bindingID identifies the slot within its
// category and must be positive. An empty prop registers a map-based binding.
//
// Misuse of the call sequence (an unknown source index, a non-positive
// binding id, a host id reused across layers, or sanitization dropped for a
// slot that required it) panics with *errors.UsageError. bypassCheck skips
// the slot identity checks for trusted re-registration; it never changes
// classification.
func RegisterBinding(ctx *Context, node *Node, bindingID, sourceIndex int, prop string, value Value, sanitizationRequired, bypassCheck bool) {
	const op = "styling.RegisterBinding"
	if sourceIndex < 0 || sourceIndex > ctx.hostLayers {
		errors.Misuse(&errors.UsageError{
			Op: op, Prop: prop, BindingID: bindingID, SourceIndex: sourceIndex,
			Reason: "source index outside the configured host layers",
		})
	}
	if bindingID <= 0 {
		errors.Misuse(&errors.UsageError{
			Op: op, Prop: prop, BindingID: bindingID, SourceIndex: sourceIndex,
			Reason: "binding id must be positive",
		})
	}
	flags := FlagHasStyleBindings
	if ctx.classBased {
		flags = FlagHasClassBindings
	}
	if prop == "" {
		prop = MapBasedEntryName
		flags |= FlagHasMapBindings
	}

	e := ctx.entryFor(prop, sanitizationRequired)
	in := incoming{bindingID: bindingID, sourceIndex: sourceIndex}
	category := categoryOf(sourceIndex)
	if existing := e.lookup(category, bindingID); existing != nil && !bypassCheck {
		checkSlotIdentity(existing, in, prop, sanitizationRequired)
	}
	e.sanitizationRequired = e.sanitizationRequired || sanitizationRequired

	t := classify(e, in)
	switch t {
	case TransitionAllocateDefault:
		s := ctx.newSlot(bindingID, sourceIndex, value, sanitizationRequired)
		s.tag = TagDefault
		e.slots[s.key()] = s
		e.tentative = s
		e.offerDefault(value)

	case TransitionFillDefault:
		s := e.tentative
		s.value = value
		s.sanitize = s.sanitize || sanitizationRequired
		e.offerDefault(value)

	case TransitionPromoteRepeat:
		s := e.tentative
		s.value = value
		s.sanitize = s.sanitize || sanitizationRequired
		e.promoteTentative()

	case TransitionPromoteCrossCategory:
		e.promoteTentative()
		s := ctx.newSlot(bindingID, sourceIndex, value, sanitizationRequired)
		e.slots[s.key()] = s
		e.insertDynamic(s)

	case TransitionAllocateDynamic:
		s := ctx.newSlot(bindingID, sourceIndex, value, sanitizationRequired)
		e.slots[s.key()] = s
		e.insertDynamic(s)

	case TransitionUpdate:
		s := e.lookup(category, bindingID)
		s.sanitize = s.sanitize || sanitizationRequired
		if !valuesEqual(s.value, value) {
			s.value = value
			ctx.MarkDirty(sourceIndex, bindingID)
		}
	}

	if t.Promotes() {
		Logger().Debug("promoted tentative default",
			zap.String("prop", prop),
			zap.Int("binding", bindingID),
			zap.Int("source", sourceIndex),
			zap.Stringer("transition", t))
	}
	if e.pending {
		ctx.markDirty()
	}

	if !e.templateMask.IsClear() {
		flags |= FlagHasTemplateBindings
	}
	if !e.hostMask.IsClear() {
		flags |= FlagHasHostBindings
	}
	if e.sanitizationRequired {
		flags |= FlagNeedsSanitization
	}
	node.patch(flags)
}

func checkSlotIdentity(existing *slot, in incoming, prop string, sanitizationRequired bool) {
	const op = "styling.RegisterBinding"
	if existing.sourceIndex != in.sourceIndex {
		errors.Misuse(&errors.UsageError{
			Op: op, Prop: prop, BindingID: in.bindingID, SourceIndex: in.sourceIndex,
			Reason: "binding id already registered by another host layer",
		})
	}
	if existing.sanitize && !sanitizationRequired {
		errors.Misuse(&errors.UsageError{
			Op: op, Prop: prop, BindingID: in.bindingID, SourceIndex: in.sourceIndex,
			Reason: "binding registered without sanitization after requiring it",
		})
	}
}

// RegisterStatic records a static value for prop, such as one coming from an
// element's style or class attribute. It can only establish the default
// value, and only while the entry has none.
func RegisterStatic(ctx *Context, prop string, value Value) {
	if prop == "" {
		prop = MapBasedEntryName
	}
	e := ctx.entryFor(prop, false)
	if e.offerDefault(value) {
		ctx.markDirty()
	}
}
