package styling

import (
	"math"
	"reflect"
	"slices"
)

// Value is a candidate styling value. A nil Value means "no value".
type Value = any

// Category separates template bindings from host bindings. Binding ids are
// unique within a category, and each category has its own guard mask.
type Category uint8

const (
	CategoryTemplate Category = iota
	CategoryHost
)

func (c Category) String() string {
	if c == CategoryHost {
		return "host"
	}
	return "template"
}

func categoryOf(sourceIndex int) Category {
	if sourceIndex == 0 {
		return CategoryTemplate
	}
	return CategoryHost
}

// SlotTag records how a slot currently participates in resolution.
type SlotTag uint8

const (
	// TagDefault marks the tentative default: its value lives in the
	// entry's default value and it owns no guard bit.
	TagDefault SlotTag = iota
	// TagDynamic marks a guarded slot with its own position in the sources.
	TagDynamic
)

func (t SlotTag) String() string {
	if t == TagDynamic {
		return "dynamic"
	}
	return "default"
}

type slotKey struct {
	category  Category
	bindingID int
}

type slot struct {
	bindingID   int
	sourceIndex int
	seq         int
	value       Value
	tag         SlotTag
	sanitize    bool
}

func (s *slot) key() slotKey {
	return slotKey{category: categoryOf(s.sourceIndex), bindingID: s.bindingID}
}

// rank orders slots by source: the template outranks every host layer and
// later host layers outrank earlier ones.
func (s *slot) rank() int {
	if s.sourceIndex == 0 {
		return math.MaxInt
	}
	return s.sourceIndex
}

func (s *slot) outranks(other *slot) bool {
	if a, b := s.rank(), other.rank(); a != b {
		return a > b
	}
	return s.seq > other.seq
}

// PropertyEntry holds every candidate value for one property or class name
// of an element.
type PropertyEntry struct {
	name                 string
	sanitizationRequired bool
	defaultValue         Value
	templateMask         GuardMask
	hostMask             GuardMask

	slots     map[slotKey]*slot
	tentative *slot
	dynamic   []*slot // priority order, highest first

	// pending is set by structural changes that the guard masks cannot
	// express: creation, a new default, an allocated or promoted slot.
	pending     bool
	lastApplied Value
}

func newPropertyEntry(name string, sanitizationRequired bool) *PropertyEntry {
	return &PropertyEntry{
		name:                 name,
		sanitizationRequired: sanitizationRequired,
		templateMask:         DefaultGuardMask,
		hostMask:             DefaultGuardMask,
		slots:                make(map[slotKey]*slot),
		pending:              true,
	}
}

// Name returns the property or class name.
func (e *PropertyEntry) Name() string { return e.name }

// SanitizationRequired reports whether any registration asked for sanitization.
func (e *PropertyEntry) SanitizationRequired() bool { return e.sanitizationRequired }

// DefaultValue returns the static fallback, or nil.
func (e *PropertyEntry) DefaultValue() Value { return e.defaultValue }

// TemplateGuardMask returns the guard mask of template slots.
func (e *PropertyEntry) TemplateGuardMask() GuardMask { return e.templateMask }

// HostGuardMask returns the guard mask aggregated over all host layers.
func (e *PropertyEntry) HostGuardMask() GuardMask { return e.hostMask }

// ValuesCount is the number of sources including the trailing default.
func (e *PropertyEntry) ValuesCount() int { return len(e.dynamic) + 1 }

// Sources returns the candidate values in priority order, ending with the
// default value.
func (e *PropertyEntry) Sources() []Value {
	out := make([]Value, 0, e.ValuesCount())
	for _, s := range e.dynamic {
		out = append(out, s.value)
	}
	return append(out, e.defaultValue)
}

func (e *PropertyEntry) lookup(category Category, bindingID int) *slot {
	return e.slots[slotKey{category: category, bindingID: bindingID}]
}

func (e *PropertyEntry) maskFor(category Category) *GuardMask {
	if category == CategoryHost {
		return &e.hostMask
	}
	return &e.templateMask
}

// offerDefault applies the first-non-nil-default-wins rule.
func (e *PropertyEntry) offerDefault(v Value) bool {
	if e.defaultValue != nil || v == nil {
		return false
	}
	e.defaultValue = v
	e.pending = true
	return true
}

func (e *PropertyEntry) insertDynamic(s *slot) {
	s.tag = TagDynamic
	i := slices.IndexFunc(e.dynamic, func(other *slot) bool {
		return s.outranks(other)
	})
	if i < 0 {
		i = len(e.dynamic)
	}
	e.dynamic = slices.Insert(e.dynamic, i, s)
	mask := e.maskFor(categoryOf(s.sourceIndex))
	*mask = mask.With(s.bindingID)
	e.pending = true
}

// promoteTentative turns the tentative default into a dynamic slot and drops
// the default, since the value it came from is no longer static.
func (e *PropertyEntry) promoteTentative() *slot {
	s := e.tentative
	e.tentative = nil
	e.insertDynamic(s)
	e.defaultValue = nil
	return s
}

// affectedBy reports whether pending template or host bits touch this entry.
func (e *PropertyEntry) affectedBy(template, host GuardMask) bool {
	return e.templateMask.Intersects(template) || e.hostMask.Intersects(host)
}

func valuesEqual(a, b Value) bool {
	return reflect.DeepEqual(a, b)
}
