package styling

import (
	"reflect"
	"slices"

	"go.uber.org/zap"
)

// Renderer applies resolved values to a live element.
type Renderer interface {
	SetStyle(prop string, value Value)
	RemoveStyle(prop string)
	SetClass(name string, enabled bool)
}

// Sanitizer rewrites a value before it reaches the Renderer. It is only
// consulted for entries that require sanitization.
type Sanitizer func(prop string, value Value) Value

// Resolve returns the value that currently wins for e: the first non-nil
// dynamic slot in priority order, else the default value, else nil.
func Resolve(e *PropertyEntry) Value {
	for _, s := range e.dynamic {
		if !e.maskFor(categoryOf(s.sourceIndex)).Has(s.bindingID) {
			continue
		}
		if s.value != nil {
			return s.value
		}
	}
	return e.defaultValue
}

// Flush re-resolves every entry touched since the previous Flush and applies
// the ones whose winning value changed. Entries whose guard masks miss the
// pending bits are skipped without being scanned. The map-based entry is
// applied key by key. It returns the number of renderer calls made.
//
// If the Renderer panics, the entries not yet applied stay pending and the
// context is marked dirty again before the panic propagates.
func (c *Context) Flush(r Renderer, sanitize Sanitizer) (applied int) {
	if !c.dirty {
		return 0
	}
	template, host := c.pendingTemplate, c.pendingHost
	c.pendingTemplate = DefaultGuardMask
	c.pendingHost = DefaultGuardMask
	c.dirty = false

	for _, e := range c.entries {
		if e.affectedBy(template, host) {
			e.pending = true
		}
	}
	defer func() {
		if slices.ContainsFunc(c.entries, func(e *PropertyEntry) bool { return e.pending }) {
			c.markDirty()
		}
	}()

	for _, e := range c.entries {
		if !e.pending {
			continue
		}
		v := Resolve(e)
		if e.name == MapBasedEntryName {
			v = sanitizeMap(e, mapEntries(v), sanitize)
			applied += c.applyMap(r, e.lastApplied, v)
		} else {
			if v != nil && e.sanitizationRequired && sanitize != nil {
				v = sanitize(e.name, v)
			}
			if c.applyValue(r, e.name, e.lastApplied, v) {
				applied++
			}
		}
		e.lastApplied = v
		e.pending = false
	}
	Logger().Debug("flushed styling context",
		zap.Bool("classBased", c.classBased),
		zap.Int("entries", len(c.entries)),
		zap.Int("applied", applied))
	return applied
}

// applyValue hands v to the renderer unless it matches prev, and reports
// whether the renderer was called.
func (c *Context) applyValue(r Renderer, name string, prev, v Value) bool {
	if c.classBased {
		if truthy(v) == truthy(prev) {
			return false
		}
		r.SetClass(name, truthy(v))
		return true
	}
	if valuesEqual(v, prev) {
		return false
	}
	if v == nil {
		r.RemoveStyle(name)
	} else {
		r.SetStyle(name, v)
	}
	return true
}

// applyMap applies the keys of a map binding that changed since prev, in key
// order. Keys missing from next are removed.
func (c *Context) applyMap(r Renderer, prev, next Value) int {
	before, after := mapEntries(prev), mapEntries(next)
	keys := make([]string, 0, len(before)+len(after))
	for k := range before {
		keys = append(keys, k)
	}
	for k := range after {
		if _, ok := before[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	applied := 0
	for _, k := range keys {
		if c.applyValue(r, k, before[k], after[k]) {
			applied++
		}
	}
	return applied
}

// mapEntries reads a map binding value. Any map keyed by strings is
// accepted; other values bind nothing.
func mapEntries(v Value) map[string]Value {
	if v == nil {
		return nil
	}
	if m, ok := v.(map[string]Value); ok {
		return m
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		Logger().Debug("ignoring non-map value for map binding", zap.Any("value", v))
		return nil
	}
	out := make(map[string]Value, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out
}

func sanitizeMap(e *PropertyEntry, m map[string]Value, sanitize Sanitizer) Value {
	if m == nil {
		return nil
	}
	if !e.sanitizationRequired || sanitize == nil {
		return m
	}
	out := make(map[string]Value, len(m))
	for k, v := range m {
		if v != nil {
			v = sanitize(k, v)
		}
		out[k] = v
	}
	return out
}

// truthy reports whether a class value switches its class on. nil, false,
// empty strings and numeric zeros of any kind are off.
func truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return !rv.IsZero()
	}
	return true
}
