package testing

import (
	"fmt"
	"maps"
	"slices"

	"github.com/go-drift/stylebind/pkg/styling"
)

// RecordingRenderer is a styling.Renderer backed by in-memory element state.
type RecordingRenderer struct {
	styles  map[string]styling.Value
	classes map[string]bool
	ops     []string
}

// NewRecordingRenderer creates an empty renderer.
func NewRecordingRenderer() *RecordingRenderer {
	return &RecordingRenderer{
		styles:  make(map[string]styling.Value),
		classes: make(map[string]bool),
	}
}

func (r *RecordingRenderer) SetStyle(prop string, value styling.Value) {
	r.styles[prop] = value
	r.ops = append(r.ops, fmt.Sprintf("set %s=%v", prop, value))
}

func (r *RecordingRenderer) RemoveStyle(prop string) {
	delete(r.styles, prop)
	r.ops = append(r.ops, "remove "+prop)
}

func (r *RecordingRenderer) SetClass(name string, enabled bool) {
	if enabled {
		r.classes[name] = true
	} else {
		delete(r.classes, name)
	}
	r.ops = append(r.ops, fmt.Sprintf("class %s=%t", name, enabled))
}

// Style returns the applied value of prop, or nil.
func (r *RecordingRenderer) Style(prop string) styling.Value {
	return r.styles[prop]
}

// HasClass reports whether name is currently applied.
func (r *RecordingRenderer) HasClass(name string) bool {
	return r.classes[name]
}

// Classes returns the applied class names, sorted.
func (r *RecordingRenderer) Classes() []string {
	return slices.Sorted(maps.Keys(r.classes))
}

// Ops returns every operation applied so far.
func (r *RecordingRenderer) Ops() []string {
	return slices.Clone(r.ops)
}

// TakeOps returns the operations applied since the previous call and
// forgets them.
func (r *RecordingRenderer) TakeOps() []string {
	ops := r.ops
	r.ops = nil
	return ops
}
