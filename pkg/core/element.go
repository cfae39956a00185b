package core

import (
	"github.com/go-drift/stylebind/pkg/styling"
)

// NoParent is the parent index of a root element.
const NoParent = -1

// ElementOptions configure a new Element.
type ElementOptions struct {
	// Renderer applies resolved values to the live element.
	Renderer styling.Renderer
	// Sanitizer rewrites values of entries that require sanitization.
	Sanitizer styling.Sanitizer
	// HostLayers pre-declares matched directives.
	HostLayers int
}

// Element is the render state of one element: its node flags and the
// styling tables it owns.
type Element struct {
	index     int
	parent    int
	depth     int
	node      styling.Node
	styles    *styling.Context
	classes   *styling.Context
	renderer  styling.Renderer
	sanitizer styling.Sanitizer
}

func newElement(index, parent, depth int, opts ElementOptions, onDirty func()) *Element {
	e := &Element{
		index:     index,
		parent:    parent,
		depth:     depth,
		renderer:  opts.Renderer,
		sanitizer: opts.Sanitizer,
		styles:    styling.NewContext(styling.Options{HostLayers: opts.HostLayers}),
		classes:   styling.NewContext(styling.Options{ClassBased: true, HostLayers: opts.HostLayers}),
	}
	e.styles.OnDirty = onDirty
	e.classes.OnDirty = onDirty
	return e
}

// Index returns the element's position in its owner.
func (e *Element) Index() int { return e.index }

// Parent returns the parent's index, or NoParent.
func (e *Element) Parent() int { return e.parent }

// Depth returns the element's depth in the tree; roots have depth 0.
func (e *Element) Depth() int { return e.depth }

// Node returns the element's styling flags.
func (e *Element) Node() *styling.Node { return &e.node }

// Styles returns the CSS property table.
func (e *Element) Styles() *styling.Context { return e.styles }

// Classes returns the class name table.
func (e *Element) Classes() *styling.Context { return e.classes }

// AddDirective registers one more matched directive and returns the source
// index its host bindings use.
func (e *Element) AddDirective() int {
	e.classes.AddHostLayer()
	return e.styles.AddHostLayer()
}

// BindStyle registers a style binding.
func (e *Element) BindStyle(bindingID, sourceIndex int, prop string, value styling.Value) {
	styling.RegisterBinding(e.styles, &e.node, bindingID, sourceIndex, prop, value, false, false)
}

// BindSanitizedStyle registers a style binding whose value must pass
// through the element's Sanitizer.
func (e *Element) BindSanitizedStyle(bindingID, sourceIndex int, prop string, value styling.Value) {
	styling.RegisterBinding(e.styles, &e.node, bindingID, sourceIndex, prop, value, true, false)
}

// BindClass registers a class binding.
func (e *Element) BindClass(bindingID, sourceIndex int, name string, value styling.Value) {
	styling.RegisterBinding(e.classes, &e.node, bindingID, sourceIndex, name, value, false, false)
}

// StaticStyle records a style from the element's template attributes.
func (e *Element) StaticStyle(prop string, value styling.Value) {
	styling.RegisterStatic(e.styles, prop, value)
}

// StaticClass records a class from the element's template attributes.
func (e *Element) StaticClass(name string) {
	styling.RegisterStatic(e.classes, name, true)
}

// NeedsFlush reports whether either table has pending changes.
func (e *Element) NeedsFlush() bool {
	return e.styles.NeedsFlush() || e.classes.NeedsFlush()
}

// Flush resolves and applies both tables and returns the number of values
// applied. Elements without a Renderer are resolved against a discarding one.
func (e *Element) Flush() int {
	r := e.renderer
	if r == nil {
		r = discardRenderer{}
	}
	return e.styles.Flush(r, e.sanitizer) + e.classes.Flush(r, e.sanitizer)
}

type discardRenderer struct{}

func (discardRenderer) SetStyle(string, styling.Value) {}
func (discardRenderer) RemoveStyle(string)             {}
func (discardRenderer) SetClass(string, bool)          {}
