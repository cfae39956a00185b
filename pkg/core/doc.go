// Package core provides the per-element render state that owns styling
// tables, and the owner that flushes them once per frame.
//
// # Elements
//
// An Element is created through a StyleOwner and owns two styling tables:
// one for CSS properties and one for class names. Parents are referenced by
// index into the owner, never by pointer:
//
//	owner := core.NewStyleOwner()
//	root := owner.AddElement(core.NoParent, core.ElementOptions{Renderer: r})
//	child := owner.AddElement(root.Index(), core.ElementOptions{Renderer: r})
//
// # Bindings
//
// Matched directives are added in order before their bindings are
// registered. Each returns the source index its host bindings must use:
//
//	layer := child.AddDirective()
//	child.BindStyle(1, 0, "width", "100px")     // template
//	child.BindStyle(2, layer, "width", "50px")  // directive host binding
//	child.BindClass(3, 0, "active", isActive)
//
// Any change that needs re-resolution schedules the element on its owner.
// FlushStyling then resolves and applies dirty elements parents first.
package core
