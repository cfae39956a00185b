// Package styling implements the per-element binding resolution table used to
// reconcile competing style and class writers.
//
// Every rendered element owns two tables (a Context for CSS properties and one
// for class names). Each table holds one PropertyEntry per name. Writers reach
// an entry through RegisterBinding: the template contributes bindings with
// source index 0, and every matched directive contributes bindings as a host
// layer with source index 1, 2, ... in matching order.
//
// # Priority
//
// Template bindings outrank host bindings, and a later-matched host layer
// outranks an earlier one. Within one category the most recently allocated
// slot wins. When no dynamic slot yields a value the entry falls back to its
// default value; when that is nil too, the property is unset.
//
// # Defaults and promotion
//
// The first binding registered for a name is not assumed to be dynamic. It is
// kept as a tentative default: its value becomes the entry's default and no
// guard bit is set. Once the same binding is registered again, or a binding
// arrives from the other category, the tentative slot is promoted into a
// guarded dynamic slot and the default is cleared.
//
// # Dirty tracking
//
// Each dynamic slot owns one bit in the entry's template or host GuardMask.
// When a registration changes a slot's value the bit is asserted in the
// context's pending masks, and Flush only re-resolves entries whose masks
// intersect them:
//
//	styling.RegisterBinding(ctx, node, 1, 0, "width", "100px", false, false)
//	styling.RegisterBinding(ctx, node, 1, 0, "width", "120px", false, false)
//	ctx.Flush(renderer, nil) // applies width=120px
//	ctx.Flush(renderer, nil) // nothing pending, applies nothing
//
// A Context is owned by a single render pass and is not safe for concurrent use.
package styling
