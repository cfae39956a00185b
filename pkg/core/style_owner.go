package core

import (
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/go-drift/stylebind/pkg/errors"
	"github.com/go-drift/stylebind/pkg/styling"
)

// StyleOwner owns a tree of elements and tracks the ones whose styling
// needs flushing.
type StyleOwner struct {
	elements []*Element
	dirty    []int
	dirtySet map[int]bool
	mu       sync.Mutex

	// OnNeedsFrame is called when a new element is scheduled for flushing,
	// signalling the platform that a frame should be rendered.
	OnNeedsFrame func()
}

// NewStyleOwner creates an empty owner.
func NewStyleOwner() *StyleOwner {
	return &StyleOwner{}
}

// AddElement creates an element under parent (NoParent for a root).
// It panics if parent is not an element of this owner.
func (o *StyleOwner) AddElement(parent int, opts ElementOptions) *Element {
	depth := 0
	if parent != NoParent {
		p := o.Element(parent)
		if p == nil {
			panic("core: parent element does not belong to this owner")
		}
		depth = p.depth + 1
	}
	index := len(o.elements)
	e := newElement(index, parent, depth, opts, func() { o.ScheduleFlush(index) })
	o.elements = append(o.elements, e)
	return e
}

// Element returns the element at index, or nil.
func (o *StyleOwner) Element(index int) *Element {
	if index < 0 || index >= len(o.elements) {
		return nil
	}
	return o.elements[index]
}

// Len returns the number of elements.
func (o *StyleOwner) Len() int { return len(o.elements) }

// ScheduleFlush marks an element as needing a styling flush.
func (o *StyleOwner) ScheduleFlush(index int) {
	added := func() bool {
		o.mu.Lock()
		defer o.mu.Unlock()
		if o.dirtySet[index] {
			return false
		}
		if o.dirtySet == nil {
			o.dirtySet = make(map[int]bool)
		}
		o.dirtySet[index] = true
		o.dirty = append(o.dirty, index)
		return true
	}()

	if added && o.OnNeedsFrame != nil {
		o.OnNeedsFrame()
	}
}

// NeedsWork returns true if any element is scheduled.
func (o *StyleOwner) NeedsWork() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.dirty) > 0
}

// FlushStyling flushes every scheduled element in depth order, parents
// first, and returns the number of values applied. A panic while flushing
// one element is reported and the remaining elements are still flushed.
// The failed element keeps its pending values and is scheduled again for the
// next frame.
func (o *StyleOwner) FlushStyling() int {
	applied := 0
	failed := make(map[int]bool)
	var retry []int
	for {
		o.mu.Lock()
		if len(o.dirty) == 0 {
			o.mu.Unlock()
			break
		}

		slices.SortFunc(o.dirty, func(a, b int) int {
			return o.elements[a].depth - o.elements[b].depth
		})

		dirty := o.dirty
		o.dirty = nil
		clear(o.dirtySet)
		o.mu.Unlock()

		for _, index := range dirty {
			if failed[index] {
				retry = append(retry, index)
				continue
			}
			n, ok := o.flushElement(o.elements[index])
			applied += n
			if !ok {
				failed[index] = true
			}
		}
	}

	for _, index := range retry {
		o.ScheduleFlush(index)
	}
	return applied
}

func (o *StyleOwner) flushElement(e *Element) (applied int, ok bool) {
	defer errors.RecoverWithCallback("core.FlushStyling", func(r any) {
		styling.Logger().Warn("styling flush panicked",
			zap.Int("element", e.index),
			zap.Any("panic", r))
	})
	return e.Flush(), true
}
