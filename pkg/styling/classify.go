package styling

// Transition is the outcome of classifying one registration against the
// current state of an entry.
type Transition uint8

const (
	// TransitionAllocateDefault allocates the first slot of an entry as the
	// tentative default.
	TransitionAllocateDefault Transition = iota
	// TransitionFillDefault re-registers a tentative default that holds no
	// value yet. The slot stays tentative and may establish the default.
	TransitionFillDefault
	// TransitionPromoteRepeat re-registers a tentative default that holds a
	// value, which proves the binding is live. The slot becomes dynamic.
	TransitionPromoteRepeat
	// TransitionPromoteCrossCategory allocates a slot from the category the
	// tentative default does not belong to. Both become dynamic.
	TransitionPromoteCrossCategory
	// TransitionAllocateDynamic allocates a new guarded slot.
	TransitionAllocateDynamic
	// TransitionUpdate replaces the value of an existing dynamic slot.
	TransitionUpdate
)

var transitionNames = [...]string{
	TransitionAllocateDefault:      "allocate-default",
	TransitionFillDefault:          "fill-default",
	TransitionPromoteRepeat:        "promote-repeat",
	TransitionPromoteCrossCategory: "promote-cross-category",
	TransitionAllocateDynamic:      "allocate-dynamic",
	TransitionUpdate:               "update",
}

func (t Transition) String() string {
	if int(t) < len(transitionNames) {
		return transitionNames[t]
	}
	return "unknown"
}

// Promotes reports whether the transition turns the tentative default into
// a dynamic slot.
func (t Transition) Promotes() bool {
	return t == TransitionPromoteRepeat || t == TransitionPromoteCrossCategory
}

// Allocates reports whether the transition creates a new slot.
func (t Transition) Allocates() bool {
	switch t {
	case TransitionAllocateDefault, TransitionPromoteCrossCategory, TransitionAllocateDynamic:
		return true
	}
	return false
}

type incoming struct {
	bindingID   int
	sourceIndex int
}

// classify decides what a registration does to e. It does not mutate e.
func classify(e *PropertyEntry, in incoming) Transition {
	category := categoryOf(in.sourceIndex)
	if existing := e.lookup(category, in.bindingID); existing != nil {
		if existing.tag == TagDynamic {
			return TransitionUpdate
		}
		if existing.value == nil {
			return TransitionFillDefault
		}
		// A repeat promotes whether or not the value changed; only a slot
		// still holding nil keeps waiting for its default.
		return TransitionPromoteRepeat
	}
	if len(e.slots) == 0 {
		return TransitionAllocateDefault
	}
	if e.tentative != nil && categoryOf(e.tentative.sourceIndex) != category {
		return TransitionPromoteCrossCategory
	}
	return TransitionAllocateDynamic
}
