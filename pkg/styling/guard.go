package styling

import "math/bits"

// GuardMask is a fixed-width bitset marking which binding slots of one source
// category are live dynamic candidates for an entry.
type GuardMask uint32

const (
	// MaskWidth is the number of bits in a GuardMask.
	MaskWidth = 32

	// DefaultGuardMask is the value of a mask before any dynamic slot has been
	// registered. Bit 0 is reserved as a structural flag.
	DefaultGuardMask GuardMask = 0b1

	// overflowBit is shared by every binding id that does not fit in the mask.
	overflowBit = MaskWidth - 1
)

// BitFor returns the mask bit owned by bindingID. Ids at or above the
// overflow bit share it, which only makes dirty checks more conservative.
func BitFor(bindingID int) GuardMask {
	if bindingID >= overflowBit {
		return 1 << overflowBit
	}
	return 1 << uint(bindingID)
}

// BuildGuardMask returns DefaultGuardMask with the bits of the given binding
// ids set.
func BuildGuardMask(bindingIDs ...int) GuardMask {
	mask := DefaultGuardMask
	for _, id := range bindingIDs {
		mask |= BitFor(id)
	}
	return mask
}

// With returns m with the bit for bindingID set.
func (m GuardMask) With(bindingID int) GuardMask {
	return m | BitFor(bindingID)
}

// Has reports whether the bit for bindingID is set.
func (m GuardMask) Has(bindingID int) bool {
	return m&BitFor(bindingID) != 0
}

// Intersects reports whether m and other share a binding bit. The reserved
// structural bit is ignored.
func (m GuardMask) Intersects(other GuardMask) bool {
	return (m&other)&^DefaultGuardMask != 0
}

// IsClear reports whether no binding bit is set.
func (m GuardMask) IsClear() bool {
	return m&^DefaultGuardMask == 0
}

// Bits returns the set binding bit positions in ascending order.
func (m GuardMask) Bits() []int {
	v := uint32(m &^ DefaultGuardMask)
	out := make([]int, 0, bits.OnesCount32(v))
	for v != 0 {
		i := bits.TrailingZeros32(v)
		out = append(out, i)
		v &^= 1 << uint(i)
	}
	return out
}
