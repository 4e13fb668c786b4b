package scene

// Bitset is a fixed-capacity bit vector over uint64 words. The culler
// writes one bit per node id; capacity is set by Pass.Resize.
type Bitset []uint64

// newBitset returns a bitset able to hold n bits.
func newBitset(n int) Bitset {
	return make(Bitset, (n+63)/64)
}

// Set sets bit i.
func (b Bitset) Set(i uint32) {
	b[i>>6] |= 1 << (i & 63)
}

// Get reports bit i.
func (b Bitset) Get(i uint32) bool {
	return b[i>>6]&(1<<(i&63)) != 0
}

// Clear zeroes every bit, keeping capacity.
func (b Bitset) Clear() {
	for i := range b {
		b[i] = 0
	}
}

// Len returns the bit capacity.
func (b Bitset) Len() int {
	return len(b) * 64
}
