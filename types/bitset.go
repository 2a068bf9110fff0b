package types

import (
	"iter"
	"math/bits"
	"strings"
)

// UniformTypeBitSet is the Uniform variant of SemType: bit i set means every
// value of category i, with no refinement
type UniformTypeBitSet uint32

// AllBits is the universe
const AllBits UniformTypeBitSet = 1<<CodeCount - 1

var _ SemType = UniformTypeBitSet(0)

func Singleton(code BasicTypeCode) UniformTypeBitSet {
	return 1 << code
}

func (b UniformTypeBitSet) Union(other UniformTypeBitSet) UniformTypeBitSet {
	return b | other
}

func (b UniformTypeBitSet) Intersect(other UniformTypeBitSet) UniformTypeBitSet {
	return b & other
}

// Complement is relative to AllBits
func (b UniformTypeBitSet) Complement() UniformTypeBitSet {
	return AllBits &^ b
}

func (b UniformTypeBitSet) IsSubset(other UniformTypeBitSet) bool {
	return b&^other == 0
}

func (b UniformTypeBitSet) IsEmpty() bool {
	return b == 0
}

func (b UniformTypeBitSet) Contains(code BasicTypeCode) bool {
	return b&Singleton(code) != 0
}

// Len is the number of categories in b
func (b UniformTypeBitSet) Len() int {
	return bits.OnesCount32(uint32(b))
}

// Codes yields the codes of the set bits in ascending order
func (b UniformTypeBitSet) Codes() iter.Seq[BasicTypeCode] {
	return func(yield func(BasicTypeCode) bool) {
		for rest := uint32(b); rest != 0; rest &= rest - 1 {
			if !yield(BasicTypeCode(bits.TrailingZeros32(rest))) {
				return
			}
		}
	}
}

func (b UniformTypeBitSet) Hash() uint64 { return uint64(b) }
func (UniformTypeBitSet) isSemType()     {}

func (b UniformTypeBitSet) String() string {
	switch b {
	case 0:
		return "never"
	case AllBits:
		return "any"
	}
	names := make([]string, 0, b.Len())
	for code := range b.Codes() {
		names = append(names, code.String())
	}
	return strings.Join(names, "|")
}
