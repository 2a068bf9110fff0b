package types

import (
	"encoding/binary"
	"hash/fnv"
	"math"
)

// hashWords is FNV-1a over the little endian encoding of words
func hashWords(words ...uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	for _, w := range words {
		binary.LittleEndian.PutUint64(buf[:], w)
		_, _ = h.Write(buf[:])
	}
	return h.Sum64()
}

func hashString(s string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return h.Sum64()
}

func hashFloat(f float64) uint64 {
	// equal values under cmp.Compare must hash equally
	if f == 0 {
		return 0
	}
	if math.IsNaN(f) {
		return math.MaxUint64
	}
	return math.Float64bits(f)
}
