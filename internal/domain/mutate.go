// Package domain contains the core corpus seeding workflow and logic.
package domain

import (
	"crypto/sha256"
	"fmt"
	"math/rand"
)

// DefaultInsertByte is the byte value injected into every mutated sample.
const DefaultInsertByte byte = 0xFF

// DefaultTrials is the number of mutation trials performed per seed.
const DefaultTrials = 3

// Mutate returns a copy of data with insertByte inserted at an offset
// chosen uniformly from [0, len(data)]. The input slice is never modified
// and the output is always exactly one byte longer.
func Mutate(data []byte, insertByte byte, rng *rand.Rand) []byte {
	offset := rng.Intn(len(data) + 1)

	return MutateAt(data, insertByte, offset)
}

// MutateAt inserts insertByte at the given offset. Offsets outside
// [0, len(data)] panic; callers derive them from the slice length.
func MutateAt(data []byte, insertByte byte, offset int) []byte {
	if offset < 0 || offset > len(data) {
		panic(fmt.Sprintf("mutation offset %d out of range [0, %d]", offset, len(data)))
	}

	out := make([]byte, 0, len(data)+1)
	out = append(out, data[:offset]...)
	out = append(out, insertByte)
	out = append(out, data[offset:]...)

	return out
}

// ContentAddress returns the SHA-256 digest of data as 64 lowercase hex
// characters. Identical byte sequences always yield identical addresses,
// so byte-identical samples collide to the same corpus entry.
func ContentAddress(data []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(data))
}
