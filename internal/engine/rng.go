package engine

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand/v2"
)

// Source is the only source of randomness the engine reads. *rand.Rand
// satisfies it.
type Source interface {
	IntN(n int) int
}

// NewSeededSource returns a deterministic source; the same seed replays the
// same match.
func NewSeededSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewSource returns an unseeded source for production play.
func NewSource() Source {
	return NewSeededSource(NewSeed())
}

func NewSeed() uint64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return rand.Uint64()
	}
	return binary.LittleEndian.Uint64(b[:])
}

func rollDie(src Source) int {
	return src.IntN(6) + 1
}

// RollTwoDice returns a sum in 2..12.
func RollTwoDice(src Source) int {
	return rollDie(src) + rollDie(src)
}
