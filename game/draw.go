package game

import (
	"errors"
	"math/rand"
)

// ErrExhaustedPool is returned when all 75 numbers have been drawn.
var ErrExhaustedPool = errors.New("all numbers have been drawn")

// DrawNext picks one undrawn number uniformly at random from [1, PoolSize].
// It never mutates the ledger; committing the returned number is the
// caller's responsibility and is host-only.
func DrawNext(alreadyDrawn []int) (int, error) {
	drawn := make(map[int]bool, len(alreadyDrawn))
	for _, n := range alreadyDrawn {
		drawn[n] = true
	}

	remaining := make([]int, 0, PoolSize-len(drawn))
	for n := 1; n <= PoolSize; n++ {
		if !drawn[n] {
			remaining = append(remaining, n)
		}
	}
	if len(remaining) == 0 {
		return 0, ErrExhaustedPool
	}
	return remaining[rand.Intn(len(remaining))], nil
}
