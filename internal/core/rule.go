package core

import "math/rand/v2"

// Neighborhood selects which cells contribute to a neighbour aggregate.
type Neighborhood uint8

const (
	// Moore is the 8-cell neighbourhood.
	Moore Neighborhood = iota
	// VonNeumann is the 4-cell orthogonal neighbourhood.
	VonNeumann
)

func (n Neighborhood) String() string {
	if n == VonNeumann {
		return "von-neumann"
	}
	return "moore"
}

// Rule maps a cell and its neighbour aggregate to the cell's next value.
// Deterministic rules ignore rng.
type Rule interface {
	Neighborhood() Neighborhood
	Next(current int8, aggregate int, rng *rand.Rand) int8
}

// Step applies r to every cell of prev and returns a new grid. Every
// aggregate is read from prev, never from the grid being written.
func Step(prev *Grid, r Rule, rng *rand.Rand) *Grid {
	next := &Grid{side: prev.side, data: make([]int8, len(prev.data))}
	StepInto(next, prev, r, rng)
	return next
}

// StepInto is Step writing into a preallocated grid of the same side, so
// simulators can double-buffer. next and prev must not alias.
func StepInto(next, prev *Grid, r Rule, rng *rand.Rand) {
	s := prev.side
	hood := r.Neighborhood()
	for y := 0; y < s; y++ {
		for x := 0; x < s; x++ {
			idx := y*s + x
			next.data[idx] = r.Next(prev.data[idx], prev.NeighborSum(hood, x, y), rng)
		}
	}
}
