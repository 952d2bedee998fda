package life

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"

	"cellsim/internal/core"
)

// MaxNeighbors is the size of the Moore neighbourhood.
const MaxNeighbors = 8

// CountSet is a set of neighbour counts in [0, 8], stored as a bitmask.
type CountSet uint16

// NewCountSet builds a set, rejecting counts outside [0, 8]. Duplicates
// are ignored.
func NewCountSet(counts []int) (CountSet, error) {
	var s CountSet
	for _, n := range counts {
		if n < 0 || n > MaxNeighbors {
			return 0, fmt.Errorf("%w: neighbour count %d outside [0,%d]", core.ErrInvalidRuleConfig, n, MaxNeighbors)
		}
		s |= 1 << uint(n)
	}
	return s, nil
}

// MustCountSet is NewCountSet that panics on error, for literals.
func MustCountSet(counts ...int) CountSet {
	s, err := NewCountSet(counts)
	if err != nil {
		panic(err)
	}
	return s
}

// Has reports whether n is in the set.
func (s CountSet) Has(n int) bool {
	if n < 0 || n > MaxNeighbors {
		return false
	}
	return s&(1<<uint(n)) != 0
}

// Empty reports whether the set has no members.
func (s CountSet) Empty() bool { return s == 0 }

// Counts lists the members in ascending order.
func (s CountSet) Counts() []int {
	var out []int
	for n := 0; n <= MaxNeighbors; n++ {
		if s.Has(n) {
			out = append(out, n)
		}
	}
	return out
}

// String renders the set in rulestring form, e.g. "23".
func (s CountSet) String() string {
	var b strings.Builder
	for _, n := range s.Counts() {
		b.WriteString(strconv.Itoa(n))
	}
	return b.String()
}

// NextValue is the Life transition: a live cell stays alive when its count
// is in stay, a dead cell is born when its count is in born.
func NextValue(alive bool, aliveNeighbors int, stay, born CountSet) bool {
	if alive {
		return stay.Has(aliveNeighbors)
	}
	return born.Has(aliveNeighbors)
}

// Rule is an outer-totalistic Life-like rule.
type Rule struct {
	Stay CountSet
	Born CountSet
}

// Conway returns B3/S23.
func Conway() Rule {
	return Rule{Stay: MustCountSet(2, 3), Born: MustCountSet(3)}
}

// Validate requires at least one stay and one born count.
func (r Rule) Validate() error {
	if r.Stay.Empty() {
		return fmt.Errorf("%w: no stay counts selected", core.ErrInvalidRuleConfig)
	}
	if r.Born.Empty() {
		return fmt.Errorf("%w: no born counts selected", core.ErrInvalidRuleConfig)
	}
	return nil
}

// String renders the rule as "B3/S23".
func (r Rule) String() string {
	return "B" + r.Born.String() + "/S" + r.Stay.String()
}

// Neighborhood implements core.Rule.
func (r Rule) Neighborhood() core.Neighborhood { return core.Moore }

// Next implements core.Rule over 0/1 cells.
func (r Rule) Next(current int8, aggregate int, _ *rand.Rand) int8 {
	if NextValue(current != 0, aggregate, r.Stay, r.Born) {
		return 1
	}
	return 0
}
