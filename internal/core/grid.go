package core

import "fmt"

// Grid stores a square lattice of cell values in row-major order. Life uses
// 0/1, Ising uses -1/+1.
type Grid struct {
	side int
	data []int8
}

// NewGrid allocates a side x side grid with every cell set to zero.
func NewGrid(side int) (*Grid, error) {
	if side <= 0 {
		return nil, fmt.Errorf("%w: side %d", ErrInvalidSize, side)
	}
	return &Grid{side: side, data: make([]int8, side*side)}, nil
}

// NewFilledGrid allocates a grid with every cell set to v.
func NewFilledGrid(side int, v int8) (*Grid, error) {
	g, err := NewGrid(side)
	if err != nil {
		return nil, err
	}
	g.Fill(v)
	return g, nil
}

// Side returns the grid width (and height).
func (g *Grid) Side() int { return g.side }

// Size returns the grid dimensions.
func (g *Grid) Size() Size { return Size{W: g.side, H: g.side} }

// Cells exposes the backing slice so callers can read/write values directly.
func (g *Grid) Cells() []int8 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.side + x }

// InBounds reports whether (x, y) addresses a cell.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.side && y >= 0 && y < g.side
}

// At returns the value at (x, y).
func (g *Grid) At(x, y int) (int8, error) {
	if !g.InBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d) on side %d", ErrOutOfRange, x, y, g.side)
	}
	return g.data[g.Index(x, y)], nil
}

// Set writes v at (x, y).
func (g *Grid) Set(x, y int, v int8) error {
	if !g.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d) on side %d", ErrOutOfRange, x, y, g.side)
	}
	g.data[g.Index(x, y)] = v
	return nil
}

// Fill sets every cell to v.
func (g *Grid) Fill(v int8) {
	for i := range g.data {
		g.data[i] = v
	}
}

// Clear fills the grid with zeros.
func (g *Grid) Clear() { g.Fill(0) }

// Resize reallocates the grid. All previous cell state is discarded.
func (g *Grid) Resize(side int) error {
	if side <= 0 {
		return fmt.Errorf("%w: side %d", ErrInvalidSize, side)
	}
	g.side = side
	g.data = make([]int8, side*side)
	return nil
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	return &Grid{side: g.side, data: append([]int8(nil), g.data...)}
}

// Sum returns the sum of all cell values.
func (g *Grid) Sum() int {
	total := 0
	for _, v := range g.data {
		total += int(v)
	}
	return total
}

// Mean returns the mean cell value: density for 0/1 grids, magnetization
// for ±1 grids.
func (g *Grid) Mean() float64 {
	return float64(g.Sum()) / float64(len(g.data))
}

// MooreSum adds the 8 surrounding cells with toroidal wrap. On tiny grids a
// cell may be counted more than once (or count itself); that is accepted.
func (g *Grid) MooreSum(x, y int) int {
	s := g.side
	sum := 0
	for dy := -1; dy <= 1; dy++ {
		ny := (y + dy + s) % s
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx + s) % s
			sum += int(g.data[ny*s+nx])
		}
	}
	return sum
}

// VonNeumannSum adds the 4 orthogonal neighbours with toroidal wrap.
func (g *Grid) VonNeumannSum(x, y int) int {
	s := g.side
	left := (x - 1 + s) % s
	right := (x + 1) % s
	up := (y - 1 + s) % s
	down := (y + 1) % s
	return int(g.data[up*s+x]) + int(g.data[down*s+x]) + int(g.data[y*s+left]) + int(g.data[y*s+right])
}

// NeighborSum dispatches on the neighbourhood kind.
func (g *Grid) NeighborSum(n Neighborhood, x, y int) int {
	if n == VonNeumann {
		return g.VonNeumannSum(x, y)
	}
	return g.MooreSum(x, y)
}

// Snapshot returns a read-only copy for painters and charts.
func (g *Grid) Snapshot() Snapshot {
	return Snapshot{grid: g.Clone()}
}

// Snapshot is an immutable view of a grid at one point in time.
type Snapshot struct {
	grid *Grid
}

// Side returns the snapshot side length, or 0 for the zero Snapshot.
func (s Snapshot) Side() int {
	if s.grid == nil {
		return 0
	}
	return s.grid.side
}

// At returns the cell value at (x, y).
func (s Snapshot) At(x, y int) (int8, error) {
	if s.grid == nil {
		return 0, fmt.Errorf("%w: empty snapshot", ErrOutOfRange)
	}
	return s.grid.At(x, y)
}

// Cells returns a copy of the row-major cell values.
func (s Snapshot) Cells() []int8 {
	if s.grid == nil {
		return nil
	}
	return append([]int8(nil), s.grid.data...)
}
