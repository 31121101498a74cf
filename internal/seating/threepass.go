package seating

// ThreePassAllocator is the space-optimal allocation strategy: a per-row
// bitmap (one flag per seat) and three front-to-back greedy passes with
// minSize in {N, 2, 1}. Pass 1 tries to keep the whole group contiguous,
// pass 2 preserves pairs, pass 3 mops up singletons. Front-most and
// left-most placement is the tie-break policy.
//
// Cost: O(R*C) time per call, O(R*C) flags of state.
type ThreePassAllocator struct {
	layout Layout
	used   [][]bool // used[row][col]; bool per bit is simplest to read/audit
}

// NewThreePassAllocator builds an allocator with every seat in layout free.
func NewThreePassAllocator(layout Layout) *ThreePassAllocator {
	used := make([][]bool, layout.Rows())
	for r := range used {
		used[r] = make([]bool, layout.Cols())
	}
	return &ThreePassAllocator{layout: layout, used: used}
}

// Allocate implements Allocator.
func (a *ThreePassAllocator) Allocate(numSeats int, hold *Hold) bool {
	remaining := numSeats
	for _, minSize := range [3]int{numSeats, 2, 1} {
		if minSize <= 0 {
			continue
		}
		numCols := a.layout.Cols()
	pass:
		for row := 0; row < a.layout.Rows(); row++ {
			for col1 := 0; col1 < numCols; {
				col3 := col1 + 1
				for col3 < numCols && a.used[row][col3-1] == a.used[row][col3] {
					col3++
				}
				// loop invariant: all bits in [col1, col3) are equal
				size := col3 - col1
				if size >= minSize && !a.used[row][col1] {
					maxSize := min(size/minSize*minSize, remaining)
					col2 := col1 + maxSize
					for c := col1; c < col2; c++ {
						a.used[row][c] = true
					}
					if err := hold.addRange(a.layout, row, col1, col2-1); err != nil {
						return false
					}
					remaining -= maxSize
					if remaining == 0 {
						return true
					}
					if remaining < minSize {
						break pass
					}
				}
				col1 = col3
			}
		}
	}
	return false // unreachable: the service never overbooks
}

// Release implements Allocator.
func (a *ThreePassAllocator) Release(hold *Hold) {
	for _, seat := range hold.Seats() {
		a.used[seat.Row][seat.Col] = false
	}
}
