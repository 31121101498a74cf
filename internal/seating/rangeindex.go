package seating

import "sort"

// emptyRun is a maximal contiguous block of currently-empty seats in one
// row, together with its rank (the preference distance of its best seat).
// Once created, a run's fields never change in place — a split or a merge
// always removes the old run(s) from every index and inserts fresh ones,
// so pointer identity is a safe removal key.
type emptyRun struct {
	row, colLo, colHi, rank int
}

func (r *emptyRun) length() int { return r.colHi - r.colLo + 1 }

// lessRun orders runs by (rank ascending, row ascending, colLo ascending).
func lessRun(a, b *emptyRun) bool {
	if a.rank != b.rank {
		return a.rank < b.rank
	}
	if a.row != b.row {
		return a.row < b.row
	}
	return a.colLo < b.colLo
}

// lengthBucket is pq[k]: every empty run of length exactly k, kept sorted
// by the tie-break order above so the minimum is always the first element.
// It is a small sorted slice rather than a balanced tree: min is O(1),
// insert is a binary search plus an O(n) splice, and remove is an O(n)
// scan by pointer identity, adequate for the grid sizes this engine targets.
type lengthBucket struct {
	runs []*emptyRun
}

func (b *lengthBucket) min() *emptyRun {
	if len(b.runs) == 0 {
		return nil
	}
	return b.runs[0]
}

func (b *lengthBucket) insert(r *emptyRun) {
	i := sort.Search(len(b.runs), func(i int) bool { return lessRun(r, b.runs[i]) })
	b.runs = append(b.runs, nil)
	copy(b.runs[i+1:], b.runs[i:])
	b.runs[i] = r
}

// remove deletes r by pointer identity, returning whether it was found.
func (b *lengthBucket) remove(r *emptyRun) bool {
	for i, cand := range b.runs {
		if cand == r {
			b.runs = append(b.runs[:i], b.runs[i+1:]...)
			return true
		}
	}
	return false
}

// rowIndex is the per-row sorted-by-colLo view of empty runs used to locate
// the immediate left/right neighbor of a freshly released run via floor
// and ceiling queries.
type rowIndex struct {
	runs []*emptyRun // sorted by colLo, no two runs ever touch or overlap
}

func (ri *rowIndex) insert(r *emptyRun) {
	i := sort.Search(len(ri.runs), func(i int) bool { return ri.runs[i].colLo >= r.colLo })
	ri.runs = append(ri.runs, nil)
	copy(ri.runs[i+1:], ri.runs[i:])
	ri.runs[i] = r
}

func (ri *rowIndex) remove(r *emptyRun) bool {
	for i, cand := range ri.runs {
		if cand == r {
			ri.runs = append(ri.runs[:i], ri.runs[i+1:]...)
			return true
		}
	}
	return false
}

// rightOf returns the run immediately starting at colHi+1, if any.
func (ri *rowIndex) rightOf(colHi int) *emptyRun {
	i := sort.Search(len(ri.runs), func(i int) bool { return ri.runs[i].colLo >= colHi+1 })
	if i < len(ri.runs) && ri.runs[i].colLo == colHi+1 {
		return ri.runs[i]
	}
	return nil
}

// leftOf returns the run immediately ending at colLo-1, if any.
func (ri *rowIndex) leftOf(colLo int) *emptyRun {
	i := sort.Search(len(ri.runs), func(i int) bool { return ri.runs[i].colLo >= colLo })
	if i > 0 && ri.runs[i-1].colHi == colLo-1 {
		return ri.runs[i-1]
	}
	return nil
}
