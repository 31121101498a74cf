package seating

// preference computes d(row, col), the distance from a seat to the venue's
// preferred center. Seats in front of center incur double
// penalty per row ("back is better than front"); smaller is better.
func preference(centerRow, centerCol, row, col int) int {
	horizontal := abs(col - centerCol)
	vertical := row - centerRow
	if vertical < 0 {
		vertical = -2 * vertical
	}
	return horizontal + vertical
}

// rangeRank computes the rank of a row range [colLo, colHi]: the minimum
// d(row, c) over c in the range, i.e. the distance of the range's best seat.
// Because d is convex in col (a V centered at centerCol), the minimum over
// the range is attained at col clamped into [colLo, colHi].
func rangeRank(centerRow, centerCol, row, colLo, colHi int) int {
	best := centerCol
	if best < colLo {
		best = colLo
	}
	if best > colHi {
		best = colHi
	}
	return preference(centerRow, centerCol, row, best)
}
