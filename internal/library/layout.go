package library

// Placement is where Masonry put one item.
type Placement struct {
	Column int
	Top    int
}

// Masonry places items of the given heights into columns, each item going
// to the currently shortest column (lowest index wins ties). It returns the
// placements and the height of the tallest column.
func Masonry(heights []int, columns, gap int) ([]Placement, int) {
	if columns < 1 {
		columns = 1
	}
	colHeights := make([]int, columns)
	out := make([]Placement, len(heights))
	for i, h := range heights {
		minCol := 0
		for c := 1; c < columns; c++ {
			if colHeights[c] < colHeights[minCol] {
				minCol = c
			}
		}
		out[i] = Placement{Column: minCol, Top: colHeights[minCol]}
		colHeights[minCol] += h + gap
	}
	total := 0
	for _, h := range colHeights {
		total = max(total, h)
	}
	return out, total
}

// Columns returns how many items of itemWidth fit in width, at least one.
func Columns(width, itemWidth, gap int) int {
	if itemWidth+gap <= 0 {
		return 1
	}
	return max(1, (width+gap)/(itemWidth+gap))
}
