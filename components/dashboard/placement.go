package dashboard

// GridColumns is the default logical column count of the dashboard grid.
const GridColumns = 3

// Place picks the origin for a new w x h item using first-fit on a single row.
//
// The candidate row is the last row any item starts on. Columns are scanned left to
// right and the first non-overlapping slot wins. When nothing fits (including w wider
// than the grid) the item starts a fresh row at the bottom of the layout. Gaps left by
// earlier removals are never backfilled.
func Place(layout []LayoutItem, w, h, columns int) (x, y int) {
	if columns <= 0 {
		columns = GridColumns
	}
	row, bottom := 0, 0
	for _, item := range layout {
		if item.Y > row {
			row = item.Y
		}
		if end := item.Y + item.H; end > bottom {
			bottom = end
		}
	}
	for x := 0; x <= columns-w; x++ {
		if !overlapsAny(layout, x, row, w, h) {
			return x, row
		}
	}
	return 0, bottom
}

func overlapsAny(layout []LayoutItem, x, y, w, h int) bool {
	for _, item := range layout {
		if overlaps(x, y, w, h, item.X, item.Y, item.W, item.H) {
			return true
		}
	}
	return false
}

func overlaps(ax, ay, aw, ah, bx, by, bw, bh int) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}
