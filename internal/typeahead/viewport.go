package typeahead

// Viewport is the window of result rows visible in the bounded-height panel.
type Viewport struct {
	Offset int // first visible row
	Height int // number of visible rows
}

// Contains reports whether row is fully visible.
func (v Viewport) Contains(row int) bool {
	return row >= v.Offset && row < v.Offset+v.Height
}

// Reveal scrolls the minimum distance needed to show row, aligning it to the
// nearest edge. A row that is already visible leaves the viewport unchanged.
func (v Viewport) Reveal(row int) Viewport {
	if v.Height <= 0 || row < 0 {
		return v
	}
	switch {
	case row < v.Offset:
		v.Offset = row
	case row >= v.Offset+v.Height:
		v.Offset = row - v.Height + 1
	}
	return v
}

// Clamp keeps the offset inside a list of total rows.
func (v Viewport) Clamp(total int) Viewport {
	maxOffset := max(total-v.Height, 0)
	v.Offset = min(max(v.Offset, 0), maxOffset)
	return v
}

// Window returns the half-open row range [start, end) visible for total rows.
func (v Viewport) Window(total int) (start, end int) {
	v = v.Clamp(total)
	return v.Offset, min(v.Offset+v.Height, total)
}
