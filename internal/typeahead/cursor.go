package typeahead

// Cursor is the highlighted result index, or [None].
type Cursor int

// None means nothing is highlighted.
const None Cursor = -1

// Valid reports whether c indexes a result set of length n.
func (c Cursor) Valid(n int) bool {
	return c >= 0 && int(c) < n
}

// Normalize maps any out-of-range cursor to [None].
func (c Cursor) Normalize(n int) Cursor {
	if !c.Valid(n) {
		return None
	}
	return c
}

// Next advances the cursor, wrapping from the last result to the first.
// From [None] it moves to the first result. With no results it is a no-op.
func (c Cursor) Next(n int) Cursor {
	if n == 0 {
		return c
	}
	c = c.Normalize(n)
	if int(c) < n-1 {
		return c + 1
	}
	return 0
}

// Prev moves the cursor back, wrapping from the first result to the last.
// From [None] it moves to the last result. With no results it is a no-op.
func (c Cursor) Prev(n int) Cursor {
	if n == 0 {
		return c
	}
	c = c.Normalize(n)
	if c > 0 {
		return c - 1
	}
	return Cursor(n - 1)
}
