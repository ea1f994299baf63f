package typeahead

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCursor(t *testing.T) {
	t.Run("Next wraps to first", func(t *testing.T) {
		assert.Equal(t, Cursor(0), Cursor(2).Next(3))
		assert.Equal(t, Cursor(2), Cursor(1).Next(3))
		assert.Equal(t, Cursor(0), None.Next(3))
	})

	t.Run("Prev wraps to last", func(t *testing.T) {
		assert.Equal(t, Cursor(2), Cursor(0).Prev(3))
		assert.Equal(t, Cursor(0), Cursor(1).Prev(3))
		assert.Equal(t, Cursor(2), None.Prev(3))
	})

	t.Run("empty results are a no-op", func(t *testing.T) {
		assert.Equal(t, None, None.Next(0))
		assert.Equal(t, None, None.Prev(0))
	})

	t.Run("stale cursor is treated as none", func(t *testing.T) {
		assert.Equal(t, None, Cursor(5).Normalize(3))
		assert.Equal(t, Cursor(0), Cursor(5).Next(3))
		assert.Equal(t, Cursor(2), Cursor(5).Prev(3))
	})

	t.Run("full cycle returns to start", func(t *testing.T) {
		for n := 1; n <= 5; n++ {
			for start := 0; start < n; start++ {
				c := Cursor(start)
				for i := 0; i < n; i++ {
					c = c.Next(n)
				}
				assert.Equal(t, Cursor(start), c, "next cycle n=%d start=%d", n, start)

				for i := 0; i < n; i++ {
					c = c.Prev(n)
				}
				assert.Equal(t, Cursor(start), c, "prev cycle n=%d start=%d", n, start)
			}
		}
	})
}

func TestViewport(t *testing.T) {
	tc := []struct {
		name string
		in   Viewport
		row  int
		want int
	}{
		{name: "already visible", in: Viewport{Offset: 2, Height: 3}, row: 3, want: 2},
		{name: "first visible row", in: Viewport{Offset: 2, Height: 3}, row: 2, want: 2},
		{name: "last visible row", in: Viewport{Offset: 2, Height: 3}, row: 4, want: 2},
		{name: "above aligns top", in: Viewport{Offset: 4, Height: 3}, row: 1, want: 1},
		{name: "below aligns bottom", in: Viewport{Offset: 0, Height: 3}, row: 7, want: 5},
		{name: "one past bottom", in: Viewport{Offset: 0, Height: 3}, row: 3, want: 1},
		{name: "negative row ignored", in: Viewport{Offset: 2, Height: 3}, row: -1, want: 2},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Reveal(tt.row)
			assert.Equal(t, tt.want, got.Offset)
			assert.True(t, tt.row < 0 || got.Contains(tt.row))
		})
	}

	t.Run("Clamp", func(t *testing.T) {
		assert.Equal(t, 2, Viewport{Offset: 9, Height: 3}.Clamp(5).Offset)
		assert.Equal(t, 0, Viewport{Offset: 9, Height: 3}.Clamp(2).Offset)
		assert.Equal(t, 0, Viewport{Offset: -1, Height: 3}.Clamp(10).Offset)
	})

	t.Run("Window", func(t *testing.T) {
		start, end := Viewport{Offset: 1, Height: 3}.Window(10)
		assert.Equal(t, 1, start)
		assert.Equal(t, 4, end)

		start, end = Viewport{Offset: 0, Height: 6}.Window(2)
		assert.Equal(t, 0, start)
		assert.Equal(t, 2, end)
	})
}
