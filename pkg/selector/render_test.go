package selector

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gwillem/vexauton/pkg/screen"
)

func TestRender_EmptyPlaceholder(t *testing.T) {
	buf := screen.NewBuffer()
	buf.Print(screen.Medium, 3, "stale")
	r := New(Static, buf)

	r.Show()

	assert.Equal(t, Placeholder, buf.Text(0))
	assert.Empty(t, buf.Text(3))
	assert.Empty(t, buf.Text(7))
}

func TestRender_StaticListing(t *testing.T) {
	buf := screen.NewBuffer()
	r := New(Static, buf)
	addNames(r, "Blue Safe", "Red Safe", "Skills")
	r.Next()

	want := []string{
		"Select Autonomous",
		"  Blue Safe",
		"> Red Safe",
		"  Skills",
		"",
		"",
		"",
		"L: Previous | R: Next | A: Select",
	}
	for row, text := range want {
		assert.Equal(t, text, buf.Text(row), "row %d", row)
	}
}

func TestRender_ScopedListingShowsSelection(t *testing.T) {
	buf := screen.NewBuffer()
	r := New(Scoped, buf)
	addNames(r, "Blue Safe", "Skills")
	r.Show()
	r.Select(1)

	assert.Equal(t, "Select Autonomous Routine", buf.Text(0))
	assert.Equal(t, "  Blue Safe", buf.Text(2))
	assert.Equal(t, "> Skills", buf.Text(3))
	assert.Equal(t, "Selected: Skills", buf.Text(7))
}

func TestRender_HiddenDoesNotDraw(t *testing.T) {
	buf := screen.NewBuffer()
	r := New(Scoped, buf)
	addNames(r, "A", "B")
	r.Select(1)

	assert.Empty(t, buf.Text(0))
	assert.Empty(t, buf.Text(3))
}

func TestRender_TruncatesAndScrolls(t *testing.T) {
	buf := screen.NewBuffer()
	r := New(Static, buf)
	for i := 0; i < 9; i++ {
		r.AddRoutine(fmt.Sprintf("R%d", i), nil)
	}

	assert.Equal(t, "> R0", buf.Text(1))
	assert.Equal(t, "  R5", buf.Text(6))
	assert.Equal(t, "L: Previous | R: Next | A: Select", buf.Text(7))

	r.Select(8)
	assert.Equal(t, "  R3", buf.Text(1))
	assert.Equal(t, "> R8", buf.Text(6))
}

func TestLayout_Window(t *testing.T) {
	tests := []struct {
		n, selected int
		start, end  int
	}{
		{0, 0, 0, 0},
		{3, 2, 0, 3},
		{6, 5, 0, 6},
		{9, 0, 0, 6},
		{9, 5, 0, 6},
		{9, 6, 1, 7},
		{9, 8, 3, 9},
	}

	for _, tt := range tests {
		start, end := StaticLayout.window(tt.n, tt.selected)
		assert.Equal(t, tt.start, start, "window(%d, %d) start", tt.n, tt.selected)
		assert.Equal(t, tt.end, end, "window(%d, %d) end", tt.n, tt.selected)
	}
}
