package selector

import "github.com/gwillem/vexauton/pkg/screen"

// Placeholder is drawn instead of the listing when no routines exist.
const Placeholder = "No Autonomous Routines"

const (
	selectedMarker   = "> "
	unselectedMarker = "  "
)

// Layout places the selector on the brain screen.
type Layout struct {
	Title    string
	FirstRow int
	MaxRows  int
	// FooterRow holds the footer text; Footer receives the selected name.
	FooterRow int
	Footer    func(selected string) string
}

var (
	// StaticLayout lists up to six routines directly under the title,
	// leaving row 7 for the controls legend.
	StaticLayout = Layout{
		Title:     "Select Autonomous",
		FirstRow:  1,
		MaxRows:   6,
		FooterRow: 7,
		Footer:    func(string) string { return "L: Previous | R: Next | A: Select" },
	}

	// ScopedLayout lists up to five routines and names the current choice.
	ScopedLayout = Layout{
		Title:     "Select Autonomous Routine",
		FirstRow:  2,
		MaxRows:   5,
		FooterRow: 7,
		Footer:    func(selected string) string { return "Selected: " + selected },
	}
)

// window returns the [start, end) slice of entries to draw so that the
// selected entry stays visible.
func (l Layout) window(n, selected int) (start, end int) {
	if l.MaxRows <= 0 || n <= l.MaxRows {
		return 0, n
	}
	if selected >= l.MaxRows {
		start = selected - l.MaxRows + 1
	}
	return start, start + l.MaxRows
}

func (r *Registry) renderLocked() {
	if !r.visible || r.screen == nil {
		return
	}
	draw(r.screen, r.lifecycle.Layout, r.entries, r.selected)
	if f, ok := r.screen.(screen.Flusher); ok {
		f.Flush()
	}
}

func draw(scr screen.Screen, l Layout, entries []Entry, selected int) {
	scr.Erase()

	if len(entries) == 0 {
		scr.Print(screen.Large, 0, Placeholder)
		return
	}

	scr.Print(screen.LargeCenter, 0, l.Title)

	start, end := l.window(len(entries), selected)
	row := l.FirstRow
	for i := start; i < end; i++ {
		marker := unselectedMarker
		if i == selected {
			marker = selectedMarker
		}
		scr.Print(screen.Medium, row, marker+entries[i].Name)
		row++
	}

	if l.Footer != nil {
		scr.Print(screen.Small, l.FooterRow, l.Footer(entries[selected].Name))
	}
}
