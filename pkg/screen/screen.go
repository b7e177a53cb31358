// Package screen models the robot brain's text display.
package screen

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

// Rows is the number of text rows on the brain screen.
const Rows = 8

// Format selects the font size and alignment of a printed row.
type Format int

const (
	Small Format = iota
	Medium
	Large
	MediumCenter
	LargeCenter
)

// Screen is a fixed-row text display. Rows outside [0, Rows) are ignored.
type Screen interface {
	Erase()
	Print(format Format, row int, text string)
}

// Flusher is implemented by screens that present a frame after a full redraw.
type Flusher interface {
	Flush()
}

// Line is one printed row.
type Line struct {
	Format Format
	Text   string
}

// Buffer is an in-memory Screen. Safe for concurrent use.
type Buffer struct {
	mu    sync.RWMutex
	lines [Rows]Line
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Erase clears every row.
func (b *Buffer) Erase() {
	b.mu.Lock()
	b.lines = [Rows]Line{}
	b.mu.Unlock()
}

// Print replaces the text on a row.
func (b *Buffer) Print(format Format, row int, text string) {
	if row < 0 || row >= Rows {
		return
	}
	b.mu.Lock()
	b.lines[row] = Line{Format: format, Text: text}
	b.mu.Unlock()
}

// Lines returns a copy of all rows.
func (b *Buffer) Lines() []Line {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]Line, Rows)
	copy(out, b.lines[:])
	return out
}

// Text returns the text on a row, or "" when the row is out of range.
func (b *Buffer) Text(row int) string {
	if row < 0 || row >= Rows {
		return ""
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lines[row].Text
}

// String returns the plain text of all rows, one per line.
func (b *Buffer) String() string {
	lines := b.Lines()
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
	}
	return strings.Join(texts, "\n")
}

var (
	frameStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))
	smallStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	mediumStyle = lipgloss.NewStyle()
	largeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// View renders the buffer as a framed terminal panel of the given inner width.
func (b *Buffer) View(width int) string {
	if width < 20 {
		width = 20
	}
	lines := b.Lines()
	rendered := make([]string, len(lines))
	for i, l := range lines {
		rendered[i] = formatStyle(l.Format).Width(width).Render(l.Text)
	}
	return frameStyle.Render(strings.Join(rendered, "\n"))
}

func formatStyle(f Format) lipgloss.Style {
	switch f {
	case Small:
		return smallStyle
	case Large:
		return largeStyle
	case MediumCenter:
		return mediumStyle.Align(lipgloss.Center)
	case LargeCenter:
		return largeStyle.Align(lipgloss.Center)
	default:
		return mediumStyle
	}
}

// Terminal is a Buffer that writes its view to Out on every Flush.
type Terminal struct {
	*Buffer
	Out   io.Writer
	Width int

	errMu sync.Mutex
	err   error
}

// NewTerminal creates a terminal screen writing to out.
func NewTerminal(out io.Writer, width int) *Terminal {
	return &Terminal{Buffer: NewBuffer(), Out: out, Width: width}
}

// Flush writes the current frame. After a write error Flush does nothing
// and Err reports the error.
func (t *Terminal) Flush() {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	if t.err != nil {
		return
	}
	if _, err := io.WriteString(t.Out, t.View(t.Width)+"\n"); err != nil {
		t.err = fmt.Errorf("flush screen: %w", err)
	}
}

// Err returns the first write error seen by Flush.
func (t *Terminal) Err() error {
	t.errMu.Lock()
	defer t.errMu.Unlock()
	return t.err
}
