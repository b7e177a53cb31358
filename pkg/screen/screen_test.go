package screen

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer_PrintAndErase(t *testing.T) {
	b := NewBuffer()
	b.Print(LargeCenter, 0, "title")
	b.Print(Medium, 2, "row two")

	assert.Equal(t, "title", b.Text(0))
	assert.Equal(t, "row two", b.Text(2))
	assert.Equal(t, LargeCenter, b.Lines()[0].Format)

	b.Erase()
	for row := 0; row < Rows; row++ {
		assert.Empty(t, b.Text(row), "row %d", row)
	}
}

func TestBuffer_OutOfRangeRowsIgnored(t *testing.T) {
	b := NewBuffer()
	b.Print(Small, -1, "negative")
	b.Print(Small, Rows, "past end")

	assert.Equal(t, strings.Repeat("\n", Rows-1), b.String())
	assert.Empty(t, b.Text(-1))
	assert.Empty(t, b.Text(Rows))
}

func TestBuffer_LinesIsCopy(t *testing.T) {
	b := NewBuffer()
	b.Print(Medium, 1, "kept")

	lines := b.Lines()
	require.Len(t, lines, Rows)
	lines[1].Text = "changed"

	assert.Equal(t, "kept", b.Text(1))
}

func TestTerminal_Flush(t *testing.T) {
	var out bytes.Buffer
	term := NewTerminal(&out, 30)
	term.Print(Medium, 3, "> Skills")
	term.Flush()

	assert.Contains(t, out.String(), "> Skills")
}

type failingWriter struct{ writes int }

func (w *failingWriter) Write([]byte) (int, error) {
	w.writes++
	return 0, errors.New("closed")
}

func TestTerminal_FlushRecordsWriteError(t *testing.T) {
	w := &failingWriter{}
	term := NewTerminal(w, 30)
	require.NoError(t, term.Err())

	term.Flush()
	term.Flush()

	require.Error(t, term.Err())
	assert.Contains(t, term.Err().Error(), "closed")
	assert.Equal(t, 1, w.writes)
}
