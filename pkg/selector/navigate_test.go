package selector

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_NextPrevClamp(t *testing.T) {
	r := New(Static, nil)
	addNames(r, "A", "B", "C")

	assert.Equal(t, 0, r.Prev())
	assert.Equal(t, 1, r.Next())
	assert.Equal(t, 2, r.Next())
	assert.Equal(t, 2, r.Next())
	assert.Equal(t, "C", r.SelectedName())
	assert.Equal(t, 1, r.Prev())
	assert.Equal(t, 0, r.Prev())
	assert.Equal(t, 0, r.Prev())
}

func TestRegistry_SelectClamps(t *testing.T) {
	tests := []struct {
		name  string
		index int
		want  int
	}{
		{"negative", -5, 0},
		{"first", 0, 0},
		{"middle", 1, 1},
		{"last", 2, 2},
		{"past end", 10, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New(Scoped, nil)
			addNames(r, "A", "B", "C")
			assert.Equal(t, tt.want, r.Select(tt.index))
			assert.Equal(t, tt.want, r.SelectedIndex())
		})
	}
}

func TestRegistry_MovesOnEmpty(t *testing.T) {
	r := New(Static, nil)

	assert.Equal(t, 0, r.Next())
	assert.Equal(t, 0, r.Prev())
	assert.Equal(t, 0, r.Select(3))
	assert.Equal(t, NoneName, r.SelectedName())
}

func TestRegistry_RandomMovesStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	r := New(Static, nil)

	for step := 0; step < 2000; step++ {
		switch rng.Intn(4) {
		case 0:
			r.Next()
		case 1:
			r.Prev()
		case 2:
			r.Select(rng.Intn(40) - 20)
		case 3:
			if rng.Intn(10) == 0 {
				r.AddRoutine("routine", nil)
			}
		}

		n := r.Len()
		idx := r.SelectedIndex()
		if n == 0 {
			require.Equal(t, 0, idx)
			require.Equal(t, NoneName, r.SelectedName())
			continue
		}
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, n)
		require.True(t, r.Valid())
	}
}
