package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEdge_Rising(t *testing.T) {
	var e Edge
	samples := []bool{false, true, true, true, false, true, false, false, true}
	want := []bool{false, true, false, false, false, true, false, false, true}

	for i, s := range samples {
		assert.Equal(t, want[i], e.Rising(s), "sample %d", i)
	}
}

func TestEdge_Reset(t *testing.T) {
	var e Edge
	assert.True(t, e.Rising(true))
	assert.False(t, e.Rising(true))

	e.Reset()
	assert.True(t, e.Rising(true))
}

func TestParseButton(t *testing.T) {
	for b, name := range buttonNames {
		got, ok := ParseButton(name)
		assert.True(t, ok, name)
		assert.Equal(t, b, got)
		assert.Equal(t, name, b.String())
	}

	_, ok := ParseButton("Z")
	assert.False(t, ok)
	assert.Equal(t, "Unknown", Button(99).String())
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func newTestKeys() (*Keys, *fakeClock) {
	clock := &fakeClock{t: time.Unix(1000, 0)}
	k := NewKeys()
	k.now = clock.now
	return k, clock
}

func TestKeys_PressHoldsUntilExpiry(t *testing.T) {
	k, clock := newTestKeys()

	k.Press(ButtonA)
	assert.True(t, k.Digital(ButtonA))
	assert.False(t, k.Digital(ButtonB))

	clock.t = clock.t.Add(DefaultDelay - time.Millisecond)
	assert.True(t, k.Digital(ButtonA))

	clock.t = clock.t.Add(time.Millisecond)
	assert.False(t, k.Digital(ButtonA))
}

func TestKeys_RepeatAfterDelayHoldsShorter(t *testing.T) {
	k, clock := newTestKeys()

	k.Press(ButtonA)
	clock.t = clock.t.Add(DefaultDelay - 10*time.Millisecond)
	k.Press(ButtonA)

	clock.t = clock.t.Add(DefaultHold - time.Millisecond)
	assert.True(t, k.Digital(ButtonA))
	clock.t = clock.t.Add(time.Millisecond)
	assert.False(t, k.Digital(ButtonA))
}

func TestKeys_RepeatExtendsHold(t *testing.T) {
	k, clock := newTestKeys()

	k.Press(ButtonRight)
	for i := 0; i < 5; i++ {
		clock.t = clock.t.Add(30 * time.Millisecond)
		k.Press(ButtonRight)
		assert.True(t, k.Digital(ButtonRight))
	}
}

func TestKeys_Release(t *testing.T) {
	k, _ := newTestKeys()
	k.Press(ButtonY)
	k.Release(ButtonY)
	assert.False(t, k.Digital(ButtonY))
}

func TestKeys_AxisClampAndExpiry(t *testing.T) {
	k, clock := newTestKeys()

	k.Push(AxisLeftY, 500)
	assert.Equal(t, AxisMax, k.Analog(AxisLeftY))
	k.Push(AxisRightX, -500)
	assert.Equal(t, -AxisMax, k.Analog(AxisRightX))
	assert.Equal(t, 0, k.Analog(AxisLeftX))

	clock.t = clock.t.Add(DefaultDelay)
	assert.Equal(t, 0, k.Analog(AxisLeftY))
}
