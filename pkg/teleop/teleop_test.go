package teleop

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/vexauton/pkg/input"
	"github.com/gwillem/vexauton/pkg/robot"
)

type pad struct {
	buttons map[input.Button]bool
	axes    map[input.Axis]int
}

func newPad() *pad {
	return &pad{buttons: map[input.Button]bool{}, axes: map[input.Axis]int{}}
}

func (p *pad) Digital(b input.Button) bool { return p.buttons[b] }
func (p *pad) Analog(a input.Axis) int     { return p.axes[a] }

var linear = robot.ExpoCurve{Curve: 1}

func newTestController(t *testing.T, p *pad, invert bool) (*Controller, *robot.Sim) {
	t.Helper()
	sim := robot.NewSim()
	c, err := NewController(p, sim, Config{Hz: 200, Invert: invert, Throttle: linear, Steer: linear})
	require.NoError(t, err)
	return c, sim
}

func TestNewController_RequiresPadAndOutputs(t *testing.T) {
	_, err := NewController(nil, robot.NewSim(), Config{})
	assert.Error(t, err)

	c, err := NewController(newPad(), robot.NewSim(), Config{})
	require.NoError(t, err)
	assert.Equal(t, 100, c.Hz())
}

func TestStep_ArcadeDrive(t *testing.T) {
	tests := []struct {
		name        string
		invert      bool
		y, x        int
		left, right int
	}{
		{"forward", false, 100, 0, 100, 100},
		{"turn", false, 0, 60, 60, -60},
		{"inverted forward", true, 100, 0, -100, -100},
		{"inverted turn", true, 0, 60, -60, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newPad()
			c, sim := newTestController(t, p, tt.invert)
			p.axes[input.AxisLeftY] = tt.y
			p.axes[input.AxisRightX] = tt.x

			c.step(context.Background())

			st := sim.State()
			assert.Equal(t, tt.left, st.Left)
			assert.Equal(t, tt.right, st.Right)
		})
	}
}

func TestStep_IntakeOuttake(t *testing.T) {
	p := newPad()
	c, sim := newTestController(t, p, false)
	ctx := context.Background()

	p.buttons[input.ButtonL1] = true
	p.buttons[input.ButtonR2] = true
	c.step(ctx)
	assert.Equal(t, 127, sim.State().Intake)
	assert.Equal(t, -127, sim.State().Outtake)

	p.buttons[input.ButtonL2] = true
	c.step(ctx)
	assert.Equal(t, 0, sim.State().Intake)
}

func TestStep_PistonTogglesOncePerPress(t *testing.T) {
	p := newPad()
	c, sim := newTestController(t, p, false)
	ctx := context.Background()

	p.buttons[input.ButtonRight] = true
	for i := 0; i < 10; i++ {
		c.step(ctx)
	}
	st := sim.State()
	assert.True(t, st.Pistons[robot.MatchLoad1])
	assert.True(t, st.Pistons[robot.MatchLoad2])
	assert.False(t, st.Pistons[robot.Wing])

	p.buttons[input.ButtonRight] = false
	c.step(ctx)
	p.buttons[input.ButtonRight] = true
	c.step(ctx)
	st = sim.State()
	assert.False(t, st.Pistons[robot.MatchLoad1])
	assert.False(t, st.Pistons[robot.MatchLoad2])

	p.buttons[input.ButtonY] = true
	c.step(ctx)
	c.step(ctx)
	assert.True(t, sim.State().Pistons[robot.Wing])
}

func TestStep_PublishesState(t *testing.T) {
	p := newPad()
	c, _ := newTestController(t, p, false)
	p.axes[input.AxisLeftY] = 50
	p.buttons[input.ButtonY] = true

	c.step(context.Background())

	select {
	case st := <-c.States():
		assert.Equal(t, 50, st.Left)
		assert.True(t, st.Pistons[robot.Wing])
		assert.NoError(t, st.Error)
	default:
		t.Fatal("no state published")
	}
}

func TestStart_StopsMotorsOnCancel(t *testing.T) {
	p := newPad()
	c, sim := newTestController(t, p, false)
	p.axes[input.AxisLeftY] = 127

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Start(ctx) }()

	require.Eventually(t, func() bool { return sim.State().Left == 127 }, time.Second, 5*time.Millisecond)
	assert.True(t, c.Running())
	assert.Error(t, c.Start(ctx), "second Start must fail while running")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("controller did not stop")
	}

	assert.False(t, c.Running())
	assert.Zero(t, sim.State().Left)
}

func TestTune_ReplacesCurves(t *testing.T) {
	p := newPad()
	c, sim := newTestController(t, p, false)
	p.axes[input.AxisLeftY] = 100

	c.step(context.Background())
	require.Equal(t, 100, sim.State().Left)

	wide := robot.ExpoCurve{Deadband: 120, Curve: 1}
	c.Tune(wide, wide)
	c.step(context.Background())
	assert.Zero(t, sim.State().Left)
}
