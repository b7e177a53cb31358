package main

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gwillem/vexauton/pkg/input"
	"github.com/gwillem/vexauton/pkg/robot"
	"github.com/gwillem/vexauton/pkg/screen"
	"github.com/gwillem/vexauton/pkg/selector"
)

func TestRegisterRoutines_Order(t *testing.T) {
	sel := selector.New(selector.Static, screen.NewBuffer())
	registerRoutines(context.Background(), sel, robot.NewSim(), zerolog.Nop())

	assert.Equal(t, []string{
		"Blue Safe", "Blue Intake", "Red Safe", "Red Outtake",
		"Skills", "Aggressive", "Safe", "Mixed", "Nothing",
	}, sel.Names())
	assert.Equal(t, "Blue Safe", sel.SelectedName())
}

func TestTimed_StopsAtEnd(t *testing.T) {
	sim := robot.NewSim()
	r := timed(context.Background(), sim, zerolog.Nop(),
		step{left: 50, right: 50, intake: 30, d: time.Millisecond},
		turn(40, time.Millisecond),
	)
	r()

	s := sim.State()
	assert.Zero(t, s.Left)
	assert.Zero(t, s.Right)
	assert.Zero(t, s.Intake)
}

func TestTimed_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sim := robot.NewSim()
	done := make(chan struct{})
	go func() {
		timed(ctx, sim, zerolog.Nop(), forward(100, time.Hour))()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("routine ignored cancellation")
	}
	assert.Zero(t, sim.State().Left)
}

func TestIndexOf(t *testing.T) {
	names := []string{"Blue Safe", "Skills"}
	require.Equal(t, 1, indexOf(names, "skills"))
	require.Equal(t, -1, indexOf(names, "Nothing"))
}

type stopFails struct{ *robot.Sim }

func (stopFails) Stop(context.Context) error { return errors.New("bus timeout") }

func TestTimed_LogsStopFailure(t *testing.T) {
	var buf bytes.Buffer
	r := timed(context.Background(), stopFails{robot.NewSim()}, zerolog.New(&buf), pause(time.Millisecond))
	r()

	assert.Contains(t, buf.String(), "stop failed")
	assert.Contains(t, buf.String(), "bus timeout")
}

func TestGPIODriverControls(t *testing.T) {
	cfg := robot.DefaultConfig()
	pins, err := buttonPins(cfg)
	require.NoError(t, err)
	assert.Equal(t, []string{"match load"}, gpioDriverControls(pins))

	assert.Empty(t, gpioDriverControls(map[input.Button]int{input.ButtonA: 22}))
	assert.Equal(t, []string{"intake", "wing"},
		gpioDriverControls(map[input.Button]int{input.ButtonL2: 5, input.ButtonY: 6}))
}
