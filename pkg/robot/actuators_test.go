package robot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSim_RecordsAndClamps(t *testing.T) {
	ctx := context.Background()
	sim := NewSim()

	assert.NoError(t, sim.Drive(ctx, 200, -90))
	assert.NoError(t, sim.Intake(ctx, -300))
	assert.NoError(t, sim.Outtake(ctx, 64))
	assert.NoError(t, sim.SetPiston(ctx, Wing, true))

	st := sim.State()
	assert.Equal(t, MaxPower, st.Left)
	assert.Equal(t, -90, st.Right)
	assert.Equal(t, -MaxPower, st.Intake)
	assert.Equal(t, 64, st.Outtake)
	assert.True(t, st.Pistons[Wing])
	assert.False(t, st.Pistons[MatchLoad1])
	assert.Equal(t, 4, st.Commands)
}

func TestSim_StopKeepsPistons(t *testing.T) {
	ctx := context.Background()
	sim := NewSim()
	sim.Drive(ctx, 50, 50)
	sim.Intake(ctx, 127)
	sim.SetPiston(ctx, MatchLoad2, true)

	assert.NoError(t, sim.Stop(ctx))

	st := sim.State()
	assert.Zero(t, st.Left)
	assert.Zero(t, st.Right)
	assert.Zero(t, st.Intake)
	assert.True(t, st.Pistons[MatchLoad2])
}

func TestSim_StateIsCopy(t *testing.T) {
	sim := NewSim()
	st := sim.State()
	st.Pistons[Wing] = true

	assert.False(t, sim.State().Pistons[Wing])
}

func TestServoVelocity(t *testing.T) {
	tests := []struct {
		power, rpm int
		reversed   bool
		want       int
	}{
		{127, 600, false, 2400},
		{-127, 600, false, -2400},
		{127, 600, true, -2400},
		{127, 200, false, 800},
		{0, 600, false, 0},
		{500, 600, false, 2400},
		{64, 100, true, -201},
	}

	for _, tt := range tests {
		got := servoVelocity(tt.power, tt.rpm, 2400, tt.reversed)
		assert.Equal(t, tt.want, got, "servoVelocity(%d, %d, reversed=%v)", tt.power, tt.rpm, tt.reversed)
	}
}

func TestGearset_RPM(t *testing.T) {
	assert.Equal(t, 100, GearsetRed.RPM())
	assert.Equal(t, 200, GearsetGreen.RPM())
	assert.Equal(t, 600, GearsetBlue.RPM())
	assert.Equal(t, 200, Gearset("").RPM())
}
