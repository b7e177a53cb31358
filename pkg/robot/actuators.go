package robot

import (
	"context"
	"maps"
	"sync"
)

// Actuators drives the robot's motors and pistons. Powers are in
// [-MaxPower, MaxPower]; out-of-range values are clamped.
type Actuators interface {
	Drive(ctx context.Context, left, right int) error
	Intake(ctx context.Context, power int) error
	Outtake(ctx context.Context, power int) error
	SetPiston(ctx context.Context, p Piston, extended bool) error
	// Stop sets every motor to zero power. Pistons keep their state.
	Stop(ctx context.Context) error
}

// SimState is the last command sent to each output of a Sim.
type SimState struct {
	Left, Right int
	Intake      int
	Outtake     int
	Pistons     map[Piston]bool
	Commands    int
}

// Sim is an in-memory Actuators that records commands. Safe for concurrent use.
type Sim struct {
	mu    sync.Mutex
	state SimState
}

// NewSim creates a simulated robot with all pistons retracted.
func NewSim() *Sim {
	pistons := make(map[Piston]bool)
	for _, p := range AllPistons() {
		pistons[p] = false
	}
	return &Sim{state: SimState{Pistons: pistons}}
}

func (s *Sim) Drive(_ context.Context, left, right int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Left = ClampPower(left)
	s.state.Right = ClampPower(right)
	s.state.Commands++
	return nil
}

func (s *Sim) Intake(_ context.Context, power int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Intake = ClampPower(power)
	s.state.Commands++
	return nil
}

func (s *Sim) Outtake(_ context.Context, power int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Outtake = ClampPower(power)
	s.state.Commands++
	return nil
}

func (s *Sim) SetPiston(_ context.Context, p Piston, extended bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Pistons[p] = extended
	s.state.Commands++
	return nil
}

func (s *Sim) Stop(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Left, s.state.Right = 0, 0
	s.state.Intake, s.state.Outtake = 0, 0
	s.state.Commands++
	return nil
}

// State returns a copy of the recorded state.
func (s *Sim) State() SimState {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state
	st.Pistons = maps.Clone(s.state.Pistons)
	return st
}
