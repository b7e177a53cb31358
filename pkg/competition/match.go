// Package competition sequences the phases of a match: routine selection
// while disabled, the autonomous period, and driver control.
package competition

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gwillem/vexauton/pkg/selector"
)

// Match period lengths.
const (
	AutonomousPeriod = 15 * time.Second
	DriverPeriod     = 105 * time.Second
)

// DefaultPollInterval is how often the selector buttons are sampled while
// disabled.
const DefaultPollInterval = 20 * time.Millisecond

// Phase names a period of the match.
type Phase string

const (
	PhaseDisabled   Phase = "disabled"
	PhaseAutonomous Phase = "autonomous"
	PhaseDriver     Phase = "driver"
)

// Navigator turns button presses into selector moves.
type Navigator interface {
	Poll() (confirmed bool)
}

// Driver runs driver control until its context ends.
type Driver interface {
	Start(ctx context.Context) error
}

// Match runs one match against a single routine selector.
type Match struct {
	// ID tags every log line of the match. Run assigns one when empty.
	ID string

	Selector *selector.Registry
	// Navigator may be nil, in which case selection is skipped.
	Navigator Navigator
	// Driver may be nil, in which case the driver period is skipped.
	Driver Driver

	PollInterval     time.Duration
	AutonomousPeriod time.Duration
	DriverPeriod     time.Duration
	// OnPhase is called when a phase begins.
	OnPhase func(Phase)
	Logger  zerolog.Logger
}

// Select polls the navigator until a routine is confirmed or ctx ends. It
// returns the confirmed routine name.
func (m *Match) Select(ctx context.Context) (string, error) {
	m.enter(PhaseDisabled)
	m.Selector.Show()

	if m.Navigator == nil {
		return m.Selector.SelectedName(), nil
	}

	interval := m.PollInterval
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return m.Selector.SelectedName(), ctx.Err()
		case <-ticker.C:
			if m.Navigator.Poll() {
				name := m.Selector.SelectedName()
				m.Logger.Info().Str("routine", name).Int("index", m.Selector.SelectedIndex()).Msg("routine confirmed")
				return name, nil
			}
		}
	}
}

// Autonomous hides the selector and runs the selected routine once.
func (m *Match) Autonomous() {
	m.enter(PhaseAutonomous)
	m.Selector.Hide()

	name := m.Selector.SelectedName()
	routine := m.Selector.Selected()

	start := time.Now()
	m.Logger.Info().Str("routine", name).Msg("autonomous started")
	routine()
	m.Logger.Info().Str("routine", name).Dur("took", time.Since(start)).Msg("autonomous finished")
}

// Drive runs driver control for the driver period or until ctx ends.
func (m *Match) Drive(ctx context.Context) error {
	if m.Driver == nil {
		return nil
	}
	m.enter(PhaseDriver)

	period := m.DriverPeriod
	if period <= 0 {
		period = DriverPeriod
	}
	ctx, cancel := context.WithTimeout(ctx, period)
	defer cancel()

	err := m.Driver.Start(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}

// Run plays a full match. Routines take no context, so the autonomous period
// is enforced by waiting out the remainder after the routine returns.
func (m *Match) Run(ctx context.Context) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	m.Logger = m.Logger.With().Str("match", m.ID).Logger()
	m.Logger.Info().Msg("match started")

	if _, err := m.Select(ctx); err != nil {
		return err
	}

	period := m.AutonomousPeriod
	if period <= 0 {
		period = AutonomousPeriod
	}
	deadline := time.Now().Add(period)
	m.Autonomous()

	if wait := time.Until(deadline); wait > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	} else {
		m.Logger.Warn().Dur("over", -wait).Msg("autonomous routine overran its period")
	}

	return m.Drive(ctx)
}

func (m *Match) enter(p Phase) {
	m.Logger.Debug().Str("phase", string(p)).Msg("phase started")
	if m.OnPhase != nil {
		m.OnPhase(p)
	}
}
