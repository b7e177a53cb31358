package main

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gwillem/vexauton/pkg/robot"
	"github.com/gwillem/vexauton/pkg/selector"
)

// step holds constant outputs for a fixed time.
type step struct {
	left, right     int
	intake, outtake int
	d               time.Duration
}

func forward(power int, d time.Duration) step { return step{left: power, right: power, d: d} }
func turn(power int, d time.Duration) step    { return step{left: power, right: -power, d: d} }
func pause(d time.Duration) step              { return step{d: d} }

// timed builds an open-loop routine that plays steps in order and stops all
// motors at the end or when ctx is done.
func timed(ctx context.Context, out robot.Actuators, log zerolog.Logger, steps ...step) selector.Routine {
	return func() {
		defer func() {
			if err := out.Stop(context.Background()); err != nil {
				log.Warn().Err(err).Msg("stop failed")
			}
		}()
		for i, s := range steps {
			if err := out.Drive(ctx, s.left, s.right); err != nil {
				log.Warn().Err(err).Int("step", i).Msg("drive failed")
			}
			if err := out.Intake(ctx, s.intake); err != nil {
				log.Warn().Err(err).Int("step", i).Msg("intake failed")
			}
			if err := out.Outtake(ctx, s.outtake); err != nil {
				log.Warn().Err(err).Int("step", i).Msg("outtake failed")
			}
			select {
			case <-ctx.Done():
				log.Warn().Int("step", i).Msg("routine cancelled")
				return
			case <-time.After(s.d):
			}
		}
	}
}

// registerRoutines adds the autonomous catalogue in display order.
func registerRoutines(ctx context.Context, sel *selector.Registry, out robot.Actuators, log zerolog.Logger) {
	const full, safe = robot.MaxPower, 80
	ms := time.Millisecond

	blueSafe := []step{forward(full, 800*ms), turn(full, 400*ms), forward(full, 800*ms)}
	redSafe := []step{forward(full, 800*ms), turn(-full, 400*ms), forward(full, 800*ms)}

	sel.AddRoutine("Blue Safe", timed(ctx, out, log, blueSafe...))
	sel.AddRoutine("Blue Intake", timed(ctx, out, log,
		step{left: full, right: full, intake: full, d: 1200 * ms},
		turn(full, 400*ms),
		forward(full, 1200*ms),
	))
	sel.AddRoutine("Red Safe", timed(ctx, out, log, redSafe...))
	sel.AddRoutine("Red Outtake", timed(ctx, out, log,
		forward(full, 800*ms),
		step{outtake: full, d: 500 * ms},
		forward(-full, 600*ms),
	))
	sel.AddRoutine("Skills", timed(ctx, out, log,
		forward(full, 1600*ms),
		turn(full, 800*ms),
		forward(full, 1600*ms),
	))
	sel.AddRoutine("Aggressive", timed(ctx, out, log,
		forward(full, 1000*ms),
		turn(120, 350*ms),
		forward(full, 800*ms),
	))
	sel.AddRoutine("Safe", timed(ctx, out, log,
		forward(safe, 1200*ms),
		turn(60, 600*ms),
		forward(safe, 1200*ms),
	))
	sel.AddRoutine("Mixed", timed(ctx, out, log,
		append(append([]step{}, blueSafe...), pause(500*ms), forward(-full, 1600*ms))...,
	))
	sel.AddRoutine("Nothing", nil)
}
