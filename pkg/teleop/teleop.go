// Package teleop provides the driver-control loop.
package teleop

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gwillem/vexauton/pkg/input"
	"github.com/gwillem/vexauton/pkg/robot"
)

// State is one step of driver control.
type State struct {
	Left, Right int
	Intake      int
	Outtake     int
	Pistons     map[robot.Piston]bool
	Timestamp   time.Time
	Error       error
}

// Controller manages the driver-control loop.
type Controller struct {
	pad    input.Gamepad
	out    robot.Actuators
	hz     int
	invert bool
	logger zerolog.Logger

	mu      sync.RWMutex
	running bool
	curves  [2]robot.ExpoCurve
	stateCh chan State
	logCh   chan string

	// loop-owned
	pistons   map[robot.Piston]bool
	matchLoad input.Edge
	wing      input.Edge
}

// Config holds configuration for the controller.
type Config struct {
	Hz       int
	Invert   bool // Negate both sticks, for a robot whose front is its intake side
	Throttle robot.ExpoCurve
	Steer    robot.ExpoCurve
	Logger   *zerolog.Logger
}

// ConfigFrom builds a controller config from the robot configuration.
func ConfigFrom(cfg *robot.Config) Config {
	return Config{
		Hz:       cfg.Drive.Hz,
		Invert:   cfg.Drive.Invert,
		Throttle: cfg.Drive.Throttle,
		Steer:    cfg.Drive.Steer,
	}
}

// NewController creates a driver-control loop reading pad and driving out.
func NewController(pad input.Gamepad, out robot.Actuators, cfg Config) (*Controller, error) {
	if pad == nil || out == nil {
		return nil, errors.New("teleop: gamepad and actuators are required")
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 100
	}
	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	pistons := make(map[robot.Piston]bool)
	for _, p := range robot.AllPistons() {
		pistons[p] = false
	}

	return &Controller{
		pad:     pad,
		out:     out,
		hz:      cfg.Hz,
		invert:  cfg.Invert,
		curves:  [2]robot.ExpoCurve{cfg.Throttle, cfg.Steer},
		logger:  logger,
		stateCh: make(chan State, 1),
		logCh:   make(chan string, 10),
		pistons: pistons,
	}, nil
}

// States returns a channel that receives state updates.
func (c *Controller) States() <-chan State {
	return c.stateCh
}

// Logs returns a channel that receives log messages.
func (c *Controller) Logs() <-chan string {
	return c.logCh
}

// Hz returns the control frequency.
func (c *Controller) Hz() int {
	return c.hz
}

// Running reports whether the loop is active.
func (c *Controller) Running() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.running
}

func (c *Controller) log(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	c.logger.Info().Msg(text)

	msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), text)
	select {
	case c.logCh <- msg:
	default:
		// Drop if channel full
	}
}

// Tune replaces the throttle and steer curves; the next step uses them.
func (c *Controller) Tune(throttle, steer robot.ExpoCurve) {
	c.mu.Lock()
	c.curves = [2]robot.ExpoCurve{throttle, steer}
	c.mu.Unlock()
	c.log("Drive curves updated")
}

// Start runs driver control until ctx is done, then stops all motors.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.running {
		c.mu.Unlock()
		return fmt.Errorf("already running")
	}
	c.running = true
	c.mu.Unlock()

	c.log("Driver control started at %d Hz", c.hz)

	ticker := time.NewTicker(time.Second / time.Duration(c.hz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.shutdown()
			return ctx.Err()
		case <-ticker.C:
			c.step(ctx)
		}
	}
}

func (c *Controller) step(ctx context.Context) {
	throttle := c.pad.Analog(input.AxisLeftY)
	steer := c.pad.Analog(input.AxisRightX)
	if c.invert {
		throttle, steer = -throttle, -steer
	}
	c.mu.RLock()
	curves := c.curves
	c.mu.RUnlock()
	left, right := robot.Arcade(throttle, steer, curves[0], curves[1])

	intake := robot.MaxPower * (b2i(c.pad.Digital(input.ButtonL1)) - b2i(c.pad.Digital(input.ButtonL2)))
	outtake := robot.MaxPower * (b2i(c.pad.Digital(input.ButtonR1)) - b2i(c.pad.Digital(input.ButtonR2)))

	var errs []error
	errs = append(errs,
		c.out.Drive(ctx, left, right),
		c.out.Intake(ctx, intake),
		c.out.Outtake(ctx, outtake),
	)

	// Toggles fire once per press, not once per loop while held.
	if c.matchLoad.Rising(c.pad.Digital(input.ButtonRight)) {
		errs = append(errs,
			c.toggle(ctx, robot.MatchLoad1),
			c.toggle(ctx, robot.MatchLoad2),
		)
	}
	if c.wing.Rising(c.pad.Digital(input.ButtonY)) {
		errs = append(errs, c.toggle(ctx, robot.Wing))
	}

	err := errors.Join(errs...)
	if err != nil {
		c.log("Output error: %v", err)
	}

	c.sendState(State{
		Left:      left,
		Right:     right,
		Intake:    intake,
		Outtake:   outtake,
		Pistons:   maps.Clone(c.pistons),
		Timestamp: time.Now(),
		Error:     err,
	})
}

func (c *Controller) toggle(ctx context.Context, p robot.Piston) error {
	extended := !c.pistons[p]
	if err := c.out.SetPiston(ctx, p, extended); err != nil {
		return err
	}
	c.pistons[p] = extended
	c.log("%s %s", p, map[bool]string{true: "extended", false: "retracted"}[extended])
	return nil
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (c *Controller) sendState(s State) {
	select {
	case c.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-c.stateCh:
		default:
		}
		c.stateCh <- s
	}
}

func (c *Controller) shutdown() {
	c.mu.Lock()
	c.running = false
	c.mu.Unlock()

	if err := c.out.Stop(context.Background()); err != nil {
		c.log("Warning: failed to stop motors: %v", err)
	}
	c.log("Driver control stopped")
}
