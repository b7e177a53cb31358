package robot

import (
	"context"
	"errors"
	"fmt"

	"github.com/hipsterbrown/feetech-servo/feetech"
)

// Bench drives the robot's outputs with Feetech STS servos on one serial bus,
// for testing routines on a desk. Each motor port is used as a servo ID;
// motors run in velocity mode and pistons are two-position servos.
type Bench struct {
	bus         *feetech.Bus
	maxVelocity int

	left, right     []benchMotor
	intake, outtake []benchMotor
	pistons         map[Piston]benchPiston
}

var (
	_ Actuators = (*Bench)(nil)
	_ Actuators = (*Sim)(nil)
)

type benchMotor struct {
	id       int
	servo    *feetech.Servo
	reversed bool
	rpm      int
}

type benchPiston struct {
	servo               *feetech.Servo
	retracted, extended int
}

// NewBench opens the bench bus and puts every configured servo into the mode
// it is used in.
func NewBench(ctx context.Context, cfg *Config) (*Bench, error) {
	if cfg.Bench.Port == "" {
		return nil, errors.New("bench port not configured")
	}
	baud := cfg.Bench.BaudRate
	if baud == 0 {
		baud = 1_000_000
	}

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     cfg.Bench.Port,
		BaudRate: baud,
		Protocol: feetech.ProtocolSTS,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}

	b := &Bench{
		bus:         bus,
		maxVelocity: cfg.Bench.MaxVelocity,
		pistons:     make(map[Piston]benchPiston),
	}
	if b.maxVelocity <= 0 {
		b.maxVelocity = DefaultConfig().Bench.MaxVelocity
	}

	groups := []struct {
		dst   *[]benchMotor
		group MotorGroup
	}{
		{&b.left, cfg.Drive.Left},
		{&b.right, cfg.Drive.Right},
		{&b.intake, cfg.Intake},
		{&b.outtake, cfg.Outtake},
	}
	for _, g := range groups {
		motors, err := b.setupMotors(ctx, g.group)
		if err != nil {
			bus.Close()
			return nil, err
		}
		*g.dst = motors
	}

	for name, pc := range cfg.Pistons {
		if pc.Servo == 0 {
			continue
		}
		servo := feetech.NewServo(bus, pc.Servo, nil)
		if err := servo.Enable(ctx); err != nil {
			bus.Close()
			return nil, fmt.Errorf("enable piston %s (servo %d): %w", name, pc.Servo, err)
		}
		if err := servo.SetPosition(ctx, pc.Retracted); err != nil {
			bus.Close()
			return nil, fmt.Errorf("retract piston %s: %w", name, err)
		}
		b.pistons[name] = benchPiston{servo: servo, retracted: pc.Retracted, extended: pc.Extended}
	}

	return b, nil
}

func (b *Bench) setupMotors(ctx context.Context, g MotorGroup) ([]benchMotor, error) {
	motors := make([]benchMotor, 0, len(g.Ports))
	for _, port := range g.Ports {
		id, reversed := port, false
		if port < 0 {
			id, reversed = -port, true
		}

		servo := feetech.NewServo(b.bus, id, nil)
		if err := servo.Disable(ctx); err != nil {
			return nil, fmt.Errorf("disable servo %d: %w", id, err)
		}
		if err := servo.SetOperatingMode(ctx, feetech.ModeVelocity); err != nil {
			return nil, fmt.Errorf("set velocity mode on servo %d: %w", id, err)
		}
		if err := servo.Enable(ctx); err != nil {
			return nil, fmt.Errorf("enable servo %d: %w", id, err)
		}

		motors = append(motors, benchMotor{id: id, servo: servo, reversed: reversed, rpm: g.Gearset.RPM()})
	}
	return motors, nil
}

// Close stops the motors, releases torque and closes the bus.
func (b *Bench) Close() error {
	ctx := context.Background()
	var errs []error
	if err := b.Stop(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, group := range [][]benchMotor{b.left, b.right, b.intake, b.outtake} {
		for _, m := range group {
			if err := m.servo.Disable(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if err := b.bus.Close(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Drive sets the left and right drive powers.
func (b *Bench) Drive(ctx context.Context, left, right int) error {
	return errors.Join(
		b.spin(ctx, b.left, left),
		b.spin(ctx, b.right, right),
	)
}

// Intake sets the intake power.
func (b *Bench) Intake(ctx context.Context, power int) error {
	return b.spin(ctx, b.intake, power)
}

// Outtake sets the outtake power.
func (b *Bench) Outtake(ctx context.Context, power int) error {
	return b.spin(ctx, b.outtake, power)
}

// SetPiston moves a piston servo to its extended or retracted position.
// Pistons without a servo are ignored.
func (b *Bench) SetPiston(ctx context.Context, p Piston, extended bool) error {
	bp, ok := b.pistons[p]
	if !ok {
		return nil
	}
	pos := bp.retracted
	if extended {
		pos = bp.extended
	}
	if err := bp.servo.SetPosition(ctx, pos); err != nil {
		return fmt.Errorf("move piston %s: %w", p, err)
	}
	return nil
}

// Stop zeroes every motor.
func (b *Bench) Stop(ctx context.Context) error {
	return errors.Join(
		b.spin(ctx, b.left, 0),
		b.spin(ctx, b.right, 0),
		b.spin(ctx, b.intake, 0),
		b.spin(ctx, b.outtake, 0),
	)
}

func (b *Bench) spin(ctx context.Context, motors []benchMotor, power int) error {
	var errs []error
	for _, m := range motors {
		v := servoVelocity(power, m.rpm, b.maxVelocity, m.reversed)
		if err := m.servo.SetVelocity(ctx, v); err != nil {
			errs = append(errs, fmt.Errorf("set velocity on servo %d: %w", m.id, err))
		}
	}
	return errors.Join(errs...)
}

// servoVelocity converts a motor power to a servo velocity. Full power on a
// blue (600 rpm) cartridge maps to maxVelocity; slower cartridges scale down.
func servoVelocity(power, rpm, maxVelocity int, reversed bool) int {
	power = ClampPower(power)
	v := power * maxVelocity * rpm / (MaxPower * GearsetBlue.RPM())
	if reversed {
		v = -v
	}
	return v
}
