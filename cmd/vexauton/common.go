package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/gwillem/vexauton/pkg/input"
	"github.com/gwillem/vexauton/pkg/logging"
	"github.com/gwillem/vexauton/pkg/robot"
)

// loadConfig reads the config file, or falls back to the built-in wiring when
// it does not exist, then applies environment overrides.
func loadConfig() (*robot.Config, error) {
	cfg, err := robot.LoadConfigFrom(opts.Config)
	switch {
	case errors.Is(err, os.ErrNotExist):
		log := logging.Component("config")
		log.Info().Str("path", opts.Config).Msg("no config file, using defaults")
		cfg = robot.DefaultConfig()
	case err != nil:
		return nil, err
	}

	if err := cfg.ApplyEnv(opts.EnvFile); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// openActuators returns the bench servos when bench is set, otherwise a
// simulated robot. The returned close function is never nil.
func openActuators(ctx context.Context, cfg *robot.Config, bench bool) (robot.Actuators, func() error, error) {
	if !bench {
		return robot.NewSim(), func() error { return nil }, nil
	}
	b, err := robot.NewBench(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("open bench: %w", err)
	}
	return b, b.Close, nil
}

// buttonPins converts the configured GPIO pins to gamepad buttons.
func buttonPins(cfg *robot.Config) (map[input.Button]int, error) {
	pins := make(map[input.Button]int, len(cfg.Buttons))
	for name, pin := range cfg.Buttons {
		b, ok := input.ParseButton(name)
		if !ok {
			return nil, fmt.Errorf("unknown button %q in config", name)
		}
		pins[b] = pin
	}
	return pins, nil
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
