package robot

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const DefaultConfigFile = "vexauton.json"

// Config holds the robot configuration
type Config struct {
	Drive   DriveConfig             `json:"drive"`
	Intake  MotorGroup              `json:"intake"`
	Outtake MotorGroup              `json:"outtake"`
	Pistons map[Piston]PistonConfig `json:"pistons"`
	Bench   BenchConfig             `json:"bench"`
	Buttons map[string]int          `json:"buttons,omitempty"`
}

// DriveConfig holds the drivetrain wiring and driver-control tuning
type DriveConfig struct {
	Left     MotorGroup `json:"left"`
	Right    MotorGroup `json:"right"`
	Invert   bool       `json:"invert"`
	Throttle ExpoCurve  `json:"throttle"`
	Steer    ExpoCurve  `json:"steer"`
	Hz       int        `json:"hz"`
}

// PistonConfig holds the wiring of one solenoid. Servo and the two positions
// are used when the piston is emulated on the bench.
type PistonConfig struct {
	Port      string `json:"port"`
	Servo     int    `json:"servo,omitempty"`
	Retracted int    `json:"retracted,omitempty"`
	Extended  int    `json:"extended,omitempty"`
}

// BenchConfig holds the serial bus used to emulate motors with servos
type BenchConfig struct {
	Port        string `json:"port,omitempty"`
	BaudRate    int    `json:"baud_rate,omitempty"`
	MaxVelocity int    `json:"max_velocity,omitempty"`
}

// DefaultConfig returns the competition robot's wiring.
func DefaultConfig() *Config {
	curve := ExpoCurve{Deadband: 3, MinOutput: 10, Curve: 1.019}
	return &Config{
		Drive: DriveConfig{
			Left:     MotorGroup{Ports: []int{8, 10, 14}, Gearset: GearsetBlue},
			Right:    MotorGroup{Ports: []int{-1, -2, -3}, Gearset: GearsetBlue},
			Invert:   true,
			Throttle: curve,
			Steer:    curve,
			Hz:       100,
		},
		Intake:  MotorGroup{Ports: []int{12, -13}, Gearset: GearsetGreen},
		Outtake: MotorGroup{Ports: []int{11}, Gearset: GearsetGreen},
		Pistons: map[Piston]PistonConfig{
			MatchLoad1: {Port: "A", Servo: 16, Retracted: 1800, Extended: 2300},
			MatchLoad2: {Port: "B", Servo: 17, Retracted: 1800, Extended: 2300},
			Wing:       {Port: "C", Servo: 18, Retracted: 1800, Extended: 2300},
		},
		Bench: BenchConfig{
			BaudRate:    1_000_000,
			MaxVelocity: 2400,
		},
		Buttons: map[string]int{
			"Left":  17,
			"Right": 27,
			"A":     22,
		},
	}
}

// Validate checks that every motor port is a smart port (1-21, sign for
// direction) and that no port is used twice.
func (c *Config) Validate() error {
	seen := make(map[int]string)
	groups := []struct {
		name  string
		group MotorGroup
	}{
		{"drive.left", c.Drive.Left},
		{"drive.right", c.Drive.Right},
		{"intake", c.Intake},
		{"outtake", c.Outtake},
	}

	var errs []error
	for _, g := range groups {
		for _, port := range g.group.Ports {
			abs := port
			if abs < 0 {
				abs = -abs
			}
			if abs < 1 || abs > 21 {
				errs = append(errs, fmt.Errorf("%s: port %d out of range", g.name, port))
				continue
			}
			if other, ok := seen[abs]; ok {
				errs = append(errs, fmt.Errorf("%s: port %d already used by %s", g.name, abs, other))
				continue
			}
			seen[abs] = g.name
		}
	}
	return errors.Join(errs...)
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a specific file. Fields missing
// from the file keep their DefaultConfig values.
func LoadConfigFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the default config file exists
func ConfigExists() bool {
	_, err := os.Stat(DefaultConfigFile)
	return err == nil
}

// Environment variables read by ApplyEnv.
const (
	EnvBenchPort = "VEXAUTON_BENCH_PORT"
	EnvBenchBaud = "VEXAUTON_BENCH_BAUD"
	EnvHz        = "VEXAUTON_HZ"
)

// ApplyEnv loads the given .env files (missing files are skipped) and
// overrides config fields from the environment. Variables already set in the
// process environment win over .env values.
func (c *Config) ApplyEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", f, err)
		}
	}

	if v := os.Getenv(EnvBenchPort); v != "" {
		c.Bench.Port = v
	}
	if v := os.Getenv(EnvBenchBaud); v != "" {
		baud, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvBenchBaud, err)
		}
		c.Bench.BaudRate = baud
	}
	if v := os.Getenv(EnvHz); v != "" {
		hz, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHz, err)
		}
		c.Drive.Hz = hz
	}
	return nil
}
