// Package robot describes the competition robot's wiring and drives its
// actuators.
package robot

// MaxPower is the magnitude of a full-power motor command.
const MaxPower = 127

// Gearset identifies a motor cartridge.
type Gearset string

const (
	GearsetRed   Gearset = "red"
	GearsetGreen Gearset = "green"
	GearsetBlue  Gearset = "blue"
)

// RPM returns the free speed of the cartridge. Unknown cartridges report
// green.
func (g Gearset) RPM() int {
	switch g {
	case GearsetRed:
		return 100
	case GearsetBlue:
		return 600
	default:
		return 200
	}
}

// MotorGroup is a set of motors driven together. A negative port runs its
// motor reversed.
type MotorGroup struct {
	Ports   []int   `json:"ports"`
	Gearset Gearset `json:"gearset"`
}

// Piston identifies a pneumatic solenoid.
type Piston string

// Pistons on the robot.
const (
	MatchLoad1 Piston = "match_load_1"
	MatchLoad2 Piston = "match_load_2"
	Wing       Piston = "wing"
)

// AllPistons returns all pistons in wiring order (ADI ports A, B, C).
func AllPistons() []Piston {
	return []Piston{
		MatchLoad1,
		MatchLoad2,
		Wing,
	}
}

// ClampPower limits a motor command to [-MaxPower, MaxPower].
func ClampPower(p int) int {
	if p > MaxPower {
		return MaxPower
	}
	if p < -MaxPower {
		return -MaxPower
	}
	return p
}
