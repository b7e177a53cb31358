// Package vexauton picks and runs autonomous routines for a competition robot.
//
// Routines are registered by name with a selector that draws them on the
// brain screen. The driver steps through the list with the controller's
// Left and Right buttons and confirms with A; the confirmed routine runs when
// the autonomous period starts, followed by driver control.
//
// # Installation
//
//	go install github.com/gwillem/vexauton/cmd/vexauton@latest
//
// # Usage
//
// Pick a routine in the terminal, standing in for the brain screen:
//
//	vexauton select
//
// Drive the simulated robot, or the servo bench after running setup:
//
//	vexauton setup
//	vexauton teleop --bench
//
// Play a full match with buttons on GPIO pins:
//
//	vexauton match --gpio
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/vexauton: CLI with setup, select, teleop and match commands
//   - pkg/selector: Routine registry, selection and screen rendering
//   - pkg/screen: Brain screen model and terminal renderer
//   - pkg/input: Controller buttons, edge detection and navigation
//   - pkg/robot: Wiring, configuration, drive curves and actuators
//   - pkg/teleop: Driver control loop
//   - pkg/competition: Match phases
//   - pkg/logging: Log setup
package vexauton
