package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gwillem/vexauton/pkg/competition"
	"github.com/gwillem/vexauton/pkg/input"
	"github.com/gwillem/vexauton/pkg/logging"
	"github.com/gwillem/vexauton/pkg/screen"
	"github.com/gwillem/vexauton/pkg/selector"
	"github.com/gwillem/vexauton/pkg/teleop"
)

type MatchCommand struct {
	GPIO  bool   `long:"gpio" description:"Read the selector buttons from GPIO pins; driver control gets only the button functions wired there (no sticks)"`
	Auto  string `long:"auto" description:"Skip selection and run the named routine"`
	Bench bool   `long:"bench" description:"Drive the bench servos instead of the simulator"`
}

func (c *MatchCommand) Execute(args []string) error {
	if !c.GPIO && c.Auto == "" {
		fatal("match needs --gpio or --auto <routine>")
	}

	cfg, err := loadConfig()
	if err != nil {
		fatal("Error loading config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out, closeOut, err := openActuators(ctx, cfg, c.Bench)
	if err != nil {
		fatal("%v", err)
	}
	defer closeOut()

	log := logging.Component("match")
	term := screen.NewTerminal(os.Stdout, screenWidth)
	sel := selector.New(selector.Static, term, selector.WithLogger(logging.Component("selector")))
	defer sel.Close()
	registerRoutines(ctx, sel, out, log)

	m := &competition.Match{
		Selector: sel,
		Logger:   log,
		OnPhase: func(p competition.Phase) {
			fmt.Println(titleStyle.Render("== " + strings.ToUpper(string(p)) + " =="))
		},
	}

	if c.Auto != "" {
		i := indexOf(sel.Names(), c.Auto)
		if i < 0 {
			fatal("unknown routine %q (have: %s)", c.Auto, strings.Join(sel.Names(), ", "))
		}
		sel.Select(i)
	}

	if c.GPIO {
		pins, err := buttonPins(cfg)
		if err != nil {
			fatal("%v", err)
		}
		pad, err := input.OpenGPIO(pins)
		if err != nil {
			fatal("Error opening GPIO: %v", err)
		}
		defer pad.Close()

		if c.Auto == "" {
			m.Navigator = input.NewNavigator(sel, pad, input.DefaultBindings)
		}

		controls := gpioDriverControls(pins)
		if len(controls) == 0 {
			log.Warn().Msg("no driver controls on GPIO, skipping driver period")
		} else {
			log.Info().Strs("controls", controls).Msg("driver control on GPIO buttons, sticks unavailable")
			tcfg := teleop.ConfigFrom(cfg)
			tlog := logging.Component("teleop")
			tcfg.Logger = &tlog
			ctrl, err := teleop.NewController(pad, out, tcfg)
			if err != nil {
				fatal("Failed to create controller: %v", err)
			}
			m.Driver = ctrl
		}
	}

	err = m.Run(ctx)
	if ferr := term.Err(); ferr != nil {
		log.Warn().Err(ferr).Msg("brain screen output failed")
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Println(okStyle.Render("Match over."))
	return nil
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if strings.EqualFold(n, name) {
			return i
		}
	}
	return -1
}

// driverControls lists the driver-control functions and the buttons that
// work them. GPIO pads have no sticks, so drive is never reachable.
var driverControls = []struct {
	name    string
	buttons []input.Button
}{
	{"intake", []input.Button{input.ButtonL1, input.ButtonL2}},
	{"outtake", []input.Button{input.ButtonR1, input.ButtonR2}},
	{"match load", []input.Button{input.ButtonRight}},
	{"wing", []input.Button{input.ButtonY}},
}

// gpioDriverControls returns the driver-control functions usable with the
// given GPIO button pins.
func gpioDriverControls(pins map[input.Button]int) []string {
	var names []string
	for _, c := range driverControls {
		for _, b := range c.buttons {
			if _, ok := pins[b]; ok {
				names = append(names, c.name)
				break
			}
		}
	}
	return names
}
