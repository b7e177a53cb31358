package main

import (
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/gwillem/vexauton/pkg/logging"
)

type Options struct {
	Verbose []bool `short:"v" long:"verbose" description:"Increase log verbosity (repeat for more)"`
	Config  string `long:"config" default:"vexauton.json" description:"Robot configuration file"`
	EnvFile string `long:"env-file" default:".env" description:"Environment overrides file"`

	Setup  SetupCommand  `command:"setup" description:"Find the bench servo bus and write the configuration"`
	Select SelectCommand `command:"select" description:"Pick an autonomous routine on the brain screen"`
	Teleop TeleopCommand `command:"teleop" alias:"drive" description:"Start driver control"`
	Match  MatchCommand  `command:"match" description:"Play a full match: selection, autonomous, driver control"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "vexauton - autonomous selector and driver control for the competition robot"
	parser.CommandHandler = func(cmd flags.Commander, args []string) error {
		logging.Setup(len(opts.Verbose), nil)
		return cmd.Execute(args)
	}

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
