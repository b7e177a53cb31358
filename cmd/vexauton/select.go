package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/vexauton/pkg/input"
	"github.com/gwillem/vexauton/pkg/logging"
	"github.com/gwillem/vexauton/pkg/screen"
	"github.com/gwillem/vexauton/pkg/selector"
)

type SelectCommand struct {
	Form  bool `long:"form" description:"Pick from a list form instead of the brain screen"`
	Run   bool `long:"run" description:"Run the chosen routine after selection"`
	Bench bool `long:"bench" description:"Run on the bench servos instead of the simulator"`
}

const (
	screenWidth  = 40
	pollInterval = 20 * time.Millisecond
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// keyButtons maps terminal keys to the controller buttons they stand for.
var keyButtons = map[string]input.Button{
	"left":  input.ButtonLeft,
	"h":     input.ButtonLeft,
	"right": input.ButtonRight,
	"l":     input.ButtonRight,
	"enter": input.ButtonA,
	"a":     input.ButtonA,
}

type selectModel struct {
	sel       *selector.Registry
	buf       *screen.Buffer
	keys      *input.Keys
	nav       *input.Navigator
	confirmed bool
	quitting  bool
}

type pollMsg time.Time

func pollTick() tea.Cmd {
	return tea.Tick(pollInterval, func(t time.Time) tea.Msg {
		return pollMsg(t)
	})
}

func newSelectModel(sel *selector.Registry, buf *screen.Buffer) selectModel {
	keys := input.NewKeys()
	return selectModel{
		sel:  sel,
		buf:  buf,
		keys: keys,
		nav:  input.NewNavigator(sel, keys, input.DefaultBindings),
	}
}

func (m selectModel) Init() tea.Cmd {
	return pollTick()
}

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		}
		if b, ok := keyButtons[key]; ok {
			m.keys.Press(b)
		}

	case pollMsg:
		if m.nav.Poll() {
			m.confirmed = true
			return m, tea.Quit
		}
		return m, pollTick()
	}

	return m, nil
}

func (m selectModel) View() string {
	if m.quitting || m.confirmed {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Autonomous Selector"))
	sb.WriteString("\n\n")
	sb.WriteString(m.buf.View(screenWidth))
	sb.WriteString("\n")
	sb.WriteString(statusStyle.Render("←/h previous  →/l next  enter/a select  q quit"))
	sb.WriteString("\n")
	return sb.String()
}

func (c *SelectCommand) Execute(args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fatal("Error loading config: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	out, closeOut, err := openActuators(ctx, cfg, c.Bench)
	if err != nil {
		fatal("%v", err)
	}
	defer closeOut()

	log := logging.Component("selector")
	buf := screen.NewBuffer()
	sel := selector.New(selector.Static, buf, selector.WithLogger(log))
	defer sel.Close()
	registerRoutines(ctx, sel, out, log)

	if c.Form {
		if !pickWithForm(sel) {
			return nil
		}
	} else {
		p := tea.NewProgram(newSelectModel(sel, buf))
		final, err := p.Run()
		if err != nil {
			fatal("Error running selector: %v", err)
		}
		if !final.(selectModel).confirmed {
			fmt.Println("No routine selected.")
			return nil
		}
	}

	name := sel.SelectedName()
	fmt.Printf("%s %s\n", okStyle.Render("Selected:"), name)

	if c.Run {
		fmt.Printf("Running %s...\n", name)
		start := time.Now()
		sel.Selected()()
		fmt.Printf("Finished in %s\n", time.Since(start).Round(time.Millisecond))
	}
	return nil
}

func pickWithForm(sel *selector.Registry) bool {
	names := sel.Names()
	options := make([]huh.Option[int], len(names))
	for i, name := range names {
		options[i] = huh.NewOption(name, i)
	}

	index := sel.SelectedIndex()
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Select Autonomous").
				Description("Routine to run when the autonomous period starts").
				Options(options...).
				Value(&index),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Fprintln(os.Stderr)
		return false
	}

	sel.Select(index)
	return true
}
