package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/NimbleMarkets/ntcharts/canvas/runes"
	"github.com/NimbleMarkets/ntcharts/linechart/streamlinechart"

	"github.com/gwillem/vexauton/pkg/input"
	"github.com/gwillem/vexauton/pkg/logging"
	"github.com/gwillem/vexauton/pkg/robot"
	"github.com/gwillem/vexauton/pkg/teleop"
)

type TeleopCommand struct {
	Hz    int  `long:"hz" description:"Control loop frequency (default from config)"`
	Bench bool `long:"bench" description:"Drive the bench servos instead of the simulator"`
	Watch bool `long:"watch" description:"Reload drive curves when the config file changes"`
}

const (
	headerHeight = 2 // title + blank line
	legendHeight = 2 // legend row + blank
	footerHeight = 7 // log box height
	maxLogs      = 5 // number of log messages to show
	borderSize   = 2 // chart border
)

// Output series and their colors
var seriesColors = []struct {
	name  string
	color string
}{
	{"left", "196"},    // red
	{"right", "51"},    // cyan
	{"intake", "46"},   // green
	{"outtake", "226"}, // yellow
}

var chartStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240"))

// Keyboard layout for driver control. Sticks snap to full deflection.
var (
	teleopAxes = map[string]struct {
		axis  input.Axis
		value int
	}{
		"w": {input.AxisLeftY, input.AxisMax},
		"s": {input.AxisLeftY, -input.AxisMax},
		"a": {input.AxisRightX, -input.AxisMax},
		"d": {input.AxisRightX, input.AxisMax},
	}
	teleopButtons = map[string]input.Button{
		"i": input.ButtonL1,
		"k": input.ButtonL2,
		"o": input.ButtonR1,
		"l": input.ButtonR2,
		"m": input.ButtonRight,
		"y": input.ButtonY,
	}
)

type teleopModel struct {
	ctrl     *teleop.Controller
	keys     *input.Keys
	chart    *streamlinechart.Model
	width    int      // terminal width
	height   int      // terminal height
	logs     []string // last N log messages
	pistons  map[robot.Piston]bool
	quitting bool
	last     teleop.State // previous state, to freeze the chart when idle
	seen     bool
}

func (m *teleopModel) addLog(msg string) {
	m.logs = append(m.logs, msg)
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
}

// changed reports whether any output differs from the previous state
func (m *teleopModel) changed(s teleop.State) bool {
	if !m.seen {
		return true
	}
	return s.Left != m.last.Left || s.Right != m.last.Right ||
		s.Intake != m.last.Intake || s.Outtake != m.last.Outtake
}

// Messages from the controller
type stateMsg teleop.State
type logMsg string

func waitForState(ctrl *teleop.Controller) tea.Cmd {
	return func() tea.Msg {
		return stateMsg(<-ctrl.States())
	}
}

func waitForLog(ctrl *teleop.Controller) tea.Cmd {
	return func() tea.Msg {
		return logMsg(<-ctrl.Logs())
	}
}

// chartSize calculates the size of the chart based on terminal dimensions
func (m *teleopModel) chartSize() (width, height int) {
	if m.width == 0 || m.height == 0 {
		return 80, 20 // default size before we know terminal size
	}
	width = m.width - borderSize - 2
	if width < 40 {
		width = 40
	}
	height = m.height - headerHeight - legendHeight - footerHeight - borderSize
	if height < 10 {
		height = 10
	}
	return width, height
}

func (m *teleopModel) resizeChart() {
	w, h := m.chartSize()
	m.chart.Resize(w, h)
}

func initialTeleopModel(ctrl *teleop.Controller, keys *input.Keys) teleopModel {
	chart := streamlinechart.New(80, 20,
		streamlinechart.WithYRange(-robot.MaxPower, robot.MaxPower),
	)

	for _, s := range seriesColors {
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(s.color))
		chart.SetDataSetStyles(s.name, runes.ThinLineStyle, style)
	}

	return teleopModel{
		ctrl:  ctrl,
		keys:  keys,
		chart: &chart,
	}
}

func (m teleopModel) Init() tea.Cmd {
	return tea.Batch(
		waitForState(m.ctrl),
		waitForLog(m.ctrl),
	)
}

func (m teleopModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeChart()
		return m, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}
		if a, ok := teleopAxes[key]; ok {
			m.keys.Push(a.axis, a.value)
		}
		if b, ok := teleopButtons[key]; ok {
			m.keys.Press(b)
		}

	case stateMsg:
		state := teleop.State(msg)
		m.pistons = state.Pistons
		if m.changed(state) {
			m.chart.PushDataSet("left", float64(state.Left))
			m.chart.PushDataSet("right", float64(state.Right))
			m.chart.PushDataSet("intake", float64(state.Intake))
			m.chart.PushDataSet("outtake", float64(state.Outtake))
			m.chart.DrawAll()
			m.last = state
			m.seen = true
		}
		return m, waitForState(m.ctrl)

	case logMsg:
		m.addLog(string(msg))
		return m, waitForLog(m.ctrl)
	}

	return m, nil
}

func (m teleopModel) View() string {
	if m.quitting {
		return "Driver control stopped.\n"
	}

	var sb strings.Builder

	// Header
	sb.WriteString(titleStyle.Render("Driver Control"))
	sb.WriteString(fmt.Sprintf(" - %d Hz", m.ctrl.Hz()))
	sb.WriteString(statusStyle.Render("  " + renderPistons(m.pistons)))
	sb.WriteString("\n\n")

	// Chart
	sb.WriteString(chartStyle.Render(m.chart.View()))
	sb.WriteString("\n")

	// Legend
	sb.WriteString(renderLegend())
	sb.WriteString("\n")

	// Log box
	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(max(m.width-4, 20)).
		Foreground(lipgloss.Color("9")) // bright red

	var logLines string
	if len(m.logs) == 0 {
		logLines = statusStyle.Render("w/s drive  a/d turn  i/k intake  o/l outtake  m match load  y wing  q quit")
	} else {
		logLines = strings.Join(m.logs, "\n")
	}
	sb.WriteString(logStyle.Render(logLines))
	sb.WriteString("\n")

	return sb.String()
}

func renderLegend() string {
	var items []string
	for _, s := range seriesColors {
		colorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(s.color)).Bold(true)
		items = append(items, colorStyle.Render("━━")+" "+s.name)
	}
	return strings.Join(items, "  ")
}

func renderPistons(pistons map[robot.Piston]bool) string {
	var parts []string
	for _, p := range robot.AllPistons() {
		state := "in"
		if pistons[p] {
			state = "out"
		}
		parts = append(parts, fmt.Sprintf("%s:%s", p, state))
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func (c *TeleopCommand) Execute(args []string) error {
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

	tcfg := teleop.ConfigFrom(cfg)
	if c.Hz > 0 {
		tcfg.Hz = c.Hz
	}
	logger := logging.Component("teleop")
	tcfg.Logger = &logger

	keys := input.NewKeys()
	ctrl, err := teleop.NewController(keys, out, tcfg)
	if err != nil {
		fatal("Failed to create controller: %v", err)
	}

	// Start controller in background
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := ctrl.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("controller stopped")
		}
	}()

	if c.Watch {
		go func() {
			err := robot.WatchConfig(ctx, opts.Config, logging.Component("config"), func(cfg *robot.Config) {
				ctrl.Tune(cfg.Drive.Throttle, cfg.Drive.Steer)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				logger.Error().Err(err).Msg("config watcher stopped")
			}
		}()
	}

	// Run TUI
	p := tea.NewProgram(initialTeleopModel(ctrl, keys), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatal("Error running program: %v", err)
	}

	cancel()
	<-done
	return nil
}
