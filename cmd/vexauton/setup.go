package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.bug.st/serial"

	"github.com/gwillem/vexauton/pkg/robot"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	successStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	missingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Servo IDs mirror the brain's smart ports.
const (
	minServoID = 1
	maxServoID = 21
)

type SetupCommand struct {
	SkipPistons bool `long:"skip-pistons" description:"Do not record piston servo positions"`
}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Vexauton Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━"))
	fmt.Println()

	cfg, err := loadConfig()
	if err != nil {
		fatal("Error loading config: %v", err)
	}

	// Step 1: Find the bench bus
	bus := pickBus(cfg)
	cfg.Bench.Port = bus.port

	fmt.Println()
	fmt.Println(subHeaderStyle.Render("━━━ Wiring ━━━"))
	fmt.Println()
	fmt.Println(wiringTable(cfg, bus.ids()))

	// Step 2: Record piston travel
	if !c.SkipPistons {
		fmt.Println()
		fmt.Println(subHeaderStyle.Render("━━━ Calibrating Pistons ━━━"))
		fmt.Println()
		calibratePistons(cfg)
	}

	if err := cfg.SaveTo(opts.Config); err != nil {
		fatal("Error saving config: %v", err)
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", opts.Config)
	fmt.Println()
	fmt.Println("Try the selector with: " + headerStyle.Render("vexauton select --bench"))

	return nil
}

type busInfo struct {
	port   string
	servos []feetech.FoundServo
}

func (b busInfo) ids() map[int]bool {
	ids := make(map[int]bool, len(b.servos))
	for _, s := range b.servos {
		ids[s.ID] = true
	}
	return ids
}

func pickBus(cfg *robot.Config) busInfo {
	fmt.Println("Scanning serial ports for servos...")
	fmt.Println()

	buses := findBuses(cfg.Bench.BaudRate)
	if len(buses) == 0 {
		fmt.Println("No servo bus found.")
		fmt.Println("Make sure the bench is connected and powered on.")
		os.Exit(1)
	}
	if len(buses) == 1 {
		return buses[0]
	}

	options := make([]huh.Option[int], len(buses))
	for i, b := range buses {
		label := fmt.Sprintf("%s (%d servos)", b.port, len(b.servos))
		options[i] = huh.NewOption(label, i)
	}

	var choice int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Which bus is the bench?").
				Description("Motor and piston servos must share one bus").
				Options(options...).
				Value(&choice),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
	return buses[choice]
}

func findBuses(baud int) []busInfo {
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Printf("Error listing ports: %v\n", err)
		return nil
	}
	if baud == 0 {
		baud = 1_000_000
	}

	var buses []busInfo
	for _, port := range ports {
		// Skip Bluetooth ports on macOS
		if strings.Contains(port, "Bluetooth") {
			continue
		}

		bus, err := feetech.NewBus(feetech.BusConfig{
			Port:     port,
			BaudRate: baud,
			Protocol: feetech.ProtocolSTS,
			Timeout:  100 * time.Millisecond,
		})
		if err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		servos, err := bus.Scan(ctx, minServoID, maxServoID)
		cancel()
		bus.Close()

		if err != nil || len(servos) == 0 {
			continue
		}
		fmt.Printf("  Found %d servo(s) on %s\n", len(servos), port)
		buses = append(buses, busInfo{port: port, servos: servos})
	}
	return buses
}

// wiringTable lists every configured output and whether its servo answered
// the scan.
func wiringTable(cfg *robot.Config, found map[int]bool) string {
	var rows [][]string
	addGroup := func(role string, g robot.MotorGroup) {
		for _, port := range g.Ports {
			id, dir := port, "forward"
			if port < 0 {
				id, dir = -port, "reversed"
			}
			rows = append(rows, []string{role, fmt.Sprintf("%d", id), string(g.Gearset), dir, present(found[id])})
		}
	}
	addGroup("drive left", cfg.Drive.Left)
	addGroup("drive right", cfg.Drive.Right)
	addGroup("intake", cfg.Intake)
	addGroup("outtake", cfg.Outtake)

	for _, p := range robot.AllPistons() {
		pc, ok := cfg.Pistons[p]
		if !ok || pc.Servo == 0 {
			continue
		}
		rows = append(rows, []string{"piston " + string(p), fmt.Sprintf("%d", pc.Servo), "-", "port " + pc.Port, present(found[pc.Servo])})
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Output", "Servo", "Gearset", "Direction", "Found").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col == 4 && row >= 0 && row < len(rows) {
				if rows[row][4] == "yes" {
					return successStyle.Padding(0, 1)
				}
				return missingStyle.Padding(0, 1)
			}
			return cellStyle
		}).
		Render()
}

func present(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

func calibratePistons(cfg *robot.Config) {
	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     cfg.Bench.Port,
		BaudRate: cfg.Bench.BaudRate,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		fatal("Error opening bench bus: %v", err)
	}
	defer bus.Close()

	ctx := context.Background()
	pistons := make([]robot.Piston, 0, len(cfg.Pistons))
	servos := make(map[robot.Piston]*feetech.Servo)
	for p, pc := range cfg.Pistons {
		if pc.Servo == 0 {
			continue
		}
		servo := feetech.NewServo(bus, pc.Servo, nil)
		// Release torque so the horn can be moved by hand
		servo.Disable(ctx)
		servos[p] = servo
		pistons = append(pistons, p)
	}
	if len(pistons) == 0 {
		fmt.Println("No piston servos configured.")
		return
	}
	sort.Slice(pistons, func(i, j int) bool { return pistons[i] < pistons[j] })

	fmt.Println("Move each piston servo between its retracted and extended positions.")
	fmt.Println("The lowest position is saved as retracted, the highest as extended.")
	fmt.Println()

	model := newTravelModel(pistons, servos)
	for _, p := range pistons {
		pos, _ := servos[p].Position(ctx)
		model.cur[p], model.min[p], model.max[p] = pos, pos, pos
	}

	p := tea.NewProgram(model)
	final, err := p.Run()
	if err != nil {
		fatal("Error running calibration: %v", err)
	}

	tm := final.(travelModel)
	for _, name := range pistons {
		if tm.max[name]-tm.min[name] < minTravel {
			fmt.Printf("  %s moved less than %d steps, keeping %d-%d\n",
				name, minTravel, cfg.Pistons[name].Retracted, cfg.Pistons[name].Extended)
			continue
		}
		pc := cfg.Pistons[name]
		pc.Retracted = tm.min[name]
		pc.Extended = tm.max[name]
		cfg.Pistons[name] = pc
	}
	fmt.Println("Pistons calibrated.")
}

// minTravel is the smallest range accepted as a real piston stroke.
const minTravel = 100

// Piston travel TUI model
type travelModel struct {
	pistons  []robot.Piston
	servos   map[robot.Piston]*feetech.Servo
	cur      map[robot.Piston]int
	min      map[robot.Piston]int
	max      map[robot.Piston]int
	quitting bool
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func newTravelModel(pistons []robot.Piston, servos map[robot.Piston]*feetech.Servo) travelModel {
	return travelModel{
		pistons: pistons,
		servos:  servos,
		cur:     make(map[robot.Piston]int),
		min:     make(map[robot.Piston]int),
		max:     make(map[robot.Piston]int),
	}
}

func (m travelModel) Init() tea.Cmd {
	return tick()
}

func (m travelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter", "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		}

	case tickMsg:
		ctx := context.Background()
		for _, p := range m.pistons {
			pos, err := m.servos[p].Position(ctx)
			if err != nil {
				continue
			}
			m.cur[p] = pos
			if pos < m.min[p] {
				m.min[p] = pos
			}
			if pos > m.max[p] {
				m.max[p] = pos
			}
		}
		return m, tick()
	}

	return m, nil
}

func (m travelModel) View() string {
	if m.quitting {
		return ""
	}

	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	currentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Padding(0, 1)

	rows := make([][]string, 0, len(m.pistons))
	travel := make([]int, 0, len(m.pistons))
	for _, p := range m.pistons {
		t := m.max[p] - m.min[p]
		travel = append(travel, t)
		rows = append(rows, []string{
			string(p),
			fmt.Sprintf("%d", m.cur[p]),
			fmt.Sprintf("%d", m.min[p]),
			fmt.Sprintf("%d", m.max[p]),
			fmt.Sprintf("%d", t),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("Piston", "Current", "Retracted", "Extended", "Travel").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			switch col {
			case 1:
				return currentStyle
			case 4:
				if row >= 0 && row < len(travel) && travel[row] >= minTravel {
					return successStyle.Padding(0, 1)
				}
				return missingStyle.Padding(0, 1)
			default:
				return cellStyle
			}
		})

	var sb strings.Builder
	sb.WriteString(t.Render())
	sb.WriteString("\n\n")
	sb.WriteString(dimStyle.Render("Press Enter when done"))
	return sb.String()
}
