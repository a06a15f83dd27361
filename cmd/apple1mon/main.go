// Command apple1mon is an SDL-free front end: a bubbletea TUI exposing
// the interactive monitor (peek/poke/reset/run/step/load/dis) alongside a
// live register panel and the terminal's scrollback.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sixfiveoh/apple1/disassemble"
	"github.com/sixfiveoh/apple1/internal/config"
	"github.com/sixfiveoh/apple1/internal/machine"
	"github.com/sixfiveoh/apple1/internal/monitor"
)

var (
	registerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	screenStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Width(42)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type model struct {
	m       *machine.Machine
	mon     *monitor.Monitor
	out     *bytes.Buffer
	input   string
	history []string
	err     error
}

func initialModel(m *machine.Machine) *model {
	out := &bytes.Buffer{}
	return &model{
		m:   m,
		mon: monitor.New(m.Bus, m.CPU, out),
		out: out,
	}
}

func (mo *model) Init() tea.Cmd {
	return nil
}

func (mo *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return mo, nil
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return mo, tea.Quit
	case tea.KeyEnter:
		line := strings.TrimSpace(mo.input)
		mo.input = ""
		if line == "q" || line == "quit" {
			return mo, tea.Quit
		}
		mo.out.Reset()
		mo.mon.Execute(line)
		if mo.out.Len() > 0 {
			mo.history = append(mo.history, strings.TrimRight(mo.out.String(), "\n"))
		}
		return mo, nil
	case tea.KeyBackspace:
		if len(mo.input) > 0 {
			mo.input = mo.input[:len(mo.input)-1]
		}
		return mo, nil
	default:
		mo.input += keyMsg.String()
		return mo, nil
	}
}

func (mo *model) View() string {
	c := mo.m.CPU
	regs := fmt.Sprintf("PC=%04X A=%02X X=%02X Y=%02X SP=%02X P=%02X",
		c.PC, c.A, c.X, c.Y, c.SP, c.P)
	text, _ := disassemble.Step(c.PC, mo.m.Bus)

	screen := strings.Join(mo.m.Terminal.Lines(), "\n")

	var histLines []string
	start := 0
	if len(mo.history) > 10 {
		start = len(mo.history) - 10
	}
	histLines = append(histLines, mo.history[start:]...)

	return lipgloss.JoinVertical(lipgloss.Left,
		registerStyle.Render(regs+"\n"+text),
		screenStyle.Render(screen),
		strings.Join(histLines, "\n"),
		promptStyle.Render("> "+mo.input),
	)
}

func main() {
	fs := flag.CommandLine
	flags := config.RegisterFlags(fs)
	flag.Parse()

	cfg, err := config.Load(*flags.ConfigPath)
	if err != nil {
		log.Fatalf("apple1mon: %v", err)
	}
	cfg = flags.Apply(cfg)

	m, err := machine.New(cfg)
	if err != nil {
		log.Fatalf("apple1mon: %v", err)
	}
	// The register panel starts at the reset vector; the first "step"
	// command consumes the reset and executes the entry-point instruction
	// in one Step, same as the rest of the driver surface.

	p := tea.NewProgram(initialModel(m))
	if _, err := p.Run(); err != nil {
		log.Fatalf("apple1mon: %v", err)
	}
}
