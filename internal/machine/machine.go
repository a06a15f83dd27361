// Package machine wires a Chip, Bus, PIA Bridge and terminal Buffer into
// one Apple-1-class address map, shared by every front end so the memory
// layout is defined in exactly one place.
package machine

import (
	"github.com/sixfiveoh/apple1/bus"
	"github.com/sixfiveoh/apple1/cpu"
	"github.com/sixfiveoh/apple1/internal/config"
	"github.com/sixfiveoh/apple1/internal/romload"
	"github.com/sixfiveoh/apple1/pia"
	"github.com/sixfiveoh/apple1/terminal"
)

// Memory map, matching the original Apple-1: 32KB of DRAM from $0000,
// the PIA handshake registers at $D010-$D013, and an 8KB ROM window at
// $E000 holding the monitor and the reset/IRQ/NMI vectors at its top.
const (
	DRAMStart = uint16(0x0000)
	DRAMSize  = 0x8000

	ROMStart = uint16(0xE000)
	ROMSize  = 0x2000
)

// Machine bundles every component a front end needs to drive the core.
type Machine struct {
	Bus      *bus.Bus
	CPU      *cpu.Chip
	PIA      *pia.Bridge
	Terminal *terminal.Buffer
}

// New builds a Machine from cfg: DRAM is randomized at power-on, the ROM
// segment is loaded from cfg.ROMFilename, and the PIA bridge is wired
// onto the bus's handshake register addresses.
func New(cfg config.Config) (*Machine, error) {
	b := bus.New()
	b.Debug = cfg.Debug

	dram, err := bus.NewRAMSegment("dram", DRAMStart, DRAMSize)
	if err != nil {
		return nil, err
	}
	b.AddSegment(dram)

	b.AddSegment(bus.NewRegisterSegment("kbd", pia.DefaultKBDAddr, 1))
	b.AddSegment(bus.NewRegisterSegment("kbdcr", pia.DefaultKBDCRAddr, 1))
	b.AddSegment(bus.NewRegisterSegment("dsp", pia.DefaultDSPAddr, 1))
	b.AddSegment(bus.NewRegisterSegment("dspcr", pia.DefaultDSPCRAddr, 1))

	romData, err := romload.LoadAt(cfg.ROMFilename, ROMSize, 0)
	if err != nil {
		return nil, err
	}
	b.AddSegment(bus.NewROMSegment("rom", ROMStart, romData))

	term := terminal.New(terminal.DefaultColumns, terminal.DefaultRows)

	bridge, err := pia.Init(&pia.ChipDef{
		Bus:      b,
		Terminal: term,
		Debug:    cfg.Debug,
	})
	if err != nil {
		return nil, err
	}

	c := cpu.New(cpu.VariantNMOS)
	if cfg.CPUSpeedHz > 0 {
		if err := c.SetClock(cfg.CPUSpeedHz); err != nil {
			return nil, err
		}
	}
	c.DebugText = cfg.Debug

	return &Machine{Bus: b, CPU: c, PIA: bridge, Terminal: term}, nil
}

// Step runs one CPU instruction and services the PIA handshake: draining
// any byte the CPU has written to DSP and delivering any pending host
// keypress. It returns the cycles the instruction consumed and whether a
// character was printed to the terminal this step.
func (m *Machine) Step(pending *pia.PendingInput) (int, bool, error) {
	printed, err := m.PIA.Tick(pending)
	if err != nil {
		return 0, false, err
	}
	cycles, err := m.CPU.Step(m.Bus)
	return cycles, printed, err
}
