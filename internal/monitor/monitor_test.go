package monitor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sixfiveoh/apple1/bus"
	"github.com/sixfiveoh/apple1/cpu"
)

func newTestMonitor(t *testing.T) (*Monitor, *bus.Bus, *cpu.Chip, *bytes.Buffer) {
	t.Helper()
	b := bus.New()
	seg, err := bus.NewRAMSegment("ram", 0x0000, 0x1000)
	if err != nil {
		t.Fatalf("NewRAMSegment: %v", err)
	}
	b.AddSegment(seg)

	c := cpu.New(cpu.VariantNMOS)
	out := &bytes.Buffer{}
	return New(b, c, out), b, c, out
}

func TestPeekAndPoke(t *testing.T) {
	m, b, _, out := newTestMonitor(t)
	m.Execute("poke 0100:42")
	if got := b.Read(0x0100); got != 0x42 {
		t.Fatalf("Read(0x0100) = 0x%02X, want 0x42", got)
	}

	out.Reset()
	m.Execute("peek 0100")
	if !strings.Contains(out.String(), "0100: 42") {
		t.Fatalf("peek output = %q, want to contain \"0100: 42\"", out.String())
	}
}

func TestUnknownCommandPrintsWhat(t *testing.T) {
	m, _, _, out := newTestMonitor(t)
	m.Execute("frobnicate")
	if strings.TrimSpace(out.String()) != "What?" {
		t.Fatalf("output = %q, want \"What?\"", out.String())
	}
}

func TestMalformedPokePrintsWhat(t *testing.T) {
	m, _, _, out := newTestMonitor(t)
	m.Execute("poke nonsense")
	if strings.TrimSpace(out.String()) != "What?" {
		t.Fatalf("output = %q, want \"What?\"", out.String())
	}
}

func TestResetSetsLatch(t *testing.T) {
	m, _, c, _ := newTestMonitor(t)
	c.ResetLatch = false
	m.Execute("reset")
	if !c.ResetLatch {
		t.Fatal("expected ResetLatch to be set")
	}
}

func TestStepAdvancesProgramCounter(t *testing.T) {
	m, b, c, out := newTestMonitor(t)
	// The test RAM stops at 0x0FFF, so map the reset vector explicitly.
	b.AddSegment(bus.NewRegisterSegment("vectors", 0xFFFC, 2))
	b.Write(0xFFFC, 0x00)
	b.Write(0xFFFD, 0x02)
	b.Write(0x0200, 0xEA) // NOP

	m.Execute("step") // consumes the reset cycle and executes the NOP
	if c.PC != 0x0201 {
		t.Fatalf("PC = 0x%04X, want 0x0201 after reset and stepping past a NOP", c.PC)
	}
	if !strings.Contains(out.String(), "PC=0201") {
		t.Fatalf("step output = %q, want register dump containing PC=0201", out.String())
	}
}

func TestLoadMissingFilePrintsError(t *testing.T) {
	m, _, _, out := newTestMonitor(t)
	m.Execute("load /nonexistent/program.hex")
	if !strings.Contains(out.String(), "load:") {
		t.Fatalf("output = %q, want a load error", out.String())
	}
}
