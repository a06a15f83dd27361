package pia

import (
	"testing"

	"github.com/sixfiveoh/apple1/bus"
	"github.com/sixfiveoh/apple1/terminal"
)

func newTestBridge(t *testing.T) (*Bridge, *bus.Bus, *terminal.Buffer) {
	t.Helper()
	b := bus.New()
	b.AddSegment(bus.NewRegisterSegment("kbd", DefaultKBDAddr, 1))
	b.AddSegment(bus.NewRegisterSegment("kbdcr", DefaultKBDCRAddr, 1))
	b.AddSegment(bus.NewRegisterSegment("dsp", DefaultDSPAddr, 1))
	b.AddSegment(bus.NewRegisterSegment("dspcr", DefaultDSPCRAddr, 1))

	term := terminal.New(40, 24)
	br, err := Init(&ChipDef{Bus: b, Terminal: term})
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	return br, b, term
}

func TestInitRejectsMissingCollaborators(t *testing.T) {
	if _, err := Init(nil); err == nil {
		t.Fatal("expected error for nil ChipDef")
	}
	if _, err := Init(&ChipDef{}); err == nil {
		t.Fatal("expected error for missing Bus/Terminal")
	}
}

func TestDSPWriteAppendsToTerminal(t *testing.T) {
	br, b, term := newTestBridge(t)

	b.Write(DefaultDSPAddr, 'H'|0x80)
	printed, err := br.Tick(&PendingInput{})
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if !printed {
		t.Fatal("expected Tick to report a character printed")
	}
	if b.Read(DefaultDSPCRAddr)&readyBit != 0 {
		t.Fatal("DSPCR ready bit should be cleared once Tick drains the byte")
	}

	b.Write(DefaultDSPAddr, 'I'|0x80)
	if _, err := br.Tick(&PendingInput{}); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := term.String(); got != "HI" {
		t.Fatalf("terminal = %q, want %q", got, "HI")
	}
}

func TestDSPWriteDropsNulAndFoldsCR(t *testing.T) {
	br, b, term := newTestBridge(t)

	b.Write(DefaultDSPAddr, 0x00)
	printed, err := br.Tick(&PendingInput{})
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if printed {
		t.Fatal("a NUL byte should not count as printed")
	}
	if b.Read(DefaultDSPCRAddr)&readyBit != 0 {
		t.Fatal("DSPCR ready bit should still clear after draining a dropped NUL")
	}

	b.Write(DefaultDSPAddr, 'A'|0x80)
	br.Tick(&PendingInput{})
	b.Write(DefaultDSPAddr, 0x8D) // CR with bit 7 set
	br.Tick(&PendingInput{})

	lines := term.Lines()
	if len(lines) != 2 || lines[0] != "A" || lines[1] != "" {
		t.Fatalf("lines = %v, want [\"A\" \"\"] (CR folded to newline)", lines)
	}
}

func TestKBDReadClearsReadyFlag(t *testing.T) {
	br, b, _ := newTestBridge(t)
	pending := &PendingInput{Value: 'a', Ready: true}
	if _, err := br.Tick(pending); err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if b.Read(DefaultKBDCRAddr)&readyBit == 0 {
		t.Fatal("KBDCR ready bit should be set after delivery")
	}

	got := b.Read(DefaultKBDAddr)
	if got != ('A' | 0x80) {
		t.Fatalf("KBD = 0x%02X, want uppercase-folded 0x%02X", got, 'A'|0x80)
	}

	if b.Read(DefaultKBDCRAddr)&readyBit != 0 {
		t.Fatal("reading KBD should have cleared the ready bit")
	}
}

func TestTickNoopsWithoutPendingInput(t *testing.T) {
	br, _, _ := newTestBridge(t)
	printed, err := br.Tick(&PendingInput{Ready: false})
	if err != nil {
		t.Fatalf("Tick: %v", err)
	}
	if printed {
		t.Fatal("expected nothing printed without a pending DSP byte")
	}
}

func TestFoldKeyUppercasesAndSetsBit7(t *testing.T) {
	cases := map[byte]byte{
		'a': 'A' | 0x80,
		'Z': 'Z' | 0x80,
		'1': '1' | 0x80,
	}
	for in, want := range cases {
		if got := foldKey(in); got != want {
			t.Errorf("foldKey(%q) = 0x%02X, want 0x%02X", in, got, want)
		}
	}
}
