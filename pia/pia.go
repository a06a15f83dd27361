// Package pia implements the bridge between the CPU bus and the terminal:
// the Apple-1's KBD/KBDCR/DSP/DSPCR handshake registers, wired onto the
// bus as address-triggered hooks rather than as a bus-owning chip, per
// the hook discipline the bus package exposes.
package pia

import (
	"fmt"
	"log"

	"github.com/sixfiveoh/apple1/bus"
	"github.com/sixfiveoh/apple1/terminal"
)

// Apple-1 memory-mapped register addresses.
const (
	DefaultKBDAddr   = uint16(0xD010)
	DefaultKBDCRAddr = uint16(0xD011)
	DefaultDSPAddr   = uint16(0xD012)
	DefaultDSPCRAddr = uint16(0xD013)
)

// readyBit is the control-register bit both KBDCR and DSPCR use, matching
// the real 6821's IRQ-flag convention repurposed here as a simple polling
// flag. On KBDCR it means "a key is waiting for the CPU to read KBD"; on
// DSPCR it means "the CPU has written a byte to DSP waiting for Tick to
// drain it to the terminal."
const readyBit = uint8(0x80)

// InvalidStateError reports a precondition failure in Bridge setup or use.
type InvalidStateError struct {
	Reason string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("invalid PIA state: %s", e.Reason)
}

// ChipDef configures a Bridge, following the ChipDef/Init construction
// idiom used throughout this codebase's peripheral chips.
type ChipDef struct {
	Bus      *bus.Bus
	Terminal *terminal.Buffer

	// KBDAddr, KBDCRAddr, DSPAddr, DSPCRAddr default to the Apple-1
	// addresses above when left zero.
	KBDAddr   uint16
	KBDCRAddr uint16
	DSPAddr   uint16
	DSPCRAddr uint16

	Debug bool
}

// PendingInput carries one host keypress waiting to be delivered to the
// emulated keyboard register.
type PendingInput struct {
	Value byte
	Ready bool
}

// Bridge owns no bus storage of its own; it reacts to reads and writes of
// the four handshake registers that already live in the bus's register
// segments.
type Bridge struct {
	bus      *bus.Bus
	terminal *terminal.Buffer
	debug    bool

	kbdAddr   uint16
	kbdcrAddr uint16
	dspAddr   uint16
	dspcrAddr uint16
}

// Init validates d and wires the Bridge's hooks onto d.Bus.
func Init(d *ChipDef) (*Bridge, error) {
	if d == nil {
		return nil, InvalidStateError{Reason: "nil ChipDef"}
	}
	if d.Bus == nil {
		return nil, InvalidStateError{Reason: "ChipDef.Bus is nil"}
	}
	if d.Terminal == nil {
		return nil, InvalidStateError{Reason: "ChipDef.Terminal is nil"}
	}

	b := &Bridge{
		bus:       d.Bus,
		terminal:  d.Terminal,
		debug:     d.Debug,
		kbdAddr:   orDefault(d.KBDAddr, DefaultKBDAddr),
		kbdcrAddr: orDefault(d.KBDCRAddr, DefaultKBDCRAddr),
		dspAddr:   orDefault(d.DSPAddr, DefaultDSPAddr),
		dspcrAddr: orDefault(d.DSPCRAddr, DefaultDSPCRAddr),
	}

	d.Bus.AddReadHook(b.kbdAddr, b.onKBDRead)
	d.Bus.AddWriteHook(b.dspAddr, b.onDSPWrite)

	// DSPCR starts clear: nothing has been written to DSP yet, so there
	// is no byte waiting for Tick to drain.
	d.Bus.Write(b.dspcrAddr, 0)

	return b, nil
}

func orDefault(v, def uint16) uint16 {
	if v == 0 {
		return def
	}
	return v
}

// onKBDRead implements the CPU-reads-KBD half of the handshake: the byte
// already sitting in the register is returned unchanged, but the
// key-ready flag in KBDCR is cleared, per spec section 4.6/4.7.
func (b *Bridge) onKBDRead(addr uint16, val uint8) uint8 {
	cur := b.bus.Read(b.kbdcrAddr)
	b.bus.Write(b.kbdcrAddr, cur&^readyBit)
	return val
}

// onDSPWrite implements only the latching half of the CPU-writes-DSP
// handshake: it raises DSPCR's ready flag to mark a byte waiting to be
// drained. The actual character processing happens in Tick, once per
// tick, per spec section 4.6/4.7.
func (b *Bridge) onDSPWrite(addr uint16, val uint8) {
	b.bus.Write(b.dspcrAddr, readyBit)
}

// Tick services both halves of the handshake once per call. It first
// drains a pending DSP byte, if DSPCR's ready flag is set: NUL bytes are
// dropped, CR is folded to LF, everything else is masked to 7 bits and
// appended to the terminal, and DSPCR's ready flag is cleared to signal
// the write has been consumed. It then delivers one pending host
// keypress to the keyboard register, if any is waiting, folding it to
// uppercase ASCII with bit 7 set (the Apple-1 keyboard's wire format)
// and raising KBDCR's ready flag. It returns true if a character was
// printed to the terminal this tick.
func (b *Bridge) Tick(pending *PendingInput) (bool, error) {
	if b.bus == nil {
		return false, InvalidStateError{Reason: "Tick called on a zero-value Bridge"}
	}

	printed := false
	if b.bus.Read(b.dspcrAddr)&readyBit != 0 {
		ch := b.bus.Read(b.dspAddr) & 0x7F
		if ch != 0 {
			if ch == '\r' {
				ch = '\n'
			}
			b.terminal.Append(ch)
			printed = true
		}
		b.bus.Write(b.dspcrAddr, b.bus.Read(b.dspcrAddr)&^readyBit)
	}

	if pending != nil && pending.Ready {
		ch := foldKey(pending.Value)
		b.bus.Write(b.kbdAddr, ch)
		cur := b.bus.Read(b.kbdcrAddr)
		b.bus.Write(b.kbdcrAddr, cur|readyBit)
		pending.Ready = false

		if b.debug {
			log.Printf("pia: delivered key 0x%02X", ch)
		}
	}

	return printed, nil
}

// foldKey reproduces the Apple-1 keyboard encoder: lower-case letters are
// folded to upper case, and bit 7 is always set to mark the byte valid.
func foldKey(v byte) byte {
	if v >= 'a' && v <= 'z' {
		v -= 'a' - 'A'
	}
	return (v & 0x7F) | 0x80
}

// Debug returns a diagnostic dump of handshake register state, or an
// empty string when debugging is disabled, matching this codebase's
// Debug() string convention.
func (b *Bridge) Debug() string {
	if !b.debug {
		return ""
	}
	return fmt.Sprintf("KBD=0x%02X KBDCR=0x%02X DSP=0x%02X DSPCR=0x%02X",
		b.bus.Read(b.kbdAddr), b.bus.Read(b.kbdcrAddr),
		b.bus.Read(b.dspAddr), b.bus.Read(b.dspcrAddr))
}
