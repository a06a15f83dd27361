// Package cpu implements a cycle-counting interpreter for the legal NMOS
// 6502 instruction set: every documented addressing mode, flag semantics,
// BCD arithmetic, and RESET/NMI/IRQ interrupt dispatch, including the
// well-known indirect-JMP page-crossing bug. Undocumented opcodes other
// than the JAM/HLT/KIL family are not implemented; encountering one halts
// the processor the same way a JAM opcode does.
package cpu

import (
	"fmt"
)

// Variant distinguishes the NMOS sub-variants this package supports. Only
// NMOS-family behavior is in scope; 65C02 and later CMOS parts are not.
type Variant int

const (
	// VariantNMOS is the stock NMOS 6502 with BCD-mode ADC/SBC.
	VariantNMOS Variant = iota
	// VariantNMOSRicoh is identical except decimal mode is not
	// implemented, matching the Ricoh 2A03-family parts that dropped it.
	VariantNMOSRicoh
)

// Flag bit positions within the P (status) register, bit 7 down to bit 0:
// N V 1 B D I Z C.
const (
	FlagCarry     = uint8(0x01)
	FlagZero      = uint8(0x02)
	FlagInterrupt = uint8(0x04)
	FlagDecimal   = uint8(0x08)
	FlagBreak     = uint8(0x10)
	FlagReserved  = uint8(0x20)
	FlagOverflow  = uint8(0x40)
	FlagNegative  = uint8(0x80)
)

// Vector addresses for the three hardware-triggered control transfers.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// Memory is the bus interface the CPU needs: byte-addressable read/write
// plus the two stack primitives. bus.Bus satisfies this.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, val uint8)
	Push(sp uint8, val uint8) uint8
	Pull(sp uint8) (uint8, uint8)
}

// JamError reports that the processor executed a JAM/HLT/KIL opcode and
// has halted.
type JamError struct {
	Opcode uint8
}

func (e JamError) Error() string {
	return fmt.Sprintf("JAM opcode 0x%02X executed, CPU halted", e.Opcode)
}

// UnknownOpcodeError reports an opcode with no legal NMOS meaning.
type UnknownOpcodeError struct {
	Opcode uint8
}

func (e UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unimplemented opcode 0x%02X, CPU halted", e.Opcode)
}

// InvalidStateError reports an internal precondition failure (a bug in
// this package, not in the program being run).
type InvalidStateError struct {
	Reason string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// Chip holds the complete architectural and auxiliary state of one 6502.
type Chip struct {
	A, X, Y uint8
	SP      uint8
	P       uint8
	PC      uint16

	Variant Variant

	// LastOp is the most recently fetched opcode, kept for diagnostics.
	LastOp uint8
	// CyclesUsed is the cycle count consumed by the most recent Step.
	CyclesUsed int

	// ResetLatch, IRQPending and NMIPending are set by the driver (or any
	// collaborator) and observed at the top of the next Step.
	ResetLatch bool
	IRQPending bool
	NMIPending bool

	// DebugText toggles verbose diagnostics from this package.
	DebugText bool
	// Running is driver-controlled; this package never reads it, it is
	// simply carried as the documented run/pause flag collaborators use.
	Running bool
	// ClockTimeNs is nanoseconds per simulated cycle, derived by SetClock
	// from a configured Hz. The interpreter itself never sleeps; pacing
	// is a driver responsibility (spec section 5).
	ClockTimeNs int64

	halted   bool
	haltErr  error
}

// New returns a powered-on Chip of the given variant.
func New(variant Variant) *Chip {
	c := &Chip{Variant: variant}
	c.PowerOn()
	return c
}

// PowerOn resets the chip to its documented power-on state: A=X=Y=SP=0,
// P=0b00100100 (I set, reserved set, D clear), PC=0xFFFC, and a pending
// reset latch. It does not by itself load the reset vector; the next
// Step does that.
func (c *Chip) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0
	c.P = FlagReserved | FlagInterrupt
	c.PC = ResetVector
	c.ResetLatch = true
	c.IRQPending = false
	c.NMIPending = false
	c.halted = false
	c.haltErr = nil
	c.LastOp = 0
	c.CyclesUsed = 0
}

// SetClock derives ClockTimeNs from a simulated clock rate in Hz.
func (c *Chip) SetClock(hz int) error {
	if hz <= 0 {
		return InvalidStateError{Reason: fmt.Sprintf("clock rate must be positive, got %d", hz)}
	}
	c.ClockTimeNs = int64(1e9) / int64(hz)
	return nil
}

// Halted reports whether the processor has halted on a JAM or unknown
// opcode. Once halted, Step keeps returning the same error without
// advancing PC.
func (c *Chip) Halted() bool {
	return c.halted
}

// Step executes exactly one interpreter step: interrupt dispatch (RESET,
// then NMI, then IRQ) takes priority over instruction fetch, matching
// spec section 4.4. A pending reset loads the vector and then falls
// straight through into fetching and executing the first instruction at
// that vector in the same Step call, rather than consuming a Step of its
// own. It returns the number of simulated cycles consumed, or an error
// if the processor halted (JAM, unknown opcode, or an internal
// precondition failure).
func (c *Chip) Step(mem Memory) (int, error) {
	c.CyclesUsed = 0

	if c.halted {
		return 0, c.haltErr
	}

	switch {
	case c.ResetLatch:
		c.doReset(mem)
	case c.NMIPending:
		c.dispatchInterrupt(mem, NMIVector)
		c.NMIPending = false
		c.IRQPending = false
		return c.CyclesUsed, nil
	case c.IRQPending && c.P&FlagInterrupt == 0:
		c.dispatchInterrupt(mem, IRQVector)
		c.IRQPending = false
		return c.CyclesUsed, nil
	}

	op := mem.Read(c.PC)
	c.PC++
	c.LastOp = op

	if err := c.execute(mem, op); err != nil {
		c.halted = true
		c.haltErr = err
		return c.CyclesUsed, err
	}
	return c.CyclesUsed, nil
}

// doReset implements spec section 4.4 step 1.
func (c *Chip) doReset(mem Memory) {
	c.PC = ResetVector
	lo := mem.Read(ResetVector)
	hi := mem.Read(ResetVector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.CyclesUsed += 7
	c.ResetLatch = false
}

// dispatchInterrupt implements the NMI/IRQ push-and-vector sequence of
// spec section 4.4 steps 2 and 3: B is forced clear, reserved forced set.
func (c *Chip) dispatchInterrupt(mem Memory, vector uint16) {
	c.push(mem, uint8(c.PC>>8))
	c.push(mem, uint8(c.PC&0xFF))
	c.push(mem, (c.P|FlagReserved)&^FlagBreak)
	c.P |= FlagInterrupt
	lo := mem.Read(vector)
	hi := mem.Read(vector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
	c.CyclesUsed += 7
}

func (c *Chip) push(mem Memory, val uint8) {
	c.SP = mem.Push(c.SP, val)
}

func (c *Chip) pull(mem Memory) uint8 {
	val, sp := mem.Pull(c.SP)
	c.SP = sp
	return val
}
