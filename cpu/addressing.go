package cpu

// addrMode enumerates the thirteen 6502 addressing modes this package
// implements. Accumulator and implied modes need no effective address and
// are handled inline by their instruction functions.
type addrMode int

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirect // JMP only, carries the NMOS page-boundary bug
	modeIndirectX
	modeIndirectY
	modeRelative // conditional branches
)

// effectiveAddress consumes the operand bytes for mode from the instruction
// stream (advancing PC as it goes) and returns the resolved address plus
// whether resolving it crossed a page boundary. The page-cross flag is
// only meaningful for absolute,X / absolute,Y / indirect,Y — load-class
// instructions charge one extra cycle when it's true; store and
// read-modify-write instructions never do (spec section 4.2).
func (c *Chip) effectiveAddress(mem Memory, mode addrMode) (ea uint16, pageCrossed bool) {
	switch mode {
	case modeImmediate:
		ea = c.PC
		c.PC++
		return ea, false

	case modeZeroPage:
		zp := mem.Read(c.PC)
		c.PC++
		return uint16(zp), false

	case modeZeroPageX:
		zp := mem.Read(c.PC)
		c.PC++
		return uint16(zp + c.X), false

	case modeZeroPageY:
		zp := mem.Read(c.PC)
		c.PC++
		return uint16(zp + c.Y), false

	case modeAbsolute:
		lo := mem.Read(c.PC)
		c.PC++
		hi := mem.Read(c.PC)
		c.PC++
		return uint16(hi)<<8 | uint16(lo), false

	case modeAbsoluteX:
		base := c.fetchAbsolute(mem)
		ea = base + uint16(c.X)
		return ea, (base & 0xFF00) != (ea & 0xFF00)

	case modeAbsoluteY:
		base := c.fetchAbsolute(mem)
		ea = base + uint16(c.Y)
		return ea, (base & 0xFF00) != (ea & 0xFF00)

	case modeIndirectX:
		zp := mem.Read(c.PC)
		c.PC++
		ptr := zp + c.X
		lo := mem.Read(uint16(ptr))
		hi := mem.Read(uint16(ptr + 1))
		return uint16(hi)<<8 | uint16(lo), false

	case modeIndirectY:
		zp := mem.Read(c.PC)
		c.PC++
		lo := mem.Read(uint16(zp))
		hi := mem.Read(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		ea = base + uint16(c.Y)
		return ea, (base & 0xFF00) != (ea & 0xFF00)
	}

	return 0, false
}

func (c *Chip) fetchAbsolute(mem Memory) uint16 {
	lo := mem.Read(c.PC)
	c.PC++
	hi := mem.Read(c.PC)
	c.PC++
	return uint16(hi)<<8 | uint16(lo)
}

// indirectJMPAddress resolves the operand of JMP (ind), reproducing the
// well-known NMOS bug: if the pointer's low byte is 0xFF, the high byte of
// the target is fetched from the start of the same page rather than the
// start of the next one.
func (c *Chip) indirectJMPAddress(mem Memory) uint16 {
	base := c.fetchAbsolute(mem)
	ptrLo := mem.Read(base)
	hiAddr := (base & 0xFF00) | ((base + 1) & 0x00FF)
	ptrHi := mem.Read(hiAddr)
	return uint16(ptrHi)<<8 | uint16(ptrLo)
}

// branch implements the shared relative-branch arithmetic: always consumes
// the offset byte, and when taken charges one extra cycle plus a second if
// the branch target lands on a different page than the instruction
// following the branch.
func (c *Chip) branch(mem Memory, taken bool) {
	offset := mem.Read(c.PC)
	c.PC++
	if !taken {
		return
	}
	c.CyclesUsed++
	base := c.PC
	target := uint16(int32(base) + int32(int8(offset)))
	if (base & 0xFF00) != (target & 0xFF00) {
		c.CyclesUsed++
	}
	c.PC = target
}
