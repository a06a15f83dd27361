package cpu

// jamOpcodes halts the processor the instant one is fetched, matching
// real NMOS silicon: these encodings lock the bus and never recover short
// of a hardware reset.
var jamOpcodes = map[uint8]bool{
	0x02: true, 0x12: true, 0x22: true, 0x32: true,
	0x42: true, 0x52: true, 0x62: true, 0x72: true,
	0x92: true, 0xB2: true, 0xD2: true, 0xF2: true,
}

// execute dispatches a single fetched opcode. Addressing-mode cycle bases
// follow the standard NMOS timing table; page-cross cycles are added by
// chargeCross from the addressing helper's report, and branch-taken
// cycles by branch().
// Read-modify-write and store instructions never add a page-cross cycle.
func (c *Chip) execute(mem Memory, op uint8) error {
	if jamOpcodes[op] {
		return JamError{Opcode: op}
	}

	switch op {

	// ADC
	case 0x69:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.adc(mem.Read(ea))
	case 0x65:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.adc(mem.Read(ea))
	case 0x75:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		c.adc(mem.Read(ea))
	case 0x6D:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.adc(mem.Read(ea))
	case 0x7D:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteX)
		c.chargeCross(cross)
		c.adc(mem.Read(ea))
	case 0x79:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteY)
		c.chargeCross(cross)
		c.adc(mem.Read(ea))
	case 0x61:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectX)
		c.adc(mem.Read(ea))
	case 0x71:
		c.CyclesUsed += 5
		ea, cross := c.effectiveAddress(mem, modeIndirectY)
		c.chargeCross(cross)
		c.adc(mem.Read(ea))

	// AND
	case 0x29:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.loadA(c.A & mem.Read(ea))
	case 0x25:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.loadA(c.A & mem.Read(ea))
	case 0x35:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		c.loadA(c.A & mem.Read(ea))
	case 0x2D:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.loadA(c.A & mem.Read(ea))
	case 0x3D:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteX)
		c.chargeCross(cross)
		c.loadA(c.A & mem.Read(ea))
	case 0x39:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteY)
		c.chargeCross(cross)
		c.loadA(c.A & mem.Read(ea))
	case 0x21:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectX)
		c.loadA(c.A & mem.Read(ea))
	case 0x31:
		c.CyclesUsed += 5
		ea, cross := c.effectiveAddress(mem, modeIndirectY)
		c.chargeCross(cross)
		c.loadA(c.A & mem.Read(ea))

	// ASL
	case 0x0A:
		c.CyclesUsed += 2
		c.A = c.aslVal(c.A)
	case 0x06:
		c.CyclesUsed += 5
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.aslVal(mem.Read(ea)))
	case 0x16:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		mem.Write(ea, c.aslVal(mem.Read(ea)))
	case 0x0E:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.aslVal(mem.Read(ea)))
	case 0x1E:
		c.CyclesUsed += 7
		ea, _ := c.effectiveAddress(mem, modeAbsoluteX)
		mem.Write(ea, c.aslVal(mem.Read(ea)))

	// Branches
	case 0x90:
		c.CyclesUsed += 2
		c.branch(mem, !c.carrySet())
	case 0xB0:
		c.CyclesUsed += 2
		c.branch(mem, c.carrySet())
	case 0xF0:
		c.CyclesUsed += 2
		c.branch(mem, c.P&FlagZero != 0)
	case 0xD0:
		c.CyclesUsed += 2
		c.branch(mem, c.P&FlagZero == 0)
	case 0x30:
		c.CyclesUsed += 2
		c.branch(mem, c.P&FlagNegative != 0)
	case 0x10:
		c.CyclesUsed += 2
		c.branch(mem, c.P&FlagNegative == 0)
	case 0x50:
		c.CyclesUsed += 2
		c.branch(mem, c.P&FlagOverflow == 0)
	case 0x70:
		c.CyclesUsed += 2
		c.branch(mem, c.P&FlagOverflow != 0)

	// BIT
	case 0x24:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.bit(mem.Read(ea))
	case 0x2C:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.bit(mem.Read(ea))

	// BRK
	case 0x00:
		c.iBRK(mem)

	// Flag clear/set
	case 0x18:
		c.CyclesUsed += 2
		c.P &^= FlagCarry
	case 0xD8:
		c.CyclesUsed += 2
		c.P &^= FlagDecimal
	case 0x58:
		c.CyclesUsed += 2
		c.P &^= FlagInterrupt
	case 0xB8:
		c.CyclesUsed += 2
		c.P &^= FlagOverflow
	case 0x38:
		c.CyclesUsed += 2
		c.P |= FlagCarry
	case 0xF8:
		c.CyclesUsed += 2
		c.P |= FlagDecimal
	case 0x78:
		c.CyclesUsed += 2
		c.P |= FlagInterrupt

	// CMP
	case 0xC9:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.compare(c.A, mem.Read(ea))
	case 0xC5:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.compare(c.A, mem.Read(ea))
	case 0xD5:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		c.compare(c.A, mem.Read(ea))
	case 0xCD:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.compare(c.A, mem.Read(ea))
	case 0xDD:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteX)
		c.chargeCross(cross)
		c.compare(c.A, mem.Read(ea))
	case 0xD9:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteY)
		c.chargeCross(cross)
		c.compare(c.A, mem.Read(ea))
	case 0xC1:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectX)
		c.compare(c.A, mem.Read(ea))
	case 0xD1:
		c.CyclesUsed += 5
		ea, cross := c.effectiveAddress(mem, modeIndirectY)
		c.chargeCross(cross)
		c.compare(c.A, mem.Read(ea))

	// CPX / CPY
	case 0xE0:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.compare(c.X, mem.Read(ea))
	case 0xE4:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.compare(c.X, mem.Read(ea))
	case 0xEC:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.compare(c.X, mem.Read(ea))
	case 0xC0:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.compare(c.Y, mem.Read(ea))
	case 0xC4:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.compare(c.Y, mem.Read(ea))
	case 0xCC:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.compare(c.Y, mem.Read(ea))

	// DEC
	case 0xC6:
		c.CyclesUsed += 5
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.decVal(mem.Read(ea)))
	case 0xD6:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		mem.Write(ea, c.decVal(mem.Read(ea)))
	case 0xCE:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.decVal(mem.Read(ea)))
	case 0xDE:
		c.CyclesUsed += 7
		ea, _ := c.effectiveAddress(mem, modeAbsoluteX)
		mem.Write(ea, c.decVal(mem.Read(ea)))
	case 0xCA:
		c.CyclesUsed += 2
		c.X = c.decVal(c.X)
	case 0x88:
		c.CyclesUsed += 2
		c.Y = c.decVal(c.Y)

	// EOR
	case 0x49:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.loadA(c.A ^ mem.Read(ea))
	case 0x45:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.loadA(c.A ^ mem.Read(ea))
	case 0x55:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		c.loadA(c.A ^ mem.Read(ea))
	case 0x4D:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.loadA(c.A ^ mem.Read(ea))
	case 0x5D:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteX)
		c.chargeCross(cross)
		c.loadA(c.A ^ mem.Read(ea))
	case 0x59:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteY)
		c.chargeCross(cross)
		c.loadA(c.A ^ mem.Read(ea))
	case 0x41:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectX)
		c.loadA(c.A ^ mem.Read(ea))
	case 0x51:
		c.CyclesUsed += 5
		ea, cross := c.effectiveAddress(mem, modeIndirectY)
		c.chargeCross(cross)
		c.loadA(c.A ^ mem.Read(ea))

	// INC
	case 0xE6:
		c.CyclesUsed += 5
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.incVal(mem.Read(ea)))
	case 0xF6:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		mem.Write(ea, c.incVal(mem.Read(ea)))
	case 0xEE:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.incVal(mem.Read(ea)))
	case 0xFE:
		c.CyclesUsed += 7
		ea, _ := c.effectiveAddress(mem, modeAbsoluteX)
		mem.Write(ea, c.incVal(mem.Read(ea)))
	case 0xE8:
		c.CyclesUsed += 2
		c.X = c.incVal(c.X)
	case 0xC8:
		c.CyclesUsed += 2
		c.Y = c.incVal(c.Y)

	// JMP
	case 0x4C:
		c.CyclesUsed += 3
		c.PC = c.fetchAbsolute(mem)
	case 0x6C:
		c.CyclesUsed += 5
		c.PC = c.indirectJMPAddress(mem)

	// JSR / RTS / RTI
	case 0x20:
		c.CyclesUsed += 6
		c.iJSR(mem)
	case 0x60:
		c.CyclesUsed += 6
		c.iRTS(mem)
	case 0x40:
		c.CyclesUsed += 6
		c.iRTI(mem)

	// LDA
	case 0xA9:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.loadA(mem.Read(ea))
	case 0xA5:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.loadA(mem.Read(ea))
	case 0xB5:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		c.loadA(mem.Read(ea))
	case 0xAD:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.loadA(mem.Read(ea))
	case 0xBD:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteX)
		c.chargeCross(cross)
		c.loadA(mem.Read(ea))
	case 0xB9:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteY)
		c.chargeCross(cross)
		c.loadA(mem.Read(ea))
	case 0xA1:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectX)
		c.loadA(mem.Read(ea))
	case 0xB1:
		c.CyclesUsed += 5
		ea, cross := c.effectiveAddress(mem, modeIndirectY)
		c.chargeCross(cross)
		c.loadA(mem.Read(ea))

	// LDX
	case 0xA2:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.loadX(mem.Read(ea))
	case 0xA6:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.loadX(mem.Read(ea))
	case 0xB6:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageY)
		c.loadX(mem.Read(ea))
	case 0xAE:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.loadX(mem.Read(ea))
	case 0xBE:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteY)
		c.chargeCross(cross)
		c.loadX(mem.Read(ea))

	// LDY
	case 0xA0:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.loadY(mem.Read(ea))
	case 0xA4:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.loadY(mem.Read(ea))
	case 0xB4:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		c.loadY(mem.Read(ea))
	case 0xAC:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.loadY(mem.Read(ea))
	case 0xBC:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteX)
		c.chargeCross(cross)
		c.loadY(mem.Read(ea))

	// LSR
	case 0x4A:
		c.CyclesUsed += 2
		c.A = c.lsrVal(c.A)
	case 0x46:
		c.CyclesUsed += 5
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.lsrVal(mem.Read(ea)))
	case 0x56:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		mem.Write(ea, c.lsrVal(mem.Read(ea)))
	case 0x4E:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.lsrVal(mem.Read(ea)))
	case 0x5E:
		c.CyclesUsed += 7
		ea, _ := c.effectiveAddress(mem, modeAbsoluteX)
		mem.Write(ea, c.lsrVal(mem.Read(ea)))

	// NOP
	case 0xEA:
		c.CyclesUsed += 2

	// ORA
	case 0x09:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.loadA(c.A | mem.Read(ea))
	case 0x05:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.loadA(c.A | mem.Read(ea))
	case 0x15:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		c.loadA(c.A | mem.Read(ea))
	case 0x0D:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.loadA(c.A | mem.Read(ea))
	case 0x1D:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteX)
		c.chargeCross(cross)
		c.loadA(c.A | mem.Read(ea))
	case 0x19:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteY)
		c.chargeCross(cross)
		c.loadA(c.A | mem.Read(ea))
	case 0x01:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectX)
		c.loadA(c.A | mem.Read(ea))
	case 0x11:
		c.CyclesUsed += 5
		ea, cross := c.effectiveAddress(mem, modeIndirectY)
		c.chargeCross(cross)
		c.loadA(c.A | mem.Read(ea))

	// PHA / PHP / PLA / PLP
	case 0x48:
		c.CyclesUsed += 3
		c.push(mem, c.A)
	case 0x08:
		c.CyclesUsed += 3
		c.push(mem, c.P|FlagReserved|FlagBreak)
	case 0x68:
		c.CyclesUsed += 4
		c.loadA(c.pull(mem))
	case 0x28:
		c.CyclesUsed += 4
		pulled := c.pull(mem)
		c.P = (pulled &^ (FlagBreak | FlagReserved)) | (c.P & (FlagBreak | FlagReserved))

	// ROL
	case 0x2A:
		c.CyclesUsed += 2
		c.A = c.rolVal(c.A)
	case 0x26:
		c.CyclesUsed += 5
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.rolVal(mem.Read(ea)))
	case 0x36:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		mem.Write(ea, c.rolVal(mem.Read(ea)))
	case 0x2E:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.rolVal(mem.Read(ea)))
	case 0x3E:
		c.CyclesUsed += 7
		ea, _ := c.effectiveAddress(mem, modeAbsoluteX)
		mem.Write(ea, c.rolVal(mem.Read(ea)))

	// ROR
	case 0x6A:
		c.CyclesUsed += 2
		c.A = c.rorVal(c.A)
	case 0x66:
		c.CyclesUsed += 5
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.rorVal(mem.Read(ea)))
	case 0x76:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		mem.Write(ea, c.rorVal(mem.Read(ea)))
	case 0x6E:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.rorVal(mem.Read(ea)))
	case 0x7E:
		c.CyclesUsed += 7
		ea, _ := c.effectiveAddress(mem, modeAbsoluteX)
		mem.Write(ea, c.rorVal(mem.Read(ea)))

	// SBC
	case 0xE9:
		c.CyclesUsed += 2
		ea, _ := c.effectiveAddress(mem, modeImmediate)
		c.sbc(mem.Read(ea))
	case 0xE5:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		c.sbc(mem.Read(ea))
	case 0xF5:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		c.sbc(mem.Read(ea))
	case 0xED:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		c.sbc(mem.Read(ea))
	case 0xFD:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteX)
		c.chargeCross(cross)
		c.sbc(mem.Read(ea))
	case 0xF9:
		c.CyclesUsed += 4
		ea, cross := c.effectiveAddress(mem, modeAbsoluteY)
		c.chargeCross(cross)
		c.sbc(mem.Read(ea))
	case 0xE1:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectX)
		c.sbc(mem.Read(ea))
	case 0xF1:
		c.CyclesUsed += 5
		ea, cross := c.effectiveAddress(mem, modeIndirectY)
		c.chargeCross(cross)
		c.sbc(mem.Read(ea))

	// STA
	case 0x85:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.A)
	case 0x95:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		mem.Write(ea, c.A)
	case 0x8D:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.A)
	case 0x9D:
		c.CyclesUsed += 5
		ea, _ := c.effectiveAddress(mem, modeAbsoluteX)
		mem.Write(ea, c.A)
	case 0x99:
		c.CyclesUsed += 5
		ea, _ := c.effectiveAddress(mem, modeAbsoluteY)
		mem.Write(ea, c.A)
	case 0x81:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectX)
		mem.Write(ea, c.A)
	case 0x91:
		c.CyclesUsed += 6
		ea, _ := c.effectiveAddress(mem, modeIndirectY)
		mem.Write(ea, c.A)

	// STX / STY
	case 0x86:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.X)
	case 0x96:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageY)
		mem.Write(ea, c.X)
	case 0x8E:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.X)
	case 0x84:
		c.CyclesUsed += 3
		ea, _ := c.effectiveAddress(mem, modeZeroPage)
		mem.Write(ea, c.Y)
	case 0x94:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeZeroPageX)
		mem.Write(ea, c.Y)
	case 0x8C:
		c.CyclesUsed += 4
		ea, _ := c.effectiveAddress(mem, modeAbsolute)
		mem.Write(ea, c.Y)

	// Register transfers
	case 0xAA:
		c.CyclesUsed += 2
		c.loadX(c.A)
	case 0xA8:
		c.CyclesUsed += 2
		c.loadY(c.A)
	case 0xBA:
		c.CyclesUsed += 2
		c.loadX(c.SP)
	case 0x8A:
		c.CyclesUsed += 2
		c.loadA(c.X)
	case 0x9A:
		c.CyclesUsed += 2
		c.SP = c.X
	case 0x98:
		c.CyclesUsed += 2
		c.loadA(c.Y)

	default:
		return UnknownOpcodeError{Opcode: op}
	}

	return nil
}

func (c *Chip) chargeCross(crossed bool) {
	if crossed {
		c.CyclesUsed++
	}
}

func (c *Chip) loadA(val uint8) {
	c.A = val
	c.setZN(val)
}

func (c *Chip) loadX(val uint8) {
	c.X = val
	c.setZN(val)
}

func (c *Chip) loadY(val uint8) {
	c.Y = val
	c.setZN(val)
}

func (c *Chip) incVal(val uint8) uint8 {
	val++
	c.setZN(val)
	return val
}

func (c *Chip) decVal(val uint8) uint8 {
	val--
	c.setZN(val)
	return val
}

func (c *Chip) bit(val uint8) {
	if c.A&val == 0 {
		c.P |= FlagZero
	} else {
		c.P &^= FlagZero
	}
	c.setOverflow(val&FlagOverflow != 0)
	if val&FlagNegative != 0 {
		c.P |= FlagNegative
	} else {
		c.P &^= FlagNegative
	}
}

// iBRK implements spec section 4.5's software-interrupt sequence: the
// return address pushed is PC+1 past the signature byte following the
// opcode, and the pushed status has both B and the reserved bit set.
func (c *Chip) iBRK(mem Memory) {
	c.CyclesUsed += 7
	c.PC++
	c.push(mem, uint8(c.PC>>8))
	c.push(mem, uint8(c.PC&0xFF))
	c.push(mem, c.P|FlagReserved|FlagBreak)
	c.P |= FlagInterrupt
	lo := mem.Read(IRQVector)
	hi := mem.Read(IRQVector + 1)
	c.PC = uint16(hi)<<8 | uint16(lo)
}

func (c *Chip) iJSR(mem Memory) {
	ea, _ := c.effectiveAddress(mem, modeAbsolute)
	ret := c.PC - 1
	c.push(mem, uint8(ret>>8))
	c.push(mem, uint8(ret&0xFF))
	c.PC = ea
}

func (c *Chip) iRTS(mem Memory) {
	lo := c.pull(mem)
	hi := c.pull(mem)
	c.PC = (uint16(hi)<<8 | uint16(lo)) + 1
}

func (c *Chip) iRTI(mem Memory) {
	pulled := c.pull(mem)
	c.P = (pulled &^ (FlagBreak | FlagReserved)) | (c.P & (FlagBreak | FlagReserved))
	lo := c.pull(mem)
	hi := c.pull(mem)
	c.PC = uint16(hi)<<8 | uint16(lo)
}
