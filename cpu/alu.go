package cpu

// adc implements ADC, including the NMOS decimal-mode nibble-correction
// quirks: the N/V flags reflect the pre-correction nibble sum, and Z
// reflects the pure binary sum rather than the corrected BCD result. This
// mirrors real NMOS silicon behavior rather than the "intuitive" BCD
// semantics a naive implementation would produce.
func (c *Chip) adc(val uint8) {
	carryIn := uint8(0)
	if c.carrySet() {
		carryIn = 1
	}

	if c.decimalActive() {
		lowNibble := (c.A & 0x0F) + (val & 0x0F) + carryIn
		if lowNibble >= 0x0A {
			lowNibble = ((lowNibble + 0x06) & 0x0F) + 0x10
		}
		sum := uint16(c.A&0xF0) + uint16(val&0xF0) + uint16(lowNibble)
		preCorrect := (c.A & 0xF0) + (val & 0xF0) + lowNibble
		if sum >= 0xA0 {
			sum += 0x60
		}
		binSum := uint16(c.A) + uint16(val) + uint16(carryIn)

		c.setOverflow(overflowCheck(c.A, val, preCorrect))
		c.setCarry(carryFromSum(sum))
		if binSum&0xFF == 0 {
			c.P |= FlagZero
		} else {
			c.P &^= FlagZero
		}
		if preCorrect&0x80 != 0 {
			c.P |= FlagNegative
		} else {
			c.P &^= FlagNegative
		}
		c.A = uint8(sum & 0xFF)
		return
	}

	sum := uint16(c.A) + uint16(val) + uint16(carryIn)
	result := uint8(sum & 0xFF)
	c.setOverflow(overflowCheck(c.A, val, result))
	c.setCarry(carryFromSum(sum))
	c.setZN(result)
	c.A = result
}

// sbc implements SBC as subtraction via the one's-complemented operand,
// matching the hardware identity SBC(v) == ADC(~v) with carry already
// meaning "no borrow." Decimal mode applies the NMOS low/high nibble
// borrow corrections.
func (c *Chip) sbc(val uint8) {
	carryIn := uint8(0)
	if c.carrySet() {
		carryIn = 1
	}

	if c.decimalActive() {
		notVal := val
		binSum := uint16(c.A) + uint16(^notVal) + uint16(carryIn)
		result := uint8(binSum & 0xFF)
		c.setOverflow(overflowCheck(c.A, ^notVal, result))
		c.setCarry(carryFromSum(binSum))
		c.setZN(result)

		lowNibble := int16(c.A&0x0F) - int16(val&0x0F) + int16(carryIn) - 1
		if lowNibble < 0 {
			lowNibble = ((lowNibble - 0x06) & 0x0F) - 0x10
		}
		total := int16(c.A&0xF0) - int16(val&0xF0) + lowNibble
		if total < 0 {
			total -= 0x60
		}
		c.A = uint8(total & 0xFF)
		return
	}

	sum := uint16(c.A) + uint16(^val) + uint16(carryIn)
	result := uint8(sum & 0xFF)
	c.setOverflow(overflowCheck(c.A, ^val, result))
	c.setCarry(carryFromSum(sum))
	c.setZN(result)
	c.A = result
}

// decimalActive reports whether D should affect arithmetic: always false
// for the Ricoh variant, which has no decimal mode wired up at all.
func (c *Chip) decimalActive() bool {
	if c.Variant == VariantNMOSRicoh {
		return false
	}
	return c.P&FlagDecimal != 0
}

func (c *Chip) compare(reg, val uint8) {
	result := reg - val
	c.setCarry(reg >= val)
	c.setZN(result)
}

func (c *Chip) aslVal(val uint8) uint8 {
	c.setCarry(val&0x80 != 0)
	result := val << 1
	c.setZN(result)
	return result
}

func (c *Chip) lsrVal(val uint8) uint8 {
	c.setCarry(val&0x01 != 0)
	result := val >> 1
	c.setZN(result)
	return result
}

func (c *Chip) rolVal(val uint8) uint8 {
	carryIn := uint8(0)
	if c.carrySet() {
		carryIn = 1
	}
	c.setCarry(val&0x80 != 0)
	result := (val << 1) | carryIn
	c.setZN(result)
	return result
}

func (c *Chip) rorVal(val uint8) uint8 {
	carryIn := uint8(0)
	if c.carrySet() {
		carryIn = 0x80
	}
	c.setCarry(val&0x01 != 0)
	result := (val >> 1) | carryIn
	c.setZN(result)
	return result
}
