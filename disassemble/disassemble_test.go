package disassemble

import "testing"

type flatReader [1 << 16]uint8

func (f *flatReader) Read(addr uint16) uint8 { return f[addr] }

func TestStepDecodesImmediate(t *testing.T) {
	var mem flatReader
	mem[0x0200] = 0xA9
	mem[0x0201] = 0x42

	text, n := Step(0x0200, &mem)
	if text != "LDA #$42" || n != 2 {
		t.Fatalf("Step = (%q, %d), want (\"LDA #$42\", 2)", text, n)
	}
}

func TestStepDecodesAbsoluteIndexed(t *testing.T) {
	var mem flatReader
	mem[0x0200] = 0x9D // STA $1234,X
	mem[0x0201] = 0x34
	mem[0x0202] = 0x12

	text, n := Step(0x0200, &mem)
	if text != "STA $1234,X" || n != 3 {
		t.Fatalf("Step = (%q, %d), want (\"STA $1234,X\", 3)", text, n)
	}
}

func TestStepDecodesRelativeAsAbsoluteTarget(t *testing.T) {
	var mem flatReader
	mem[0x0200] = 0xF0 // BEQ +4
	mem[0x0201] = 0x04

	text, n := Step(0x0200, &mem)
	if text != "BEQ $0206" || n != 2 {
		t.Fatalf("Step = (%q, %d), want (\"BEQ $0206\", 2)", text, n)
	}
}

func TestStepDecodesJamAndUnknown(t *testing.T) {
	var mem flatReader
	mem[0x0200] = 0x02 // JAM
	mem[0x0201] = 0x0C // no legal meaning in this table

	text, n := Step(0x0200, &mem)
	if text != "JAM" || n != 1 {
		t.Fatalf("Step(JAM) = (%q, %d)", text, n)
	}
	text, n = Step(0x0201, &mem)
	if n != 1 {
		t.Fatalf("Step(unknown) length = %d, want 1", n)
	}
	if text == "" {
		t.Fatal("expected a non-empty placeholder mnemonic for an unknown opcode")
	}
}
