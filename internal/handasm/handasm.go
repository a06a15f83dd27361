// Package handasm loads short hand-assembled programs from a plain-text
// listing: one line per row, each row an address followed by the opcode
// and operand bytes for that instruction, all in hex. It exists so tests
// and the interactive monitor can inject small machine-code fragments
// without shelling out to a real assembler.
package handasm

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Row is one decoded line: the address the bytes should be loaded at, and
// the bytes themselves.
type Row struct {
	Addr  uint16
	Bytes []uint8
}

// Parse reads a listing of "ADDR OP A1 A2 ..." lines, one instruction's
// raw bytes per line, all fields hex without a leading "0x" or "$". Blank
// lines and lines starting with "#" are ignored.
func Parse(r io.Reader) ([]Row, error) {
	var rows []Row
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("handasm: line %d: need an address and at least one byte", lineNo)
		}
		addr, err := strconv.ParseUint(fields[0], 16, 16)
		if err != nil {
			return nil, fmt.Errorf("handasm: line %d: bad address %q: %w", lineNo, fields[0], err)
		}
		row := Row{Addr: uint16(addr)}
		for _, f := range fields[1:] {
			b, err := strconv.ParseUint(f, 16, 8)
			if err != nil {
				return nil, fmt.Errorf("handasm: line %d: bad byte %q: %w", lineNo, f, err)
			}
			row.Bytes = append(row.Bytes, uint8(b))
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("handasm: %w", err)
	}
	return rows, nil
}

// Writer is the subset of bus.Bus that loading a listing needs.
type Writer interface {
	Write(addr uint16, val uint8)
}

// Load parses listing and writes every row's bytes into mem at their
// addresses, each row's bytes laid out contiguously starting at Row.Addr.
func Load(r io.Reader, mem Writer) error {
	rows, err := Parse(r)
	if err != nil {
		return err
	}
	for _, row := range rows {
		addr := row.Addr
		for _, b := range row.Bytes {
			mem.Write(addr, b)
			addr++
		}
	}
	return nil
}
