// Package romload reads a raw ROM image from disk into the byte slice a
// bus ROM segment expects.
package romload

import (
	"fmt"
	"os"
)

// MaxSize bounds a single ROM image at 64KB, the largest segment the bus
// can address.
const MaxSize = 1 << 16

// Load reads the file at path and returns its bytes. It rejects files
// larger than MaxSize, since no bus segment could ever hold more.
func Load(path string) ([]uint8, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("romload: %w", err)
	}
	if len(data) > MaxSize {
		return nil, fmt.Errorf("romload: %s is %d bytes, exceeds max ROM size %d", path, len(data), MaxSize)
	}
	return data, nil
}

// LoadAt reads path and returns a size-byte slice with the ROM
// bytes placed starting at offset, for ROMs smaller than the segment they
// populate (the remainder is left zeroed).
func LoadAt(path string, size int, offset int) ([]uint8, error) {
	data, err := Load(path)
	if err != nil {
		return nil, err
	}
	if offset < 0 || offset+len(data) > size {
		return nil, fmt.Errorf("romload: %s (%d bytes) does not fit at offset %d in a %d-byte segment", path, len(data), offset, size)
	}
	out := make([]uint8, size)
	copy(out[offset:], data)
	return out, nil
}
