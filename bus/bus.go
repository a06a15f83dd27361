// Package bus implements the segment-based address space used by the
// emulated machine: an ordered list of byte-addressable regions with
// independent read/write enables and optional per-address side-effect
// hooks, plus the stack helpers the CPU uses for push/pull.
package bus

import (
	"fmt"
	"log"
	"math/rand"
	"time"
)

// UnmappedFill is returned by Read when no enabled segment covers addr.
const UnmappedFill = uint8(0xAA)

// stackBase is the fixed page the 6502 stack pointer addresses.
const stackBase = uint16(0x0100)

// ReadHook runs after a segment satisfies a read at addr, with the byte
// that was read. It may return a replacement value (used for registers
// whose read has a side effect, such as Apple-1 KBDCR).
type ReadHook func(addr uint16, val uint8) uint8

// WriteHook runs after a segment satisfies a write at addr with val.
type WriteHook func(addr uint16, val uint8)

// Segment is a contiguous, independently enabled region of the address
// space. Segments may overlap; Bus tries them in declaration order.
type Segment struct {
	Name         string
	Start        uint16
	Data         []uint8
	ReadEnabled  bool
	WriteEnabled bool
}

// end returns the exclusive end address of the segment.
func (s *Segment) end() uint32 {
	return uint32(s.Start) + uint32(len(s.Data))
}

func (s *Segment) contains(addr uint16) bool {
	return uint32(addr) >= uint32(s.Start) && uint32(addr) < s.end()
}

// Bus is an ordered collection of Segments plus address-triggered hooks.
// It is not safe for concurrent use; the core is single-threaded (see
// spec section 5).
type Bus struct {
	Debug bool

	segments   []*Segment
	readHooks  map[uint16]ReadHook
	writeHooks map[uint16]WriteHook
}

// New returns an empty Bus. Segments are added with AddSegment in the
// order they should be probed.
func New() *Bus {
	return &Bus{
		readHooks:  map[uint16]ReadHook{},
		writeHooks: map[uint16]WriteHook{},
	}
}

// AddSegment appends seg to the probe order.
func (b *Bus) AddSegment(seg *Segment) {
	b.segments = append(b.segments, seg)
}

// AddReadHook installs a hook run after any enabled read of addr.
func (b *Bus) AddReadHook(addr uint16, hook ReadHook) {
	b.readHooks[addr] = hook
}

// AddWriteHook installs a hook run after any enabled write of addr.
func (b *Bus) AddWriteHook(addr uint16, hook WriteHook) {
	b.writeHooks[addr] = hook
}

// Read returns the byte at addr from the first read-enabled segment whose
// range contains it. If no segment matches, it logs a diagnostic and
// returns UnmappedFill, per spec section 4.1's failure semantics.
func (b *Bus) Read(addr uint16) uint8 {
	for _, seg := range b.segments {
		if !seg.ReadEnabled || !seg.contains(addr) {
			continue
		}
		val := seg.Data[addr-seg.Start]
		if hook, ok := b.readHooks[addr]; ok {
			val = hook(addr, val)
		}
		return val
	}
	if b.Debug {
		log.Printf("bus: read from unmapped address 0x%04X, returning 0x%02X", addr, UnmappedFill)
	}
	return UnmappedFill
}

// Write stores val at addr in the first write-enabled segment whose range
// contains it. Writes to addresses with no write-enabled segment are
// silently discarded, per spec section 4.1.
func (b *Bus) Write(addr uint16, val uint8) {
	for _, seg := range b.segments {
		if !seg.WriteEnabled || !seg.contains(addr) {
			continue
		}
		seg.Data[addr-seg.Start] = val
		if hook, ok := b.writeHooks[addr]; ok {
			hook(addr, val)
		}
		return
	}
	if b.Debug {
		log.Printf("bus: write to unmapped address 0x%04X dropped", addr)
	}
}

// Push stores val at the stack location addressed by sp, then returns
// sp-1 (wrapping in 8 bits). Matches decrement-after-push, the ordering
// the 6502 uses so sp always points at the next free slot.
func (b *Bus) Push(sp uint8, val uint8) uint8 {
	b.Write(stackBase|uint16(sp), val)
	if b.Debug {
		log.Printf("bus: push 0x%02X at 0x%04X", val, stackBase|uint16(sp))
	}
	return sp - 1
}

// Pull returns the byte at the stack location addressed by sp+1 (wrapping
// in 8 bits) and that incremented pointer, matching increment-before-pull.
func (b *Bus) Pull(sp uint8) (uint8, uint8) {
	sp++
	val := b.Read(stackBase | uint16(sp))
	if b.Debug {
		log.Printf("bus: pull 0x%02X from 0x%04X", val, stackBase|uint16(sp))
	}
	return val, sp
}

// NewRAMSegment allocates a read/write segment of the given size at start,
// pre-filled with pseudo-random bytes as on real hardware power-on.
func NewRAMSegment(name string, start uint16, size int) (*Segment, error) {
	if size <= 0 || size > 1<<16 {
		return nil, fmt.Errorf("invalid RAM segment size %d for %q", size, name)
	}
	data := make([]uint8, size)
	r := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i := range data {
		data[i] = uint8(r.Intn(256))
	}
	return &Segment{
		Name:         name,
		Start:        start,
		Data:         data,
		ReadEnabled:  true,
		WriteEnabled: true,
	}, nil
}

// NewROMSegment wraps data as a read-only segment at start. data is used
// directly, not copied, so callers that need an independent copy should
// pass one in.
func NewROMSegment(name string, start uint16, data []uint8) *Segment {
	return &Segment{
		Name:        name,
		Start:       start,
		Data:        data,
		ReadEnabled: true,
	}
}

// NewRegisterSegment allocates a small read/write segment meant to back
// memory-mapped peripheral registers (size is typically 1-4 bytes).
func NewRegisterSegment(name string, start uint16, size int) *Segment {
	return &Segment{
		Name:         name,
		Start:        start,
		Data:         make([]uint8, size),
		ReadEnabled:  true,
		WriteEnabled: true,
	}
}
