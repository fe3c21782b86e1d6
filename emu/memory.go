package emu

import (
	"encoding/binary"
	"fmt"
)

// DefaultMemorySize is the default memory capacity in bytes (4 KiB).
const DefaultMemorySize = 4 * 1024

// Memory is flat, byte-addressable storage of fixed capacity. It is
// created once per emulator and never resized.
//
// Word accessors are little-endian and enforce the strict RV32I access
// rule: the address must be 4-byte aligned and the full word must lie
// within bounds. Violations fail with *MemoryFaultError before any
// byte is touched.
type Memory struct {
	data []byte
}

// NewMemory creates a memory of DefaultMemorySize bytes.
func NewMemory() *Memory {
	return NewMemorySized(DefaultMemorySize)
}

// NewMemorySized creates a memory of the given capacity in bytes.
func NewMemorySized(size uint32) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Size returns the memory capacity in bytes.
func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Read8 returns the byte at addr, or 0 if addr is out of bounds.
// Byte access carries no alignment rule; it exists for loaders and
// post-run inspection, not for the instruction set.
func (m *Memory) Read8(addr uint32) byte {
	if addr >= m.Size() {
		return 0
	}
	return m.data[addr]
}

// Write8 stores a byte at addr. Out-of-bounds writes fail with
// *MemoryFaultError.
func (m *Memory) Write8(addr uint32, value byte) error {
	if addr >= m.Size() {
		return &MemoryFaultError{Addr: addr, Access: AccessStore}
	}
	m.data[addr] = value
	return nil
}

// Read32 loads a little-endian 32-bit word from addr.
func (m *Memory) Read32(addr uint32) (uint32, error) {
	if err := m.check(addr, AccessLoad); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.data[addr:]), nil
}

// Write32 stores a little-endian 32-bit word at addr.
func (m *Memory) Write32(addr uint32, value uint32) error {
	if err := m.check(addr, AccessStore); err != nil {
		return err
	}
	binary.LittleEndian.PutUint32(m.data[addr:], value)
	return nil
}

// Fetch32 loads an instruction word from addr. It behaves like Read32
// but faults with AccessFetch so fetch failures are distinguishable
// from data loads.
func (m *Memory) Fetch32(addr uint32) (uint32, error) {
	if err := m.check(addr, AccessFetch); err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(m.data[addr:]), nil
}

// LoadImage copies a program image into memory starting at base.
// The remainder of memory keeps its zero fill.
func (m *Memory) LoadImage(base uint32, image []byte) error {
	if uint64(base)+uint64(len(image)) > uint64(m.Size()) {
		return fmt.Errorf("image of %d bytes at base 0x%X exceeds memory capacity %d",
			len(image), base, m.Size())
	}
	copy(m.data[base:], image)
	return nil
}

// Bytes returns a copy of the full memory contents.
func (m *Memory) Bytes() []byte {
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out
}

// check validates a word access against the bounds and alignment
// rules. The uint64 arithmetic avoids wrapping for addresses near the
// top of the address space.
func (m *Memory) check(addr uint32, access AccessKind) error {
	if addr%4 != 0 || uint64(addr)+4 > uint64(m.Size()) {
		return &MemoryFaultError{Addr: addr, Access: access}
	}
	return nil
}
