// Package loader provides program image loading for the RV32I emulator.
//
// Two input formats are supported: flat binary images as produced by
// an external assembler (e.g. rvasm with -f flat), and 32-bit RISC-V
// ELF executables.
package loader

import (
	"fmt"
	"os"
)

// DefaultBase is the address flat images load at when the caller does
// not pick one.
const DefaultBase = 0x0

// Segment represents a contiguous span of program bytes to place in
// memory.
type Segment struct {
	// Addr is the address where this segment should be loaded.
	Addr uint32
	// Data contains the segment contents.
	Data []byte
	// MemSize is the size in memory (may be larger than len(Data) for
	// zero-filled BSS).
	MemSize uint32
}

// Program represents a loaded program ready for execution.
type Program struct {
	// EntryPoint is the address where execution should begin.
	EntryPoint uint32
	// Segments contains all loadable spans of the program.
	Segments []Segment
}

// LoadImage reads a flat binary image of little-endian instruction
// words and wraps it as a single-segment program at base.
func LoadImage(path string, base uint32) (*Program, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty program image: %s", path)
	}
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("image size %d is not a multiple of the 4-byte instruction size", len(data))
	}

	return &Program{
		EntryPoint: base,
		Segments: []Segment{{
			Addr:    base,
			Data:    data,
			MemSize: uint32(len(data)),
		}},
	}, nil
}
