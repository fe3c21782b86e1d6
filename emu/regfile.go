// Package emu provides functional RV32I emulation.
package emu

// RegFile represents the RV32I register file.
// It contains 32 general-purpose registers (x0-x31) and the program
// counter (PC).
type RegFile struct {
	// X holds general-purpose registers x0-x31. x0 is hardwired to
	// zero: the write path discards stores to it, so its stored value
	// is never observed as anything but zero.
	X [32]uint32

	// PC is the program counter, a byte offset into memory. It is
	// always a multiple of 4 while a program runs.
	PC uint32
}

// Read returns the value of a register. x0 always reads as 0.
func (r *RegFile) Read(reg uint8) uint32 {
	return r.X[reg]
}

// Write writes a value to a register. Writes to x0 are discarded.
func (r *RegFile) Write(reg uint8, value uint32) {
	if reg == 0 {
		return
	}
	r.X[reg] = value
}
