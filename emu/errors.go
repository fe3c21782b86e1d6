package emu

import "fmt"

// AccessKind identifies the kind of memory access that faulted.
type AccessKind uint8

// Memory access kinds.
const (
	AccessFetch AccessKind = iota
	AccessLoad
	AccessStore
)

// String returns a human-readable name for the access kind.
func (k AccessKind) String() string {
	switch k {
	case AccessFetch:
		return "fetch"
	case AccessLoad:
		return "load"
	case AccessStore:
		return "store"
	default:
		return "unknown"
	}
}

// MemoryFaultError reports an out-of-bounds or misaligned memory
// access. The access is rejected before any byte is read or written,
// so a faulting instruction never partially mutates state.
//
// PC is zero when the fault comes straight from Memory; the Emulator
// stamps the program counter of the faulting instruction before
// surfacing the error from a run.
type MemoryFaultError struct {
	PC     uint32
	Addr   uint32
	Access AccessKind
}

func (e *MemoryFaultError) Error() string {
	return fmt.Sprintf("memory fault: %s at address 0x%08X (PC=0x%08X)",
		e.Access, e.Addr, e.PC)
}

// IllegalInstructionError reports a fetched word that does not decode
// to one of the supported RV32I instructions.
type IllegalInstructionError struct {
	PC   uint32
	Word uint32
}

func (e *IllegalInstructionError) Error() string {
	return fmt.Sprintf("illegal instruction 0x%08X at PC=0x%08X", e.Word, e.PC)
}
