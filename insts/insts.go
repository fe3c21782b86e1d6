// Package insts provides RV32I instruction definitions and decoding.
//
// This package implements decoding of RISC-V machine code into structured
// instruction representations. It supports the RV32I base integer subset:
//   - R-type: ADD, SUB
//   - I-type: ADDI, LW
//   - S-type: SW
//
// Usage:
//
//	decoder := insts.NewDecoder()
//	inst, err := decoder.Decode(0x00500093) // ADDI x1, x0, 5
//	if err != nil {
//		// not one of the supported encodings
//	}
//	fmt.Printf("Op: %v, Rd: %d, Rs1: %d, Imm: %d\n", inst.Op, inst.Rd, inst.Rs1, inst.Imm)
package insts

// Op represents an RV32I opcode.
type Op uint8

// RV32I opcodes.
const (
	OpUnknown Op = iota
	OpADD
	OpSUB
	OpADDI
	OpLW
	OpSW
)

// String returns the assembler mnemonic for the opcode.
func (op Op) String() string {
	switch op {
	case OpADD:
		return "add"
	case OpSUB:
		return "sub"
	case OpADDI:
		return "addi"
	case OpLW:
		return "lw"
	case OpSW:
		return "sw"
	default:
		return "unknown"
	}
}

// Format represents an instruction encoding format.
type Format uint8

// Instruction formats.
const (
	FormatUnknown Format = iota
	FormatR              // Register-register (rd, rs1, rs2)
	FormatI              // Register-immediate (rd, rs1, imm12)
	FormatS              // Store (rs1, rs2, split imm12)
)

// Instruction represents a decoded RV32I instruction.
//
// Each format populates only the fields it carries: R-type leaves Imm
// zero, I-type leaves Rs2 zero, and S-type leaves Rd zero.
type Instruction struct {
	Op     Op     // Operation code
	Format Format // Encoding format

	Rd  uint8 // Destination register
	Rs1 uint8 // First source register
	Rs2 uint8 // Second source register (R-type and S-type)

	// Imm is the 12-bit immediate sign-extended to 32 bits
	// (I-type and S-type).
	Imm int32
}
