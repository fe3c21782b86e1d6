package emu

// ALU implements the RV32I integer arithmetic operations.
//
// All arithmetic is 32-bit two's-complement with silent wraparound;
// overflow is never an error in the base integer set.
type ALU struct {
	regFile *RegFile
}

// NewALU creates a new ALU connected to the given register file.
func NewALU(regFile *RegFile) *ALU {
	return &ALU{regFile: regFile}
}

// ADD performs rd = rs1 + rs2.
func (a *ALU) ADD(rd, rs1, rs2 uint8) {
	result := a.regFile.Read(rs1) + a.regFile.Read(rs2)
	a.regFile.Write(rd, result)
}

// SUB performs rd = rs1 - rs2.
func (a *ALU) SUB(rd, rs1, rs2 uint8) {
	result := a.regFile.Read(rs1) - a.regFile.Read(rs2)
	a.regFile.Write(rd, result)
}

// ADDI performs rd = rs1 + imm, with imm already sign-extended by the
// decoder.
func (a *ALU) ADDI(rd, rs1 uint8, imm int32) {
	result := a.regFile.Read(rs1) + uint32(imm)
	a.regFile.Write(rd, result)
}
