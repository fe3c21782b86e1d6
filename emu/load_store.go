package emu

// LoadStoreUnit implements the RV32I word load and store operations.
type LoadStoreUnit struct {
	regFile *RegFile
	memory  *Memory
}

// NewLoadStoreUnit creates a new LoadStoreUnit connected to the given
// register file and memory.
func NewLoadStoreUnit(regFile *RegFile, memory *Memory) *LoadStoreUnit {
	return &LoadStoreUnit{
		regFile: regFile,
		memory:  memory,
	}
}

// LW performs a 32-bit load: rd = mem[rs1 + imm]. The effective
// address wraps like any other 32-bit addition.
func (lsu *LoadStoreUnit) LW(rd, rs1 uint8, imm int32) error {
	addr := lsu.regFile.Read(rs1) + uint32(imm)
	value, err := lsu.memory.Read32(addr)
	if err != nil {
		return err
	}
	lsu.regFile.Write(rd, value)
	return nil
}

// SW performs a 32-bit store: mem[rs1 + imm] = rs2.
func (lsu *LoadStoreUnit) SW(rs1, rs2 uint8, imm int32) error {
	addr := lsu.regFile.Read(rs1) + uint32(imm)
	return lsu.memory.Write32(addr, lsu.regFile.Read(rs2))
}
