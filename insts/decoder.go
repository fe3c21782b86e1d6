package insts

import "fmt"

// RV32I major opcode field values (bits [6:0]).
const (
	opcodeLoad  = 0x03 // LW
	opcodeOpImm = 0x13 // ADDI
	opcodeStore = 0x23 // SW
	opcodeOp    = 0x33 // ADD, SUB
)

// funct3/funct7 selectors within a major opcode.
const (
	funct3ADDSUB = 0x0
	funct3ADDI   = 0x0
	funct3LW     = 0x2
	funct3SW     = 0x2

	funct7ADD = 0x00
	funct7SUB = 0x20
)

// IllegalEncodingError reports an instruction word whose opcode/funct
// fields do not match any supported encoding.
type IllegalEncodingError struct {
	Word uint32
}

func (e *IllegalEncodingError) Error() string {
	return fmt.Sprintf("illegal instruction encoding 0x%08X", e.Word)
}

// Decoder decodes RV32I machine code into instructions.
type Decoder struct{}

// NewDecoder creates a new RV32I instruction decoder.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Decode decodes a 32-bit RV32I instruction word.
//
// Decoding is a pure function of the word: it never consults CPU state,
// and identical words always yield identical results. Words outside the
// supported subset fail with *IllegalEncodingError.
func (d *Decoder) Decode(word uint32) (*Instruction, error) {
	switch word & 0x7F {
	case opcodeOp:
		return d.decodeRType(word)
	case opcodeOpImm, opcodeLoad:
		return d.decodeIType(word)
	case opcodeStore:
		return d.decodeSType(word)
	}

	return nil, &IllegalEncodingError{Word: word}
}

// decodeRType decodes register-register instructions (ADD, SUB).
// Format: funct7 | rs2 | rs1 | funct3 | rd | 0110011
func (d *Decoder) decodeRType(word uint32) (*Instruction, error) {
	if funct3(word) != funct3ADDSUB {
		return nil, &IllegalEncodingError{Word: word}
	}

	inst := &Instruction{
		Format: FormatR,
		Rd:     rd(word),
		Rs1:    rs1(word),
		Rs2:    rs2(word),
	}

	switch funct7(word) {
	case funct7ADD:
		inst.Op = OpADD
	case funct7SUB:
		inst.Op = OpSUB
	default:
		return nil, &IllegalEncodingError{Word: word}
	}

	return inst, nil
}

// decodeIType decodes register-immediate instructions (ADDI, LW).
// Format: imm[11:0] | rs1 | funct3 | rd | opcode
func (d *Decoder) decodeIType(word uint32) (*Instruction, error) {
	inst := &Instruction{
		Format: FormatI,
		Rd:     rd(word),
		Rs1:    rs1(word),
		Imm:    signExtend12(word >> 20),
	}

	switch {
	case word&0x7F == opcodeOpImm && funct3(word) == funct3ADDI:
		inst.Op = OpADDI
	case word&0x7F == opcodeLoad && funct3(word) == funct3LW:
		inst.Op = OpLW
	default:
		return nil, &IllegalEncodingError{Word: word}
	}

	return inst, nil
}

// decodeSType decodes store instructions (SW).
// Format: imm[11:5] | rs2 | rs1 | funct3 | imm[4:0] | 0100011
func (d *Decoder) decodeSType(word uint32) (*Instruction, error) {
	if funct3(word) != funct3SW {
		return nil, &IllegalEncodingError{Word: word}
	}

	imm := (word>>25)<<5 | (word>>7)&0x1F

	return &Instruction{
		Op:     OpSW,
		Format: FormatS,
		Rs1:    rs1(word),
		Rs2:    rs2(word),
		Imm:    signExtend12(imm),
	}, nil
}

// rd extracts the destination register field, bits [11:7].
func rd(word uint32) uint8 {
	return uint8((word >> 7) & 0x1F)
}

// rs1 extracts the first source register field, bits [19:15].
func rs1(word uint32) uint8 {
	return uint8((word >> 15) & 0x1F)
}

// rs2 extracts the second source register field, bits [24:20].
func rs2(word uint32) uint8 {
	return uint8((word >> 20) & 0x1F)
}

// funct3 extracts bits [14:12].
func funct3(word uint32) uint32 {
	return (word >> 12) & 0x7
}

// funct7 extracts bits [31:25].
func funct7(word uint32) uint32 {
	return (word >> 25) & 0x7F
}

// signExtend12 sign-extends a 12-bit immediate to 32 bits. Both the
// I-type and S-type decoders funnel through here so the two encodings
// cannot drift apart.
func signExtend12(imm uint32) int32 {
	return int32(imm<<20) >> 20
}
