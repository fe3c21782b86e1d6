package insts_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/rv32sim/rv32sim/insts"
)

var _ = Describe("Decoder", func() {
	var decoder *insts.Decoder

	BeforeEach(func() {
		decoder = insts.NewDecoder()
	})

	Describe("R-type - Add/Sub", func() {
		// ADD x3, x1, x2 -> 0x002081B3
		// Encoding: funct7=0x00, rs2=2, rs1=1, funct3=0, rd=3, opcode=0x33
		It("should decode ADD x3, x1, x2", func() {
			inst, err := decoder.Decode(0x002081B3)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpADD))
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rd).To(Equal(uint8(3)))
			Expect(inst.Rs1).To(Equal(uint8(1)))
			Expect(inst.Rs2).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// SUB x5, x6, x7 -> 0x407302B3
		// Encoding: funct7=0x20, rs2=7, rs1=6, funct3=0, rd=5, opcode=0x33
		It("should decode SUB x5, x6, x7", func() {
			inst, err := decoder.Decode(0x407302B3)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpSUB))
			Expect(inst.Format).To(Equal(insts.FormatR))
			Expect(inst.Rd).To(Equal(uint8(5)))
			Expect(inst.Rs1).To(Equal(uint8(6)))
			Expect(inst.Rs2).To(Equal(uint8(7)))
		})

		// funct7=0x01 selects MUL from the M extension, which is not
		// part of the subset. MUL x1, x2, x3 -> 0x023100B3
		It("should reject an R-type word with unsupported funct7", func() {
			inst, err := decoder.Decode(0x023100B3)

			Expect(inst).To(BeNil())
			var illegal *insts.IllegalEncodingError
			Expect(err).To(BeAssignableToTypeOf(illegal))
			Expect(err.(*insts.IllegalEncodingError).Word).To(Equal(uint32(0x023100B3)))
		})

		// SLL x1, x2, x3 -> 0x003110B3 (funct3=1)
		It("should reject an R-type word with unsupported funct3", func() {
			_, err := decoder.Decode(0x003110B3)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("I-type - Addi", func() {
		// ADDI x1, x0, 5 -> 0x00500093
		It("should decode ADDI x1, x0, 5", func() {
			inst, err := decoder.Decode(0x00500093)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(int32(5)))
		})

		// ADDI x1, x0, -1 -> 0xFFF00093
		// imm12=0xFFF has bit 11 set and must sign-extend to -1.
		It("should sign-extend a negative immediate", func() {
			inst, err := decoder.Decode(0xFFF00093)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpADDI))
			Expect(inst.Imm).To(Equal(int32(-1)))
		})

		// ADDI x4, x5, -2048 -> imm12=0x800, the most negative value.
		// Encoding: 0x80028213
		It("should sign-extend the minimum immediate", func() {
			inst, err := decoder.Decode(0x80028213)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Rd).To(Equal(uint8(4)))
			Expect(inst.Rs1).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(-2048)))
		})

		// ANDI x1, x2, 1 -> 0x00117093 (funct3=7)
		It("should reject an OP-IMM word with unsupported funct3", func() {
			_, err := decoder.Decode(0x00117093)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("I-type - Load", func() {
		// LW x4, 0(x0) -> 0x00002203
		It("should decode LW x4, 0(x0)", func() {
			inst, err := decoder.Decode(0x00002203)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Format).To(Equal(insts.FormatI))
			Expect(inst.Rd).To(Equal(uint8(4)))
			Expect(inst.Rs1).To(Equal(uint8(0)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// LW x1, 8(x2) -> 0x00812083
		It("should decode LW x1, 8(x2)", func() {
			inst, err := decoder.Decode(0x00812083)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Rd).To(Equal(uint8(1)))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Imm).To(Equal(int32(8)))
		})

		// LW x1, -4(x2) -> 0xFFC12083
		It("should decode LW x1, -4(x2)", func() {
			inst, err := decoder.Decode(0xFFC12083)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpLW))
			Expect(inst.Imm).To(Equal(int32(-4)))
		})

		// LB x1, 0(x0) -> 0x00000083 (funct3=0)
		It("should reject a load word with unsupported width", func() {
			_, err := decoder.Decode(0x00000083)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("S-type - Store", func() {
		// SW x3, 0(x0) -> 0x00302023
		It("should decode SW x3, 0(x0)", func() {
			inst, err := decoder.Decode(0x00302023)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Format).To(Equal(insts.FormatS))
			Expect(inst.Rs1).To(Equal(uint8(0)))
			Expect(inst.Rs2).To(Equal(uint8(3)))
			Expect(inst.Imm).To(Equal(int32(0)))
		})

		// SW x5, 8(x2) -> 0x00512423
		// imm[11:5]=0x00 in bits [31:25], imm[4:0]=0x08 in bits [11:7]
		It("should reassemble the split immediate", func() {
			inst, err := decoder.Decode(0x00512423)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(5)))
			Expect(inst.Imm).To(Equal(int32(8)))
		})

		// SW x1, -4(x2) -> 0xFE112E23
		It("should sign-extend a negative split immediate", func() {
			inst, err := decoder.Decode(0xFE112E23)

			Expect(err).NotTo(HaveOccurred())
			Expect(inst.Op).To(Equal(insts.OpSW))
			Expect(inst.Rs1).To(Equal(uint8(2)))
			Expect(inst.Rs2).To(Equal(uint8(1)))
			Expect(inst.Imm).To(Equal(int32(-4)))
		})

		// SB x1, 0(x0) -> 0x00100023 (funct3=0)
		It("should reject a store word with unsupported width", func() {
			_, err := decoder.Decode(0x00100023)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("unsupported encodings", func() {
		It("should reject an all-zero word", func() {
			inst, err := decoder.Decode(0x00000000)

			Expect(inst).To(BeNil())
			Expect(err).To(HaveOccurred())
		})

		// LUI x1, 0 -> 0x000000B7 (opcode 0x37)
		It("should reject a LUI word", func() {
			_, err := decoder.Decode(0x000000B7)

			Expect(err).To(HaveOccurred())
		})

		// JAL x0, 0 -> 0x0000006F (opcode 0x6F)
		It("should reject a JAL word", func() {
			_, err := decoder.Decode(0x0000006F)

			Expect(err).To(HaveOccurred())
		})

		It("should be deterministic for the same word", func() {
			a, errA := decoder.Decode(0x002081B3)
			b, errB := decoder.Decode(0x002081B3)

			Expect(errA).NotTo(HaveOccurred())
			Expect(errB).NotTo(HaveOccurred())
			Expect(*a).To(Equal(*b))
		})
	})
})
