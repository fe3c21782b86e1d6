package emu

import (
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"github.com/rv32sim/rv32sim/insts"
)

// State represents the execution state of the emulator.
type State uint8

// Emulator states. StateHalted is terminal: once reached, further
// Step calls are no-ops.
const (
	StateRunning State = iota
	StateHalted
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	default:
		return "unknown"
	}
}

// Emulator executes RV32I instructions functionally.
//
// Each emulator owns its register file, memory, and program counter
// outright; independent instances share nothing, so many can coexist
// in one process.
type Emulator struct {
	regFile *RegFile
	memory  *Memory
	decoder *insts.Decoder

	// Execution units
	alu *ALU
	lsu *LoadStoreUnit

	state State

	// imageEnd is one past the last loaded program byte. Fetching at
	// or beyond it halts the run.
	imageEnd uint32

	// Per-cycle trace output, nil when disabled.
	trace io.Writer

	instructionCount uint64
	maxInstructions  uint64 // 0 means no limit
}

// EmulatorOption is a functional option for configuring the Emulator.
type EmulatorOption func(*Emulator)

// WithMemorySize sets the memory capacity in bytes.
func WithMemorySize(size uint32) EmulatorOption {
	return func(e *Emulator) {
		e.memory = NewMemorySized(size)
	}
}

// WithMaxInstructions sets the maximum number of instructions to
// execute. A value of 0 means no limit.
func WithMaxInstructions(max uint64) EmulatorOption {
	return func(e *Emulator) {
		e.maxInstructions = max
	}
}

// WithTrace enables a per-instruction trace on w: the PC, the raw
// word, and a dump of the decoded instruction for every cycle.
func WithTrace(w io.Writer) EmulatorOption {
	return func(e *Emulator) {
		e.trace = w
	}
}

// NewEmulator creates a new RV32I emulator in the Running state with
// zeroed registers and zero-filled memory.
func NewEmulator(opts ...EmulatorOption) *Emulator {
	e := &Emulator{
		regFile: &RegFile{},
		memory:  NewMemory(),
		decoder: insts.NewDecoder(),
		state:   StateRunning,
	}

	// Apply options first (may replace the memory)
	for _, opt := range opts {
		opt(e)
	}

	// Create execution units
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)

	return e
}

// RegFile returns the emulator's register file.
func (e *Emulator) RegFile() *RegFile {
	return e.regFile
}

// Memory returns the emulator's memory.
func (e *Emulator) Memory() *Memory {
	return e.memory
}

// State returns the current execution state.
func (e *Emulator) State() State {
	return e.state
}

// InstructionCount returns the number of instructions executed.
func (e *Emulator) InstructionCount() uint64 {
	return e.instructionCount
}

// LoadProgram copies a flat program image into memory at base and
// points the PC at it. Fetching past the end of the image halts the
// run.
func (e *Emulator) LoadProgram(base uint32, image []byte) error {
	if err := e.memory.LoadImage(base, image); err != nil {
		return err
	}
	e.regFile.PC = base
	e.imageEnd = base + uint32(len(image))
	return nil
}

// LoadSegment copies additional program data into memory without
// moving the PC, extending the halt bound if the segment ends past
// it. Multi-segment (ELF) programs load each segment this way and set
// the PC to the entry point afterwards.
func (e *Emulator) LoadSegment(addr uint32, data []byte) error {
	if err := e.memory.LoadImage(addr, data); err != nil {
		return err
	}
	if end := addr + uint32(len(data)); end > e.imageEnd {
		e.imageEnd = end
	}
	return nil
}

// Reset returns the emulator to its initial state: zeroed registers,
// zero-filled memory of the same capacity, no loaded program.
func (e *Emulator) Reset() {
	e.regFile = &RegFile{}
	e.memory = NewMemorySized(e.memory.Size())
	e.state = StateRunning
	e.imageEnd = 0
	e.instructionCount = 0

	// Recreate execution units
	e.alu = NewALU(e.regFile)
	e.lsu = NewLoadStoreUnit(e.regFile, e.memory)
}

// Step executes a single instruction: fetch, decode, execute, then
// advance the PC by 4. Once halted it does nothing.
//
// Both failure modes are fatal to the run: the emulator transitions
// to Halted and the error identifies the faulting PC.
func (e *Emulator) Step() error {
	if e.state == StateHalted {
		return nil
	}

	if e.maxInstructions > 0 && e.instructionCount >= e.maxInstructions {
		e.state = StateHalted
		return fmt.Errorf("instruction limit reached (%d)", e.maxInstructions)
	}

	pc := e.regFile.PC

	// Running past the loaded image is the termination condition: the
	// subset has no branch or halt opcode to end a program with.
	if pc >= e.imageEnd {
		e.state = StateHalted
		return nil
	}

	// 1. Fetch
	word, err := e.memory.Fetch32(pc)
	if err != nil {
		e.state = StateHalted
		return e.stampPC(err)
	}

	// An all-zero word never encodes a valid instruction; treat it as
	// the end-of-program sentinel so zero-padded image tails terminate
	// cleanly instead of faulting.
	if word == 0 {
		e.state = StateHalted
		return nil
	}

	// 2. Decode
	inst, err := e.decoder.Decode(word)
	if err != nil {
		e.state = StateHalted
		return &IllegalInstructionError{PC: pc, Word: word}
	}

	if e.trace != nil {
		fmt.Fprintf(e.trace, "PC=0x%08X word=0x%08X\n%s", pc, word, spew.Sdump(inst))
	}

	// 3. Execute
	if err := e.execute(inst); err != nil {
		e.state = StateHalted
		return e.stampPC(err)
	}

	// None of the five opcodes alter control flow, so advancement is
	// always sequential. Advancing only after a successful execute
	// leaves the PC pointing at the faulting word on error.
	e.regFile.PC = pc + 4
	e.instructionCount++

	return nil
}

// Run executes instructions until the emulator halts or a fatal error
// occurs. The final architectural state stays available through
// RegFile and Memory either way.
func (e *Emulator) Run() error {
	for e.state == StateRunning {
		if err := e.Step(); err != nil {
			return err
		}
	}
	return nil
}

// execute dispatches a decoded instruction to its execution unit.
func (e *Emulator) execute(inst *insts.Instruction) error {
	switch inst.Op {
	case insts.OpADD:
		e.alu.ADD(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpSUB:
		e.alu.SUB(inst.Rd, inst.Rs1, inst.Rs2)
	case insts.OpADDI:
		e.alu.ADDI(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpLW:
		return e.lsu.LW(inst.Rd, inst.Rs1, inst.Imm)
	case insts.OpSW:
		return e.lsu.SW(inst.Rs1, inst.Rs2, inst.Imm)
	default:
		// The decoder rejects everything else before we get here.
		return &IllegalInstructionError{PC: e.regFile.PC}
	}
	return nil
}

// stampPC fills the program counter into a memory fault surfacing
// from this step.
func (e *Emulator) stampPC(err error) error {
	var fault *MemoryFaultError
	if errors.As(err, &fault) {
		fault.PC = e.regFile.PC
	}
	return err
}
