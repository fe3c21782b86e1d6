// Package main provides the rv32sim command line interface.
//
// rv32sim runs RV32I machine code (flat images or RISC-V ELF
// executables) in the functional emulator and reports the final
// architectural state.
package main

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/rv32sim/rv32sim/emu"
	"github.com/rv32sim/rv32sim/loader"
)

var (
	ELFFlag = &cli.BoolFlag{
		Name:  "elf",
		Usage: "treat the input as a 32-bit RISC-V ELF executable instead of a flat image",
	}
	BaseFlag = &cli.UintFlag{
		Name:  "base",
		Usage: "load address for flat images",
		Value: loader.DefaultBase,
	}
	MemSizeFlag = &cli.UintFlag{
		Name:  "mem-size",
		Usage: "memory capacity in bytes",
		Value: emu.DefaultMemorySize,
	}
	MaxInstructionsFlag = &cli.Uint64Flag{
		Name:  "max-instructions",
		Usage: "stop after executing this many instructions (0 = no limit)",
	}
	TraceFlag = &cli.BoolFlag{
		Name:  "trace",
		Usage: "print a per-instruction trace to stderr",
	}
	DumpMemFlag = &cli.StringFlag{
		Name:  "dump-mem",
		Usage: "write the final memory image to this file",
	}
	CPUProfileFlag = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "profile CPU usage",
	}
)

func main() {
	app := cli.NewApp()
	app.Name = "rv32sim"
	app.Usage = "RV32I subset emulator"
	app.Description = "Executes RV32I machine code (add, sub, addi, lw, sw) " +
		"against a simulated register file and memory, then prints the final register state."
	app.ArgsUsage = "<program>"
	app.Flags = []cli.Flag{
		ELFFlag,
		BaseFlag,
		MemSizeFlag,
		MaxInstructionsFlag,
		TraceFlag,
		DumpMemFlag,
		CPUProfileFlag,
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "rv32sim: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx *cli.Context) error {
	if ctx.NArg() < 1 {
		return fmt.Errorf("missing program path")
	}
	if ctx.Bool(CPUProfileFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}

	programPath := ctx.Args().First()

	var prog *loader.Program
	var err error
	if ctx.Bool(ELFFlag.Name) {
		prog, err = loader.LoadELF(programPath)
	} else {
		prog, err = loader.LoadImage(programPath, uint32(ctx.Uint(BaseFlag.Name)))
	}
	if err != nil {
		return fmt.Errorf("failed to load program: %w", err)
	}

	opts := []emu.EmulatorOption{
		emu.WithMemorySize(uint32(ctx.Uint(MemSizeFlag.Name))),
		emu.WithMaxInstructions(ctx.Uint64(MaxInstructionsFlag.Name)),
	}
	if ctx.Bool(TraceFlag.Name) {
		opts = append(opts, emu.WithTrace(os.Stderr))
	}

	emulator := emu.NewEmulator(opts...)
	for _, seg := range prog.Segments {
		if err := emulator.LoadSegment(seg.Addr, seg.Data); err != nil {
			return fmt.Errorf("failed to load segment at 0x%X: %w", seg.Addr, err)
		}
	}
	emulator.RegFile().PC = prog.EntryPoint

	runErr := emulator.Run()

	// The final architectural state is reported whether the run
	// halted normally or died on a fault.
	printState(emulator)

	if path := ctx.String(DumpMemFlag.Name); path != "" {
		if err := os.WriteFile(path, emulator.Memory().Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to dump memory: %w", err)
		}
	}

	return runErr
}

// printState prints the register file and run statistics.
func printState(emulator *emu.Emulator) {
	regFile := emulator.RegFile()

	fmt.Printf("State: %s\n", emulator.State())
	fmt.Printf("PC: 0x%08X\n", regFile.PC)
	fmt.Printf("Instructions executed: %d\n", emulator.InstructionCount())
	for i := 0; i < 32; i += 4 {
		for j := i; j < i+4; j++ {
			fmt.Printf("x%-2d=0x%08X  ", j, regFile.Read(uint8(j)))
		}
		fmt.Println()
	}
}
