// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/internal"
	"github.com/ezrec/chip8/io"
)

//go:generate go tool stringer -linecomment -type=Policy

// Policy selects what happens when an unsupported opcode is fetched.
type Policy int

const (
	POLICY_ABORT = Policy(iota) // abort
	POLICY_SKIP                 // skip
)

// Emulator state. CPU + program listing + execution policy.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing, nil for none.

	Rom    *io.Rom // Raw image loaded before the program, if set.
	Origin uint16  // Load address of the raw image.

	MaxTicks    int    // If non-zero, the maximum number of ticks to run.
	Unsupported Policy // Handling of unsupported opcodes.
	Skipped     int    // Number of unsupported opcodes skipped since reset.
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(),
		Program: &cpu.Program{},
		Origin:  cpu.PROGRAM_START,
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	emulator_defines := map[string]string{
		"TICK_LIMIT": fmt.Sprintf("%v", emu.MaxTicks),
	}
	return internal.IterSeq2Concat(maps.All(emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Reset clears memory, loads the raw image and the program, and points the
// CPU at the entry address.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Memory.Reset()

	prog := emu.program()
	entry := prog.Entry()

	if emu.Rom != nil {
		err = emu.Rom.Load(&emu.Cpu.Memory, emu.Origin)
		if err != nil {
			return
		}
		if len(prog.Lines) == 0 {
			entry = emu.Origin
		}
	}

	err = prog.Load(&emu.Cpu.Memory)
	if err != nil {
		return
	}

	emu.Cpu.Reset(entry)
	emu.Skipped = 0

	if emu.Verbose {
		log.Printf("reset: entry %03x", entry)
	}

	return
}

// program returns the program listing, or an empty one if none is set.
func (emu *Emulator) program() *cpu.Program {
	if emu.Program == nil {
		return &cpu.Program{}
	}

	return emu.Program
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator) LineNo() int {
	dbg := emu.program().Debug(emu.Cpu.Pc)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// Instruction returns the decoded instruction at the program counter.
func (emu *Emulator) Instruction() (ins cpu.Instruction, err error) {
	op, err := emu.Cpu.Fetch()
	if err != nil {
		return
	}

	ins = op.Decode()
	return
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	if emu.Cpu.Halted {
		done = true
		return
	}

	pc := emu.Cpu.Pc
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Pc: pc, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Cpu.Ticks >= emu.MaxTicks {
		err = cpu.ErrTickLimit
		return
	}

	err = emu.Cpu.Tick()
	if errors.Is(err, cpu.ErrUnsupported(0)) && emu.Unsupported == POLICY_SKIP {
		log.Printf("%03x: %v, skipped", pc, err)
		err = nil
		emu.Cpu.Pc += 2
		emu.Cpu.Ticks++
		emu.Skipped++
	}
	if err != nil {
		return
	}

	done = emu.Cpu.Halted

	return
}

// Run ticks the emulator until the CPU halts or fails.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
