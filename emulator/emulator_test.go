package emulator

import (
	"errors"
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/io"
)

func TestEmulator(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	assert.False(emu.Verbose)
	assert.NotNil(emu.Cpu)
	assert.NotNil(emu.Program)
	assert.Equal(POLICY_ABORT, emu.Unsupported)
	assert.Equal("abort", emu.Unsupported.String())
	assert.Equal("skip", POLICY_SKIP.String())
	assert.Equal(uint16(cpu.PROGRAM_START), emu.Origin)
}

func TestEmulatorDefines(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.MaxTicks = 500

	defines := maps.Collect(emu.Defines())
	assert.Equal("500", defines["TICK_LIMIT"])
	assert.Equal("0x1000", defines["MEMORY_SIZE"])
	assert.Equal("0xf", defines["CARRY"])
}

func doAssemble(emu *Emulator, program []string, t *testing.T) {
	asm := &cpu.Assembler{Origin: cpu.PROGRAM_START}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	if err != nil {
		t.Fatal(err)
	}
	emu.Program = prog

	err = emu.Reset()
	if err != nil {
		t.Fatal(err)
	}
}

func doRunSingle(emu *Emulator, program []string, regs []uint8, t *testing.T) {
	assert := assert.New(t)

	doAssemble(emu, program, t)
	copy(emu.Cpu.Register[:], regs)

	for _, line := range emu.Program.Lines {
		here := program[line.LineNo-1]
		for c, op := range line.Codes {
			assert.Equal(line.Address+uint16(2*c), emu.Cpu.Pc, here)
			assert.Equal(line.LineNo, emu.LineNo(), here)
			debug := emu.Program.Debug(emu.Cpu.Pc)
			assert.Equal(op, debug.Codes[debug.Index], here)

			done, err := emu.Tick()
			if err != nil {
				t.Log(emu.Cpu.String())
				t.Fatalf("%v", err)
			}
			assert.Equal(op == cpu.MakeCodeHalt(), done, here)
		}
	}

	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
}

func doRunBranch(emu *Emulator, program []string, regs []uint8, t *testing.T) (err error) {
	doAssemble(emu, program, t)
	copy(emu.Cpu.Register[:], regs)

	return emu.Run()
}

func TestEmulatorAdd(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"; accumulate into v0",
		"add v0 v1",
		"add v0 v2",
		"add v0 v3",
		"add v0 v4",
		"halt",
	}

	doRunSingle(emu, program, []uint8{5, 10, 10, 10, 30}, t)

	assert.Equal(uint8(65), emu.Cpu.Register[0])
	assert.Equal(uint8(0), emu.Cpu.Register[0xf])
	assert.Equal(uint16(0x20a), emu.Cpu.Pc)
}

func TestEmulatorCarry(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		"add v0 v1",
		"add vf v0",
		"halt",
	}

	doRunSingle(emu, program, []uint8{0xf0, 0x20}, t)

	assert.Equal(uint8(0x10), emu.Cpu.Register[0])
	// VF + V0 = 1 + 0x10, no carry; the flag overwrites the sum.
	assert.Equal(uint8(0), emu.Cpu.Register[0xf])
}

func TestEmulatorCall(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()

	program := []string{
		".macro DOUBLE reg",
		"add reg reg",
		".endm",
		"main:   call twice",
		"        halt",
		"twice:  call double",
		"        call double",
		"        ret",
		"double: DOUBLE v0",
		"        ret",
	}

	err := doRunBranch(emu, program, []uint8{3}, t)
	assert.NoError(err)

	assert.Equal(uint8(12), emu.Cpu.Register[0])
	assert.Equal(0, emu.Cpu.Stack.Pointer)
	assert.Equal(uint16(0x204), emu.Cpu.Pc)
	assert.Equal(9, emu.Cpu.Ticks)

	// Once halted, ticks are done.
	done, err := emu.Tick()
	assert.NoError(err)
	assert.True(done)
	assert.Equal(9, emu.Cpu.Ticks)
}

func TestEmulatorUnsupported(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		".word 0x1234",
		"add v0 v1",
		".word 0xffff",
		"halt",
	}

	emu := NewEmulator()
	err := doRunBranch(emu, program, []uint8{0, 2}, t)

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(1, runtime.LineNo)
	assert.Equal(uint16(0x200), runtime.Pc)

	var unsupported cpu.ErrUnsupported
	assert.True(errors.As(err, &unsupported))
	assert.Equal(cpu.ErrUnsupported(0x1234), unsupported)
	assert.Equal(uint16(0x200), emu.Cpu.Pc)
	assert.Equal(uint8(0), emu.Cpu.Register[0])

	emu = NewEmulator()
	emu.Unsupported = POLICY_SKIP
	err = doRunBranch(emu, program, []uint8{0, 2}, t)
	assert.NoError(err)
	assert.Equal(uint8(2), emu.Cpu.Register[0])
	assert.Equal(2, emu.Skipped)
	assert.Equal(4, emu.Cpu.Ticks)
	assert.Equal(uint16(0x208), emu.Cpu.Pc)
}

func TestEmulatorStackOverflow(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	err := doRunBranch(emu, []string{"halt", "recurse: call recurse"}, nil, t)
	assert.NoError(err)

	emu.Cpu.Reset(0x202)
	err = emu.Run()
	assert.ErrorIs(err, cpu.ErrStackOverflow)

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(2, runtime.LineNo)
	assert.Equal(cpu.STACK_LIMIT, emu.Cpu.Stack.Pointer)
	assert.Equal(cpu.STACK_LIMIT, emu.Cpu.Ticks)
}

func TestEmulatorTickLimit(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.MaxTicks = 2

	program := []string{
		"add v0 v1",
		"add v0 v2",
		"add v0 v3",
		"halt",
	}

	err := doRunBranch(emu, program, []uint8{5, 10, 10, 10}, t)
	assert.ErrorIs(err, cpu.ErrTickLimit)
	assert.Equal(2, emu.Cpu.Ticks)
	assert.Equal(uint8(25), emu.Cpu.Register[0])

	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(3, runtime.LineNo)
}

func TestEmulatorRom(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom = &io.Rom{Data: []byte{0x80, 0x14, 0x00, 0x00}}
	emu.Origin = 0x300

	assert.NoError(emu.Reset())
	assert.Equal(uint16(0x300), emu.Cpu.Pc)
	assert.Equal(0, emu.LineNo())

	ins, err := emu.Instruction()
	assert.NoError(err)
	assert.Equal(cpu.INS_ADD, ins.Kind)
	assert.Equal("add V0, V1", ins.String())

	emu.Cpu.Register[1] = 4
	assert.NoError(emu.Run())
	assert.Equal(uint8(4), emu.Cpu.Register[0])
	assert.Equal(uint16(0x304), emu.Cpu.Pc)

	// Unsupported opcode in a raw image has no line.
	emu.Rom = &io.Rom{Data: []byte{0x12, 0x34}}
	assert.NoError(emu.Reset())
	err = emu.Run()
	var runtime *ErrRuntime
	assert.True(errors.As(err, &runtime))
	assert.Equal(0, runtime.LineNo)
	assert.Contains(err.Error(), "300")

	// Image does not fit
	emu.Origin = cpu.MEMORY_SIZE - 1
	err = emu.Reset()
	assert.ErrorIs(err, cpu.ErrOutOfBounds(0))
}

func TestEmulatorRomProgram(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Rom = &io.Rom{Data: []byte{0x00, 0xee}}
	emu.Origin = 0x400

	// The program calls into the image.
	err := doRunBranch(emu, []string{"call 0x400", "halt"}, nil, t)
	assert.NoError(err)
	assert.Equal(uint16(0x204), emu.Cpu.Pc)
	assert.Equal(3, emu.Cpu.Ticks)
}

func TestEmulatorNoProgram(t *testing.T) {
	assert := assert.New(t)

	emu := NewEmulator()
	emu.Program = nil

	assert.NoError(emu.Reset())
	assert.Equal(uint16(cpu.PROGRAM_START), emu.Cpu.Pc)
	assert.Equal(0, emu.LineNo())

	emu.Rom = &io.Rom{Data: []byte{0x80, 0x14, 0x00, 0x00}}
	emu.Origin = 0x300
	assert.NoError(emu.Reset())
	assert.Equal(uint16(0x300), emu.Cpu.Pc)

	emu.Cpu.Register[1] = 9
	assert.NoError(emu.Run())
	assert.Equal(uint8(9), emu.Cpu.Register[0])
	assert.Equal(0, emu.LineNo())
}
