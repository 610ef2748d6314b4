package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

var _cpu_defines = map[string]string{
	"MEMORY_SIZE":   fmt.Sprintf("%#x", MEMORY_SIZE),
	"PROGRAM_START": fmt.Sprintf("%#x", PROGRAM_START),
	"STACK_LIMIT":   fmt.Sprintf("%v", STACK_LIMIT),
	"CARRY":         fmt.Sprintf("%#x", uint8(REG_VF)),
}

// Cpu is the execution context: memory, registers, call stack and
// program counter.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory   Memory    // Memory image.
	Register Registers // Register bank.
	Stack    Stack     // Call stack.
	Pc       uint16    // Address of the next opcode to fetch.
	Halted   bool      // Set once a halt instruction executed.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU with zeroed memory, starting at PROGRAM_START.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset(PROGRAM_START)

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers and call stack.
// - Zeros the tick counter, and leaves the halted state.
// - Sets the program counter to pc.
//
// Memory is left as is, so a loaded program survives a reset.
func (cpu *Cpu) Reset(pc uint16) {
	if cpu.Verbose {
		log.Printf("cpu: reset, pc %03x", pc)
	}

	clear(cpu.Register[:])
	cpu.Stack = Stack{}
	cpu.Pc = pc
	cpu.Halted = false
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	state := "run"
	if cpu.Halted {
		state = "halt"
	}
	text += fmt.Sprintf("% 5s: %04X\n", "pc", cpu.Pc)
	text += fmt.Sprintf("% 5s: %v\n", "state", state)
	for n, val := range cpu.Register {
		text += fmt.Sprintf("% 5s: %02X\n", Register(n).String(), val)
	}
	stack := "----"
	if cpu.Stack.Pointer > 0 {
		stack = fmt.Sprintf("%04X", cpu.Stack.Data[cpu.Stack.Pointer-1])
	}
	text += fmt.Sprintf("% 5s: %v (%d/%d)\n", "stack", stack, cpu.Stack.Pointer, STACK_LIMIT)

	return
}

// Fetch reads the opcode at the program counter.
func (cpu *Cpu) Fetch() (op Opcode, err error) {
	hi, lo, err := cpu.Memory.ReadInstruction(cpu.Pc)
	if err != nil {
		return
	}

	op = MakeOpcode(hi, lo)
	return
}

// Tick executes a single fetch, decode and execute cycle.
//
// A failing cycle leaves the CPU as it was before the cycle, with the
// program counter on the failing opcode. A halt leaves the program counter
// past the halt opcode. Ticking a halted CPU does nothing.
func (cpu *Cpu) Tick() (err error) {
	if cpu.Halted {
		return
	}

	pc := cpu.Pc

	op, err := cpu.Fetch()
	if err != nil {
		return
	}

	cpu.Pc += 2

	ins := op.Decode()
	if cpu.Verbose {
		log.Printf("%03x: %04x %v", pc, uint16(op), ins)
	}

	err = cpu.Execute(ins)
	if err != nil {
		cpu.Pc = pc
		return
	}

	cpu.Ticks++

	return
}

// Execute executes a single decoded instruction.
// The program counter is expected to already point past the instruction.
func (cpu *Cpu) Execute(ins Instruction) (err error) {
	switch ins.Kind {
	case INS_HALT:
		cpu.Halted = true
	case INS_RETURN:
		var address uint16
		address, err = cpu.Stack.Pop()
		if err != nil {
			return
		}
		cpu.Pc = address
	case INS_CALL:
		err = cpu.Stack.Push(cpu.Pc)
		if err != nil {
			return
		}
		cpu.Pc = ins.Addr
	case INS_ADD:
		cpu.Register.Add(ins.X, ins.Y)
	default:
		err = ErrUnsupported(ins.Opcode)
	}

	return
}

// Run ticks the CPU until it halts.
// If limit is positive, at most limit instructions are executed,
// after which ErrTickLimit is returned.
func (cpu *Cpu) Run(limit int) (err error) {
	for n := 0; !cpu.Halted; n++ {
		if limit > 0 && n >= limit {
			err = ErrTickLimit
			return
		}
		err = cpu.Tick()
		if err != nil {
			return
		}
	}

	return
}
