package cpu

import (
	"fmt"
)

// InstructionKind is the decoded instruction type.
type InstructionKind int

//go:generate go tool stringer -linecomment -type=InstructionKind
const (
	INS_UNSUPPORTED = InstructionKind(0) // .word
	INS_HALT        = InstructionKind(1) // halt
	INS_RETURN      = InstructionKind(2) // ret
	INS_CALL        = InstructionKind(3) // call
	INS_ADD         = InstructionKind(4) // add
)

// Opcode classes, the top nibble of the opcode word.
const (
	CLASS_SYS  = 0x0
	CLASS_CALL = 0x2
	CLASS_ALU  = 0x8
)

// ALU_ADD is the 8XY4 sub-opcode.
const ALU_ADD = 0x4

// ADDRESS_MASK selects the 12-bit NNN address field.
const ADDRESS_MASK = 0x0fff

// Opcode is a 16-bit instruction word.
type Opcode uint16

// MakeOpcode combines two memory bytes, most significant first.
func MakeOpcode(hi, lo byte) Opcode {
	return Opcode(uint16(hi)<<8 | uint16(lo))
}

// MakeCodeHalt creates a halt instruction.
func MakeCodeHalt() Opcode {
	return Opcode(0x0000)
}

// MakeCodeReturn creates a return from subroutine instruction.
func MakeCodeReturn() Opcode {
	return Opcode(0x00ee)
}

// MakeCodeCall creates a call instruction to a 12-bit address.
func MakeCodeCall(address uint16) Opcode {
	return Opcode((CLASS_CALL << 12) | (address & ADDRESS_MASK))
}

// MakeCodeAdd creates an instruction adding register y into register x.
func MakeCodeAdd(x, y Register) Opcode {
	return Opcode((CLASS_ALU << 12) | (uint16(x&0xf) << 8) | (uint16(y&0xf) << 4) | ALU_ADD)
}

// Bytes returns the memory representation of the opcode.
func (op Opcode) Bytes() (hi, lo byte) {
	hi = byte(op >> 8)
	lo = byte(op)
	return
}

// Fields splits the opcode into its class, x, y and d nibbles,
// and the 12-bit address field.
func (op Opcode) Fields() (class, x, y, d uint8, nnn uint16) {
	word := uint16(op)
	class = uint8((word & 0xf000) >> 12)
	x = uint8((word & 0x0f00) >> 8)
	y = uint8((word & 0x00f0) >> 4)
	d = uint8((word & 0x000f) >> 0)
	nnn = word & ADDRESS_MASK
	return
}

// Instruction is a decoded opcode.
type Instruction struct {
	Kind   InstructionKind
	X      Register // add: destination
	Y      Register // add: source
	Addr   uint16   // call: target
	Opcode Opcode   // Raw opcode word.
}

// Decode decodes the opcode into an Instruction.
// Opcodes outside of the instruction set decode as INS_UNSUPPORTED.
func (op Opcode) Decode() (ins Instruction) {
	class, x, y, d, nnn := op.Fields()

	ins.Opcode = op

	switch {
	case class == CLASS_SYS && x == 0 && y == 0 && d == 0:
		ins.Kind = INS_HALT
	case class == CLASS_SYS && x == 0 && y == 0xe && d == 0xe:
		ins.Kind = INS_RETURN
	case class == CLASS_CALL:
		ins.Kind = INS_CALL
		ins.Addr = nnn
	case class == CLASS_ALU && d == ALU_ADD:
		ins.Kind = INS_ADD
		ins.X = Register(x)
		ins.Y = Register(y)
	default:
		ins.Kind = INS_UNSUPPORTED
	}

	return
}

// String returns the assembly language representation of the opcode.
func (op Opcode) String() string {
	return op.Decode().String()
}

// String returns the assembly language representation of this instruction.
func (ins Instruction) String() (out string) {
	switch ins.Kind {
	case INS_HALT, INS_RETURN:
		out = ins.Kind.String()
	case INS_CALL:
		out = fmt.Sprintf("%v $%03X", ins.Kind, ins.Addr)
	case INS_ADD:
		out = fmt.Sprintf("%v %v, %v", ins.Kind, ins.X, ins.Y)
	default:
		out = fmt.Sprintf("%v $%04X", INS_UNSUPPORTED, uint16(ins.Opcode))
	}

	return
}
