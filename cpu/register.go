package cpu

import (
	"fmt"
)

// Register is a register index, V0 through VF.
type Register uint8

const (
	REG_V0 = Register(0x0)
	REG_VF = Register(0xf) // Carry flag.

	REGISTER_COUNT = 16
)

// String returns the assembler name of the register.
func (r Register) String() string {
	return fmt.Sprintf("V%X", uint8(r)&0xf)
}

// Registers is the general purpose register file.
type Registers [REGISTER_COUNT]uint8

// Get returns the value of a register.
func (reg *Registers) Get(r Register) uint8 {
	return reg[r&0xf]
}

// Set stores a value into a register.
func (reg *Registers) Set(r Register, value uint8) {
	reg[r&0xf] = value
}

// Add stores the 8-bit wrapped sum of x and y into x, then sets VF
// to 1 if the sum overflowed, or 0 otherwise.
//
// VF is written last, even when it is x or y.
func (reg *Registers) Add(x, y Register) {
	a := reg.Get(x)
	b := reg.Get(y)

	sum := uint16(a) + uint16(b)
	reg.Set(x, uint8(sum))

	if sum > 0xff {
		reg[REG_VF] = 1
	} else {
		reg[REG_VF] = 0
	}
}
