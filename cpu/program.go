package cpu

import (
	"iter"
)

// Line is a line of assembled code with its source location and generated opcodes.
type Line struct {
	LineNo    int
	Address   uint16
	Words     []string
	Codes     []Opcode
	LinkLabel string
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
}

// Debug is a program line and the index of one of its opcodes.
type Debug struct {
	*Line
	Index int
}

// Debug finds the line that generated the opcode at pc.
func (prog *Program) Debug(pc uint16) (dbg Debug) {
	for n, line := range prog.Lines {
		if pc >= line.Address && int(pc) < int(line.Address)+2*len(line.Codes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: int(pc-line.Address) / 2,
			}
			break
		}
	}

	return
}

// Entry returns the address of the first assembled opcode,
// or PROGRAM_START for an empty program.
func (prog *Program) Entry() uint16 {
	for _, line := range prog.Lines {
		if len(line.Codes) > 0 {
			return line.Address
		}
	}

	return PROGRAM_START
}

// Codes iterates over every opcode and its address.
func (prog *Program) Codes() iter.Seq2[uint16, Opcode] {
	return func(yield func(address uint16, op Opcode) bool) {
		for _, line := range prog.Lines {
			for n, op := range line.Codes {
				if !yield(line.Address+uint16(2*n), op) {
					return
				}
			}
		}
	}
}

// Binary returns the memory image spanning all opcodes, and the address
// of its first byte. Gaps between opcodes are zero filled.
func (prog *Program) Binary() (origin uint16, data []byte) {
	low := -1
	high := 0
	for address := range prog.Codes() {
		if low < 0 || int(address) < low {
			low = int(address)
		}
		high = max(high, int(address)+2)
	}
	if low < 0 {
		return
	}

	origin = uint16(low)
	data = make([]byte, high-low)
	for address, op := range prog.Codes() {
		index := int(address) - low
		data[index], data[index+1] = op.Bytes()
	}

	return
}

// Load writes the program into memory. Bytes between opcodes are untouched.
// Memory is unchanged if any opcode lies outside of it.
func (prog *Program) Load(mem *Memory) (err error) {
	staged := *mem
	for address, op := range prog.Codes() {
		hi, lo := op.Bytes()
		err = staged.Load(address, []byte{hi, lo})
		if err != nil {
			return
		}
	}

	*mem = staged
	return
}
