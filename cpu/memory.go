package cpu

const (
	MEMORY_SIZE   = 4096  // Size of the memory image in bytes.
	PROGRAM_START = 0x200 // Conventional load address for CHIP-8 programs.
)

// Memory is the byte addressable memory image.
type Memory struct {
	Data [MEMORY_SIZE]byte
}

// ReadInstruction returns the two bytes at address and address+1.
func (mem *Memory) ReadInstruction(address uint16) (hi, lo byte, err error) {
	if int(address)+1 >= len(mem.Data) {
		bad := int(address)
		if bad < len(mem.Data) {
			bad++
		}
		err = ErrOutOfBounds(bad)
		return
	}

	hi = mem.Data[address]
	lo = mem.Data[address+1]
	return
}

// Load copies data into memory starting at address.
// Memory is unchanged if the data does not fit.
func (mem *Memory) Load(address uint16, data []byte) (err error) {
	end := int(address) + len(data)
	if end > len(mem.Data) {
		err = ErrOutOfBounds(max(int(address), len(mem.Data)))
		return
	}

	copy(mem.Data[address:end], data)
	return
}

// Reset zeroes the memory image.
func (mem *Memory) Reset() {
	clear(mem.Data[:])
}
