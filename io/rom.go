// Package io loads and saves raw CHIP-8 ROM images.
//
// An image is the memory contents starting at its load address, with each
// opcode stored most significant byte first.
package io

import (
	"io"
	"os"

	"github.com/ezrec/chip8/cpu"
)

// Rom is a raw memory image.
type Rom struct {
	Data []byte
}

// ReadRom reads an entire image from a reader.
func ReadRom(r io.Reader) (rom *Rom, err error) {
	rom = &Rom{}
	err = rom.Unmarshal(r)
	if err != nil {
		rom = nil
	}
	return
}

// LoadFile reads an image from the named file.
func LoadFile(name string) (rom *Rom, err error) {
	inf, err := os.Open(name)
	if err != nil {
		return
	}
	defer inf.Close()

	return ReadRom(inf)
}

// FromProgram returns the image of an assembled program, and the address it
// must be loaded at.
func FromProgram(prog *cpu.Program) (rom *Rom, origin uint16) {
	origin, data := prog.Binary()
	rom = &Rom{Data: data}
	return
}

// Unmarshal loads image data from a reader, replacing any existing data.
// Images larger than the memory are rejected.
func (rom *Rom) Unmarshal(file io.Reader) (err error) {
	data, err := io.ReadAll(io.LimitReader(file, cpu.MEMORY_SIZE+1))
	if err != nil {
		return
	}

	if len(data) > cpu.MEMORY_SIZE {
		err = ErrRomTooLarge
		return
	}

	rom.Data = data

	return
}

// Marshal writes the image to a writer.
func (rom *Rom) Marshal(file io.Writer) (err error) {
	_, err = file.Write(rom.Data)

	return
}

// Load copies the image into memory at address. Memory is left untouched
// if the image does not fit.
func (rom *Rom) Load(mem *cpu.Memory, address uint16) (err error) {
	return mem.Load(address, rom.Data)
}

// Len returns the size of the image in bytes.
func (rom *Rom) Len() int {
	return len(rom.Data)
}
