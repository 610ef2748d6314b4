// Package cpu implements a CHIP-8 style instruction engine and its assembler.
//
// The engine consists of a 4096 byte memory image, sixteen 8-bit registers
// (V0-VF, with VF doubling as the carry flag), a program counter, and a call
// stack sixteen return addresses deep. Instructions are 16-bit big-endian
// words; only halt (0000), ret (00EE), call (2NNN) and add (8XY4) are
// implemented. Every other word is reported as ErrUnsupported.
//
// The assembler turns source text into a Program that can be loaded into
// memory, supporting labels, equates, macros, and compile-time $(...)
// expressions.
package cpu
