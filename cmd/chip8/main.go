// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package main implements a CHIP-8 subset assembler and runner.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/buildinfo"

	"github.com/ezrec/chip8/cpu"
	"github.com/ezrec/chip8/emulator"
	"github.com/ezrec/chip8/io"
)

var (
	version = "0.1.0"
	commit  = ""
	date    = ""
)

// parseRegisters parses a comma separated list of initial V0.. values.
func parseRegisters(text string) (regs []uint8, err error) {
	if len(text) == 0 {
		return
	}

	values := strings.Split(text, ",")
	if len(values) > cpu.REGISTER_COUNT {
		err = fmt.Errorf("%v: more than %d registers", text, cpu.REGISTER_COUNT)
		return
	}

	for _, value := range values {
		var reg uint64
		reg, err = strconv.ParseUint(strings.TrimSpace(value), 0, 8)
		if err != nil {
			return
		}
		regs = append(regs, uint8(reg))
	}

	return
}

func main() {
	var compile string
	var rom string
	var save string
	var load uint
	var pc int
	var registers string
	var limit int
	var skip bool
	var verbose bool
	var show_version bool

	flag.StringVar(&compile, "c", "", ".c8s file to assemble")
	flag.StringVar(&rom, "r", "", ".ch8 raw image to load")
	flag.StringVar(&save, "o", "", "Save the assembled image to a .ch8 file, do not execute")
	flag.UintVar(&load, "l", cpu.PROGRAM_START, "Load address of the assembled or raw image")
	flag.IntVar(&pc, "p", -1, "Start address, defaults to the image entry")
	flag.StringVar(&registers, "R", "", "Comma separated initial register values, from V0")
	flag.IntVar(&limit, "n", 0, "Maximum number of ticks, 0 for no limit")
	flag.BoolVar(&skip, "k", false, "Skip unsupported opcodes instead of aborting")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&show_version, "version", false, "Print the version and exit")

	flag.Parse()

	if show_version {
		fmt.Printf("chip8 %s\n", buildinfo.Version(version, commit, date))
		return
	}

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if load >= cpu.MEMORY_SIZE {
		log.Fatalf("%v: load address 0x%x out of range", os.Args[0], load)
	}

	regs, err := parseRegisters(registers)
	if err != nil {
		log.Fatalf("%v: -R %v", os.Args[0], err)
	}

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.MaxTicks = limit
	emu.Origin = uint16(load)
	if skip {
		emu.Unsupported = emulator.POLICY_SKIP
	}

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := &cpu.Assembler{Verbose: verbose, Origin: uint16(load)}
		for key, value := range emu.Defines() {
			asm.Predefine(key, value)
		}
		emu.Program, err = asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
	}

	if len(save) != 0 {
		image, origin := io.FromProgram(emu.Program)
		if origin != uint16(load) && image.Len() != 0 {
			log.Printf("%v: image starts at 0x%03x", save, origin)
		}
		ouf, err := os.Create(save)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		err = image.Marshal(ouf)
		if err == nil {
			err = ouf.Close()
		}
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	if len(rom) != 0 {
		emu.Rom, err = io.LoadFile(rom)
		if err != nil {
			log.Fatalf("%v: %v", rom, err)
		}
	}

	err = emu.Reset()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if pc >= 0 {
		if pc >= cpu.MEMORY_SIZE {
			log.Fatalf("%v: start address 0x%x out of range", os.Args[0], pc)
		}
		emu.Cpu.Pc = uint16(pc)
	}
	copy(emu.Cpu.Register[:], regs)

	err = emu.Run()
	fmt.Print(emu.Cpu.String())
	if err != nil {
		log.Fatal(err)
	}
}
