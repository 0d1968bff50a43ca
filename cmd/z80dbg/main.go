// Command z80dbg is an interactive tick console: it loads a flat binary
// image into an in-memory bus, then lets a human drive the core one
// T-state (or one instruction) at a time from the keyboard, printing the
// pin word and register file after every step.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	z80 "github.com/intuitionamiga/z80pins"
)

func main() {
	image := flag.String("image", "", "flat binary image to load at -org")
	org := flag.Uint("org", 0, "load address")
	entry := flag.Uint("entry", 0, "entry PC (defaults to -org)")
	flag.Parse()

	bus := z80.NewBus()
	if *image != "" {
		data, err := os.ReadFile(*image)
		if err != nil {
			fmt.Fprintln(os.Stderr, "z80dbg:", err)
			os.Exit(1)
		}
		bus.Load(uint16(*org), data)
	}

	cpu := z80.NewCPU()
	pins := cpu.Init()
	entryPC := uint16(*entry)
	if entryPC == 0 {
		entryPC = uint16(*org)
	}
	pins = cpu.Prefetch(entryPC)

	fd := int(os.Stdin.Fd())
	raw := term.IsTerminal(fd)
	var oldState *term.State
	if raw {
		var err error
		oldState, err = term.MakeRaw(fd)
		if err != nil {
			raw = false
		} else {
			defer term.Restore(fd, oldState)
		}
	}

	fmt.Println("z80dbg — t: one T-state, o: run to next Opdone, q: quit")
	printState(cpu, pins)

	if raw {
		runRaw(cpu, bus, &pins)
		return
	}
	runLine(cpu, bus, &pins)
}

func runRaw(cpu *z80.CPU, bus *z80.Bus, pins *uint64) {
	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return
		}
		switch buf[0] {
		case 't':
			*pins = bus.Respond(*pins)
			*pins = cpu.Tick(*pins)
			printState(cpu, *pins)
		case 'o':
			*pins = cpu.Run(bus, *pins, 1<<20)
			printState(cpu, *pins)
		case 'q':
			return
		}
	}
}

func runLine(cpu *z80.CPU, bus *z80.Bus, pins *uint64) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch scanner.Text() {
		case "t":
			*pins = bus.Respond(*pins)
			*pins = cpu.Tick(*pins)
			printState(cpu, *pins)
		case "o":
			*pins = cpu.Run(bus, *pins, 1<<20)
			printState(cpu, *pins)
		case "q":
			return
		}
	}
}

func printState(cpu *z80.CPU, pins uint64) {
	fmt.Printf("pins=%010X addr=%04X data=%02X  %s\n",
		pins, z80.GetAddr(pins), z80.GetData(pins), cpu.String())
}
