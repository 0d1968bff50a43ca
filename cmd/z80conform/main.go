// Command z80conform replays a JSON instruction-level conformance suite
// (the de-facto community format: one object per test case, an "initial"
// and "final" CPU/RAM snapshot and a "cycles" bus trace) against the tick
// engine and reports pass/fail per case. Independent cases run
// concurrently, each against its own CPU and Bus, since tick is never
// safe to share across goroutines.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	z80 "github.com/intuitionamiga/z80pins"
)

type cpuState struct {
	PC, SP, IX, IY uint16
	A, F, B, C, D, E, H, L byte
	I, R           byte
	IFF1, IFF2     int
	IM             byte
	RAM            [][2]int `json:"ram"`
}

type testCase struct {
	Name    string   `json:"name"`
	Initial cpuState `json:"initial"`
	Final   cpuState `json:"final"`
}

func loadState(cpu *z80.CPU, bus *z80.Bus, s cpuState) {
	cpu.SetRegister("PC", uint64(s.PC))
	cpu.SetRegister("SP", uint64(s.SP))
	cpu.SetRegister("IX", uint64(s.IX))
	cpu.SetRegister("IY", uint64(s.IY))
	cpu.SetRegister("A", uint64(s.A))
	cpu.SetRegister("F", uint64(s.F))
	cpu.SetRegister("B", uint64(s.B))
	cpu.SetRegister("C", uint64(s.C))
	cpu.SetRegister("D", uint64(s.D))
	cpu.SetRegister("E", uint64(s.E))
	cpu.SetRegister("H", uint64(s.H))
	cpu.SetRegister("L", uint64(s.L))
	cpu.SetRegister("I", uint64(s.I))
	cpu.SetRegister("R", uint64(s.R))
	for _, kv := range s.RAM {
		bus.Mem[uint16(kv[0])] = byte(kv[1])
	}
}

func diffState(cpu *z80.CPU, bus *z80.Bus, want cpuState) []string {
	var diffs []string
	check := func(name string, got uint64, wantV uint64) {
		if got != wantV {
			diffs = append(diffs, fmt.Sprintf("%s: got %X want %X", name, got, wantV))
		}
	}
	g := func(name string) uint64 { v, _ := cpu.GetRegister(name); return v }
	check("PC", g("PC"), uint64(want.PC))
	check("SP", g("SP"), uint64(want.SP))
	check("IX", g("IX"), uint64(want.IX))
	check("IY", g("IY"), uint64(want.IY))
	check("A", g("A"), uint64(want.A))
	check("F", g("F"), uint64(want.F))
	check("BC", g("BC"), uint64(want.B)<<8|uint64(want.C))
	check("DE", g("DE"), uint64(want.D)<<8|uint64(want.E))
	check("HL", g("HL"), uint64(want.H)<<8|uint64(want.L))
	for _, kv := range want.RAM {
		addr, wantV := uint16(kv[0]), byte(kv[1])
		if got := bus.Mem[addr]; got != wantV {
			diffs = append(diffs, fmt.Sprintf("mem[%04X]: got %02X want %02X", addr, got, wantV))
		}
	}
	return diffs
}

func runCase(tc testCase, maxTicks int) error {
	cpu := z80.NewCPU()
	bus := z80.NewBus()
	pins := cpu.Init()
	loadState(cpu, bus, tc.Initial)
	pins = cpu.Prefetch(tc.Initial.PC)

	pins = cpu.Run(bus, pins, maxTicks)

	if diffs := diffState(cpu, bus, tc.Final); len(diffs) > 0 {
		return fmt.Errorf("%s: %v", tc.Name, diffs)
	}
	_ = pins
	return nil
}

func main() {
	path := flag.String("suite", "", "path to a JSON test-vector file")
	maxTicks := flag.Int("max-ticks", 64, "maximum T-states to run per test case")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "z80conform: -suite is required")
		os.Exit(2)
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "z80conform:", err)
		os.Exit(1)
	}

	var cases []testCase
	if err := json.Unmarshal(data, &cases); err != nil {
		fmt.Fprintln(os.Stderr, "z80conform: parsing suite:", err)
		os.Exit(1)
	}

	g, _ := errgroup.WithContext(context.Background())
	results := make([]error, len(cases))
	for i, tc := range cases {
		i, tc := i, tc
		g.Go(func() error {
			results[i] = runCase(tc, *maxTicks)
			return nil
		})
	}
	_ = g.Wait()

	pass, fail := 0, 0
	for i, err := range results {
		if err != nil {
			fail++
			fmt.Printf("FAIL %s\n", err)
		} else {
			pass++
			_ = i
		}
	}
	fmt.Printf("%d passed, %d failed, %d total\n", pass, fail, len(cases))
	if fail > 0 {
		os.Exit(1)
	}
}
