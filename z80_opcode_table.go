package z80pins

// microStep is one dispatch point of an instruction's execution: it runs
// on exactly one tick, may assert or re-interpret the pin word, and
// returns the pins the host should see for that tick.
type microStep func(c *CPU, pins uint64) uint64

// globalSteps is the flat, shared array every opTableEntry indexes into
// once an instruction's decode is complete (step >= 2). It is assembled
// once, at package init, by the declarative per-prefix table builders; at
// run time dispatch is nothing more than globalSteps[stepBase+step-2](c,
// pins) — a dense slice lookup, never a per-opcode closure tree.
var globalSteps []microStep

// opTableEntry is what a table lookup yields: the pipeline word that
// schedules every remaining dispatch (and wait-sample point) of the
// instruction, and the base offset of its steps within globalSteps.
type opTableEntry struct {
	pip      uint64
	stepBase uint16
	nsteps   uint16
}

// mcycleDesc is one declarative machine-cycle: a duration in T-states, an
// optional T-state offset (within the cycle) at which WAIT must be
// sampled, and the dispatch actions that occur on specific T-state
// offsets within the cycle. A read mcycle dispatches twice (assert, then
// latch); a write or internal mcycle usually dispatches once.
type mcycleDesc struct {
	tstates    int
	waitOffset int // -1 if this mcycle never samples WAIT
	dispatch   map[int]microStep
}

// mcRead describes a memory-read machine cycle: T1 asserts the address
// with MREQ|RD, T2 samples WAIT, and the final T-state latches the data
// byte the host placed on the bus.
func mcRead(addr func(c *CPU) uint16, latch func(c *CPU, data byte)) mcycleDesc {
	return mcycleDesc{
		tstates:    3,
		waitOffset: 1,
		dispatch: map[int]microStep{
			0: func(c *CPU, pins uint64) uint64 {
				return SetAddrCtrl(pins, addr(c), PinMREQ|PinRD)
			},
			2: func(c *CPU, pins uint64) uint64 {
				latch(c, GetData(pins))
				return pins
			},
		},
	}
}

// mcWrite describes a memory-write machine cycle: T1 asserts address and
// data together with MREQ|WR, T2 samples WAIT, T3 is silent (the bus
// owner must have captured the byte by the end of T2).
func mcWrite(addr func(c *CPU) uint16, data func(c *CPU) byte) mcycleDesc {
	return mcycleDesc{
		tstates:    3,
		waitOffset: 1,
		dispatch: map[int]microStep{
			0: func(c *CPU, pins uint64) uint64 {
				return SetAddrDataCtrl(pins, addr(c), data(c), PinMREQ|PinWR)
			},
		},
	}
}

// mcIORead/mcIOWrite describe I/O machine cycles: 4 T-states, with an
// automatic one-T-state extension (TW) built into real Z80 hardware even
// when the host never asserts WAIT, modelled here as a wait-sample at the
// third T-state.
func mcIORead(addr func(c *CPU) uint16, latch func(c *CPU, data byte)) mcycleDesc {
	return mcycleDesc{
		tstates:    4,
		waitOffset: 2,
		dispatch: map[int]microStep{
			0: func(c *CPU, pins uint64) uint64 {
				return SetAddrCtrl(pins, addr(c), PinIORQ|PinRD)
			},
			3: func(c *CPU, pins uint64) uint64 {
				latch(c, GetData(pins))
				return pins
			},
		},
	}
}

func mcIOWrite(addr func(c *CPU) uint16, data func(c *CPU) byte) mcycleDesc {
	return mcycleDesc{
		tstates:    4,
		waitOffset: 2,
		dispatch: map[int]microStep{
			0: func(c *CPU, pins uint64) uint64 {
				return SetAddrDataCtrl(pins, addr(c), data(c), PinIORQ|PinWR)
			},
		},
	}
}

// mcInternal describes tstates of pure internal processing (register
// arithmetic, the (IX+d) displacement-add delay, and similar) with no bus
// activity and no wait sampling; action runs on the final T-state.
func mcInternal(tstates int, action microStep) mcycleDesc {
	d := mcycleDesc{tstates: tstates, waitOffset: -1, dispatch: map[int]microStep{}}
	if action != nil {
		d.dispatch[tstates-1] = action
	}
	return d
}

// compileOp turns a declarative instruction body (its extra machine
// cycles beyond the shared M1 fetch+refresh, plus an optional finishing
// action) into an opTableEntry. The finishing action, if any, runs on the
// same tick as the overlapped fetch of the next opcode.
func compileOp(mcycles []mcycleDesc, finish microStep) opTableEntry {
	type point struct {
		offset int
		step   microStep
	}
	var dispatches []point
	var waitOffsets []int
	cursor := 0
	for _, mc := range mcycles {
		if mc.waitOffset >= 0 {
			waitOffsets = append(waitOffsets, cursor+mc.waitOffset)
		}
		for t := 0; t < mc.tstates; t++ {
			if fn, ok := mc.dispatch[t]; ok {
				dispatches = append(dispatches, point{cursor + t, fn})
			}
		}
		cursor += mc.tstates
	}
	// The overlapped fetch always lands on the tick right after the last
	// declared machine cycle ends (or, for a zero-extra-mcycle op, one
	// tick after the table lookup itself).
	overlapOffset := cursor
	dispatches = append(dispatches, point{overlapOffset, func(c *CPU, pins uint64) uint64 {
		if finish != nil {
			pins = finish(c, pins)
		}
		// This instruction is now fully complete: any DD/FD substitution
		// it was using must not leak into the next one. Escape-byte
		// continuation fetches (CB/DD/ED/FD detection in
		// stepRefreshAndDecode) call doFetch directly rather than
		// through this generated step, so they are unaffected.
		c.prefix = prefixNone
		return c.doFetch(pins)
	}})

	base := uint16(len(globalSteps))
	offsets := make([]int, 0, len(dispatches))
	for _, p := range dispatches {
		offsets = append(offsets, p.offset)
		globalSteps = append(globalSteps, p.step)
	}
	return opTableEntry{
		pip:      buildPip(offsets, waitOffsets),
		stepBase: base,
		nsteps:   uint16(len(dispatches)),
	}
}

// buildPip encodes a set of tick offsets (relative to the tick right
// after this pip is installed) into the packed pipeline word. Because the
// unconditional end-of-tick shift in tick() consumes one pipeline
// position even on the very tick that installs a fresh pip, every offset
// is stored one bit higher than its logical position — offset 0 (the
// very next tick) lives at bit 1 (step stream) or bit 33 (wait stream)
// until that first shift brings it down to bit 0 / bit 32.
func buildPip(stepOffsets []int, waitOffsets []int) uint64 {
	var pip uint64
	for _, o := range stepOffsets {
		pip |= uint64(1) << uint(o+1)
	}
	for _, o := range waitOffsets {
		pip |= uint64(1) << uint(32+o+1)
	}
	return pip
}

const (
	pipStepBit = uint64(1) << 0
	pipWaitBit = uint64(1) << 32
	pipBits    = pipStepBit | pipWaitBit
)

// condEntry handles the opcodes whose total T-state count itself depends
// on a runtime condition (JR cc, DJNZ, CALL cc, RET cc) — something a
// single static opTableEntry cannot express, since its length is fixed at
// build time. Decode tests the condition once and installs whichever
// entry matches, so the chosen timing takes effect starting on the very
// next tick, same as any other opcode.
type condEntry struct {
	test            func(c *CPU) bool
	taken, notTaken opTableEntry
}

var condOps [256]*condEntry

// edCondOps is condOps's counterpart for the ED-prefixed block-repeat
// instructions (LDIR/LDDR/CPIR/CPDR/INIR/INDR/OTIR/OTDR), checked instead
// of edTable when the second opcode byte has an entry here.
var edCondOps [256]*condEntry
