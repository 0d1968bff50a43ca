package z80pins

// Init brings a freshly constructed CPU to the documented post-reset
// state and returns the pin word the host must present for T1 of the
// very first opcode fetch — the first call to tick should not happen
// until the host has reacted to this pin word as it would to the output
// of any other tick.
//
// Register pairs reset to 0x5555 (an open-bus-ish pattern, not zero);
// IFF1, IFF2 and IM all reset to 0 (disabled, mode 0) even though real
// silicon leaves IM undefined out of reset — 0 is the only value every
// downstream consumer of this core can rely on.
func (c *CPU) Init() uint64 {
	*c = CPU{
		AF: 0x5555, BC: 0x5555, DE: 0x5555, HL: 0x5555, WZ: 0x5555, SP: 0x5555,
		IX: 0x5555, IY: 0x5555,
		AF2: 0x5555, BC2: 0x5555, DE2: 0x5555, HL2: 0x5555,
	}
	// doFetch installs the pipeline for "dispatch one tick from now";
	// called from inside tick() that's exactly right, because tick()'s
	// own trailing shift immediately consumes one pipeline position
	// before the result is ever read. Called from here, outside any
	// tick, nothing will perform that shift for us — so we apply it
	// ourselves, once, to land on the same state a real tick would have
	// left behind.
	pins := c.doFetch(0)
	c.pip = (c.pip &^ pipBits) >> 1
	c.pins = pins
	return pins
}

// Tick advances the CPU by exactly one T-state; see the package-level
// tick method for the algorithm.
func (c *CPU) Tick(pins uint64) uint64 {
	return c.tick(pins)
}

// Prefetch forces the CPU to abandon whatever it is doing and begin
// fetching from newPC on the next tick, with no pin side effects of its
// own — used by a host restoring a saved PC (e.g. a debugger "run to"
// command) outside of the normal RESET sequence.
func (c *CPU) Prefetch(newPC uint16) uint64 {
	c.PC = newPC
	c.step = 2
	c.stepBase = initialFetchStepBase
	c.prefix = prefixNone
	c.pendingCB, c.pendingED, c.pendingCBDisp = false, false, false
	// Unlike doFetch's own pipeline, this takes effect on the very next
	// tick with no preceding wait-sample tick: bit 0 is set directly,
	// not pre-shifted, since no enclosing tick's trailing shift will
	// consume a level before it is read.
	c.pip = pipStepBit
	return 0
}

// Opdone reports whether the CPU is between instructions: true only
// during the window after the last overlapped fetch tick of one opcode
// and before the first tick of the next. Because of the overlap, this is
// step == 0 — except that the continuation fetch after a CB/ED/DD/FD
// prefix byte also resets step to 0, so a pending prefix or escape byte
// keeps Opdone false.
func (c *CPU) Opdone() bool {
	return c.step == 0 && c.prefix == prefixNone && !c.pendingCB && !c.pendingED && !c.pendingCBDisp
}

// initialFetchStepBase is installed by Init/Prefetch: a single-step op
// whose only action is doFetch, so the very next tick issues the T1
// opcode-fetch assertion the same way every ordinary overlapped fetch
// does.
var initialFetchStepBase uint16

func init() {
	initialFetchStepBase = uint16(len(globalSteps))
	globalSteps = append(globalSteps, func(c *CPU, pins uint64) uint64 {
		return c.doFetch(pins)
	})
}
