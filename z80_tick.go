package z80pins

// tick is the single entry point of the core: given the pin word the host
// is presenting this T-state, it advances exactly one T-state and returns
// the pin word the CPU now presents back. It never allocates and never
// blocks; every branch terminates in O(1).
func (c *CPU) tick(pins uint64) uint64 {
	if c.pip&pipWaitBit != 0 && pins&PinWAIT != 0 {
		// Held exactly as asserted: the bus cycle this T-state belongs to
		// must keep presenting the same address/data/control for as many
		// extra T-states as WAIT stays up, not just for this one.
		c.pins = pins
		return c.pins
	}

	pins &^= ctrlMask

	if c.pip&pipStepBit != 0 {
		pins = c.dispatch(pins)
	}

	c.pip = (c.pip &^ pipBits) >> 1
	c.pins = pins
	return pins
}

// dispatch runs the micro-step for the current value of step, then
// advances step by one — the direct Go equivalent of `switch (step++)`.
func (c *CPU) dispatch(pins uint64) uint64 {
	step := c.step
	c.step++
	switch step {
	case 0:
		return c.stepLatchOpcode(pins)
	case 1:
		return c.stepRefreshAndDecode(pins)
	default:
		return globalSteps[int(c.stepBase)+int(step-2)](c, pins)
	}
}

// stepLatchOpcode is the universal step==0 dispatch: it reads the byte
// the host placed on the data bus in response to the fetch this op state
// began, deciding nothing else — decode happens one tick later, at
// step==1, once refresh has also been asserted. While halted, PC is frozen
// and the bus may present whatever byte actually lives at that address;
// real hardware ignores it and treats every such fetch as a NOP, so the
// latch is forced to 0x00 rather than trusting the data bus.
func (c *CPU) stepLatchOpcode(pins uint64) uint64 {
	if c.halted {
		c.IR = 0x00
		return pins
	}
	c.IR = GetData(pins)
	return pins
}

// stepRefreshAndDecode is the universal step==1 dispatch: it asserts the
// refresh cycle (R increments, MREQ|RFSH asserted at address R) and
// resolves the just-latched opcode byte to either a prefix continuation
// or a real instruction, installing the resulting pipeline.
func (c *CPU) stepRefreshAndDecode(pins uint64) uint64 {
	pins = SetAddrCtrl(pins, uint16(c.R)&0x7F|uint16(c.I)<<8, PinMREQ|PinRFSH)
	c.R = (c.R & 0x80) | ((c.R + 1) & 0x7F)

	freshInstruction := !c.pendingCB && !c.pendingED && c.prefix == prefixNone
	if freshInstruction {
		// Interrupts are sampled once, right as a brand-new instruction
		// is about to be decoded — never between a prefix byte and the
		// opcode it modifies.
		if newPins, serviced := c.serviceInterrupts(pins); serviced {
			return newPins
		}
	}

	switch {
	case freshInstruction && c.IR == 0xCB:
		c.pendingCB = true
		return c.doFetch(pins)
	case freshInstruction && c.IR == 0xDD:
		c.prefix = prefixIX
		return c.doFetch(pins)
	case freshInstruction && c.IR == 0xFD:
		c.prefix = prefixIY
		return c.doFetch(pins)
	case freshInstruction && c.IR == 0xED:
		c.pendingED = true
		return c.doFetch(pins)
	case c.pendingED:
		c.pendingED = false
		if ce := edCondOps[c.IR]; ce != nil {
			if ce.test(c) {
				return c.installOp(ce.taken, pins)
			}
			return c.installOp(ce.notTaken, pins)
		}
		entry := edTable[c.IR]
		return c.installOp(entry, pins)
	case c.prefix != prefixNone && !c.pendingCB && !c.pendingCBDisp && c.IR == 0xCB:
		// DD CB / FD CB: two more bytes follow before there's a real
		// opcode to decode — the displacement, then the bit-op byte.
		c.pendingCBDisp = true
		return c.doFetch(pins)
	case c.pendingCBDisp:
		c.pendingCBDisp = false
		c.dispOff = int8(c.IR)
		c.WZ = c.indexedAddr()
		c.pendingCB = true
		return c.doFetch(pins)
	case c.pendingCB && c.prefix != prefixNone:
		c.pendingCB = false
		c.cbOpcode = c.IR
		if (c.cbOpcode>>6)&0x03 == 1 { // BIT b,(IX+d)/(IY+d) never writes its operand back
			return c.installOp(ddfdCBBitEntry, pins)
		}
		return c.installOp(ddfdCBRMWEntry, pins)
	case c.pendingCB:
		c.pendingCB = false
		entry := cbTable[c.IR]
		return c.installOp(entry, pins)
	default:
		// A genuine instruction byte: either the only byte (no prefix
		// active) or the opcode following a consumed DD/FD prefix.
		return c.decodeNonPrefixed(pins)
	}
}

// decodeNonPrefixed is reached once prefix/escape bytes and a pending
// interrupt have both been ruled out: the ordinary case of dispatching a
// genuine base-table opcode (or its DD/FD override).
func (c *CPU) decodeNonPrefixed(pins uint64) uint64 {
	switch {
	case condOps[c.IR] != nil:
		// JR cc/DJNZ/CALL cc/RET cc never reference HL, so a stray DD/FD
		// prefix ahead of one has no effect — same condOps entry either
		// way, exactly like real hardware treating the prefix as wasted.
		ce := condOps[c.IR]
		if ce.test(c) {
			return c.installOp(ce.taken, pins)
		}
		return c.installOp(ce.notTaken, pins)
	default:
		entry := baseTable[c.IR]
		if c.prefix != prefixNone {
			if o := ddfdOverrides[c.IR]; o != nil {
				entry = *o
			}
		}
		return c.installOp(entry, pins)
	}
}

// installOp loads a decoded instruction's pipeline and step base. It does
// not touch prefix state: the decode cases clear pendingCB/pendingED
// themselves, and prefix stays set until the instruction's final step so
// hlOperand keeps substituting IX/IY.
func (c *CPU) installOp(entry opTableEntry, pins uint64) uint64 {
	c.pip = entry.pip
	c.step = 2
	c.stepBase = entry.stepBase
	return pins
}

// doFetch resets op state to begin a brand-new opcode fetch: it asserts
// the M1 cycle (address = PC, M1|MREQ|RD) and increments PC, then primes
// the pipeline to sample WAIT and dispatch step==0 on the following
// ticks. Every opcode's final step (and every prefix continuation) ends
// by calling this — the defining mechanic of the overlapped fetch.
func (c *CPU) doFetch(pins uint64) uint64 {
	pins = SetAddrCtrl(pins, c.PC, PinM1|PinMREQ|PinRD)
	pins &^= PinHALT | PinRETI
	if c.halted {
		pins |= PinHALT
	} else {
		c.PC++
	}
	if c.reti {
		pins |= PinRETI
		c.reti = false
	}
	c.step = 0
	c.pip = buildPip([]int{0, 1}, []int{0})
	return pins
}

var (
	baseTable       [256]opTableEntry
	cbTable         [256]opTableEntry
	edTable         [256]opTableEntry
	ddfdOverrides   [256]*opTableEntry
	ddfdCBBitEntry  opTableEntry
	ddfdCBRMWEntry  opTableEntry
)

// indexedAddr resolves the effective address of an (IX+d)/(IY+d) operand
// once the displacement byte has been latched into dispOff.
func (c *CPU) indexedAddr() uint16 {
	return uint16(int32(c.hlOperand()) + int32(c.dispOff))
}
