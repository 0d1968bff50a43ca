package z80pins

// This file builds the unprefixed (base) opcode table declaratively: each
// opcode is described as a short list of machine cycles plus an optional
// finishing action, and compileOp turns that into a pipeline word and a
// slice of globalSteps. Regular instruction families (LD r,r'; the eight
// accumulator ALU ops; INC/DEC r; LD r,n) are generated by looping over
// the 3-bit register-field encoding rather than typed out 64 times; the
// irregular opcodes are listed by hand.

// pairGet/pairSet read/write the rp-table register pairs (BC,DE,HL,SP)
// used by INC rp/DEC rp/ADD HL,rp/LD rp,nn/LD rp,(nn); HL here is the
// *operand* pair, so it substitutes IX/IY automatically under a prefix.
func (c *CPU) pairGet(p byte) uint16 {
	switch p {
	case 0:
		return c.BC
	case 1:
		return c.DE
	case 2:
		return c.hlOperand()
	default:
		return c.SP
	}
}

func (c *CPU) pairSet(p byte, v uint16) {
	switch p {
	case 0:
		c.BC = v
	case 1:
		c.DE = v
	case 2:
		c.setHLOperand(v)
	default:
		c.SP = v
	}
}

// pair2Get/pair2Set are the PUSH/POP register-pair encoding, which uses
// AF where the rp table would use SP.
func (c *CPU) pair2Get(p byte) uint16 {
	if p == 3 {
		return c.AF
	}
	return c.pairGet(p)
}

func (c *CPU) pair2Set(p byte, v uint16) {
	if p == 3 {
		c.AF = v
		return
	}
	c.pairSet(p, v)
}

// testCondition evaluates one of the eight condition-code encodings used
// by JP/JR/CALL/RET cc.
func (c *CPU) testCondition(cc byte) bool {
	f := c.F()
	switch cc {
	case 0:
		return f&flagZ == 0
	case 1:
		return f&flagZ != 0
	case 2:
		return f&flagC == 0
	case 3:
		return f&flagC != 0
	case 4:
		return f&flagPV == 0
	case 5:
		return f&flagPV != 0
	case 6:
		return f&flagS == 0
	default:
		return f&flagS != 0
	}
}

// mcPushByte writes one byte to the stack, decrementing SP first — the
// shape every PUSH/CALL/RST shares, called once for the high byte and
// once for the low; mcPopByte reads one byte and increments SP after.
func mcPushByte(get func(c *CPU) byte) mcycleDesc {
	return mcWrite(func(c *CPU) uint16 {
		c.SP--
		return c.SP
	}, get)
}

func mcPopByte(set func(c *CPU, v byte)) mcycleDesc {
	return mcRead(func(c *CPU) uint16 {
		return c.SP
	}, func(c *CPU, v byte) {
		set(c, v)
		c.SP++
	})
}

// baseDefined records which opcodes each build function below has
// installed; the four prefix bytes (CB/DD/ED/FD) are the only base-table
// slots deliberately left unset, since stepRefreshAndDecode intercepts
// them before a baseTable lookup ever happens.
var baseDefined [256]bool

func buildBaseLdRR() {
	// 0x40-0x7F: LD r,r' and HALT at 0x76. Both operands may be (HL):
	// reading (HL) costs a read mcycle, writing (HL) a write mcycle;
	// register-to-register costs nothing beyond the refresh tick.
	for op := 0x40; op <= 0x7F; op++ {
		op := byte(op)
		dst := (op >> 3) & 0x07
		src := op & 0x07
		if op == 0x76 {
			baseTable[op] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
				c.halted = true
				return pins
			})
			baseDefined[op] = true
			continue
		}
		switch {
		case dst == 6 && src == 6:
			// unreachable: that slot is HALT.
		case dst == 6:
			baseTable[op] = compileOp([]mcycleDesc{
				mcWrite(func(c *CPU) uint16 { return c.hlOperand() }, func(c *CPU) byte { return c.reg8Get(src) }),
			}, nil)
		case src == 6:
			baseTable[op] = compileOp([]mcycleDesc{
				mcRead(func(c *CPU) uint16 { return c.hlOperand() }, func(c *CPU, v byte) { c.reg8Set(dst, v) }),
			}, nil)
		default:
			baseTable[op] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
				c.reg8Set(dst, c.reg8Get(src))
				return pins
			})
		}
		baseDefined[op] = true
	}
}

// aluOp applies one of the eight ALU operations (selected by the 3-bit
// field used throughout 0x80-0xBF and 0xC6/CE/D6/DE/E6/EE/F6/FE) and
// writes A/F as that operation defines.
func (c *CPU) aluOp(sel byte, operand byte) {
	a := c.A()
	switch sel {
	case 0: // ADD
		r, f := aluAdd(a, operand, false)
		c.SetA(r)
		c.SetF(f)
	case 1: // ADC
		r, f := aluAdd(a, operand, c.F()&flagC != 0)
		c.SetA(r)
		c.SetF(f)
	case 2: // SUB
		r, f := aluSub(a, operand, false)
		c.SetA(r)
		c.SetF(f)
	case 3: // SBC
		r, f := aluSub(a, operand, c.F()&flagC != 0)
		c.SetA(r)
		c.SetF(f)
	case 4: // AND
		r, f := aluAnd(a, operand)
		c.SetA(r)
		c.SetF(f)
	case 5: // XOR
		r, f := aluXor(a, operand)
		c.SetA(r)
		c.SetF(f)
	case 6: // OR
		r, f := aluOr(a, operand)
		c.SetA(r)
		c.SetF(f)
	default: // CP: flags only, A unchanged
		c.SetF(aluCp(a, operand))
	}
}

func buildBaseAluR() {
	// 0x80-0xBF: ALU A,r for all eight operations over all eight operands.
	for op := 0x80; op <= 0xBF; op++ {
		op := byte(op)
		sel := (op >> 3) & 0x07
		src := op & 0x07
		if src == 6 {
			baseTable[op] = compileOp([]mcycleDesc{
				mcRead(func(c *CPU) uint16 { return c.hlOperand() }, func(c *CPU, v byte) { c.dlatch = v }),
			}, func(c *CPU, pins uint64) uint64 {
				c.aluOp(sel, c.dlatch)
				return pins
			})
		} else {
			baseTable[op] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
				c.aluOp(sel, c.reg8Get(src))
				return pins
			})
		}
		baseDefined[op] = true
	}
}

func buildBaseAluN() {
	// 0xC6,CE,D6,DE,E6,EE,F6,FE: ALU A,n.
	opcodes := [8]byte{0xC6, 0xCE, 0xD6, 0xDE, 0xE6, 0xEE, 0xF6, 0xFE}
	for sel, op := range opcodes {
		sel := byte(sel)
		baseTable[op] = compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
				c.PC++
				c.dlatch = v
			}),
		}, func(c *CPU, pins uint64) uint64 {
			c.aluOp(sel, c.dlatch)
			return pins
		})
		baseDefined[op] = true
	}
}

func buildBaseIncDecR() {
	for r := byte(0); r < 8; r++ {
		if r == 6 {
			continue
		}
		r := r
		incOp := 0x04 | (r << 3)
		decOp := 0x05 | (r << 3)
		baseTable[incOp] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
			v := c.reg8Get(r) + 1
			c.reg8Set(r, v)
			c.SetF(incFlags8(v, c.F()&flagC))
			return pins
		})
		baseDefined[incOp] = true
		baseTable[decOp] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
			v := c.reg8Get(r) - 1
			c.reg8Set(r, v)
			c.SetF(decFlags8(v, c.F()&flagC))
			return pins
		})
		baseDefined[decOp] = true
	}
	// 0x34/0x35: INC/DEC (HL) — a read-modify-write, needing the extra
	// internal T-state real hardware spends between latching the byte
	// and writing the result back.
	baseTable[0x34] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.hlOperand() }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(1, nil),
		mcWrite(func(c *CPU) uint16 { return c.hlOperand() }, func(c *CPU) byte {
			v := c.dlatch + 1
			c.SetF(incFlags8(v, c.F()&flagC))
			return v
		}),
	}, nil)
	baseDefined[0x34] = true
	baseTable[0x35] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.hlOperand() }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(1, nil),
		mcWrite(func(c *CPU) uint16 { return c.hlOperand() }, func(c *CPU) byte {
			v := c.dlatch - 1
			c.SetF(decFlags8(v, c.F()&flagC))
			return v
		}),
	}, nil)
	baseDefined[0x35] = true
}

func buildBaseLdRN() {
	for r := byte(0); r < 8; r++ {
		if r == 6 {
			continue
		}
		r := r
		op := 0x06 | (r << 3)
		baseTable[op] = compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
				c.PC++
				c.reg8Set(r, v)
			}),
		}, nil)
		baseDefined[op] = true
	}
	// 0x36: LD (HL),n
	baseTable[0x36] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
			c.PC++
			c.dlatch = v
		}),
		mcWrite(func(c *CPU) uint16 { return c.hlOperand() }, func(c *CPU) byte { return c.dlatch }),
	}, nil)
	baseDefined[0x36] = true
}

func buildBaseRpFamily() {
	for p := byte(0); p < 4; p++ {
		p := p
		// LD rp,nn
		ldOp := 0x01 | (p << 4)
		baseTable[ldOp] = compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
				c.PC++
				c.pairSet(p, setLo(c.pairGet(p), v))
			}),
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
				c.PC++
				c.pairSet(p, setHi(c.pairGet(p), v))
			}),
		}, nil)
		baseDefined[ldOp] = true

		// INC rp / DEC rp: pure internal, 2 T-states, no flags.
		incOp := 0x03 | (p << 4)
		baseTable[incOp] = compileOp([]mcycleDesc{mcInternal(2, func(c *CPU, pins uint64) uint64 {
			c.pairSet(p, c.pairGet(p)+1)
			return pins
		})}, nil)
		baseDefined[incOp] = true

		decOp := 0x0B | (p << 4)
		baseTable[decOp] = compileOp([]mcycleDesc{mcInternal(2, func(c *CPU, pins uint64) uint64 {
			c.pairSet(p, c.pairGet(p)-1)
			return pins
		})}, nil)
		baseDefined[decOp] = true

		// ADD HL,rp: 7 extra T-states of internal add (11 in total).
		addOp := 0x09 | (p << 4)
		baseTable[addOp] = compileOp([]mcycleDesc{mcInternal(7, func(c *CPU, pins uint64) uint64 {
			r, f := add16(c.hlOperand(), c.pairGet(p), c.F())
			c.setHLOperand(r)
			c.SetF(f)
			return pins
		})}, nil)
		baseDefined[addOp] = true

		// PUSH rp2 / POP rp2
		pushOp := 0xC5 | (p << 4)
		baseTable[pushOp] = compileOp([]mcycleDesc{
			mcInternal(1, nil),
			mcPushByte(func(c *CPU) byte { return hi(c.pair2Get(p)) }),
			mcPushByte(func(c *CPU) byte { return lo(c.pair2Get(p)) }),
		}, nil)
		baseDefined[pushOp] = true

		popOp := 0xC1 | (p << 4)
		baseTable[popOp] = compileOp([]mcycleDesc{
			mcPopByte(func(c *CPU, v byte) { c.pair2Set(p, setLo(c.pair2Get(p), v)) }),
			mcPopByte(func(c *CPU, v byte) { c.pair2Set(p, setHi(c.pair2Get(p), v)) }),
		}, nil)
		baseDefined[popOp] = true
	}
}

func buildBaseJumpsCalls() {
	for cc := byte(0); cc < 8; cc++ {
		cc := cc
		jpOp := 0xC2 | (cc << 3)
		baseTable[jpOp] = compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
				c.PC++
				c.WZ = setLo(c.WZ, v)
			}),
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
				c.PC++
				c.WZ = setHi(c.WZ, v)
			}),
		}, func(c *CPU, pins uint64) uint64 {
			if c.testCondition(cc) {
				c.PC = c.WZ
			}
			return pins
		})
		baseDefined[jpOp] = true

		// CALL cc,nn and RET cc,nn spend extra bus cycles only when taken
		// (the push/pop of the return address), so their timing itself is
		// conditional — handled by condOps, not a single static entry.
		callOp := 0xC4 | (cc << 3)
		callTaken := compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setLo(c.WZ, v) }),
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setHi(c.WZ, v) }),
			mcInternal(1, nil),
			mcPushByte(func(c *CPU) byte { return hi(c.PC) }),
			mcPushByte(func(c *CPU) byte { return lo(c.PC) }),
		}, func(c *CPU, pins uint64) uint64 {
			c.PC = c.WZ
			return pins
		})
		callNotTaken := compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setLo(c.WZ, v) }),
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setHi(c.WZ, v) }),
		}, nil)
		condOps[callOp] = &condEntry{
			test:     func(c *CPU) bool { return c.testCondition(cc) },
			taken:    callTaken,
			notTaken: callNotTaken,
		}
		baseDefined[callOp] = true

		retOp := 0xC0 | (cc << 3)
		retTaken := compileOp([]mcycleDesc{
			mcInternal(1, nil),
			mcPopByte(func(c *CPU, v byte) { c.WZ = setLo(c.WZ, v) }),
			mcPopByte(func(c *CPU, v byte) { c.WZ = setHi(c.WZ, v) }),
		}, func(c *CPU, pins uint64) uint64 {
			c.PC = c.WZ
			return pins
		})
		retNotTaken := compileOp([]mcycleDesc{mcInternal(1, nil)}, nil)
		condOps[retOp] = &condEntry{
			test:     func(c *CPU) bool { return c.testCondition(cc) },
			taken:    retTaken,
			notTaken: retNotTaken,
		}
		baseDefined[retOp] = true
	}

	baseTable[0xC3] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
			c.PC++
			c.WZ = setLo(c.WZ, v)
		}),
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
			c.PC++
			c.WZ = setHi(c.WZ, v)
		}),
	}, func(c *CPU, pins uint64) uint64 {
		c.PC = c.WZ
		return pins
	})
	baseDefined[0xC3] = true

	baseTable[0xCD] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
			c.PC++
			c.WZ = setLo(c.WZ, v)
		}),
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
			c.PC++
			c.WZ = setHi(c.WZ, v)
		}),
		mcInternal(1, nil),
		mcPushByte(func(c *CPU) byte { return hi(c.PC) }),
		mcPushByte(func(c *CPU) byte { return lo(c.PC) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.PC = c.WZ
		return pins
	})
	baseDefined[0xCD] = true

	baseTable[0xC9] = compileOp([]mcycleDesc{
		mcPopByte(func(c *CPU, v byte) { c.WZ = setLo(c.WZ, v) }),
		mcPopByte(func(c *CPU, v byte) { c.WZ = setHi(c.WZ, v) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.PC = c.WZ
		return pins
	})
	baseDefined[0xC9] = true

	for r := byte(0); r < 8; r++ {
		r := r
		baseTable[0xC7|(r<<3)] = compileOp([]mcycleDesc{
			mcInternal(1, nil),
			mcPushByte(func(c *CPU) byte { return hi(c.PC) }),
			mcPushByte(func(c *CPU) byte { return lo(c.PC) }),
		}, func(c *CPU, pins uint64) uint64 {
			c.PC = uint16(r) * 8
			c.WZ = c.PC
			return pins
		})
		baseDefined[0xC7|(r<<3)] = true
	}
}

func buildBaseMisc() {
	baseTable[0x00] = compileOp(nil, nil) // NOP
	baseDefined[0x00] = true

	// 0x76 (HALT) is installed by buildBaseLdRR, since it shares the LD
	// r,r' opcode block's bit layout.

	baseTable[0x08] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		c.AF, c.AF2 = c.AF2, c.AF
		return pins
	})
	baseDefined[0x08] = true

	baseTable[0xD9] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		c.BC, c.BC2 = c.BC2, c.BC
		c.DE, c.DE2 = c.DE2, c.DE
		c.HL, c.HL2 = c.HL2, c.HL
		return pins
	})
	baseDefined[0xD9] = true

	baseTable[0x02] = compileOp([]mcycleDesc{
		mcWrite(func(c *CPU) uint16 { return c.BC }, func(c *CPU) byte { return c.A() }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ = setLo(uint16(c.A())<<8, c.C()+1)
		c.WZ = setHi(c.WZ, c.A())
		return pins
	})
	baseDefined[0x02] = true

	baseTable[0x12] = compileOp([]mcycleDesc{
		mcWrite(func(c *CPU) uint16 { return c.DE }, func(c *CPU) byte { return c.A() }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ = setLo(uint16(c.A())<<8, c.E()+1)
		c.WZ = setHi(c.WZ, c.A())
		return pins
	})
	baseDefined[0x12] = true

	baseTable[0x0A] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.BC }, func(c *CPU, v byte) { c.SetA(v) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ = c.BC + 1
		return pins
	})
	baseDefined[0x0A] = true

	baseTable[0x1A] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.DE }, func(c *CPU, v byte) { c.SetA(v) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ = c.DE + 1
		return pins
	})
	baseDefined[0x1A] = true

	// LD (nn),A — the WZ side effect: WZ-high is loaded with A, WZ-low
	// with (addr+1)&0xFF, matching the well-documented "MEMPTR" leak.
	baseTable[0x32] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setLo(c.WZ, v) }),
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setHi(c.WZ, v) }),
		mcWrite(func(c *CPU) uint16 { return c.WZ }, func(c *CPU) byte { return c.A() }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ = setLo(c.WZ+1, byte(c.WZ+1))
		c.WZ = setHi(c.WZ, c.A())
		return pins
	})
	baseDefined[0x32] = true

	baseTable[0x3A] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setLo(c.WZ, v) }),
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setHi(c.WZ, v) }),
		mcRead(func(c *CPU) uint16 { return c.WZ }, func(c *CPU, v byte) { c.SetA(v) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ++
		return pins
	})
	baseDefined[0x3A] = true

	baseTable[0x22] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setLo(c.WZ, v) }),
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setHi(c.WZ, v) }),
		mcWrite(func(c *CPU) uint16 { return c.WZ }, func(c *CPU) byte { return lo(c.hlOperand()) }),
		mcWrite(func(c *CPU) uint16 { return c.WZ + 1 }, func(c *CPU) byte { return hi(c.hlOperand()) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ++
		return pins
	})
	baseDefined[0x22] = true

	baseTable[0x2A] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setLo(c.WZ, v) }),
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setHi(c.WZ, v) }),
		mcRead(func(c *CPU) uint16 { return c.WZ }, func(c *CPU, v byte) { c.setHLOperand(setLo(c.hlOperand(), v)) }),
		mcRead(func(c *CPU) uint16 { return c.WZ + 1 }, func(c *CPU, v byte) { c.setHLOperand(setHi(c.hlOperand(), v)) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ++
		return pins
	})
	baseDefined[0x2A] = true

	// JR e is always taken: the relative-jump add's extra 5 internal
	// T-states are unconditional, so a single static entry is exact.
	baseTable[0x18] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.dlatch = v }),
		mcInternal(5, nil),
	}, func(c *CPU, pins uint64) uint64 {
		c.PC += uint16(int16(int8(c.dlatch)))
		c.WZ = c.PC
		return pins
	})
	baseDefined[0x18] = true

	// JR cc,e and DJNZ e only spend the relative-jump add's 5 internal
	// T-states when taken, so — like CALL/RET cc — their total length is
	// itself conditional and goes through condOps rather than a single
	// static entry.
	for i, cc := range []byte{0, 1, 2, 3} {
		op := byte(0x20 | (i << 3))
		cc := cc
		jrTaken := compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.dlatch = v }),
			mcInternal(5, nil),
		}, func(c *CPU, pins uint64) uint64 {
			c.PC += uint16(int16(int8(c.dlatch)))
			c.WZ = c.PC
			return pins
		})
		jrNotTaken := compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.dlatch = v }),
		}, nil)
		condOps[op] = &condEntry{
			test:     func(c *CPU) bool { return c.testCondition(cc) },
			taken:    jrTaken,
			notTaken: jrNotTaken,
		}
		baseDefined[op] = true
	}

	djnzBody := func() []mcycleDesc {
		return []mcycleDesc{
			mcInternal(1, func(c *CPU, pins uint64) uint64 { c.SetB(c.B() - 1); return pins }),
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.dlatch = v }),
		}
	}
	djnzTaken := compileOp(append(djnzBody(), mcInternal(5, nil)), func(c *CPU, pins uint64) uint64 {
		c.PC += uint16(int16(int8(c.dlatch)))
		c.WZ = c.PC
		return pins
	})
	djnzNotTaken := compileOp(djnzBody(), nil)
	condOps[0x10] = &condEntry{
		test:     func(c *CPU) bool { return c.B() != 1 },
		taken:    djnzTaken,
		notTaken: djnzNotTaken,
	}
	baseDefined[0x10] = true

	baseTable[0xE9] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		c.PC = c.hlOperand()
		return pins
	})
	baseDefined[0xE9] = true

	baseTable[0xF9] = compileOp([]mcycleDesc{mcInternal(2, nil)}, func(c *CPU, pins uint64) uint64 {
		c.SP = c.hlOperand()
		return pins
	})
	baseDefined[0xF9] = true

	baseTable[0xEB] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		c.DE, c.HL = c.HL, c.DE
		return pins
	})
	baseDefined[0xEB] = true

	baseTable[0xE3] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.SP }, func(c *CPU, v byte) { c.WZ = setLo(c.WZ, v) }),
		mcRead(func(c *CPU) uint16 { return c.SP + 1 }, func(c *CPU, v byte) { c.WZ = setHi(c.WZ, v) }),
		mcInternal(1, nil),
		mcWrite(func(c *CPU) uint16 { return c.SP + 1 }, func(c *CPU) byte { return hi(c.hlOperand()) }),
		mcWrite(func(c *CPU) uint16 { return c.SP }, func(c *CPU) byte { return lo(c.hlOperand()) }),
		mcInternal(2, nil),
	}, func(c *CPU, pins uint64) uint64 {
		c.setHLOperand(c.WZ)
		return pins
	})
	baseDefined[0xE3] = true

	baseTable[0xF3] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		c.IFF1 = false
		c.IFF2 = false
		return pins
	})
	baseDefined[0xF3] = true
	baseTable[0xFB] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		c.IFF1 = true
		c.IFF2 = true
		return pins
	})
	baseDefined[0xFB] = true

	baseTable[0x27] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		r, f := daa(c.A(), c.F())
		c.SetA(r)
		c.SetF(f)
		return pins
	})
	baseDefined[0x27] = true
	baseTable[0x2F] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		r, f := cpl(c.A(), c.F())
		c.SetA(r)
		c.SetF(f)
		return pins
	})
	baseDefined[0x2F] = true
	baseTable[0x37] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		c.SetF(scf(c.A(), c.F()))
		return pins
	})
	baseDefined[0x37] = true
	baseTable[0x3F] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		c.SetF(ccf(c.A(), c.F()))
		return pins
	})
	baseDefined[0x3F] = true
	baseTable[0x07] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		r, f := rlca(c.A(), c.F())
		c.SetA(r)
		c.SetF(f)
		return pins
	})
	baseDefined[0x07] = true
	baseTable[0x0F] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		r, f := rrca(c.A(), c.F())
		c.SetA(r)
		c.SetF(f)
		return pins
	})
	baseDefined[0x0F] = true
	baseTable[0x17] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		r, f := rlaOp(c.A(), c.F())
		c.SetA(r)
		c.SetF(f)
		return pins
	})
	baseDefined[0x17] = true
	baseTable[0x1F] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		r, f := rraOp(c.A(), c.F())
		c.SetA(r)
		c.SetF(f)
		return pins
	})
	baseDefined[0x1F] = true

	baseTable[0xDB] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.dlatch = v }),
		mcIORead(func(c *CPU) uint16 { return uint16(c.A())<<8 | uint16(c.dlatch) }, func(c *CPU, v byte) { c.SetA(v) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ = uint16(c.A())<<8 | uint16(c.dlatch) + 1
		return pins
	})
	baseDefined[0xDB] = true

	baseTable[0xD3] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.dlatch = v }),
		mcIOWrite(func(c *CPU) uint16 { return uint16(c.A())<<8 | uint16(c.dlatch) }, func(c *CPU) byte { return c.A() }),
	}, func(c *CPU, pins uint64) uint64 {
		c.WZ = setLo(uint16(c.A())<<8, c.dlatch+1)
		return pins
	})
	baseDefined[0xD3] = true
}

func init() {
	buildBaseMisc()
	buildBaseLdRR()
	buildBaseAluR()
	buildBaseAluN()
	buildBaseIncDecR()
	buildBaseLdRN()
	buildBaseRpFamily()
	buildBaseJumpsCalls()
}
