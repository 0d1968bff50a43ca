package z80pins

// ED-prefixed opcodes cover I/O, the extended 16-bit arithmetic/transfer
// forms, and the four block-instruction families. Documented opcodes are
// built individually or via small loops where the 3-bit register/pair
// field repeats; every other byte in the 0x00-0xFF space falls back to
// edUndocumented, the real chip's 8 T-state do-nothing behavior for an
// undefined ED opcode.

func init() {
	for op := 0; op < 256; op++ {
		edTable[op] = edUndocumented
	}
	buildEDMisc()
	buildEDIO()
	buildEDHLArith()
	buildEDBlock()
}

// edUndocumented models every ED byte with no real meaning: the CPU
// still spends the full M1+refresh universal steps fetching it, then
// simply continues — no register or flag effect, 8 T-states total.
var edUndocumented = compileOp(nil, nil)

func buildEDMisc() {
	edTable[0x44] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
		r, f := aluSub(0, c.A(), false)
		c.SetA(r)
		c.SetF(f)
		return pins
	})
	// undocumented NEG duplicates
	for _, op := range []byte{0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		edTable[op] = edTable[0x44]
	}

	edTable[0x47] = compileOp([]mcycleDesc{mcInternal(1, nil)}, func(c *CPU, pins uint64) uint64 {
		c.I = c.A()
		return pins
	})
	edTable[0x4F] = compileOp([]mcycleDesc{mcInternal(1, nil)}, func(c *CPU, pins uint64) uint64 {
		c.R = c.A()
		return pins
	})
	edTable[0x57] = compileOp([]mcycleDesc{mcInternal(1, nil)}, func(c *CPU, pins uint64) uint64 {
		c.SetA(c.I)
		f := szFlags(c.I) | (c.F() & flagC)
		if c.IFF2 {
			f |= flagPV
		}
		c.SetF(f)
		return pins
	})
	edTable[0x5F] = compileOp([]mcycleDesc{mcInternal(1, nil)}, func(c *CPU, pins uint64) uint64 {
		c.SetA(c.R)
		f := szFlags(c.R) | (c.F() & flagC)
		if c.IFF2 {
			f |= flagPV
		}
		c.SetF(f)
		return pins
	})

	retn := compileOp([]mcycleDesc{
		mcPopByte(func(c *CPU, v byte) { c.WZ = setLo(c.WZ, v) }),
		mcPopByte(func(c *CPU, v byte) { c.WZ = setHi(c.WZ, v) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.PC = c.WZ
		c.IFF1 = c.IFF2
		return pins
	})
	edTable[0x45] = retn
	for _, op := range []byte{0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D} {
		edTable[op] = retn
	}

	edTable[0x4D] = compileOp([]mcycleDesc{
		mcPopByte(func(c *CPU, v byte) { c.WZ = setLo(c.WZ, v) }),
		mcPopByte(func(c *CPU, v byte) { c.WZ = setHi(c.WZ, v) }),
	}, func(c *CPU, pins uint64) uint64 {
		c.PC = c.WZ
		c.markReti()
		return pins
	})

	for im, ops := range map[byte][]byte{
		0: {0x46, 0x4E, 0x66, 0x6E},
		1: {0x56, 0x76},
		2: {0x5E, 0x7E},
	} {
		im := im
		for _, op := range ops {
			edTable[op] = compileOp([]mcycleDesc{mcInternal(1, nil)}, func(c *CPU, pins uint64) uint64 {
				c.IM = im
				return pins
			})
		}
	}

	edTable[0x67] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.HL }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(4, nil),
		mcWrite(func(c *CPU) uint16 { return c.HL }, func(c *CPU) byte {
			mem := c.dlatch
			a := c.A()
			result := (a & 0xF0) | (mem >> 4)
			c.SetA((a &^ 0x0F) | (mem & 0x0F))
			return result
		}),
	}, func(c *CPU, pins uint64) uint64 {
		c.SetF(szFlags(c.A()) | parityFlag(c.A()) | (c.F() & flagC))
		c.WZ = c.HL + 1
		return pins
	})
	edTable[0x6F] = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.HL }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(4, nil),
		mcWrite(func(c *CPU) uint16 { return c.HL }, func(c *CPU) byte {
			mem := c.dlatch
			a := c.A()
			result := (mem << 4) | (a & 0x0F)
			c.SetA((a &^ 0x0F) | (mem >> 4))
			return result
		}),
	}, func(c *CPU, pins uint64) uint64 {
		c.SetF(szFlags(c.A()) | parityFlag(c.A()) | (c.F() & flagC))
		c.WZ = c.HL + 1
		return pins
	})
}

func buildEDIO() {
	regs := [8]byte{0, 1, 2, 3, 4, 5, 0xFF, 7} // index 6 is the flags-only "IN (C)"/"OUT (C),0" form
	for r := byte(0); r < 8; r++ {
		r := r
		reg := regs[r]
		inOp := 0x40 | (r << 3)
		edTable[inOp] = compileOp([]mcycleDesc{
			mcIORead(func(c *CPU) uint16 { return uint16(c.B())<<8 | uint16(c.C()) },
				func(c *CPU, v byte) { c.dlatch = v }),
		}, func(c *CPU, pins uint64) uint64 {
			if reg != 0xFF {
				c.reg8Set(reg, c.dlatch)
			}
			c.SetF(szFlags(c.dlatch) | parityFlag(c.dlatch) | (c.F() & flagC))
			c.WZ = c.BC + 1
			return pins
		})

		outOp := 0x41 | (r << 3)
		edTable[outOp] = compileOp([]mcycleDesc{
			mcIOWrite(func(c *CPU) uint16 { return uint16(c.B())<<8 | uint16(c.C()) }, func(c *CPU) byte {
				if reg == 0xFF {
					return 0
				}
				return c.reg8Get(reg)
			}),
		}, func(c *CPU, pins uint64) uint64 {
			c.WZ = c.BC + 1
			return pins
		})
	}
}

func buildEDHLArith() {
	pairs := [4]byte{0, 1, 2, 3} // BC,DE,HL,SP — the rp encoding, same as the base table's
	for _, p := range pairs {
		p := p
		sbcOp := 0x42 | (p << 4)
		edTable[sbcOp] = compileOp([]mcycleDesc{mcInternal(7, nil)}, func(c *CPU, pins uint64) uint64 {
			r, f := sbc16(c.HL, c.pairGet(p), c.F()&flagC != 0)
			c.HL = r
			c.SetF(f)
			c.WZ = c.HL + 1
			return pins
		})

		adcOp := 0x4A | (p << 4)
		edTable[adcOp] = compileOp([]mcycleDesc{mcInternal(7, nil)}, func(c *CPU, pins uint64) uint64 {
			r, f := adc16(c.HL, c.pairGet(p), c.F()&flagC != 0)
			c.HL = r
			c.SetF(f)
			c.WZ = c.HL + 1
			return pins
		})

		ldToMemOp := 0x43 | (p << 4)
		edTable[ldToMemOp] = compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setLo(c.WZ, v) }),
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setHi(c.WZ, v) }),
			mcWrite(func(c *CPU) uint16 { return c.WZ }, func(c *CPU) byte { return lo(c.pairGet(p)) }),
			mcWrite(func(c *CPU) uint16 { return c.WZ + 1 }, func(c *CPU) byte { return hi(c.pairGet(p)) }),
		}, func(c *CPU, pins uint64) uint64 {
			c.WZ++
			return pins
		})

		ldFromMemOp := 0x4B | (p << 4)
		edTable[ldFromMemOp] = compileOp([]mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setLo(c.WZ, v) }),
			mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) { c.PC++; c.WZ = setHi(c.WZ, v) }),
			mcRead(func(c *CPU) uint16 { return c.WZ }, func(c *CPU, v byte) { c.pairSet(p, setLo(c.pairGet(p), v)) }),
			mcRead(func(c *CPU) uint16 { return c.WZ + 1 }, func(c *CPU, v byte) { c.pairSet(p, setHi(c.pairGet(p), v)) }),
		}, func(c *CPU, pins uint64) uint64 {
			c.WZ++
			return pins
		})
	}
}

// blockXYFlags computes the well-known undocumented X/Y flag leak shared
// by LDI/LDD/LDIR/LDDR: bit 1 and bit 3 of (A + the transferred byte).
func blockXYFlags(a, transferred byte) byte {
	n := a + transferred
	var f byte
	if n&0x02 != 0 {
		f |= flagY
	}
	if n&0x08 != 0 {
		f |= flagX
	}
	return f
}

func buildEDBlock() {
	ldiStep := func(dir int16) microStep {
		return func(c *CPU, pins uint64) uint64 {
			c.HL = uint16(int32(c.HL) + int32(dir))
			c.DE = uint16(int32(c.DE) + int32(dir))
			c.BC--
			f := c.F() & (flagS | flagZ | flagC)
			f |= blockXYFlags(c.A(), c.dlatch)
			if c.BC != 0 {
				f |= flagPV
			}
			c.SetF(f)
			return pins
		}
	}
	ldiBody := func(dir int16) []mcycleDesc {
		return []mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.HL }, func(c *CPU, v byte) { c.dlatch = v }),
			mcWrite(func(c *CPU) uint16 { return c.DE }, func(c *CPU) byte { return c.dlatch }),
			mcInternal(2, nil),
		}
	}
	edTable[0xA0] = compileOp(ldiBody(1), ldiStep(1))
	edTable[0xA8] = compileOp(ldiBody(-1), ldiStep(-1))

	ldirEntry := func(dir int16) *condEntry {
		notTaken := compileOp(ldiBody(dir), ldiStep(dir))
		taken := compileOp(append(ldiBody(dir), mcInternal(5, nil)), func(c *CPU, pins uint64) uint64 {
			pins = ldiStep(dir)(c, pins)
			c.PC -= 2
			c.WZ = c.PC + 1
			return pins
		})
		return &condEntry{
			test:     func(c *CPU) bool { return c.BC != 1 },
			taken:    taken,
			notTaken: notTaken,
		}
	}
	edCondOps[0xB0] = ldirEntry(1)
	edCondOps[0xB8] = ldirEntry(-1)

	cpiStep := func(dir int16) microStep {
		return func(c *CPU, pins uint64) uint64 {
			a := c.A()
			v := c.dlatch
			res := a - v
			c.HL = uint16(int32(c.HL) + int32(dir))
			c.BC--
			halfCarry := (a & 0x0F) < (v & 0x0F)
			f := szFlags(res) | flagN | (c.F() & flagC)
			if halfCarry {
				f |= flagH
			}
			n := res
			if halfCarry {
				n--
			}
			if n&0x02 != 0 {
				f |= flagY
			}
			if n&0x08 != 0 {
				f |= flagX
			}
			if c.BC != 0 {
				f |= flagPV
			}
			c.SetF(f)
			return pins
		}
	}
	cpiBody := []mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.HL }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(5, nil),
	}
	edTable[0xA1] = compileOp(cpiBody, cpiStep(1))
	edTable[0xA9] = compileOp(cpiBody, cpiStep(-1))

	cpirEntry := func(dir int16) *condEntry {
		notTaken := compileOp(cpiBody, cpiStep(dir))
		// Whether the byte matches is only known once it is latched, so a
		// match switches the rest of the op over to notTaken's final step
		// and timing (its step index 2, and the pip bits past offset 2).
		takenBody := []mcycleDesc{
			mcRead(func(c *CPU) uint16 { return c.HL }, func(c *CPU, v byte) {
				c.dlatch = v
				if c.A() == v {
					c.stepBase = notTaken.stepBase
					c.pip = (notTaken.pip & 0xFFFFFFFF) >> 3
				}
			}),
			mcInternal(5, nil),
			mcInternal(5, nil),
		}
		taken := compileOp(takenBody, func(c *CPU, pins uint64) uint64 {
			pins = cpiStep(dir)(c, pins)
			c.PC -= 2
			c.WZ = c.PC + 1
			return pins
		})
		return &condEntry{
			test: func(c *CPU) bool {
				return c.BC != 1
			},
			taken:    taken,
			notTaken: notTaken,
		}
	}
	edCondOps[0xB1] = cpirEntry(1)
	edCondOps[0xB9] = cpirEntry(-1)

	// iniIndStep applies the documented INI/IND undocumented-flag formula:
	// k folds the I/O byte together with C as it will read after the port
	// address auto-increments/decrements, and its low 3 bits crossed with
	// the decremented B feed PV; its carry-out feeds H and C.
	iniIndStep := func(dir int16) microStep {
		return func(c *CPU, pins uint64) uint64 {
			n := c.dlatch
			oldC := c.C()
			c.SetB(c.B() - 1)
			c.HL = uint16(int32(c.HL) + int32(dir))
			k := int(n) + int(byte(int16(oldC)+dir))
			f := szFlags(c.B()) | xyFlags(c.B())
			if n&0x80 != 0 {
				f |= flagN
			}
			if k > 0xFF {
				f |= flagH | flagC
			}
			if parity(byte(k&0x07) ^ c.B()) {
				f |= flagPV
			}
			c.SetF(f)
			return pins
		}
	}
	iniBody := []mcycleDesc{
		mcIORead(func(c *CPU) uint16 { return uint16(c.B())<<8 | uint16(c.C()) }, func(c *CPU, v byte) { c.dlatch = v }),
		mcWrite(func(c *CPU) uint16 { return c.HL }, func(c *CPU) byte { return c.dlatch }),
	}
	edTable[0xA2] = compileOp(iniBody, iniIndStep(1))
	edTable[0xAA] = compileOp(iniBody, iniIndStep(-1))

	iniIndrEntry := func(dir int16) *condEntry {
		notTaken := compileOp(iniBody, iniIndStep(dir))
		taken := compileOp(append(append([]mcycleDesc{}, iniBody...), mcInternal(5, nil)), func(c *CPU, pins uint64) uint64 {
			pins = iniIndStep(dir)(c, pins)
			c.PC -= 2
			return pins
		})
		return &condEntry{
			test:     func(c *CPU) bool { return c.B() != 1 },
			taken:    taken,
			notTaken: notTaken,
		}
	}
	edCondOps[0xB2] = iniIndrEntry(1)
	edCondOps[0xBA] = iniIndrEntry(-1)

	// outiOutdStep mirrors iniIndStep's formula but folds the I/O byte with
	// the new value of L (post-increment/decrement) rather than C, per the
	// documented OUTI/OUTD undocumented-flag behavior.
	outiOutdStep := func(dir int16) microStep {
		return func(c *CPU, pins uint64) uint64 {
			n := c.dlatch
			c.SetB(c.B() - 1)
			c.HL = uint16(int32(c.HL) + int32(dir))
			k := int(n) + int(lo(c.HL))
			f := szFlags(c.B()) | xyFlags(c.B())
			if n&0x80 != 0 {
				f |= flagN
			}
			if k > 0xFF {
				f |= flagH | flagC
			}
			if parity(byte(k&0x07) ^ c.B()) {
				f |= flagPV
			}
			c.SetF(f)
			return pins
		}
	}
	outiBody := []mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.HL }, func(c *CPU, v byte) { c.dlatch = v }),
		mcIOWrite(func(c *CPU) uint16 { return uint16(c.B())<<8 | uint16(c.C()) }, func(c *CPU) byte { return c.dlatch }),
	}
	edTable[0xA3] = compileOp(outiBody, outiOutdStep(1))
	edTable[0xAB] = compileOp(outiBody, outiOutdStep(-1))

	otirOtdrEntry := func(dir int16) *condEntry {
		notTaken := compileOp(outiBody, outiOutdStep(dir))
		taken := compileOp(append(append([]mcycleDesc{}, outiBody...), mcInternal(5, nil)), func(c *CPU, pins uint64) uint64 {
			pins = outiOutdStep(dir)(c, pins)
			c.PC -= 2
			return pins
		})
		return &condEntry{
			test:     func(c *CPU) bool { return c.B() != 1 },
			taken:    taken,
			notTaken: notTaken,
		}
	}
	edCondOps[0xB3] = otirOtdrEntry(1)
	edCondOps[0xBB] = otirOtdrEntry(-1)
}
