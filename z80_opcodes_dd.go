package z80pins

// This file builds the parts of the DD/FD (IX/IY) instruction set that a
// plain prefix substitution cannot express: everywhere an opcode treats
// (HL) as a true memory operand, the indexed form needs an extra
// displacement byte and the 5 T-states real hardware spends adding it to
// IX/IY before the memory cycle, so those opcodes get their own
// ddfdOverrides entry. Every other opcode (ADD HL,rp / LD HL,nn / EX
// (SP),HL / JP (HL) / ...) already does the right thing unchanged, since
// the base table reaches HL only through hlOperand()/setHLOperand(),
// which substitute IX/IY automatically once c.prefix is set — those slots
// are deliberately left nil here and fall through to baseTable.

// mcIndexedDisp reads the displacement byte following a DD/FD-prefixed
// opcode byte (the DD CB/FD CB displacement is read during decode
// instead), latches it, folds it into WZ (the effective address, as
// real silicon's MEMPTR does), then spends the 5 T-states hardware uses
// computing IX+d/IY+d before any memory cycle touches it.
func mcIndexedDisp() []mcycleDesc {
	return []mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
			c.PC++
			c.dispOff = int8(v)
			c.WZ = c.indexedAddr()
		}),
		mcInternal(5, nil),
	}
}

// trueReg8Get/trueReg8Set dereference B,C,D,E,H,L,A without IX/IY
// substitution — needed because LD H,(IX+d)/LD L,(IX+d) (and their
// (IX+d),r counterparts) are documented to address the real H/L pair,
// never IXH/IXL, even while a DD/FD prefix is active.
func (c *CPU) trueReg8Get(idx byte) byte {
	switch idx {
	case 4:
		return hi(c.HL)
	case 5:
		return lo(c.HL)
	default:
		return c.reg8Get(idx)
	}
}

func (c *CPU) trueReg8Set(idx byte, v byte) {
	switch idx {
	case 4:
		c.HL = setHi(c.HL, v)
	case 5:
		c.HL = setLo(c.HL, v)
	default:
		c.reg8Set(idx, v)
	}
}

func buildDDFDIndexedLoads() {
	// LD r,(IX+d)/(IY+d): dst in {0,1,2,3,4,5,7}, same opcode byte as the
	// base table's LD r,(HL).
	for dst := byte(0); dst < 8; dst++ {
		if dst == 6 {
			continue
		}
		dst := dst
		op := byte(0x46 | (dst << 3))
		entry := compileOp(append(mcIndexedDisp(),
			mcRead(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU, v byte) { c.dlatch = v }),
		), func(c *CPU, pins uint64) uint64 {
			c.trueReg8Set(dst, c.dlatch)
			return pins
		})
		ddfdOverrides[op] = &entry
	}

	// LD (IX+d),r/(IY+d),r: src in {0,1,2,3,4,5,7}, same opcode byte as
	// the base table's LD (HL),r.
	for src := byte(0); src < 8; src++ {
		if src == 6 {
			continue
		}
		src := src
		op := byte(0x70 | src)
		entry := compileOp(append(mcIndexedDisp(),
			mcWrite(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU) byte { return c.trueReg8Get(src) }),
		), nil)
		ddfdOverrides[op] = &entry
	}

	// LD (IX+d),n/(IY+d),n: displacement and immediate are both read
	// before the 2 T-states of address-calc delay that precede the write.
	ldNEntry := compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
			c.PC++
			c.dispOff = int8(v)
			c.WZ = c.indexedAddr()
		}),
		mcRead(func(c *CPU) uint16 { return c.PC }, func(c *CPU, v byte) {
			c.PC++
			c.dlatch = v
		}),
		mcInternal(2, nil),
		mcWrite(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU) byte { return c.dlatch }),
	}, nil)
	ddfdOverrides[0x36] = &ldNEntry
}

func buildDDFDIncDec() {
	incEntry := compileOp(append(mcIndexedDisp(),
		mcRead(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(1, nil),
		mcWrite(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU) byte {
			v := c.dlatch + 1
			c.SetF(incFlags8(v, c.F()&flagC))
			return v
		}),
	), nil)
	ddfdOverrides[0x34] = &incEntry

	decEntry := compileOp(append(mcIndexedDisp(),
		mcRead(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(1, nil),
		mcWrite(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU) byte {
			v := c.dlatch - 1
			c.SetF(decFlags8(v, c.F()&flagC))
			return v
		}),
	), nil)
	ddfdOverrides[0x35] = &decEntry
}

func buildDDFDAluIndexed() {
	opcodes := [8]byte{0x86, 0x8E, 0x96, 0x9E, 0xA6, 0xAE, 0xB6, 0xBE}
	for sel, op := range opcodes {
		sel := byte(sel)
		op := op
		entry := compileOp(append(mcIndexedDisp(),
			mcRead(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU, v byte) { c.dlatch = v }),
		), func(c *CPU, pins uint64) uint64 {
			c.aluOp(sel, c.dlatch)
			return pins
		})
		ddfdOverrides[op] = &entry
	}
}

// decodeCBOpByte splits a CB-table opcode byte into the group (0=rotate/
// shift, 1=BIT, 2=RES, 3=SET), the rotate-selector-or-bit-index, and the
// low 3 bits naming the register an undocumented DD/FD CB form also
// writes its result to.
func decodeCBOpByte(op byte) (group, sel, lowReg byte) {
	return (op >> 6) & 0x03, (op >> 3) & 0x07, op & 0x07
}

func buildDDFDCBTable() {
	// BIT b,(IX+d)/(IY+d): reads the operand, never writes it back. The
	// undocumented X/Y flag bits come from WZ's high byte (the effective
	// address just computed), not from the operand byte, matching the
	// well-documented behaviour of this form.
	ddfdCBBitEntry = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(2, nil),
	}, func(c *CPU, pins uint64) uint64 {
		group, sel, _ := decodeCBOpByte(c.cbOpcode)
		_, flags := applyCBOp(group, sel, sel, c.dlatch, c.F())
		flags = (flags &^ (flagX | flagY)) | xyFlags(hi(c.WZ))
		c.SetF(flags)
		return pins
	})

	// RLC/RRC/RL/RR/SLA/SRA/SLL/SRL/RES/SET b,(IX+d)/(IY+d): a
	// read-modify-write of the memory operand. The undocumented forms
	// (lowReg != 6) additionally copy the result into a register — real
	// silicon doesn't special-case the "official" encoding at all, it
	// just always writes the 8-bit result wherever the low 3 bits say to.
	ddfdCBRMWEntry = compileOp([]mcycleDesc{
		mcRead(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU, v byte) { c.dlatch = v }),
		mcInternal(1, nil),
		mcWrite(func(c *CPU) uint16 { return c.indexedAddr() }, func(c *CPU) byte {
			group, sel, lowReg := decodeCBOpByte(c.cbOpcode)
			r, flags := applyCBOp(group, sel, sel, c.dlatch, c.F())
			c.SetF(flags)
			if lowReg != 6 {
				c.trueReg8Set(lowReg, r)
			}
			return r
		}),
	}, nil)
}

func init() {
	buildDDFDIndexedLoads()
	buildDDFDIncDec()
	buildDDFDAluIndexed()
	buildDDFDCBTable()
}
