package z80pins

// CB-prefixed opcodes are the most regular part of the instruction set:
// the low 3 bits always select one of the 8 operands (B,C,D,E,H,L,(HL),A)
// and the high 5 bits select the operation uniformly across all 256
// opcodes, so the whole table is generated by two nested loops rather
// than written out by hand.

// applyCBOp performs one of the 8 rotate/shift operations (sel 0-7), or
// BIT/RES/SET (group 1-3) on a byte value, returning the result and the
// flags a register-operand form should adopt. This is shared by the
// plain CB table and the DD CB d / FD CB d form, which performs the same
// operation on a byte read from (IX+d)/(IY+d).
func applyCBOp(group byte, sel byte, bit byte, v byte, f byte) (result byte, flags byte) {
	switch group {
	case 0: // rotate/shift, sel 0-7 = RLC,RRC,RL,RR,SLA,SRA,SLL,SRL
		switch sel {
		case 0:
			return rlc(v)
		case 1:
			return rrc(v)
		case 2:
			return rl(v, f&flagC != 0)
		case 3:
			return rr(v, f&flagC != 0)
		case 4:
			return sla(v)
		case 5:
			return sra(v)
		case 6:
			return sll(v)
		default:
			return srl(v)
		}
	case 1: // BIT b,r — result is unused (BIT never writes its operand back)
		return v, bitTest(v, uint(bit), f, v)
	case 2: // RES b,r
		return v &^ (1 << bit), f
	default: // SET b,r
		return v | (1 << bit), f
	}
}

func buildCBTable() {
	for op := 0; op < 256; op++ {
		op := byte(op)
		group := byte(0)
		switch {
		case op < 0x40:
			group = 0
		case op < 0x80:
			group = 1
		case op < 0xC0:
			group = 2
		default:
			group = 3
		}
		sel := (op >> 3) & 0x07 // rotate/shift selector, or bit index for BIT/RES/SET
		src := op & 0x07

		if src == 6 {
			if group == 1 {
				// BIT b,(HL) reads the operand but never writes it back.
				cbTable[op] = compileOp([]mcycleDesc{
					mcRead(func(c *CPU) uint16 { return c.HL }, func(c *CPU, v byte) { c.dlatch = v }),
				}, func(c *CPU, pins uint64) uint64 {
					_, flags := applyCBOp(group, sel, sel, c.dlatch, c.F())
					c.SetF(flags)
					return pins
				})
			} else {
				cbTable[op] = compileOp([]mcycleDesc{
					mcRead(func(c *CPU) uint16 { return c.HL }, func(c *CPU, v byte) { c.dlatch = v }),
					mcInternal(1, nil),
					mcWrite(func(c *CPU) uint16 { return c.HL }, func(c *CPU) byte {
						r, flags := applyCBOp(group, sel, sel, c.dlatch, c.F())
						c.SetF(flags)
						return r
					}),
				}, nil)
			}
			continue
		}

		cbTable[op] = compileOp(nil, func(c *CPU, pins uint64) uint64 {
			v := c.reg8Get(src)
			r, flags := applyCBOp(group, sel, sel, v, c.F())
			c.SetF(flags)
			if group != 1 { // BIT never writes its operand back
				c.reg8Set(src, r)
			}
			return pins
		})
	}
}

func init() {
	buildCBTable()
}
