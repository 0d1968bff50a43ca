package z80pins

import "fmt"

// RegisterInfo describes one register for display in a debugger front end,
// grounded on the teacher's Machine Monitor register panel.
type RegisterInfo struct {
	Name     string
	BitWidth int
	Value    uint64
	Group    string // "general", "index", "status", "shadow", "flags"
}

// MemReader is the read side of the host's bus, used by the debug surface
// for memory inspection and the backtrace walk — the core itself never
// touches memory except through the pin word, so anything that needs a
// byte at an address outside of a tick must be handed this.
type MemReader interface {
	ReadByte(addr uint16) byte
}

// GetRegisters returns a read-only snapshot of the full register file,
// including the shadow bank and the index registers, in the order a
// debugger panel would display them.
func (c *CPU) GetRegisters() []RegisterInfo {
	return []RegisterInfo{
		{"A", 8, uint64(c.A()), "general"},
		{"F", 8, uint64(c.F()), "flags"},
		{"BC", 16, uint64(c.BC), "general"},
		{"DE", 16, uint64(c.DE), "general"},
		{"HL", 16, uint64(c.HL), "general"},
		{"IX", 16, uint64(c.IX), "index"},
		{"IY", 16, uint64(c.IY), "index"},
		{"SP", 16, uint64(c.SP), "status"},
		{"PC", 16, uint64(c.PC), "status"},
		{"WZ", 16, uint64(c.WZ), "status"},
		{"I", 8, uint64(c.I), "status"},
		{"R", 8, uint64(c.R), "status"},
		{"AF'", 16, uint64(c.AF2), "shadow"},
		{"BC'", 16, uint64(c.BC2), "shadow"},
		{"DE'", 16, uint64(c.DE2), "shadow"},
		{"HL'", 16, uint64(c.HL2), "shadow"},
		{"IFF1", 1, boolToU64(c.IFF1), "status"},
		{"IFF2", 1, boolToU64(c.IFF2), "status"},
		{"IM", 8, uint64(c.IM), "status"},
	}
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// GetRegister looks up a single register by name (all-upper or all-lower
// case, for 8-bit registers and pairs alike; individual flags are not
// named here, only F as a whole), returning ok=false for an unknown
// name rather than panicking — a debugger probing a typo shouldn't crash
// the core.
func (c *CPU) GetRegister(name string) (uint64, bool) {
	switch name {
	case "A", "a":
		return uint64(c.A()), true
	case "F", "f":
		return uint64(c.F()), true
	case "B", "b":
		return uint64(c.B()), true
	case "C", "c":
		return uint64(c.C()), true
	case "D", "d":
		return uint64(c.D()), true
	case "E", "e":
		return uint64(c.E()), true
	case "H", "h":
		return uint64(c.H()), true
	case "L", "l":
		return uint64(c.L()), true
	case "AF", "af":
		return uint64(c.AF), true
	case "BC", "bc":
		return uint64(c.BC), true
	case "DE", "de":
		return uint64(c.DE), true
	case "HL", "hl":
		return uint64(c.HL), true
	case "IX", "ix":
		return uint64(c.IX), true
	case "IY", "iy":
		return uint64(c.IY), true
	case "SP", "sp":
		return uint64(c.SP), true
	case "PC", "pc":
		return uint64(c.PC), true
	case "WZ", "wz":
		return uint64(c.WZ), true
	case "I", "i":
		return uint64(c.I), true
	case "R", "r":
		return uint64(c.R), true
	default:
		return 0, false
	}
}

// SetRegister writes a single register by name, the direct read/write
// register-file access documented for debugger integration. Returns false
// for an unknown name; writes to a pair under an active DD/FD prefix are
// deliberately not special-cased here (HL always means HL to a debugger,
// never the currently-substituted IX/IY — that substitution is purely an
// artifact of mid-instruction decode).
func (c *CPU) SetRegister(name string, value uint64) bool {
	switch name {
	case "A", "a":
		c.AF = setHi(c.AF, byte(value))
	case "F", "f":
		c.AF = setLo(c.AF, byte(value))
	case "B", "b":
		c.BC = setHi(c.BC, byte(value))
	case "C", "c":
		c.BC = setLo(c.BC, byte(value))
	case "D", "d":
		c.DE = setHi(c.DE, byte(value))
	case "E", "e":
		c.DE = setLo(c.DE, byte(value))
	case "H", "h":
		c.HL = setHi(c.HL, byte(value))
	case "L", "l":
		c.HL = setLo(c.HL, byte(value))
	case "AF", "af":
		c.AF = uint16(value)
	case "BC", "bc":
		c.BC = uint16(value)
	case "DE", "de":
		c.DE = uint16(value)
	case "HL", "hl":
		c.HL = uint16(value)
	case "IX", "ix":
		c.IX = uint16(value)
	case "IY", "iy":
		c.IY = uint16(value)
	case "SP", "sp":
		c.SP = uint16(value)
	case "PC", "pc":
		c.PC = uint16(value)
	case "WZ", "wz":
		c.WZ = uint16(value)
	case "I", "i":
		c.I = byte(value)
	case "R", "r":
		c.R = byte(value)
	default:
		return false
	}
	return true
}

// String renders a one-line register dump, the shape a debugger's status
// line or a conformance-harness failure report wants.
func (c *CPU) String() string {
	return fmt.Sprintf(
		"AF=%04X BC=%04X DE=%04X HL=%04X IX=%04X IY=%04X SP=%04X PC=%04X I=%02X R=%02X IM=%d IFF1=%t IFF2=%t",
		c.AF, c.BC, c.DE, c.HL, c.IX, c.IY, c.SP, c.PC, c.I, c.R, c.IM, c.IFF1, c.IFF2,
	)
}
