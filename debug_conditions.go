package z80pins

import (
	"fmt"
	"strconv"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// ConditionOp is the comparison operator of a simple breakpoint condition.
type ConditionOp int

const (
	CondOpEqual ConditionOp = iota
	CondOpNotEqual
	CondOpLess
	CondOpGreater
	CondOpLessEqual
	CondOpGreaterEqual
)

// ConditionSource is what a simple breakpoint condition compares.
type ConditionSource int

const (
	CondSourceRegister ConditionSource = iota
	CondSourceMemory
)

// BreakpointCondition is the fast-path grammar: "reg OP value" or
// "[addr] OP value", mirroring the teacher's hand-rolled ParseCondition.
type BreakpointCondition struct {
	Source  ConditionSource
	RegName string
	MemAddr uint16
	Op      ConditionOp
	Value   uint64
}

// ParseCondition parses the simple "REG==$FF" / "[$4000]!=0" grammar. If
// text doesn't match it, the caller should fall back to EvaluateLua rather
// than treating this as a hard error — the Lua path accepts anything this
// one rejects.
func ParseCondition(text string) (*BreakpointCondition, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("z80pins: empty condition")
	}

	var op ConditionOp
	var opStr string
	var opIdx int
	for _, candidate := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if idx := strings.Index(text, candidate); idx >= 0 {
			opStr, opIdx = candidate, idx
			break
		}
	}
	if opStr == "" {
		return nil, fmt.Errorf("z80pins: no operator in condition %q", text)
	}
	switch opStr {
	case "==":
		op = CondOpEqual
	case "!=":
		op = CondOpNotEqual
	case "<":
		op = CondOpLess
	case ">":
		op = CondOpGreater
	case "<=":
		op = CondOpLessEqual
	case ">=":
		op = CondOpGreaterEqual
	}

	lhs := strings.TrimSpace(text[:opIdx])
	rhs := strings.TrimSpace(text[opIdx+len(opStr):])

	value, err := parseNumericLiteral(rhs)
	if err != nil {
		return nil, fmt.Errorf("z80pins: invalid value %q: %w", rhs, err)
	}

	if strings.HasPrefix(lhs, "[") && strings.HasSuffix(lhs, "]") {
		addr, err := parseNumericLiteral(lhs[1 : len(lhs)-1])
		if err != nil {
			return nil, fmt.Errorf("z80pins: invalid memory address %q: %w", lhs, err)
		}
		return &BreakpointCondition{Source: CondSourceMemory, MemAddr: uint16(addr), Op: op, Value: value}, nil
	}

	return &BreakpointCondition{Source: CondSourceRegister, RegName: strings.ToUpper(lhs), Op: op, Value: value}, nil
}

// parseNumericLiteral accepts "$FF"/"0xFF" hex and plain decimal, the two
// forms a human typing a breakpoint condition actually uses.
func parseNumericLiteral(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "$"):
		return strconv.ParseUint(s[1:], 16, 64)
	case strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X"):
		return strconv.ParseUint(s[2:], 16, 64)
	default:
		return strconv.ParseUint(s, 10, 64)
	}
}

func compareValues(actual uint64, op ConditionOp, expected uint64) bool {
	switch op {
	case CondOpEqual:
		return actual == expected
	case CondOpNotEqual:
		return actual != expected
	case CondOpLess:
		return actual < expected
	case CondOpGreater:
		return actual > expected
	case CondOpLessEqual:
		return actual <= expected
	default:
		return actual >= expected
	}
}

// EvaluateCondition checks the fast-path grammar's condition against the
// CPU's current state (and, for a memory condition, the supplied bus). A
// nil condition is always satisfied.
func (c *CPU) EvaluateCondition(cond *BreakpointCondition, mem MemReader) bool {
	if cond == nil {
		return true
	}
	var actual uint64
	switch cond.Source {
	case CondSourceRegister:
		val, ok := c.GetRegister(cond.RegName)
		if !ok {
			return false
		}
		actual = val
	case CondSourceMemory:
		if mem == nil {
			return false
		}
		actual = uint64(mem.ReadByte(cond.MemAddr))
	}
	return compareValues(actual, cond.Op, cond.Value)
}

// EvaluateLua evaluates an arbitrary Lua boolean expression against a
// table of the CPU's register and flag values — the fallback for any
// breakpoint condition too expressive for the simple grammar above, e.g.
// "(a & 0x80) ~= 0 and pc > 0x4000".
func (c *CPU) EvaluateLua(expr string) (bool, error) {
	L := lua.NewState()
	defer L.Close()

	reg := L.NewTable()
	f := c.F()
	fields := map[string]uint64{
		"a": uint64(c.A()), "f": uint64(f), "b": uint64(c.B()), "c": uint64(c.C()),
		"d": uint64(c.D()), "e": uint64(c.E()), "h": uint64(c.H()), "l": uint64(c.L()),
		"af": uint64(c.AF), "bc": uint64(c.BC), "de": uint64(c.DE), "hl": uint64(c.HL),
		"ix": uint64(c.IX), "iy": uint64(c.IY), "sp": uint64(c.SP), "pc": uint64(c.PC),
		"i": uint64(c.I), "r": uint64(c.R),
		"flag_s": boolToU64(f&flagS != 0), "flag_z": boolToU64(f&flagZ != 0),
		"flag_h": boolToU64(f&flagH != 0), "flag_pv": boolToU64(f&flagPV != 0),
		"flag_n": boolToU64(f&flagN != 0), "flag_c": boolToU64(f&flagC != 0),
	}
	for name, v := range fields {
		L.SetField(reg, name, lua.LNumber(v))
	}
	L.SetGlobal("reg", reg)
	for name, v := range fields {
		L.SetGlobal(name, lua.LNumber(v))
	}

	if err := L.DoString("return (" + expr + ")"); err != nil {
		return false, fmt.Errorf("z80pins: lua condition %q: %w", expr, err)
	}
	ret := L.Get(-1)
	L.Pop(1)
	return lua.LVAsBool(ret), nil
}
