package z80pins

import "testing"

func TestALUAddHalfCarry(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x80}) // ADD A,B
	rig.cpu.SetA(0x0F)
	rig.cpu.SetB(0x01)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x10)
	requireEqualU8(t, "F", rig.cpu.F(), flagH)
}

func TestALUAddOverflow(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x80}) // ADD A,B
	rig.cpu.SetA(0x7F)
	rig.cpu.SetB(0x01)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x80)
	requireEqualU8(t, "F", rig.cpu.F(), flagS|flagH|flagPV)
}

func TestALUAdcWithCarry(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x88}) // ADC A,B
	rig.cpu.SetA(0xFF)
	rig.cpu.SetB(0x00)
	rig.cpu.SetF(flagC)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x00)
	requireEqualU8(t, "F", rig.cpu.F(), flagZ|flagH|flagC)
}

func TestALUSubBorrow(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x90}) // SUB B
	rig.cpu.SetA(0x00)
	rig.cpu.SetB(0x01)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0xFF)
	requireEqualU8(t, "F", rig.cpu.F(), flagS|flagH|flagN|flagC|flagX|flagY)
}

func TestALUCpFlagsOnlyXYFromOperand(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xB8}) // CP B
	rig.cpu.SetA(0x10)
	rig.cpu.SetB(0x28) // operand donates X/Y, not the (discarded) result
	rig.step()
	requireEqualU8(t, "A unchanged", rig.cpu.A(), 0x10)
	if rig.cpu.F()&(flagX|flagY) != flagX|flagY {
		t.Fatalf("F = %#02x, want X/Y set from operand 0x28", rig.cpu.F())
	}
}

func TestALUAndSetsParityAndHalfCarry(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xA0}) // AND B
	rig.cpu.SetA(0xFF)
	rig.cpu.SetB(0x0F)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x0F)
	if rig.cpu.F()&flagH == 0 {
		t.Fatalf("AND must always set H")
	}
	if rig.cpu.F()&flagPV == 0 {
		t.Fatalf("0x0F has even parity, PV should be set")
	}
}

func TestALUXorZero(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xAF}) // XOR A
	rig.cpu.SetA(0x55)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x00)
	requireEqualU8(t, "F", rig.cpu.F(), flagZ|flagPV)
}

func TestALUImmediateForm(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xC6, 0x05}) // ADD A,5
	rig.cpu.SetA(0x02)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x07)
	requireEqualU16(t, "PC", rig.cpu.PC, 0x0003)
}
