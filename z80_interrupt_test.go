package z80pins

import "testing"

func TestHaltReleasedByNMI(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x76}) // HALT
	rig.step()
	if !rig.cpu.Halted() {
		t.Fatalf("CPU must be halted after executing 0x76")
	}
	requireEqualU16(t, "PC frozen on HALT", rig.cpu.PC, 0x0001)

	rig.cpu.SetNMI(true)
	rig.cpu.IFF2 = true
	rig.pins = rig.cpu.Run(rig.bus, rig.pins, 40)

	if rig.cpu.Halted() {
		t.Fatalf("NMI must release HALT")
	}
	requireEqualU16(t, "PC after NMI ack (one past the fetch at 0x0066)", rig.cpu.PC, 0x0067)
	requireEqualBool(t, "IFF1 cleared", rig.cpu.IFF1, false)
	requireEqualBool(t, "IFF2 preserved", rig.cpu.IFF2, true)
}

func TestMaskableInterruptIM1(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x00}) // NOP, never reached before the INT fires
	rig.cpu.IFF1 = true
	rig.cpu.IM = 1
	rig.cpu.SetINT(true)
	rig.pins = rig.cpu.Run(rig.bus, rig.pins, 40)

	requireEqualU16(t, "PC vectored to 0x0038 (one past the fetch there)", rig.cpu.PC, 0x0039)
	requireEqualBool(t, "IFF1 cleared on INT ack", rig.cpu.IFF1, false)
}

func TestMaskableInterruptIgnoredWhenDisabled(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x00, 0x00}) // two NOPs
	rig.cpu.IFF1 = false
	rig.cpu.SetINT(true)
	rig.step()

	requireEqualU16(t, "PC advances normally", rig.cpu.PC, 0x0002)
}

func TestHaltIgnoresNonZeroByteAtFrozenPC(t *testing.T) {
	rig := newTestRig()
	// HALT followed by a byte that is very much not a NOP — if the fetch
	// logic ever let this leak through as a real opcode (0x3E is LD A,n)
	// A would pick up 0xAA and PC would run away from its frozen value.
	rig.resetAndLoad(0x0000, []byte{0x76, 0x3E, 0xAA})
	rig.cpu.SetA(0x00)
	rig.step()
	if !rig.cpu.Halted() {
		t.Fatalf("CPU must be halted after executing 0x76")
	}
	requireEqualU16(t, "PC frozen on HALT", rig.cpu.PC, 0x0001)

	for i := 0; i < 3; i++ {
		rig.step()
		requireEqualU16(t, "PC stays frozen while halted", rig.cpu.PC, 0x0001)
		requireEqualU8(t, "A must not absorb the frozen-PC byte as an operand", rig.cpu.A(), 0x00)
	}

	rig.cpu.SetNMI(true)
	rig.cpu.IFF2 = true
	rig.pins = rig.cpu.Run(rig.bus, rig.pins, 40)
	requireEqualU16(t, "PC after NMI ack (one past the fetch at 0x0066)", rig.cpu.PC, 0x0067)
}

func TestNMIWinsOverPendingINT(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x00})
	rig.cpu.IFF1 = true
	rig.cpu.IM = 1
	rig.cpu.SetINT(true)
	rig.cpu.SetNMI(true)
	rig.pins = rig.cpu.Run(rig.bus, rig.pins, 40)

	requireEqualU16(t, "NMI vector wins", rig.cpu.PC, 0x0067)
}
