package z80pins

import "testing"

func TestRLCRegister(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xCB, 0x00}) // RLC B
	rig.cpu.SetB(0x80)
	rig.step()
	requireEqualU8(t, "B", rig.cpu.B(), 0x01)
	if rig.cpu.F()&flagC == 0 {
		t.Fatalf("RLC of 0x80 must set carry from the vacated bit 7")
	}
}

func TestSRLClearsBit7(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xCB, 0x3F}) // SRL A
	rig.cpu.SetA(0xFF)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x7F)
	if rig.cpu.F()&flagC == 0 {
		t.Fatalf("SRL of 0xFF must set carry from bit 0")
	}
}

func TestResSetOnHLIndirect(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xCB, 0x86, 0xCB, 0xC6}) // RES 0,(HL) ; SET 0,(HL)
	rig.cpu.HL = 0x4000
	rig.bus.Mem[0x4000] = 0xFF
	rig.step()
	requireEqualU8(t, "mem after RES", rig.bus.Mem[0x4000], 0xFE)
	rig.step()
	requireEqualU8(t, "mem after SET", rig.bus.Mem[0x4000], 0xFF)
}

func TestBitOnHLIndirectDoesNotWriteBack(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xCB, 0x46}) // BIT 0,(HL)
	rig.cpu.HL = 0x4000
	rig.bus.Mem[0x4000] = 0x01
	rig.step()
	requireEqualU8(t, "mem unchanged", rig.bus.Mem[0x4000], 0x01)
	if rig.cpu.F()&flagZ != 0 {
		t.Fatalf("bit 0 of 0x01 is set, Z must be clear")
	}
}
