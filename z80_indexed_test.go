package z80pins

import "testing"

func TestLdRIndexedIX(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x7E, 0x05}) // LD A,(IX+5)
	rig.cpu.IX = 0x4000
	rig.bus.Mem[0x4005] = 0x99
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x99)
}

func TestLdIndexedIYNegativeDisplacement(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xFD, 0x77, 0xFE}) // LD (IY-2),A
	rig.cpu.IY = 0x4010
	rig.cpu.SetA(0x55)
	rig.step()
	requireEqualU8(t, "mem[IY-2]", rig.bus.Mem[0x400E], 0x55)
}

func TestLdIndexedImmediate(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x36, 0x02, 0x7B}) // LD (IX+2),0x7B
	rig.cpu.IX = 0x5000
	rig.step()
	requireEqualU8(t, "mem[IX+2]", rig.bus.Mem[0x5002], 0x7B)
}

func TestIncDecIndexed(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x34, 0x00}) // INC (IX+0)
	rig.cpu.IX = 0x6000
	rig.bus.Mem[0x6000] = 0x0F
	rig.step()
	requireEqualU8(t, "mem[IX]", rig.bus.Mem[0x6000], 0x10)
	if rig.cpu.F()&flagH == 0 {
		t.Fatalf("INC (IX+d) across a nibble boundary must set H")
	}
}

func TestAluIndexed(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x86, 0x01}) // ADD A,(IX+1)
	rig.cpu.IX = 0x7000
	rig.cpu.SetA(0x01)
	rig.bus.Mem[0x7001] = 0x02
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x03)
}

func TestDDCBBitOp(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0xCB, 0x03, 0x46}) // BIT 0,(IX+3)
	rig.cpu.IX = 0x4000
	rig.bus.Mem[0x4003] = 0x01
	rig.step()
	if rig.cpu.F()&flagZ != 0 {
		t.Fatalf("bit 0 of 0x01 is set, Z must be clear")
	}
}

func TestDDCBRotateAlsoWritesUndocumentedRegister(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xDD, 0xCB, 0x00, 0x00}) // RLC (IX+0),B (undocumented copy)
	rig.cpu.IX = 0x4000
	rig.bus.Mem[0x4000] = 0x80
	rig.step()
	requireEqualU8(t, "mem[IX]", rig.bus.Mem[0x4000], 0x01)
	requireEqualU8(t, "B (undocumented copy)", rig.cpu.B(), 0x01)
}

func TestIndexedLdHLUsesTrueRegister(t *testing.T) {
	rig := newTestRig()
	// DD 66 d: LD H,(IX+d) addresses the real H register, never IXH.
	rig.resetAndLoad(0x0000, []byte{0xDD, 0x66, 0x00})
	rig.cpu.IX = 0x4000
	rig.cpu.HL = 0x1234
	rig.bus.Mem[0x4000] = 0x9A
	rig.step()
	requireEqualU8(t, "true H", hi(rig.cpu.HL), 0x9A)
	requireEqualU16(t, "IX unchanged", rig.cpu.IX, 0x4000)
}
