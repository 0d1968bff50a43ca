package z80pins

import "testing"

func TestLdRR(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x47}) // LD B,A
	rig.cpu.SetA(0x42)
	rig.step()
	requireEqualU8(t, "B", rig.cpu.B(), 0x42)
}

func TestLdRN(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x06, 0x99}) // LD B,n
	rig.step()
	requireEqualU8(t, "B", rig.cpu.B(), 0x99)
	requireEqualU16(t, "PC", rig.cpu.PC, 0x0003)
}

func TestLdHLIndirect(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x77}) // LD (HL),A
	rig.cpu.HL = 0x4000
	rig.cpu.SetA(0xAB)
	rig.step()
	requireEqualU8(t, "mem[HL]", rig.bus.Mem[0x4000], 0xAB)
}

func TestLdAIndirectBC(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x0A}) // LD A,(BC)
	rig.cpu.BC = 0x4000
	rig.bus.Mem[0x4000] = 0x77
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0x77)
	requireEqualU16(t, "WZ", rig.cpu.WZ, 0x4001)
}

func TestLdNNIndirectHL(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x22, 0x00, 0x50}) // LD (0x5000),HL
	rig.cpu.HL = 0x1234
	rig.step()
	requireEqualU8(t, "mem low", rig.bus.Mem[0x5000], 0x34)
	requireEqualU8(t, "mem high", rig.bus.Mem[0x5001], 0x12)
}

func TestLdSPNN(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x31, 0x00, 0x80}) // LD SP,0x8000
	rig.step()
	requireEqualU16(t, "SP", rig.cpu.SP, 0x8000)
}

func TestPushPop(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xC5, 0xD1}) // PUSH BC ; POP DE
	rig.cpu.SP = 0x8000
	rig.cpu.BC = 0xBEEF
	rig.step()
	requireEqualU16(t, "SP after PUSH", rig.cpu.SP, 0x7FFE)
	rig.step()
	requireEqualU16(t, "DE after POP", rig.cpu.DE, 0xBEEF)
	requireEqualU16(t, "SP after POP", rig.cpu.SP, 0x8000)
}
