package z80pins

import "testing"

func TestDAAAfterAdd(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xC6, 0x01, 0x27}) // ADD A,1 ; DAA
	rig.cpu.SetA(0x0F)
	rig.step()
	requireEqualU8(t, "A after ADD", rig.cpu.A(), 0x10)
	if rig.cpu.F()&flagH == 0 {
		t.Fatalf("ADD A,1 on 0x0F must set H")
	}
	rig.step()
	requireEqualU8(t, "A after DAA", rig.cpu.A(), 0x16)
}

func TestCCFTakesHFromPriorCarryAndXYFromA(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x3F}) // CCF
	rig.cpu.SetA(0x28) // bits 3 and 5 set, to land in F's X/Y
	rig.cpu.SetF(flagC)
	rig.step()
	f := rig.cpu.F()
	if f&flagC != 0 {
		t.Fatalf("CCF must invert C")
	}
	if f&flagH == 0 {
		t.Fatalf("CCF must set H to the previous C")
	}
	if f&flagN != 0 {
		t.Fatalf("CCF must clear N")
	}
	if f&(flagX|flagY) != flagX|flagY {
		t.Fatalf("CCF's X/Y must come from A (0x28), got F=%#02x", f)
	}
}

func TestSCFSetsCarryClearsHN(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x37}) // SCF
	rig.cpu.SetF(flagH | flagN | flagZ)
	rig.step()
	f := rig.cpu.F()
	if f&flagC == 0 {
		t.Fatalf("SCF must set C")
	}
	if f&(flagH|flagN) != 0 {
		t.Fatalf("SCF must clear H and N")
	}
	if f&flagZ == 0 {
		t.Fatalf("SCF must not disturb Z")
	}
}

func TestCPLComplementsAndSetsHN(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0x2F}) // CPL
	rig.cpu.SetA(0x3C)
	rig.step()
	requireEqualU8(t, "A", rig.cpu.A(), 0xC3)
	f := rig.cpu.F()
	if f&(flagH|flagN) != flagH|flagN {
		t.Fatalf("CPL must set H and N, got F=%#02x", f)
	}
}

func TestBitTestSetsZWhenClear(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xCB, 0x47}) // BIT 0,A
	rig.cpu.SetA(0x00)
	rig.step()
	if rig.cpu.F()&flagZ == 0 {
		t.Fatalf("BIT 0,A on 0x00 must set Z")
	}
	if rig.cpu.F()&flagH == 0 {
		t.Fatalf("BIT always sets H")
	}
}

func TestBitTestClearsZWhenSet(t *testing.T) {
	rig := newTestRig()
	rig.resetAndLoad(0x0000, []byte{0xCB, 0x47}) // BIT 0,A
	rig.cpu.SetA(0x01)
	rig.step()
	if rig.cpu.F()&flagZ != 0 {
		t.Fatalf("BIT 0,A on 0x01 must clear Z")
	}
}
