package z80pins

// Pin positions on the 40-bit bus. Bits 0-15 are the address bus, bits
// 16-23 are the data bus, the remainder are control and the two virtual
// daisy-chain lines (IEIO, RETI) that never correspond to physical Z80
// package pins but let a host compose several interrupt-capable chips.
const (
	PinA0 = uint64(1) << 0
	// PinA15 is the top address line; address occupies bits 0-15.
	PinA15 = uint64(1) << 15

	PinD0 = uint64(1) << 16
	// PinD7 is the top data line; data occupies bits 16-23.
	PinD7 = uint64(1) << 23

	PinM1   = uint64(1) << 24
	PinMREQ = uint64(1) << 25
	PinIORQ = uint64(1) << 26
	PinRD   = uint64(1) << 27
	PinWR   = uint64(1) << 28
	PinHALT = uint64(1) << 29
	PinINT  = uint64(1) << 30
	PinRES  = uint64(1) << 31
	PinNMI  = uint64(1) << 32
	PinWAIT = uint64(1) << 33
	PinRFSH = uint64(1) << 34

	PinIEIO = uint64(1) << 37
	PinRETI = uint64(1) << 38
)

// addrMask and dataMask select their respective bus fields.
const (
	addrMask = uint64(0xFFFF)
	dataMask = uint64(0xFF) << 16
)

// ctrlMask groups every pin the tick engine clears for itself on entry to
// an active T-state, before any step dispatch re-asserts what it needs.
// WAIT, NMI, INT and RES are host-driven inputs and are never cleared
// here; IEIO and RETI are left alone too (see z80_interrupts.go).
const ctrlMask = PinM1 | PinMREQ | PinIORQ | PinRD | PinWR | PinRFSH

// GetAddr extracts the 16-bit address field from a pin word.
func GetAddr(pins uint64) uint16 {
	return uint16(pins & addrMask)
}

// SetAddr returns pins with the address field replaced by addr, leaving
// every other field untouched.
func SetAddr(pins uint64, addr uint16) uint64 {
	return (pins &^ addrMask) | uint64(addr)
}

// GetData extracts the 8-bit data field from a pin word.
func GetData(pins uint64) byte {
	return byte((pins & dataMask) >> 16)
}

// SetData returns pins with the data field replaced by data.
func SetData(pins uint64, data byte) uint64 {
	return (pins &^ dataMask) | (uint64(data) << 16)
}

// SetAddrCtrl sets the address field and ORs in the given control bits,
// after clearing the standard control group first.
func SetAddrCtrl(pins uint64, addr uint16, ctrl uint64) uint64 {
	pins = (pins &^ ctrlMask &^ addrMask) | uint64(addr)
	return pins | ctrl
}

// SetAddrData sets both the address and data fields with no control bits
// touched; used to stage a write's data byte alongside its address.
func SetAddrData(pins uint64, addr uint16, data byte) uint64 {
	pins = (pins &^ addrMask &^ dataMask) | uint64(addr) | (uint64(data) << 16)
	return pins
}

// SetAddrDataCtrl sets address, data and control bits together, the shape
// every bus-write assertion needs in one call.
func SetAddrDataCtrl(pins uint64, addr uint16, data byte, ctrl uint64) uint64 {
	pins = (pins &^ ctrlMask &^ addrMask &^ dataMask) | uint64(addr) | (uint64(data) << 16)
	return pins | ctrl
}
