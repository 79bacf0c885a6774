// Package memory implements the CPU-side memory map: the bus that
// decodes the 6502's 64 KiB address space into WRAM, PPU registers,
// the APU register shadow, gamepad ports, and cartridge PRG ROM.
package memory

import "log"

// PPURegisters is the capability the MMU needs from the PPU: the
// eight-register CPU-visible interface, already handling its own
// IO-databus and address-latch side effects.
type PPURegisters interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// APURegisters is the capability the MMU needs from the APU register
// shadow.
type APURegisters interface {
	ReadRegister(addr uint16) uint8
	WriteRegister(addr uint16, value uint8)
}

// Gamepad is the capability the MMU needs from the input system's
// shift-register ports at 0x4016/0x4017.
type Gamepad interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// Cartridge is the capability the MMU needs from the loaded cartridge.
type Cartridge interface {
	ReadPRG(addr uint16) uint8
	WritePRG(addr uint16, value uint8)
}

// Memory is the NES CPU bus. It satisfies cpu.Bus.
type Memory struct {
	wram [0x0800]uint8

	PPU  PPURegisters
	APU  APURegisters
	Pad  Gamepad
	Cart Cartridge

	// OAMDMA, when set, is invoked on a write to 0x4014 with the page
	// to copy into OAM. If nil, the write is ignored; the orchestrator
	// wires this once it has both the CPU and the PPU available.
	OAMDMA func(page uint8)

	openBus uint8
}

// New returns a Memory with no cartridge or peripherals attached. Wire
// PPU, APU, Pad and Cart before use.
func New() *Memory {
	return &Memory{}
}

// Read decodes addr and returns the byte at that CPU-visible location.
func (m *Memory) Read(addr uint16) uint8 {
	var v uint8
	switch {
	case addr < 0x2000:
		v = m.wram[addr&0x07FF]
	case addr < 0x4000:
		v = m.PPU.ReadRegister(0x2000 + addr&0x0007)
	case addr < 0x4014:
		v = m.APU.ReadRegister(addr)
	case addr == 0x4014:
		v = m.openBus
	case addr == 0x4015:
		v = m.APU.ReadRegister(addr)
	case addr == 0x4016, addr == 0x4017:
		if m.Pad != nil {
			v = m.Pad.Read(addr)
		}
	case addr < 0x4020:
		v = m.APU.ReadRegister(addr)
	case addr < 0x8000:
		// Expansion ROM and cartridge save RAM are not modeled; reads of
		// this open-bus window return 0.
		v = 0
	default:
		v = m.Cart.ReadPRG(addr)
	}
	m.openBus = v
	return v
}

// Write decodes addr and stores value at that CPU-visible location.
func (m *Memory) Write(addr uint16, value uint8) {
	m.openBus = value
	switch {
	case addr < 0x2000:
		m.wram[addr&0x07FF] = value
	case addr < 0x4000:
		m.PPU.WriteRegister(0x2000+addr&0x0007, value)
	case addr == 0x4014:
		if m.OAMDMA != nil {
			m.OAMDMA(value)
		}
	case addr == 0x4016:
		if m.Pad != nil {
			m.Pad.Write(addr, value)
		}
	case addr == 0x4017:
		m.APU.WriteRegister(addr, value)
		if m.Pad != nil {
			m.Pad.Write(addr, value)
		}
	case addr < 0x4020:
		m.APU.WriteRegister(addr, value)
	case addr < 0x8000:
		// Open bus: no cartridge device lives here under mapper 0.
	default:
		// Writing PRG ROM is not meaningful hardware; log and drop it
		// rather than raise a fault, matching how a real cartridge's
		// bus driver simply never asserts onto a ROM output.
		log.Printf("memory: ignored write of %#02x to PRG ROM at %#04x", value, addr)
	}
}
