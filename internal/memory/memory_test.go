package memory

import "testing"

type stubRegisters struct{ v uint8 }

func (s *stubRegisters) ReadRegister(addr uint16) uint8        { return s.v }
func (s *stubRegisters) WriteRegister(addr uint16, value uint8) { s.v = value }

type stubCart struct{ prg [0x8000]uint8 }

func (c *stubCart) ReadPRG(addr uint16) uint8        { return c.prg[addr-0x8000] }
func (c *stubCart) WritePRG(addr uint16, value uint8) {}

func newTestMemory() *Memory {
	m := New()
	m.PPU = &stubRegisters{}
	m.APU = &stubRegisters{}
	m.Cart = &stubCart{}
	return m
}

func TestWRAMMirroring(t *testing.T) {
	m := newTestMemory()
	m.Write(0x0005, 0x06)
	for _, addr := range []uint16{0x0805, 0x1005, 0x1805} {
		if got := m.Read(addr); got != 0x06 {
			t.Errorf("Read(%#04x) = %#02x, want 0x06", addr, got)
		}
	}
}

func TestPPURegisterMirroring(t *testing.T) {
	m := newTestMemory()
	m.Write(0x2000, 0x80)
	if got := m.PPU.(*stubRegisters).v; got != 0x80 {
		t.Fatalf("PPU register not written")
	}
	m.Write(0x2008, 0x40) // mirrors 0x2000
	if got := m.PPU.(*stubRegisters).v; got != 0x40 {
		t.Errorf("write to 0x2008 should mirror register 0, got %#02x", got)
	}
}

func TestPRGROMReadThrough(t *testing.T) {
	m := newTestMemory()
	m.Cart.(*stubCart).prg[0] = 0x42
	if got := m.Read(0x8000); got != 0x42 {
		t.Errorf("Read(0x8000) = %#02x, want 0x42", got)
	}
}

func TestPRGROMWriteIsIgnoredNotFatal(t *testing.T) {
	m := newTestMemory()
	m.Write(0x8000, 0xFF) // must not panic
}
