package ppu

import "testing"

type fakeCHR [0x2000]uint8

func (c *fakeCHR) ReadCHR(addr uint16) uint8        { return c[addr] }
func (c *fakeCHR) WriteCHR(addr uint16, value uint8) { c[addr] = value }

// cpuCyclesFor converts a PPU-dot count into the CPU cycle count that
// ticks at least that many PPU dots, rounding up: Tick multiplies its
// argument by 3, so a truncating division can fall short of a
// scanline boundary by up to 2 dots.
func cpuCyclesFor(dots int) int {
	return (dots + 2) / 3
}

func TestVerticalBlankTiming(t *testing.T) {
	p := New(&fakeCHR{}, MirrorHorizontal)

	// 241 full scanlines (241*341 PPU cycles) brings the PPU to the start
	// of scanline 241, where vertical blank begins.
	p.Tick(cpuCyclesFor(241 * cyclesPerScanline))
	if p.Status()&0x80 == 0 {
		t.Fatal("status bit 7 should be set entering scanline 241")
	}

	// 21 more scanlines wrap scanline back to 0 (262 total), clearing it.
	p.Tick(cpuCyclesFor(21 * cyclesPerScanline))
	if p.Status()&0x80 != 0 {
		t.Fatal("status bit 7 should clear once scanline wraps to 0")
	}
}

func TestNMIRaisedOnlyWhenCtrlEnables(t *testing.T) {
	p := New(&fakeCHR{}, MirrorHorizontal)
	p.Ctrl = 0x80
	p.Tick(cpuCyclesFor(241 * cyclesPerScanline))
	if !p.NMIPending {
		t.Error("NMIPending should be set when CTRL bit 7 is set at vblank start")
	}
}

func TestNMINotRaisedWhenCtrlDisabled(t *testing.T) {
	p := New(&fakeCHR{}, MirrorHorizontal)
	p.Tick(cpuCyclesFor(241 * cyclesPerScanline))
	if p.NMIPending {
		t.Error("NMIPending should not be set when CTRL bit 7 is clear")
	}
}

func TestAddrLatchWriteOrderAndIncrement(t *testing.T) {
	p := New(&fakeCHR{}, MirrorHorizontal)
	p.WriteRegister(0x2006, 0x20) // high byte
	p.WriteRegister(0x2006, 0x05) // low byte -> address 0x2005
	p.vram[translateVRAMAddr(0x2005, MirrorHorizontal)] = 0x42
	// First DATA read returns the stale buffer, not 0x42 yet.
	p.ReadRegister(0x2007)
	if v := p.ReadRegister(0x2007); v != 0x42 {
		t.Errorf("buffered DATA read = %#02x, want 0x42", v)
	}
}

func TestStatusReadResetsAddrLatch(t *testing.T) {
	p := New(&fakeCHR{}, MirrorHorizontal)
	p.WriteRegister(0x2006, 0x20)
	p.ReadRegister(0x2002)
	p.WriteRegister(0x2006, 0x05)
	if p.addr.hi != 0 || p.addr.lo != 0x05 {
		t.Errorf("addr latch = %#02x%02x, want STATUS read to clear the latch so the next write starts a fresh address", p.addr.hi, p.addr.lo)
	}
}

func TestTranslateVRAMAddrVertical(t *testing.T) {
	if got := translateVRAMAddr(0x2000, MirrorVertical); got != 0x000 {
		t.Errorf("got %#03x, want 0x000", got)
	}
	if got := translateVRAMAddr(0x2800, MirrorVertical); got != 0x000 {
		t.Errorf("got %#03x, want 0x000 (mirrors first nametable)", got)
	}
	if got := translateVRAMAddr(0x2400, MirrorVertical); got != 0x400 {
		t.Errorf("got %#03x, want 0x400", got)
	}
}

func TestTranslateVRAMAddrHorizontal(t *testing.T) {
	if got := translateVRAMAddr(0x2000, MirrorHorizontal); got != 0x000 {
		t.Errorf("got %#03x, want 0x000", got)
	}
	if got := translateVRAMAddr(0x2400, MirrorHorizontal); got != 0x000 {
		t.Errorf("got %#03x, want 0x000 (mirrors first nametable)", got)
	}
	if got := translateVRAMAddr(0x2800, MirrorHorizontal); got != 0x400 {
		t.Errorf("got %#03x, want 0x400", got)
	}
}
