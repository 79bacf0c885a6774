package console

import (
	"testing"

	"github.com/cdebost/nesem/internal/cartridge"
)

func newTestConsole(prg []uint8) *Console {
	cart := cartridge.NewTestCartridge(0x8000, prg)
	return New(cart)
}

func TestResetPointsPCAtResetVector(t *testing.T) {
	c := newTestConsole(make([]uint8, 0x8000))
	c.Reset()
	if c.CPU.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", c.CPU.PC)
	}
}

func TestStepPropagatesNMIFromPPUToCPU(t *testing.T) {
	prg := make([]uint8, 0x8000)
	for i := range prg {
		prg[i] = 0xEA // NOP, so the loop below never runs off into garbage opcodes
	}
	// NMI vector (0xFFFA) -> 0xF000, an address the NOP run below cannot
	// reach within the loop bound, so only the NMI can land PC there.
	prg[0x7FFA], prg[0x7FFB] = 0x00, 0xF0
	c := newTestConsole(prg)
	c.Reset()
	c.CPU.PC = 0x8000
	c.PPU.Ctrl = 0x80 // enable NMI generation on vblank

	// Step repeatedly until the PPU crosses into vertical blank; the
	// CPU services the NMI on the very next Step and jumps to the
	// vector programmed above instead of fetching another NOP.
	var serviced bool
	for i := 0; i < 20000 && !serviced; i++ {
		c.Step()
		if c.CPU.PC == 0xF000 {
			serviced = true
		}
	}
	if !serviced {
		t.Fatal("CPU never serviced the NMI raised by vertical blank")
	}
	if c.PPU.NMIPending {
		t.Error("PPU.NMIPending should be cleared once transferred to the CPU")
	}
}

func TestOAMDMACopiesPageIntoOAM(t *testing.T) {
	c := newTestConsole(make([]uint8, 0x8000))
	for i := 0; i < 256; i++ {
		c.Mem.Write(uint16(0x0200+i), uint8(i))
	}
	c.Mem.Write(0x4014, 0x02) // trigger DMA from page 2 ($0200-$02FF)
	for i := 0; i < 256; i++ {
		if c.PPU.OAM[i] != uint8(i) {
			t.Fatalf("OAM[%d] = %#02x, want %#02x", i, c.PPU.OAM[i], uint8(i))
		}
	}
}
