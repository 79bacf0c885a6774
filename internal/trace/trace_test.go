package trace

import (
	"strings"
	"testing"

	"github.com/cdebost/nesem/internal/cpu"
	"github.com/cdebost/nesem/internal/ppu"
)

type fakeBus [0x10000]uint8

func (b *fakeBus) Read(addr uint16) uint8        { return b[addr] }
func (b *fakeBus) Write(addr uint16, data uint8) { b[addr] = data }

type fakeCHR2 [0x2000]uint8

func (c *fakeCHR2) ReadCHR(addr uint16) uint8         { return c[addr] }
func (c *fakeCHR2) WriteCHR(addr uint16, value uint8) { c[addr] = value }

func TestLineFormatsBRKAtGivenState(t *testing.T) {
	bus := &fakeBus{}
	bus[0x1234] = 0x00 // BRK

	c := cpu.New(bus)
	c.PC = 0x1234
	c.A, c.X, c.Y = 1, 2, 3
	c.SP = 0xFA
	c.Flags.Carry = true
	c.Cycles = 654321

	p := ppu.New(&fakeCHR2{}, ppu.MirrorHorizontal)
	p.Scanline = 100
	p.Cycle = 200

	line := Line(c, p, bus)

	if !strings.HasPrefix(line, "1234  00") {
		t.Errorf("line = %q, want it to start with the PC and raw opcode byte", line)
	}
	if !strings.HasSuffix(line, "CYC:654321") {
		t.Errorf("line = %q, want it to end with CYC:654321", line)
	}
	if !strings.Contains(line, "A:01 X:02 Y:03 P:21 SP:FA") {
		t.Errorf("line = %q, missing expected register block", line)
	}
	if !strings.Contains(line, "PPU:100,200") {
		t.Errorf("line = %q, missing expected PPU position", line)
	}
}

func TestDisassembleAbsoluteXAppliesIndex(t *testing.T) {
	bus := &fakeBus{}
	bus[0x8000] = 0xBD // LDA $C000,X
	bus[0x8001] = 0x00
	bus[0x8002] = 0xC0
	bus[0xC005] = 0x77

	c := cpu.New(bus)
	c.PC = 0x8000
	c.X = 5

	p := ppu.New(&fakeCHR2{}, ppu.MirrorHorizontal)
	line := Line(c, p, bus)

	if !strings.Contains(line, "$C000,X @ C005 = 77") {
		t.Errorf("line = %q, want the indexed effective address resolved with X applied", line)
	}
}

func TestDisassembleIndirectXAppliesIndexBeforeDereference(t *testing.T) {
	bus := &fakeBus{}
	bus[0x8000] = 0xA1 // LDA ($10,X)
	bus[0x8001] = 0x10
	bus[0x0015] = 0x00 // ($10+X=5) -> pointer low
	bus[0x0016] = 0x90 // pointer high
	bus[0x9000] = 0x42

	c := cpu.New(bus)
	c.PC = 0x8000
	c.X = 5

	p := ppu.New(&fakeCHR2{}, ppu.MirrorHorizontal)
	line := Line(c, p, bus)

	if !strings.Contains(line, "($10,X) @ 15 = 9000 = 42") {
		t.Errorf("line = %q, want the zero-page pointer indexed by X before dereferencing", line)
	}
}
