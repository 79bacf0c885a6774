// Package console wires the CPU, MMU, PPU, APU, cartridge and
// controllers into one composite machine, and drives the step loop
// that alternates CPU instruction execution with PPU ticking.
package console

import (
	"github.com/cdebost/nesem/internal/apu"
	"github.com/cdebost/nesem/internal/cartridge"
	"github.com/cdebost/nesem/internal/cpu"
	"github.com/cdebost/nesem/internal/input"
	"github.com/cdebost/nesem/internal/memory"
	"github.com/cdebost/nesem/internal/ppu"
)

// Console is the complete NES: CPU, memory map, PPU, APU register
// shadow and two controller ports, bound to one loaded cartridge.
type Console struct {
	CPU  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	Mem  *memory.Memory
	Cart *cartridge.Cartridge
	Pad1 *input.Controller
	Pad2 *input.Controller
}

// New builds a Console around an already-loaded cartridge.
func New(cart *cartridge.Cartridge) *Console {
	mirroring := ppu.MirrorHorizontal
	switch cart.Mirroring {
	case cartridge.MirrorVertical:
		mirroring = ppu.MirrorVertical
	case cartridge.MirrorFourScreen:
		mirroring = ppu.MirrorFourScreen
	}

	c := &Console{
		PPU:  ppu.New(cart, mirroring),
		APU:  apu.New(),
		Mem:  memory.New(),
		Cart: cart,
		Pad1: input.New(),
		Pad2: input.New(),
	}
	c.Mem.PPU = c.PPU
	c.Mem.APU = c.APU
	c.Mem.Cart = cart
	c.Mem.Pad = pads{p1: c.Pad1, p2: c.Pad2}
	c.Mem.OAMDMA = c.oamDMA
	c.CPU = cpu.New(c.Mem)
	return c
}

// pads routes 0x4016 to controller 1 and 0x4017 to controller 2.
type pads struct {
	p1, p2 *input.Controller
}

func (p pads) Read(addr uint16) uint8 {
	if addr == 0x4016 {
		return p.p1.Read(addr)
	}
	return p.p2.Read(addr)
}

func (p pads) Write(addr uint16, value uint8) {
	p.p1.Write(addr, value)
	p.p2.Write(addr, value)
}

func (c *Console) oamDMA(page uint8) {
	base := uint16(page) << 8
	var buf [256]uint8
	for i := range buf {
		buf[i] = c.Mem.Read(base + uint16(i))
	}
	c.PPU.WriteOAM(buf[:])
}

// Reset resets the CPU and advances the PPU by the cycles that reset
// consumed, mirroring how Step keeps the two in lockstep.
func (c *Console) Reset() {
	before := c.CPU.Cycles
	c.CPU.Reset()
	c.PPU.Tick(int(c.CPU.Cycles - before))
}

// Step transfers any PPU-raised NMI into the CPU's interrupt latch,
// executes one CPU instruction (or services a pending interrupt), and
// advances the PPU by three times the CPU cycles just spent.
func (c *Console) Step() {
	if c.PPU.NMIPending {
		c.PPU.NMIPending = false
		c.CPU.NMIPending = true
	}

	before := c.CPU.Cycles
	c.CPU.Step()
	elapsed := c.CPU.Cycles - before

	c.PPU.Tick(int(elapsed))
}
