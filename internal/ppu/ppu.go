// Package ppu implements the NES Picture Processing Unit: the
// CPU-visible register interface, VRAM/OAM/palette memory, scanline
// timing, and background/sprite rasterization into a palette-index
// framebuffer.
package ppu

// Mirroring is the cartridge's fixed nametable screen-mirroring mode.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorFourScreen
)

// CHR is the capability the PPU needs from the cartridge's pattern
// tables.
type CHR interface {
	ReadCHR(addr uint16) uint8
	WriteCHR(addr uint16, value uint8)
}

const (
	Width  = 256
	Height = 240
)

// addrLatch is the shared two-byte register behind PPUADDR and
// PPUSCROLL: written high byte first, each write shifts the previous
// low byte into high and stores the new byte as low.
type addrLatch struct {
	hi, lo uint8
}

func (l *addrLatch) read() uint16 { return uint16(l.hi)<<8 | uint16(l.lo) }

func (l *addrLatch) write(v uint8) {
	l.hi = l.lo
	l.lo = v
}

func (l *addrLatch) increment(by uint16) {
	v := l.read() + by
	l.hi = uint8(v >> 8)
	l.lo = uint8(v)
}

func (l *addrLatch) reset() { l.hi, l.lo = 0, 0 }

// PPU is the 2C02 register file, memory, and rasterizer.
type PPU struct {
	chr       CHR
	Mirroring Mirroring

	vram     [0x0800]uint8
	palettes [0x20]uint8
	OAM      [256]uint8

	// Frame is the palette-index framebuffer, one byte per pixel,
	// row-major, written at the end of each visible scanline and, for
	// sprites, at the end of the post-render scanline (240).
	Frame [Width * Height]uint8

	Scanline int
	Cycle    int

	Ctrl    uint8
	Mask    uint8
	OAMAddr uint8

	inVBlank bool
	// SpriteZeroHit and SpriteOverflow are wired into STATUS but never
	// set: accurate sprite evaluation is out of scope, so software that
	// polls either bit for raster timing will not see it fire.
	SpriteZeroHit  bool
	SpriteOverflow bool

	ioDatabus  uint8
	readBuffer uint8
	addr       addrLatch

	// NMIPending is raised when vertical blank begins while CTRL bit 7
	// is set, and consumed by the orchestrator driving the CPU.
	NMIPending bool
}

// New returns a PPU wired to the given cartridge CHR bus and fixed
// screen mirroring.
func New(chr CHR, mirroring Mirroring) *PPU {
	return &PPU{chr: chr, Mirroring: mirroring, Scanline: 0, Cycle: 0}
}

// Status returns the STATUS byte without the read side effects
// (clearing vertical blank and resetting the address latch) that
// ReadRegister applies at 0x2002. Useful for tests and the trace
// formatter, which must observe state without disturbing it.
func (p *PPU) Status() uint8 { return p.status() }

func (p *PPU) status() uint8 {
	var b uint8
	if p.inVBlank {
		b |= 0x80
	}
	if p.SpriteZeroHit {
		b |= 0x40
	}
	if p.SpriteOverflow {
		b |= 0x20
	}
	b |= p.ioDatabus & 0x1F
	return b
}

// translateVRAMAddr folds a raw 14-bit PPU address into a 0-0x7FF VRAM
// offset according to the cartridge's screen mirroring.
func translateVRAMAddr(addr uint16, mirroring Mirroring) uint16 {
	addr %= 0x2000
	switch mirroring {
	case MirrorHorizontal:
		if addr >= 0x0800 {
			return 0x0400 + addr%0x0400
		}
		return addr % 0x0400
	case MirrorVertical:
		return addr % 0x0800
	default: // FourScreen, reduced to identity within the VRAM window
		return addr % 0x0800
	}
}

// ReadRegister reads one of the eight CPU-visible registers at
// 0x2000-0x2007 (the caller is responsible for the mod-8 mirroring).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case 0x2002:
		v := p.status()
		p.inVBlank = false
		p.addr.reset()
		p.ioDatabus = v
		return v
	case 0x2004:
		p.ioDatabus = p.OAM[p.OAMAddr]
		return p.ioDatabus
	case 0x2007:
		v := p.readData()
		p.ioDatabus = v
		return v
	default:
		return p.ioDatabus
	}
}

func (p *PPU) readData() uint8 {
	addr := p.addr.read()
	defer p.incrementAddr()

	switch {
	case addr <= 0x1FFF:
		v := p.readBuffer
		p.readBuffer = p.chr.ReadCHR(addr)
		return v
	case addr <= 0x3EFF:
		v := p.readBuffer
		p.readBuffer = p.vram[translateVRAMAddr(addr, p.Mirroring)]
		return v
	default:
		v := p.paletteAt(addr)
		p.readBuffer = p.vram[translateVRAMAddr(addr&0x2FFF, p.Mirroring)]
		return v
	}
}

func (p *PPU) paletteAt(addr uint16) uint8 {
	idx := addr & 0x1F
	if idx == 0x10 || idx == 0x14 || idx == 0x18 || idx == 0x1C {
		idx &= 0x0F
	}
	return p.palettes[idx]
}

func (p *PPU) setPaletteAt(addr uint16, v uint8) {
	idx := addr & 0x1F
	if idx == 0x10 || idx == 0x14 || idx == 0x18 || idx == 0x1C {
		idx &= 0x0F
	}
	p.palettes[idx] = v
}

func (p *PPU) incrementAddr() {
	if p.Ctrl&0x04 != 0 {
		p.addr.increment(32)
	} else {
		p.addr.increment(1)
	}
}

// WriteRegister writes one of the eight CPU-visible registers.
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case 0x2000:
		p.Ctrl = value
	case 0x2001:
		p.Mask = value
	case 0x2003:
		p.OAMAddr = value
	case 0x2004:
		p.OAM[p.OAMAddr] = value
		p.OAMAddr++
	case 0x2005, 0x2006:
		p.addr.write(value)
	case 0x2007:
		p.writeData(value)
	}
	p.ioDatabus = value
}

func (p *PPU) writeData(value uint8) {
	addr := p.addr.read()
	defer p.incrementAddr()

	switch {
	case addr <= 0x1FFF:
		p.chr.WriteCHR(addr, value)
	case addr <= 0x3EFF:
		p.vram[translateVRAMAddr(addr, p.Mirroring)] = value
	default:
		p.setPaletteAt(addr, value)
	}
}

// WriteOAM writes every byte of src into OAM starting at OAMAddr,
// used by OAM DMA.
func (p *PPU) WriteOAM(src []uint8) {
	for _, b := range src {
		p.OAM[p.OAMAddr] = b
		p.OAMAddr++
	}
}

const (
	cyclesPerScanline  = 341
	scanlinesPerFrame  = 262
	vblankStartLine    = 241
)

// Tick advances the PPU by cpuCycles*3 PPU cycles, crossing scanline
// and frame boundaries, raising NMIPending on entry to vertical blank
// when CTRL bit 7 is set, and rasterizing each scanline as it
// completes.
func (p *PPU) Tick(cpuCycles int) {
	cycles := cpuCycles * 3
	for cycles > 0 {
		step := cyclesPerScanline - p.Cycle
		if step > cycles {
			step = cycles
		}
		p.Cycle += step
		cycles -= step
		if p.Cycle < cyclesPerScanline {
			continue
		}
		p.Cycle -= cyclesPerScanline
		p.finishScanline(p.Scanline)
		p.Scanline++
		switch {
		case p.Scanline == vblankStartLine:
			p.inVBlank = true
			if p.Ctrl&0x80 != 0 {
				p.NMIPending = true
			}
		case p.Scanline >= scanlinesPerFrame:
			p.inVBlank = false
			p.Scanline = 0
		}
	}
}

func (p *PPU) finishScanline(scanline int) {
	switch {
	case scanline >= 0 && scanline < Height:
		p.renderBackground(scanline)
	case scanline == Height:
		p.renderSprites()
	}
}
