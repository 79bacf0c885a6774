package cartridge

// NewTestCartridge builds a mapper-0 cartridge directly from a PRG
// image without going through the iNES loader, and pokes the reset
// vector (0xFFFC/0xFFFD) to point at 0x8000 unless the image already
// sets it. size must be 0x4000 or 0x8000.
func NewTestCartridge(size int, prg []uint8) *Cartridge {
	cart := &Cartridge{Mirroring: MirrorHorizontal, CHR: make([]uint8, chrPageSize), hasCHRRAM: true}
	cart.PRG = make([]uint8, size)
	copy(cart.PRG, prg)
	lo, hi := size-4, size-3 // offset of the 0xFFFC/0xFFFD reset vector within this image
	if cart.PRG[lo] == 0 && cart.PRG[hi] == 0 {
		cart.PRG[lo] = 0x00
		cart.PRG[hi] = 0x80
	}
	cart.mapper = newMapper0(cart)
	return cart
}
