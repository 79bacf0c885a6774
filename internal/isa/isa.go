// Package isa describes the static 6502 instruction set used by the CPU
// and the assembler: one descriptor per possible opcode byte, covering the
// full documented instruction set plus the undocumented opcodes that real
// 2A03 hardware executes.
package isa

// Mode identifies how an instruction's operand bytes are turned into an
// effective address.
type Mode int

const (
	Implied Mode = iota
	Immediate
	Zeropage
	ZeropageX
	ZeropageY
	Absolute
	AbsoluteX
	AbsoluteY
	Relative
	Indirect
	IndirectX // (zp,X)
	IndirectY // (zp),Y
)

// Flag bits describe deviations from the documented instruction set.
type Flag uint8

const (
	// Illegal marks an opcode that is not part of the documented 6502 ISA
	// but still runs deterministically on real hardware.
	Illegal Flag = 1 << iota
	// Unstable marks an illegal opcode whose result depends on analog bus
	// behavior not modeled here.
	Unstable
	// HighlyUnstable marks an illegal opcode whose result varies even more
	// by chip revision and temperature than Unstable ones.
	HighlyUnstable
	// PageCross marks an opcode whose addressing mode costs one extra
	// cycle when the effective address crosses a page boundary.
	PageCross
)

// Opcode describes one of the 256 possible first bytes of an instruction.
type Opcode struct {
	Code     uint8
	Mnemonic string
	Mode     Mode
	Len      uint8 // total instruction length in bytes, including the opcode
	Cycles   uint8 // base cycle cost, excluding page-cross/branch penalties
	Flags    Flag
}

func (o *Opcode) Illegal() bool        { return o.Flags&Illegal != 0 }
func (o *Opcode) Unstable() bool       { return o.Flags&Unstable != 0 }
func (o *Opcode) HighlyUnstable() bool { return o.Flags&HighlyUnstable != 0 }
func (o *Opcode) AddsCycleOnPageCross() bool {
	return o.Flags&PageCross != 0
}

// Table is the complete, immutable 256-entry opcode table, indexed by
// opcode byte. Table[i].Code == i for every i.
var Table = [256]Opcode{
	0x00: {0x00, "BRK", Implied, 1, 7, 0},
	0x01: {0x01, "ORA", IndirectX, 2, 6, 0},
	0x02: {0x02, "JAM", Implied, 1, 0, Illegal},
	0x03: {0x03, "SLO", IndirectX, 2, 8, Illegal},
	0x04: {0x04, "NOP", Zeropage, 2, 3, Illegal},
	0x05: {0x05, "ORA", Zeropage, 2, 3, 0},
	0x06: {0x06, "ASL", Zeropage, 2, 5, 0},
	0x07: {0x07, "SLO", Zeropage, 2, 5, Illegal},
	0x08: {0x08, "PHP", Implied, 1, 3, 0},
	0x09: {0x09, "ORA", Immediate, 2, 2, 0},
	0x0A: {0x0A, "ASL", Implied, 1, 2, 0},
	0x0B: {0x0B, "ANC", Immediate, 2, 2, Illegal},
	0x0C: {0x0C, "NOP", Absolute, 3, 4, Illegal},
	0x0D: {0x0D, "ORA", Absolute, 3, 4, 0},
	0x0E: {0x0E, "ASL", Absolute, 3, 6, 0},
	0x0F: {0x0F, "SLO", Absolute, 3, 6, Illegal},
	0x10: {0x10, "BPL", Relative, 2, 2, 0},
	0x11: {0x11, "ORA", IndirectY, 2, 5, PageCross},
	0x12: {0x12, "JAM", Implied, 1, 0, Illegal},
	0x13: {0x13, "SLO", IndirectY, 2, 8, Illegal},
	0x14: {0x14, "NOP", ZeropageX, 2, 4, Illegal},
	0x15: {0x15, "ORA", ZeropageX, 2, 4, 0},
	0x16: {0x16, "ASL", ZeropageX, 2, 6, 0},
	0x17: {0x17, "SLO", ZeropageX, 2, 6, Illegal},
	0x18: {0x18, "CLC", Implied, 1, 2, 0},
	0x19: {0x19, "ORA", AbsoluteY, 3, 4, PageCross},
	0x1A: {0x1A, "NOP", Implied, 1, 2, Illegal},
	0x1B: {0x1B, "SLO", AbsoluteY, 3, 7, Illegal},
	0x1C: {0x1C, "NOP", AbsoluteX, 3, 4, Illegal | PageCross},
	0x1D: {0x1D, "ORA", AbsoluteX, 3, 4, PageCross},
	0x1E: {0x1E, "ASL", AbsoluteX, 3, 7, 0},
	0x1F: {0x1F, "SLO", AbsoluteX, 3, 7, Illegal},
	0x20: {0x20, "JSR", Absolute, 3, 6, 0},
	0x21: {0x21, "AND", IndirectX, 2, 6, 0},
	0x22: {0x22, "JAM", Implied, 1, 0, Illegal},
	0x23: {0x23, "RLA", IndirectX, 2, 8, Illegal},
	0x24: {0x24, "BIT", Zeropage, 2, 3, 0},
	0x25: {0x25, "AND", Zeropage, 2, 3, 0},
	0x26: {0x26, "ROL", Zeropage, 2, 5, 0},
	0x27: {0x27, "RLA", Zeropage, 2, 5, Illegal},
	0x28: {0x28, "PLP", Implied, 1, 4, 0},
	0x29: {0x29, "AND", Immediate, 2, 2, 0},
	0x2A: {0x2A, "ROL", Implied, 1, 2, 0},
	0x2B: {0x2B, "ANC", Immediate, 2, 2, Illegal},
	0x2C: {0x2C, "BIT", Absolute, 3, 4, 0},
	0x2D: {0x2D, "AND", Absolute, 3, 4, 0},
	0x2E: {0x2E, "ROL", Absolute, 3, 6, 0},
	0x2F: {0x2F, "RLA", Absolute, 3, 6, Illegal},
	0x30: {0x30, "BMI", Relative, 2, 2, 0},
	0x31: {0x31, "AND", IndirectY, 2, 5, PageCross},
	0x32: {0x32, "JAM", Implied, 1, 0, Illegal},
	0x33: {0x33, "RLA", IndirectY, 2, 8, Illegal},
	0x34: {0x34, "NOP", ZeropageX, 2, 4, Illegal},
	0x35: {0x35, "AND", ZeropageX, 2, 4, 0},
	0x36: {0x36, "ROL", ZeropageX, 2, 6, 0},
	0x37: {0x37, "RLA", ZeropageX, 2, 6, Illegal},
	0x38: {0x38, "SEC", Implied, 1, 2, 0},
	0x39: {0x39, "AND", AbsoluteY, 3, 4, PageCross},
	0x3A: {0x3A, "NOP", Implied, 1, 2, Illegal},
	0x3B: {0x3B, "RLA", AbsoluteY, 3, 7, Illegal},
	0x3C: {0x3C, "NOP", AbsoluteX, 3, 4, Illegal | PageCross},
	0x3D: {0x3D, "AND", AbsoluteX, 3, 4, PageCross},
	0x3E: {0x3E, "ROL", AbsoluteX, 3, 7, 0},
	0x3F: {0x3F, "RLA", AbsoluteX, 3, 7, Illegal},
	0x40: {0x40, "RTI", Implied, 1, 6, 0},
	0x41: {0x41, "EOR", IndirectX, 2, 6, 0},
	0x42: {0x42, "JAM", Implied, 1, 0, Illegal},
	0x43: {0x43, "SRE", IndirectX, 2, 8, Illegal},
	0x44: {0x44, "NOP", Zeropage, 2, 3, Illegal},
	0x45: {0x45, "EOR", Zeropage, 2, 3, 0},
	0x46: {0x46, "LSR", Zeropage, 2, 5, 0},
	0x47: {0x47, "SRE", Zeropage, 2, 5, Illegal},
	0x48: {0x48, "PHA", Implied, 1, 3, 0},
	0x49: {0x49, "EOR", Immediate, 2, 2, 0},
	0x4A: {0x4A, "LSR", Implied, 1, 2, 0},
	0x4B: {0x4B, "ALR", Immediate, 2, 2, Illegal},
	0x4C: {0x4C, "JMP", Absolute, 3, 3, 0},
	0x4D: {0x4D, "EOR", Absolute, 3, 4, 0},
	0x4E: {0x4E, "LSR", Absolute, 3, 6, 0},
	0x4F: {0x4F, "SRE", Absolute, 3, 6, Illegal},
	0x50: {0x50, "BVC", Relative, 2, 2, 0},
	0x51: {0x51, "EOR", IndirectY, 2, 5, PageCross},
	0x52: {0x52, "JAM", Implied, 1, 0, Illegal},
	0x53: {0x53, "SRE", IndirectY, 2, 8, Illegal},
	0x54: {0x54, "NOP", ZeropageX, 2, 4, Illegal},
	0x55: {0x55, "EOR", ZeropageX, 2, 4, 0},
	0x56: {0x56, "LSR", ZeropageX, 2, 6, 0},
	0x57: {0x57, "SRE", ZeropageX, 2, 6, Illegal},
	0x58: {0x58, "CLI", Implied, 1, 2, 0},
	0x59: {0x59, "EOR", AbsoluteY, 3, 4, PageCross},
	0x5A: {0x5A, "NOP", Implied, 1, 2, Illegal},
	0x5B: {0x5B, "SRE", AbsoluteY, 3, 7, Illegal},
	0x5C: {0x5C, "NOP", AbsoluteX, 3, 4, Illegal | PageCross},
	0x5D: {0x5D, "EOR", AbsoluteX, 3, 4, PageCross},
	0x5E: {0x5E, "LSR", AbsoluteX, 3, 7, 0},
	0x5F: {0x5F, "SRE", AbsoluteX, 3, 7, Illegal},
	0x60: {0x60, "RTS", Implied, 1, 6, 0},
	0x61: {0x61, "ADC", IndirectX, 2, 6, 0},
	0x62: {0x62, "JAM", Implied, 1, 0, Illegal},
	0x63: {0x63, "RRA", IndirectX, 2, 8, Illegal},
	0x64: {0x64, "NOP", Zeropage, 2, 3, Illegal},
	0x65: {0x65, "ADC", Zeropage, 2, 3, 0},
	0x66: {0x66, "ROR", Zeropage, 2, 5, 0},
	0x67: {0x67, "RRA", Zeropage, 2, 5, Illegal},
	0x68: {0x68, "PLA", Implied, 1, 4, 0},
	0x69: {0x69, "ADC", Immediate, 2, 2, 0},
	0x6A: {0x6A, "ROR", Implied, 1, 2, 0},
	0x6B: {0x6B, "ARR", Immediate, 2, 2, Illegal},
	0x6C: {0x6C, "JMP", Indirect, 3, 5, 0},
	0x6D: {0x6D, "ADC", Absolute, 3, 4, 0},
	0x6E: {0x6E, "ROR", Absolute, 3, 6, 0},
	0x6F: {0x6F, "RRA", Absolute, 3, 6, Illegal},
	0x70: {0x70, "BVS", Relative, 2, 2, 0},
	0x71: {0x71, "ADC", IndirectY, 2, 5, PageCross},
	0x72: {0x72, "JAM", Implied, 1, 0, Illegal},
	0x73: {0x73, "RRA", IndirectY, 2, 8, Illegal},
	0x74: {0x74, "NOP", ZeropageX, 2, 4, Illegal},
	0x75: {0x75, "ADC", ZeropageX, 2, 4, 0},
	0x76: {0x76, "ROR", ZeropageX, 2, 6, 0},
	0x77: {0x77, "RRA", ZeropageX, 2, 6, Illegal},
	0x78: {0x78, "SEI", Implied, 1, 2, 0},
	0x79: {0x79, "ADC", AbsoluteY, 3, 4, PageCross},
	0x7A: {0x7A, "NOP", Implied, 1, 2, Illegal},
	0x7B: {0x7B, "RRA", AbsoluteY, 3, 7, Illegal},
	0x7C: {0x7C, "NOP", AbsoluteX, 3, 4, Illegal | PageCross},
	0x7D: {0x7D, "ADC", AbsoluteX, 3, 4, PageCross},
	0x7E: {0x7E, "ROR", AbsoluteX, 3, 7, 0},
	0x7F: {0x7F, "RRA", AbsoluteX, 3, 7, Illegal},
	0x80: {0x80, "NOP", Immediate, 2, 2, Illegal},
	0x81: {0x81, "STA", IndirectX, 2, 6, 0},
	0x82: {0x82, "NOP", Immediate, 2, 2, Illegal},
	0x83: {0x83, "SAX", IndirectX, 2, 6, Illegal},
	0x84: {0x84, "STY", Zeropage, 2, 3, 0},
	0x85: {0x85, "STA", Zeropage, 2, 3, 0},
	0x86: {0x86, "STX", Zeropage, 2, 3, 0},
	0x87: {0x87, "SAX", Zeropage, 2, 3, Illegal},
	0x88: {0x88, "DEY", Implied, 1, 2, 0},
	0x89: {0x89, "NOP", Immediate, 2, 2, Illegal},
	0x8A: {0x8A, "TXA", Implied, 1, 2, 0},
	0x8B: {0x8B, "ANE", Immediate, 2, 2, Illegal | Unstable | HighlyUnstable},
	0x8C: {0x8C, "STY", Absolute, 3, 4, 0},
	0x8D: {0x8D, "STA", Absolute, 3, 4, 0},
	0x8E: {0x8E, "STX", Absolute, 3, 4, 0},
	0x8F: {0x8F, "SAX", Absolute, 3, 4, Illegal},
	0x90: {0x90, "BCC", Relative, 2, 2, 0},
	0x91: {0x91, "STA", IndirectY, 2, 6, 0},
	0x92: {0x92, "JAM", Implied, 1, 0, Illegal},
	0x93: {0x93, "SHA", IndirectY, 2, 6, Illegal | Unstable},
	0x94: {0x94, "STY", ZeropageX, 2, 4, 0},
	0x95: {0x95, "STA", ZeropageX, 2, 4, 0},
	0x96: {0x96, "STX", ZeropageY, 2, 4, 0},
	0x97: {0x97, "SAX", ZeropageY, 2, 4, Illegal},
	0x98: {0x98, "TYA", Implied, 1, 2, 0},
	0x99: {0x99, "STA", AbsoluteY, 3, 5, 0},
	0x9A: {0x9A, "TXS", Implied, 1, 2, 0},
	0x9B: {0x9B, "TAS", AbsoluteY, 3, 5, Illegal | Unstable},
	0x9C: {0x9C, "SHY", AbsoluteX, 3, 5, Illegal | Unstable},
	0x9D: {0x9D, "STA", AbsoluteX, 3, 5, 0},
	0x9E: {0x9E, "SHX", AbsoluteY, 3, 5, Illegal | Unstable},
	0x9F: {0x9F, "SHA", AbsoluteY, 3, 5, Illegal | Unstable},
	0xA0: {0xA0, "LDY", Immediate, 2, 2, 0},
	0xA1: {0xA1, "LDA", IndirectX, 2, 6, 0},
	0xA2: {0xA2, "LDX", Immediate, 2, 2, 0},
	0xA3: {0xA3, "LAX", IndirectX, 2, 6, Illegal},
	0xA4: {0xA4, "LDY", Zeropage, 2, 3, 0},
	0xA5: {0xA5, "LDA", Zeropage, 2, 3, 0},
	0xA6: {0xA6, "LDX", Zeropage, 2, 3, 0},
	0xA7: {0xA7, "LAX", Zeropage, 2, 3, Illegal},
	0xA8: {0xA8, "TAY", Implied, 1, 2, 0},
	0xA9: {0xA9, "LDA", Immediate, 2, 2, 0},
	0xAA: {0xAA, "TAX", Implied, 1, 2, 0},
	0xAB: {0xAB, "LXA", Immediate, 1, 2, Illegal | Unstable | HighlyUnstable},
	0xAC: {0xAC, "LDY", Absolute, 3, 4, 0},
	0xAD: {0xAD, "LDA", Absolute, 3, 4, 0},
	0xAE: {0xAE, "LDX", Absolute, 3, 4, 0},
	0xAF: {0xAF, "LAX", Absolute, 3, 4, Illegal},
	0xB0: {0xB0, "BCS", Relative, 2, 2, 0},
	0xB1: {0xB1, "LDA", IndirectY, 2, 5, PageCross},
	0xB2: {0xB2, "JAM", Implied, 1, 0, Illegal},
	0xB3: {0xB3, "LAX", IndirectY, 2, 5, Illegal | PageCross},
	0xB4: {0xB4, "LDY", ZeropageX, 2, 4, 0},
	0xB5: {0xB5, "LDA", ZeropageX, 2, 4, 0},
	0xB6: {0xB6, "LDX", ZeropageY, 2, 4, 0},
	0xB7: {0xB7, "LAX", ZeropageY, 2, 4, Illegal},
	0xB8: {0xB8, "CLV", Implied, 1, 2, 0},
	0xB9: {0xB9, "LDA", AbsoluteY, 3, 4, PageCross},
	0xBA: {0xBA, "TSX", Implied, 1, 2, 0},
	0xBB: {0xBB, "LAS", AbsoluteY, 3, 4, Illegal},
	0xBC: {0xBC, "LDY", AbsoluteX, 3, 4, PageCross},
	0xBD: {0xBD, "LDA", AbsoluteX, 3, 4, PageCross},
	0xBE: {0xBE, "LDX", AbsoluteY, 3, 4, PageCross},
	0xBF: {0xBF, "LAX", AbsoluteY, 3, 4, Illegal | PageCross},
	0xC0: {0xC0, "CPY", Immediate, 2, 2, 0},
	0xC1: {0xC1, "CMP", IndirectX, 2, 6, 0},
	0xC2: {0xC2, "NOP", Immediate, 2, 2, Illegal},
	0xC3: {0xC3, "DCP", IndirectX, 2, 8, Illegal},
	0xC4: {0xC4, "CPY", Zeropage, 2, 3, 0},
	0xC5: {0xC5, "CMP", Zeropage, 2, 3, 0},
	0xC6: {0xC6, "DEC", Zeropage, 2, 5, 0},
	0xC7: {0xC7, "DCP", Zeropage, 2, 5, Illegal},
	0xC8: {0xC8, "INY", Implied, 1, 2, 0},
	0xC9: {0xC9, "CMP", Immediate, 2, 2, 0},
	0xCA: {0xCA, "DEX", Implied, 1, 2, 0},
	0xCB: {0xCB, "SBX", Immediate, 2, 2, Illegal},
	0xCC: {0xCC, "CPY", Absolute, 3, 4, 0},
	0xCD: {0xCD, "CMP", Absolute, 3, 4, 0},
	0xCE: {0xCE, "DEC", Absolute, 3, 6, 0},
	0xCF: {0xCF, "DCP", Absolute, 3, 6, Illegal},
	0xD0: {0xD0, "BNE", Relative, 2, 2, 0},
	0xD1: {0xD1, "CMP", IndirectY, 2, 5, PageCross},
	0xD2: {0xD2, "JAM", Implied, 1, 0, Illegal},
	0xD3: {0xD3, "DCP", IndirectY, 2, 8, Illegal},
	0xD4: {0xD4, "NOP", ZeropageX, 2, 4, Illegal},
	0xD5: {0xD5, "CMP", ZeropageX, 2, 4, 0},
	0xD6: {0xD6, "DEC", ZeropageX, 2, 6, 0},
	0xD7: {0xD7, "DCP", ZeropageX, 2, 6, Illegal},
	0xD8: {0xD8, "CLD", Implied, 1, 2, 0},
	0xD9: {0xD9, "CMP", AbsoluteY, 3, 4, PageCross},
	0xDA: {0xDA, "NOP", Implied, 1, 2, Illegal},
	0xDB: {0xDB, "DCP", AbsoluteY, 3, 7, Illegal},
	0xDC: {0xDC, "NOP", AbsoluteX, 3, 4, Illegal | PageCross},
	0xDD: {0xDD, "CMP", AbsoluteX, 3, 4, PageCross},
	0xDE: {0xDE, "DEC", AbsoluteX, 3, 7, 0},
	0xDF: {0xDF, "DCP", AbsoluteX, 3, 7, Illegal},
	0xE0: {0xE0, "CPX", Immediate, 2, 2, 0},
	0xE1: {0xE1, "SBC", IndirectX, 2, 6, 0},
	0xE2: {0xE2, "NOP", Immediate, 2, 2, Illegal},
	0xE3: {0xE3, "ISB", IndirectX, 2, 8, Illegal},
	0xE4: {0xE4, "CPX", Zeropage, 2, 3, 0},
	0xE5: {0xE5, "SBC", Zeropage, 2, 3, 0},
	0xE6: {0xE6, "INC", Zeropage, 2, 5, 0},
	0xE7: {0xE7, "ISB", Zeropage, 2, 5, Illegal},
	0xE8: {0xE8, "INX", Implied, 1, 2, 0},
	0xE9: {0xE9, "SBC", Immediate, 2, 2, 0},
	0xEA: {0xEA, "NOP", Implied, 1, 2, 0},
	0xEB: {0xEB, "SBC", Immediate, 2, 2, Illegal},
	0xEC: {0xEC, "CPX", Absolute, 3, 4, 0},
	0xED: {0xED, "SBC", Absolute, 3, 4, 0},
	0xEE: {0xEE, "INC", Absolute, 3, 6, 0},
	0xEF: {0xEF, "ISB", Absolute, 3, 6, Illegal},
	0xF0: {0xF0, "BEQ", Relative, 2, 2, 0},
	0xF1: {0xF1, "SBC", IndirectY, 2, 5, PageCross},
	0xF2: {0xF2, "JAM", Implied, 1, 0, Illegal},
	0xF3: {0xF3, "ISB", IndirectY, 2, 8, Illegal},
	0xF4: {0xF4, "NOP", ZeropageX, 2, 4, Illegal},
	0xF5: {0xF5, "SBC", ZeropageX, 2, 4, 0},
	0xF6: {0xF6, "INC", ZeropageX, 2, 6, 0},
	0xF7: {0xF7, "ISB", ZeropageX, 2, 6, Illegal},
	0xF8: {0xF8, "SED", Implied, 1, 2, 0},
	0xF9: {0xF9, "SBC", AbsoluteY, 3, 4, PageCross},
	0xFA: {0xFA, "NOP", Implied, 1, 2, Illegal},
	0xFB: {0xFB, "ISB", AbsoluteY, 3, 7, Illegal},
	0xFC: {0xFC, "NOP", AbsoluteX, 3, 4, Illegal | PageCross},
	0xFD: {0xFD, "SBC", AbsoluteX, 3, 4, PageCross},
	0xFE: {0xFE, "INC", AbsoluteX, 3, 7, 0},
	0xFF: {0xFF, "ISB", AbsoluteX, 3, 7, Illegal},
}

// ByMnemonicAndMode looks up the opcode descriptor for a mnemonic and
// addressing mode combination. Used by the assembler to resolve an
// instruction to a concrete opcode byte.
func ByMnemonicAndMode(mnemonic string, mode Mode) (*Opcode, bool) {
	var illegalMatch *Opcode
	for i := range Table {
		op := &Table[i]
		if op.Mnemonic != mnemonic || op.Mode != mode {
			continue
		}
		if !op.Illegal() {
			return op, true
		}
		if illegalMatch == nil {
			illegalMatch = op
		}
	}
	if illegalMatch != nil {
		return illegalMatch, true
	}
	return nil, false
}

// KnownMnemonic reports whether any opcode uses the given mnemonic.
func KnownMnemonic(mnemonic string) bool {
	for i := range Table {
		if Table[i].Mnemonic == mnemonic {
			return true
		}
	}
	return false
}
