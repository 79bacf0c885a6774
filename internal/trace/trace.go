// Package trace formats one line of human-readable execution trace
// per CPU step, in the style of classic NES test-ROM log comparisons:
// address, raw opcode bytes, disassembly, and register/cycle/PPU
// state.
package trace

import (
	"fmt"
	"strings"

	"github.com/cdebost/nesem/internal/cpu"
	"github.com/cdebost/nesem/internal/isa"
	"github.com/cdebost/nesem/internal/ppu"
)

// Bus is the read-only memory access the formatter needs to recover
// an instruction's raw bytes for disassembly.
type Bus interface {
	Read(addr uint16) uint8
}

// accumulatorForm is the set of opcodes whose Implied-mode disassembly
// carries an explicit "A" operand naming the accumulator.
var accumulatorForm = map[uint8]bool{0x0A: true, 0x2A: true, 0x4A: true, 0x6A: true}

// Line formats one trace line for the instruction about to execute at
// c.PC, reading its raw bytes through bus and reporting p's current
// scanline/cycle alongside the CPU's register file and cycle count.
func Line(c *cpu.CPU, p *ppu.PPU, bus Bus) string {
	pc := c.PC
	opcode := bus.Read(pc)
	op := &isa.Table[opcode]

	raw := make([]uint8, op.Len)
	for i := uint8(0); i < op.Len; i++ {
		raw[i] = bus.Read(pc + uint16(i))
	}

	return fmt.Sprintf(
		"%04X  %-8s %-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X PPU:%3d,%3d CYC:%d",
		pc, hexBytes(raw), disassemble(op, pc, raw, bus, c.X, c.Y),
		c.A, c.X, c.Y, c.Flags.Bits(), c.SP, p.Scanline, p.Cycle, c.Cycles,
	)
}

func hexBytes(raw []uint8) string {
	parts := make([]string, len(raw))
	for i, b := range raw {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func disassemble(op *isa.Opcode, pc uint16, raw []uint8, bus Bus, x, y uint8) string {
	prefix := " "
	if op.Illegal() {
		prefix = "*"
	}
	mnemonic := prefix + op.Mnemonic

	switch op.Mode {
	case isa.Implied:
		if accumulatorForm[op.Code] {
			return mnemonic + " A"
		}
		return mnemonic

	case isa.Immediate:
		return fmt.Sprintf("%s #$%02X", mnemonic, raw[1])

	case isa.Zeropage:
		addr := uint16(raw[1])
		return fmt.Sprintf("%s $%02X = %02X", mnemonic, raw[1], bus.Read(addr))

	case isa.ZeropageX:
		addr := uint16(raw[1] + x)
		return fmt.Sprintf("%s $%02X,X @ %02X = %02X", mnemonic, raw[1], addr, bus.Read(addr))

	case isa.ZeropageY:
		addr := uint16(raw[1] + y)
		return fmt.Sprintf("%s $%02X,Y @ %02X = %02X", mnemonic, raw[1], addr, bus.Read(addr))

	case isa.Relative:
		target := pc + 2 + uint16(int16(int8(raw[1])))
		return fmt.Sprintf("%s $%04X", mnemonic, target)

	case isa.Absolute:
		addr := uint16(raw[1]) | uint16(raw[2])<<8
		if op.Mnemonic == "JMP" || op.Mnemonic == "JSR" {
			return fmt.Sprintf("%s $%04X", mnemonic, addr)
		}
		return fmt.Sprintf("%s $%04X = %02X", mnemonic, addr, bus.Read(addr))

	case isa.AbsoluteX:
		base := uint16(raw[1]) | uint16(raw[2])<<8
		addr := base + uint16(x)
		return fmt.Sprintf("%s $%04X,X @ %04X = %02X", mnemonic, base, addr, bus.Read(addr))

	case isa.AbsoluteY:
		base := uint16(raw[1]) | uint16(raw[2])<<8
		addr := base + uint16(y)
		return fmt.Sprintf("%s $%04X,Y @ %04X = %02X", mnemonic, base, addr, bus.Read(addr))

	case isa.Indirect:
		ref := uint16(raw[1]) | uint16(raw[2])<<8
		return fmt.Sprintf("%s ($%04X) = %04X", mnemonic, ref, indirectTarget(ref, bus))

	case isa.IndirectX:
		zp := raw[1]
		ref := zp + x
		lo := uint16(bus.Read(uint16(ref)))
		hi := uint16(bus.Read(uint16(ref + 1)))
		addr := hi<<8 | lo
		return fmt.Sprintf("%s ($%02X,X) @ %02X = %04X = %02X", mnemonic, zp, ref, addr, bus.Read(addr))

	case isa.IndirectY:
		zp := raw[1]
		lo := uint16(bus.Read(uint16(zp)))
		hi := uint16(bus.Read(uint16(zp + 1)))
		base := hi<<8 | lo
		addr := base + uint16(y)
		return fmt.Sprintf("%s ($%02X),Y = %04X @ %04X = %02X", mnemonic, zp, base, addr, bus.Read(addr))

	default:
		return mnemonic
	}
}

func indirectTarget(ref uint16, bus Bus) uint16 {
	lo := uint16(bus.Read(ref))
	var hi uint16
	if ref&0xFF == 0xFF {
		hi = uint16(bus.Read(ref & 0xFF00))
	} else {
		hi = uint16(bus.Read(ref + 1))
	}
	return hi<<8 | lo
}
