// Package cpu implements the modified MOS 6502 CPU at the heart of the
// NES: registers, the fetch-decode-execute loop, addressing-mode
// resolution, interrupt handling, and the full documented and
// undocumented instruction set.
package cpu

import "github.com/cdebost/nesem/internal/isa"

// Interrupt vectors.
const (
	NMIVector   uint16 = 0xFFFA
	ResetVector uint16 = 0xFFFC
	IRQVector   uint16 = 0xFFFE
)

const stackBase uint16 = 0x0100

// Bus is the capability the CPU needs from whatever backs its 64 KiB
// address space. A CPU never depends on a concrete MMU type, only on
// this interface, so it can run against a bare RAM array in tests or a
// full NES memory map in production.
type Bus interface {
	Read(addr uint16) uint8
	Write(addr uint16, data uint8)
}

// Flags is the 6502 processor status word, kept unpacked so individual
// bits read and write like ordinary fields instead of through a mask.
//
// The status register (aka processor flags) is laid out as follows:
// NV-B DIZC
// |||| ||||
// |||| |||+- carry
// |||| ||+-- zero
// |||| |+--- interrupt disable
// |||| +---- decimal
// |||+------ break (not a real register; observable only on the stack)
// ||+------- reserved (always on)
// |+-------- overflow
// +--------- negative
type Flags struct {
	Negative         bool
	Overflow         bool
	Break            bool
	Decimal          bool
	InterruptDisable bool
	Zero             bool
	Carry            bool
}

// Bits packs the flags into the byte representation used on the stack.
func (f Flags) Bits() uint8 {
	var b uint8
	if f.Negative {
		b |= 0x80
	}
	if f.Overflow {
		b |= 0x40
	}
	b |= 0x20 // reserved bit, always set
	if f.Break {
		b |= 0x10
	}
	if f.Decimal {
		b |= 0x08
	}
	if f.InterruptDisable {
		b |= 0x04
	}
	if f.Zero {
		b |= 0x02
	}
	if f.Carry {
		b |= 0x01
	}
	return b
}

// restore sets every flag except Break from a byte popped off the
// stack, per the 6502's RTI/PLP behavior: the Break bit is discarded.
func (f *Flags) restore(b uint8) {
	f.Negative = b&0x80 != 0
	f.Overflow = b&0x40 != 0
	f.Decimal = b&0x08 != 0
	f.InterruptDisable = b&0x04 != 0
	f.Zero = b&0x02 != 0
	f.Carry = b&0x01 != 0
}

// CPU is the 6502 register file and execution engine. It owns no memory
// of its own; all reads and writes are delegated to a Bus.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16

	Flags Flags

	// IRQPending and NMIPending are level-triggered interrupt latches set
	// by external parties (the PPU for NMI, the APU/mapper for IRQ) and
	// cleared by the CPU when it begins servicing them.
	IRQPending bool
	NMIPending bool

	// Cycles is the cumulative CPU cycle count, used by callers to drive
	// PPU ticking and by the trace formatter.
	Cycles uint64

	bus Bus
}

// New returns a CPU wired to the given bus. Registers are zero and the
// CPU is not yet reset.
func New(bus Bus) *CPU {
	return &CPU{bus: bus}
}

// Read reads a single byte through the bus.
func (c *CPU) Read(addr uint16) uint8 { return c.bus.Read(addr) }

// Write writes a single byte through the bus.
func (c *CPU) Write(addr uint16, data uint8) { c.bus.Write(addr, data) }

// Read16 reads two bytes in little-endian order.
func (c *CPU) Read16(addr uint16) uint16 {
	lo := uint16(c.Read(addr))
	hi := uint16(c.Read(addr + 1))
	return hi<<8 | lo
}

// Write16 writes two bytes in little-endian order.
func (c *CPU) Write16(addr uint16, data uint16) {
	c.Write(addr, uint8(data))
	c.Write(addr+1, uint8(data>>8))
}

// Reset puts the CPU into its post-power-on state: SP=0xFD,
// interrupt-disable set, PC loaded from the reset vector.
func (c *CPU) Reset() {
	c.SP = 0xFD
	c.Flags.InterruptDisable = true
	c.PC = c.Read16(ResetVector)
	c.Cycles += 7
}

// Step services one pending interrupt, or executes one instruction if
// none is pending. NMI takes precedence over IRQ, which is itself
// masked by the interrupt-disable flag; both take precedence over
// ordinary instruction fetch.
func (c *CPU) Step() {
	switch {
	case c.NMIPending:
		c.NMIPending = false
		c.handleNMI()
	case c.IRQPending && !c.Flags.InterruptDisable:
		c.IRQPending = false
		c.handleIRQ()
	default:
		c.fetchExec()
	}
}

func (c *CPU) updateZeroNeg(v uint8) {
	c.Flags.Zero = v == 0
	c.Flags.Negative = v&0x80 != 0
}

func (c *CPU) push(v uint8) {
	c.Write(stackBase+uint16(c.SP), v)
	c.SP--
}

func (c *CPU) pop() uint8 {
	c.SP++
	return c.Read(stackBase + uint16(c.SP))
}

func (c *CPU) push16(v uint16) {
	c.push(uint8(v >> 8))
	c.push(uint8(v))
}

func (c *CPU) pop16() uint16 {
	lo := uint16(c.pop())
	hi := uint16(c.pop())
	return hi<<8 | lo
}

// operandAddr resolves the effective address for op, given that c.PC is
// currently positioned on the first operand byte. It accounts for the
// page-cross cycle penalty as a side effect on c.Cycles, and reproduces
// the indirect-JMP page-wrap hardware bug.
func (c *CPU) operandAddr(op *isa.Opcode) uint16 {
	switch op.Mode {
	case isa.Immediate:
		return c.PC
	case isa.Zeropage:
		return uint16(c.Read(c.PC))
	case isa.ZeropageX:
		return uint16(uint8(c.Read(c.PC) + c.X))
	case isa.ZeropageY:
		return uint16(uint8(c.Read(c.PC) + c.Y))
	case isa.Absolute:
		return c.Read16(c.PC)
	case isa.AbsoluteX:
		base := c.Read16(c.PC)
		addr := base + uint16(c.X)
		if op.AddsCycleOnPageCross() && addr&0xFF00 != base&0xFF00 {
			c.Cycles++
		}
		return addr
	case isa.AbsoluteY:
		base := c.Read16(c.PC)
		addr := base + uint16(c.Y)
		if op.AddsCycleOnPageCross() && addr&0xFF00 != base&0xFF00 {
			c.Cycles++
		}
		return addr
	case isa.Relative:
		return uint16(int16(c.PC+1) + int16(int8(c.Read(c.PC))))
	case isa.Indirect:
		ref := c.Read16(c.PC)
		lo := uint16(c.Read(ref))
		var hi uint16
		if ref&0xFF == 0xFF {
			// Unintuitively, the indirect read wraps around the page.
			hi = uint16(c.Read(ref & 0xFF00))
		} else {
			hi = uint16(c.Read(ref + 1))
		}
		return hi<<8 | lo
	case isa.IndirectX:
		ref := c.Read(c.PC) + c.X
		lo := uint16(c.Read(uint16(ref)))
		hi := uint16(c.Read(uint16(ref + 1)))
		return hi<<8 | lo
	case isa.IndirectY:
		ref := c.Read(c.PC)
		lo := uint16(c.Read(uint16(ref)))
		hi := uint16(c.Read(uint16(ref + 1)))
		base := hi<<8 | lo
		addr := base + uint16(c.Y)
		if op.AddsCycleOnPageCross() && addr&0xFF00 != base&0xFF00 {
			c.Cycles++
		}
		return addr
	default:
		panic("cpu: implied mode has no operand address")
	}
}

// fetchExec fetches the opcode at PC, decodes and dispatches it, then
// advances PC and the cycle counter.
func (c *CPU) fetchExec() {
	opcode := c.Read(c.PC)
	c.PC++
	op := &isa.Table[opcode]

	var addr uint16
	if op.Mode != isa.Implied {
		addr = c.operandAddr(op)
	}
	prevPC := c.PC

	c.execute(opcode, addr)

	// Instructions that modified PC themselves (branches, jumps, calls,
	// returns) suppress the automatic post-increment.
	if c.PC == prevPC {
		c.PC += uint16(op.Len - 1)
	}
	c.Cycles += uint64(op.Cycles)
}
