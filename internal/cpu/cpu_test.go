package cpu

import "testing"

// flatMem is a 64 KiB RAM-only bus, used the way the original reference
// implementation's RAM-only bus is: for tests that want full control
// over memory contents without a cartridge or PPU.
type flatMem [0x10000]uint8

func (m *flatMem) Read(addr uint16) uint8        { return m[addr] }
func (m *flatMem) Write(addr uint16, data uint8) { m[addr] = data }

func newTestCPU() (*CPU, *flatMem) {
	mem := &flatMem{}
	mem[0xFFFC] = 0x00
	mem[0xFFFD] = 0x80
	c := New(mem)
	c.Reset()
	return c, mem
}

func load(mem *flatMem, addr uint16, bytes ...uint8) {
	for i, b := range bytes {
		mem[int(addr)+i] = b
	}
}

func TestResetState(t *testing.T) {
	c, _ := newTestCPU()
	if c.SP != 0xFD {
		t.Errorf("SP = %#02x, want 0xFD", c.SP)
	}
	if !c.Flags.InterruptDisable {
		t.Error("InterruptDisable should be set after reset")
	}
	if c.PC != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", c.PC)
	}
}

func TestLDAImmediate(t *testing.T) {
	c, mem := newTestCPU()
	load(mem, 0x8000, 0xA9, 0x05)
	before := c.Cycles
	c.Step()
	if c.A != 0x05 {
		t.Errorf("A = %#02x, want 0x05", c.A)
	}
	if c.Flags.Zero || c.Flags.Negative {
		t.Errorf("flags Z=%v N=%v, want both false", c.Flags.Zero, c.Flags.Negative)
	}
	if got := c.Cycles - before; got != 2 {
		t.Errorf("cycles = %d, want 2", got)
	}
}

func TestAbsoluteXPageCrossTiming(t *testing.T) {
	c, mem := newTestCPU()
	load(mem, 0x8000, 0xBD, 0xFF, 0x00) // LDA $00FF,X
	c.X = 1
	before := c.Cycles
	c.Step()
	if got := c.Cycles - before; got != 5 {
		t.Errorf("cycles = %d, want 5 (base 4 + page-cross penalty)", got)
	}
}

func TestIndirectXWraparound(t *testing.T) {
	c, mem := newTestCPU()
	load(mem, 0x8000, 0xA1, 0xFF) // LDA ($FF,X)
	c.X = 0
	mem[0x00FF] = 0x50
	mem[0x0000] = 0x01
	mem[0x0150] = 0x05
	c.Step()
	if c.A != 0x05 {
		t.Errorf("A = %#02x, want 0x05", c.A)
	}
}

func TestJMPIndirectPageWrapBug(t *testing.T) {
	c, mem := newTestCPU()
	load(mem, 0x8000, 0x6C, 0xFF, 0x00) // JMP ($00FF)
	mem[0x00FF] = 0x00
	mem[0x0000] = 0x90
	c.Step()
	if c.PC != 0x9000 {
		t.Errorf("PC = %#04x, want 0x9000 (page-wrap bug)", c.PC)
	}
}

func TestBRKThenRTI(t *testing.T) {
	c, mem := newTestCPU()
	load(mem, 0x8000, 0x00, 0xEA) // BRK; NOP (the byte BRK's return address skips)
	load(mem, 0x8010, 0xE8, 0x40) // INX; RTI, the interrupt handler
	mem[0xFFFE], mem[0xFFFF] = 0x10, 0x80

	c.Step() // BRK: pushes PC+1 = 0x8002, jumps to the IRQ vector
	if c.PC != 0x8010 {
		t.Fatalf("PC = %#04x, want 0x8010 after BRK", c.PC)
	}
	if !c.Flags.InterruptDisable {
		t.Error("InterruptDisable should be set after BRK")
	}

	c.Step() // INX
	if c.X != 1 {
		t.Fatalf("X = %d, want 1 after INX", c.X)
	}

	c.Step() // RTI
	if c.PC != 0x8002 {
		t.Errorf("PC = %#04x, want 0x8002 (the byte after BRK's signature byte)", c.PC)
	}
}

func TestStackPointerStaysInRange(t *testing.T) {
	c, mem := newTestCPU()
	load(mem, 0x8000, 0x48) // PHA, repeated via loop below
	for i := 0; i < 300; i++ {
		mem[0x8000] = 0x48
		c.PC = 0x8000
		c.Step()
		if c.SP > 0xFF {
			t.Fatalf("SP out of range: %#02x", c.SP)
		}
	}
}
