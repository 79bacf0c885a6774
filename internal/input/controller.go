// Package input implements the NES controller's serial shift-register
// protocol at CPU addresses 0x4016/0x4017. It sits outside the
// emulation core proper but is wired into the memory map so a host
// can drive gameplay.
package input

// Button identifies one of the eight NES controller buttons, ordered
// to match the bit order read out of the shift register: A, B,
// Select, Start, Up, Down, Left, Right.
type Button uint8

const (
	ButtonA Button = 1 << iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
)

// Controller is a single NES gamepad, latched through the 0x4016
// strobe and read back one bit at a time.
type Controller struct {
	buttons uint8

	strobe        bool
	shiftRegister uint8
}

// New returns a Controller with no buttons held.
func New() *Controller { return &Controller{} }

// SetButton sets or clears the live state of a button. The
// controller's shift register only observes this on the next strobe.
func (c *Controller) SetButton(b Button, pressed bool) {
	if pressed {
		c.buttons |= uint8(b)
	} else {
		c.buttons &^= uint8(b)
	}
}

// Write handles a write to 0x4016. Bit 0 is the strobe: while it is
// held high the shift register continuously reloads from the live
// button state; on the falling edge the current state is latched for
// the read sequence that follows.
func (c *Controller) Write(addr uint16, value uint8) {
	c.strobe = value&0x01 != 0
	if c.strobe {
		c.shiftRegister = c.buttons
	}
}

// Read handles a read of 0x4016 or 0x4017, returning the next button
// bit in the shift register's low bit and shifting it out. Past the
// eighth read it keeps returning the Right button's bit. addr is not
// inspected; each port has its own Controller.
func (c *Controller) Read(addr uint16) uint8 {
	if c.strobe {
		c.shiftRegister = c.buttons
	}
	bit := c.shiftRegister & 0x01
	c.shiftRegister = c.shiftRegister>>1 | c.shiftRegister&0x80
	return bit
}
