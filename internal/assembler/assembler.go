// Package assembler compiles a small 6502 assembly dialect with
// labels into a flat byte stream, using the instruction table to
// resolve mnemonic+operand pairs to opcodes. Label resolution runs in
// two passes: the first walks the program computing addresses and
// instruction lengths, the second emits bytes, computing relative
// branch offsets and absolute targets from the now-known symbol
// table.
package assembler

import (
	"fmt"

	"github.com/cdebost/nesem/internal/isa"
)

const origin uint16 = 0x8000

type resolved struct {
	stmt   statement
	op     *isa.Opcode
	length uint8
	addr   uint16
}

// Assemble compiles src and returns the emitted byte stream: every
// instruction's opcode and operand bytes in order, with labels resolved
// against the conventional 0x8000 load address.
func Assemble(src string) ([]uint8, error) {
	p, err := newParser(src)
	if err != nil {
		return nil, err
	}
	stmts, err := p.parse()
	if err != nil {
		return nil, err
	}

	resolveds, labels, err := firstPass(stmts)
	if err != nil {
		return nil, err
	}
	return secondPass(resolveds, labels)
}

func firstPass(stmts []statement) ([]resolved, map[string]uint16, error) {
	labels := make(map[string]uint16)
	out := make([]resolved, 0, len(stmts))
	pc := origin

	for _, st := range stmts {
		if st.label != "" {
			if _, exists := labels[st.label]; exists {
				return nil, nil, &ParseError{Line: st.line, Msg: fmt.Sprintf("label %q redefined", st.label)}
			}
			labels[st.label] = pc
		}

		op, length, err := resolveMode(st)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, resolved{stmt: st, op: op, length: length, addr: pc})
		pc += uint16(length)
	}
	return out, labels, nil
}

// resolveMode selects the opcode descriptor and instruction length for
// a statement, per the operand-kind/width compatibility table. An
// identifier (label) operand in direct position resolves to Relative
// mode when the mnemonic has one (a branch), and to Absolute mode
// otherwise; this is the one place the dialect must make a choice the
// grammar leaves implicit.
func resolveMode(st statement) (*isa.Opcode, uint8, error) {
	if !isa.KnownMnemonic(st.mnemonic) {
		return nil, 0, &ParseError{Line: st.line, Msg: fmt.Sprintf("unknown mnemonic %q", st.mnemonic)}
	}

	lookup := func(mode isa.Mode) (*isa.Opcode, bool) { return isa.ByMnemonicAndMode(st.mnemonic, mode) }

	var op *isa.Opcode
	var ok bool
	var length uint8

	switch st.kind {
	case operandNone:
		op, ok = lookup(isa.Implied)
		length = 1

	case operandImmediate:
		op, ok = lookup(isa.Immediate)
		length = 2

	case operandDirect:
		switch {
		case st.value.label != "":
			if op, ok = lookup(isa.Relative); ok {
				length = 2
				break
			}
			op, ok = lookup(isa.Absolute)
			length = 3
		case st.value.width == 1:
			if op, ok = lookup(isa.Zeropage); ok {
				length = 2
				break
			}
			op, ok = lookup(isa.Relative)
			length = 2
		default:
			op, ok = lookup(isa.Absolute)
			length = 3
		}

	case operandDirectX:
		if st.value.label == "" && st.value.width == 1 {
			op, ok = lookup(isa.ZeropageX)
			length = 2
		} else {
			op, ok = lookup(isa.AbsoluteX)
			length = 3
		}

	case operandDirectY:
		if st.value.label == "" && st.value.width == 1 {
			op, ok = lookup(isa.ZeropageY)
			length = 2
		} else {
			op, ok = lookup(isa.AbsoluteY)
			length = 3
		}

	case operandIndirect:
		op, ok = lookup(isa.Indirect)
		length = 3

	case operandIndirectX:
		op, ok = lookup(isa.IndirectX)
		length = 2

	case operandIndirectY:
		op, ok = lookup(isa.IndirectY)
		length = 2
	}

	if !ok {
		return nil, 0, &ParseError{Line: st.line, Msg: fmt.Sprintf("%s does not support this operand", st.mnemonic)}
	}
	return op, length, nil
}

func secondPass(stmts []resolved, labels map[string]uint16) ([]uint8, error) {
	var out []uint8

	resolve := func(v operandValue, line int) (uint16, error) {
		if v.label == "" {
			return v.n, nil
		}
		addr, ok := labels[v.label]
		if !ok {
			return 0, &ParseError{Line: line, Msg: fmt.Sprintf("undefined label %q", v.label)}
		}
		return addr, nil
	}

	for _, r := range stmts {
		out = append(out, r.op.Code)
		st := r.stmt

		switch r.op.Mode {
		case isa.Implied:
			// no operand bytes

		case isa.Immediate, isa.Zeropage, isa.ZeropageX, isa.ZeropageY, isa.IndirectX, isa.IndirectY:
			v, err := resolve(st.value, st.line)
			if err != nil {
				return nil, err
			}
			out = append(out, uint8(v))

		case isa.Relative:
			target, err := resolve(st.value, st.line)
			if err != nil {
				return nil, err
			}
			offset := int32(target) - int32(r.addr) - int32(r.length)
			if offset < -128 || offset > 127 {
				return nil, &ParseError{Line: st.line, Msg: "branch target out of range"}
			}
			out = append(out, uint8(int8(offset)))

		case isa.Absolute, isa.AbsoluteX, isa.AbsoluteY, isa.Indirect:
			v, err := resolve(st.value, st.line)
			if err != nil {
				return nil, err
			}
			out = append(out, uint8(v), uint8(v>>8))

		default:
			return nil, &ParseError{Line: st.line, Msg: "internal: unhandled addressing mode"}
		}
	}
	return out, nil
}
