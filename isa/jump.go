package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// Jump is the JMP instruction. RET is the special case BaseReg ==
// machine.R7; it carries no separate representation.
type Jump struct {
	BaseReg machine.Reg
}

func decodeJump(word uint16) (Instruction, error) {
	if bits.Bits(word, 11, 9) != 0 || bits.Bits(word, 5, 0) != 0 {
		return nil, machine.NewInvalidInstruction(word)
	}
	return Jump{BaseReg: reg(word, 8, 6)}, nil
}

func (j Jump) Encode() uint16 {
	word := uint16(opJump) << 12
	word |= uint16(j.BaseReg) << 6
	return word
}

func (j Jump) Execute(m machine.Machine) error {
	m.SetPC(m.Reg(j.BaseReg))
	return nil
}
