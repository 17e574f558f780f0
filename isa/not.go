package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// Not is the bitwise-complement instruction. Its low six bits must all
// be set; any other trailing pattern is not a valid NOT encoding.
type Not struct {
	Dest, Src machine.Reg
}

func decodeNot(word uint16) (Instruction, error) {
	if bits.Bits(word, 5, 0) != 0b111111 {
		return nil, machine.NewInvalidInstruction(word)
	}
	return Not{Dest: reg(word, 11, 9), Src: reg(word, 8, 6)}, nil
}

func (n Not) Encode() uint16 {
	word := uint16(opNot) << 12
	word |= uint16(n.Dest) << 9
	word |= uint16(n.Src) << 6
	word |= 0b111111
	return word
}

func (n Not) Execute(m machine.Machine) error {
	result := ^m.Reg(n.Src)
	m.SetReg(n.Dest, result)
	setConditionCodes(m, result)
	return nil
}
