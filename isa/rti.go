package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// RTI is the return-from-interrupt instruction. It carries no operand
// bits; all twelve low bits of its encoding must be zero.
type RTI struct{}

func decodeRTI(word uint16) (Instruction, error) {
	if bits.Bits(word, 11, 0) != 0 {
		return nil, machine.NewInvalidInstruction(word)
	}
	return RTI{}, nil
}

func (RTI) Encode() uint16 {
	return uint16(opRTI) << 12
}

func (RTI) Execute(m machine.Machine) error {
	return machine.DoRTI(m)
}
