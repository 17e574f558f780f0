package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// Add is the ADD instruction: register-register or register-immediate.
type Add struct {
	Dest, Src1 machine.Reg
	Src2       machine.Reg // valid when !Immediate
	Imm        int16       // valid when Immediate, sign-extended from 5 bits
	Immediate  bool
}

func decodeAdd(word uint16) (Instruction, error) {
	dest := reg(word, 11, 9)
	src1 := reg(word, 8, 6)

	if bits.Bit(word, 5) == 0 {
		if bits.Bits(word, 4, 3) != 0 {
			return nil, machine.NewInvalidInstruction(word)
		}
		return Add{Dest: dest, Src1: src1, Src2: reg(word, 2, 0)}, nil
	}
	return Add{Dest: dest, Src1: src1, Imm: bits.SignExtend(bits.Bits(word, 4, 0), 5), Immediate: true}, nil
}

func (a Add) Encode() uint16 {
	word := uint16(opAdd) << 12
	word |= uint16(a.Dest) << 9
	word |= uint16(a.Src1) << 6
	if a.Immediate {
		word |= 1 << 5
		word |= bits.ToUnsigned(a.Imm, 5)
	} else {
		word |= uint16(a.Src2)
	}
	return word
}

func (a Add) Execute(m machine.Machine) error {
	var result uint16
	if a.Immediate {
		result = m.Reg(a.Src1) + uint16(a.Imm)
	} else {
		result = m.Reg(a.Src1) + m.Reg(a.Src2)
	}
	m.SetReg(a.Dest, result)
	setConditionCodes(m, result)
	return nil
}
