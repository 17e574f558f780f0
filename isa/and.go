package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// And is the AND instruction: register-register or register-immediate.
// Unlike Add, AND's encoding never rejects any value of bits 4-3 when
// bit 5 is clear — they simply aren't part of the register-register
// encoding and are ignored on decode.
type And struct {
	Dest, Src1 machine.Reg
	Src2       machine.Reg
	Imm        int16
	Immediate  bool
}

func decodeAnd(word uint16) (Instruction, error) {
	dest := reg(word, 11, 9)
	src1 := reg(word, 8, 6)

	if bits.Bit(word, 5) == 0 {
		return And{Dest: dest, Src1: src1, Src2: reg(word, 2, 0)}, nil
	}
	return And{Dest: dest, Src1: src1, Imm: bits.SignExtend(bits.Bits(word, 4, 0), 5), Immediate: true}, nil
}

func (a And) Encode() uint16 {
	word := uint16(opAnd) << 12
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

func (a And) Execute(m machine.Machine) error {
	var result uint16
	if a.Immediate {
		result = m.Reg(a.Src1) & uint16(a.Imm)
	} else {
		result = m.Reg(a.Src1) & m.Reg(a.Src2)
	}
	m.SetReg(a.Dest, result)
	setConditionCodes(m, result)
	return nil
}
