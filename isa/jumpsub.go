package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// JumpSub is JSR (PC-relative, PCoffset11) or JSRR (register-indirect),
// selected by bit 11 of the encoding.
type JumpSub struct {
	BaseReg  machine.Reg // valid when !ViaOffset
	PCOffset int16       // valid when ViaOffset
	ViaOffset bool
}

func decodeJumpSub(word uint16) (Instruction, error) {
	if bits.Bit(word, 11) == 1 {
		return JumpSub{PCOffset: bits.SignExtend(bits.Bits(word, 10, 0), 11), ViaOffset: true}, nil
	}
	if bits.Bits(word, 11, 9) != 0 || bits.Bits(word, 5, 0) != 0 {
		return nil, machine.NewInvalidInstruction(word)
	}
	return JumpSub{BaseReg: reg(word, 8, 6)}, nil
}

func (j JumpSub) Encode() uint16 {
	word := uint16(opJumpSR) << 12
	if j.ViaOffset {
		word |= 1 << 11
		word |= bits.ToUnsigned(j.PCOffset, 11)
		return word
	}
	word |= uint16(j.BaseReg) << 6
	return word
}

func (j JumpSub) Execute(m machine.Machine) error {
	m.SetReg(machine.LinkReg, m.PC())
	if j.ViaOffset {
		m.SetPC(m.PC() + uint16(j.PCOffset))
	} else {
		m.SetPC(m.Reg(j.BaseReg))
	}
	return nil
}
