package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// Branch is the BR instruction: branch to PC+PCoffset9 if any of the
// selected condition codes is currently set. All three flags clear
// (cond bits all zero) is a legal encoding that never branches; all
// three set is the unconditional branch.
type Branch struct {
	Negative, Zero, Positive bool
	PCOffset                 int16
}

func decodeBranch(word uint16) Instruction {
	return Branch{
		Negative: bits.Bit(word, 11) == 1,
		Zero:     bits.Bit(word, 10) == 1,
		Positive: bits.Bit(word, 9) == 1,
		PCOffset: bits.SignExtend(bits.Bits(word, 8, 0), 9),
	}
}

func (b Branch) Encode() uint16 {
	word := uint16(opBranch) << 12
	if b.Negative {
		word |= 1 << 11
	}
	if b.Zero {
		word |= 1 << 10
	}
	if b.Positive {
		word |= 1 << 9
	}
	word |= bits.ToUnsigned(b.PCOffset, 9)
	return word
}

func (b Branch) Execute(m machine.Machine) error {
	taken := (b.Positive && m.PositiveCond()) ||
		(b.Zero && m.ZeroCond()) ||
		(b.Negative && m.NegativeCond())

	if taken {
		m.SetPC(m.PC() + uint16(b.PCOffset))
	}
	return nil
}
