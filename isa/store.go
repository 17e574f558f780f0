package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// StoreKind distinguishes the three store-family opcodes.
type StoreKind uint8

const (
	StoreDirect   StoreKind = iota // ST
	StoreIndirect                  // STI
	StoreReg                       // STR
)

// Store covers ST, STI and STR. None of them update condition flags.
type Store struct {
	Kind     StoreKind
	Src      machine.Reg
	PCOffset int16       // valid for StoreDirect, StoreIndirect
	BaseReg  machine.Reg // valid for StoreReg
	Offset6  int16       // valid for StoreReg
}

func decodeStore(word uint16) (Instruction, error) {
	src := reg(word, 11, 9)

	switch bits.Opcode(word) {
	case opST:
		return Store{Kind: StoreDirect, Src: src, PCOffset: bits.SignExtend(bits.Bits(word, 8, 0), 9)}, nil
	case opSTI:
		return Store{Kind: StoreIndirect, Src: src, PCOffset: bits.SignExtend(bits.Bits(word, 8, 0), 9)}, nil
	case opSTR:
		return Store{
			Kind:    StoreReg,
			Src:     src,
			BaseReg: reg(word, 8, 6),
			Offset6: bits.SignExtend(bits.Bits(word, 5, 0), 6),
		}, nil
	default:
		return nil, machine.NewInvalidInstruction(word)
	}
}

func (s Store) Encode() uint16 {
	switch s.Kind {
	case StoreDirect:
		return uint16(opST)<<12 | uint16(s.Src)<<9 | bits.ToUnsigned(s.PCOffset, 9)
	case StoreIndirect:
		return uint16(opSTI)<<12 | uint16(s.Src)<<9 | bits.ToUnsigned(s.PCOffset, 9)
	default: // StoreReg
		return uint16(opSTR)<<12 | uint16(s.Src)<<9 | uint16(s.BaseReg)<<6 | bits.ToUnsigned(s.Offset6, 6)
	}
}

func (s Store) Execute(m machine.Machine) error {
	switch s.Kind {
	case StoreDirect:
		addr := m.PC() + uint16(s.PCOffset)
		m.SetMem(addr, m.Reg(s.Src))
	case StoreIndirect:
		addr := m.PC() + uint16(s.PCOffset)
		m.SetMem(m.Mem(addr), m.Reg(s.Src))
	case StoreReg:
		addr := m.Reg(s.BaseReg) + uint16(s.Offset6)
		m.SetMem(addr, m.Reg(s.Src))
	}
	return nil
}
