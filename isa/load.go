package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// LoadKind distinguishes the four load-family opcodes, which share a
// decoded shape but differ in how the effective address is formed and
// whether memory is actually read.
type LoadKind uint8

const (
	LoadDirect   LoadKind = iota // LD
	LoadIndirect                 // LDI
	LoadReg                      // LDR
	LoadEffectiveAddr            // LEA
)

// Load covers LD, LDI, LDR and LEA.
type Load struct {
	Kind     LoadKind
	Dest     machine.Reg
	PCOffset int16       // valid for LoadDirect, LoadIndirect, LoadEffectiveAddr
	BaseReg  machine.Reg // valid for LoadReg
	Offset6  int16       // valid for LoadReg
}

func decodeLoad(word uint16) (Instruction, error) {
	dest := reg(word, 11, 9)

	switch bits.Opcode(word) {
	case opLD:
		return Load{Kind: LoadDirect, Dest: dest, PCOffset: bits.SignExtend(bits.Bits(word, 8, 0), 9)}, nil
	case opLDI:
		return Load{Kind: LoadIndirect, Dest: dest, PCOffset: bits.SignExtend(bits.Bits(word, 8, 0), 9)}, nil
	case opLEA:
		return Load{Kind: LoadEffectiveAddr, Dest: dest, PCOffset: bits.SignExtend(bits.Bits(word, 8, 0), 9)}, nil
	case opLDR:
		return Load{
			Kind:    LoadReg,
			Dest:    dest,
			BaseReg: reg(word, 8, 6),
			Offset6: bits.SignExtend(bits.Bits(word, 5, 0), 6),
		}, nil
	default:
		return nil, machine.NewInvalidInstruction(word)
	}
}

func (l Load) Encode() uint16 {
	switch l.Kind {
	case LoadDirect:
		return uint16(opLD)<<12 | uint16(l.Dest)<<9 | bits.ToUnsigned(l.PCOffset, 9)
	case LoadIndirect:
		return uint16(opLDI)<<12 | uint16(l.Dest)<<9 | bits.ToUnsigned(l.PCOffset, 9)
	case LoadEffectiveAddr:
		return uint16(opLEA)<<12 | uint16(l.Dest)<<9 | bits.ToUnsigned(l.PCOffset, 9)
	default: // LoadReg
		return uint16(opLDR)<<12 | uint16(l.Dest)<<9 | uint16(l.BaseReg)<<6 | bits.ToUnsigned(l.Offset6, 6)
	}
}

func (l Load) Execute(m machine.Machine) error {
	var result uint16
	switch l.Kind {
	case LoadDirect:
		addr := m.PC() + uint16(l.PCOffset)
		result = m.Mem(addr)
	case LoadIndirect:
		addr := m.PC() + uint16(l.PCOffset)
		result = m.Mem(m.Mem(addr))
	case LoadReg:
		addr := m.Reg(l.BaseReg) + uint16(l.Offset6)
		result = m.Mem(addr)
	case LoadEffectiveAddr:
		result = m.PC() + uint16(l.PCOffset)
	}
	m.SetReg(l.Dest, result)
	setConditionCodes(m, result)
	return nil
}
