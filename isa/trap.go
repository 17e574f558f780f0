package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// Trap vector numbers for the six standard OS service calls.
const (
	TrapGetc  = 0x20
	TrapOut   = 0x21
	TrapPuts  = 0x22
	TrapIn    = 0x23
	TrapPutsp = 0x24
	TrapHalt  = 0x25
)

// Trap is the TRAP instruction. trapvect8 is restricted to the six
// standard service vectors; any other value in that byte is not a
// valid TRAP encoding.
type Trap struct {
	Vector uint8
}

func validTrapVector(v uint8) bool {
	switch v {
	case TrapGetc, TrapOut, TrapPuts, TrapIn, TrapPutsp, TrapHalt:
		return true
	default:
		return false
	}
}

func decodeTrap(word uint16) (Instruction, error) {
	vector := uint8(bits.Bits(word, 7, 0))
	if bits.Bits(word, 11, 8) != 0 || !validTrapVector(vector) {
		return nil, machine.NewInvalidInstruction(word)
	}
	return Trap{Vector: vector}, nil
}

func (t Trap) Encode() uint16 {
	return uint16(opTrap)<<12 | uint16(t.Vector)
}

func (t Trap) Execute(m machine.Machine) error {
	if t.Vector == TrapHalt {
		m.Halt()
	}
	m.SetReg(machine.LinkReg, m.PC())
	m.SetPC(m.Mem(uint16(t.Vector)))
	return nil
}
