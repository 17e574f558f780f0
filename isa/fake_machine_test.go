package isa

import (
	"iter"

	"github.com/wpkelso/lc3sim/machine"
)

// fakeMachine is a minimal, unoptimized machine.Machine used to unit
// test instruction Execute methods in isolation, independent of any
// real executor backend.
type fakeMachine struct {
	pc                        uint16
	regs                      [machine.NumRegs]uint16
	userR6, supervisorR6      uint16
	mem                       map[uint16]uint16
	negative, zero, positive  bool
	priority                  uint8
	privileged                bool
	halted                    bool
}

func newFakeMachine() *fakeMachine {
	return &fakeMachine{mem: make(map[uint16]uint16), supervisorR6: machine.SupervisorSPInit}
}

func (m *fakeMachine) PC() uint16      { return m.pc }
func (m *fakeMachine) SetPC(pc uint16) { m.pc = pc }

func (m *fakeMachine) Reg(r machine.Reg) uint16 {
	if r == machine.StackReg {
		if m.privileged {
			return m.supervisorR6
		}
		return m.userR6
	}
	return m.regs[r]
}

func (m *fakeMachine) SetReg(r machine.Reg, v uint16) {
	if r == machine.StackReg {
		if m.privileged {
			m.supervisorR6 = v
		} else {
			m.userR6 = v
		}
		return
	}
	m.regs[r] = v
}

func (m *fakeMachine) Mem(addr uint16) uint16      { return m.mem[addr] }
func (m *fakeMachine) SetMem(addr uint16, v uint16) { m.mem[addr] = v }

func (m *fakeMachine) PositiveCond() bool { return m.positive }
func (m *fakeMachine) ZeroCond() bool     { return m.zero }
func (m *fakeMachine) NegativeCond() bool { return m.negative }

func (m *fakeMachine) FlagPositive() { m.negative, m.zero, m.positive = false, false, true }
func (m *fakeMachine) FlagZero()     { m.negative, m.zero, m.positive = false, true, false }
func (m *fakeMachine) FlagNegative() { m.negative, m.zero, m.positive = true, false, false }
func (m *fakeMachine) ClearFlags()   { m.negative, m.zero, m.positive = false, false, false }

func (m *fakeMachine) Priority() uint8 { return m.priority }
func (m *fakeMachine) SetPriority(p uint8) {
	if p < 8 {
		m.priority = p
	}
}

func (m *fakeMachine) Privileged() bool          { return m.privileged }
func (m *fakeMachine) SetPrivileged(p bool)      { m.privileged = p }

func (m *fakeMachine) PSR() uint16 {
	return machine.EncodePSR(m.privileged, m.priority, m.negative, m.zero, m.positive)
}

func (m *fakeMachine) SetPSR(psr uint16) {
	m.privileged, m.priority, m.negative, m.zero, m.positive = machine.DecodePSR(psr)
}

func (m *fakeMachine) Halt()          { m.halted = true }
func (m *fakeMachine) Unhalt()        { m.halted = false }
func (m *fakeMachine) IsHalted() bool { return m.halted }

func (m *fakeMachine) All() iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		for i := 0; i < machine.AddrSpaceSize; i++ {
			if !yield(m.mem[uint16(i)]) {
				return
			}
		}
	}
}

func (m *fakeMachine) Sparse() iter.Seq2[uint16, uint16] {
	return func(yield func(uint16, uint16) bool) {
		for i := 0; i < machine.AddrSpaceSize; i++ {
			if v := m.mem[uint16(i)]; v != 0 {
				if !yield(uint16(i), v) {
					return
				}
			}
		}
	}
}

func (m *fakeMachine) Step() error { return nil }

func (m *fakeMachine) Interrupt(vector uint16, priorityOverride *uint8) error {
	machine.DoInterrupt(m, vector, priorityOverride)
	return nil
}

func (m *fakeMachine) Populate(start uint16, words []uint16) {
	for i, w := range words {
		m.mem[start+uint16(i)] = w
	}
}

var _ machine.Machine = (*fakeMachine)(nil)
