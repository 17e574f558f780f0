/*
 * lc3sim - parallel instruction-cache machine backend
 *
 * Copyright (c) 2025, lc3sim contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package instrcache is a machine.Machine backend that keeps a decoded
// instruction array running parallel to the raw word array, rather
// than folding the decode into each memory cell the way
// machine/rescache does. A SetMem write stores the new word and clears
// the corresponding decoded slot so a later fetch re-decodes it.
package instrcache

import (
	"iter"

	"github.com/wpkelso/lc3sim/isa"
	"github.com/wpkelso/lc3sim/machine"
)

// Machine is a parallel-decoded-cache LC-3 machine.
type Machine struct {
	words   [machine.AddrSpaceSize]uint16
	decoded [machine.AddrSpaceSize]isa.Instruction
	valid   [machine.AddrSpaceSize]bool

	regs         [machine.NumRegs]uint16
	userR6       uint16
	supervisorR6 uint16

	negative, zero, positive bool
	priority                 uint8
	privileged               bool
	pc                       uint16
	halted                   bool
	clockDisabled            bool
}

// New returns a Machine in its reset state, identical in observable
// content to a fresh machine/core.Core.
func New() *Machine {
	return &Machine{
		supervisorR6: machine.SupervisorSPInit,
		privileged:   true,
		pc:           0x0200,
	}
}

func (m *Machine) PC() uint16      { return m.pc }
func (m *Machine) SetPC(pc uint16) { m.pc = pc }

func (m *Machine) Reg(r machine.Reg) uint16 {
	if r == machine.StackReg {
		if m.privileged {
			return m.supervisorR6
		}
		return m.userR6
	}
	return m.regs[r]
}

func (m *Machine) SetReg(r machine.Reg, value uint16) {
	if r == machine.StackReg {
		if m.privileged {
			m.supervisorR6 = value
		} else {
			m.userR6 = value
		}
		return
	}
	m.regs[r] = value
}

func (m *Machine) Mem(addr uint16) uint16 { return m.words[addr] }

// SetMem writes through to the word array and drops the parallel
// decode cache entry for addr so the next fetch re-decodes it.
func (m *Machine) SetMem(addr uint16, value uint16) {
	m.words[addr] = value
	m.valid[addr] = false
	m.decoded[addr] = nil
	if addr == machine.MCR {
		m.clockDisabled = value&(1<<15) == 0
	}
}

func (m *Machine) PositiveCond() bool { return m.positive }
func (m *Machine) ZeroCond() bool     { return m.zero }
func (m *Machine) NegativeCond() bool { return m.negative }

func (m *Machine) FlagPositive() { m.negative, m.zero, m.positive = false, false, true }
func (m *Machine) FlagZero()     { m.negative, m.zero, m.positive = false, true, false }
func (m *Machine) FlagNegative() { m.negative, m.zero, m.positive = true, false, false }
func (m *Machine) ClearFlags()   { m.negative, m.zero, m.positive = false, false, false }

func (m *Machine) Priority() uint8 { return m.priority }
func (m *Machine) SetPriority(priority uint8) {
	if priority < 8 {
		m.priority = priority
	}
}

func (m *Machine) Privileged() bool     { return m.privileged }
func (m *Machine) SetPrivileged(p bool) { m.privileged = p }

func (m *Machine) PSR() uint16 {
	return machine.EncodePSR(m.privileged, m.priority, m.negative, m.zero, m.positive)
}

func (m *Machine) SetPSR(psr uint16) {
	m.privileged, m.priority, m.negative, m.zero, m.positive = machine.DecodePSR(psr)
}

func (m *Machine) Halt()          { m.halted = true }
func (m *Machine) Unhalt()        { m.halted = false }
func (m *Machine) IsHalted() bool { return m.halted }

func (m *Machine) All() iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		for _, v := range m.words {
			if !yield(v) {
				return
			}
		}
	}
}

func (m *Machine) Sparse() iter.Seq2[uint16, uint16] {
	return func(yield func(uint16, uint16) bool) {
		for addr, v := range m.words {
			if v == 0 {
				continue
			}
			if !yield(uint16(addr), v) {
				return
			}
		}
	}
}

// Step consults the parallel decode slot for PC, decoding and
// populating it on a miss, then executes after advancing PC past it.
func (m *Machine) Step() error {
	if m.halted {
		return machine.NewStepError(machine.ErrHalted)
	}
	if m.clockDisabled {
		return machine.NewStepError(machine.ErrClockDisabled)
	}
	if m.pc == 0xFFFF {
		return machine.NewStepError(machine.ErrLastAddress)
	}

	addr := m.pc
	var instr isa.Instruction
	if m.valid[addr] {
		instr = m.decoded[addr]
	} else {
		decoded, err := isa.Decode(m.words[addr])
		if err != nil {
			return machine.NewInvalidInstruction(m.words[addr])
		}
		m.decoded[addr] = decoded
		m.valid[addr] = true
		instr = decoded
	}
	m.pc++

	return instr.Execute(m)
}

func (m *Machine) Interrupt(vector uint16, priorityOverride *uint8) error {
	machine.DoInterrupt(m, vector, priorityOverride)
	return nil
}

func (m *Machine) Populate(start uint16, words []uint16) {
	for i, w := range words {
		m.SetMem(start+uint16(i), w)
	}
}

var _ machine.Machine = (*Machine)(nil)
