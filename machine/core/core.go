/*
 * lc3sim - flat-array machine backend
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

// Package core is the simplest machine.Machine backend: a flat 64K
// array of words, decoded fresh on every fetch. It trades repeated
// decode work for the smallest possible state and is the reference
// backend the other two (machine/rescache, machine/instrcache) are
// checked against.
package core

import (
	"iter"

	"github.com/wpkelso/lc3sim/isa"
	"github.com/wpkelso/lc3sim/machine"
)

// Core is a flat-array LC-3 machine.
type Core struct {
	mem          [machine.AddrSpaceSize]uint16
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

// New returns a Core in its reset state: zeroed memory and registers,
// supervisor mode, PC at 0x0200, supervisor stack pointer at the top
// of the OS stack region, not halted.
func New() *Core {
	return &Core{
		supervisorR6: machine.SupervisorSPInit,
		privileged:   true,
		pc:           0x0200,
	}
}

func (c *Core) PC() uint16      { return c.pc }
func (c *Core) SetPC(pc uint16) { c.pc = pc }

func (c *Core) Reg(r machine.Reg) uint16 {
	if r == machine.StackReg {
		if c.privileged {
			return c.supervisorR6
		}
		return c.userR6
	}
	return c.regs[r]
}

func (c *Core) SetReg(r machine.Reg, value uint16) {
	if r == machine.StackReg {
		if c.privileged {
			c.supervisorR6 = value
		} else {
			c.userR6 = value
		}
		return
	}
	c.regs[r] = value
}

func (c *Core) Mem(addr uint16) uint16 { return c.mem[addr] }

func (c *Core) SetMem(addr uint16, value uint16) {
	c.mem[addr] = value
	if addr == machine.MCR {
		c.clockDisabled = value&(1<<15) == 0
	}
}

func (c *Core) PositiveCond() bool { return c.positive }
func (c *Core) ZeroCond() bool     { return c.zero }
func (c *Core) NegativeCond() bool { return c.negative }

func (c *Core) FlagPositive() { c.negative, c.zero, c.positive = false, false, true }
func (c *Core) FlagZero()     { c.negative, c.zero, c.positive = false, true, false }
func (c *Core) FlagNegative() { c.negative, c.zero, c.positive = true, false, false }
func (c *Core) ClearFlags()   { c.negative, c.zero, c.positive = false, false, false }

func (c *Core) Priority() uint8 { return c.priority }
func (c *Core) SetPriority(priority uint8) {
	if priority < 8 {
		c.priority = priority
	}
}

func (c *Core) Privileged() bool     { return c.privileged }
func (c *Core) SetPrivileged(p bool) { c.privileged = p }

func (c *Core) PSR() uint16 {
	return machine.EncodePSR(c.privileged, c.priority, c.negative, c.zero, c.positive)
}

func (c *Core) SetPSR(psr uint16) {
	c.privileged, c.priority, c.negative, c.zero, c.positive = machine.DecodePSR(psr)
}

func (c *Core) Halt()          { c.halted = true }
func (c *Core) Unhalt()        { c.halted = false }
func (c *Core) IsHalted() bool { return c.halted }

func (c *Core) All() iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		for _, v := range c.mem {
			if !yield(v) {
				return
			}
		}
	}
}

func (c *Core) Sparse() iter.Seq2[uint16, uint16] {
	return func(yield func(uint16, uint16) bool) {
		for addr, v := range c.mem {
			if v == 0 {
				continue
			}
			if !yield(uint16(addr), v) {
				return
			}
		}
	}
}

// Step fetches and decodes the word at PC, advances PC past it, and
// executes it; a word that fails to decode leaves PC unchanged. PC is
// advanced before Execute runs so every
// PC-relative instruction sees the already-incremented value, per the
// single consistent addressing rule this machine uses throughout.
func (c *Core) Step() error {
	if c.halted {
		return machine.NewStepError(machine.ErrHalted)
	}
	if c.clockDisabled {
		return machine.NewStepError(machine.ErrClockDisabled)
	}
	if c.pc == 0xFFFF {
		return machine.NewStepError(machine.ErrLastAddress)
	}

	word := c.mem[c.pc]
	instr, err := isa.Decode(word)
	if err != nil {
		return machine.NewInvalidInstruction(word)
	}
	c.pc++

	return instr.Execute(c)
}

func (c *Core) Interrupt(vector uint16, priorityOverride *uint8) error {
	machine.DoInterrupt(c, vector, priorityOverride)
	return nil
}

func (c *Core) Populate(start uint16, words []uint16) {
	for i, w := range words {
		c.SetMem(start+uint16(i), w)
	}
}

var _ machine.Machine = (*Core)(nil)
