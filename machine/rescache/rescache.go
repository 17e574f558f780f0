/*
 * lc3sim - resolve-on-demand machine backend
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

// Package rescache is a machine.Machine backend where each memory cell
// remembers the instruction it last decoded to, resolved lazily on
// first fetch and invalidated on every write. It trades the flat
// backend's repeated decode cost for one extra field per cell.
package rescache

import (
	"iter"

	"github.com/wpkelso/lc3sim/isa"
	"github.com/wpkelso/lc3sim/machine"
)

type cell struct {
	word     uint16
	resolved isa.Instruction // nil until resolved or after an invalidating write
}

// Cache is a resolve-on-demand LC-3 machine.
type Cache struct {
	mem          [machine.AddrSpaceSize]cell
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

// New returns a Cache in its reset state, identical in observable
// content to a fresh machine/core.Core.
func New() *Cache {
	return &Cache{
		supervisorR6: machine.SupervisorSPInit,
		privileged:   true,
		pc:           0x0200,
	}
}

func (c *Cache) PC() uint16      { return c.pc }
func (c *Cache) SetPC(pc uint16) { c.pc = pc }

func (c *Cache) Reg(r machine.Reg) uint16 {
	if r == machine.StackReg {
		if c.privileged {
			return c.supervisorR6
		}
		return c.userR6
	}
	return c.regs[r]
}

func (c *Cache) SetReg(r machine.Reg, value uint16) {
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

func (c *Cache) Mem(addr uint16) uint16 { return c.mem[addr].word }

// SetMem writes through to the backing word and invalidates any
// decoded instruction cached for addr, per the coherency rule every
// caching backend must uphold.
func (c *Cache) SetMem(addr uint16, value uint16) {
	c.mem[addr] = cell{word: value}
	if addr == machine.MCR {
		c.clockDisabled = value&(1<<15) == 0
	}
}

func (c *Cache) PositiveCond() bool { return c.positive }
func (c *Cache) ZeroCond() bool     { return c.zero }
func (c *Cache) NegativeCond() bool { return c.negative }

func (c *Cache) FlagPositive() { c.negative, c.zero, c.positive = false, false, true }
func (c *Cache) FlagZero()     { c.negative, c.zero, c.positive = false, true, false }
func (c *Cache) FlagNegative() { c.negative, c.zero, c.positive = true, false, false }
func (c *Cache) ClearFlags()   { c.negative, c.zero, c.positive = false, false, false }

func (c *Cache) Priority() uint8 { return c.priority }
func (c *Cache) SetPriority(priority uint8) {
	if priority < 8 {
		c.priority = priority
	}
}

func (c *Cache) Privileged() bool     { return c.privileged }
func (c *Cache) SetPrivileged(p bool) { c.privileged = p }

func (c *Cache) PSR() uint16 {
	return machine.EncodePSR(c.privileged, c.priority, c.negative, c.zero, c.positive)
}

func (c *Cache) SetPSR(psr uint16) {
	c.privileged, c.priority, c.negative, c.zero, c.positive = machine.DecodePSR(psr)
}

func (c *Cache) Halt()          { c.halted = true }
func (c *Cache) Unhalt()        { c.halted = false }
func (c *Cache) IsHalted() bool { return c.halted }

func (c *Cache) All() iter.Seq[uint16] {
	return func(yield func(uint16) bool) {
		for _, cl := range c.mem {
			if !yield(cl.word) {
				return
			}
		}
	}
}

func (c *Cache) Sparse() iter.Seq2[uint16, uint16] {
	return func(yield func(uint16, uint16) bool) {
		for addr, cl := range c.mem {
			if cl.word == 0 {
				continue
			}
			if !yield(uint16(addr), cl.word) {
				return
			}
		}
	}
}

// Step resolves the cached decode for PC if present, otherwise decodes
// and caches it, then executes it after advancing PC past it.
func (c *Cache) Step() error {
	if c.halted {
		return machine.NewStepError(machine.ErrHalted)
	}
	if c.clockDisabled {
		return machine.NewStepError(machine.ErrClockDisabled)
	}
	if c.pc == 0xFFFF {
		return machine.NewStepError(machine.ErrLastAddress)
	}

	cl := &c.mem[c.pc]
	instr := cl.resolved
	if instr == nil {
		decoded, err := isa.Decode(cl.word)
		if err != nil {
			return machine.NewInvalidInstruction(cl.word)
		}
		cl.resolved = decoded
		instr = decoded
	}
	c.pc++

	return instr.Execute(c)
}

func (c *Cache) Interrupt(vector uint16, priorityOverride *uint8) error {
	machine.DoInterrupt(c, vector, priorityOverride)
	return nil
}

func (c *Cache) Populate(start uint16, words []uint16) {
	for i, w := range words {
		c.SetMem(start+uint16(i), w)
	}
}

var _ machine.Machine = (*Cache)(nil)
