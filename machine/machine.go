/*
 * lc3sim - machine abstraction
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

// Package machine defines the polymorphic LC-3 machine contract: the set
// of operations every executor backend (package machine/core,
// machine/rescache, machine/instrcache) implements identically from the
// outside, regardless of internal fetch/decode strategy.
package machine

import "iter"

// Reg names one of the eight general-purpose registers.
type Reg uint8

const (
	R0 Reg = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
)

// NumRegs is the size of the register file.
const NumRegs = 8

// StackReg is the register banked between user and supervisor stack
// pointers.
const StackReg = R6

// LinkReg is the conventional subroutine-return link register.
const LinkReg = R7

// Address space layout.
const (
	TrapVectorBase      = 0x0000
	TrapVectorEnd       = 0x00FF
	InterruptVectorBase = 0x0100
	InterruptVectorEnd  = 0x01FF
	OSStackBase         = 0x0200
	OSStackEnd          = 0x2FFF
	UserSpaceBase       = 0x3000
	UserSpaceEnd        = 0xFDFF
	DeviceRegBase       = 0xFE00

	KBSR = 0xFE00
	KBDR = 0xFE02
	DSR  = 0xFE04
	DDR  = 0xFE06
	MCR  = 0xFFFE
)

// SupervisorSPInit is the reset value of the banked supervisor R6: the
// topmost address of the OS/supervisor stack region, one past which the
// first push lands.
const SupervisorSPInit = OSStackEnd

// AddrSpaceSize is the number of addressable 16-bit words.
const AddrSpaceSize = 1 << 16

// MemLoc is one {address, value} pair, as yielded by Sparse.
type MemLoc struct {
	Addr  uint16
	Value uint16
}

// Machine is the full LC-3 simulator contract. Every operation is
// exposed here precisely so that alternative storage/caching strategies
// (see machine/core, machine/rescache, machine/instrcache) stay
// observably interchangeable.
type Machine interface {
	PC() uint16
	SetPC(pc uint16)

	Reg(r Reg) uint16
	SetReg(r Reg, value uint16)

	Mem(addr uint16) uint16
	SetMem(addr uint16, value uint16)

	PositiveCond() bool
	ZeroCond() bool
	NegativeCond() bool
	FlagPositive()
	FlagZero()
	FlagNegative()
	ClearFlags()

	Priority() uint8
	SetPriority(priority uint8)

	Privileged() bool
	SetPrivileged(privileged bool)

	// PSR returns the composite processor status register: bit 15 is
	// clear when privileged, bits 10-8 are priority, bits 2/1/0 are
	// N/Z/P.
	PSR() uint16
	// SetPSR restores privilege, priority and flags from a composite
	// value in one step, as used by interrupt entry and RTI.
	SetPSR(psr uint16)

	Halt()
	Unhalt()
	IsHalted() bool

	// All yields every word in address order starting at 0x0000.
	All() iter.Seq[uint16]
	// Sparse yields only the nonzero cells, in address order.
	Sparse() iter.Seq2[uint16, uint16]

	// Step fetches, decodes and executes one instruction, advancing PC
	// past it before Execute runs (see isa package commentary on the
	// pre-incremented PC convention).
	Step() error

	// Interrupt pushes the current PSR then PC onto the supervisor
	// stack, switches to supervisor mode, optionally overrides
	// priority, and transfers control to the interrupt vector table
	// entry for vector. Masking by priority is the caller's concern;
	// Interrupt always takes effect when called.
	Interrupt(vector uint16, priorityOverride *uint8) error

	// Populate fills memory starting at start with words, in order.
	Populate(start uint16, words []uint16)
}
