/*
 * lc3sim - minimal OS trap handlers
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

// Package osimage hand-encodes a minimal trap vector table and the six
// standard service routines directly as isa.Instruction words, with no
// assembler involved. It exists to give the end-to-end scenarios and
// harness.StreamIO something to TRAP into; it is not a general-purpose
// operating system.
//
// PUTSP is implemented identically to PUTS (one character per memory
// word) rather than unpacking two characters per word: LC-3 has no
// shift instruction, and deriving a high-byte extraction from repeated
// ADD-doubling buys nothing for a harness fixture. IN echoes the typed
// character but skips the usual input prompt, since printing it would
// require a string table this image has no other use for.
package osimage

import (
	"github.com/wpkelso/lc3sim/isa"
	"github.com/wpkelso/lc3sim/machine"
)

// Handler entry points, spaced to leave headroom for each routine.
const (
	getcAddr  uint16 = 0x0400
	outAddr   uint16 = 0x0420
	putsAddr  uint16 = 0x0440
	inAddr    uint16 = 0x0460
	putspAddr uint16 = 0x0480
	haltAddr  uint16 = 0x04A0
)

// Absolute-address pointer words, dereferenced by LDI/STI since the
// device registers at 0xFE00 and up lie far outside the PCoffset9
// reach of handlers at 0x0400-0x04A8; the pointer words themselves sit
// within that reach.
const (
	kbsrPtrAddr uint16 = 0x04E0
	kbdrPtrAddr uint16 = 0x04E1
	dsrPtrAddr  uint16 = 0x04E2
	ddrPtrAddr  uint16 = 0x04E3
	mcrPtrAddr  uint16 = 0x04E4
)

// Target receives words at addresses. machine.Machine satisfies it via
// SetMem.
type Target interface {
	SetMem(addr uint16, value uint16)
}

// off9 computes the PCoffset9 from the instruction at instrAddr to
// target, under this machine's pre-increment-PC convention: PC has
// already advanced past instrAddr by the time the offset is applied.
func off9(instrAddr, target uint16) int16 {
	return int16(target) - int16(instrAddr) - 1
}

func ret() isa.Instruction {
	return isa.Jump{BaseReg: machine.R7}
}

// Install writes the trap vector table and every handler's code into t.
func Install(t Target) {
	set := t.SetMem

	set(uint16(isa.TrapGetc), getcAddr)
	set(uint16(isa.TrapOut), outAddr)
	set(uint16(isa.TrapPuts), putsAddr)
	set(uint16(isa.TrapIn), inAddr)
	set(uint16(isa.TrapPutsp), putspAddr)
	set(uint16(isa.TrapHalt), haltAddr)

	set(kbsrPtrAddr, machine.KBSR)
	set(kbdrPtrAddr, machine.KBDR)
	set(dsrPtrAddr, machine.DSR)
	set(ddrPtrAddr, machine.DDR)
	set(mcrPtrAddr, machine.MCR)

	installGetc(set)
	installOut(set)
	installPuts(set)
	installIn(set)
	installPutsp(set) // identical body to PUTS, see package doc
	installHalt(set)
}

// GETC: spin on KBSR until a character is ready, then load it into R0.
func installGetc(set func(uint16, uint16)) {
	a := getcAddr
	set(a+0, isa.Load{Kind: isa.LoadIndirect, Dest: machine.R1, PCOffset: off9(a+0, kbsrPtrAddr)}.Encode())
	set(a+1, isa.Branch{Zero: true, Positive: true, PCOffset: off9(a+1, a+0)}.Encode())
	set(a+2, isa.Load{Kind: isa.LoadIndirect, Dest: machine.R0, PCOffset: off9(a+2, kbdrPtrAddr)}.Encode())
	set(a+3, ret().Encode())
}

// OUT: spin on DSR until ready, then write R0's low byte to DDR.
func installOut(set func(uint16, uint16)) {
	a := outAddr
	set(a+0, isa.Load{Kind: isa.LoadIndirect, Dest: machine.R1, PCOffset: off9(a+0, dsrPtrAddr)}.Encode())
	set(a+1, isa.Branch{Zero: true, Positive: true, PCOffset: off9(a+1, a+0)}.Encode())
	set(a+2, isa.Store{Kind: isa.StoreIndirect, Src: machine.R0, PCOffset: off9(a+2, ddrPtrAddr)}.Encode())
	set(a+3, ret().Encode())
}

// putsBody writes the null-terminated, one-char-per-word string
// pointed to by R0, starting at base. Used by both PUTS and PUTSP.
func putsBody(set func(uint16, uint16), base uint16) {
	a := base
	set(a+0, isa.Add{Dest: machine.R1, Src1: machine.R0, Imm: 0, Immediate: true}.Encode()) // R1 = R0
	set(a+1, isa.Load{Kind: isa.LoadReg, Dest: machine.R2, BaseReg: machine.R1, Offset6: 0}.Encode())
	set(a+2, isa.Branch{Zero: true, PCOffset: off9(a+2, a+8)}.Encode()) // char == 0 -> done
	set(a+3, isa.Load{Kind: isa.LoadIndirect, Dest: machine.R3, PCOffset: off9(a+3, dsrPtrAddr)}.Encode())
	set(a+4, isa.Branch{Zero: true, Positive: true, PCOffset: off9(a+4, a+3)}.Encode())
	set(a+5, isa.Store{Kind: isa.StoreIndirect, Src: machine.R2, PCOffset: off9(a+5, ddrPtrAddr)}.Encode())
	set(a+6, isa.Add{Dest: machine.R1, Src1: machine.R1, Imm: 1, Immediate: true}.Encode())
	set(a+7, isa.Branch{Negative: true, Zero: true, Positive: true, PCOffset: off9(a+7, a+1)}.Encode())
	set(a+8, ret().Encode())
}

func installPuts(set func(uint16, uint16))  { putsBody(set, putsAddr) }
func installPutsp(set func(uint16, uint16)) { putsBody(set, putspAddr) }

// IN: read one character like GETC, then echo it like OUT. No prompt.
func installIn(set func(uint16, uint16)) {
	a := inAddr
	set(a+0, isa.Load{Kind: isa.LoadIndirect, Dest: machine.R1, PCOffset: off9(a+0, kbsrPtrAddr)}.Encode())
	set(a+1, isa.Branch{Zero: true, Positive: true, PCOffset: off9(a+1, a+0)}.Encode())
	set(a+2, isa.Load{Kind: isa.LoadIndirect, Dest: machine.R0, PCOffset: off9(a+2, kbdrPtrAddr)}.Encode())
	set(a+3, isa.Load{Kind: isa.LoadIndirect, Dest: machine.R1, PCOffset: off9(a+3, dsrPtrAddr)}.Encode())
	set(a+4, isa.Branch{Zero: true, Positive: true, PCOffset: off9(a+4, a+3)}.Encode())
	set(a+5, isa.Store{Kind: isa.StoreIndirect, Src: machine.R0, PCOffset: off9(a+5, ddrPtrAddr)}.Encode())
	set(a+6, ret().Encode())
}

// HALT: clear MCR bit 15, which disables the clock so a step after an
// Unhalt still fails cleanly. The machine's halted flag is set by
// Trap.Execute, before this body even runs.
func installHalt(set func(uint16, uint16)) {
	a := haltAddr
	set(a+0, isa.And{Dest: machine.R0, Src1: machine.R0, Imm: 0, Immediate: true}.Encode())
	set(a+1, isa.Store{Kind: isa.StoreIndirect, Src: machine.R0, PCOffset: off9(a+1, mcrPtrAddr)}.Encode())
	set(a+2, ret().Encode())
}
