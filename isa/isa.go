/*
 * lc3sim - instruction set
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

// Package isa is the closed LC-3 instruction set: one Go type per
// opcode variant, a Decode entry point, and the Instruction interface
// every variant satisfies. Decoding is exhaustive — every 16-bit word
// either decodes to exactly one variant or Decode reports it invalid —
// and Encode/Decode round-trip for every value a variant can hold.
//
// Every PC-relative computation here (Branch, Load/LEA, JumpSub's
// offset-11 form, Trap's link save) reads machine.PC() directly with
// no further adjustment: Machine.Step is responsible for advancing PC
// past the fetched word before Execute runs, so by the time Execute
// sees it, PC already carries the "+1" the LC-3 reference manual
// describes separately.
package isa

import (
	"github.com/wpkelso/lc3sim/bits"
	"github.com/wpkelso/lc3sim/machine"
)

// Instruction is one decoded LC-3 instruction.
type Instruction interface {
	// Encode reconstructs the 16-bit word this instruction was decoded
	// from (or an equivalent one, for variants with more than one
	// legal encoding of the same meaning).
	Encode() uint16
	// Execute runs the instruction against m.
	Execute(m machine.Machine) error
}

const (
	opAdd    = 0b0001
	opAnd    = 0b0101
	opNot    = 0b1001
	opBranch = 0b0000
	opJump   = 0b1100
	opRTI    = 0b1000
	opJumpSR = 0b0100
	opLD     = 0b0010
	opLDI    = 0b1010
	opLDR    = 0b0110
	opLEA    = 0b1110
	opST     = 0b0011
	opSTI    = 0b1011
	opSTR    = 0b0111
	opTrap   = 0b1111
)

// Decode parses word into the instruction it encodes, or reports it
// malformed. A nil error always comes with a non-nil Instruction.
func Decode(word uint16) (Instruction, error) {
	switch bits.Opcode(word) {
	case opAdd:
		return decodeAdd(word)
	case opAnd:
		return decodeAnd(word)
	case opNot:
		return decodeNot(word)
	case opBranch:
		return decodeBranch(word), nil
	case opJump:
		return decodeJump(word)
	case opRTI:
		return decodeRTI(word)
	case opJumpSR:
		return decodeJumpSub(word)
	case opLD, opLDI, opLDR, opLEA:
		return decodeLoad(word)
	case opST, opSTI, opSTR:
		return decodeStore(word)
	case opTrap:
		return decodeTrap(word)
	default: // 0b1101 is not assigned to any instruction
		return nil, machine.NewInvalidInstruction(word)
	}
}

func reg(word uint16, start, end uint8) machine.Reg {
	return machine.Reg(bits.Bits(word, start, end))
}

func setConditionCodes(m machine.Machine, result uint16) {
	switch {
	case int16(result) > 0:
		m.FlagPositive()
	case int16(result) < 0:
		m.FlagNegative()
	default:
		m.FlagZero()
	}
}
