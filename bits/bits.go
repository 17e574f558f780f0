/*
 * lc3sim - bit-field helpers
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

// Package bits provides the bit-field extraction and sign-extension
// helpers used at the instruction decode/encode boundary. Nothing here
// is LC-3 specific beyond operating on 16-bit words.
package bits

// WordBits is the width of an LC-3 word in bits.
const WordBits = 16

// Opcode extracts the top four bits of word, the instruction's opcode.
func Opcode(word uint16) uint8 {
	return uint8(word >> 12)
}

// Bits extracts the inclusive bit range [end, start] from word, right
// justified in the result. start must be >= end, and both must be < 16.
//
// e.g. Bits(0x00A2, 5, 1):
//
//	0x00A2 -> 0000 0000 1010 0010
//	0000 0000 10[10 001]0
//	returns 0x0011 (1 0001)
func Bits(word uint16, start, end uint8) uint16 {
	shiftOutTop := uint16(WordBits - 1 - start)
	word <<= shiftOutTop
	word >>= shiftOutTop
	word >>= end
	return word
}

// Bit extracts a single bit from word.
func Bit(word uint16, loc uint8) uint16 {
	return Bits(word, loc, loc)
}

// SignExtend sign-extends the low width bits of value to a full 16-bit
// signed quantity, treating bit (width-1) as the sign bit.
func SignExtend(value uint16, width int) int16 {
	shift := uint(WordBits - width)
	return int16(value<<shift) >> shift
}

// ToUnsigned truncates a signed offset to its low width bits, discarding
// any sign-extension outside that range. It is the inverse of
// SignExtend for values that round-trip within width bits.
func ToUnsigned(value int16, width int) uint16 {
	shift := uint(WordBits - width)
	return (uint16(value) << shift) >> shift
}
