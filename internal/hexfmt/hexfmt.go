/*
 * lc3sim - hex formatting helpers
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

// Package hexfmt formats LC-3 words and bytes as hex for REPL output.
package hexfmt

import "strings"

var hexMap = "0123456789ABCDEF"

// FormatWord appends the 16-bit words as four-hex-digit groups separated
// by spaces.
func FormatWord(str *strings.Builder, words []uint16) {
	for _, word := range words {
		shift := 12
		for range 4 {
			str.WriteByte(hexMap[(word>>shift)&0xf])
			shift -= 4
		}
		str.WriteByte(' ')
	}
}

// FormatByte appends a single byte as two hex digits.
func FormatByte(str *strings.Builder, data byte) {
	str.WriteByte(hexMap[(data>>4)&0xf])
	str.WriteByte(hexMap[data&0xf])
}

// FormatBits appends a word as sixteen '0'/'1' characters, most
// significant bit first, with a space between each group of four.
func FormatBits(str *strings.Builder, word uint16) {
	for i := 15; i >= 0; i-- {
		if (word>>i)&1 != 0 {
			str.WriteByte('1')
		} else {
			str.WriteByte('0')
		}
		if i == 12 || i == 8 || i == 4 {
			str.WriteByte(' ')
		}
	}
}

// Word renders a single 16-bit word as "0xNNNN".
func Word(word uint16) string {
	var b strings.Builder
	b.WriteString("0x")
	shift := 12
	for range 4 {
		b.WriteByte(hexMap[(word>>shift)&0xf])
		shift -= 4
	}
	return b.String()
}
