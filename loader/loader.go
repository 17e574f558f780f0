/*
 * lc3sim - object file loader
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

// Package loader reads LC-3 object files into a machine.Machine. An
// object file is a stream of big-endian 16-bit words: the first word
// is the load address, every word after it is stored at successive
// addresses until the stream ends.
package loader

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Load reads one object stream from r and writes its words through
// populate, starting at the address given by the stream's first word.
// It returns the number of words stored (excluding the load-address
// word itself). A trailing odd byte after the last full word is
// discarded, matching the reference simulator's lenient reader.
func Load(r io.Reader, populate func(addr uint16, word uint16)) (int, error) {
	var header [2]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return 0, fmt.Errorf("loader: reading load address: %w", io.ErrUnexpectedEOF)
		}
		return 0, fmt.Errorf("loader: reading load address: %w", err)
	}
	addr := binary.BigEndian.Uint16(header[:])

	count := 0
	var buf [2]byte
	for {
		n, err := io.ReadFull(r, buf[:])
		if err == io.EOF {
			break
		}
		if err == io.ErrUnexpectedEOF {
			if n == 1 {
				break // trailing odd byte, silently discarded
			}
			break
		}
		if err != nil {
			return count, fmt.Errorf("loader: reading word at offset %d: %w", count, err)
		}
		populate(addr, binary.BigEndian.Uint16(buf[:]))
		addr++
		count++
	}
	return count, nil
}

// Target receives decoded words at successive addresses. machine.Machine
// satisfies it via SetMem.
type Target interface {
	SetMem(addr uint16, value uint16)
}

// LoadInto loads one object stream directly into m.
func LoadInto(r io.Reader, m Target) (int, error) {
	return Load(r, m.SetMem)
}
