/*
 * lc3sim - REPL commands.
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

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/wpkelso/lc3sim/internal/hexfmt"
	lc3machine "github.com/wpkelso/lc3sim/machine"
)

// parseAddr accepts a plain or "0x"-prefixed hex address.
func parseAddr(word string) (uint16, error) {
	word = strings.TrimPrefix(strings.ToLower(word), "0x")
	if word == "" {
		return 0, errors.New("address expected")
	}
	v, err := strconv.ParseUint(word, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", word, err)
	}
	return uint16(v), nil
}

// step advances the machine a given number of instructions (default 1),
// servicing I/O through the session's harness and printing the PC after
// each one. It stops early, without error, if the machine halts.
func step(line *cmdLine, sess *Session) (bool, error) {
	count := 1
	if word := line.getWord(); word != "" {
		n, err := strconv.Atoi(word)
		if err != nil || n < 1 {
			return false, fmt.Errorf("invalid step count: %q", word)
		}
		count = n
	}

	for range count {
		err := sess.Harness.Step(sess.Machine)
		if err != nil {
			if errors.Is(err, lc3machine.ErrHalted) {
				fmt.Println("machine halted")
				return false, nil
			}
			return false, err
		}
		fmt.Printf("PC = %s\n", hexfmt.Word(sess.Machine.PC()))
	}
	return false, nil
}

// cont runs the machine until it halts, hits a breakpoint, or an
// optional step limit (given as the first word) is exhausted.
func cont(line *cmdLine, sess *Session) (bool, error) {
	limit := uint64(0)
	if word := line.getWord(); word != "" {
		n, err := strconv.ParseUint(word, 10, 64)
		if err != nil {
			return false, fmt.Errorf("invalid step limit: %q", word)
		}
		limit = n
	}

	var steps uint64
	for {
		if limit != 0 && steps >= limit {
			fmt.Println("step limit reached")
			return false, nil
		}
		err := sess.Harness.Step(sess.Machine)
		steps++
		if err != nil {
			if errors.Is(err, lc3machine.ErrHalted) {
				fmt.Println("machine halted")
				return false, nil
			}
			return false, err
		}
		if sess.Breakpoints[sess.Machine.PC()] {
			fmt.Printf("breakpoint hit at %s\n", hexfmt.Word(sess.Machine.PC()))
			return false, nil
		}
	}
}

// regs prints the general-purpose registers, PC, and processor status.
func regs(_ *cmdLine, sess *Session) (bool, error) {
	m := sess.Machine
	var b strings.Builder
	for r := lc3machine.R0; r <= lc3machine.R7; r++ {
		fmt.Fprintf(&b, "R%d=%s ", r, hexfmt.Word(m.Reg(r)))
	}
	fmt.Println(b.String())

	cond := "-"
	switch {
	case m.NegativeCond():
		cond = "N"
	case m.ZeroCond():
		cond = "Z"
	case m.PositiveCond():
		cond = "P"
	}
	mode := "user"
	if m.Privileged() {
		mode = "supervisor"
	}
	fmt.Printf("PC=%s PSR=%s cond=%s priority=%d mode=%s halted=%v\n",
		hexfmt.Word(m.PC()), hexfmt.Word(m.PSR()), cond, m.Priority(), mode, m.IsHalted())
	return false, nil
}

// dump prints count words (default 8) of memory starting at addr.
func dump(line *cmdLine, sess *Session) (bool, error) {
	addrWord := line.getWord()
	addr, err := parseAddr(addrWord)
	if err != nil {
		return false, err
	}

	count := 8
	if word := line.getWord(); word != "" {
		n, err := strconv.Atoi(word)
		if err != nil || n < 1 {
			return false, fmt.Errorf("invalid word count: %q", word)
		}
		count = n
	}

	words := make([]uint16, 0, count)
	for i := range count {
		words = append(words, sess.Machine.Mem(addr+uint16(i)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: ", hexfmt.Word(addr))
	hexfmt.FormatWord(&b, words)
	fmt.Println(strings.TrimRight(b.String(), " "))
	return false, nil
}

func setBreak(line *cmdLine, sess *Session) (bool, error) {
	addr, err := parseAddr(line.getWord())
	if err != nil {
		return false, err
	}
	sess.Breakpoints[addr] = true
	fmt.Printf("breakpoint set at %s\n", hexfmt.Word(addr))
	return false, nil
}

func clearBreak(line *cmdLine, sess *Session) (bool, error) {
	addr, err := parseAddr(line.getWord())
	if err != nil {
		return false, err
	}
	delete(sess.Breakpoints, addr)
	fmt.Printf("breakpoint cleared at %s\n", hexfmt.Word(addr))
	return false, nil
}

func quit(_ *cmdLine, _ *Session) (bool, error) {
	return true, nil
}
