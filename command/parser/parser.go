/*
 * lc3sim - Command parser.
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

// Package parser implements the diagnostic REPL's command table: a
// prefix-matching dispatcher over a Session wrapping a machine.Machine
// and a harness.Harness, in the style of the teacher's device-command
// shell but driving a single machine instead of an attach/detach device
// bus.
package parser

import (
	"errors"
	"strings"
	"unicode"

	"github.com/wpkelso/lc3sim/harness"
	"github.com/wpkelso/lc3sim/machine"
)

// Session is the REPL's view of a running simulation: the machine being
// stepped, the harness servicing its I/O traps, and the set of
// breakpoint addresses that stop a continue early.
type Session struct {
	Machine     machine.Machine
	Harness     harness.Harness
	Breakpoints map[uint16]bool
}

// NewSession builds a Session with no breakpoints set.
func NewSession(m machine.Machine, h harness.Harness) *Session {
	return &Session{Machine: m, Harness: h, Breakpoints: map[uint16]bool{}}
}

type cmd struct {
	name     string // Command name.
	min      int    // Minimum match size.
	process  func(*cmdLine, *Session) (bool, error)
	complete func(*cmdLine, *Session) []string
}

type cmdLine struct {
	line string // Current command.
	pos  int    // Position in line.
}

var cmdList = []cmd{
	{name: "step", min: 2, process: step},
	{name: "continue", min: 1, process: cont},
	{name: "regs", min: 1, process: regs},
	{name: "dump", min: 1, process: dump},
	{name: "break", min: 1, process: setBreak},
	{name: "unbreak", min: 1, process: clearBreak},
	{name: "quit", min: 1, process: quit},
}

// ProcessCommand executes one command line against sess. The bool
// return is true when the REPL should exit.
func ProcessCommand(commandLine string, sess *Session) (bool, error) {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	match := matchList(name)
	if len(match) == 0 {
		return false, errors.New("command not found: " + name)
	}
	if len(match) > 1 {
		return false, errors.New("ambiguous command: " + name)
	}

	return match[0].process(&line, sess)
}

// CompleteCmd is the liner completer: it returns either the set of
// command names matching a partial word, or a command-specific
// completion if one is in progress.
func CompleteCmd(commandLine string, sess *Session) []string {
	line := cmdLine{line: commandLine}
	name := line.getWord()

	if !line.isEOL() && line.line[line.pos] == ' ' {
		line.skipSpace()
		match := matchList(name)
		if len(match) != 1 || match[0].complete == nil {
			return nil
		}
		return match[0].complete(&line, sess)
	}

	match := matchList(name)
	names := make([]string, len(match))
	for i, m := range match {
		names[i] = m.name
	}
	return names
}

// matchCommand reports whether command is a valid prefix of match's
// name, at least match.min characters long.
func matchCommand(match cmd, command string) bool {
	if len(command) > len(match.name) {
		return false
	}
	l := 0
	for l = range len(command) {
		if match.name[l] != command[l] {
			return false
		}
	}
	return l+1 >= match.min
}

func matchList(command string) []cmd {
	if command == "" {
		return nil
	}
	var match []cmd
	for _, m := range cmdList {
		if matchCommand(m, command) {
			match = append(match, m)
		}
	}
	return match
}

func (line *cmdLine) skipSpace() {
	for line.pos < len(line.line) && unicode.IsSpace(rune(line.line[line.pos])) {
		line.pos++
	}
}

func (line *cmdLine) isEOL() bool {
	if line.pos >= len(line.line) {
		return true
	}
	return line.line[line.pos] == '#'
}

func (line *cmdLine) getNext() byte {
	line.pos++
	if line.isEOL() {
		return 0
	}
	return line.line[line.pos]
}

// getWord returns the next whitespace-delimited token, lowercased.
func (line *cmdLine) getWord() string {
	line.skipSpace()
	if line.isEOL() {
		return ""
	}

	value := ""
	by := line.line[line.pos]
	for {
		value += string(by)
		by = line.getNext()
		if line.isEOL() || unicode.IsSpace(rune(by)) {
			break
		}
	}
	return strings.ToLower(value)
}
