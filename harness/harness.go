/*
 * lc3sim - execution harnesses
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

// Package harness drives a machine.Machine one step at a time while
// mediating memory-mapped I/O. Different harnesses trade realism for
// convenience: FailIO and IgnoreIO let tests exercise arithmetic and
// control flow without wiring a real keyboard or display, StreamIO
// backs GETC/OUT/PUTS/IN/PUTSP with an ordinary byte stream.
package harness

import (
	"errors"
	"fmt"

	"github.com/wpkelso/lc3sim/isa"
	"github.com/wpkelso/lc3sim/machine"
)

// Harness advances a machine by one instruction, observing or
// intercepting the I/O trap it is about to execute.
type Harness interface {
	Step(m machine.Machine) error
}

// Sentinel I/O failure kinds, wrapped by ExecutionError.
var (
	ErrNoKeyboard = errors.New("no keyboard connected")
	ErrNoConsole  = errors.New("no console connected")
	ErrNoDisplay  = errors.New("no display connected")
	ErrIO         = errors.New("harness i/o failure")
)

// ExecutionError reports why Step failed: either the underlying
// machine step faulted, or the harness itself could not service an
// I/O trap.
type ExecutionError struct {
	Kind error
	Step *machine.StepError
}

func (e *ExecutionError) Error() string {
	if e.Step != nil {
		return e.Step.Error()
	}
	return fmt.Sprintf("harness: %v", e.Kind)
}

func (e *ExecutionError) Unwrap() error {
	if e.Step != nil {
		return e.Step
	}
	return e.Kind
}

func fromStepError(err error) error {
	if err == nil {
		return nil
	}
	var se *machine.StepError
	if errors.As(err, &se) {
		return &ExecutionError{Step: se}
	}
	return &ExecutionError{Kind: err}
}

// pendingTrap decodes the instruction at PC without executing it, so
// a harness can react to a TRAP before it runs. It returns nil if the
// word at PC is not a TRAP (including if it fails to decode at all;
// the real decode error surfaces from the subsequent Step call).
func pendingTrap(m machine.Machine) *isa.Trap {
	instr, err := isa.Decode(m.Mem(m.PC()))
	if err != nil {
		return nil
	}
	if t, ok := instr.(isa.Trap); ok {
		return &t
	}
	return nil
}

func isKeyboardRead(vector uint8) bool {
	return vector == isa.TrapGetc || vector == isa.TrapIn
}

func isConsoleWrite(vector uint8) bool {
	return vector == isa.TrapOut || vector == isa.TrapPuts || vector == isa.TrapPutsp
}
