package harness

import "github.com/wpkelso/lc3sim/machine"

// FailIO errors on any TRAP that would read the keyboard or write the
// display, per spec: "any TRAP that would read keyboard or write
// display returns a typed no-device failure; all other instructions
// pass through."
type FailIO struct{}

func (FailIO) Step(m machine.Machine) error {
	if trap := pendingTrap(m); trap != nil {
		switch {
		case isKeyboardRead(trap.Vector):
			return &ExecutionError{Kind: ErrNoKeyboard}
		case isConsoleWrite(trap.Vector):
			return &ExecutionError{Kind: ErrNoConsole}
		}
	}
	return fromStepError(m.Step())
}

var _ Harness = FailIO{}
