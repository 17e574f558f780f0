package machine

import (
	"errors"
	"fmt"
)

// Sentinel step-failure kinds. Callers distinguish them with errors.Is
// against a returned *StepError.
var (
	ErrInvalidInstruction = errors.New("not a valid LC-3 instruction")
	ErrInsufficientPerms  = errors.New("instruction requires supervisor mode")
	ErrLastAddress        = errors.New("program counter at last address, cannot advance")
	ErrHalted             = errors.New("machine is halted")
	ErrClockDisabled      = errors.New("clock disabled")
)

// StepError reports why Machine.Step failed. Word is populated for
// ErrInvalidInstruction and is the offending fetched word.
type StepError struct {
	Kind error
	Word uint16
}

func (e *StepError) Error() string {
	if errors.Is(e.Kind, ErrInvalidInstruction) {
		return fmt.Sprintf("%#04x: %s", e.Word, e.Kind)
	}
	return e.Kind.Error()
}

func (e *StepError) Unwrap() error {
	return e.Kind
}

// NewStepError wraps one of the sentinel kinds above into a StepError.
func NewStepError(kind error) *StepError {
	return &StepError{Kind: kind}
}

// NewInvalidInstruction builds the StepError for a word that failed to
// decode as any known instruction.
func NewInvalidInstruction(word uint16) *StepError {
	return &StepError{Kind: ErrInvalidInstruction, Word: word}
}
