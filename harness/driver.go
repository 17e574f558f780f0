package harness

import (
	"errors"

	"github.com/wpkelso/lc3sim/machine"
)

// RunUntilHalt steps h against m until the machine halts or a step
// fails for any other reason. A Halted step failure is a normal
// terminator, not reported as an error.
func RunUntilHalt(h Harness, m machine.Machine) error {
	for {
		err := h.Step(m)
		if err == nil {
			continue
		}
		if errors.Is(err, machine.ErrHalted) {
			return nil
		}
		return err
	}
}

// RunLimited steps h against m at most limit times. completed is true
// if the machine halted within the budget, false if the budget was
// exhausted first. Any other step failure is returned as err.
func RunLimited(h Harness, m machine.Machine, limit uint64) (completed bool, err error) {
	for range limit {
		stepErr := h.Step(m)
		if stepErr == nil {
			continue
		}
		if errors.Is(stepErr, machine.ErrHalted) {
			return true, nil
		}
		return false, stepErr
	}
	return false, nil
}
