package machine

// DoInterrupt implements the interrupt entry mechanics shared by every
// backend: push the current PSR then the current PC onto the
// supervisor stack (R6 decremented by one per word pushed, in that
// order), switch to supervisor mode, optionally override priority, and
// transfer control to the interrupt vector table entry for vector.
//
// Masking by priority is not performed here; a caller that wants to
// mask checks Priority() before calling Interrupt.
func DoInterrupt(m Machine, vector uint16, priorityOverride *uint8) {
	psr := m.PSR()
	m.SetPrivileged(true)

	sp := m.Reg(StackReg) - 1
	m.SetReg(StackReg, sp)
	m.SetMem(sp, psr)

	pc := m.PC()
	sp--
	m.SetReg(StackReg, sp)
	m.SetMem(sp, pc)

	if priorityOverride != nil {
		m.SetPriority(*priorityOverride)
	}
	m.SetPC(InterruptVectorBase + vector)
}

// DoRTI implements return-from-interrupt: pop PC then PSR from the
// supervisor stack (reversing DoInterrupt's push order) and restore
// PSR, which may change privilege and priority along with PC. Returns
// ErrInsufficientPerms if the machine is not currently privileged.
func DoRTI(m Machine) error {
	if !m.Privileged() {
		return NewStepError(ErrInsufficientPerms)
	}

	sp := m.Reg(StackReg)
	pc := m.Mem(sp)
	sp++

	psr := m.Mem(sp)
	sp++

	m.SetPC(pc)
	m.SetReg(StackReg, sp)
	m.SetPSR(psr)

	return nil
}
