package harness

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/wpkelso/lc3sim/isa"
	"github.com/wpkelso/lc3sim/machine"
	"github.com/wpkelso/lc3sim/machine/core"
)

func TestFailIOErrorsOnKeyboardTrap(t *testing.T) {
	m := core.New()
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Trap{Vector: isa.TrapGetc}.Encode())

	if err := (FailIO{}).Step(m); !errors.Is(err, ErrNoKeyboard) {
		t.Fatalf("Step error = %v, want ErrNoKeyboard", err)
	}
}

func TestFailIOErrorsOnConsoleTrap(t *testing.T) {
	m := core.New()
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Trap{Vector: isa.TrapOut}.Encode())

	if err := (FailIO{}).Step(m); !errors.Is(err, ErrNoConsole) {
		t.Fatalf("Step error = %v, want ErrNoConsole", err)
	}
}

func TestFailIOPassesThroughNonIOInstructions(t *testing.T) {
	m := core.New()
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Add{Dest: machine.R0, Src1: machine.R0, Imm: 1, Immediate: true}.Encode())

	if err := (FailIO{}).Step(m); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if m.Reg(machine.R0) != 1 {
		t.Errorf("R0 = %d, want 1", m.Reg(machine.R0))
	}
}

func TestIgnoreIOSkipsIOTrapBody(t *testing.T) {
	m := core.New()
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Trap{Vector: isa.TrapOut}.Encode())
	// No handler installed at mem[0x21]; IgnoreIO must never jump there.

	if err := (IgnoreIO{}).Step(m); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if m.PC() != 0x3001 {
		t.Errorf("PC = %#04x, want 0x3001 (trap skipped as no-op)", m.PC())
	}
}

func TestIgnoreIOPassesThroughHalt(t *testing.T) {
	m := core.New()
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Trap{Vector: isa.TrapHalt}.Encode())
	m.SetMem(isa.TrapHalt, 0x0500)

	if err := (IgnoreIO{}).Step(m); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if !m.IsHalted() {
		t.Errorf("IsHalted() = false, want true (HALT is not an I/O trap)")
	}
}

func TestStreamIOServicesKeyboardAndDisplay(t *testing.T) {
	m := core.New()
	reader := strings.NewReader("A")
	var out bytes.Buffer
	s := NewStreamIO(reader, &out)

	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Add{Dest: machine.R0, Src1: machine.R0, Imm: 0, Immediate: true}.Encode())

	if err := s.Step(m); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if m.Mem(machine.KBSR)&(1<<15) == 0 {
		t.Fatalf("KBSR ready bit not set after servicing keyboard")
	}
	if m.Mem(machine.KBDR) != 'A' {
		t.Errorf("KBDR = %q, want 'A'", rune(m.Mem(machine.KBDR)))
	}
	if m.Mem(machine.DSR)&(1<<15) == 0 {
		t.Errorf("DSR ready bit not set")
	}

	// Simulate a handler writing 'B' to DDR.
	m.SetMem(machine.DDR, 'B')
	m.SetMem(0x3001, isa.Add{Dest: machine.R0, Src1: machine.R0, Imm: 0, Immediate: true}.Encode())
	if err := s.Step(m); err != nil {
		t.Fatalf("second Step returned error: %v", err)
	}
	if out.String() != "B" {
		t.Errorf("writer captured %q, want %q", out.String(), "B")
	}
}

func TestRunUntilHaltStopsOnHalt(t *testing.T) {
	m := core.New()
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Add{Dest: machine.R0, Src1: machine.R0, Imm: 1, Immediate: true}.Encode())
	m.SetMem(0x3001, isa.Trap{Vector: isa.TrapHalt}.Encode())
	m.SetMem(isa.TrapHalt, 0x0500)

	if err := RunUntilHalt(IgnoreIO{}, m); err != nil {
		t.Fatalf("RunUntilHalt returned error: %v", err)
	}
	if !m.IsHalted() {
		t.Errorf("IsHalted() = false after RunUntilHalt")
	}
}

func TestRunLimitedReturnsFalseOnExhaustion(t *testing.T) {
	m := core.New()
	m.SetPC(0x3000)
	for addr := uint16(0x3000); addr < 0x3010; addr++ {
		m.SetMem(addr, isa.Add{Dest: machine.R0, Src1: machine.R0, Imm: 1, Immediate: true}.Encode())
	}

	completed, err := RunLimited(IgnoreIO{}, m, 4)
	if err != nil {
		t.Fatalf("RunLimited returned error: %v", err)
	}
	if completed {
		t.Errorf("completed = true, want false (budget exhausted before HALT)")
	}
	if m.Reg(machine.R0) != 4 {
		t.Errorf("R0 = %d, want 4 after 4 steps", m.Reg(machine.R0))
	}
}
