package osimage

import (
	"bytes"
	"strings"
	"testing"

	"github.com/wpkelso/lc3sim/harness"
	"github.com/wpkelso/lc3sim/isa"
	"github.com/wpkelso/lc3sim/machine"
	"github.com/wpkelso/lc3sim/machine/core"
)

func TestGetcReadsCharacterIntoR0(t *testing.T) {
	m := core.New()
	Install(m)
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Trap{Vector: isa.TrapGetc}.Encode())

	h := harness.NewStreamIO(strings.NewReader("Q"), &bytes.Buffer{})

	// TRAP, LDI KBSR, BRzp, LDI KBDR, RET.
	for i := 0; i < 5; i++ {
		if err := h.Step(m); err != nil {
			t.Fatalf("Step returned error: %v", err)
		}
	}
	if m.Reg(machine.R0) != 'Q' {
		t.Fatalf("R0 = %q, want 'Q'", rune(m.Reg(machine.R0)))
	}
	if m.PC() != 0x3001 {
		t.Errorf("PC = %#04x, want 0x3001 after GETC returns", m.PC())
	}
}

func TestOutWritesR0ToDisplay(t *testing.T) {
	m := core.New()
	Install(m)
	m.SetPC(0x3000)
	m.SetReg(machine.R0, 'Z')
	m.SetMem(0x3000, isa.Trap{Vector: isa.TrapOut}.Encode())

	var out bytes.Buffer
	h := harness.NewStreamIO(strings.NewReader(""), &out)

	// TRAP, LDI DSR, BRzp, STI DDR, RET.
	for i := 0; i < 5; i++ {
		if err := h.Step(m); err != nil {
			t.Fatalf("Step returned error: %v", err)
		}
	}
	if out.String() != "Z" {
		t.Errorf("display output = %q, want %q", out.String(), "Z")
	}
	if m.PC() != 0x3001 {
		t.Errorf("PC = %#04x, want 0x3001 after OUT returns", m.PC())
	}
}

func TestPutsWritesNullTerminatedString(t *testing.T) {
	m := core.New()
	Install(m)
	m.SetMem(0x4000, 'H')
	m.SetMem(0x4001, 'I')
	m.SetMem(0x4002, 0)
	m.SetReg(machine.R0, 0x4000)
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Trap{Vector: isa.TrapPuts}.Encode())

	var out bytes.Buffer
	h := harness.NewStreamIO(strings.NewReader(""), &out)

	// TRAP, copy R0, two 7-instruction character loops, the final
	// LDR/BRz on the terminator, RET.
	for i := 0; i < 19; i++ {
		if err := h.Step(m); err != nil {
			t.Fatalf("Step returned error: %v", err)
		}
	}
	if out.String() != "HI" {
		t.Errorf("display output = %q, want %q", out.String(), "HI")
	}
	if m.PC() != 0x3001 {
		t.Errorf("PC = %#04x, want 0x3001 after PUTS returns", m.PC())
	}
}

func TestHaltClearsMCRAndHalts(t *testing.T) {
	m := core.New()
	Install(m)
	m.SetPC(0x3000)
	m.SetMem(0x3000, isa.Trap{Vector: isa.TrapHalt}.Encode())

	if err := m.Step(); err != nil { // TRAP x25 itself
		t.Fatalf("Step (TRAP) returned error: %v", err)
	}
	if !m.IsHalted() {
		t.Fatalf("IsHalted() = false after TRAP x25")
	}

	// The halted flag is already latched; running the handler body is
	// unreachable in practice once halted, but exercise it directly to
	// confirm it clears MCR bit 15 too.
	m.Unhalt()
	if err := m.Step(); err != nil { // AND R0,R0,#0
		t.Fatalf("Step (AND) returned error: %v", err)
	}
	if err := m.Step(); err != nil { // STI R0 -> MCR
		t.Fatalf("Step (STI) returned error: %v", err)
	}
	if m.Mem(machine.MCR)&(1<<15) != 0 {
		t.Errorf("MCR bit 15 still set after HALT handler body")
	}
}
