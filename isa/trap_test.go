package isa

import (
	"errors"
	"testing"

	"github.com/wpkelso/lc3sim/machine"
)

func TestTrapRejectsNonStandardVector(t *testing.T) {
	word := uint16(opTrap)<<12 | 0x30
	_, err := Decode(word)
	if !errors.Is(err, machine.ErrInvalidInstruction) {
		t.Fatalf("Decode(%#04x) error = %v, want ErrInvalidInstruction", word, err)
	}
}

// TestTrapRejectsInvalidEncodingsExhaustive sweeps TRAP's entire
// opcode range and checks Decode rejects exactly the words with a
// nonzero reserved nibble (bits 11-8) or a vector outside the six
// standard service calls.
func TestTrapRejectsInvalidEncodingsExhaustive(t *testing.T) {
	for low := uint16(0); low < 0x1000; low++ {
		word := uint16(opTrap)<<12 | low
		invalid := low&0xF00 != 0 || !validTrapVector(uint8(low&0xFF))

		_, err := Decode(word)
		if invalid && !errors.Is(err, machine.ErrInvalidInstruction) {
			t.Errorf("Decode(%#04x) error = %v, want ErrInvalidInstruction", word, err)
		}
		if !invalid && err != nil {
			t.Errorf("Decode(%#04x) returned error: %v, want success", word, err)
		}
	}
}

// TestTrapRoundTripExhaustive sweeps every valid word in TRAP's
// opcode range and checks Encode(Decode(w)) == w.
func TestTrapRoundTripExhaustive(t *testing.T) {
	for low := uint16(0); low < 0x1000; low++ {
		word := uint16(opTrap)<<12 | low
		instr, err := Decode(word)
		if err != nil {
			continue
		}
		if got := instr.Encode(); got != word {
			t.Errorf("Encode(Decode(%#04x)) = %#04x, want %#04x", word, got, word)
		}
	}
}

func TestTrapHaltSetsHaltedAndSavesLink(t *testing.T) {
	m := newFakeMachine()
	m.pc = 0x3001
	m.mem[TrapHalt] = 0x0500

	instr := Trap{Vector: TrapHalt}
	if err := instr.Execute(m); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if !m.halted {
		t.Errorf("machine not halted after TRAP x25")
	}
	if m.regs[machine.R7] != 0x3001 {
		t.Errorf("R7 = %#04x, want 0x3001", m.regs[machine.R7])
	}
	if m.pc != 0x0500 {
		t.Errorf("PC = %#04x, want 0x0500 (trap handler entry)", m.pc)
	}
}

func TestTrapEncodeDecodeRoundTrip(t *testing.T) {
	for _, v := range []uint8{TrapGetc, TrapOut, TrapPuts, TrapIn, TrapPutsp, TrapHalt} {
		c := Trap{Vector: v}
		word := c.Encode()
		instr, err := Decode(word)
		if err != nil {
			t.Fatalf("Decode(Encode(%+v)) returned error: %v", c, err)
		}
		if instr != Instruction(c) {
			t.Errorf("round trip %+v -> %#04x -> %+v", c, word, instr)
		}
	}
}
