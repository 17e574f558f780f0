package isa

import (
	"errors"
	"testing"

	"github.com/wpkelso/lc3sim/machine"
)

func TestNotRequiresTrailingOnes(t *testing.T) {
	// Opcode correct but trailing six bits aren't all ones.
	word := uint16(opNot)<<12 | 1<<9 | 0<<6 | 0b111110
	_, err := Decode(word)
	if !errors.Is(err, machine.ErrInvalidInstruction) {
		t.Fatalf("Decode(%#04x) error = %v, want ErrInvalidInstruction", word, err)
	}
}

// TestNotRejectsNonTrailingOnesExhaustive sweeps NOT's entire opcode
// range and checks Decode rejects exactly the words whose low six bits
// aren't all set.
func TestNotRejectsNonTrailingOnesExhaustive(t *testing.T) {
	for low := uint16(0); low < 0x1000; low++ {
		word := uint16(opNot)<<12 | low
		valid := low&0b111111 == 0b111111

		_, err := Decode(word)
		if !valid && !errors.Is(err, machine.ErrInvalidInstruction) {
			t.Errorf("Decode(%#04x) error = %v, want ErrInvalidInstruction", word, err)
		}
		if valid && err != nil {
			t.Errorf("Decode(%#04x) returned error: %v, want success", word, err)
		}
	}
}

// TestNotRoundTripExhaustive sweeps every valid word in NOT's opcode
// range and checks Encode(Decode(w)) == w.
func TestNotRoundTripExhaustive(t *testing.T) {
	for low := uint16(0); low < 0x1000; low++ {
		word := uint16(opNot)<<12 | low
		instr, err := Decode(word)
		if err != nil {
			continue
		}
		if got := instr.Encode(); got != word {
			t.Errorf("Encode(Decode(%#04x)) = %#04x, want %#04x", word, got, word)
		}
	}
}

func TestNotEncodeDecodeRoundTrip(t *testing.T) {
	c := Not{Dest: 1, Src: 0}
	word := c.Encode()
	instr, err := Decode(word)
	if err != nil {
		t.Fatalf("Decode(Encode(%+v)) returned error: %v", c, err)
	}
	if instr != Instruction(c) {
		t.Errorf("round trip %+v -> %#04x -> %+v", c, word, instr)
	}
}

func TestNotExecute(t *testing.T) {
	m := newFakeMachine()
	m.regs[machine.R0] = 0b0000000011111111
	instr := Not{Dest: machine.R1, Src: machine.R0}
	if err := instr.Execute(m); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if m.regs[machine.R1] != 0b1111111100000000 {
		t.Errorf("R1 = %016b, want 1111111100000000", m.regs[machine.R1])
	}
	if !m.negative {
		t.Errorf("flag negative not set for result with high bit set")
	}
}
