package isa

import (
	"errors"
	"testing"

	"github.com/wpkelso/lc3sim/machine"
)

// TestJumpSubRejectsReservedBitsExhaustive sweeps JSR/JSRR's entire
// opcode range. Bit 11 set (JSR, PC-relative) is always valid;
// bit 11 clear (JSRR, register-indirect) is invalid when bits 10-9 or
// 5-0 are nonzero.
func TestJumpSubRejectsReservedBitsExhaustive(t *testing.T) {
	for low := uint16(0); low < 0x1000; low++ {
		word := uint16(opJumpSR)<<12 | low
		_, err := Decode(word)

		if low&0x800 != 0 {
			if err != nil {
				t.Errorf("Decode(%#04x) returned error: %v, want success (JSR offset form)", word, err)
			}
			continue
		}
		invalid := low&0x600 != 0 || low&0x3F != 0
		if invalid && !errors.Is(err, machine.ErrInvalidInstruction) {
			t.Errorf("Decode(%#04x) error = %v, want ErrInvalidInstruction", word, err)
		}
		if !invalid && err != nil {
			t.Errorf("Decode(%#04x) returned error: %v, want success", word, err)
		}
	}
}

// TestJumpSubRoundTripExhaustive sweeps every valid word in
// JSR/JSRR's opcode range and checks Encode(Decode(w)) == w.
func TestJumpSubRoundTripExhaustive(t *testing.T) {
	for low := uint16(0); low < 0x1000; low++ {
		word := uint16(opJumpSR)<<12 | low
		instr, err := Decode(word)
		if err != nil {
			continue
		}
		if got := instr.Encode(); got != word {
			t.Errorf("Encode(Decode(%#04x)) = %#04x, want %#04x", word, got, word)
		}
	}
}

func TestJumpSubRoutineScenario(t *testing.T) {
	// JSR +6 from pc=0x3001 (already advanced past the instruction at
	// 0x3000) saves 0x3001 to R7 and sets PC=0x3007.
	m := newFakeMachine()
	m.pc = 0x3001
	instr := JumpSub{ViaOffset: true, PCOffset: 6}
	if err := instr.Execute(m); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if m.regs[machine.R7] != 0x3001 {
		t.Errorf("R7 = %#04x, want 0x3001", m.regs[machine.R7])
	}
	if m.pc != 0x3007 {
		t.Errorf("PC = %#04x, want 0x3007", m.pc)
	}

	// RET at 0x3007 restores PC to the saved 0x3001.
	ret := Jump{BaseReg: machine.R7}
	if err := ret.Execute(m); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if m.pc != 0x3001 {
		t.Errorf("PC after RET = %#04x, want 0x3001", m.pc)
	}
}

func TestJumpSubRoutineRegisterForm(t *testing.T) {
	m := newFakeMachine()
	m.pc = 0x4000
	m.regs[machine.R3] = 0x5000
	instr := JumpSub{BaseReg: machine.R3}
	if err := instr.Execute(m); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}
	if m.regs[machine.R7] != 0x4000 || m.pc != 0x5000 {
		t.Errorf("R7=%#04x PC=%#04x, want R7=0x4000 PC=0x5000", m.regs[machine.R7], m.pc)
	}
}

func TestJumpSubEncodeDecodeRoundTrip(t *testing.T) {
	cases := []JumpSub{
		{ViaOffset: true, PCOffset: 6},
		{ViaOffset: true, PCOffset: -1024},
		{BaseReg: 5},
	}
	for _, c := range cases {
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
