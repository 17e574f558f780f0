package isa

import (
	"errors"
	"testing"

	"github.com/wpkelso/lc3sim/machine"
)

func TestDecodeUnassignedOpcode(t *testing.T) {
	// 0b1101 is not assigned to any LC-3 instruction.
	word := uint16(0b1101) << 12
	_, err := Decode(word)
	if !errors.Is(err, machine.ErrInvalidInstruction) {
		t.Fatalf("Decode(%#04x) error = %v, want ErrInvalidInstruction", word, err)
	}
}

func TestSetConditionCodesSelectsExactlyOneFlag(t *testing.T) {
	cases := []struct {
		result                   uint16
		negative, zero, positive bool
	}{
		{0x0000, false, true, false},
		{0x0001, false, false, true},
		{0x8000, true, false, false},
		{0xFFFF, true, false, false}, // -1
	}
	for _, c := range cases {
		m := newFakeMachine()
		setConditionCodes(m, c.result)
		if m.negative != c.negative || m.zero != c.zero || m.positive != c.positive {
			t.Errorf("setConditionCodes(%#04x): got N=%v Z=%v P=%v, want N=%v Z=%v P=%v",
				c.result, m.negative, m.zero, m.positive, c.negative, c.zero, c.positive)
		}
	}
}
