package harness

import (
	"io"

	"github.com/wpkelso/lc3sim/machine"
)

// StreamIO services the keyboard and display memory-mapped registers
// against an ordinary byte stream: bytes available on reader appear
// at KBDR/KBSR, bytes written through DDR/DSR are drained to writer.
// A nonzero DDR is written out before the next step and DDR is then
// reset to zero, so a NUL byte written to DDR is never emitted.
// It forces DSR ready before every step, so a handler polling DSR
// never stalls waiting on a peripheral that has nowhere else to
// signal readiness from.
type StreamIO struct {
	reader io.Reader
	writer io.Writer

	readBuf [1]byte
}

// NewStreamIO returns a StreamIO backed by r for keyboard input and w
// for display output.
func NewStreamIO(r io.Reader, w io.Writer) *StreamIO {
	return &StreamIO{reader: r, writer: w}
}

func (s *StreamIO) serviceKeyboard(m machine.Machine) error {
	if m.Mem(machine.KBSR)&(1<<15) != 0 {
		return nil // character still pending, don't clobber it
	}
	n, err := s.reader.Read(s.readBuf[:])
	if n == 1 {
		m.SetMem(machine.KBDR, uint16(s.readBuf[0]))
		m.SetMem(machine.KBSR, 1<<15)
		return nil
	}
	if err != nil && err != io.EOF {
		return err
	}
	return nil
}

func (s *StreamIO) serviceDisplay(m machine.Machine) error {
	m.SetMem(machine.DSR, 1<<15)

	ddr := m.Mem(machine.DDR)
	if ddr == 0 {
		return nil
	}
	m.SetMem(machine.DDR, 0) // drained; a repeat of the same byte is a new write
	_, err := s.writer.Write([]byte{byte(ddr)})
	return err
}

func (s *StreamIO) Step(m machine.Machine) error {
	if err := s.serviceKeyboard(m); err != nil {
		return &ExecutionError{Kind: ErrIO}
	}
	if err := s.serviceDisplay(m); err != nil {
		return &ExecutionError{Kind: ErrIO}
	}
	return fromStepError(m.Step())
}

var _ Harness = (*StreamIO)(nil)
