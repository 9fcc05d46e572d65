// screen.go - Screen peripheral: 12x80 character grid
//
// Ported from original_source/src/DP2200/screen.rs. Clock/Strobe/Data are
// no-ops added to satisfy the Peripheral interface (the original draft
// never needed them - the CPU forwarded Ex commands directly rather than
// through a polymorphic peripheral).

package dp2200

const (
	screenRows = 12
	screenCols = 80
)

// Control-word bit masks for Com1.
const (
	ctrlEraseEOL   byte = 0x02
	ctrlEraseFrame byte = 0x04
	ctrlScroll     byte = 0x10
)

// Screen holds the 12x80 character grid and cursor state.
type Screen struct {
	buffer        [screenRows][screenCols]byte
	line, col     int
	cursorEnabled bool
}

func newScreen() *Screen {
	return &Screen{}
}

// Write stores a byte at the cursor. The cursor never advances on Write.
func (s *Screen) Write(b byte) {
	s.buffer[s.line][s.col] = b
}

// ControlWord implements Com1: erase-to-EOL, erase-to-end-of-frame, and
// scroll-up-one-row (which also refreshes cursorEnabled from the same bit).
func (s *Screen) ControlWord(control byte) {
	if control&ctrlEraseEOL != 0 {
		for c := s.col; c < screenCols; c++ {
			s.buffer[s.line][c] = 0
		}
	}
	if control&ctrlEraseFrame != 0 {
		for c := s.col; c < screenCols; c++ {
			for l := s.line; l < screenRows; l++ {
				s.buffer[l][c] = 0
			}
		}
	}
	if control&ctrlScroll != 0 {
		for l := 0; l < screenRows-1; l++ {
			s.buffer[l] = s.buffer[l+1]
		}
		s.buffer[screenRows-1] = [screenCols]byte{}
		s.cursorEnabled = true
	}
}

// SetHorizontal implements Com2: set cursor column if in bounds.
func (s *Screen) SetHorizontal(col byte) {
	if int(col) < screenCols {
		s.col = int(col)
	}
}

// SetVertical implements Com3: set cursor row if in bounds.
func (s *Screen) SetVertical(row byte) {
	if int(row) < screenRows {
		s.line = int(row)
	}
}

// GetScreen renders the grid as 12 lines of 80 characters, each terminated
// by a trailing newline (including the last row).
func (s *Screen) GetScreen() string {
	out := make([]byte, 0, screenRows*(screenCols+1))
	for l := 0; l < screenRows; l++ {
		out = append(out, s.buffer[l][:]...)
		out = append(out, '\n')
	}
	return string(out)
}

// Status always reports write-ready (bit 0).
func (s *Screen) Status() byte { return 0x01 }

// Data, Clock, and Strobe satisfy Peripheral; the screen has no data output
// or transport to advance. WriteData forwards to Write: it is how the
// databus Write command reaches the screen.
func (s *Screen) Data() byte       { return 0 }
func (s *Screen) Clock()           {}
func (s *Screen) Strobe()          {}
func (s *Screen) WriteData(b byte) { s.Write(b) }
