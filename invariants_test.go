package dp2200

import "testing"

// Universal invariants (spec.md Section 8), each checked independently of
// the scenario-style tests in cpu_exec_test.go/cassette_test.go/screen_test.go.

func TestInvariantStackLengthNeverExceedsSixteen(t *testing.T) {
	c := &Cpu{}
	c.reset()
	for i := 0; i < 100; i++ {
		c.pushStack(uint16(i))
		if c.stack.len > stackSize {
			t.Fatalf("stack.len = %d after %d pushes, want <= %d", c.stack.len, i+1, stackSize)
		}
	}
}

func TestInvariantCursorAlwaysInBounds(t *testing.T) {
	s := newScreen()
	for _, col := range []byte{0, 79, 80, 255} {
		s.SetHorizontal(col)
		if s.col < 0 || s.col >= screenCols {
			t.Fatalf("col = %d out of [0,%d) after SetHorizontal(%d)", s.col, screenCols, col)
		}
	}
	for _, row := range []byte{0, 11, 12, 255} {
		s.SetVertical(row)
		if s.line < 0 || s.line >= screenRows {
			t.Fatalf("line = %d out of [0,%d) after SetVertical(%d)", s.line, screenRows, row)
		}
	}
}

func TestInvariantJumpMasksAddressTo13Bits(t *testing.T) {
	// Checked immediately after the single Jump step, before the next
	// fetch can advance PC again.
	m := Build(opJump(0xFFFF), 1.0)
	m.SingleStep()
	if m.Cpu.ProgramCounter != 0xFFFF&addressMask {
		t.Fatalf("PC = 0x%04x, want 0x%04x", m.Cpu.ProgramCounter, 0xFFFF&addressMask)
	}
}

func TestInvariantCallMasksAddressTo13Bits(t *testing.T) {
	m := Build(opCall(0x2500), 1.0)
	m.SingleStep()
	if m.Cpu.ProgramCounter != 0x2500&addressMask {
		t.Fatalf("PC = 0x%04x, want 0x%04x", m.Cpu.ProgramCounter, 0x2500&addressMask)
	}
}

func TestRoundTripLoadImmIdentity(t *testing.T) {
	for b := 0; b < 256; b++ {
		m := Build(concat(opLoadImm(RegA, byte(b)), opHalt()), 1.0)
		m.Update(1000)
		if got := m.Cpu.readReg(RegA); got != byte(b) {
			t.Fatalf("b=%d: A = %d, want %d", b, got, b)
		}
	}
}

func TestRoundTripAddNoOverflow(t *testing.T) {
	for x := 0; x < 256; x += 17 {
		for y := 0; y < 256-x; y += 23 {
			m := Build(concat(opLoadImm(RegA, byte(x)), opAddImm(byte(y)), opHalt()), 1.0)
			m.Update(1000)
			if got := m.Cpu.readReg(RegA); got != byte(x+y) {
				t.Fatalf("x=%d y=%d: A = %d, want %d", x, y, got, x+y)
			}
			if m.Cpu.readFlag(FlagCarry) {
				t.Fatalf("x=%d y=%d: Carry set, want clear", x, y)
			}
		}
	}
}

func TestRoundTripAddOverflow(t *testing.T) {
	for x := 200; x < 256; x++ {
		for y := 200; y < 256; y++ {
			if x+y < 256 {
				continue
			}
			m := Build(concat(opLoadImm(RegA, byte(x)), opAddImm(byte(y)), opHalt()), 1.0)
			m.Update(1000)
			if got := m.Cpu.readReg(RegA); got != byte((x+y)%256) {
				t.Fatalf("x=%d y=%d: A = %d, want %d", x, y, got, (x+y)%256)
			}
			if !m.Cpu.readFlag(FlagCarry) {
				t.Fatalf("x=%d y=%d: Carry clear, want set", x, y)
			}
		}
	}
}
