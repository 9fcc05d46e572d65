package dp2200

import "testing"

func TestBreakpointHitStopsBeforeExecuting(t *testing.T) {
	program := concat(opLoadImm(RegA, 1), opLoadImm(RegA, 2), opHalt())
	m := Build(program, 1.0)
	secondInstrPC := uint16(len(opLoadImm(RegA, 1)))
	m.ToggleBreakpoint(secondInstrPC)

	status := m.Update(1000)
	if status != BreakpointHit {
		t.Fatalf("status = %v, want BreakpointHit", status)
	}
	if m.Cpu.ProgramCounter != secondInstrPC {
		t.Fatalf("pc = %d, want %d", m.Cpu.ProgramCounter, secondInstrPC)
	}
	if got := m.Cpu.readReg(RegA); got != 1 {
		t.Fatalf("A = %d, want 1 (second LoadImm must not have executed)", got)
	}
}

func TestToggleBreakpointIsIdempotentPair(t *testing.T) {
	m := Build(nil, 1.0)
	m.ToggleBreakpoint(0x10)
	if !m.IsBreakpoint(0x10) {
		t.Fatalf("breakpoint not set")
	}
	m.ToggleBreakpoint(0x10)
	if m.IsBreakpoint(0x10) {
		t.Fatalf("breakpoint not cleared by second toggle")
	}
}

func TestConditionalBreakpointMissContinuesExecution(t *testing.T) {
	program := concat(opLoadImm(RegA, 5), opHalt())
	m := Build(program, 1.0)
	secondInstrPC := uint16(len(opLoadImm(RegA, 5)))

	cond, err := ParseCondition("A==$63")
	if err != nil {
		t.Fatalf("ParseCondition: %v", err)
	}
	m.SetBreakpointCondition(secondInstrPC, cond)

	status := m.Update(1000)
	if status != Halted {
		t.Fatalf("status = %v, want Halted (condition A==0x63 never holds)", status)
	}
}

func TestLoadProgramClearsBreakpointsNotRegisters(t *testing.T) {
	m := Build([]byte{0x00}, 1.0)
	m.ToggleBreakpoint(0x42)
	m.Cpu.writeReg(RegA, 0x77)

	m.LoadProgram([]byte{0x00})

	if m.IsBreakpoint(0x42) {
		t.Fatalf("breakpoint survived LoadProgram")
	}
	if got := m.Cpu.readReg(RegA); got != 0x77 {
		t.Fatalf("A = %#02x, want unchanged 0x77", got)
	}
}

func TestHaltedUpdateReturnsHaltedImmediately(t *testing.T) {
	m := Build([]byte{0x00}, 1.0) // opcode 0x00 is Halt
	m.Update(1000)
	if m.Update(1000) != Halted {
		t.Fatalf("second Update on a halted machine did not report Halted")
	}
}
