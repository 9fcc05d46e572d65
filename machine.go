// machine.go - Machine: build/load/update/single_step/breakpoints
//
// Grounded on original_source/src/DP2200/datapoint.rs's Datapoint struct
// (Build, LoadProgram, LoadCassette, Update, SingleStep, ToggleBreakpoint),
// renamed Datapoint -> Machine per spec.md's own naming. The breakpoint
// check is moved ahead of fetch charging/execute per spec.md Section 4.8
// (the original checks the breakpoint against the post-execute PC; this
// spec checks it before the instruction at a breakpoint address runs at
// all).
//
// Machine is not safe for concurrent use: see SPEC_FULL.md Section 5. One
// goroutine drives Update/SingleStep/Keydown/Keyup at a time.

package dp2200

// RunStatus is the three-valued result of Update/SingleStep.
type RunStatus int

const (
	Ok RunStatus = iota
	BreakpointHit
	Halted
)

// Machine ties together the CPU, clock, and databus into a runnable unit.
type Machine struct {
	Cpu     Cpu
	Clock   Clock
	Databus *Databus

	breakpoints          map[uint16]bool
	breakpointConditions map[uint16]*BreakpointCondition
	breakpointHitCounts  map[uint16]uint64

	// Quiet suppresses recoverable-error logging across the CPU and
	// machine loop (fetch past end of memory, stack underflow). Copied to
	// Cpu.Quiet at the start of every step and before every machine log.
	Quiet bool
}

// Build constructs a Machine with a fresh power-on CPU/databus, loading
// program into the start of memory.
func Build(program []byte, timeScale float32) *Machine {
	m := &Machine{
		Databus:              NewDatabus(),
		breakpoints:          make(map[uint16]bool),
		breakpointConditions: make(map[uint16]*BreakpointCondition),
		breakpointHitCounts:  make(map[uint16]uint64),
	}
	m.Cpu.reset()
	m.Clock = *newClock(timeScale)

	if len(program) > len(m.Cpu.Memory) {
		m.logf("dp2200: program of %d bytes longer than %d-byte memory", len(program), len(m.Cpu.Memory))
	}
	copy(m.Cpu.Memory[:], program)

	return m
}

func (m *Machine) logf(format string, args ...any) {
	m.Cpu.Quiet = m.Quiet
	m.Cpu.logf(format, args...)
}

// LoadProgram replaces memory and clears breakpoints. Registers are left
// untouched, matching original_source's load_program.
func (m *Machine) LoadProgram(program []byte) {
	for i := range m.Cpu.Memory {
		if i < len(program) {
			m.Cpu.Memory[i] = program[i]
		} else {
			m.Cpu.Memory[i] = 0
		}
	}
	m.breakpoints = make(map[uint16]bool)
	m.breakpointConditions = make(map[uint16]*BreakpointCondition)
	m.breakpointHitCounts = make(map[uint16]uint64)
}

// LoadCassette loads a TAP image into deck 1 and loads its first sector
// into memory starting at address 0.
func (m *Machine) LoadCassette(tapBytes []byte) {
	m.Databus.Cassette.Load(Deck1, tapBytes)
	program := m.Databus.Cassette.FirstSector()
	m.LoadProgram(program)
}

// Update runs instructions until the clock reaches delta_ms past its
// current position, a breakpoint is hit, or the CPU halts.
func (m *Machine) Update(deltaMs float64) RunStatus {
	if m.Cpu.Halted {
		return Halted
	}

	goalTime := m.Clock.EmulatedTimeNs + uint64(deltaMs*1_000_000.0)

	for {
		if status, done := m.step(); done {
			return status
		}
		if m.Clock.EmulatedTimeNs >= goalTime {
			return Ok
		}
	}
}

// SingleStep runs exactly one fetch+execute cycle.
func (m *Machine) SingleStep() RunStatus {
	status, _ := m.step()
	return status
}

// step performs one iteration of the machine loop (spec.md Section 4.8).
// done is true when the caller should stop (breakpoint or halt); Ok is
// returned with done=false to let Update keep looping toward its deadline.
func (m *Machine) step() (status RunStatus, done bool) {
	m.Cpu.Quiet = m.Quiet
	startPC := m.Cpu.ProgramCounter

	inst, ok := m.Cpu.fetchInstruction()
	if !ok {
		m.logf("dp2200: could not fetch instruction at pc=0x%04x", startPC)
		m.Cpu.Halted = true
		return Halted, true
	}
	m.Cpu.InstructionRegister = inst

	if m.breakpointHit(startPC) {
		// Discard the fetch: nothing executes, and the program counter is
		// restored so it keeps pointing at the (not yet run) breakpointed
		// instruction rather than the one fetch's side effect already
		// advanced past.
		m.Cpu.ProgramCounter = startPC
		return BreakpointHit, true
	}

	m.Clock.Ticks(inst.cycles(), &m.Cpu, m.Databus)
	m.Cpu.execute(m.Databus)

	if m.Cpu.Halted {
		return Halted, true
	}
	return Ok, false
}

// ToggleBreakpoint sets or clears an unconditional breakpoint at addr.
func (m *Machine) ToggleBreakpoint(addr uint16) {
	if m.breakpoints[addr] {
		delete(m.breakpoints, addr)
		delete(m.breakpointConditions, addr)
	} else {
		m.breakpoints[addr] = true
	}
}

// SetBreakpointCondition attaches a condition to a breakpoint at addr,
// arming the breakpoint if it was not already set. A nil cond clears it.
func (m *Machine) SetBreakpointCondition(addr uint16, cond *BreakpointCondition) {
	m.breakpoints[addr] = true
	if cond == nil {
		delete(m.breakpointConditions, addr)
		return
	}
	m.breakpointConditions[addr] = cond
}

// breakpointHit reports whether the breakpoint at addr fires: present and,
// if conditioned, the condition holds. A conditioned miss does not count
// as a hit (the machine keeps running, same as the teacher's trapLoop).
func (m *Machine) breakpointHit(addr uint16) bool {
	if !m.breakpoints[addr] {
		return false
	}
	cond, hasCond := m.breakpointConditions[addr]
	if !hasCond {
		return true
	}
	m.breakpointHitCounts[addr]++
	return evaluateCondition(cond, &m.Cpu, m.breakpointHitCounts[addr])
}

// ProgramCounter exposes the CPU's program counter for disassembly/debug
// tooling (spec.md Section 4.10).
func (m *Machine) ProgramCounter() uint16 { return m.Cpu.ProgramCounter }

// IsBreakpoint reports whether addr carries a breakpoint (conditioned or
// not), for disassembly-line rendering.
func (m *Machine) IsBreakpoint(addr uint16) bool { return m.breakpoints[addr] }

// Keydown/Keyup forward to the keyboard peripheral.
func (m *Machine) Keydown(key string) { m.Databus.Keyboard.Keydown(key) }
func (m *Machine) Keyup(key string)   { m.Databus.Keyboard.Keyup(key) }

// GetScreen renders the current 12x80 screen buffer.
func (m *Machine) GetScreen() string { return m.Databus.Screen.GetScreen() }
