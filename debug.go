// debug.go - Breakpoint conditions
//
// Grounded on the teacher's debug_conditions.go/debug_interface.go: the
// same small condition language (register/memory/hitcount compared with
// ==,!=,<,>,<=,>=), adapted from the teacher's many-CPU register set to
// this CPU's A/B/C/D/E/H/L/M registers and Cf/Zf/Sf/Pf flags. See
// SPEC_FULL.md Section 4.9.

package dp2200

import (
	"fmt"
	"strconv"
	"strings"
)

// ConditionOp is the comparison operator for a breakpoint condition.
type ConditionOp int

const (
	CondOpEqual ConditionOp = iota
	CondOpNotEqual
	CondOpLess
	CondOpGreater
	CondOpLessEqual
	CondOpGreaterEqual
)

// ConditionSource is what a breakpoint condition compares.
type ConditionSource int

const (
	CondSourceRegister ConditionSource = iota
	CondSourceMemory
	CondSourceHitCount
)

// BreakpointCondition is evaluated when its breakpoint's address is hit;
// the breakpoint only fires if the condition holds.
type BreakpointCondition struct {
	Source  ConditionSource
	RegName string // register or flag name (for CondSourceRegister)
	MemAddr uint16 // memory address (for CondSourceMemory)
	Op      ConditionOp
	Value   uint64
}

// ParseCondition parses a condition string into a BreakpointCondition.
// Formats:
//
//	A==$FF         - register A, op ==, value 0xFF
//	[$1000]==$42   - memory at 0x1000, op ==, value 0x42
//	hitcount>10    - hit count, op >, value 10
func ParseCondition(text string) (*BreakpointCondition, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("dp2200: empty condition")
	}

	var op ConditionOp
	var opStr string
	var opIdx int
	for _, candidate := range []string{"==", "!=", "<=", ">=", "<", ">"} {
		if idx := strings.Index(text, candidate); idx >= 0 {
			opStr, opIdx = candidate, idx
			break
		}
	}
	if opStr == "" {
		return nil, fmt.Errorf("dp2200: no operator found (use ==, !=, <, >, <=, >=)")
	}

	switch opStr {
	case "==":
		op = CondOpEqual
	case "!=":
		op = CondOpNotEqual
	case "<":
		op = CondOpLess
	case ">":
		op = CondOpGreater
	case "<=":
		op = CondOpLessEqual
	case ">=":
		op = CondOpGreaterEqual
	}

	lhs := strings.TrimSpace(text[:opIdx])
	rhs := strings.TrimSpace(text[opIdx+len(opStr):])

	value, ok := parseNumber(rhs)
	if !ok {
		return nil, fmt.Errorf("dp2200: invalid value: %s", rhs)
	}

	if strings.HasPrefix(lhs, "[") && strings.HasSuffix(lhs, "]") {
		addrStr := lhs[1 : len(lhs)-1]
		addr, ok := parseNumber(addrStr)
		if !ok || addr >= memorySize {
			return nil, fmt.Errorf("dp2200: invalid memory address: %s", addrStr)
		}
		return &BreakpointCondition{Source: CondSourceMemory, MemAddr: uint16(addr), Op: op, Value: value}, nil
	}

	if strings.EqualFold(lhs, "hitcount") {
		// A bare hit count is decimal; the $, 0x and # prefixes still apply.
		if n, err := strconv.ParseUint(rhs, 10, 64); err == nil {
			value = n
		}
		return &BreakpointCondition{Source: CondSourceHitCount, Op: op, Value: value}, nil
	}

	return &BreakpointCondition{Source: CondSourceRegister, RegName: strings.ToUpper(lhs), Op: op, Value: value}, nil
}

// parseNumber accepts $hex, 0xhex, #decimal, or bare hex - the same
// formats the teacher's debug_commands.go ParseAddress accepts.
func parseNumber(s string) (uint64, bool) {
	s = strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(s, "#"):
		v, err := strconv.ParseUint(s[1:], 10, 64)
		return v, err == nil
	case strings.HasPrefix(s, "$"):
		v, err := strconv.ParseUint(s[1:], 16, 64)
		return v, err == nil
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		v, err := strconv.ParseUint(s[2:], 16, 64)
		return v, err == nil
	default:
		v, err := strconv.ParseUint(s, 16, 64)
		return v, err == nil
	}
}

// registerValue resolves a register or flag mnemonic against the CPU's
// live bank. Unknown names report ok=false.
func registerValue(c *Cpu, name string) (uint64, bool) {
	for i, n := range regName {
		if n == name {
			return uint64(c.readReg(byte(i))), true
		}
	}
	for i, n := range flagName {
		if n == "_" {
			continue
		}
		if n == name {
			if c.readFlag(byte(i)) {
				return 1, true
			}
			return 0, true
		}
	}
	return 0, false
}

// evaluateCondition checks whether a breakpoint condition is satisfied,
// given the hit count accumulated for its breakpoint so far.
func evaluateCondition(cond *BreakpointCondition, cpu *Cpu, hitCount uint64) bool {
	if cond == nil {
		return true
	}

	var actual uint64
	switch cond.Source {
	case CondSourceRegister:
		val, ok := registerValue(cpu, cond.RegName)
		if !ok {
			return false
		}
		actual = val
	case CondSourceMemory:
		actual = uint64(cpu.Memory[cond.MemAddr])
	case CondSourceHitCount:
		actual = hitCount
	}

	return compareValues(actual, cond.Op, cond.Value)
}

func compareValues(actual uint64, op ConditionOp, expected uint64) bool {
	switch op {
	case CondOpEqual:
		return actual == expected
	case CondOpNotEqual:
		return actual != expected
	case CondOpLess:
		return actual < expected
	case CondOpGreater:
		return actual > expected
	case CondOpLessEqual:
		return actual <= expected
	case CondOpGreaterEqual:
		return actual >= expected
	}
	return false
}
