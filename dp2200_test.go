// dp2200_test.go - Raw opcode byte builders shared by package tests
//
// The textual assembler is out of scope (spec.md Section 1), so test
// programs are built directly from the opcode fields documented in
// instruction.go. Destination/source register indices match RegA..RegM.

package dp2200

func opLoadImm(dest byte, imm byte) []byte { return []byte{dest<<3 | 0x06, imm} }
func opHalt() []byte                       { return []byte{0x00} }
func opNop() []byte                        { return []byte{0xC0} }
func opAddImm(imm byte) []byte             { return []byte{0x04, imm} }
func opSubImm(imm byte) []byte             { return []byte{0x14, imm} }
func opEnableIntr() []byte                 { return []byte{0x28} }
func opDisableInts() []byte                { return []byte{0x20} }

func opJump(addr uint16) []byte {
	return []byte{0x44, byte(addr), byte(addr >> 8)}
}

func opCall(addr uint16) []byte {
	return []byte{0x46, byte(addr), byte(addr >> 8)}
}

func opReturn() []byte { return []byte{0x07} }
func opAdr() []byte    { return []byte{0o121} }
func opWrite() []byte  { return []byte{0o127} }

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
