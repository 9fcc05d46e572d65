// instruction.go - Opcode decode table and cycle costs for the Datapoint 2200 CPU
//
// Decoding is a total function of the opcode byte's three fields
// (type = bits[7:6], destination = bits[5:3], source = bits[2:0]), with a
// fallback table for the single-byte "Ex" commands identified by octal
// opcode (0o121-0o177). An opcode that matches no rule decodes to Unknown;
// executing Unknown is fatal (see cpu_exec.go).

package dp2200

// Kind identifies the decoded instruction family.
type Kind int

const (
	Unknown Kind = iota
	LoadImm
	Load
	AddImm
	Add
	AddImmCarry
	AddCarry
	SubImm
	Sub
	SubImmBorrow
	SubBorrow
	AndImm
	And
	OrImm
	Or
	XorImm
	Xor
	CompImm
	Comp
	Jump
	JumpIf
	JumpIfNot
	Call
	CallIf
	CallIfNot
	Return
	ReturnIf
	ReturnIfNot
	ShiftRight
	ShiftLeft
	Nop
	Halt
	Input
	Pop
	Push
	EnableIntr
	DisableInts
	SelectAlpha
	SelectBeta
	// Ex commands
	Adr
	Status
	Data
	Write
	Com1
	Com2
	Com3
	Com4
	Beep
	Click
	Deck1Cmd
	Deck2Cmd
	Rbk
	Wbk
	Bsp
	Sf
	Sb
	Rewind
	Tstop
)

// regName and flagName are used only to give breakpoint-condition parsing
// and any external disassembler tooling the same register/flag mnemonics
// the original hardware manual uses. Index 7 ("M") is never register-file
// storage; see Cpu.readReg/writeReg.
var regName = [8]string{"A", "B", "C", "D", "E", "H", "L", "M"}
var flagName = [8]string{"Cf", "Zf", "Sf", "Pf", "_", "_", "_", "_"}

// exOpcodes maps the single-byte "Ex" command octal opcodes (0o121-0o177)
// to their instruction kind. These are matched only after every
// type/destination/source decode rule below has failed to match.
var exOpcodes = map[byte]Kind{
	0o121: Adr,
	0o123: Status,
	0o125: Data,
	0o127: Write,
	0o131: Com1,
	0o133: Com2,
	0o135: Com3,
	0o137: Com4,
	0o151: Beep,
	0o153: Click,
	0o155: Deck1Cmd,
	0o157: Deck2Cmd,
	0o161: Rbk,
	0o163: Wbk,
	0o167: Bsp,
	0o171: Sf,
	0o173: Sb,
	0o175: Rewind,
	0o177: Tstop,
}

// Instruction is a decoded opcode: a tagged variant carrying the raw byte,
// an optional immediate operand, and an optional 16-bit address.
type Instruction struct {
	Kind      Kind
	Opcode    byte
	Immediate byte
	HasImm    bool
	Address   uint16
	HasAddr   bool
}

func decodeFields(opcode byte) (typ, dest, src byte) {
	return (opcode & 0xc0) >> 6, (opcode & 0x38) >> 3, opcode & 0x07
}

// flagIndex folds a destination-field flag selector (0-7) to the flag index
// (0-3) it names, per spec: values 0..3 select the flag directly with an
// inverted test, 4..7 select the same flag with a direct test.
func flagIndex(dest byte) byte {
	if dest >= 4 {
		return dest - 4
	}
	return dest
}

// fetchInstruction decodes the opcode at the current program counter,
// consuming 1-3 bytes from memory. It returns ok=false if the opcode (or
// any trailing immediate/address byte it requires) lies past the end of
// memory.
func (c *Cpu) fetchInstruction() (Instruction, bool) {
	opcode, ok := c.nextByte()
	if !ok {
		return Instruction{}, false
	}

	inst := Instruction{Opcode: opcode}
	typ, dest, src := decodeFields(opcode)

	switch {
	case typ == 0 && src == 6:
		inst.Kind = LoadImm
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 3 && dest == 0 && src == 0:
		inst.Kind = Nop

	case typ == 3 && dest == 7 && src == 7:
		inst.Kind = Halt

	case typ == 3:
		inst.Kind = Load

	case typ == 0 && dest == 0 && src == 4:
		inst.Kind = AddImm
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 2 && dest == 0:
		inst.Kind = Add

	case typ == 0 && dest == 1 && src == 4:
		inst.Kind = AddImmCarry
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 2 && dest == 1:
		inst.Kind = AddCarry

	case typ == 0 && dest == 2 && src == 4:
		inst.Kind = SubImm
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 2 && dest == 2:
		inst.Kind = Sub

	case typ == 0 && dest == 3 && src == 4:
		inst.Kind = SubImmBorrow
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 2 && dest == 3:
		inst.Kind = SubBorrow

	case typ == 0 && dest == 4 && src == 4:
		inst.Kind = AndImm
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 2 && dest == 4:
		inst.Kind = And

	case typ == 0 && dest == 6 && src == 4:
		inst.Kind = OrImm
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 2 && dest == 6:
		inst.Kind = Or

	case typ == 0 && dest == 5 && src == 4:
		inst.Kind = XorImm
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 2 && dest == 5:
		inst.Kind = Xor

	case typ == 0 && dest == 7 && src == 4:
		inst.Kind = CompImm
		imm, ok := c.nextByte()
		if !ok {
			return Instruction{}, false
		}
		inst.Immediate, inst.HasImm = imm, true

	case typ == 2 && dest == 7:
		inst.Kind = Comp

	case typ == 1 && dest == 0 && src == 4:
		inst.Kind = Jump
		addr, ok := c.next16()
		if !ok {
			return Instruction{}, false
		}
		inst.Address, inst.HasAddr = addr, true

	case typ == 1 && dest >= 4 && src == 0:
		inst.Kind = JumpIf
		addr, ok := c.next16()
		if !ok {
			return Instruction{}, false
		}
		inst.Address, inst.HasAddr = addr, true

	case typ == 1 && src == 0:
		inst.Kind = JumpIfNot
		addr, ok := c.next16()
		if !ok {
			return Instruction{}, false
		}
		inst.Address, inst.HasAddr = addr, true

	case typ == 1 && dest == 0 && src == 6:
		inst.Kind = Call
		addr, ok := c.next16()
		if !ok {
			return Instruction{}, false
		}
		inst.Address, inst.HasAddr = addr, true

	case typ == 1 && dest >= 4 && src == 2:
		inst.Kind = CallIf
		addr, ok := c.next16()
		if !ok {
			return Instruction{}, false
		}
		inst.Address, inst.HasAddr = addr, true

	case typ == 1 && src == 2:
		inst.Kind = CallIfNot
		addr, ok := c.next16()
		if !ok {
			return Instruction{}, false
		}
		inst.Address, inst.HasAddr = addr, true

	case typ == 0 && dest == 0 && src == 7:
		inst.Kind = Return

	case typ == 0 && dest >= 4 && src == 3:
		inst.Kind = ReturnIf

	case typ == 0 && src == 3:
		inst.Kind = ReturnIfNot

	case typ == 0 && dest == 1 && src == 2:
		inst.Kind = ShiftRight

	case typ == 0 && dest == 0 && src == 2:
		inst.Kind = ShiftLeft

	case typ == 0 && dest == 0 && src == 0:
		inst.Kind = Halt

	case typ == 0 && dest == 0 && src == 1:
		inst.Kind = Halt

	case typ == 1 && dest == 0 && src == 1:
		inst.Kind = Input

	case typ == 0 && dest == 6 && src == 0:
		inst.Kind = Pop

	case typ == 0 && dest == 7 && src == 0:
		inst.Kind = Push

	case typ == 0 && dest == 5 && src == 0:
		inst.Kind = EnableIntr

	case typ == 0 && dest == 4 && src == 0:
		inst.Kind = DisableInts

	case typ == 0 && dest == 3 && src == 0:
		inst.Kind = SelectAlpha

	case typ == 0 && dest == 2 && src == 0:
		inst.Kind = SelectBeta

	default:
		if kind, ok := exOpcodes[opcode]; ok {
			inst.Kind = kind
		} else {
			inst.Kind = Unknown
		}
	}

	return inst, true
}

// cycles returns the instruction's cycle cost, charged to the clock before
// execution (see machine.go).
func (inst Instruction) cycles() uint64 {
	switch inst.Kind {
	case Unknown, Halt:
		return 0
	case LoadImm, Load:
		return 2
	case AddImm, AddImmCarry, SubImm, SubImmBorrow, AndImm, OrImm, XorImm, CompImm:
		return 3
	case Add, AddCarry, Sub, SubBorrow, And, Or, Xor, Comp:
		return 2
	case Jump, JumpIf, JumpIfNot, Call, CallIf, CallIfNot:
		return 4
	case Return, ReturnIf, ReturnIfNot:
		return 2
	case ShiftRight, ShiftLeft:
		return 2
	case Nop:
		return 2
	case Input:
		return 6
	case Pop:
		return 3
	case Push:
		return 2
	case EnableIntr, DisableInts, SelectAlpha, SelectBeta:
		return 2
	default:
		// Every Ex command (Adr, Status, Data, Write, Com1-4, Beep, Click,
		// Deck1, Deck2, Rbk, Wbk, Bsp, Sf, Sb, Rewind, Tstop).
		return 6
	}
}
