package x86_64

import "github.com/keurnel/runasm/internal/asm"

// Form is one encodable shape of a mnemonic: a slot signature plus the
// opcode bytes and operand-role wiring the Byte Emitter needs to turn a
// matching operand list into machine code. Slot indices below (-1 meaning
// "absent") refer to positions in the instruction's operand list, not
// positions in Slots, since Slots always has one entry per declared
// operand and the two line up 1:1.
type Form struct {
	Slots    []ShapeTag
	FixedReg map[int]Register // slot index -> exact register required, if any

	Opcode    []byte
	OpcodeReg bool // add (register encoding & 7) to the last opcode byte

	ModRM      bool
	ModRMDigit int // fixed opcode-extension digit, used when RegSlot < 0
	RegSlot    int // slot supplying ModRM.reg, or -1
	RMSlot     int // slot supplying ModRM.rm (register or memory), or -1

	ImmSlot  int // slot supplying the immediate, or -1
	ImmWidth int // bytes actually emitted: 1, 2, 4, or 8

	RelSlot  int // slot supplying the relative target, or -1
	RelWidth int // 1 or 4

	MandatoryPrefix byte // 0x66/0xF2/0xF3 SSE mandatory prefix, 0 if none
	REXW            bool // force REX.W / VEX.W regardless of operand size

	Encoding asm.InstructionEncoding
	VexL     bool
	VexPP    byte
	VexMM    byte
	VexVVVVSlot int // slot whose register encodes in VEX.vvvv, or -1
}

// noSlot marks an absent slot reference in a Form literal.
const noSlot = -1

// Instruction is a mnemonic's full catalog entry: every Form the Variant
// Selector is allowed to consider for it.
type Instruction struct {
	Mnemonic Mnemonic
	Forms    []Form
}

// aluGroup returns the 15 canonical forms (r/m,r; r,r/m; r/m,imm; and
// sign-extended r/m,imm8) of one of the eight legacy ALU instructions
// (ADD/OR/ADC/SBB/AND/SUB/XOR/CMP), parameterized by the opcode group's
// base byte and its group-1 opcode-extension digit. This is the same
// table-compaction idiom the teacher's instructions.go used per-mnemonic,
// generalized because every ALU mnemonic shares this exact shape.
func aluGroup(base byte, digit int) []Form {
	return []Form{
		{Slots: []ShapeTag{ShapeRM8, ShapeR8}, Opcode: []byte{base + 0x00}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM16, ShapeR16}, Opcode: []byte{base + 0x01}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeR32}, Opcode: []byte{base + 0x01}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeR64}, Opcode: []byte{base + 0x01}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeR8, ShapeRM8}, Opcode: []byte{base + 0x02}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR16, ShapeRM16}, Opcode: []byte{base + 0x03}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR32, ShapeRM32}, Opcode: []byte{base + 0x03}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR64, ShapeRM64}, Opcode: []byte{base + 0x03}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeRM8, ShapeImm8}, Opcode: []byte{0x80}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM16, ShapeImm16}, Opcode: []byte{0x81}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 2, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeImm32}, Opcode: []byte{0x81}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 4, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeImm32}, Opcode: []byte{0x81}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 4, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeRM16, ShapeImm8}, Opcode: []byte{0x83}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeImm8}, Opcode: []byte{0x83}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeImm8}, Opcode: []byte{0x83}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot, REXW: true},
	}
}

// unaryGroup3 returns the r/m8/16/32/64 forms of a group-3/group-5 unary
// instruction selected purely by ModRM opcode-extension digit (NOT, NEG,
// MUL, IMUL (one-operand), DIV, IDIV share opcodes 0xF6/0xF7; INC/DEC
// share 0xFE/0xFF).
func unaryGroup3(opcode8, opcode32 byte, digit int) []Form {
	return []Form{
		{Slots: []ShapeTag{ShapeRM8}, Opcode: []byte{opcode8}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM16}, Opcode: []byte{opcode32}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32}, Opcode: []byte{opcode32}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64}, Opcode: []byte{opcode32}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	}
}

// shiftGroup returns the r/m8/32/64 forms with an imm8 count (C0/C1) and
// with a CL count (D2/D3) of a group-2 shift/rotate instruction
// (opcode-extension digit distinguishes SHL from SHR/SAR/ROL/ROR). There
// is no dedicated shift-by-one (D0/D1) form and no r/m16 form.
func shiftGroup(digit int) []Form {
	cl := map[int]Register{1: CL}
	return []Form{
		{Slots: []ShapeTag{ShapeRM8, ShapeImm8}, Opcode: []byte{0xC0}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeImm8}, Opcode: []byte{0xC1}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeImm8}, Opcode: []byte{0xC1}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeRM8, ShapeR8}, FixedReg: cl, Opcode: []byte{0xD2}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeR8}, FixedReg: cl, Opcode: []byte{0xD3}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeR8}, FixedReg: cl, Opcode: []byte{0xD3}, ModRM: true, ModRMDigit: digit, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	}
}

// jcc returns the rel8/rel32 pair every conditional jump shares, varying
// only the Jcc condition nibble baked into the two opcodes.
func jcc(tttn byte) []Form {
	return []Form{
		{Slots: []ShapeTag{ShapeRel8}, Opcode: []byte{0x70 + tttn}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: 0, RelWidth: 1},
		{Slots: []ShapeTag{ShapeRel32}, Opcode: []byte{0x0F, 0x80 + tttn}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: 0, RelWidth: 4},
	}
}

// Table is the single static Encoding Table: every mnemonic this
// catalog knows how to assemble, with every Form the selector may match.
var Table = map[Mnemonic]Instruction{
	MOV: {Mnemonic: MOV, Forms: []Form{
		{Slots: []ShapeTag{ShapeRM8, ShapeR8}, Opcode: []byte{0x88}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM16, ShapeR16}, Opcode: []byte{0x89}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeR32}, Opcode: []byte{0x89}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeR64}, Opcode: []byte{0x89}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeR8, ShapeRM8}, Opcode: []byte{0x8A}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR16, ShapeRM16}, Opcode: []byte{0x8B}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR32, ShapeRM32}, Opcode: []byte{0x8B}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR64, ShapeRM64}, Opcode: []byte{0x8B}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeR8, ShapeImm8}, Opcode: []byte{0xB0}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR16, ShapeImm16}, Opcode: []byte{0xB8}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: 1, ImmWidth: 2, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR32, ShapeImm32}, Opcode: []byte{0xB8}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: 1, ImmWidth: 4, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR64, ShapeImm64}, Opcode: []byte{0xB8}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: 1, ImmWidth: 8, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeR64, ShapeImm32}, Opcode: []byte{0xC7}, ModRM: true, ModRMDigit: 0, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 4, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeRM8, ShapeImm8}, Opcode: []byte{0xC6}, ModRM: true, ModRMDigit: 0, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeImm32}, Opcode: []byte{0xC7}, ModRM: true, ModRMDigit: 0, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 4, RelSlot: noSlot},
	}},

	MOVZX: {Mnemonic: MOVZX, Forms: []Form{
		{Slots: []ShapeTag{ShapeR32, ShapeRM8}, Opcode: []byte{0x0F, 0xB6}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR64, ShapeRM8}, Opcode: []byte{0x0F, 0xB6}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeR32, ShapeRM16}, Opcode: []byte{0x0F, 0xB7}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR64, ShapeRM16}, Opcode: []byte{0x0F, 0xB7}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	}},

	MOVSX: {Mnemonic: MOVSX, Forms: []Form{
		{Slots: []ShapeTag{ShapeR32, ShapeRM8}, Opcode: []byte{0x0F, 0xBE}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR64, ShapeRM8}, Opcode: []byte{0x0F, 0xBE}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeR32, ShapeRM16}, Opcode: []byte{0x0F, 0xBF}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR64, ShapeRM16}, Opcode: []byte{0x0F, 0xBF}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeR64, ShapeRM32}, Opcode: []byte{0x63}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	}},

	LEA: {Mnemonic: LEA, Forms: []Form{
		{Slots: []ShapeTag{ShapeR32, ShapeM}, Opcode: []byte{0x8D}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeR64, ShapeM}, Opcode: []byte{0x8D}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	}},

	PUSH: {Mnemonic: PUSH, Forms: []Form{
		{Slots: []ShapeTag{ShapeR64}, Opcode: []byte{0x50}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64}, Opcode: []byte{0xFF}, ModRM: true, ModRMDigit: 6, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeImm32}, Opcode: []byte{0x68}, RegSlot: noSlot, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: 0, ImmWidth: 4, RelSlot: noSlot},
	}},

	POP: {Mnemonic: POP, Forms: []Form{
		{Slots: []ShapeTag{ShapeR64}, Opcode: []byte{0x58}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64}, Opcode: []byte{0x8F}, ModRM: true, ModRMDigit: 0, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
	}},

	XCHG: {Mnemonic: XCHG, Forms: []Form{
		{Slots: []ShapeTag{ShapeRM8, ShapeR8}, Opcode: []byte{0x86}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeR32}, Opcode: []byte{0x87}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeR64}, Opcode: []byte{0x87}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	}},

	ADD:  {Mnemonic: ADD, Forms: aluGroup(0x00, 0)},
	OR:   {Mnemonic: OR, Forms: aluGroup(0x08, 1)},
	AND:  {Mnemonic: AND, Forms: aluGroup(0x20, 4)},
	SUB:  {Mnemonic: SUB, Forms: aluGroup(0x28, 5)},
	XOR:  {Mnemonic: XOR, Forms: aluGroup(0x30, 6)},
	CMP:  {Mnemonic: CMP, Forms: aluGroup(0x38, 7)},

	TEST: {Mnemonic: TEST, Forms: []Form{
		{Slots: []ShapeTag{ShapeRM8, ShapeImm8}, Opcode: []byte{0xF6}, ModRM: true, ModRMDigit: 0, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 1, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeImm32}, Opcode: []byte{0xF7}, ModRM: true, ModRMDigit: 0, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 4, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeImm32}, Opcode: []byte{0xF7}, ModRM: true, ModRMDigit: 0, RegSlot: noSlot, RMSlot: 0, ImmSlot: 1, ImmWidth: 4, RelSlot: noSlot, REXW: true},
		{Slots: []ShapeTag{ShapeRM8, ShapeR8}, Opcode: []byte{0x84}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM32, ShapeR32}, Opcode: []byte{0x85}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeRM64, ShapeR64}, Opcode: []byte{0x85}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	}},

	INC: {Mnemonic: INC, Forms: unaryGroup3(0xFE, 0xFF, 0)},
	DEC: {Mnemonic: DEC, Forms: unaryGroup3(0xFE, 0xFF, 1)},
	NOT: {Mnemonic: NOT, Forms: unaryGroup3(0xF6, 0xF7, 2)},
	NEG: {Mnemonic: NEG, Forms: unaryGroup3(0xF6, 0xF7, 3)},
	MUL: {Mnemonic: MUL, Forms: unaryGroup3(0xF6, 0xF7, 4)},
	IMUL: {Mnemonic: IMUL, Forms: append(unaryGroup3(0xF6, 0xF7, 5),
		Form{Slots: []ShapeTag{ShapeR32, ShapeRM32}, Opcode: []byte{0x0F, 0xAF}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		Form{Slots: []ShapeTag{ShapeR64, ShapeRM64}, Opcode: []byte{0x0F, 0xAF}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	)},
	DIV:  {Mnemonic: DIV, Forms: unaryGroup3(0xF6, 0xF7, 6)},
	IDIV: {Mnemonic: IDIV, Forms: unaryGroup3(0xF6, 0xF7, 7)},

	SHL: {Mnemonic: SHL, Forms: shiftGroup(4)},
	SHR: {Mnemonic: SHR, Forms: shiftGroup(5)},
	SAR: {Mnemonic: SAR, Forms: shiftGroup(7)},
	ROL: {Mnemonic: ROL, Forms: shiftGroup(0)},
	ROR: {Mnemonic: ROR, Forms: shiftGroup(1)},

	JMP: {Mnemonic: JMP, Forms: []Form{
		{Slots: []ShapeTag{ShapeRel8}, Opcode: []byte{0xEB}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: 0, RelWidth: 1},
		{Slots: []ShapeTag{ShapeRel32}, Opcode: []byte{0xE9}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: 0, RelWidth: 4},
		{Slots: []ShapeTag{ShapeRM64}, Opcode: []byte{0xFF}, ModRM: true, ModRMDigit: 4, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
	}},

	JE:  {Mnemonic: JE, Forms: jcc(0x4)},
	JZ:  {Mnemonic: JZ, Forms: jcc(0x4)},
	JNE: {Mnemonic: JNE, Forms: jcc(0x5)},
	JNZ: {Mnemonic: JNZ, Forms: jcc(0x5)},
	JG:  {Mnemonic: JG, Forms: jcc(0xF)},
	JGE: {Mnemonic: JGE, Forms: jcc(0xD)},
	JL:  {Mnemonic: JL, Forms: jcc(0xC)},
	JLE: {Mnemonic: JLE, Forms: jcc(0xE)},
	JA:  {Mnemonic: JA, Forms: jcc(0x7)},
	JAE: {Mnemonic: JAE, Forms: jcc(0x3)},
	JB:  {Mnemonic: JB, Forms: jcc(0x2)},
	JBE: {Mnemonic: JBE, Forms: jcc(0x6)},

	CALL: {Mnemonic: CALL, Forms: []Form{
		{Slots: []ShapeTag{ShapeRel32}, Opcode: []byte{0xE8}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: 0, RelWidth: 4},
		{Slots: []ShapeTag{ShapeRM64}, Opcode: []byte{0xFF}, ModRM: true, ModRMDigit: 2, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
	}},

	RET: {Mnemonic: RET, Forms: []Form{
		{Slots: []ShapeTag{}, Opcode: []byte{0xC3}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeImm16}, Opcode: []byte{0xC2}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: 0, ImmWidth: 2, RelSlot: noSlot},
	}},

	NOP:     {Mnemonic: NOP, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x90}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	HLT:     {Mnemonic: HLT, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0xF4}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	SYSCALL: {Mnemonic: SYSCALL, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x0F, 0x05}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	SYSRET:  {Mnemonic: SYSRET, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x0F, 0x07}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	IRET:    {Mnemonic: IRET, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0xCF}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	CPUID:   {Mnemonic: CPUID, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x0F, 0xA2}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	RDTSC:   {Mnemonic: RDTSC, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x0F, 0x31}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	CDQ:     {Mnemonic: CDQ, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x99}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	CQO:     {Mnemonic: CQO, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x99}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true}}},
	PUSHFQ:  {Mnemonic: PUSHFQ, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x9C}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},
	POPFQ:   {Mnemonic: POPFQ, Forms: []Form{{Slots: []ShapeTag{}, Opcode: []byte{0x9D}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: noSlot, RelSlot: noSlot}}},

	INT: {Mnemonic: INT, Forms: []Form{
		{Slots: []ShapeTag{ShapeImm8}, Opcode: []byte{0xCD}, RegSlot: noSlot, RMSlot: noSlot, ImmSlot: 0, ImmWidth: 1, RelSlot: noSlot},
	}},

	MOVQ: {Mnemonic: MOVQ, Forms: []Form{
		{Slots: []ShapeTag{ShapeXMM, ShapeRM64}, Opcode: []byte{0x0F, 0x6E}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, MandatoryPrefix: 0x66, REXW: true},
		{Slots: []ShapeTag{ShapeRM64, ShapeXMM}, Opcode: []byte{0x0F, 0x7E}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, MandatoryPrefix: 0x66, REXW: true},
		{Slots: []ShapeTag{ShapeMMX, ShapeRM64}, Opcode: []byte{0x0F, 0x6E}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, REXW: true},
	}},

	MOVAPS: {Mnemonic: MOVAPS, Forms: []Form{
		{Slots: []ShapeTag{ShapeXMM, ShapeXMM}, Opcode: []byte{0x0F, 0x28}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeXMM, ShapeM128}, Opcode: []byte{0x0F, 0x28}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeM128, ShapeXMM}, Opcode: []byte{0x0F, 0x29}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
	}},

	ADDPS: {Mnemonic: ADDPS, Forms: []Form{
		{Slots: []ShapeTag{ShapeXMM, ShapeXMM}, Opcode: []byte{0x0F, 0x58}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeXMM, ShapeM128}, Opcode: []byte{0x0F, 0x58}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
	}},

	VMOVAPS: {Mnemonic: VMOVAPS, Forms: []Form{
		{Slots: []ShapeTag{ShapeXMM, ShapeXMM}, Opcode: []byte{0x28}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, Encoding: EncodingVEX, VexPP: 0, VexMM: 1, VexVVVVSlot: noSlot},
		{Slots: []ShapeTag{ShapeYMM, ShapeYMM}, Opcode: []byte{0x28}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, Encoding: EncodingVEX, VexPP: 0, VexMM: 1, VexL: true, VexVVVVSlot: noSlot},
	}},

	VADDPS: {Mnemonic: VADDPS, Forms: []Form{
		{Slots: []ShapeTag{ShapeXMM, ShapeXMM, ShapeXMM}, Opcode: []byte{0x58}, ModRM: true, RegSlot: 0, RMSlot: 2, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, Encoding: EncodingVEX, VexPP: 0, VexMM: 1, VexVVVVSlot: 1},
		{Slots: []ShapeTag{ShapeYMM, ShapeYMM, ShapeYMM}, Opcode: []byte{0x58}, ModRM: true, RegSlot: 0, RMSlot: 2, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot, Encoding: EncodingVEX, VexPP: 0, VexMM: 1, VexL: true, VexVVVVSlot: 1},
	}},

	FLD: {Mnemonic: FLD, Forms: []Form{
		{Slots: []ShapeTag{ShapeM64}, Opcode: []byte{0xDD}, ModRM: true, ModRMDigit: 0, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeST}, Opcode: []byte{0xD9, 0xC0}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
	}},
	FSTP: {Mnemonic: FSTP, Forms: []Form{
		{Slots: []ShapeTag{ShapeM64}, Opcode: []byte{0xDD}, ModRM: true, ModRMDigit: 3, RegSlot: noSlot, RMSlot: 0, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeST}, Opcode: []byte{0xDD, 0xD8}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
	}},
	FXCH: {Mnemonic: FXCH, Forms: []Form{
		{Slots: []ShapeTag{ShapeST}, Opcode: []byte{0xD9, 0xC8}, OpcodeReg: true, RegSlot: 0, RMSlot: noSlot, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
	}},

	MOVSEG: {Mnemonic: MOVSEG, Forms: []Form{
		{Slots: []ShapeTag{ShapeRM16, ShapeSeg}, Opcode: []byte{0x8C}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeSeg, ShapeRM16}, Opcode: []byte{0x8E}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
	}},
	MOVCR: {Mnemonic: MOVCR, Forms: []Form{
		{Slots: []ShapeTag{ShapeR64, ShapeCR}, Opcode: []byte{0x0F, 0x20}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeCR, ShapeR64}, Opcode: []byte{0x0F, 0x22}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
	}},
	MOVDR: {Mnemonic: MOVDR, Forms: []Form{
		{Slots: []ShapeTag{ShapeR64, ShapeDR}, Opcode: []byte{0x0F, 0x21}, ModRM: true, RegSlot: 1, RMSlot: 0, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
		{Slots: []ShapeTag{ShapeDR, ShapeR64}, Opcode: []byte{0x0F, 0x23}, ModRM: true, RegSlot: 0, RMSlot: 1, ModRMDigit: noSlot, ImmSlot: noSlot, RelSlot: noSlot},
	}},
}
