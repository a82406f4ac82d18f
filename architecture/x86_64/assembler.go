package x86_64

import (
	"regexp"
	"strings"

	"github.com/keurnel/runasm/internal/asm"
)

// Assembler adapts the package's Mnemonic/Operand/Table engine to the
// generic asm.Architecture interface the cmd/cli layer and the rest of
// the Architecture-agnostic teacher scaffolding were written against.
type Assembler struct {
	rawSource string
}

var _ asm.Architecture = (*Assembler)(nil)

// New returns a new x86_64 Assembler. rawSource is retained only for
// RawSource(); it plays no role in the programmatic record-based API.
func New(rawSource string) *Assembler {
	return &Assembler{rawSource: rawSource}
}

// ArchitectureName returns the name of the architecture.
func (a *Assembler) ArchitectureName() string {
	return "x86_64"
}

// Directives returns the assembler directives this architecture recognizes.
// The programmatic record-based API has no textual preprocessor, so there
// are none.
func (a *Assembler) Directives() []string {
	return nil
}

// IsDirective always reports false: the record-based API never sees source
// lines to classify.
func (a *Assembler) IsDirective(line string) bool {
	return false
}

// Instructions projects the package's Encoding Table into the generic
// asm.Instruction shape the Architecture interface exposes.
func (a *Assembler) Instructions() map[string]asm.Instruction {
	out := make(map[string]asm.Instruction, len(Table))
	for mnemonic, instr := range Table {
		forms := make([]asm.InstructionForm, 0, len(instr.Forms))
		for _, f := range instr.Forms {
			operands := make([]asm.OperandType, 0, len(f.Slots))
			for _, s := range f.Slots {
				operands = append(operands, shapeToOperandType(s))
			}
			var rex byte
			if f.REXW {
				rex = instructionPrefixREXByte
			}
			forms = append(forms, asm.InstructionForm{
				Operands:  operands,
				Opcode:    f.Opcode,
				ModRM:     f.ModRM,
				Imm:       f.ImmSlot >= 0,
				Encoding:  f.Encoding,
				REXPrefix: rex,
			})
		}
		out[string(mnemonic)] = asm.Instruction{Mnemonic: string(mnemonic), Forms: forms}
	}
	return out
}

// instructionPrefixREXByte is the nominal REX byte (W set, no R/X/B)
// reported for forms that force REX.W, matching instruction_prefix.go's
// PrefixREX constant's intent without depending on any particular
// register's extension bits (which the generic asm.InstructionForm has
// no room to express per-operand).
const instructionPrefixREXByte = 0x48

func shapeToOperandType(s ShapeTag) asm.OperandType {
	switch s {
	case ShapeR8, ShapeR8H:
		return OperandReg8
	case ShapeR16:
		return OperandReg16
	case ShapeR32:
		return OperandReg32
	case ShapeR64:
		return OperandReg64
	case ShapeRM8:
		return OperandRegMem8
	case ShapeRM16:
		return OperandRegMem16
	case ShapeRM32:
		return OperandRegMem32
	case ShapeRM64:
		return OperandRegMem64
	case ShapeM, ShapeM128, ShapeM256, ShapeM512:
		return OperandMem
	case ShapeM8:
		return OperandMem8
	case ShapeM16:
		return OperandMem16
	case ShapeM32:
		return OperandMem32
	case ShapeM64:
		return OperandMem64
	case ShapeImm8:
		return OperandImm8
	case ShapeImm16:
		return OperandImm16
	case ShapeImm32:
		return OperandImm32
	case ShapeImm64:
		return OperandImm64
	case ShapeRel8:
		return OperandRel8
	case ShapeRel32:
		return OperandRel32
	default:
		return OperandNone
	}
}

// IsInstruction reports whether mnemonic (case-sensitive, upper-case) is a
// recognized entry in the Encoding Table.
func (a *Assembler) IsInstruction(mnemonic string) bool {
	_, ok := Table[Mnemonic(mnemonic)]
	return ok
}

// RegisterSet returns every register name this architecture knows, in the
// canonical lower-case form the stringifier prints.
func (a *Assembler) RegisterSet() []string {
	names := make([]string, 0, len(RegistersByName))
	for name := range RegistersByName {
		names = append(names, name)
	}
	return names
}

// IsRegister reports whether name (case-insensitive) is a known register.
func (a *Assembler) IsRegister(name string) bool {
	_, ok := RegistersByName[strings.ToLower(name)]
	return ok
}

var (
	immediatePattern = regexp.MustCompile(`^-?(0[xX][0-9a-fA-F]+|[0-9]+)$`)
	memoryPattern    = regexp.MustCompile(`^\[[^\[\]]+\]$`)
)

// IsOperand reports whether text parses as some syntactically valid
// operand: a known register name, a bracketed memory reference, or a
// decimal/hex immediate literal. It is a lightweight text classifier for
// CLI/REPL front-ends; it does not by itself guarantee any mnemonic will
// accept the resulting Operand.
func (a *Assembler) IsOperand(text string) bool {
	if a.IsRegister(text) {
		return true
	}
	if memoryPattern.MatchString(text) {
		return true
	}
	return immediatePattern.MatchString(text)
}

// OperandTypes returns every generic operand-type descriptor the
// architecture's forms can declare.
func (a *Assembler) OperandTypes() []asm.OperandType {
	return []asm.OperandType{
		OperandNone,
		OperandReg8, OperandReg16, OperandReg32, OperandReg64,
		OperandImm8, OperandImm16, OperandImm32, OperandImm64,
		OperandMem, OperandMem8, OperandMem16, OperandMem32, OperandMem64,
		OperandRel8, OperandRel32,
		OperandRegMem8, OperandRegMem16, OperandRegMem32, OperandRegMem64,
	}
}

// OperandCounts returns the valid operand-count arities for the
// architecture (unary through three-operand VEX forms).
func (a *Assembler) OperandCounts() []int {
	return []int{OperandCountOne, OperandCountTwo, OperandCountThree}
}

// IsValidOperandCount reports whether count falls within the arities the
// Encoding Table actually uses (0 for no-operand forms through 3).
func (a *Assembler) IsValidOperandCount(count int) bool {
	return count >= 0 && count <= OperandCountThree
}

// SourceOperandSupportsDestination reports whether a value of sourceType
// can be moved into a slot of destType, the coarse move-compatibility
// rule the generic Architecture interface exposes: the source may be no
// wider than a sized destination; a register or register/memory
// destination accepts a register, immediate or memory source, and a memory
// destination accepts a register or immediate source.
func (a *Assembler) SourceOperandSupportsDestination(sourceType, destType asm.OperandType) bool {
	if destType.Size != 0 && sourceType.Size > destType.Size {
		return false
	}
	if destType.Type == "register" || destType.Type == "register/memory" {
		return sourceType.Type == "register" || sourceType.Type == "immediate" || sourceType.Type == "memory"
	}
	if destType.Type == "memory" {
		return sourceType.Type == "register" || sourceType.Type == "immediate"
	}
	return false
}

// Is8BitInstruction reports whether every sized operand of every form of
// instr declares an 8-bit operand type (operand types with no size are
// ignored).
func (a *Assembler) Is8BitInstruction(instr asm.Instruction) bool {
	if len(instr.Forms) == 0 {
		return false
	}
	for _, form := range instr.Forms {
		for _, op := range form.Operands {
			if op.Size != 0 && op.Size != 8 {
				return false
			}
		}
	}
	return true
}

// RawSource returns the raw source text the Assembler was constructed
// with, if any. The programmatic record-based API never consults it.
func (a *Assembler) RawSource() string {
	return a.rawSource
}
