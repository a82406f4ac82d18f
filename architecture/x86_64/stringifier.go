package x86_64

import (
	"fmt"
	"strings"
)

// Stringify renders one instruction record as Intel-syntax assembly text,
// e.g. "mov rax, 0x2a" or "lea rax, [rax+rdx*2+0x64]". It is purely
// cosmetic: it never consults the encoding table and never fails, since
// every Operand value is printable regardless of whether any Form would
// accept it.
func Stringify(ins Insn) string {
	if len(ins.Operands) == 0 {
		return strings.ToLower(string(ins.Mnemonic))
	}
	parts := make([]string, 0, len(ins.Operands))
	for _, o := range ins.Operands {
		parts = append(parts, stringifyOperand(o))
	}
	return fmt.Sprintf("%s %s", strings.ToLower(string(ins.Mnemonic)), strings.Join(parts, ", "))
}

func stringifyOperand(o Operand) string {
	switch o.Kind {
	case KindNone:
		return ""
	case KindRegister:
		return o.Reg.Name
	case KindImmediate:
		return stringifyImmediate(o)
	case KindMemory:
		return stringifyMemory(o.Mem)
	case KindRelative:
		return stringifyRel(o.RelDelta)
	case KindPrefixHint:
		if o.Prefix == PREF66 {
			return "pref66"
		}
		return "rex.w"
	default:
		return "?"
	}
}

func stringifyImmediate(o Operand) string {
	if o.ImmValue == 0 {
		return "0x0"
	}
	v := int64(o.ImmValue)
	if v < 0 {
		return fmt.Sprintf("-0x%x", -v)
	}
	return fmt.Sprintf("0x%x", v)
}

// stringifyRel renders an instruction-relative delta the way a reader of
// the generated listing can check by eye: "$" for self, "$+k"/"$-k"
// otherwise.
func stringifyRel(k int) string {
	switch {
	case k == 0:
		return "$"
	case k > 0:
		return fmt.Sprintf("$+%d", k)
	default:
		return fmt.Sprintf("$%d", k)
	}
}

func sizeKeyword(bits int) string {
	switch bits {
	case 8:
		return "byte"
	case 16:
		return "word"
	case 32:
		return "dword"
	case 64:
		return "qword"
	case 128:
		return "xmmword"
	case 256:
		return "ymmword"
	case 512:
		return "zmmword"
	default:
		return ""
	}
}

func stringifyMemory(m Memory) string {
	var b strings.Builder
	if kw := sizeKeyword(m.ExplicitSize); kw != "" {
		b.WriteString(kw)
		b.WriteString(" ptr ")
	}
	if m.HasSeg {
		b.WriteString(m.Segment.Name)
		b.WriteString(":")
	}
	b.WriteString("[")
	switch m.BaseKind {
	case MemBaseRIP:
		b.WriteString(signedHex("rip", int64(m.Disp)))
	case MemBaseRIPREL:
		b.WriteString(stringifyRel(int(m.Disp)))
	default:
		first := true
		if m.BaseKind == MemBaseReg {
			b.WriteString(m.Base.Name)
			first = false
		}
		if m.HasIndex {
			if !first {
				b.WriteString("+")
			}
			b.WriteString(m.Index.Name)
			if m.Scale > 1 {
				b.WriteString(fmt.Sprintf("*%d", m.Scale))
			}
			first = false
		}
		if m.Disp != 0 || first {
			b.WriteString(signedHexDisp(m.Disp, first))
		}
	}
	b.WriteString("]")
	return b.String()
}

func signedHex(base string, disp int64) string {
	if disp == 0 {
		return base
	}
	if disp > 0 {
		return fmt.Sprintf("%s+0x%x", base, disp)
	}
	return fmt.Sprintf("%s-0x%x", base, -disp)
}

func signedHexDisp(disp int32, isOnly bool) string {
	if isOnly {
		return fmt.Sprintf("0x%x", uint32(disp))
	}
	if disp >= 0 {
		return fmt.Sprintf("+0x%x", disp)
	}
	return fmt.Sprintf("-0x%x", -disp)
}
