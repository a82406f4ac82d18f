package x86_64

// ShapeTag is the per-slot compatibility tag the Variant Selector matches
// against a Variant's declared slot shapes. An operand can satisfy more
// than one tag (an auto-width immediate fans out to every width it still
// fits in; unsized memory matches every memory size the mnemonic offers).
type ShapeTag string

const (
	ShapeNone ShapeTag = "none"

	ShapeR8  ShapeTag = "r8"
	ShapeR8H ShapeTag = "r8h" // AH/BH/CH/DH: forbids REX on the encoding
	ShapeR16 ShapeTag = "r16"
	ShapeR32 ShapeTag = "r32"
	ShapeR64 ShapeTag = "r64"

	ShapeRM8  ShapeTag = "rm8"
	ShapeRM16 ShapeTag = "rm16"
	ShapeRM32 ShapeTag = "rm32"
	ShapeRM64 ShapeTag = "rm64"

	ShapeM    ShapeTag = "m" // unsized memory, any size
	ShapeM8   ShapeTag = "m8"
	ShapeM16  ShapeTag = "m16"
	ShapeM32  ShapeTag = "m32"
	ShapeM64  ShapeTag = "m64"
	ShapeM128 ShapeTag = "m128"
	ShapeM256 ShapeTag = "m256"
	ShapeM512 ShapeTag = "m512"

	ShapeImm8  ShapeTag = "imm8"
	ShapeImm16 ShapeTag = "imm16"
	ShapeImm32 ShapeTag = "imm32"
	ShapeImm64 ShapeTag = "imm64"

	ShapeRel8  ShapeTag = "rel8"
	ShapeRel32 ShapeTag = "rel32"

	ShapeMMX ShapeTag = "mmx"
	ShapeXMM ShapeTag = "xmm"
	ShapeYMM ShapeTag = "ymm"
	ShapeZMM ShapeTag = "zmm"
	ShapeST  ShapeTag = "st"
	ShapeSeg ShapeTag = "sreg"
	ShapeCR  ShapeTag = "creg"
	ShapeDR  ShapeTag = "dreg"

	ShapePref66    ShapeTag = "pref66"
	ShapePrefREXW  ShapeTag = "prefrexw"
)

// registerShapeTags maps a Register's Type to the two tags it satisfies:
// the bare register tag (r8/r16/...) and the combined register-or-memory
// tag (rm8/rm16/...) used by variants whose r/m slot accepts either.
func registerShapeTags(r Register) []ShapeTag {
	switch r.Type {
	case Register8:
		return []ShapeTag{ShapeR8, ShapeRM8}
	case Register8High:
		return []ShapeTag{ShapeR8H, ShapeR8, ShapeRM8}
	case Register16:
		return []ShapeTag{ShapeR16, ShapeRM16}
	case Register32:
		return []ShapeTag{ShapeR32, ShapeRM32}
	case Register64:
		return []ShapeTag{ShapeR64, ShapeRM64}
	case RegisterMMX:
		return []ShapeTag{ShapeMMX}
	case RegisterXMM:
		return []ShapeTag{ShapeXMM}
	case RegisterYMM:
		return []ShapeTag{ShapeYMM}
	case RegisterZMM:
		return []ShapeTag{ShapeZMM}
	case RegisterSegment:
		return []ShapeTag{ShapeSeg}
	case RegisterControl:
		return []ShapeTag{ShapeCR}
	case RegisterDebug:
		return []ShapeTag{ShapeDR}
	case RegisterST:
		return []ShapeTag{ShapeST}
	default:
		return nil
	}
}

// memShapeTags returns the tags an (un)sized Memory operand satisfies.
// Unsized memory matches ShapeM plus every sized tag (memory and rm),
// letting the selector narrow it by whichever other slot in the variant
// pins a concrete size; explicitly sized memory matches only its own size
// (plus ShapeM).
func memShapeTags(m Memory) []ShapeTag {
	if m.ExplicitSize == 0 {
		return []ShapeTag{ShapeM, ShapeM8, ShapeM16, ShapeM32, ShapeM64, ShapeM128, ShapeM256, ShapeM512, ShapeRM8, ShapeRM16, ShapeRM32, ShapeRM64}
	}
	switch m.ExplicitSize {
	case 8:
		return []ShapeTag{ShapeM, ShapeM8, ShapeRM8}
	case 16:
		return []ShapeTag{ShapeM, ShapeM16, ShapeRM16}
	case 32:
		return []ShapeTag{ShapeM, ShapeM32, ShapeRM32}
	case 64:
		return []ShapeTag{ShapeM, ShapeM64, ShapeRM64}
	case 128:
		return []ShapeTag{ShapeM, ShapeM128}
	case 256:
		return []ShapeTag{ShapeM, ShapeM256}
	case 512:
		return []ShapeTag{ShapeM, ShapeM512}
	default:
		return []ShapeTag{ShapeM}
	}
}

// fitsSigned8/16/32 test whether a two's-complement 64-bit pattern is
// representable, sign-extended, in the given width.
func fitsSigned8(v uint64) bool {
	s := int64(v)
	return s >= -128 && s <= 127
}

func fitsSigned16(v uint64) bool {
	s := int64(v)
	return s >= -32768 && s <= 32767
}

func fitsSigned32(v uint64) bool {
	s := int64(v)
	return s >= -2147483648 && s <= 2147483647
}

// immShapeTags returns every immediate width tag the operand's value is
// still small enough to occupy. ImmAuto fans out to all that fit, widest
// last so callers scanning for the narrowest match find it first.
func immShapeTags(o Operand) []ShapeTag {
	switch o.ImmWidth {
	case Imm8:
		return []ShapeTag{ShapeImm8}
	case Imm16:
		return []ShapeTag{ShapeImm16}
	case Imm32:
		return []ShapeTag{ShapeImm32}
	case Imm64, ImmPtr:
		return []ShapeTag{ShapeImm64}
	default: // ImmAuto
		var tags []ShapeTag
		if fitsSigned8(o.ImmValue) {
			tags = append(tags, ShapeImm8)
		}
		if fitsSigned16(o.ImmValue) {
			tags = append(tags, ShapeImm16)
		}
		if fitsSigned32(o.ImmValue) {
			tags = append(tags, ShapeImm32)
		}
		tags = append(tags, ShapeImm64)
		return tags
	}
}

// Shapes returns every ShapeTag this operand can satisfy. The Variant
// Selector intersects this set against each candidate variant's declared
// slot shape and keeps the variant only if every slot has a match.
func (o Operand) Shapes() []ShapeTag {
	switch o.Kind {
	case KindNone:
		return []ShapeTag{ShapeNone}
	case KindRegister:
		return registerShapeTags(o.Reg)
	case KindImmediate:
		return immShapeTags(o)
	case KindMemory:
		return memShapeTags(o.Mem)
	case KindRelative:
		// The actual displacement isn't known until the linker lays out
		// every instruction, so both widths are candidates here; the
		// selector's size-minimization rule prefers rel8, and the linker
		// reports RelOutOfRange if the real displacement doesn't fit it.
		return []ShapeTag{ShapeRel8, ShapeRel32}
	case KindPrefixHint:
		if o.Prefix == PREF66 {
			return []ShapeTag{ShapePref66}
		}
		return []ShapeTag{ShapePrefREXW}
	default:
		return nil
	}
}

// matchesShape reports whether one of the operand's candidate shape tags
// equals the variant slot's required tag.
func matchesShape(o Operand, want ShapeTag) bool {
	for _, s := range o.Shapes() {
		if s == want {
			return true
		}
	}
	return false
}

// sizeOf returns the operand-size category in bits implied by a shape tag,
// used by the selector's size-minimization rule. 0 means "no size".
func sizeOf(tag ShapeTag) int {
	switch tag {
	case ShapeR8, ShapeR8H, ShapeRM8, ShapeM8, ShapeImm8, ShapeRel8:
		return 8
	case ShapeR16, ShapeRM16, ShapeM16, ShapeImm16:
		return 16
	case ShapeR32, ShapeRM32, ShapeM32, ShapeImm32, ShapeRel32:
		return 32
	case ShapeR64, ShapeRM64, ShapeM64, ShapeImm64:
		return 64
	case ShapeM128, ShapeXMM:
		return 128
	case ShapeM256, ShapeYMM:
		return 256
	case ShapeM512, ShapeZMM:
		return 512
	default:
		return 0
	}
}
