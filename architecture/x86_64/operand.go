package x86_64

// OperandKind identifies which variant of the Operand tagged union is
// populated. The zero value is KindNone, the sentinel for absent operands.
type OperandKind int

const (
	KindNone OperandKind = iota
	KindRegister
	KindImmediate
	KindMemory
	KindRelative
	KindPrefixHint
)

// ImmWidth is the declared width of an Immediate operand. Auto lets the
// emitter fan the operand out to every width it could legally occupy and
// lets the selector pick the smallest sufficient one.
type ImmWidth int

const (
	ImmAuto ImmWidth = iota
	Imm8
	Imm16
	Imm32
	Imm64
	ImmPtr
)

// PrefixHint forces an operand-size override or REX.W when the chosen
// encoding allows it. It is passed in the operand list, but the selector
// splits it off before slot matching, so it occupies no Form slot.
type PrefixHint int

const (
	PrefixHintNone PrefixHint = iota
	PREF66
	PREFREX_W
)

// MemBaseKind distinguishes a Memory operand's base: an ordinary register, no
// base at all, RIP-relative addressing with a caller-supplied displacement,
// or RIPREL, an instruction-relative reference the linker fills in.
type MemBaseKind int

const (
	MemBaseNone MemBaseKind = iota
	MemBaseReg
	MemBaseRIP
	MemBaseRIPREL
)

// Memory is the payload of a Memory operand: [base + index*scale + disp],
// with RIP-relative and instruction-relative (RIPREL) special bases.
type Memory struct {
	BaseKind MemBaseKind
	Base     Register // valid iff BaseKind == MemBaseReg
	Disp     int32
	Index    Register
	HasIndex bool
	Scale    byte // 1, 2, 4, or 8; anything else is silently folded to 1
	Segment  Register
	HasSeg   bool
	// ExplicitSize is the operand size in bits (8/16/32/64/128/256/512) when
	// the caller pins it with m8()..m512(), or 0 when unsized (plain mem()).
	ExplicitSize int
}

// Operand is the tagged union described by the data model: exactly one of
// its payload fields is meaningful, selected by Kind.
type Operand struct {
	Kind OperandKind

	Reg Register // KindRegister

	ImmWidth  ImmWidth // KindImmediate
	ImmValue  uint64   // KindImmediate, two's-complement bit pattern
	immSigned bool      // whether ImmValue was constructed from a signed literal

	Mem Memory // KindMemory

	RelDelta int // KindRelative: instruction-index delta, 0 = self

	Prefix PrefixHint // KindPrefixHint
}

// None is the sentinel operand for absent/unused slots.
var None = Operand{Kind: KindNone}

// Reg constructs a register operand. Passing the zero Register (index 0,
// type Register8) is indistinguishable from an explicit AL request at
// this layer — per the data model, callers must not rely on the zero value
// meaning "no register"; use None for that.
func Reg(r Register) Operand {
	return Operand{Kind: KindRegister, Reg: r}
}

// Imm constructs an auto-width immediate: the emitter/selector pick the
// smallest width the value fits.
func Imm(v int64) Operand {
	return Operand{Kind: KindImmediate, ImmWidth: ImmAuto, ImmValue: uint64(v), immSigned: true}
}

// ImmU constructs an auto-width immediate from an unsigned literal (needed
// for values that exceed int64 range as imm64, e.g. pointer constants).
func ImmU(v uint64) Operand {
	return Operand{Kind: KindImmediate, ImmWidth: ImmAuto, ImmValue: v}
}

func Im8(v int8) Operand  { return Operand{Kind: KindImmediate, ImmWidth: Imm8, ImmValue: uint64(uint8(v)), immSigned: true} }
func Im16(v int16) Operand { return Operand{Kind: KindImmediate, ImmWidth: Imm16, ImmValue: uint64(uint16(v)), immSigned: true} }
func Im32(v int32) Operand { return Operand{Kind: KindImmediate, ImmWidth: Imm32, ImmValue: uint64(uint32(v)), immSigned: true} }
func Im64(v int64) Operand { return Operand{Kind: KindImmediate, ImmWidth: Imm64, ImmValue: uint64(v), immSigned: true} }

// ImPtr constructs a pointer-width (64-bit) immediate, e.g. an absolute
// address baked in by MOV r64, imm64.
func ImPtr(v uint64) Operand {
	return Operand{Kind: KindImmediate, ImmWidth: ImmPtr, ImmValue: v}
}

// MemOption configures a Memory operand built by Mem.
type MemOption func(*Memory)

// Mem builds a Memory operand. All addressing fields are optional; the zero
// value of each option produces None/0 as appropriate.
func Mem(opts ...MemOption) Operand {
	m := Memory{Scale: 1}
	for _, opt := range opts {
		opt(&m)
	}
	if m.HasIndex && m.Scale != 1 && m.Scale != 2 && m.Scale != 4 && m.Scale != 8 {
		// Illegal scales fold to 1 (preserved source behavior).
		m.Scale = 1
	}
	return Operand{Kind: KindMemory, Mem: m}
}

func WithBase(r Register) MemOption {
	return func(m *Memory) { m.BaseKind = MemBaseReg; m.Base = r }
}

// WithRIP marks the memory operand as RIP-relative; disp is the caller's
// precomputed displacement from the end of the instruction.
func WithRIP(disp int32) MemOption {
	return func(m *Memory) { m.BaseKind = MemBaseRIP; m.Disp = disp }
}

// WithRIPREL marks the memory operand as instruction-relative; k is the
// signed instruction-index delta to the target, same convention as Rel().
// The linker computes and patches the actual displacement in pass 2.
func WithRIPREL(k int) MemOption {
	return func(m *Memory) { m.BaseKind = MemBaseRIPREL; m.Disp = int32(k) }
}

func WithDisp(d int32) MemOption { return func(m *Memory) { m.Disp = d } }

func WithIndex(r Register, scale byte) MemOption {
	return func(m *Memory) { m.Index = r; m.HasIndex = true; m.Scale = scale }
}

func WithSegment(r Register) MemOption {
	return func(m *Memory) { m.Segment = r; m.HasSeg = true }
}

func WithSize(bits int) MemOption {
	return func(m *Memory) { m.ExplicitSize = bits }
}

// Sized memory constructors, one per explicit size the catalog can require.
func m8(opts ...MemOption) Operand   { return Mem(append(opts, WithSize(8))...) }
func m16(opts ...MemOption) Operand  { return Mem(append(opts, WithSize(16))...) }
func m32(opts ...MemOption) Operand  { return Mem(append(opts, WithSize(32))...) }
func m64(opts ...MemOption) Operand  { return Mem(append(opts, WithSize(64))...) }
func m128(opts ...MemOption) Operand { return Mem(append(opts, WithSize(128))...) }
func m256(opts ...MemOption) Operand { return Mem(append(opts, WithSize(256))...) }
func m512(opts ...MemOption) Operand { return Mem(append(opts, WithSize(512))...) }

// Rel constructs an instruction-relative operand. k is the signed delta, in
// instruction count, to the target; 0 targets the instruction's own start.
func Rel(k int) Operand {
	return Operand{Kind: KindRelative, RelDelta: k}
}

// Prefix constructs a prefix-hint pseudo-operand.
func Prefix(hint PrefixHint) Operand {
	return Operand{Kind: KindPrefixHint, Prefix: hint}
}

// SignedValue returns the operand's immediate as a sign-extended int64,
// using the declared (or, for ImmAuto, the narrowest sufficient) width.
func (o Operand) SignedValue() int64 {
	switch o.ImmWidth {
	case Imm8:
		return int64(int8(o.ImmValue))
	case Imm16:
		return int64(int16(o.ImmValue))
	case Imm32:
		return int64(int32(o.ImmValue))
	default:
		return int64(o.ImmValue)
	}
}
