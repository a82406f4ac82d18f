package x86_64

import "math"

// Insn is one record in the flat instruction sequence handed to Sequence:
// a mnemonic plus up to four operands (use None to pad unused slots, or
// simply omit trailing operands — both are accepted).
type Insn struct {
	Mnemonic Mnemonic
	Operands []Operand
}

// Sequence assembles a flat list of instruction records into a single
// contiguous byte buffer, resolving every relative (Rel/WithRIPREL)
// reference against the other instructions in the same call. It is the
// two-pass Sequence Assembler & Linker described by the package: pass one
// selects a Form per instruction and emits bytes with relative fields left
// as zeroed placeholders, recording a fixup for each; pass two computes
// each instruction's start offset and patches every fixup in place.
func Sequence(insns []Insn) ([]byte, error) {
	code, _, err := SequenceOffsets(insns)
	return code, err
}

// SequenceOffsets assembles insns exactly like Sequence, additionally
// returning each instruction's start offset in the final buffer
// (offsets[i] for instruction i, with offsets[len(insns)] = total length).
// Layers built above the core — label resolution, debug tracing — use this
// to recover byte positions without re-deriving pass 2's layout themselves.
func SequenceOffsets(insns []Insn) ([]byte, []int, error) {
	buf := newByteBuffer(len(insns) * 6)

	start := make([]int, len(insns)+1)
	var allFixups []fixup

	for i, ins := range insns {
		start[i] = buf.len()
		f, hints, err := SelectForm(ins.Mnemonic, ins.Operands, i)
		if err != nil {
			return nil, nil, err
		}
		real, _ := splitOperands(ins.Operands)
		fixups, err := emitInstruction(buf, i, ins.Mnemonic, *f, real, hints)
		if err != nil {
			return nil, nil, err
		}
		allFixups = append(allFixups, fixups...)
	}
	start[len(insns)] = buf.len()

	if buf.len() > math.MaxInt32 {
		return nil, nil, newErr(ErrOutOfMemory, "", len(insns), "assembled sequence exceeds the 32-bit size representable by a single rel32 span (%d bytes)", buf.len())
	}

	for _, fx := range allFixups {
		target := fx.fromIdx + fx.deltaIdx
		if target < 0 || target > len(insns) {
			return nil, nil, newErr(ErrRelOutOfRange, insns[fx.fromIdx].Mnemonic, fx.fromIdx, "relative target instruction index %d out of range [0,%d]", target, len(insns))
		}
		value := int64(start[target] - start[fx.fromIdx+1])
		switch fx.width {
		case 1:
			if value < -128 || value > 127 {
				return nil, nil, newErr(ErrRelOutOfRange, insns[fx.fromIdx].Mnemonic, fx.fromIdx, "relative displacement %d does not fit in rel8", value)
			}
		case 4:
			if value < math.MinInt32 || value > math.MaxInt32 {
				return nil, nil, newErr(ErrRelOutOfRange, insns[fx.fromIdx].Mnemonic, fx.fromIdx, "relative displacement %d does not fit in rel32", value)
			}
		}
		buf.patchAt(fx.siteOffset, fx.width, value)
	}

	return buf.data, start, nil
}

// EmitOne assembles a single instruction in isolation. It does not resolve
// relatives: a Rel operand's field and a RIPREL displacement are left as
// zeroed placeholders, since there is no sequence to link against; use
// Sequence to have them patched.
func EmitOne(mnemonic Mnemonic, operands ...Operand) ([]byte, error) {
	f, hints, err := SelectForm(mnemonic, operands, 0)
	if err != nil {
		return nil, err
	}
	real, _ := splitOperands(operands)
	buf := newByteBuffer(15)
	if _, err := emitInstruction(buf, 0, mnemonic, *f, real, hints); err != nil {
		return nil, err
	}
	return buf.data, nil
}
