// Package labelasm layers symbolic labels on top of the core x86_64
// engine, exactly the way the spec's design notes describe: the core
// Sequence Assembler & Linker only ever sees instruction-index deltas
// (x86_64.Rel), so this package resolves named labels into those deltas
// before handing the sequence down. It never touches byte-level encoding.
package labelasm

import (
	"fmt"

	"github.com/keurnel/runasm/architecture/x86_64"
	"github.com/keurnel/runasm/internal/asm"
)

// Ref stands in for an x86_64.Rel operand whose target is a label defined
// elsewhere in the same Line list, resolved by name instead of by a
// hand-counted instruction delta.
type Ref struct {
	Label string
}

// Line is one entry in a labeled sequence: an optional label definition
// attached to this position, plus the instruction occupying it. A Line
// with an empty Mnemonic defines a bare label with no instruction of its
// own — the label then resolves to whatever instruction follows it (or to
// the end of the sequence, if it is the last line).
type Line struct {
	Label    string
	Mnemonic x86_64.Mnemonic
	Operands []any // each element is an x86_64.Operand, or a Ref
}

// Assemble resolves every label reference in lines against the positions
// labels were defined at, then assembles the resulting instruction
// sequence with x86_64.SequenceOffsets. Duplicate label definitions and
// references to undefined labels are reported before any encoding is
// attempted. Alongside the assembled bytes, it returns each label's
// resolved byte offset in that buffer — the instruction-index delta
// baked into the bytes as a Rel operand, restated as a position a caller
// can use directly (e.g. to build a symbol table for a debugger).
func Assemble(lines []Line) ([]byte, []asm.Label, error) {
	insns, labelIndex, err := resolve(lines)
	if err != nil {
		return nil, nil, err
	}
	code, offsets, err := x86_64.SequenceOffsets(insns)
	if err != nil {
		return nil, nil, err
	}

	labels := make([]asm.Label, 0, len(labelIndex))
	for name, idx := range labelIndex {
		labels = append(labels, asm.Label{Identifier: name, Offset: offsets[idx]})
	}
	return code, labels, nil
}

// resolve performs the label-layer's own two passes: first it assigns
// every real instruction an index and records where each label points,
// then it rewrites every Ref into the x86_64.Rel delta the core engine
// expects.
func resolve(lines []Line) ([]x86_64.Insn, map[string]int, error) {
	var insns []x86_64.Insn
	labelIndex := make(map[string]int)

	// Pass 1: assign indices to real instructions, walking once so a bare
	// label takes the index of the next real instruction (or len(insns)
	// for a trailing label with nothing after it).
	pending := make([]string, 0)
	idx := 0
	for _, l := range lines {
		if l.Label != "" {
			if _, dup := labelIndex[l.Label]; dup {
				return nil, nil, fmt.Errorf("labelasm: label %q defined more than once", l.Label)
			}
			for _, p := range pending {
				if p == l.Label {
					return nil, nil, fmt.Errorf("labelasm: label %q defined more than once", l.Label)
				}
			}
			pending = append(pending, l.Label)
		}
		if l.Mnemonic == "" {
			continue
		}
		for _, name := range pending {
			labelIndex[name] = idx
		}
		pending = pending[:0]
		idx++
	}
	for _, name := range pending {
		labelIndex[name] = idx // trailing bare label(s): point past the end
	}

	// Pass 2: rewrite operands, converting Ref -> x86_64.Rel(delta).
	idx = 0
	for _, l := range lines {
		if l.Mnemonic == "" {
			continue
		}
		operands := make([]x86_64.Operand, 0, len(l.Operands))
		for _, raw := range l.Operands {
			switch v := raw.(type) {
			case x86_64.Operand:
				operands = append(operands, v)
			case Ref:
				target, ok := labelIndex[v.Label]
				if !ok {
					return nil, nil, fmt.Errorf("labelasm: undefined label %q referenced at instruction %d", v.Label, idx)
				}
				operands = append(operands, x86_64.Rel(target-idx))
			default:
				return nil, nil, fmt.Errorf("labelasm: operand %d of instruction %d is neither x86_64.Operand nor labelasm.Ref", len(operands), idx)
			}
		}
		insns = append(insns, x86_64.Insn{Mnemonic: l.Mnemonic, Operands: operands})
		idx++
	}

	return insns, labelIndex, nil
}
