package x86_64

// splitOperands separates the caller's operand list into the real operands
// that occupy Form.Slots positions and the trailing prefix-hint
// pseudo-operands (PREF66/PREFREX_W), which never occupy a slot. Trailing
// None operands (padding for unused slots) are dropped from real.
func splitOperands(operands []Operand) (real []Operand, hints []PrefixHint) {
	for _, o := range operands {
		if o.Kind == KindPrefixHint {
			hints = append(hints, o.Prefix)
		} else {
			real = append(real, o)
		}
	}
	for len(real) > 0 && real[len(real)-1].Kind == KindNone {
		real = real[:len(real)-1]
	}
	return real, hints
}

func hasHint(hints []PrefixHint, want PrefixHint) bool {
	for _, h := range hints {
		if h == want {
			return true
		}
	}
	return false
}

func formMatches(f Form, real []Operand) bool {
	if len(f.Slots) != len(real) {
		return false
	}
	for i, want := range f.Slots {
		if want == ShapeNone {
			if real[i].Kind != KindNone {
				return false
			}
			continue
		}
		if fixed, ok := f.FixedReg[i]; ok {
			if real[i].Kind != KindRegister || real[i].Reg != fixed {
				return false
			}
			continue
		}
		if !matchesShape(real[i], want) {
			return false
		}
	}
	return true
}

func formSizeBits(f Form) int {
	total := 0
	for _, s := range f.Slots {
		total += sizeOf(s)
	}
	if f.REXW {
		total += 64
	}
	return total
}

// operandExplicitSize returns the caller-pinned size (bits) for a real
// operand, or 0 if it isn't pinned: memory via m8()..m512(), otherwise 0.
func operandExplicitSize(o Operand) int {
	if o.Kind == KindMemory {
		return o.Mem.ExplicitSize
	}
	return 0
}

// SelectForm applies the Variant Selector's precedence rules to pick the
// single Form from mnemonic's catalog entry that the given operand list
// satisfies: arity, then per-slot shape compatibility, then prefix-hint
// compatibility, then explicit-size-override exactness, then size
// minimization, then first-in-table tie-break.
func SelectForm(mnemonic Mnemonic, operands []Operand, idx int) (*Form, []PrefixHint, error) {
	instr, ok := Table[mnemonic]
	if !ok {
		return nil, nil, newErr(ErrNoSuchMnemonic, mnemonic, idx, "no catalog entry for mnemonic %q", mnemonic)
	}

	real, hints := splitOperands(operands)

	var arityMatches []Form
	for _, f := range instr.Forms {
		if len(f.Slots) == len(real) {
			arityMatches = append(arityMatches, f)
		}
	}
	if len(arityMatches) == 0 {
		return nil, nil, newErr(ErrNoSuchForm, mnemonic, idx, "no form of %q accepts %d operand(s)", mnemonic, len(real))
	}

	var candidates []Form
	for _, f := range arityMatches {
		if formMatches(f, real) {
			candidates = append(candidates, f)
		}
	}
	if len(candidates) == 0 {
		return nil, nil, newErr(ErrOperandMismatch, mnemonic, idx, "no form of %q accepts the given operands", mnemonic)
	}

	if hasHint(hints, PREFREX_W) {
		narrowed := filterForms(candidates, func(f Form) bool { return f.REXW })
		if len(narrowed) == 0 {
			return nil, nil, newErr(ErrPrefixConflict, mnemonic, idx, "PREFREX_W is incompatible with every matching form of %q", mnemonic)
		}
		candidates = narrowed
	}
	if hasHint(hints, PREF66) {
		narrowed := filterForms(candidates, func(f Form) bool {
			for _, s := range f.Slots {
				if sizeOf(s) == 16 {
					return true
				}
			}
			return false
		})
		if len(narrowed) == 0 {
			return nil, nil, newErr(ErrPrefixConflict, mnemonic, idx, "PREF66 is incompatible with every matching form of %q", mnemonic)
		}
		candidates = narrowed
	}

	// Explicit-size-override exactness: when a memory operand pins an exact
	// size, only a form whose corresponding slot tag matches that size
	// exactly may be chosen — never silently widened to a generic form.
	for i, o := range real {
		want := operandExplicitSize(o)
		if want == 0 {
			continue
		}
		narrowed := filterForms(candidates, func(f Form) bool {
			return i < len(f.Slots) && sizeOf(f.Slots[i]) == want
		})
		if len(narrowed) == 0 {
			return nil, nil, newErr(ErrSizeUnavailable, mnemonic, idx, "no form of %q supports an explicit %d-bit memory operand", mnemonic, want)
		}
		candidates = narrowed
	}

	// Size minimization: prefer the encoding with the smallest total
	// operand-size footprint among what remains.
	best := candidates[0]
	bestSize := formSizeBits(best)
	for _, f := range candidates[1:] {
		if s := formSizeBits(f); s < bestSize {
			best, bestSize = f, s
		}
	}

	if err := checkHighByteRex(mnemonic, idx, best, real); err != nil {
		return nil, nil, err
	}

	chosen := best
	return &chosen, hints, nil
}

func filterForms(forms []Form, keep func(Form) bool) []Form {
	var out []Form
	for _, f := range forms {
		if keep(f) {
			out = append(out, f)
		}
	}
	return out
}

// checkHighByteRex rejects any combination that would require a REX prefix
// alongside an AH/BH/CH/DH operand, since REX repurposes those encodings
// (4-7) as SPL/BPL/SIL/DIL.
func checkHighByteRex(mnemonic Mnemonic, idx int, f Form, real []Operand) error {
	needsRex := f.REXW
	for _, o := range real {
		switch o.Kind {
		case KindRegister:
			if o.Reg.RequiresREX() || (o.Reg.Type == Register8 && o.Reg.Encoding >= 4 && o.Reg.Encoding < 8) {
				needsRex = true // extended register, or SPL/BPL/SIL/DIL
			}
		case KindMemory:
			if (o.Mem.BaseKind == MemBaseReg && o.Mem.Base.RequiresREX()) || (o.Mem.HasIndex && o.Mem.Index.RequiresREX()) {
				needsRex = true
			}
		}
	}
	if !needsRex {
		return nil
	}
	for _, o := range real {
		if o.Kind == KindRegister && o.Reg.IsHighByte() {
			return newErr(ErrInvalidHighByteWithRex, mnemonic, idx, "register %s cannot be encoded alongside a REX prefix", o.Reg.Name)
		}
	}
	return nil
}
