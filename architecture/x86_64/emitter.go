package x86_64

// fixup is one instance of a value the linker must back-patch once every
// instruction's start offset is known: a relative branch target or a
// RIP-relative memory displacement, both expressed as a delta in
// instruction count from the instruction that contains the reference.
type fixup struct {
	siteOffset int  // byte offset, in the whole-sequence buffer, of the field
	width      int  // 1 or 4
	fromIdx    int  // instruction index containing the reference
	deltaIdx   int  // signed instruction-index delta to the target
}

// rex collects the four REX bits as they're discovered while encoding an
// instruction's operands, and reports whether a REX byte must be emitted
// at all (W set, or any operand needs the X/B/R extension bit, or any
// operand is one of SPL/BPL/SIL/DIL which only exist with REX present).
type rex struct {
	w, r, x, b bool
	present    bool // forces emission even if w/r/x/b are all false
}

func (p *rex) byte() byte {
	v := byte(PrefixREX)
	if p.w {
		v |= 0x08
	}
	if p.r {
		v |= 0x04
	}
	if p.x {
		v |= 0x02
	}
	if p.b {
		v |= 0x01
	}
	return v
}

func (p *rex) needed() bool {
	return p.present || p.w || p.r || p.x || p.b
}

// emitInstruction encodes one matched Form against its operands into buf,
// appending any fixups the linker must resolve. The caller (Sequence's pass
// one) already recorded this instruction's start offset before calling in;
// emitInstruction only ever appends.
func emitInstruction(buf *byteBuffer, idx int, mnemonic Mnemonic, f Form, real []Operand, hints []PrefixHint) ([]fixup, error) {
	var fixups []fixup

	// 1. Legacy segment-override / mandatory prefixes. DS needs no override
	// byte: it is the default data segment for every addressing form this
	// table produces.
	for _, o := range real {
		if o.Kind == KindMemory && o.Mem.HasSeg && o.Mem.Segment.Name != "ds" {
			if pb := segmentPrefixByte(o.Mem.Segment); pb != 0 {
				buf.writeByte(pb)
			}
		}
	}
	if f.MandatoryPrefix != 0 && f.Encoding == EncodingLegacy {
		buf.writeByte(f.MandatoryPrefix)
	}

	// 2. Operand-size override (0x66) for legacy 16-bit GPR forms.
	if f.Encoding == EncodingLegacy && formHas16BitGPR(f) {
		buf.writeByte(byte(PrefixOperandSize))
	}

	// 3. Compute REX bits (legacy/REX path only; VEX folds these into the
	// VEX prefix instead).
	var r rex
	if f.Encoding == EncodingLegacy {
		r.w = f.REXW
		if hasHint(hints, PREFREX_W) {
			r.w = true
		}
		if f.RegSlot >= 0 && real[f.RegSlot].Kind == KindRegister {
			reg := real[f.RegSlot].Reg
			r.r = reg.RequiresREX()
			if reg.Type == Register8 && reg.Encoding >= 4 && reg.Encoding < 8 {
				r.present = true // SPL/BPL/SIL/DIL need REX to disambiguate from AH/CH/DH/BH
			}
		}
		if f.RMSlot >= 0 {
			switch real[f.RMSlot].Kind {
			case KindRegister:
				reg := real[f.RMSlot].Reg
				r.b = reg.RequiresREX()
				if reg.Type == Register8 && reg.Encoding >= 4 && reg.Encoding < 8 {
					r.present = true
				}
			case KindMemory:
				m := real[f.RMSlot].Mem
				if m.BaseKind == MemBaseReg && m.Base.RequiresREX() {
					r.b = true
				}
				if m.HasIndex && m.Index.RequiresREX() {
					r.x = true
				}
			}
		}
		if f.OpcodeReg && f.RegSlot >= 0 && real[f.RegSlot].Kind == KindRegister {
			r.b = real[f.RegSlot].Reg.RequiresREX()
		}
		if r.needed() {
			buf.writeByte(r.byte())
		}
	} else if f.Encoding == EncodingVEX {
		emitVEX(buf, f, real)
	}

	// 4. Opcode bytes, with the low 3 bits of a register folded into the
	// last byte for +rb/+rd/+ro forms.
	opcode := append([]byte(nil), f.Opcode...)
	if f.OpcodeReg && f.RegSlot >= 0 && real[f.RegSlot].Kind == KindRegister {
		opcode[len(opcode)-1] += real[f.RegSlot].Reg.Encoding & 0x7
	}
	buf.write(opcode...)

	// 5. ModRM / SIB / displacement.
	if f.ModRM {
		regField := byte(f.ModRMDigit)
		if f.RegSlot >= 0 && real[f.RegSlot].Kind == KindRegister {
			regField = real[f.RegSlot].Reg.Encoding & 0x7
		}
		if f.RMSlot < 0 {
			return nil, newErr(ErrInvalidArgument, mnemonic, idx, "form declares ModRM but no r/m slot")
		}
		switch real[f.RMSlot].Kind {
		case KindRegister:
			modrm := 0xC0 | (regField << 3) | (real[f.RMSlot].Reg.Encoding & 0x7)
			buf.writeByte(modrm)
		case KindMemory:
			mfix, err := emitMemoryModRM(buf, idx, regField, real[f.RMSlot].Mem)
			if err != nil {
				return nil, err
			}
			if mfix != nil {
				mfix.fromIdx = idx
				fixups = append(fixups, *mfix)
			}
		default:
			return nil, newErr(ErrOperandMismatch, mnemonic, idx, "r/m slot is neither register nor memory")
		}
	}

	// 6. Immediate.
	if f.ImmSlot >= 0 {
		v := real[f.ImmSlot].ImmValue
		switch f.ImmWidth {
		case 1:
			buf.writeByte(byte(v))
		case 2:
			buf.writeUint16(uint16(v))
		case 4:
			buf.writeUint32(uint32(v))
		case 8:
			buf.writeUint64(v)
		default:
			return nil, newErr(ErrInvalidArgument, mnemonic, idx, "form declares immediate slot with no width")
		}
	}

	// 7. Relative target: emit a placeholder now, patch in pass 2.
	if f.RelSlot >= 0 {
		site := buf.len()
		delta := real[f.RelSlot].RelDelta
		switch f.RelWidth {
		case 1:
			buf.writeByte(0)
		case 4:
			buf.writeUint32(0)
		default:
			return nil, newErr(ErrInvalidArgument, mnemonic, idx, "form declares relative slot with no width")
		}
		fixups = append(fixups, fixup{siteOffset: site, width: f.RelWidth, fromIdx: idx, deltaIdx: delta})
	}

	return fixups, nil
}

// formHas16BitGPR reports whether any slot in f is a 16-bit GPR or
// register-or-memory tag, meaning the legacy 0x66 operand-size override
// must precede the opcode.
func formHas16BitGPR(f Form) bool {
	for _, s := range f.Slots {
		if s == ShapeR16 || s == ShapeRM16 {
			return true
		}
	}
	return false
}

func segmentPrefixByte(seg Register) byte {
	switch seg.Name {
	case "cs":
		return byte(PrefixCS)
	case "ss":
		return byte(PrefixSS)
	case "ds":
		return byte(PrefixDS)
	case "es":
		return byte(PrefixES)
	case "fs":
		return byte(PrefixFS)
	case "gs":
		return byte(PrefixGS)
	default:
		return 0
	}
}

// emitMemoryModRM writes the ModRM/SIB/displacement bytes for a memory
// operand with the given ModRM.reg field, choosing the shortest legal
// displacement form and forcing SIB where RSP/R12 requires it.
func emitMemoryModRM(buf *byteBuffer, idx int, regField byte, m Memory) (*fixup, error) {
	if m.BaseKind == MemBaseRIP || m.BaseKind == MemBaseRIPREL {
		buf.writeByte((regField << 3) | 0x05) // mod=00, rm=101: RIP-relative
		site := buf.len()
		if m.BaseKind == MemBaseRIP {
			buf.writeUint32(uint32(m.Disp))
			return nil, nil
		}
		buf.writeUint32(0)
		return &fixup{siteOffset: site, width: 4, deltaIdx: int(m.Disp)}, nil
	}

	hasBase := m.BaseKind == MemBaseReg
	// No base at all also goes through SIB (base=101): in 64-bit mode the
	// plain mod=00 rm=101 ModRM means RIP-relative instead.
	needsSIB := !hasBase || m.HasIndex || (m.Base.Encoding&0x7) == 4 // RSP/R12 low bits
	baseLow := byte(0)
	if hasBase {
		baseLow = m.Base.Encoding & 0x7
	}

	// Displacement-size selection: 0, 8, or 32 bits. RBP/R13 as a bare
	// base (disp==0) cannot use the mod=00 "no displacement" form, since
	// that encoding is reserved for RIP-relative/no-base addressing, so it
	// is promoted to an explicit 8-bit zero displacement.
	mod := byte(0x00)
	dispWidth := 0
	switch {
	case !hasBase:
		mod = 0x00
	case m.Disp == 0 && !(hasBase && baseLow == 5):
		mod = 0x00
	case m.Disp >= -128 && m.Disp <= 127:
		mod = 0x01
		dispWidth = 1
	default:
		mod = 0x02
		dispWidth = 4
	}

	var rmField byte
	if needsSIB {
		rmField = 0x04
	} else if hasBase {
		rmField = baseLow
	} else {
		rmField = 0x05
		mod = 0x00
	}

	buf.writeByte((mod << 6) | (regField << 3) | rmField)

	if needsSIB {
		scaleBits := scaleToSIBBits(m.Scale)
		var indexBits byte = 0x04 // no index
		if m.HasIndex {
			indexBits = m.Index.Encoding & 0x7
		}
		var baseBits byte = 0x05 // no base
		if hasBase {
			baseBits = baseLow
		}
		buf.writeByte((scaleBits << 6) | (indexBits << 3) | baseBits)
		if !hasBase {
			// SIB with no base always carries a 32-bit displacement.
			buf.writeUint32(uint32(m.Disp))
			return nil, nil
		}
	}

	switch dispWidth {
	case 1:
		buf.writeByte(byte(int8(m.Disp)))
	case 4:
		buf.writeUint32(uint32(m.Disp))
	}
	return nil, nil
}

func scaleToSIBBits(scale byte) byte {
	switch scale {
	case 2:
		return 1
	case 4:
		return 2
	case 8:
		return 3
	default:
		return 0
	}
}

// emitVEX writes a 2-byte or 3-byte VEX prefix for f's operands. The
// 2-byte form is used whenever mm==1 (0x0F escape), W==0, and no operand
// needs REX.X or REX.B; every other case falls back to the 3-byte form.
func emitVEX(buf *byteBuffer, f Form, real []Operand) {
	var rBit, xBit, bBit byte = 1, 1, 1 // inverted: 1 means "not needed"
	if f.RegSlot >= 0 && real[f.RegSlot].Kind == KindRegister && real[f.RegSlot].Reg.RequiresREX() {
		rBit = 0
	}
	if f.RMSlot >= 0 {
		switch real[f.RMSlot].Kind {
		case KindRegister:
			if real[f.RMSlot].Reg.RequiresREX() {
				bBit = 0
			}
		case KindMemory:
			m := real[f.RMSlot].Mem
			if m.BaseKind == MemBaseReg && m.Base.RequiresREX() {
				bBit = 0
			}
			if m.HasIndex && m.Index.RequiresREX() {
				xBit = 0
			}
		}
	}

	vvvv := byte(0x0F) // inverted all-ones: "no vvvv source"
	if f.VexVVVVSlot >= 0 && real[f.VexVVVVSlot].Kind == KindRegister {
		vvvv = (^real[f.VexVVVVSlot].Reg.Encoding) & 0x0F
	}
	lBit := byte(0)
	if f.VexL {
		lBit = 1
	}

	use2Byte := f.VexMM == 1 && !f.REXW && xBit == 1 && bBit == 1
	if use2Byte {
		b1 := (rBit << 7) | (vvvv << 3) | (lBit << 2) | f.VexPP
		buf.write(0xC5, b1)
		return
	}
	wBit := byte(0)
	if f.REXW {
		wBit = 1
	}
	b1 := (rBit << 7) | (xBit << 6) | (bBit << 5) | f.VexMM
	b2 := (wBit << 7) | (vvvv << 3) | (lBit << 2) | f.VexPP
	buf.write(0xC4, b1, b2)
}
