package x86_64_test

import (
	"bytes"
	"testing"

	"github.com/keurnel/runasm/architecture/x86_64"
)

func TestSequence_WorkedScenarios(t *testing.T) {
	scenarios := []struct {
		name  string
		insns []x86_64.Insn
		want  []byte
	}{
		{
			name: "mov rax, 0 selects the C7 /0 imm32 form over B8 imm64",
			insns: []x86_64.Insn{
				{Mnemonic: x86_64.MOV, Operands: []x86_64.Operand{x86_64.Reg(x86_64.RAX), x86_64.Imm(0)}},
			},
			want: []byte{0x48, 0xC7, 0xC0, 0x00, 0x00, 0x00, 0x00},
		},
		{
			name: "lea rax, [rax+rdx*2+100]",
			insns: []x86_64.Insn{
				{Mnemonic: x86_64.LEA, Operands: []x86_64.Operand{
					x86_64.Reg(x86_64.RAX),
					x86_64.Mem(x86_64.WithBase(x86_64.RAX), x86_64.WithIndex(x86_64.RDX, 2), x86_64.WithDisp(100), x86_64.WithSegment(x86_64.DS)),
				}},
			},
			want: []byte{0x48, 0x8D, 0x44, 0x50, 0x64},
		},
		{
			name: "jmp $ (self) takes the rel8 form",
			insns: []x86_64.Insn{
				{Mnemonic: x86_64.JMP, Operands: []x86_64.Operand{x86_64.Rel(0)}},
			},
			want: []byte{0xEB, 0xFE},
		},
		{
			name: "mov al, 0xFF",
			insns: []x86_64.Insn{
				{Mnemonic: x86_64.MOV, Operands: []x86_64.Operand{x86_64.Reg(x86_64.AL), x86_64.Im8(-1)}},
			},
			want: []byte{0xB0, 0xFF},
		},
		{
			name: "mov ah, 1 encodes the high-byte opcode-reg form with no REX",
			insns: []x86_64.Insn{
				{Mnemonic: x86_64.MOV, Operands: []x86_64.Operand{x86_64.Reg(x86_64.AH), x86_64.Im8(1)}},
			},
			want: []byte{0xB4, 0x01},
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			got, err := x86_64.Sequence(s.insns)
			if err != nil {
				t.Fatalf("Sequence() error = %v", err)
			}
			if !bytes.Equal(got, s.want) {
				t.Errorf("Sequence() = % X, want % X", got, s.want)
			}
		})
	}
}

func TestSequence_JZLinksForwardOverLEA(t *testing.T) {
	// jz skip ; lea rax, [rax] ; skip: ret
	insns := []x86_64.Insn{
		{Mnemonic: x86_64.JZ, Operands: []x86_64.Operand{x86_64.Rel(2)}},
		{Mnemonic: x86_64.LEA, Operands: []x86_64.Operand{x86_64.Reg(x86_64.RAX), x86_64.Mem(x86_64.WithBase(x86_64.RAX))}},
		{Mnemonic: x86_64.RET, Operands: nil},
	}
	got, err := x86_64.Sequence(insns)
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}
	// jz rel8 is 2 bytes (74 xx); the lea is 3 bytes (48 8D 00); so the
	// patched displacement must be 3.
	if got[1] != 0x03 {
		t.Errorf("jz displacement = 0x%X, want 0x03", got[1])
	}
}

func TestSequence_InvalidHighByteWithRex(t *testing.T) {
	insns := []x86_64.Insn{
		{Mnemonic: x86_64.MOV, Operands: []x86_64.Operand{x86_64.Reg(x86_64.AH), x86_64.Reg(x86_64.R8B)}},
	}
	_, err := x86_64.Sequence(insns)
	if err == nil {
		t.Fatal("expected an error mixing AH with a REX-requiring register, got nil")
	}
	ae, ok := err.(*x86_64.AssemblerError)
	if !ok {
		t.Fatalf("expected *x86_64.AssemblerError, got %T", err)
	}
	if ae.Kind != x86_64.ErrInvalidHighByteWithRex {
		t.Errorf("Kind = %v, want ErrInvalidHighByteWithRex", ae.Kind)
	}
}

func TestSequence_RelOutOfRange(t *testing.T) {
	insns := make([]x86_64.Insn, 0, 200)
	insns = append(insns, x86_64.Insn{Mnemonic: x86_64.JMP, Operands: []x86_64.Operand{x86_64.Rel(150)}})
	for i := 0; i < 150; i++ {
		insns = append(insns, x86_64.Insn{Mnemonic: x86_64.NOP})
	}
	_, err := x86_64.Sequence(insns)
	if err == nil {
		t.Fatal("expected RelOutOfRange for a 150-instruction rel8 jump, got nil")
	}
	ae, ok := err.(*x86_64.AssemblerError)
	if !ok {
		t.Fatalf("expected *x86_64.AssemblerError, got %T", err)
	}
	if ae.Kind != x86_64.ErrRelOutOfRange {
		t.Errorf("Kind = %v, want ErrRelOutOfRange", ae.Kind)
	}
}

func TestSelectForm_NoSuchMnemonic(t *testing.T) {
	_, _, err := x86_64.SelectForm(x86_64.Mnemonic("BOGUS"), nil, 0)
	if err == nil {
		t.Fatal("expected an error for an unknown mnemonic")
	}
}

func TestStringify(t *testing.T) {
	ins := x86_64.Insn{Mnemonic: x86_64.MOV, Operands: []x86_64.Operand{x86_64.Reg(x86_64.RAX), x86_64.Imm(0)}}
	got := x86_64.Stringify(ins)
	want := "mov rax, 0x0"
	if got != want {
		t.Errorf("Stringify() = %q, want %q", got, want)
	}
}

func TestLastError(t *testing.T) {
	_, err := x86_64.EmitOne(x86_64.Mnemonic("NOPE"))
	if err == nil {
		t.Fatal("expected an error")
	}
	if x86_64.LastError() == nil {
		t.Fatal("expected LastError() to be populated after a failing call")
	}
}
