package labelasm_test

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/keurnel/runasm/architecture/x86_64"
	"github.com/keurnel/runasm/internal/asm"
	"github.com/keurnel/runasm/labelasm"
)

func TestAssemble_ForwardLabel(t *testing.T) {
	// cmp rax, 0
	// jz   done
	// xor  eax, eax
	// done: ret
	lines := []labelasm.Line{
		{Mnemonic: x86_64.CMP, Operands: []any{x86_64.Reg(x86_64.RAX), x86_64.Imm(0)}},
		{Mnemonic: x86_64.JZ, Operands: []any{labelasm.Ref{Label: "done"}}},
		{Mnemonic: x86_64.XOR, Operands: []any{x86_64.Reg(x86_64.EAX), x86_64.Reg(x86_64.EAX)}},
		{Label: "done", Mnemonic: x86_64.RET},
	}

	got, labels, err := labelasm.Assemble(lines)
	if err != nil {
		t.Fatalf("Assemble() error = %v", err)
	}

	direct, err := x86_64.Sequence([]x86_64.Insn{
		{Mnemonic: x86_64.CMP, Operands: []x86_64.Operand{x86_64.Reg(x86_64.RAX), x86_64.Imm(0)}},
		{Mnemonic: x86_64.JZ, Operands: []x86_64.Operand{x86_64.Rel(2)}},
		{Mnemonic: x86_64.XOR, Operands: []x86_64.Operand{x86_64.Reg(x86_64.EAX), x86_64.Reg(x86_64.EAX)}},
		{Mnemonic: x86_64.RET},
	})
	if err != nil {
		t.Fatalf("Sequence() error = %v", err)
	}

	if !bytes.Equal(got, direct) {
		t.Errorf("Assemble() = % X, want % X (equivalent to the hand-resolved Rel(2))", got, direct)
	}

	// cmp rax,0 picks the 4-byte imm8 form (48 83 F8 00) under size
	// minimization, jz rel8 is 2 bytes, xor eax,eax is 2 bytes: "done"
	// lands at offset 8.
	want := []asm.Label{{Identifier: "done", Offset: 8}}
	if !reflect.DeepEqual(labels, want) {
		t.Errorf("Assemble() labels = %+v, want %+v", labels, want)
	}
}

func TestAssemble_UndefinedLabel(t *testing.T) {
	lines := []labelasm.Line{
		{Mnemonic: x86_64.JMP, Operands: []any{labelasm.Ref{Label: "nowhere"}}},
	}
	if _, _, err := labelasm.Assemble(lines); err == nil {
		t.Fatal("expected an error referencing an undefined label")
	}
}

func TestAssemble_DuplicateLabel(t *testing.T) {
	lines := []labelasm.Line{
		{Label: "top", Mnemonic: x86_64.NOP},
		{Label: "top", Mnemonic: x86_64.RET},
	}
	if _, _, err := labelasm.Assemble(lines); err == nil {
		t.Fatal("expected an error for a duplicate label definition")
	}
}
