package cmd

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/keurnel/runasm/architecture/x86_64"
	assemblercontext "github.com/keurnel/runasm/internal/assembler_context"
	"github.com/keurnel/runasm/internal/debugcontext"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Assemble and print a small worked example sequence",
	Long:  `Assembles a short hand-written instruction sequence and prints its Intel-syntax listing alongside the encoded bytes, to sanity-check the encoder without writing Go.`,
	RunE:  runDemo,
}

func init() {
	x8664Cmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	actx := assemblercontext.AssemblerContext{Architecture: x86_64.New("")}
	fmt.Fprintf(cmd.OutOrStdout(), "architecture: %s\n", actx.Architecture.ArchitectureName())

	insns := []x86_64.Insn{
		{Mnemonic: x86_64.MOV, Operands: []x86_64.Operand{x86_64.Reg(x86_64.RAX), x86_64.Imm(0)}},
		{Mnemonic: x86_64.LEA, Operands: []x86_64.Operand{
			x86_64.Reg(x86_64.RAX),
			x86_64.Mem(x86_64.WithBase(x86_64.RAX), x86_64.WithIndex(x86_64.RDX, 2), x86_64.WithDisp(100)),
		}},
		{Mnemonic: x86_64.CMP, Operands: []x86_64.Operand{x86_64.Reg(x86_64.RAX), x86_64.Imm(0)}},
		{Mnemonic: x86_64.JZ, Operands: []x86_64.Operand{x86_64.Rel(1)}},
		{Mnemonic: x86_64.XOR, Operands: []x86_64.Operand{x86_64.Reg(x86_64.EAX), x86_64.Reg(x86_64.EAX)}},
		{Mnemonic: x86_64.RET, Operands: nil},
	}

	dbg := debugcontext.NewDebugContext("demo")
	code, err := x86_64.SequenceTraced(insns, dbg)
	if err != nil {
		return fmt.Errorf("assemble: %w", err)
	}

	for _, entry := range dbg.Entries() {
		fmt.Fprintln(cmd.OutOrStdout(), entry.String())
	}
	fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(code))
	return nil
}
