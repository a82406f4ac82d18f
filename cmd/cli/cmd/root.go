package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "runasm",
	Short: "Runtime x86_64 machine code assembler",
	Long:  `runasm assembles a sequence of instruction records directly to machine code, in memory, at runtime.`,
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {

	rootCmd.AddGroup(&cobra.Group{
		ID:    "arch",
		Title: "Architectures",
	})

	rootCmd.AddCommand(x8664Cmd)

	rootCmd.Flags().BoolP("toggle", "t", false, "Help message for toggle")
}
