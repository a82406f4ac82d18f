package main

import "github.com/keurnel/runasm/cmd/cli/cmd"

func main() {
	cmd.Execute()
}
