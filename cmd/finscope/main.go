package main

import (
	"os"

	"github.com/finscope/finscope/cmd/finscope/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
