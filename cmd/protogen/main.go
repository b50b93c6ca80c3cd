package main

import (
	"os"

	"github.com/protogen-lang/protogen/internal/cli/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
