package main

import (
	"os"

	"github.com/etsledger/etsledger/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
