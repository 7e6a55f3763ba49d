package main

import (
	"os"

	"github.com/payops-dev/payoutconv/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
