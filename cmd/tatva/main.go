package main

import (
	"fmt"
	"os"

	"github.com/Pranshu115/tatva/cmd/tatva/commands"
)

func main() {
	if err := commands.NewRootCommand(commands.DefaultEnv()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
