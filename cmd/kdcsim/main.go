package main

import (
	"os"

	"kdcsim/cmd/kdcsim/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
