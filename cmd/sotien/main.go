package main

import (
	"os"

	"github.com/mmynk/sotien/cmd/sotien/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
