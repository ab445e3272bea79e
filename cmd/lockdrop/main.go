package main

import (
	"os"

	"lockdrop/cmd/lockdrop/commands"
	"lockdrop/internal/logging"
)

func main() {
	err := commands.Execute()
	logging.Flush()
	if err != nil {
		os.Exit(1)
	}
}
