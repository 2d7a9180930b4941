package main

import (
	"os"

	"gifts_buyer/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
