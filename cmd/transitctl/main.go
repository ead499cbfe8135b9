package main

import (
	"os"

	"transit-cnmi/cmd/transitctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
