package main

import (
	"os"

	"github.com/zeptools/pricequote/cmd/pricequote/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
