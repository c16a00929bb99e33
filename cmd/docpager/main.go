package main

import (
	"os"

	"github.com/n-r-w/docpager/cmd/docpager/commands"
)

func main() {
	if err := commands.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
