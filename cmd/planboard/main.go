package main

import (
	"fmt"
	"os"

	"github.com/tdnguyen/planboard/cmd/planboard/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
