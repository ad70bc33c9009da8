package main

import (
	"os"

	"github.com/solatis/domrules/cmd/domrules/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
