package main

import (
	"os"

	"github.com/squadplan/squadplan/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
