package main

import (
	"os"

	"github.com/rustyeddy/dali/cmd/dali/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
