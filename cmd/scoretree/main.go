package main

import (
	"os"

	"github.com/npillmayer/scoretree/cmd/scoretree/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
