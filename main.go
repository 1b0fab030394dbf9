package main

import (
	"os"

	"github.com/citypulse/mobidemand/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
