package main

import (
	"os"

	"github.com/pactlens/pactlens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
