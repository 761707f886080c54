package main

import (
	"os"

	"github.com/envelope-zero/envelopes/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
