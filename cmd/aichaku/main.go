package main

import (
	"os"

	"github.com/aichaku-dev/aichaku/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
