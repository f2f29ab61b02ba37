package main

import (
	"os"

	"github.com/testbed-ci/rig/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
