package main

import (
	"os"

	"go-alttext-generator/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
