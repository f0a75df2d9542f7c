package main

import (
	"os"

	"github.com/btced/btced/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
