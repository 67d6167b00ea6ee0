package main

import (
	"os"

	"github.com/kavya/lexis/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
