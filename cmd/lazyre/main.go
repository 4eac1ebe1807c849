package main

import (
	"os"

	"github.com/lazyre/lazyre/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
