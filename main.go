package main

import (
	"os"

	"github.com/buildmend/buildmend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
