package main

import (
	"os"

	"svw.info/patrol/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
