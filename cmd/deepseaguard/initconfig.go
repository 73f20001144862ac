package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/tritonminingco/deepseaguard-dashboard/internal/config"
)

// RunInitConfig writes the default config to path and exits.
//
// Exit codes:
//   - 0: written, or a config file already exists
//   - 1: error
func RunInitConfig(path string) {
	err := config.WriteDefault(path)
	switch {
	case err == nil:
		fmt.Printf("Wrote default config to %s\n", path)
		os.Exit(0)
	case errors.Is(err, config.ErrConfigExists):
		fmt.Println("Config already exists. No changes made.")
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
