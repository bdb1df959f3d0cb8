// Package main is the liftlog catalog tool: applies DB migrations and seeds the
// global exercise library from a YAML file.
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
