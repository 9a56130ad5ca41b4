// Package main is the entry point for the SmartChef CLI.
// SmartChef CLI provides command-line access to SmartChef,
// a service that suggests recipes from the ingredients you have.
package main

import (
	"os"

	"github.com/smartchef/smartchef-cli/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
