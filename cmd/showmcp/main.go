// Package main provides the entry point for the showmcp CLI.
package main

import (
	"os"

	"github.com/showfolio/showmcp/cmd/showmcp/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
