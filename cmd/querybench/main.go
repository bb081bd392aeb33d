// Package main provides the querybench CLI entry point.
package main

import (
	"os"

	"github.com/querybench/querybench/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
