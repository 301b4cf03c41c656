// Package main is the folio command line client. It prints the portfolio
// table for a sector, computed from an in-process quote provider or from a
// running stockfolio server.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
