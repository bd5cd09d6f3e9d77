// Package main - papertrade CLI
//
// Usage:
//
//	go run ./cmd/papertrade serve
//	go run ./cmd/papertrade migrate
package main

import (
	"os"

	"github.com/wonny/papertrade/cmd/papertrade/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
