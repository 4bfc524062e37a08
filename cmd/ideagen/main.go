package main

import (
	"os"

	"github.com/wonny/ideagen/cmd/ideagen/commands"
)

// main is the entry point for the ideagen CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/ideagen [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
