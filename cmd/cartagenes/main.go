package main

import (
	"os"

	"github.com/CartagenesDev/cartagenes-finacias/cmd/cartagenes/commands"
)

// main is the entry point for the Cartagenes CLI
// ⭐ single CLI entry point: go run ./cmd/cartagenes [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
