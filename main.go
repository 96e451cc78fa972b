// Package main provides the entry point for rvvi-check.
// rvvi-check validates RVVI-TEXT processor trace files.
//
// For the full CLI, use: go run ./cmd/rvvi-check
package main

import (
	"fmt"
	"os"
)

func main() {
	fmt.Println("rvvi-check - RVVI-TEXT trace validator")
	fmt.Println("")
	fmt.Println("Usage: rvvi-check [options] <trace-file>")
	fmt.Println("")
	fmt.Println("Options:")
	fmt.Println("  -v         Log every accepted record")
	fmt.Println("  -summary   Write a YAML summary to a path (- for stdout)")
	fmt.Println("")
	fmt.Println("Run 'go run ./cmd/rvvi-check' for the full CLI.")

	if len(os.Args) > 1 {
		fmt.Println("\nNote: You provided arguments. Use 'go run ./cmd/rvvi-check' instead.")
	}
}
