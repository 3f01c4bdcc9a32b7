// Package main provides the entry point for the resume fit analyzer.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fit_analyzer",
	Short: "Resume–job fit scoring engine",
	Long:  "Fit analyzer scores how well a resume matches a job requirement by combining semantic skill similarity, skill-graph structure, and experience fit into a single explained score.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
