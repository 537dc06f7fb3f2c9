// Package main provides the entry point for the coldreach CLI and server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "coldreach",
	Short: "Bulk cold-email draft generator",
	Long:  "coldreach reads a contact spreadsheet, resolves a template and resume per role, and saves personalized Gmail drafts with standardized attachments.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
