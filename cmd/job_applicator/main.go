// Package main provides the entry point for the job application packet CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_applicator",
	Short: "Job application packet generator",
	Long:  "Job Applicator turns a job description into a complete application packet: a tailored CV (HTML and PDF) plus a German DIN 5008 Anschreiben, generated with Claude or Gemini.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
