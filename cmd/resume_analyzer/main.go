// Package main provides the resume_analyzer command: the web server plus
// maintenance and batch analysis commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_analyzer",
	Short: "Resume Analyzer web server and CLI",
	Long: `Resume Analyzer scores resumes against job descriptions using a fixed skill vocabulary,
builds an action plan and report, and tracks analysis history per user.

Configuration is read from an optional YAML file (--config or RESUME_ANALYZER_CONFIG)
and RESUME_ANALYZER_* environment variables. Flags override both.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
