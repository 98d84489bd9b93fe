package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "loglens",
	Short: "Analyze log files with an AI agent",
	Long: `loglens feeds a log file to a chat model and extracts a structured
analysis (summary, timeline, errors, insights, root causes, and
recommendations) from the model's reply, with deterministic fallbacks when
the reply is not well formed.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Local .env is optional; the OPENROUTER_* variables may come from the
	// environment directly.
	_ = godotenv.Load()
}
