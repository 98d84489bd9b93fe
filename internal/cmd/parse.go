package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/extract"
	"github.com/loglens/loglens/internal/output"
)

var (
	parseJSON      bool
	parseOutputDir string
)

var parseCmd = &cobra.Command{
	Use:   "parse <responsefile>",
	Short: "Extract a structured analysis from a saved agent response",
	Long: `Run the extraction pipeline over a saved agent response without calling
the model. Useful for re-processing past replies and for inspecting how a
given response degrades.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print the result as JSON instead of writing a report")
	parseCmd.Flags().StringVarP(&parseOutputDir, "output", "o", "reports", "Directory for markdown reports")
}

func runParse(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read response file: %w", err)
	}

	res := extract.Run(string(data), time.Now())

	if parseJSON {
		encoded, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	gen := output.NewGenerator(parseOutputDir)
	reportPath, err := gen.Write(res, filepath.Base(args[0]), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	fmt.Printf("Report written to %s\n", reportPath)
	return nil
}
