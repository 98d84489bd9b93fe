package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/ai"
	"github.com/loglens/loglens/internal/output"
	"github.com/loglens/loglens/internal/parser"
	"github.com/loglens/loglens/internal/store"
)

var (
	analyzeModel     string
	analyzeOutputDir string
	analyzeDBPath    string
	analyzeMaxBytes  int
	analyzeNoStore   bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <logfile>",
	Short: "Analyze a log file with the AI agent",
	Long: `Analyze a log file: the file is sent to the configured chat model, the
reply is distilled into a structured analysis, a markdown report is written,
and the result is recorded in the local analysis history.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeModel, "model", "google/gemini-3-flash-preview", "OpenRouter model to use")
	analyzeCmd.Flags().StringVarP(&analyzeOutputDir, "output", "o", "reports", "Directory for markdown reports")
	analyzeCmd.Flags().StringVar(&analyzeDBPath, "db", defaultDBPath(), "Path to the analysis history database")
	analyzeCmd.Flags().IntVar(&analyzeMaxBytes, "max-bytes", 0, "Max log bytes to send to the model (0 = default)")
	analyzeCmd.Flags().BoolVar(&analyzeNoStore, "no-store", false, "Skip recording the analysis in history")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	logPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	fmt.Printf("Analyzing log: %s\n", logPath)

	lines, err := parser.LoadFile(logPath)
	if err != nil {
		return err
	}

	if len(lines) == 0 {
		return fmt.Errorf("log file is empty: %s", logPath)
	}

	stats := parser.ComputeStats(lines)
	fmt.Printf("Loaded %d lines (%d structured)\n", stats.TotalLines, stats.StructuredLines)
	if !stats.First.IsZero() {
		fmt.Printf("Time range: %s to %s\n", stats.First.Format(time.RFC3339), stats.Last.Format(time.RFC3339))
	}
	printLevelCounts(stats.LevelCounts)

	analyzer, err := ai.NewAnalyzer(ai.Config{
		Model:       analyzeModel,
		MaxLogBytes: analyzeMaxBytes,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize analyzer: %w", err)
	}

	fmt.Printf("Using OpenRouter model: %s\n", analyzeModel)

	res, err := analyzer.Analyze(cmd.Context(), lines)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	fmt.Printf("Extracted analysis with:\n")
	fmt.Printf("  - %d timeline entries\n", len(res.Timeline))
	fmt.Printf("  - %d errors\n", len(res.Errors))
	fmt.Printf("  - %d insights\n", len(res.Insights))
	fmt.Printf("  - %d root causes\n", len(res.RootCauses))
	fmt.Printf("  - %d recommendations\n", len(res.Recommendations))
	for _, w := range res.Warnings {
		fmt.Printf("  warning: %s\n", w)
	}

	now := time.Now()

	gen := output.NewGenerator(analyzeOutputDir)
	reportPath, err := gen.Write(res, filepath.Base(logPath), now)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	fmt.Printf("Report written to %s\n", reportPath)

	if !analyzeNoStore {
		st, err := store.Open(analyzeDBPath)
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer st.Close()

		if err := st.Save(res, filepath.Base(logPath), now); err != nil {
			return err
		}
		fmt.Printf("Analysis recorded in %s\n", analyzeDBPath)
	}

	return nil
}

func printLevelCounts(counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	levels := make([]string, 0, len(counts))
	for level := range counts {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	fmt.Printf("Level counts:\n")
	for _, level := range levels {
		fmt.Printf("  - %s: %d\n", level, counts[level])
	}
}

func defaultDBPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "loglens.db"
	}
	return filepath.Join(homeDir, ".loglens", "history.db")
}
