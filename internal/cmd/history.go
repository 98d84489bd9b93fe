package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loglens/loglens/internal/output"
	"github.com/loglens/loglens/internal/store"
)

var (
	historyLimit  int
	historyDBPath string
	historyShowID int64
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent analyses",
	Long: `List recent analyses from the local history database, or re-render one
stored analysis as a markdown report with --show.`,
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of analyses to list")
	historyCmd.Flags().StringVar(&historyDBPath, "db", defaultDBPath(), "Path to the analysis history database")
	historyCmd.Flags().Int64Var(&historyShowID, "show", 0, "Print the full report for one stored analysis by id")
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, err := store.Open(historyDBPath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer st.Close()

	if historyShowID > 0 {
		res, rec, err := st.Load(historyShowID)
		if err != nil {
			return err
		}
		fmt.Print(output.Render(res, rec.Source, rec.CreatedAt))
		return nil
	}

	records, err := st.Recent(historyLimit)
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No analyses recorded yet.")
		return nil
	}

	for _, r := range records {
		fmt.Printf("#%d  %s  %s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04"), r.Source)
		fmt.Printf("    %s\n", r.Summary)
		fmt.Printf("    errors: %d, insights: %d, root causes: %d, recommendations: %d\n",
			r.ErrorCount, r.InsightCount, r.RootCauseCount, r.RecommendationCount)
	}

	return nil
}
