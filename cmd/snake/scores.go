package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-snake/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show high scores",
	Long: `Display the top high scores and overall statistics.

Examples:
  snake scores
  snake scores --limit 25
  snake scores --clear`,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE:         runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of scores to show")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded scores")
}

func runScores(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(); err != nil {
			return fmt.Errorf("clearing scores: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "All scores cleared.")
		return nil
	}

	return writeScores(cmd.OutOrStdout(), cmd.ErrOrStderr(), store, flagLimit)
}

// writeScores prints the top scores and stats. A stats failure is reported
// as a warning since the table is already out.
func writeScores(out, errOut io.Writer, store storage.ScoreStore, limit int) error {
	scores, err := store.TopScores(limit)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Fprintln(out, "High Scores - Snake")
	fmt.Fprintln(out)

	if len(scores) == 0 {
		fmt.Fprintln(out, "No scores recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Play 'snake play' to set the first high score!")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "  Rank\tPlayer\tScore\tLevel\tLength\tEnd\tDate")
	fmt.Fprintln(tw, "  ----\t------\t-----\t-----\t------\t---\t----")
	for i, entry := range scores {
		fmt.Fprintf(tw, "  %d\t%s\t%d\t%d\t%d\t%s\t%s\n",
			i+1, entry.Player, entry.Score, entry.Level, entry.Length, entry.Cause,
			entry.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	stats, err := store.Stats()
	if err != nil {
		fmt.Fprintf(errOut, "Warning: could not load stats: %v\n", err)
		return nil
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Games: %d  Best: %d  Average: %.0f  Food eaten: %d\n",
		stats.GamesCount, stats.HighScore, stats.AvgScore, stats.TotalFood)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(out, "Last played: %s\n", stats.LastPlayed.Local().Format("2006-01-02 15:04"))
	}
	return nil
}
