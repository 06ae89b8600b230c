package cmd

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/LavenderBridge/flashcards/internal/db"
	"github.com/spf13/cobra"
)

var (
	overviewTop  int
	overviewTerm string
)

var overviewCmd = &cobra.Command{
	Use:   "overview",
	Short: "Show quiz history across sessions",
	Long: `Show statistics from the review history database.
Recording is enabled with --history (or history: in flashcards.yaml).
With --term, list the most recent answers given for that card instead.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		store, err := openHistory()
		if err != nil {
			fmt.Fprintln(out, "❌ Database error:", err)
			return
		}
		if store == nil {
			fmt.Fprintln(out, "⚠️ No review history configured. Run sessions with --history <file> to record one.")
			return
		}
		defer store.Close()

		if overviewTerm != "" {
			printRecentAnswers(cmd, store)
			return
		}

		stats, err := store.GetReviewStats(ctx)
		if err != nil {
			fmt.Fprintln(out, "❌ Error fetching stats:", err)
			return
		}

		printTitle(out, "📊 Performance Overview")
		fmt.Fprintf(out, "Total Reviews:      %d\n", stats.TotalReviews)
		fmt.Fprintf(out, "Correct Answers:    %d\n", stats.CorrectReviews)
		fmt.Fprintf(out, "Reviews Last 7D:    %d\n", stats.ReviewsLast7Days)
		fmt.Fprintf(out, "Accuracy:           %.0f%%\n", stats.Accuracy*100)

		if len(stats.MissesByTerm) == 0 {
			return
		}

		type miss struct {
			term  string
			count int
		}
		var misses []miss
		for term, count := range stats.MissesByTerm {
			misses = append(misses, miss{term, count})
		}
		slices.SortFunc(misses, func(a, b miss) int {
			if c := cmp.Compare(b.count, a.count); c != 0 {
				return c
			}
			return strings.Compare(a.term, b.term)
		})
		if overviewTop > 0 && len(misses) > overviewTop {
			misses = misses[:overviewTop]
		}

		fmt.Fprintln(out)
		printTitle(out, "📈 Most Missed Cards")
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "Term\tMisses\t")
		fmt.Fprintln(w, "----\t------\t")
		for _, m := range misses {
			fmt.Fprintf(w, "%s\t%d\t%s\n", m.term, m.count, strings.Repeat("█", m.count))
		}
		w.Flush()
	},
}

func printRecentAnswers(cmd *cobra.Command, store *db.Store) {
	out := cmd.OutOrStdout()

	reviews, err := store.ListReviews(cmd.Context(), overviewTerm, overviewTop)
	if err != nil {
		fmt.Fprintln(out, "❌ Error fetching reviews:", err)
		return
	}
	if len(reviews) == 0 {
		fmt.Fprintf(out, "📭 No answers recorded for \"%s\".\n", overviewTerm)
		return
	}

	printTitle(out, fmt.Sprintf("🕑 Recent answers for \"%s\"", overviewTerm))
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "When\tAnswer\tResult")
	fmt.Fprintln(w, "----\t------\t------")
	for _, r := range reviews {
		result := "❌"
		if r.Correct {
			result = "✅"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ReviewedAt.Local().Format("2006-01-02 15:04"), r.Answer, result)
	}
	w.Flush()
}

func init() {
	rootCmd.AddCommand(overviewCmd)
	overviewCmd.Flags().IntVar(&overviewTop, "top", 10, "Number of cards (or answers with --term) to show (0 for all)")
	overviewCmd.Flags().StringVar(&overviewTerm, "term", "", "Show recent answers for one card")
}
