package cmd

import (
	"fmt"
	"strings"

	"github.com/LavenderBridge/flashcards/internal/cardfile"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats [file]",
	Short: "Show error statistics for a card file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		d, err := loadDeck(args[0])
		if err != nil {
			fmt.Fprintln(out, "❌ Error reading cards:", err)
			return
		}

		withErrors := 0
		totalErrors := 0
		for _, c := range d.Cards() {
			if c.Errors > 0 {
				withErrors++
				totalErrors += c.Errors
			}
		}

		printTitle(out, "📊 Statistics")
		fmt.Fprintf(out, "Format:           v%d\n", cardfile.Version)
		fmt.Fprintf(out, "Total Cards:      %d\n", d.Len())
		fmt.Fprintf(out, "Cards w/ Errors:  %d\n", withErrors)
		fmt.Fprintf(out, "Total Errors:     %d\n", totalErrors)

		terms, n := d.Hardest()
		if len(terms) == 0 {
			fmt.Fprintln(out, "Hardest:          none 🎉")
			return
		}
		fmt.Fprintf(out, "Hardest:          %s (%d errors)\n", strings.Join(terms, ", "), n)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
