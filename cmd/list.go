package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List the cards in a card file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()

		d, err := loadDeck(args[0])
		if err != nil {
			fmt.Fprintln(out, "❌ Error reading cards:", err)
			return
		}

		if d.Len() == 0 {
			fmt.Fprintln(out, "📭 No cards yet. Add one with: flashcards add", args[0], "<term> <definition>")
			return
		}

		printTitle(out, fmt.Sprintf("📚 %d cards in %s", d.Len(), args[0]))

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "#\tTerm\tDefinition\tErrors")
		fmt.Fprintln(w, "-\t----\t----------\t------")

		for i, c := range d.Cards() {
			fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", i+1, c.Term, c.Definition, c.Errors)
		}
		w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
