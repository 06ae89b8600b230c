package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var forceDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete [file] [term]",
	Short: "Delete a card from a card file",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		path, term := args[0], args[1]

		d, err := loadDeck(path)
		if err != nil {
			fmt.Fprintln(out, "❌ Error reading cards:", err)
			return
		}

		if !d.Has(term) {
			fmt.Fprintf(out, "Can't remove \"%s\": there is no such card.\n", term)
			return
		}

		if !forceDelete {
			fmt.Fprintf(out, "⚠️  Are you sure you want to delete \"%s\"? (y/N): ", term)
			reader := bufio.NewReader(cmd.InOrStdin())
			input, _ := reader.ReadString('\n')
			input = strings.TrimSpace(strings.ToLower(input))
			if input != "y" && input != "yes" {
				fmt.Fprintln(out, "❌ Cancelled.")
				return
			}
		}

		d.Remove(term)
		if err := saveDeck(path, d); err != nil {
			fmt.Fprintln(out, "❌ Error saving cards:", err)
			return
		}

		fmt.Fprintln(out, "✅ The card has been removed.")
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&forceDelete, "force", "f", false, "Skip confirmation")
}
