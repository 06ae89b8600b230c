package cmd

import (
	"errors"
	"fmt"

	"github.com/LavenderBridge/flashcards/internal/deck"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add [file] [term] [definition]",
	Short: "Add a card to a card file",
	Long: `Add a card to a card file, creating the file if needed.
The term and the definition must both be new to the deck.`,
	Args: cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		path, term, definition := args[0], args[1], args[2]

		d, err := loadOrCreateDeck(path)
		if err != nil {
			fmt.Fprintln(out, "❌ Error reading cards:", err)
			return
		}

		if err := d.Add(term, definition); err != nil {
			switch {
			case errors.Is(err, deck.ErrDuplicateTerm):
				fmt.Fprintf(out, "❌ The card \"%s\" already exists.\n", term)
			case errors.Is(err, deck.ErrDuplicateDefinition):
				fmt.Fprintf(out, "❌ The definition \"%s\" already exists.\n", definition)
			default:
				fmt.Fprintln(out, "❌ Error adding card:", err)
			}
			return
		}

		if err := saveDeck(path, d); err != nil {
			fmt.Fprintln(out, "❌ Error saving cards:", err)
			return
		}

		fmt.Fprintf(out, "✅ Added (\"%s\":\"%s\"). %s now has %d cards.\n", term, definition, path, d.Len())
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
