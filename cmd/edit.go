package cmd

import (
	"errors"
	"fmt"

	"github.com/LavenderBridge/flashcards/internal/deck"
	"github.com/LavenderBridge/flashcards/internal/models"
	"github.com/spf13/cobra"
)

var (
	editDefinition string
	editErrors     int
)

var editCmd = &cobra.Command{
	Use:   "edit [file] [term]",
	Short: "Edit a card's definition or error count",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		path, term := args[0], args[1]

		if !cmd.Flags().Changed("definition") && !cmd.Flags().Changed("errors") {
			fmt.Fprintln(out, "⚠️ Nothing to change. Use --definition and/or --errors.")
			return
		}

		d, err := loadDeck(path)
		if err != nil {
			fmt.Fprintln(out, "❌ Error reading cards:", err)
			return
		}

		if !d.Has(term) {
			fmt.Fprintf(out, "❌ There is no card \"%s\" in %s.\n", term, path)
			return
		}

		// Apply updates
		if cmd.Flags().Changed("definition") {
			if err := d.SetDefinition(term, editDefinition); err != nil {
				if errors.Is(err, deck.ErrDuplicateDefinition) {
					fmt.Fprintf(out, "❌ The definition \"%s\" already exists.\n", editDefinition)
				} else {
					fmt.Fprintln(out, "❌ Error updating card:", err)
				}
				return
			}
		}
		if cmd.Flags().Changed("errors") {
			if editErrors < 0 {
				fmt.Fprintln(out, "❌ Error count cannot be negative")
				return
			}
			definition, _ := d.Definition(term)
			d.Upsert(models.Card{Term: term, Definition: definition, Errors: editErrors})
		}

		if err := saveDeck(path, d); err != nil {
			fmt.Fprintln(out, "❌ Error saving cards:", err)
			return
		}

		fmt.Fprintln(out, "✅ Card updated successfully!")
	},
}

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVar(&editDefinition, "definition", "", "New definition")
	editCmd.Flags().IntVar(&editErrors, "errors", 0, "New error count (0 clears it)")
}
