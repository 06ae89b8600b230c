package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/LavenderBridge/flashcards/internal/session"
	"github.com/spf13/cobra"
)

var reviewCount int

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Quiz yourself on a card file",
	Long: `Start a quiz on a card file without entering the interactive menu.
Cards are picked at random; wrong answers are counted and written back to
the file when the quiz ends. By default you are asked as many times as the
deck has cards.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		path := args[0]

		in, closeInput, err := newLineReader(cmd)
		if err != nil {
			fmt.Fprintln(out, "❌ Input error:", err)
			return
		}
		defer closeInput()

		opts := sessionOptions(ctx)
		opts.ImportPath, opts.ExportPath = "", ""
		store, err := openHistory()
		if err != nil {
			fmt.Fprintln(out, "❌ Database error:", err)
			return
		}
		if store != nil {
			defer store.Close()
			opts.Recorder = store
		}

		s := session.New(in, out, opts)
		if _, err := s.ImportFile(path); err != nil {
			return
		}

		n := reviewCount
		if n <= 0 {
			n = s.Deck().Len()
		}
		if err := s.AskN(ctx, n); err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintln(out, "❌ Review interrupted:", err)
			return
		}

		if _, err := s.ExportFile(path); err != nil {
			return
		}
		s.Hardest()
		fmt.Fprintln(out, "🎉 Review session complete!")
	},
}

func init() {
	rootCmd.AddCommand(reviewCmd)
	reviewCmd.Flags().IntVarP(&reviewCount, "count", "n", 0, "How many times to ask (default: once per card)")
}
