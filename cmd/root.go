package cmd

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"strings"

	"github.com/LavenderBridge/flashcards/internal/config"
	"github.com/LavenderBridge/flashcards/internal/db"
	"github.com/LavenderBridge/flashcards/internal/session"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "An interactive flashcard study tool",
	Long: `Flashcards keeps a deck of term/definition cards, quizzes you on it and
counts your wrong answers so you know which card is the hardest.

Run without a subcommand to start an interactive session. Use --import to
load a card file before the first prompt and --export to save the deck
when you exit.`,
	Args: cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
			return nil
		}

		var err error
		cfg, err = config.Load(cfgFile, cmd.Flags())
		if err != nil {
			return err
		}

		logger := cfg.NewLogger(cmd.ErrOrStderr())
		cmd.SetContext(config.WithLogger(cmd.Context(), logger))
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		in, closeInput, err := newLineReader(cmd)
		if err != nil {
			return err
		}
		defer closeInput()

		opts := sessionOptions(ctx)
		store, err := openHistory()
		if err != nil {
			return err
		}
		if store != nil {
			defer store.Close()
			opts.Recorder = store
		}

		return session.New(in, cmd.OutOrStdout(), opts).Run(ctx)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./flashcards.yaml)")
	rootCmd.PersistentFlags().String("history", "", "SQLite file recording every quiz answer (disabled when empty)")
	rootCmd.PersistentFlags().String("log-level", "", "Diagnostic log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Uint64("seed", 0, "Seed for the quiz order (random when 0)")

	rootCmd.Flags().String("import", "", "Card file to load before the first prompt")
	rootCmd.Flags().String("export", "", "Card file to write when the session ends")
}

// Execute runs the root command with the process arguments.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd.SetArgs(normalizeArgs(os.Args[1:]))
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "❌", err)
		stop()
		os.Exit(1)
	}
}

var longFlags = map[string]bool{
	"import":    true,
	"export":    true,
	"config":    true,
	"history":   true,
	"log-level": true,
	"seed":      true,
}

// normalizeArgs accepts the single-dash spelling of long flags
// ("-import cards.txt") by rewriting it to the double-dash form pflag
// expects. Arguments after "--" are left alone.
func normalizeArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, a := range args {
		if a == "--" {
			return append(out, args[i:]...)
		}
		if strings.HasPrefix(a, "-") && !strings.HasPrefix(a, "--") {
			name, _, _ := strings.Cut(a[1:], "=")
			if longFlags[name] {
				a = "-" + a
			}
		}
		out = append(out, a)
	}
	return out
}

func sessionOptions(ctx context.Context) session.Options {
	opts := session.Options{
		ImportPath: cfg.ImportPath,
		ExportPath: cfg.ExportPath,
		Logger:     config.GetLogger(ctx),
	}
	if cfg.Seed != 0 {
		opts.Rand = rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	}
	return opts
}

// openHistory opens the review history when one is configured. It returns a
// nil store otherwise.
func openHistory() (*db.Store, error) {
	if cfg.HistoryPath == "" {
		return nil, nil
	}
	store, err := db.NewStore(cfg.HistoryPath)
	if err != nil {
		return nil, fmt.Errorf("open history %s: %w", cfg.HistoryPath, err)
	}
	return store, nil
}
