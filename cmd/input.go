package cmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/LavenderBridge/flashcards/internal/db"
	"github.com/LavenderBridge/flashcards/internal/transcript"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readlineReader adapts readline to transcript.LineReader. Ctrl-C and Ctrl-D
// both end the input.
type readlineReader struct {
	rl *readline.Instance
}

func (r readlineReader) ReadLine() (string, error) {
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", io.EOF
	}
	return line, err
}

// newLineReader uses readline for an interactive terminal and a plain
// scanner for anything else (pipes, files, tests).
func newLineReader(cmd *cobra.Command) (transcript.LineReader, func(), error) {
	in := cmd.InOrStdin()
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return transcript.NewScannerReader(in), func() {}, nil
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdin:           f,
		Stdout:          cmd.OutOrStdout(),
	})
	if err != nil {
		return nil, nil, err
	}
	return readlineReader{rl: rl}, func() { _ = rl.Close() }, nil
}

// historyFile keeps typed input next to the default review history, or
// disables readline history when the home directory is unknown.
func historyFile() string {
	dbPath, err := db.DefaultPath()
	if err != nil {
		return ""
	}
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return ""
	}
	return filepath.Join(dir, "input_history")
}
