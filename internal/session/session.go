// Package session implements the interactive flashcard command loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/LavenderBridge/flashcards/internal/cardfile"
	"github.com/LavenderBridge/flashcards/internal/deck"
	"github.com/LavenderBridge/flashcards/internal/models"
	"github.com/LavenderBridge/flashcards/internal/transcript"
)

const actionPrompt = "Input the action (add, remove, import, export, ask, exit, log, hardest card, reset stats):"

// ReviewRecorder receives every quiz trial. internal/db implements it
// on top of SQLite.
type ReviewRecorder interface {
	AddReview(ctx context.Context, r models.Review) error
}

// Options configures a Session. Every field is optional.
type Options struct {
	// ImportPath is loaded once before the first prompt.
	ImportPath string
	// ExportPath is written once when the user exits.
	ExportPath string

	Logger   *slog.Logger
	Rand     *rand.Rand
	Recorder ReviewRecorder
	Now      func() time.Time
}

// Session owns one deck and the console it is studied through.
type Session struct {
	deck     *deck.Deck
	con      *transcript.Console
	log      *slog.Logger
	rand     *rand.Rand
	recorder ReviewRecorder
	now      func() time.Time

	importPath string
	exportPath string
}

func New(in transcript.LineReader, out io.Writer, opts Options) *Session {
	s := &Session{
		deck:       deck.New(),
		con:        transcript.NewConsole(in, out),
		log:        opts.Logger,
		rand:       opts.Rand,
		recorder:   opts.Recorder,
		now:        opts.Now,
		importPath: opts.ImportPath,
		exportPath: opts.ExportPath,
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if s.rand == nil {
		s.rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

func (s *Session) Deck() *deck.Deck {
	return s.deck
}

func (s *Session) Transcript() *transcript.Transcript {
	return s.con.Transcript()
}

// Run imports the startup file, then reads and dispatches actions until the
// user exits or input ends. Both end the session the same way: a goodbye and
// the exit export. A failed read also ends the session that way before its
// error is returned; a cancelled context returns immediately.
func (s *Session) Run(ctx context.Context) error {
	if s.importPath != "" {
		_, _ = s.ImportFile(s.importPath)
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.con.Println(actionPrompt)
		action, err := s.con.ReadLine()
		if errors.Is(err, io.EOF) {
			s.log.Debug("input closed, exiting")
			return s.exit()
		}
		if err != nil {
			s.log.Error("input failed, exiting", "error", err)
			_ = s.exit()
			return fmt.Errorf("read action: %w", err)
		}

		if action == "exit" {
			return s.exit()
		}
		if err := s.dispatch(ctx, action); err != nil {
			if errors.Is(err, io.EOF) {
				s.log.Debug("input closed mid-command, exiting", "action", action)
				return s.exit()
			}
			if ctx.Err() == nil {
				s.log.Error("command failed, exiting", "action", action, "error", err)
				_ = s.exit()
			}
			return fmt.Errorf("%s: %w", action, err)
		}
	}
}

func (s *Session) dispatch(ctx context.Context, action string) error {
	s.log.Debug("dispatch", "action", action)

	switch action {
	case "add":
		return s.Add()
	case "remove":
		return s.Remove()
	case "import":
		return s.Import()
	case "export":
		return s.Export()
	case "ask":
		return s.Ask(ctx)
	case "log":
		return s.SaveLog()
	case "hardest card":
		s.Hardest()
	case "reset stats":
		s.ResetStats()
	default:
		s.con.Println("Unsuitable action, please, try again")
	}
	return nil
}

func (s *Session) exit() error {
	s.con.Println("Bye bye!")
	if s.exportPath != "" {
		_, _ = s.ExportFile(s.exportPath)
	}
	return nil
}

// Add prompts for a new card.
func (s *Session) Add() error {
	s.con.Println("The card:")
	term, err := s.con.ReadLine()
	if err != nil {
		return err
	}
	if s.deck.Has(term) {
		s.con.Printf("The card \"%s\" already exists.", term)
		return nil
	}

	s.con.Println("The definition of the card:")
	definition, err := s.con.ReadLine()
	if err != nil {
		return err
	}

	if err := s.deck.Add(term, definition); err != nil {
		switch {
		case errors.Is(err, deck.ErrDuplicateDefinition):
			s.con.Printf("The definition \"%s\" already exists.", definition)
		case errors.Is(err, deck.ErrDuplicateTerm):
			s.con.Printf("The card \"%s\" already exists.", term)
		default:
			s.con.Printf("Can't add the card: %s.", strings.TrimPrefix(err.Error(), "deck: "))
		}
		return nil
	}

	s.con.Printf("The pair (\"%s\":\"%s\") has been added.", term, definition)
	return nil
}

// Remove prompts for a term and deletes its card.
func (s *Session) Remove() error {
	s.con.Println("The card:")
	term, err := s.con.ReadLine()
	if err != nil {
		return err
	}

	if s.deck.Remove(term) {
		s.con.Println("The card has been removed.")
	} else {
		s.con.Printf("Can't remove \"%s\": there is no such card.", term)
	}
	return nil
}

// Import prompts for a file name and loads it.
func (s *Session) Import() error {
	s.con.Println("File name:")
	path, err := s.con.ReadLine()
	if err != nil {
		return err
	}
	_, _ = s.ImportFile(path)
	return nil
}

// ImportFile upserts every card in path into the deck and returns how many
// records were read. The deck is untouched when the file is missing or
// malformed.
func (s *Session) ImportFile(path string) (int, error) {
	cards, err := cardfile.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		s.con.Println("not found")
		return 0, err
	case errors.Is(err, cardfile.ErrMalformed):
		s.log.Warn("malformed card file", "path", path, "error", err)
		s.con.Printf("Malformed card file: %v", err)
		return 0, err
	case err != nil:
		s.con.Printf("An exception occurs %v", err)
		return 0, err
	}

	for _, c := range cards {
		s.deck.Upsert(c)
	}
	s.log.Info("cards imported", "path", path, "count", len(cards))
	s.con.Printf("%d cards have been loaded.", len(cards))
	return len(cards), nil
}

// Export prompts for a file name and saves the deck to it.
func (s *Session) Export() error {
	s.con.Println("File name:")
	path, err := s.con.ReadLine()
	if err != nil {
		return err
	}
	_, _ = s.ExportFile(path)
	return nil
}

// ExportFile overwrites path with the deck in order and returns how many
// cards were written.
func (s *Session) ExportFile(path string) (int, error) {
	cards := s.deck.Cards()
	if err := cardfile.WriteFile(path, cards); err != nil {
		s.log.Warn("export failed", "path", path, "error", err)
		s.con.Printf("An exception occurs %v", err)
		return 0, err
	}
	s.log.Info("cards exported", "path", path, "count", len(cards))
	s.con.Printf("%d cards have been saved.", len(cards))
	return len(cards), nil
}

// Ask prompts for a number of trials and runs them.
func (s *Session) Ask(ctx context.Context) error {
	s.con.Println("How many times to ask?")
	raw, err := s.con.ReadLine()
	if err != nil {
		return err
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		s.con.Printf("Invalid number of times: \"%s\".", raw)
		return nil
	}
	return s.AskN(ctx, n)
}

// AskN runs n quiz trials, each on a card picked uniformly at random with
// replacement.
func (s *Session) AskN(ctx context.Context, n int) error {
	if n > 0 && s.deck.Len() == 0 {
		s.con.Println("There are no cards to ask.")
		return nil
	}

	for range n {
		if err := ctx.Err(); err != nil {
			return err
		}

		term, err := s.deck.Pick(s.rand)
		if err != nil {
			return err
		}
		s.con.Printf("Print the definition of \"%s\":", term)
		answer, err := s.con.ReadLine()
		if err != nil {
			return err
		}
		s.check(ctx, term, answer)
	}
	return nil
}

func (s *Session) check(ctx context.Context, term, answer string) {
	want, _ := s.deck.Definition(term)
	correct := answer == want

	switch other, ok := s.deck.TermFor(answer); {
	case correct:
		s.con.Println("Correct answer.")
	case ok:
		s.deck.Miss(term)
		s.con.Printf("Wrong answer. The correct one is \"%s\", you've just written the definition of \"%s\".", want, other)
	default:
		s.deck.Miss(term)
		s.con.Printf("Wrong answer. The correct one is \"%s\".", want)
	}

	if s.recorder == nil {
		return
	}
	err := s.recorder.AddReview(ctx, models.Review{
		Term:       term,
		Answer:     answer,
		Correct:    correct,
		ReviewedAt: s.now(),
	})
	if err != nil {
		s.log.Warn("failed to record review", "term", term, "error", err)
	}
}

// SaveLog prompts for a file name and writes the transcript to it.
func (s *Session) SaveLog() error {
	s.con.Println("File name:")
	path, err := s.con.ReadLine()
	if err != nil {
		return err
	}

	if err := s.con.Transcript().Save(path); err != nil {
		s.log.Warn("log save failed", "path", path, "error", err)
		s.con.Printf("An exception occurs %v", err)
		return nil
	}
	s.con.Println("The log has been saved.")
	return nil
}

// Hardest reports the card or cards with the most wrong answers.
func (s *Session) Hardest() {
	terms, n := s.deck.Hardest()
	switch len(terms) {
	case 0:
		s.con.Println("There are no cards with errors.")
	case 1:
		s.con.Printf("The hardest card is \"%s\". You have %d errors answering it.", terms[0], n)
	default:
		quoted := make([]string, len(terms))
		for i, t := range terms {
			quoted[i] = "\"" + t + "\""
		}
		s.con.Printf("The hardest cards are %s. You have %d errors answering them.", strings.Join(quoted, ", "), n)
	}
}

// ResetStats clears every error count.
func (s *Session) ResetStats() {
	s.deck.ResetStats()
	s.con.Println("Card statistics have been reset.")
}
