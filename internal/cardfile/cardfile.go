// Package cardfile reads and writes the line-oriented card file format.
//
// Version 1 of the format is a sequence of three-line records with no header
// and no separators:
//
//	<term>
//	<definition>
//	<error count>
//
// Terms and definitions cannot contain line breaks, including a carriage
// return anywhere but at the end of a line. Records are written in
// deck order and read back all-or-nothing: a malformed file yields a
// *ParseError and no cards.
package cardfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/LavenderBridge/flashcards/internal/deck"
	"github.com/LavenderBridge/flashcards/internal/models"
)

// Version is the card file format version written by Encode.
const Version = 1

const linesPerRecord = 3

var ErrMalformed = errors.New("cardfile: malformed card file")

// ParseError reports the line at which decoding failed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() []error {
	return []error{ErrMalformed, e.Err}
}

// Decode parses every record in r.
func Decode(r io.Reader) ([]models.Card, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var (
		cards  []models.Card
		record []string
		line   int
	)
	for sc.Scan() {
		line++
		record = append(record, strings.TrimSuffix(sc.Text(), "\r"))
		if len(record) < linesPerRecord {
			continue
		}

		card, err := parseRecord(record)
		if err != nil {
			return nil, &ParseError{Line: line, Err: err}
		}
		cards = append(cards, card)
		record = record[:0]
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read card file: %w", err)
	}
	if len(record) > 0 {
		return nil, &ParseError{
			Line: line,
			Err:  fmt.Errorf("incomplete record: got %d of %d lines", len(record), linesPerRecord),
		}
	}
	return cards, nil
}

func parseRecord(record []string) (models.Card, error) {
	term, definition, count := record[0], record[1], record[2]
	if err := deck.Validate(term, definition); err != nil {
		return models.Card{}, err
	}

	n, err := strconv.Atoi(count)
	if err != nil {
		return models.Card{}, fmt.Errorf("invalid error count %q", count)
	}
	if n < 0 {
		return models.Card{}, fmt.Errorf("negative error count %d", n)
	}

	return models.Card{Term: term, Definition: definition, Errors: n}, nil
}

// Encode writes cards as three-line records. Nothing is written if any card
// contains a line break.
func Encode(w io.Writer, cards []models.Card) error {
	for _, c := range cards {
		if err := deck.Validate(c.Term, c.Definition); err != nil {
			return fmt.Errorf("card %q: %w", c.Term, err)
		}
	}

	bw := bufio.NewWriter(w)
	for _, c := range cards {
		if _, err := fmt.Fprintf(bw, "%s\n%s\n%d\n", c.Term, c.Definition, c.Errors); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadFile decodes the card file at path. A missing file yields an error
// matching fs.ErrNotExist.
func ReadFile(path string) ([]models.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	cards, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cards, nil
}

// WriteFile overwrites path with the given cards.
func WriteFile(path string, cards []models.Card) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Encode(f, cards)
}
