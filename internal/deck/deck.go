// Package deck holds the in-memory card set and per-card error counts.
package deck

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/LavenderBridge/flashcards/internal/models"
)

var (
	ErrDuplicateTerm       = errors.New("deck: term already exists")
	ErrDuplicateDefinition = errors.New("deck: definition already exists")
	ErrInvalidCard         = errors.New("deck: invalid card")
	ErrNotFound            = errors.New("deck: no such card")
	ErrEmptyDeck           = errors.New("deck: no cards")
)

// Deck is an ordered term -> definition mapping with wrong-answer counts.
// The zero value is not usable; call New.
type Deck struct {
	terms       []string
	definitions map[string]string

	// errTerms keeps first-error order so Hardest is deterministic.
	errTerms []string
	counts   map[string]int
}

func New() *Deck {
	return &Deck{
		definitions: make(map[string]string),
		counts:      make(map[string]int),
	}
}

// Validate rejects values that cannot be stored in a card file. Empty terms
// and definitions are allowed.
func Validate(term, definition string) error {
	if strings.ContainsAny(term, "\r\n") {
		return fmt.Errorf("%w: term contains a line break", ErrInvalidCard)
	}
	if strings.ContainsAny(definition, "\r\n") {
		return fmt.Errorf("%w: definition contains a line break", ErrInvalidCard)
	}
	return nil
}

// Add appends a new card. Duplicate terms and definitions are rejected
// without touching the deck.
func (d *Deck) Add(term, definition string) error {
	if err := Validate(term, definition); err != nil {
		return err
	}
	if d.Has(term) {
		return fmt.Errorf("%w: %q", ErrDuplicateTerm, term)
	}
	if _, ok := d.TermFor(definition); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateDefinition, definition)
	}
	d.terms = append(d.terms, term)
	d.definitions[term] = definition
	return nil
}

// Upsert inserts or overwrites a card with import semantics: no duplicate
// checks, and an existing term keeps its position. A zero error count clears
// the card's error entry.
func (d *Deck) Upsert(c models.Card) {
	if !d.Has(c.Term) {
		d.terms = append(d.terms, c.Term)
	}
	d.definitions[c.Term] = c.Definition
	if c.Errors > 0 {
		d.setErrors(c.Term, c.Errors)
	} else {
		d.clearErrors(c.Term)
	}
}

// SetDefinition replaces the definition of an existing card.
func (d *Deck) SetDefinition(term, definition string) error {
	if err := Validate(term, definition); err != nil {
		return err
	}
	if !d.Has(term) {
		return fmt.Errorf("%w: %q", ErrNotFound, term)
	}
	if other, ok := d.TermFor(definition); ok && other != term {
		return fmt.Errorf("%w: %q", ErrDuplicateDefinition, definition)
	}
	d.definitions[term] = definition
	return nil
}

// Remove deletes a card and its error count. It reports whether the card
// existed.
func (d *Deck) Remove(term string) bool {
	d.clearErrors(term)
	if !d.Has(term) {
		return false
	}
	delete(d.definitions, term)
	d.terms = slices.DeleteFunc(d.terms, func(t string) bool { return t == term })
	return true
}

func (d *Deck) Has(term string) bool {
	_, ok := d.definitions[term]
	return ok
}

func (d *Deck) Definition(term string) (string, bool) {
	def, ok := d.definitions[term]
	return def, ok
}

// TermFor returns the first term, in deck order, whose definition matches.
func (d *Deck) TermFor(definition string) (string, bool) {
	for _, t := range d.terms {
		if d.definitions[t] == definition {
			return t, true
		}
	}
	return "", false
}

func (d *Deck) Len() int {
	return len(d.terms)
}

func (d *Deck) Terms() []string {
	return slices.Clone(d.terms)
}

// Cards returns an ordered snapshot of the deck including error counts.
func (d *Deck) Cards() []models.Card {
	cards := make([]models.Card, 0, len(d.terms))
	for _, t := range d.terms {
		cards = append(cards, models.Card{
			Term:       t,
			Definition: d.definitions[t],
			Errors:     d.counts[t],
		})
	}
	return cards
}

// Errors returns the wrong-answer count for a term; absent means zero.
func (d *Deck) Errors(term string) int {
	return d.counts[term]
}

// Miss records one wrong answer for term.
func (d *Deck) Miss(term string) {
	d.setErrors(term, d.counts[term]+1)
}

// ResetStats drops every error count.
func (d *Deck) ResetStats() {
	d.errTerms = nil
	clear(d.counts)
}

// Hardest returns every term sharing the highest error count, in the order
// their first error was recorded, along with that count. It returns nil and 0
// when no card has errors.
func (d *Deck) Hardest() ([]string, int) {
	var (
		hardest []string
		top     int
	)
	for _, t := range d.errTerms {
		n := d.counts[t]
		switch {
		case n > top:
			top = n
			hardest = append(hardest[:0], t)
		case n == top && n > 0:
			hardest = append(hardest, t)
		}
	}
	return hardest, top
}

// Pick chooses a term uniformly at random.
func (d *Deck) Pick(r *rand.Rand) (string, error) {
	if len(d.terms) == 0 {
		return "", ErrEmptyDeck
	}
	return d.terms[r.IntN(len(d.terms))], nil
}

func (d *Deck) setErrors(term string, n int) {
	if _, ok := d.counts[term]; !ok {
		d.errTerms = append(d.errTerms, term)
	}
	d.counts[term] = n
}

func (d *Deck) clearErrors(term string) {
	if _, ok := d.counts[term]; !ok {
		return
	}
	delete(d.counts, term)
	d.errTerms = slices.DeleteFunc(d.errTerms, func(t string) bool { return t == term })
}
