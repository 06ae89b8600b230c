package cmd

import (
	"errors"
	"io/fs"

	"github.com/LavenderBridge/flashcards/internal/cardfile"
	"github.com/LavenderBridge/flashcards/internal/deck"
)

// loadDeck reads a card file into a fresh deck.
func loadDeck(path string) (*deck.Deck, error) {
	cards, err := cardfile.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d := deck.New()
	for _, c := range cards {
		d.Upsert(c)
	}
	return d, nil
}

// loadOrCreateDeck is loadDeck, except that a missing file is an empty deck.
func loadOrCreateDeck(path string) (*deck.Deck, error) {
	d, err := loadDeck(path)
	if errors.Is(err, fs.ErrNotExist) {
		return deck.New(), nil
	}
	return d, err
}

func saveDeck(path string, d *deck.Deck) error {
	return cardfile.WriteFile(path, d.Cards())
}
