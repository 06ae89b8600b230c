package models

import "time"

// Card represents a single term/definition pair in a deck.
type Card struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Errors     int    `json:"errors"` // Wrong answers since the last reset
}

// Review represents a single quiz trial for a card.
type Review struct {
	ID         int       `json:"id"`
	Term       string    `json:"term"`
	Answer     string    `json:"answer"`
	Correct    bool      `json:"correct"`
	ReviewedAt time.Time `json:"reviewed_at"`
}

type ReviewStats struct {
	TotalReviews     int
	CorrectReviews   int
	ReviewsLast7Days int
	Accuracy         float64
	MissesByTerm     map[string]int
}
