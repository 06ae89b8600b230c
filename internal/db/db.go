package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/LavenderBridge/flashcards/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the quiz history across sessions. It satisfies
// session.ReviewRecorder.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// DefaultPath returns ~/.flashcards/history.db.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".flashcards", "history.db"), nil
}

func NewStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("cannot create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// One writer; the CLI never touches the history concurrently.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func initSchema(db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS reviews (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		term TEXT NOT NULL,
		answer TEXT NOT NULL,
		correct BOOLEAN NOT NULL,
		reviewed_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_reviews_term ON reviews (term);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("create reviews table: %w", err)
	}
	return nil
}

func (s *Store) AddReview(ctx context.Context, r models.Review) error {
	if r.ReviewedAt.IsZero() {
		r.ReviewedAt = s.now()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reviews (term, answer, correct, reviewed_at)
		VALUES (?, ?, ?, ?)`,
		r.Term, r.Answer, r.Correct, r.ReviewedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert review for %q: %w", r.Term, err)
	}
	return nil
}

// ListReviews returns the most recent reviews first. An empty term lists
// every card; a limit of zero or less means no limit.
func (s *Store) ListReviews(ctx context.Context, term string, limit int) ([]models.Review, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, term, answer, correct, reviewed_at
		FROM reviews
		WHERE ? = '' OR term = ?
		ORDER BY reviewed_at DESC, id DESC
		LIMIT ?`, term, term, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []models.Review
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(&r.ID, &r.Term, &r.Answer, &r.Correct, &r.ReviewedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

func (s *Store) GetReviewStats(ctx context.Context) (*models.ReviewStats, error) {
	stats := &models.ReviewStats{
		MissesByTerm: make(map[string]int),
	}

	var correct sql.NullInt64
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*), SUM(correct) FROM reviews").
		Scan(&stats.TotalReviews, &correct); err != nil {
		return nil, err
	}
	stats.CorrectReviews = int(correct.Int64)
	if stats.TotalReviews > 0 {
		stats.Accuracy = float64(stats.CorrectReviews) / float64(stats.TotalReviews)
	}

	weekAgo := s.now().UTC().AddDate(0, 0, -7)
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM reviews WHERE reviewed_at > ?", weekAgo).
		Scan(&stats.ReviewsLast7Days); err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, "SELECT term, COUNT(*) FROM reviews WHERE NOT correct GROUP BY term")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var term string
		var misses int
		if err := rows.Scan(&term, &misses); err != nil {
			return nil, err
		}
		stats.MissesByTerm[term] = misses
	}

	return stats, rows.Err()
}
