package deck

import (
	"math/rand/v2"
	"testing"

	"github.com/LavenderBridge/flashcards/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdd(t *testing.T) {
	d := New()
	require.NoError(t, d.Add("france", "paris"))
	require.NoError(t, d.Add("japan", "tokyo"))

	assert.Equal(t, []string{"france", "japan"}, d.Terms())
	def, ok := d.Definition("japan")
	assert.True(t, ok)
	assert.Equal(t, "tokyo", def)
}

func TestAddRejectsDuplicates(t *testing.T) {
	tests := []struct {
		name       string
		term       string
		definition string
		wantErr    error
	}{
		{name: "duplicate term", term: "france", definition: "lyon", wantErr: ErrDuplicateTerm},
		{name: "duplicate definition", term: "germany", definition: "paris", wantErr: ErrDuplicateDefinition},
		{name: "carriage return in term", term: "ger\rmany", definition: "berlin", wantErr: ErrInvalidCard},
		{name: "newline in definition", term: "germany", definition: "ber\nlin", wantErr: ErrInvalidCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			require.NoError(t, d.Add("france", "paris"))
			before := d.Cards()

			err := d.Add(tt.term, tt.definition)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, d.Cards())
		})
	}
}

func TestRemoveClearsErrors(t *testing.T) {
	d := New()
	require.NoError(t, d.Add("france", "paris"))
	d.Miss("france")
	d.Miss("france")

	assert.True(t, d.Remove("france"))
	assert.False(t, d.Has("france"))
	assert.Equal(t, 0, d.Errors("france"))
	assert.False(t, d.Remove("france"))

	terms, n := d.Hardest()
	assert.Empty(t, terms)
	assert.Zero(t, n)
}

func TestUpsert(t *testing.T) {
	d := New()
	require.NoError(t, d.Add("france", "paris"))
	require.NoError(t, d.Add("japan", "tokyo"))
	d.Miss("japan")

	d.Upsert(models.Card{Term: "france", Definition: "tokyo", Errors: 4})
	d.Upsert(models.Card{Term: "japan", Definition: "kyoto", Errors: 0})
	d.Upsert(models.Card{Term: "peru", Definition: "lima", Errors: 1})

	assert.Equal(t, []models.Card{
		{Term: "france", Definition: "tokyo", Errors: 4},
		{Term: "japan", Definition: "kyoto", Errors: 0},
		{Term: "peru", Definition: "lima", Errors: 1},
	}, d.Cards())
}

func TestSetDefinition(t *testing.T) {
	d := New()
	require.NoError(t, d.Add("france", "paris"))
	require.NoError(t, d.Add("japan", "tokyo"))

	require.NoError(t, d.SetDefinition("france", "paris"))
	assert.ErrorIs(t, d.SetDefinition("france", "tokyo"), ErrDuplicateDefinition)
	assert.ErrorIs(t, d.SetDefinition("spain", "madrid"), ErrNotFound)

	require.NoError(t, d.SetDefinition("france", "lyon"))
	def, _ := d.Definition("france")
	assert.Equal(t, "lyon", def)
}

func TestTermFor(t *testing.T) {
	d := New()
	d.Upsert(models.Card{Term: "a", Definition: "x"})
	d.Upsert(models.Card{Term: "b", Definition: "x"})

	term, ok := d.TermFor("x")
	assert.True(t, ok)
	assert.Equal(t, "a", term)

	_, ok = d.TermFor("y")
	assert.False(t, ok)
}

func TestHardest(t *testing.T) {
	tests := []struct {
		name      string
		counts    []models.Card
		wantTerms []string
		wantCount int
	}{
		{
			name: "no errors",
		},
		{
			name:      "single",
			counts:    []models.Card{{Term: "A", Definition: "a", Errors: 2}, {Term: "B", Definition: "b"}},
			wantTerms: []string{"A"},
			wantCount: 2,
		},
		{
			name: "tie excludes lower",
			counts: []models.Card{
				{Term: "A", Definition: "a", Errors: 3},
				{Term: "B", Definition: "b", Errors: 5},
				{Term: "C", Definition: "c", Errors: 5},
			},
			wantTerms: []string{"B", "C"},
			wantCount: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := New()
			for _, c := range tt.counts {
				d.Upsert(c)
			}
			terms, n := d.Hardest()
			assert.Equal(t, tt.wantTerms, terms)
			assert.Equal(t, tt.wantCount, n)
		})
	}
}

func TestResetStats(t *testing.T) {
	d := New()
	d.Upsert(models.Card{Term: "A", Definition: "a", Errors: 3})
	d.Miss("A")
	d.ResetStats()

	terms, n := d.Hardest()
	assert.Empty(t, terms)
	assert.Zero(t, n)
	assert.Zero(t, d.Errors("A"))
	assert.Equal(t, 1, d.Len())
}

func TestPick(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))

	_, err := New().Pick(r)
	assert.ErrorIs(t, err, ErrEmptyDeck)

	d := New()
	require.NoError(t, d.Add("france", "paris"))
	require.NoError(t, d.Add("japan", "tokyo"))

	seen := map[string]bool{}
	for range 100 {
		term, err := d.Pick(r)
		require.NoError(t, err)
		seen[term] = true
	}
	assert.Len(t, seen, 2)
}
