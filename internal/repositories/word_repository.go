package repositories

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/syllablegame/backend/internal/models"
)

//go:embed data/words.json
var defaultCatalog embed.FS

// wordsRepository is a read-only in-memory word catalog
type wordsRepository struct {
	words []models.WordEntry
}

// NewWordsRepository creates a repository over an already validated catalog
func NewWordsRepository(words []models.WordEntry) *wordsRepository {
	return &wordsRepository{words: words}
}

// LoadWordCatalog reads and validates the word catalog
//
// An empty "path" loads the catalog embedded in the binary.
func LoadWordCatalog(path string) ([]models.WordEntry, error) {
	var (
		data []byte
		err  error
	)
	if path == "" {
		data, err = defaultCatalog.ReadFile("data/words.json")
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read word catalog: %w", err)
	}

	return ParseWordCatalog(data)
}

// ParseWordCatalog decodes and validates a JSON word catalog
func ParseWordCatalog(data []byte) ([]models.WordEntry, error) {
	var catalog models.WordCatalog
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to decode word catalog: %w", err)
	}
	if len(catalog.Words) == 0 {
		return nil, fmt.Errorf("word catalog is empty")
	}

	for i, entry := range catalog.Words {
		if err := validateEntry(entry); err != nil {
			return nil, fmt.Errorf("invalid catalog entry %d (%q): %w", i, entry.Word, err)
		}
	}

	return catalog.Words, nil
}

// validateEntry checks that the syllables spell the word
func validateEntry(entry models.WordEntry) error {
	if entry.Word == "" {
		return fmt.Errorf("word is empty")
	}
	if len(entry.Syllables) == 0 {
		return fmt.Errorf("no syllables")
	}
	for _, s := range entry.Syllables {
		if s == "" {
			return fmt.Errorf("empty syllable")
		}
	}
	if joined := strings.Join(entry.Syllables, ""); joined != entry.Word {
		return fmt.Errorf("syllables spell %q", joined)
	}
	if !entry.Difficulty.IsValid() {
		return fmt.Errorf("unknown difficulty %q", entry.Difficulty)
	}
	return nil
}

// GetAll returns every catalog entry
func (r *wordsRepository) GetAll(ctx context.Context) []models.WordEntry {
	return r.words
}

// GetFiltered returns the entries of the given difficulty
//
// An empty "category" matches every category.
func (r *wordsRepository) GetFiltered(ctx context.Context, difficulty models.Difficulty, category string) []models.WordEntry {
	var matches []models.WordEntry
	for _, w := range r.words {
		if w.Difficulty != difficulty {
			continue
		}
		if category != "" && w.Category != category {
			continue
		}
		matches = append(matches, w)
	}
	return matches
}

// GetDifficulties returns the distinct difficulties in first-appearance order
func (r *wordsRepository) GetDifficulties(ctx context.Context) []string {
	return distinct(r.words, func(w models.WordEntry) string { return string(w.Difficulty) })
}

// GetCategories returns the distinct non-empty categories in first-appearance order
func (r *wordsRepository) GetCategories(ctx context.Context) []string {
	return distinct(r.words, func(w models.WordEntry) string { return w.Category })
}

func distinct(words []models.WordEntry, key func(models.WordEntry) string) []string {
	seen := make(map[string]bool)
	values := make([]string, 0)
	for _, w := range words {
		k := key(w)
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		values = append(values, k)
	}
	return values
}
