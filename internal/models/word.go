package models

// Difficulty represents the difficulty tier of a word
// Used for filtering words and for the per-difficulty statistics counters
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// IsValid reports whether d is one of the known difficulties
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// WordEntry represents a single word of the static catalog
type WordEntry struct {
	Word       string     `json:"word"`
	Syllables  []string   `json:"syllables"` // concatenation in order equals Word
	Image      string     `json:"image"`
	Difficulty Difficulty `json:"difficulty"`
	Category   string     `json:"category"`
}

// WordCatalog is the on-disk shape of the word list
type WordCatalog struct {
	Words []WordEntry `json:"words"`
}

// WordResponse represents a word in the /get_word response
type WordResponse struct {
	Word         string   `json:"word"`
	Syllables    []string `json:"syllables"`
	Image        string   `json:"image"`
	Difficulty   string   `json:"difficulty"`
	Category     string   `json:"category,omitempty"`
	AudioEnabled bool     `json:"audio_enabled"`
}
