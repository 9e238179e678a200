package services

import (
	"context"
	"errors"
	"math/rand"

	"github.com/syllablegame/backend/internal/models"
	"go.uber.org/zap"
)

// ErrEmptyCatalog is returned when there is no word to pick from
var ErrEmptyCatalog = errors.New("word catalog is empty")

// WordsRepository is the interface that wraps methods for word catalog access
type WordsRepository interface {
	// Method GetAll retrieve every catalog entry in catalog order.
	GetAll(ctx context.Context) []models.WordEntry
	// Method GetFiltered retrieve entries of "difficulty", restricted to "category" when it is not empty.
	GetFiltered(ctx context.Context, difficulty models.Difficulty, category string) []models.WordEntry
	// Method GetDifficulties retrieve distinct difficulties in first-appearance order.
	GetDifficulties(ctx context.Context) []string
	// Method GetCategories retrieve distinct non-empty categories in first-appearance order.
	GetCategories(ctx context.Context) []string
}

type wordsService struct {
	repo   WordsRepository
	logger *zap.Logger
	intn   func(n int) int
}

// NewWordsService creates a new word service
func NewWordsService(repo WordsRepository, logger *zap.Logger) *wordsService {
	return &wordsService{
		repo:   repo,
		logger: logger,
		intn:   rand.Intn,
	}
}

// GetWord picks a random word
//
// An empty difficulty means easy. When nothing matches the filter the whole catalog is used.
func (s *wordsService) GetWord(ctx context.Context, difficulty string, category string) (*models.WordResponse, error) {
	if difficulty == "" {
		difficulty = string(models.DifficultyEasy)
	}

	candidates := s.repo.GetFiltered(ctx, models.Difficulty(difficulty), category)
	if len(candidates) == 0 {
		s.logger.Debug("no words match filter, using whole catalog",
			zap.String("difficulty", difficulty),
			zap.String("category", category),
		)
		candidates = s.repo.GetAll(ctx)
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyCatalog
	}

	word := candidates[s.intn(len(candidates))]

	return &models.WordResponse{
		Word:         word.Word,
		Syllables:    append([]string(nil), word.Syllables...),
		Image:        word.Image,
		Difficulty:   string(word.Difficulty),
		Category:     word.Category,
		AudioEnabled: true,
	}, nil
}

// GetDifficulties returns the distinct difficulties of the catalog
func (s *wordsService) GetDifficulties(ctx context.Context) []string {
	return s.repo.GetDifficulties(ctx)
}

// GetCategories returns the distinct categories of the catalog
func (s *wordsService) GetCategories(ctx context.Context) []string {
	return s.repo.GetCategories(ctx)
}
