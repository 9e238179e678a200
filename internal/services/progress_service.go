package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/syllablegame/backend/internal/models"
	"go.uber.org/zap"
)

// ErrInvalidProgress is returned when a progress submission fails validation
var ErrInvalidProgress = errors.New("invalid progress")

// ProgressRepository is the interface that wraps methods for game_progress and game_statistics data access
type ProgressRepository interface {
	// Method RecordProgress appends "record" to the progress log and applies it to the statistics row.
	//
	// Both writes happen in one transaction: on error nothing is persisted.
	// On success record.ID holds the generated id when the driver reports it.
	RecordProgress(ctx context.Context, record *models.ProgressRecord) error
	// Method GetStatistics retrieve the singleton statistics row, creating a zeroed one when absent.
	GetStatistics(ctx context.Context) (*models.StatisticsAggregate, error)
}

// StatisticsCache is an optional read-through cache of the statistics response
type StatisticsCache interface {
	// Method GetStatistics returns the cached response, nil on a miss, and the current cache version.
	GetStatistics(ctx context.Context) (*models.StatisticsResponse, int64, error)
	// Method SetStatistics stores "stats" only while the cache version still equals "version".
	SetStatistics(ctx context.Context, version int64, stats *models.StatisticsResponse) (bool, error)
	// Method InvalidateStatistics bumps the cache version and drops the cached response.
	InvalidateStatistics(ctx context.Context) error
}

// Bounds of the game_progress columns
const (
	MaxWordLength = 100
	MaxScore      = math.MaxInt32
)

type progressService struct {
	repo   ProgressRepository
	cache  StatisticsCache
	logger *zap.Logger
	now    func() time.Time
}

// NewProgressService creates a new progress service
//
// "cache" may be nil, in which case every statistics read goes to the repository.
func NewProgressService(repo ProgressRepository, cache StatisticsCache, logger *zap.Logger) *progressService {
	return &progressService{
		repo:   repo,
		cache:  cache,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// validateSubmission checks a submission before anything is written
func validateSubmission(submission *models.ProgressSubmission) error {
	if strings.TrimSpace(submission.Word) == "" {
		return fmt.Errorf("%w: word is required", ErrInvalidProgress)
	}
	if utf8.RuneCountInString(submission.Word) > MaxWordLength {
		return fmt.Errorf("%w: word must be at most %d characters", ErrInvalidProgress, MaxWordLength)
	}
	if !models.Difficulty(submission.Difficulty).IsValid() {
		return fmt.Errorf("%w: difficulty must be one of easy, medium, hard", ErrInvalidProgress)
	}
	if submission.Score < 0 || submission.Score > MaxScore {
		return fmt.Errorf("%w: score must be an integer between 0 and %d", ErrInvalidProgress, MaxScore)
	}
	return nil
}

// RecordProgress validates and persists a completed word
func (s *progressService) RecordProgress(ctx context.Context, submission *models.ProgressSubmission) error {
	if err := validateSubmission(submission); err != nil {
		return err
	}

	record := &models.ProgressRecord{
		Word:        submission.Word,
		Difficulty:  submission.Difficulty,
		Score:       submission.Score,
		CompletedAt: s.now(),
	}

	if err := s.repo.RecordProgress(ctx, record); err != nil {
		s.logger.Error("failed to record progress",
			zap.String("word", submission.Word),
			zap.String("difficulty", submission.Difficulty),
			zap.Error(err),
		)
		return fmt.Errorf("failed to record progress: %w", err)
	}

	s.logger.Info("progress recorded",
		zap.Int64("id", record.ID),
		zap.String("word", record.Word),
		zap.String("difficulty", record.Difficulty),
		zap.Int("score", record.Score),
	)

	if s.cache != nil {
		if err := s.cache.InvalidateStatistics(ctx); err != nil {
			s.logger.Warn("failed to invalidate statistics cache", zap.Error(err))
		}
	}

	return nil
}

// GetStatistics returns the running totals
//
// Cache errors are logged and fall through to the repository. A miss is
// filled only if no invalidation happened since the miss was observed.
func (s *progressService) GetStatistics(ctx context.Context) (*models.StatisticsResponse, error) {
	var (
		version   int64
		fillCache bool
	)
	if s.cache != nil {
		cached, v, err := s.cache.GetStatistics(ctx)
		switch {
		case err != nil:
			s.logger.Warn("failed to read statistics cache", zap.Error(err))
		case cached != nil:
			return cached, nil
		default:
			version, fillCache = v, true
		}
	}

	stats, err := s.repo.GetStatistics(ctx)
	if err != nil {
		s.logger.Error("failed to get statistics", zap.Error(err))
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	response := stats.Response()
	if fillCache {
		stored, err := s.cache.SetStatistics(ctx, version, response)
		if err != nil {
			s.logger.Warn("failed to write statistics cache", zap.Error(err))
		} else if !stored {
			s.logger.Debug("statistics changed during read, cache not filled", zap.Int64("version", version))
		}
	}

	return response, nil
}
