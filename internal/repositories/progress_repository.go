package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/syllablegame/backend/internal/database"
	"github.com/syllablegame/backend/internal/models"
	"go.uber.org/zap"
)

// statisticsRowID is the id of the singleton aggregate row
const statisticsRowID = 1

type progressRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewProgressRepository creates a new instance of the ProgressRepository interface
func NewProgressRepository(db *sqlx.DB, logger *zap.Logger) *progressRepository {
	return &progressRepository{
		db:     db,
		logger: logger,
	}
}

// ensureStatisticsQuery returns the insert-if-absent statement for the driver
func (r *progressRepository) ensureStatisticsQuery() string {
	if r.db.DriverName() == database.DriverMySQL {
		return `INSERT IGNORE INTO game_statistics (id, last_updated) VALUES (?, ?)`
	}
	return r.db.Rebind(`INSERT INTO game_statistics (id, last_updated) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`)
}

// RecordProgress appends a progress record and folds it into the statistics row
//
// The insert, the insert-if-absent of the singleton and the increment share
// one transaction. Counters are incremented in SQL so concurrent calls never
// lose updates.
func (r *progressRepository) RecordProgress(ctx context.Context, record *models.ProgressRecord) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		r.logger.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := r.insertProgress(ctx, tx, record); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, r.ensureStatisticsQuery(), statisticsRowID, record.CompletedAt); err != nil {
		r.logger.Error("failed to ensure statistics row", zap.Error(err))
		return fmt.Errorf("failed to ensure statistics row: %w", err)
	}

	var easy, medium, hard int
	switch models.Difficulty(record.Difficulty) {
	case models.DifficultyEasy:
		easy = 1
	case models.DifficultyMedium:
		medium = 1
	case models.DifficultyHard:
		hard = 1
	}

	updateQuery := r.db.Rebind(`
		UPDATE game_statistics
		SET total_score = total_score + ?,
			words_completed = words_completed + 1,
			easy_completed = easy_completed + ?,
			medium_completed = medium_completed + ?,
			hard_completed = hard_completed + ?,
			last_updated = ?
		WHERE id = ?
	`)
	result, err := tx.ExecContext(ctx, updateQuery, record.Score, easy, medium, hard, record.CompletedAt, statisticsRowID)
	if err != nil {
		r.logger.Error("failed to update statistics", zap.Error(err))
		return fmt.Errorf("failed to update statistics: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.logger.Error("failed to get rows affected", zap.Error(err))
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("statistics row %d not found", statisticsRowID)
	}

	if err := tx.Commit(); err != nil {
		r.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// insertProgress inserts the record and stores the generated id on it
func (r *progressRepository) insertProgress(ctx context.Context, tx *sqlx.Tx, record *models.ProgressRecord) error {
	query := `INSERT INTO game_progress (word, difficulty, score, completed_at) VALUES (?, ?, ?, ?)`

	// pgx has no LastInsertId
	if r.db.DriverName() == database.DriverPostgres {
		err := tx.QueryRowxContext(ctx, r.db.Rebind(query+` RETURNING id`),
			record.Word, record.Difficulty, record.Score, record.CompletedAt).Scan(&record.ID)
		if err != nil {
			r.logger.Error("failed to insert progress", zap.Error(err))
			return fmt.Errorf("failed to insert progress: %w", err)
		}
		return nil
	}

	result, err := tx.ExecContext(ctx, query, record.Word, record.Difficulty, record.Score, record.CompletedAt)
	if err != nil {
		r.logger.Error("failed to insert progress", zap.Error(err))
		return fmt.Errorf("failed to insert progress: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		record.ID = id
	}
	return nil
}

// GetStatistics returns the singleton aggregate, creating it when absent
func (r *progressRepository) GetStatistics(ctx context.Context) (*models.StatisticsAggregate, error) {
	if _, err := r.db.ExecContext(ctx, r.ensureStatisticsQuery(), statisticsRowID, time.Now().UTC()); err != nil {
		r.logger.Error("failed to ensure statistics row", zap.Error(err))
		return nil, fmt.Errorf("failed to ensure statistics row: %w", err)
	}

	query := r.db.Rebind(`
		SELECT id, total_score, words_completed, easy_completed, medium_completed, hard_completed, last_updated
		FROM game_statistics
		WHERE id = ?
	`)

	var stats models.StatisticsAggregate
	if err := r.db.GetContext(ctx, &stats, query, statisticsRowID); err != nil {
		r.logger.Error("failed to get statistics", zap.Error(err))
		return nil, fmt.Errorf("failed to get statistics: %w", err)
	}

	return &stats, nil
}
