package models

import "time"

// ProgressRecord represents one completed word in the append-only progress log
type ProgressRecord struct {
	ID          int64     `db:"id" json:"id"`
	Word        string    `db:"word" json:"word"`
	Difficulty  string    `db:"difficulty" json:"difficulty"`
	Score       int       `db:"score" json:"score"`
	CompletedAt time.Time `db:"completed_at" json:"completedAt"`
}

// ProgressSubmission represents a validated-or-not progress submission
type ProgressSubmission struct {
	Word       string `json:"word"`
	Difficulty string `json:"difficulty"`
	Score      int    `json:"score"`
}

// SuccessResponse represents the /record_progress response
type SuccessResponse struct {
	Success bool `json:"success"`
}
