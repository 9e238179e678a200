package models

import "time"

// StatisticsAggregate represents the singleton running-totals row
//
// Fields are CamelCase in Go and snake_case in the game_statistics table.
type StatisticsAggregate struct {
	ID              int64     `db:"id"`
	TotalScore      int64     `db:"total_score"`
	WordsCompleted  int64     `db:"words_completed"`
	EasyCompleted   int64     `db:"easy_completed"`
	MediumCompleted int64     `db:"medium_completed"`
	HardCompleted   int64     `db:"hard_completed"`
	LastUpdated     time.Time `db:"last_updated"`
}

// StatisticsResponse represents statistics in the /get_statistics response
type StatisticsResponse struct {
	TotalScore      int64 `json:"total_score"`
	WordsCompleted  int64 `json:"words_completed"`
	EasyCompleted   int64 `json:"easy_completed"`
	MediumCompleted int64 `json:"medium_completed"`
	HardCompleted   int64 `json:"hard_completed"`
}

// Response converts the aggregate into its API representation
func (s *StatisticsAggregate) Response() *StatisticsResponse {
	return &StatisticsResponse{
		TotalScore:      s.TotalScore,
		WordsCompleted:  s.WordsCompleted,
		EasyCompleted:   s.EasyCompleted,
		MediumCompleted: s.MediumCompleted,
		HardCompleted:   s.HardCompleted,
	}
}
