package game

import (
	"time"

	"github.com/syllablegame/backend/internal/models"
)

// Event is an input to Machine.Handle
type Event interface {
	isEvent()
}

// LoadWord starts a new round with the given filters
type LoadWord struct {
	Difficulty string
	Category   string
}

// WordFetched carries the result of a FetchWord effect
type WordFetched struct {
	Generation int
	Word       *models.WordResponse
	Err        error
}

// Drop places the pool token TokenID into slot Slot
type Drop struct {
	TokenID int
	Slot    int
}

// ProgressSubmitted carries the result of a SubmitProgress effect
type ProgressSubmitted struct {
	Generation int
	Err        error
}

// AdvanceElapsed fires after a round ended, to load the next word
type AdvanceElapsed struct {
	Generation int
}

// ResetElapsed fires after a wrong assembly, to return the tokens to the pool
type ResetElapsed struct {
	Generation int
}

// RefreshStatistics asks for the server statistics
type RefreshStatistics struct{}

// StatisticsFetched carries the result of a FetchStatistics effect
type StatisticsFetched struct {
	Seq   int
	Stats *models.StatisticsResponse
	Err   error
}

// BannerElapsed fires when an error banner has been shown long enough
type BannerElapsed struct {
	Seq int
}

func (LoadWord) isEvent()          {}
func (WordFetched) isEvent()       {}
func (Drop) isEvent()              {}
func (ProgressSubmitted) isEvent() {}
func (AdvanceElapsed) isEvent()    {}
func (ResetElapsed) isEvent()      {}
func (RefreshStatistics) isEvent() {}
func (StatisticsFetched) isEvent() {}
func (BannerElapsed) isEvent()     {}

// Effect is work the caller must perform for the machine
//
// Results are fed back as the matching event.
type Effect interface {
	isEffect()
}

// FetchWord asks for a word; answer with WordFetched
type FetchWord struct {
	Generation int
	Difficulty string
	Category   string
}

// SubmitProgress asks to record a completed word; answer with ProgressSubmitted
type SubmitProgress struct {
	Generation int
	Submission models.ProgressSubmission
}

// FetchStatistics asks for the statistics; answer with StatisticsFetched carrying Seq
type FetchStatistics struct {
	Seq int
}

// Schedule asks to deliver Event after the delay
type Schedule struct {
	After time.Duration
	Event Event
}

func (FetchWord) isEffect()       {}
func (SubmitProgress) isEffect()  {}
func (FetchStatistics) isEffect() {}
func (Schedule) isEffect()        {}
