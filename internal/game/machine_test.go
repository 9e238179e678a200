package game

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syllablegame/backend/internal/models"
)

func identityRand(n int) int { return n - 1 }

func wordOf(text, difficulty string, syllables ...string) *models.WordResponse {
	return &models.WordResponse{Word: text, Syllables: syllables, Difficulty: difficulty, AudioEnabled: true}
}

// loaded returns a machine with word already fetched
func loaded(t *testing.T, word *models.WordResponse, opts ...Option) *Machine {
	t.Helper()
	m := NewMachine(opts...)
	effects := m.Handle(LoadWord{Difficulty: word.Difficulty})
	require.Len(t, effects, 1)
	fetch, ok := effects[0].(FetchWord)
	require.True(t, ok)

	assert.Empty(t, m.Handle(WordFetched{Generation: fetch.Generation, Word: word}))
	require.Equal(t, StateWordLoaded, m.State())
	return m
}

// place drops the pool tokens spelling parts, in order, into slots 0..n-1
func place(t *testing.T, m *Machine, parts []string) []Effect {
	t.Helper()
	var effects []Effect
	for slot, text := range parts {
		id := -1
		for _, tok := range m.Pool() {
			if tok.Text == text {
				id = tok.ID
				break
			}
		}
		require.NotEqual(t, -1, id, "no pool token %q", text)
		effects = m.Handle(Drop{TokenID: id, Slot: slot})
	}
	return effects
}

func submissions(effects []Effect) []SubmitProgress {
	var out []SubmitProgress
	for _, e := range effects {
		if s, ok := e.(SubmitProgress); ok {
			out = append(out, s)
		}
	}
	return out
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "word_loaded", StateWordLoaded.String())
	assert.Equal(t, "assembling", StateAssembling.String())
	assert.Equal(t, "correct", StateCorrect.String())
	assert.Equal(t, "incorrect", StateIncorrect.String())
	assert.Equal(t, "state(9)", State(9).String())
}

func TestPointsFor(t *testing.T) {
	tests := []struct {
		difficulty string
		expected   int
	}{
		{difficulty: "easy", expected: 10},
		{difficulty: "medium", expected: 20},
		{difficulty: "hard", expected: 30},
		{difficulty: "expert", expected: 10},
		{difficulty: "", expected: 10},
	}

	for _, tt := range tests {
		t.Run(tt.difficulty, func(t *testing.T) {
			assert.Equal(t, tt.expected, PointsFor(tt.difficulty))
		})
	}
}

func TestMachine_LoadWord(t *testing.T) {
	m := NewMachine()
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, "easy", m.Difficulty())

	effects := m.Handle(LoadWord{Difficulty: "hard", Category: "food"})

	require.Len(t, effects, 1)
	assert.Equal(t, FetchWord{Generation: 1, Difficulty: "hard", Category: "food"}, effects[0])
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, "hard", m.Difficulty())

	effects = m.Handle(LoadWord{})
	assert.Equal(t, FetchWord{Generation: 2, Difficulty: "hard"}, effects[0])
}

func TestMachine_WordFetchedShufflesWithoutLeakingSolution(t *testing.T) {
	tests := []struct {
		name      string
		word      *models.WordResponse
		intn      func(int) int
		expectOne bool
	}{
		{name: "identity shuffle is broken up", word: wordOf("elephant", "hard", "el", "e", "phant"), intn: identityRand},
		{name: "zero shuffle", word: wordOf("elephant", "hard", "el", "e", "phant"), intn: func(int) int { return 0 }},
		{name: "repeated fragments", word: wordOf("banana", "hard", "ba", "na", "na"), intn: identityRand},
		{name: "two fragments", word: wordOf("cat", "easy", "c", "at"), intn: identityRand},
		{name: "single fragment", word: wordOf("a", "easy", "a"), intn: identityRand, expectOne: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, tt.word, WithRand(tt.intn))

			pool := m.Pool()
			require.Len(t, pool, len(tt.word.Syllables))
			assert.Len(t, m.Slots(), len(tt.word.Syllables))

			var texts []string
			ids := map[int]bool{}
			for _, tok := range pool {
				texts = append(texts, tok.Text)
				ids[tok.ID] = true
			}
			assert.Len(t, ids, len(pool))
			assert.ElementsMatch(t, tt.word.Syllables, texts)
			if !tt.expectOne {
				assert.NotEqual(t, tt.word.Syllables, texts)
			}
		})
	}
}

func TestMachine_ShuffleRandomNeverLeaks(t *testing.T) {
	word := wordOf("butterfly", "hard", "but", "ter", "fly")
	for i := 0; i < 200; i++ {
		m := loaded(t, word)
		var texts []string
		for _, tok := range m.Pool() {
			texts = append(texts, tok.Text)
		}
		require.NotEqual(t, word.Syllables, texts)
	}
}

func TestMachine_CorrectAssembly(t *testing.T) {
	tests := []struct {
		name          string
		word          *models.WordResponse
		expectedScore int
	}{
		{name: "easy", word: wordOf("cat", "easy", "c", "at"), expectedScore: 10},
		{name: "medium", word: wordOf("rabbit", "medium", "rab", "bit"), expectedScore: 20},
		{name: "hard with repeats", word: wordOf("banana", "hard", "ba", "na", "na"), expectedScore: 30},
		{name: "unknown difficulty", word: wordOf("sun", "expert", "s", "un"), expectedScore: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, tt.word)
			gen := m.Generation()

			effects := place(t, m, tt.word.Syllables)

			subs := submissions(effects)
			require.Len(t, subs, 1)
			assert.Equal(t, models.ProgressSubmission{
				Word: tt.word.Word, Difficulty: tt.word.Difficulty, Score: tt.expectedScore,
			}, subs[0].Submission)
			assert.Equal(t, gen, subs[0].Generation)
			assert.Equal(t, StateCorrect, m.State())
			assert.Equal(t, BannerSuccess, m.Banner().Kind)

			// Score only counts once the server accepted it
			assert.Equal(t, 0, m.Score())

			effects = m.Handle(ProgressSubmitted{Generation: gen})
			assert.Equal(t, tt.expectedScore, m.Score())
			require.Len(t, effects, 2)
			assert.Equal(t, FetchStatistics{Seq: 1}, effects[0])
			assert.Equal(t, Schedule{After: AdvanceDelay, Event: AdvanceElapsed{Generation: gen}}, effects[1])

			// A duplicate acknowledgement does nothing
			assert.Empty(t, m.Handle(ProgressSubmitted{Generation: gen}))
			assert.Equal(t, tt.expectedScore, m.Score())

			effects = m.Handle(AdvanceElapsed{Generation: gen})
			require.Len(t, effects, 1)
			assert.Equal(t, FetchWord{Generation: gen + 1, Difficulty: tt.word.Difficulty}, effects[0])
			assert.Equal(t, StateIdle, m.State())
		})
	}
}

func TestMachine_SubmissionFailureKeepsScore(t *testing.T) {
	m := loaded(t, wordOf("cat", "easy", "c", "at"))
	gen := m.Generation()
	place(t, m, []string{"c", "at"})

	effects := m.Handle(ProgressSubmitted{Generation: gen, Err: errors.New("status 500")})

	assert.Equal(t, 0, m.Score())
	assert.Equal(t, BannerError, m.Banner().Kind)
	require.Len(t, effects, 2)
	assert.IsType(t, BannerElapsed{}, effects[0].(Schedule).Event)
	assert.Equal(t, Schedule{After: AdvanceDelay, Event: AdvanceElapsed{Generation: gen}}, effects[1])

	// A late duplicate of the failure changes nothing
	assert.Empty(t, m.Handle(ProgressSubmitted{Generation: gen}))
	assert.Equal(t, 0, m.Score())
}

func TestMachine_IncorrectAssembly(t *testing.T) {
	m := loaded(t, wordOf("elephant", "hard", "el", "e", "phant"), WithDelays(time.Second, 50*time.Millisecond))
	gen := m.Generation()

	effects := place(t, m, []string{"phant", "e", "el"})

	assert.Empty(t, submissions(effects))
	require.Len(t, effects, 1)
	assert.Equal(t, Schedule{After: 50 * time.Millisecond, Event: ResetElapsed{Generation: gen}}, effects[0])
	assert.Equal(t, StateIncorrect, m.State())
	for _, s := range m.Slots() {
		assert.True(t, s.Flagged)
		assert.NotNil(t, s.Token)
	}

	// Drops are rejected while flagged
	assert.Empty(t, m.Handle(Drop{TokenID: 0, Slot: 0}))

	assert.Empty(t, m.Handle(ResetElapsed{Generation: gen}))
	assert.Equal(t, StateWordLoaded, m.State())

	var texts []string
	for _, tok := range m.Pool() {
		texts = append(texts, tok.Text)
	}
	assert.Equal(t, []string{"phant", "e", "el"}, texts)
	for _, s := range m.Slots() {
		assert.Nil(t, s.Token)
		assert.False(t, s.Flagged)
	}
	assert.Equal(t, 0, m.Score())

	// The word can still be solved afterwards
	subs := submissions(place(t, m, []string{"el", "e", "phant"}))
	assert.Len(t, subs, 1)
}

func TestMachine_DropRules(t *testing.T) {
	m := loaded(t, wordOf("elephant", "hard", "el", "e", "phant"))
	pool := m.Pool()

	// Out of range slot
	assert.Empty(t, m.Handle(Drop{TokenID: pool[0].ID, Slot: 3}))
	assert.Empty(t, m.Handle(Drop{TokenID: pool[0].ID, Slot: -1}))
	assert.Len(t, m.Pool(), 3)
	assert.Equal(t, StateWordLoaded, m.State())

	// Unknown token
	assert.Empty(t, m.Handle(Drop{TokenID: 42, Slot: 0}))
	assert.Len(t, m.Pool(), 3)

	// Accepted drop
	assert.Empty(t, m.Handle(Drop{TokenID: pool[0].ID, Slot: 1}))
	assert.Equal(t, StateAssembling, m.State())
	assert.Len(t, m.Pool(), 2)
	require.NotNil(t, m.Slots()[1].Token)
	assert.Equal(t, pool[0], *m.Slots()[1].Token)

	// Occupied slot rejects
	assert.Empty(t, m.Handle(Drop{TokenID: pool[1].ID, Slot: 1}))
	assert.Len(t, m.Pool(), 2)
	assert.Equal(t, pool[0], *m.Slots()[1].Token)

	// Placed token cannot be dropped again
	assert.Empty(t, m.Handle(Drop{TokenID: pool[0].ID, Slot: 0}))
	assert.Nil(t, m.Slots()[0].Token)
}

func TestMachine_DropWhileIdleIgnored(t *testing.T) {
	m := NewMachine()
	assert.Empty(t, m.Handle(Drop{TokenID: 0, Slot: 0}))
	assert.Equal(t, StateIdle, m.State())
}

func TestMachine_StaleResponsesIgnored(t *testing.T) {
	m := NewMachine()
	first := m.Handle(LoadWord{Difficulty: "easy"})[0].(FetchWord)
	second := m.Handle(LoadWord{Difficulty: "hard"})[0].(FetchWord)
	require.NotEqual(t, first.Generation, second.Generation)

	// Late answer to the superseded request
	assert.Empty(t, m.Handle(WordFetched{Generation: first.Generation, Word: wordOf("cat", "easy", "c", "at")}))
	assert.Equal(t, StateIdle, m.State())
	assert.Nil(t, m.Word())

	assert.Empty(t, m.Handle(WordFetched{Generation: second.Generation, Word: wordOf("banana", "hard", "ba", "na", "na")}))
	assert.Equal(t, "banana", m.Word().Word)

	// A second answer for the current generation is ignored too
	assert.Empty(t, m.Handle(WordFetched{Generation: second.Generation, Word: wordOf("cat", "easy", "c", "at")}))
	assert.Equal(t, "banana", m.Word().Word)
}

func TestMachine_StaleTimersAndSubmissionsIgnored(t *testing.T) {
	m := loaded(t, wordOf("cat", "easy", "c", "at"))
	gen := m.Generation()
	place(t, m, []string{"c", "at"})
	require.Equal(t, StateCorrect, m.State())

	// Player switches difficulty before the submission returns
	m.Handle(LoadWord{Difficulty: "hard"})

	assert.Empty(t, m.Handle(AdvanceElapsed{Generation: gen}))
	assert.Empty(t, m.Handle(ResetElapsed{Generation: gen}))
	assert.Equal(t, gen+1, m.Generation())
	assert.Equal(t, StateIdle, m.State())
}

func TestMachine_LateSubmissionStillScores(t *testing.T) {
	m := loaded(t, wordOf("rabbit", "medium", "rab", "bit"))
	gen := m.Generation()
	place(t, m, []string{"rab", "bit"})
	require.Equal(t, StateCorrect, m.State())

	// The player changes the category inside the advance window
	fetch := m.Handle(LoadWord{Difficulty: "medium", Category: "animals"})[0].(FetchWord)

	// The server recorded the word, so the session score follows it,
	// but the new round is not advanced
	effects := m.Handle(ProgressSubmitted{Generation: gen})
	assert.Equal(t, 20, m.Score())
	assert.Equal(t, []Effect{FetchStatistics{Seq: 1}}, effects)
	assert.Equal(t, StateIdle, m.State())
	assert.Equal(t, fetch.Generation, m.Generation())

	// Only once
	assert.Empty(t, m.Handle(ProgressSubmitted{Generation: gen}))
	assert.Equal(t, 20, m.Score())
}

func TestMachine_LateSubmissionFailureIsQuiet(t *testing.T) {
	m := loaded(t, wordOf("cat", "easy", "c", "at"))
	gen := m.Generation()
	place(t, m, []string{"c", "at"})
	m.Handle(LoadWord{Difficulty: "easy"})

	assert.Empty(t, m.Handle(ProgressSubmitted{Generation: gen, Err: errors.New("status 500")}))
	assert.Equal(t, 0, m.Score())
	assert.Equal(t, BannerNone, m.Banner().Kind)
}

func TestMachine_FailedLoadClearsRound(t *testing.T) {
	tests := []struct {
		name  string
		event func(gen int) WordFetched
	}{
		{name: "error", event: func(gen int) WordFetched { return WordFetched{Generation: gen, Err: errors.New("timeout")} }},
		{name: "nil word", event: func(gen int) WordFetched { return WordFetched{Generation: gen} }},
		{name: "no syllables", event: func(gen int) WordFetched {
			return WordFetched{Generation: gen, Word: &models.WordResponse{Word: "cat"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := loaded(t, wordOf("cat", "easy", "c", "at"))
			fetch := m.Handle(LoadWord{})[0].(FetchWord)

			effects := m.Handle(tt.event(fetch.Generation))
			require.Len(t, effects, 1)
			assert.IsType(t, BannerElapsed{}, effects[0].(Schedule).Event)

			assert.Equal(t, StateIdle, m.State())
			assert.Nil(t, m.Word())
			assert.Empty(t, m.Pool())
			assert.Empty(t, m.Slots())
			assert.Equal(t, BannerError, m.Banner().Kind)
		})
	}
}

func TestMachine_Statistics(t *testing.T) {
	m := NewMachine()

	effects := m.Handle(RefreshStatistics{})
	assert.Equal(t, []Effect{FetchStatistics{Seq: 1}}, effects)

	stats := &models.StatisticsResponse{TotalScore: 20, WordsCompleted: 2, EasyCompleted: 2}
	assert.Empty(t, m.Handle(StatisticsFetched{Seq: 1, Stats: stats}))
	assert.Equal(t, stats, m.Statistics())

	fetch := m.Handle(RefreshStatistics{})[0].(FetchStatistics)
	effects = m.Handle(StatisticsFetched{Seq: fetch.Seq, Err: errors.New("down")})
	assert.Equal(t, stats, m.Statistics())
	assert.Equal(t, BannerError, m.Banner().Kind)
	assert.Equal(t, "Could not load statistics", m.Banner().Message)
	require.Len(t, effects, 1)
	assert.Equal(t, BannerDelay, effects[0].(Schedule).After)
}

func TestMachine_OutOfOrderStatisticsIgnored(t *testing.T) {
	m := NewMachine()

	older := m.Handle(RefreshStatistics{})[0].(FetchStatistics)
	newer := m.Handle(RefreshStatistics{})[0].(FetchStatistics)
	require.Greater(t, newer.Seq, older.Seq)

	fresh := &models.StatisticsResponse{TotalScore: 30, WordsCompleted: 3}
	assert.Empty(t, m.Handle(StatisticsFetched{Seq: newer.Seq, Stats: fresh}))

	// The older answer arrives last
	assert.Empty(t, m.Handle(StatisticsFetched{Seq: older.Seq, Stats: &models.StatisticsResponse{TotalScore: 10, WordsCompleted: 1}}))
	assert.Equal(t, fresh, m.Statistics())

	// An older failure does not raise a banner either
	third := m.Handle(RefreshStatistics{})[0].(FetchStatistics)
	fourth := m.Handle(RefreshStatistics{})[0].(FetchStatistics)
	assert.Empty(t, m.Handle(StatisticsFetched{Seq: third.Seq, Err: errors.New("down")}))
	assert.Equal(t, BannerNone, m.Banner().Kind)
	assert.Empty(t, m.Handle(StatisticsFetched{Seq: fourth.Seq, Stats: fresh}))
	assert.Equal(t, fresh, m.Statistics())
}

func TestMachine_ErrorBannerExpires(t *testing.T) {
	m := NewMachine(WithBannerDelay(time.Second))
	fetch := m.Handle(LoadWord{})[0].(FetchWord)

	effects := m.Handle(WordFetched{Generation: fetch.Generation, Err: errors.New("timeout")})
	require.Len(t, effects, 1)
	expire := effects[0].(Schedule)
	assert.Equal(t, time.Second, expire.After)
	assert.Equal(t, BannerError, m.Banner().Kind)

	assert.Empty(t, m.Handle(expire.Event))
	assert.Equal(t, Banner{}, m.Banner())
}

func TestMachine_StaleBannerExpiryKeepsNewerBanner(t *testing.T) {
	m := NewMachine()
	fetch := m.Handle(RefreshStatistics{})[0].(FetchStatistics)
	first := m.Handle(StatisticsFetched{Seq: fetch.Seq, Err: errors.New("down")})[0].(Schedule)

	fetch = m.Handle(RefreshStatistics{})[0].(FetchStatistics)
	second := m.Handle(StatisticsFetched{Seq: fetch.Seq, Err: errors.New("still down")})[0].(Schedule)

	// The first timer must not hide the second banner early
	m.Handle(first.Event)
	assert.Equal(t, BannerError, m.Banner().Kind)

	m.Handle(second.Event)
	assert.Equal(t, BannerNone, m.Banner().Kind)
}
