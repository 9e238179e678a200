// Package game implements the syllable assembly round as a state machine
// independent of any UI toolkit.
package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/syllablegame/backend/internal/models"
)

// State of the current round
type State int

const (
	StateIdle State = iota
	StateWordLoaded
	StateAssembling
	StateCorrect
	StateIncorrect
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateWordLoaded:
		return "word_loaded"
	case StateAssembling:
		return "assembling"
	case StateCorrect:
		return "correct"
	case StateIncorrect:
		return "incorrect"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

const (
	// AdvanceDelay is the pause between a finished round and the next word
	AdvanceDelay = time.Second
	// ResetDelay is how long a wrong assembly stays flagged
	ResetDelay = 500 * time.Millisecond
	// BannerDelay is how long an error banner stays up
	BannerDelay = 3 * time.Second
)

var pointsTable = map[string]int{
	string(models.DifficultyEasy):   10,
	string(models.DifficultyMedium): 20,
	string(models.DifficultyHard):   30,
}

// PointsFor returns the score of a correctly assembled word of the given difficulty
func PointsFor(difficulty string) int {
	if points, ok := pointsTable[difficulty]; ok {
		return points
	}
	return 10
}

// Token is one draggable syllable fragment
//
// IDs are unique within a round so repeated fragments stay distinguishable.
type Token struct {
	ID   int
	Text string
}

// Slot is one solution position
type Slot struct {
	Token   *Token
	Flagged bool
}

// BannerKind selects how a banner is styled
type BannerKind int

const (
	BannerNone BannerKind = iota
	BannerInfo
	BannerSuccess
	BannerError
)

// Banner is a transient message for the player
type Banner struct {
	Kind    BannerKind
	Message string
}

// Machine is the client side of one game session
//
// It is not safe for concurrent use; callers serialize events.
type Machine struct {
	state      State
	generation int

	difficulty string
	category   string

	word  *models.WordResponse
	pool  []Token
	slots []Slot

	score int
	// points of submitted words by generation, until the server answers
	unacked map[int]int

	stats        *models.StatisticsResponse
	statsSeq     int
	statsApplied int

	banner    Banner
	bannerSeq int

	advanceDelay time.Duration
	resetDelay   time.Duration
	bannerDelay  time.Duration
	intn         func(n int) int
}

// Option configures a Machine
type Option func(*Machine)

// WithRand replaces the random source used for shuffling
func WithRand(intn func(n int) int) Option {
	return func(m *Machine) {
		m.intn = intn
	}
}

// WithDelays overrides AdvanceDelay and ResetDelay
func WithDelays(advance, reset time.Duration) Option {
	return func(m *Machine) {
		m.advanceDelay = advance
		m.resetDelay = reset
	}
}

// WithBannerDelay overrides BannerDelay
func WithBannerDelay(d time.Duration) Option {
	return func(m *Machine) {
		m.bannerDelay = d
	}
}

// NewMachine creates an idle machine
func NewMachine(opts ...Option) *Machine {
	m := &Machine{
		state:        StateIdle,
		difficulty:   string(models.DifficultyEasy),
		advanceDelay: AdvanceDelay,
		resetDelay:   ResetDelay,
		bannerDelay:  BannerDelay,
		unacked:      make(map[int]int),
		intn:         rand.Intn,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) State() State { return m.state }
func (m *Machine) Generation() int { return m.generation }
func (m *Machine) Difficulty() string { return m.difficulty }
func (m *Machine) Category() string { return m.category }
func (m *Machine) Word() *models.WordResponse { return m.word }
func (m *Machine) Score() int { return m.score }
func (m *Machine) Statistics() *models.StatisticsResponse { return m.stats }
func (m *Machine) Banner() Banner { return m.banner }

// Pool returns the unplaced tokens in presentation order
func (m *Machine) Pool() []Token {
	return append([]Token(nil), m.pool...)
}

// Slots returns the solution positions in order
func (m *Machine) Slots() []Slot {
	return append([]Slot(nil), m.slots...)
}

// Handle applies one event and returns the effects it requires
func (m *Machine) Handle(ev Event) []Effect {
	switch e := ev.(type) {
	case LoadWord:
		return m.loadWord(e)
	case WordFetched:
		return m.wordFetched(e)
	case Drop:
		return m.drop(e)
	case ProgressSubmitted:
		return m.progressSubmitted(e)
	case AdvanceElapsed:
		if e.Generation != m.generation || m.state != StateCorrect {
			return nil
		}
		return m.loadWord(LoadWord{Difficulty: m.difficulty, Category: m.category})
	case ResetElapsed:
		return m.resetElapsed(e)
	case RefreshStatistics:
		return []Effect{m.fetchStatistics()}
	case StatisticsFetched:
		return m.statisticsFetched(e)
	case BannerElapsed:
		if e.Seq == m.bannerSeq && m.banner.Kind == BannerError {
			m.banner = Banner{}
		}
		return nil
	}
	return nil
}

// setBanner shows a banner; error banners are scheduled to disappear
func (m *Machine) setBanner(kind BannerKind, message string) []Effect {
	m.bannerSeq++
	m.banner = Banner{Kind: kind, Message: message}
	if kind != BannerError {
		return nil
	}
	return []Effect{Schedule{After: m.bannerDelay, Event: BannerElapsed{Seq: m.bannerSeq}}}
}

func (m *Machine) fetchStatistics() Effect {
	m.statsSeq++
	return FetchStatistics{Seq: m.statsSeq}
}

// statisticsFetched keeps the answer to the most recent request seen so far
func (m *Machine) statisticsFetched(e StatisticsFetched) []Effect {
	if e.Seq <= m.statsApplied {
		return nil
	}
	if e.Err != nil {
		if e.Seq != m.statsSeq {
			// a newer request is still in flight
			return nil
		}
		return m.setBanner(BannerError, "Could not load statistics")
	}
	m.statsApplied = e.Seq
	m.stats = e.Stats
	return nil
}

func (m *Machine) loadWord(e LoadWord) []Effect {
	m.generation++
	if e.Difficulty != "" {
		m.difficulty = e.Difficulty
	}
	m.category = e.Category
	m.clearRound()
	m.banner = Banner{}

	return []Effect{FetchWord{Generation: m.generation, Difficulty: m.difficulty, Category: m.category}}
}

func (m *Machine) clearRound() {
	m.state = StateIdle
	m.word = nil
	m.pool = nil
	m.slots = nil
}

func (m *Machine) wordFetched(e WordFetched) []Effect {
	if e.Generation != m.generation || m.state != StateIdle {
		return nil
	}
	if e.Err != nil || e.Word == nil || len(e.Word.Syllables) == 0 {
		m.clearRound()
		return m.setBanner(BannerError, "Could not load a word, try again")
	}

	m.word = e.Word
	m.pool = m.shuffle(e.Word.Syllables)
	m.slots = make([]Slot, len(e.Word.Syllables))
	m.state = StateWordLoaded
	return nil
}

// shuffle returns the fragments as tokens in a Fisher-Yates order that never
// matches the solution, unless every fragment is identical
func (m *Machine) shuffle(syllables []string) []Token {
	tokens := make([]Token, len(syllables))
	for i, s := range syllables {
		tokens[i] = Token{ID: i, Text: s}
	}

	for i := len(tokens) - 1; i > 0; i-- {
		j := m.intn(i + 1)
		tokens[i], tokens[j] = tokens[j], tokens[i]
	}

	if !spellsSolution(tokens, syllables) {
		return tokens
	}
	for i := range tokens {
		for j := i + 1; j < len(tokens); j++ {
			if tokens[i].Text != tokens[j].Text {
				tokens[i], tokens[j] = tokens[j], tokens[i]
				return tokens
			}
		}
	}
	return tokens
}

func spellsSolution(tokens []Token, syllables []string) bool {
	for i, t := range tokens {
		if t.Text != syllables[i] {
			return false
		}
	}
	return true
}

func (m *Machine) drop(e Drop) []Effect {
	if m.state != StateWordLoaded && m.state != StateAssembling {
		return nil
	}
	if e.Slot < 0 || e.Slot >= len(m.slots) || m.slots[e.Slot].Token != nil {
		return nil
	}

	idx := -1
	for i, t := range m.pool {
		if t.ID == e.TokenID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}

	token := m.pool[idx]
	m.pool = append(m.pool[:idx], m.pool[idx+1:]...)
	m.slots[e.Slot].Token = &token
	m.state = StateAssembling

	for _, s := range m.slots {
		if s.Token == nil {
			return nil
		}
	}
	return m.evaluate()
}

// evaluate compares the filled slots with the loaded word
func (m *Machine) evaluate() []Effect {
	var assembled strings.Builder
	for _, s := range m.slots {
		assembled.WriteString(s.Token.Text)
	}

	if assembled.String() == m.word.Word {
		points := PointsFor(m.word.Difficulty)
		m.state = StateCorrect
		m.unacked[m.generation] = points
		m.setBanner(BannerSuccess, fmt.Sprintf("Correct! +%d", points))
		return []Effect{SubmitProgress{
			Generation: m.generation,
			Submission: models.ProgressSubmission{
				Word:       m.word.Word,
				Difficulty: m.word.Difficulty,
				Score:      points,
			},
		}}
	}

	m.state = StateIncorrect
	for i := range m.slots {
		m.slots[i].Flagged = true
	}
	m.setBanner(BannerInfo, "Not quite, try again")
	return []Effect{Schedule{After: m.resetDelay, Event: ResetElapsed{Generation: m.generation}}}
}

// progressSubmitted settles a submission
//
// A success adds its points even when the player has already moved on to
// another word, since the server kept the record. Only the current round
// advances.
func (m *Machine) progressSubmitted(e ProgressSubmitted) []Effect {
	points, ok := m.unacked[e.Generation]
	if !ok {
		return nil
	}
	delete(m.unacked, e.Generation)

	current := e.Generation == m.generation && m.state == StateCorrect

	var effects []Effect
	if e.Err != nil {
		if !current {
			return nil
		}
		effects = m.setBanner(BannerError, "Could not save progress")
	} else {
		m.score += points
		effects = []Effect{m.fetchStatistics()}
	}

	if current {
		effects = append(effects, Schedule{After: m.advanceDelay, Event: AdvanceElapsed{Generation: m.generation}})
	}
	return effects
}

func (m *Machine) resetElapsed(e ResetElapsed) []Effect {
	if e.Generation != m.generation || m.state != StateIncorrect {
		return nil
	}

	for i := range m.slots {
		m.pool = append(m.pool, *m.slots[i].Token)
		m.slots[i] = Slot{}
	}
	m.state = StateWordLoaded
	m.banner = Banner{}
	return nil
}
