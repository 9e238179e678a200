// Package tui is a terminal front-end for the syllable game
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/syllablegame/backend/internal/game"
	"github.com/syllablegame/backend/internal/models"
)

// API is the subset of the game API the terminal front-end calls
type API interface {
	GetDifficulties(ctx context.Context) ([]string, error)
	GetCategories(ctx context.Context) ([]string, error)
	GetWord(ctx context.Context, difficulty, category string) (*models.WordResponse, error)
	RecordProgress(ctx context.Context, submission models.ProgressSubmission) error
	GetStatistics(ctx context.Context) (*models.StatisticsResponse, error)
}

// Options are the initial filters
type Options struct {
	Difficulty string
	Category   string
}

// eventMsg delivers a machine event through the bubbletea loop
type eventMsg struct {
	event game.Event
}

// filtersMsg carries the selectable difficulties and categories
type filtersMsg struct {
	difficulties []string
	categories   []string
	err          error
}

// Model is the bubbletea model driving a game.Machine
type Model struct {
	ctx     context.Context
	api     API
	machine *game.Machine
	keys    keyMap
	help    help.Model
	opts    Options

	difficulties []string
	categories   []string
	filterErr    error

	cursor int
	target int
	width  int
}

// NewModel creates a model; machineOpts are passed to game.NewMachine
func NewModel(ctx context.Context, api API, opts Options, machineOpts ...game.Option) *Model {
	return &Model{
		ctx:     ctx,
		api:     api,
		machine: game.NewMachine(machineOpts...),
		keys:    defaultKeyMap(),
		help:    help.New(),
		opts:    opts,
	}
}

// Machine exposes the underlying state machine
func (m *Model) Machine() *game.Machine {
	return m.machine
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchFilters(),
		m.handle(game.LoadWord{Difficulty: m.opts.Difficulty, Category: m.opts.Category}),
		m.handle(game.RefreshStatistics{}),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case filtersMsg:
		m.filterErr = msg.err
		if msg.err == nil {
			m.difficulties = msg.difficulties
			m.categories = msg.categories
		}
		return m, nil

	case eventMsg:
		cmd := m.handle(msg.event)
		m.clampCursor()
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Right):
		if m.cursor < len(m.machine.Pool())-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.NextSlot):
		if n := len(m.machine.Slots()); n > 0 {
			m.target = (m.target + 1) % n
		}
	case key.Matches(msg, m.keys.Drop):
		pool := m.machine.Pool()
		if m.cursor >= len(pool) {
			return nil
		}
		cmd := m.handle(game.Drop{TokenID: pool[m.cursor].ID, Slot: m.target})
		m.clampCursor()
		m.target = m.firstEmptySlot()
		return cmd
	case key.Matches(msg, m.keys.Difficulty):
		if len(m.difficulties) == 0 {
			return nil
		}
		next := cycle(m.difficulties, m.machine.Difficulty(), false)
		return m.handle(game.LoadWord{Difficulty: next, Category: m.machine.Category()})
	case key.Matches(msg, m.keys.Category):
		next := cycle(m.categories, m.machine.Category(), true)
		return m.handle(game.LoadWord{Difficulty: m.machine.Difficulty(), Category: next})
	case key.Matches(msg, m.keys.NewWord):
		return m.handle(game.LoadWord{Difficulty: m.machine.Difficulty(), Category: m.machine.Category()})
	case key.Matches(msg, m.keys.Stats):
		return m.handle(game.RefreshStatistics{})
	}
	return nil
}

// cycle returns the value after current; withEmpty adds "" (any) to the ring
func cycle(values []string, current string, withEmpty bool) string {
	ring := values
	if withEmpty {
		ring = append([]string{""}, values...)
	}
	if len(ring) == 0 {
		return current
	}
	for i, v := range ring {
		if v == current {
			return ring[(i+1)%len(ring)]
		}
	}
	return ring[0]
}

func (m *Model) clampCursor() {
	if n := len(m.machine.Pool()); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
	if m.machine.State() == game.StateWordLoaded {
		m.target = m.firstEmptySlot()
	}
}

func (m *Model) firstEmptySlot() int {
	for i, s := range m.machine.Slots() {
		if s.Token == nil {
			return i
		}
	}
	return 0
}

// handle feeds an event to the machine and turns its effects into commands
func (m *Model) handle(ev game.Event) tea.Cmd {
	effects := m.machine.Handle(ev)
	cmds := make([]tea.Cmd, 0, len(effects))
	for _, effect := range effects {
		cmds = append(cmds, m.run(effect))
	}
	return tea.Batch(cmds...)
}

// run executes one effect off the update loop
func (m *Model) run(effect game.Effect) tea.Cmd {
	switch e := effect.(type) {
	case game.FetchWord:
		return func() tea.Msg {
			word, err := m.api.GetWord(m.ctx, e.Difficulty, e.Category)
			return eventMsg{game.WordFetched{Generation: e.Generation, Word: word, Err: err}}
		}
	case game.SubmitProgress:
		return func() tea.Msg {
			err := m.api.RecordProgress(m.ctx, e.Submission)
			return eventMsg{game.ProgressSubmitted{Generation: e.Generation, Err: err}}
		}
	case game.FetchStatistics:
		return func() tea.Msg {
			stats, err := m.api.GetStatistics(m.ctx)
			return eventMsg{game.StatisticsFetched{Seq: e.Seq, Stats: stats, Err: err}}
		}
	case game.Schedule:
		return tea.Tick(e.After, func(time.Time) tea.Msg {
			return eventMsg{e.Event}
		})
	}
	return nil
}

func (m *Model) fetchFilters() tea.Cmd {
	return func() tea.Msg {
		difficulties, err := m.api.GetDifficulties(m.ctx)
		if err != nil {
			return filtersMsg{err: err}
		}
		categories, err := m.api.GetCategories(m.ctx)
		if err != nil {
			return filtersMsg{err: err}
		}
		return filtersMsg{difficulties: difficulties, categories: categories}
	}
}

func (m *Model) View() string {
	var b strings.Builder

	category := m.machine.Category()
	if category == "" {
		category = "any"
	}
	b.WriteString(styleHeader.Render("Syllable Game"))
	b.WriteString(styleSubtle.Render(fmt.Sprintf("difficulty: %s  category: %s  score: %d",
		m.machine.Difficulty(), category, m.machine.Score())))
	b.WriteString("\n\n")

	word := m.machine.Word()
	switch {
	case word == nil && m.machine.Banner().Kind == game.BannerNone:
		b.WriteString(styleSubtle.Render("Loading a word..."))
		b.WriteString("\n")
	case word != nil:
		if word.Image != "" {
			b.WriteString(styleSubtle.Render("picture: " + word.Image))
			b.WriteString("\n")
		}
		b.WriteString(m.viewSlots())
		b.WriteString("\n")
		b.WriteString(m.viewPool())
		b.WriteString("\n")
	}

	if banner := m.viewBanner(); banner != "" {
		b.WriteString(banner)
		b.WriteString("\n")
	}
	if m.filterErr != nil {
		b.WriteString(styleError.Render("Could not load difficulties"))
		b.WriteString("\n")
	}

	if stats := m.machine.Statistics(); stats != nil {
		b.WriteString(styleSubtle.Render(fmt.Sprintf(
			"total score %d · words %d · easy %d · medium %d · hard %d",
			stats.TotalScore, stats.WordsCompleted, stats.EasyCompleted, stats.MediumCompleted, stats.HardCompleted,
		)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) viewSlots() string {
	slots := m.machine.Slots()
	cells := make([]string, len(slots))
	for i, s := range slots {
		text := ""
		if s.Token != nil {
			text = s.Token.Text
		}

		style := styleSlot
		switch {
		case m.machine.State() == game.StateCorrect:
			style = styleSolved
		case s.Flagged:
			style = styleFlagged
		case i == m.target:
			style = styleTarget
		}
		cells[i] = style.Render(text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *Model) viewPool() string {
	pool := m.machine.Pool()
	if len(pool) == 0 {
		return ""
	}
	cells := make([]string, len(pool))
	for i, tok := range pool {
		style := styleToken
		if i == m.cursor {
			style = styleSelected
		}
		cells[i] = style.Render(tok.Text)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m *Model) viewBanner() string {
	banner := m.machine.Banner()
	switch banner.Kind {
	case game.BannerInfo:
		return styleInfo.Render(banner.Message)
	case game.BannerSuccess:
		return styleSuccess.Render(banner.Message)
	case game.BannerError:
		return styleError.Render(banner.Message)
	}
	return ""
}

// Run starts the interactive program and blocks until it exits
func Run(ctx context.Context, api API, opts Options) error {
	p := tea.NewProgram(NewModel(ctx, api, opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
