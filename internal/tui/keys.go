package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left       key.Binding
	Right      key.Binding
	NextSlot   key.Binding
	Drop       key.Binding
	Difficulty key.Binding
	Category   key.Binding
	NewWord    key.Binding
	Stats      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev syllable")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next syllable")),
		NextSlot:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next slot")),
		Drop:       key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "drop")),
		Difficulty: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "difficulty")),
		Category:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		NewWord:    key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new word")),
		Stats:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "refresh stats")),
		Help:       key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Drop, k.NextSlot, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.NextSlot, k.Drop},
		{k.Difficulty, k.Category, k.NewWord, k.Stats},
		{k.Help, k.Quit},
	}
}
