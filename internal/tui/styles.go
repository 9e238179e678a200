package tui

import "github.com/charmbracelet/lipgloss"

var (
	styleHeader   = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	styleSubtle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleToken    = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder())
	styleSelected = styleToken.BorderForeground(lipgloss.Color("14")).Bold(true)
	styleSlot     = lipgloss.NewStyle().Width(8).Align(lipgloss.Center).Border(lipgloss.NormalBorder())
	styleTarget   = styleSlot.BorderForeground(lipgloss.Color("14"))
	styleFlagged  = styleSlot.BorderForeground(lipgloss.Color("9")).Foreground(lipgloss.Color("9"))
	styleSolved   = styleSlot.BorderForeground(lipgloss.Color("10")).Foreground(lipgloss.Color("10"))
	styleInfo     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	styleError    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)
