package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("35"))
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	subheadStyle  = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	codeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	starStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	tableBorder   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
