package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/weatherdo/internal/todo"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#1976d2"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4caf50"))
	cursorStyle   = lipgloss.NewStyle().Bold(true)
	doneStyle     = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	focusStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#1976d2")).Bold(true)
	weatherStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9800"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	priorityStyle = map[todo.Priority]lipgloss.Style{
		todo.PriorityHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("#f44336")).Bold(true),
		todo.PriorityMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("#ff9800")),
		todo.PriorityLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("#4caf50")),
	}
)

func renderPriority(p todo.Priority) string {
	style, ok := priorityStyle[p]
	if !ok {
		return PriorityLabel(p)
	}
	return style.Render(PriorityLabel(p))
}
