package main

import "github.com/charmbracelet/lipgloss"

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")) // red
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3")) // yellow
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")) // green
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")) // gray
	currentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)
