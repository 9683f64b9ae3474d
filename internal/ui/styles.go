// Package ui renders tak's console output through one small lipgloss
// palette so every command speaks the same visual language.
package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	RunningColor = lipgloss.Color("34")
	StoppedColor = lipgloss.Color("160")
	DimTextColor = lipgloss.Color("250")
	HeaderColor  = lipgloss.Color("240")
	HintColor    = lipgloss.Color("214")
)

var (
	header_style  = lipgloss.NewStyle().Foreground(HeaderColor).Bold(true)
	dim_style     = lipgloss.NewStyle().Foreground(DimTextColor)
	running_style = lipgloss.NewStyle().Foreground(RunningColor)
	stopped_style = lipgloss.NewStyle().Foreground(StoppedColor)
	hint_style    = lipgloss.NewStyle().Foreground(HintColor)
	name_style    = lipgloss.NewStyle().Bold(true)
	title_style   = lipgloss.NewStyle().Bold(true).Foreground(RunningColor)
)

// Title renders a screen/section heading.
func Title(s string) string { return title_style.Render(s) }

// Success prefixes msg with a green check.
func Success(msg string) string { return running_style.Render("✓") + " " + msg }

// Failure prefixes msg with a red cross.
func Failure(msg string) string { return stopped_style.Render("✗") + " " + msg }

// Hint renders follow-up guidance (next steps, force flags).
func Hint(msg string) string { return hint_style.Render(msg) }

// Dim renders secondary text.
func Dim(msg string) string { return dim_style.Render(msg) }

// Field renders an aligned "key: value" summary line.
func Field(key, value string) string {
	return fmt.Sprintf("  %s %s", dim_style.Render(fmt.Sprintf("%-10s", key+":")), value)
}
