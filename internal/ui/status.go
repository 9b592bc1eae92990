package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"plume/internal/theme"
)

// statusBar is the single-line bar at the bottom: theme mode, source
// location, filter summary, and any transient error.
type statusBar struct {
	palette  *theme.Palette
	width    int
	location string
	mode     string
	filter   string
	note     string
	errMsg   string
}

func newStatusBar(location string, palette *theme.Palette) statusBar {
	return statusBar{location: location, palette: palette}
}

func (s *statusBar) SetWidth(width int)    { s.width = width }
func (s *statusBar) SetMode(mode string)   { s.mode = strings.ToUpper(mode) }
func (s *statusBar) SetFilter(info string) { s.filter = info }
func (s *statusBar) SetNote(note string)   { s.note = note }
func (s *statusBar) SetError(msg string)   { s.errMsg = msg }
func (s *statusBar) ClearError()           { s.errMsg = "" }

func (s statusBar) View() string {
	if s.width == 0 {
		return ""
	}

	bgStyle := lipgloss.NewStyle().Background(s.palette.StatusBg)

	modeStyle := lipgloss.NewStyle().
		Background(s.palette.Accent).
		Foreground(s.palette.StatusBg).
		Bold(true).
		Padding(0, 1)

	textStyle := lipgloss.NewStyle().
		Background(s.palette.StatusBg).
		Foreground(s.palette.StatusFg).
		Padding(0, 1)

	var mid string
	if s.errMsg != "" {
		errStyle := lipgloss.NewStyle().
			Background(s.palette.StatusBg).
			Foreground(s.palette.Error).
			Padding(0, 1)
		mid = errStyle.Render(s.errMsg)
	} else {
		loc := s.location
		if s.filter != "" {
			loc = fmt.Sprintf("%s  %s", loc, s.filter)
		}
		mid = textStyle.Render(loc)
	}

	left := fmt.Sprintf("%s %s", modeStyle.Render(s.mode), mid)

	right := ""
	if s.note != "" {
		noteStyle := lipgloss.NewStyle().
			Background(s.palette.StatusBg).
			Foreground(s.palette.Subtle).
			Padding(0, 1)
		right = noteStyle.Render(s.note)
	}

	padLen := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padLen < 0 {
		padLen = 0
	}
	padding := bgStyle.Render(strings.Repeat(" ", padLen))

	return left + padding + right
}
