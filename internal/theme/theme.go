package theme

import "github.com/charmbracelet/lipgloss"

// Mode is the reader's color scheme.
type Mode string

const (
	Dark  Mode = "dark"
	Light Mode = "light"
)

// Flip returns the other mode.
func (m Mode) Flip() Mode {
	if m == Dark {
		return Light
	}
	return Dark
}

// GlamourStyle returns the matching glamour standard style name.
func (m Mode) GlamourStyle() string { return string(m) }

// Palette defines the color palette used by all panels. Panels hold a
// *Palette pointer so a theme toggle is visible on the next View() call.
type Palette struct {
	Accent   lipgloss.Color
	Subtle   lipgloss.Color
	Text     lipgloss.Color
	Dim      lipgloss.Color
	Border   lipgloss.Color
	StatusBg lipgloss.Color
	StatusFg lipgloss.Color
	Error    lipgloss.Color
	TagBg    lipgloss.Color
	TagFg    lipgloss.Color
}

// Colors returns the palette for a mode.
func (m Mode) Colors() Palette {
	if m == Light {
		return lightPalette
	}
	return darkPalette
}

var darkPalette = Palette{
	Accent:   lipgloss.Color("#cba6f7"),
	Subtle:   lipgloss.Color("#6c7086"),
	Text:     lipgloss.Color("#cdd6f4"),
	Dim:      lipgloss.Color("#585b70"),
	Border:   lipgloss.Color("#45475a"),
	StatusBg: lipgloss.Color("#313244"),
	StatusFg: lipgloss.Color("#cdd6f4"),
	Error:    lipgloss.Color("#f38ba8"),
	TagBg:    lipgloss.Color("#45475a"),
	TagFg:    lipgloss.Color("#cdd6f4"),
}

var lightPalette = Palette{
	Accent:   lipgloss.Color("#8839ef"),
	Subtle:   lipgloss.Color("#8c8fa1"),
	Text:     lipgloss.Color("#4c4f69"),
	Dim:      lipgloss.Color("#9ca0b0"),
	Border:   lipgloss.Color("#bcc0cc"),
	StatusBg: lipgloss.Color("#e6e9ef"),
	StatusFg: lipgloss.Color("#4c4f69"),
	Error:    lipgloss.Color("#d20f39"),
	TagBg:    lipgloss.Color("#bcc0cc"),
	TagFg:    lipgloss.Color("#4c4f69"),
}
