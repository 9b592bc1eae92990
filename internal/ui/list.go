package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"plume/internal/catalog"
	"plume/internal/filter"
	"plume/internal/theme"
)

// listPanel shows the search input, the tag bar, and the visible posts.
type listPanel struct {
	palette *theme.Palette
	input   textinput.Model

	posts  []catalog.Post
	cursor int
	offset int

	tags      []string // display list, "all" first
	tagCursor int
	activeTag string
	showTags  bool

	width  int
	height int
}

func newListPanel(palette *theme.Palette, showTags bool) listPanel {
	ti := textinput.New()
	ti.Placeholder = "Search posts..."
	ti.Prompt = "/ "
	ti.CharLimit = 256

	return listPanel{
		palette:  palette,
		input:    ti,
		tags:     []string{filter.AllTag},
		showTags: showTags,
	}
}

func (l *listPanel) SetSize(width, height int) {
	l.width = width
	l.height = height
	inputWidth := width - 6
	if inputWidth < 10 {
		inputWidth = 10
	}
	l.input.Width = inputWidth
}

// SetPosts replaces the visible posts, clamping the cursor into range.
func (l *listPanel) SetPosts(posts []catalog.Post) {
	l.posts = posts
	if l.cursor >= len(posts) {
		l.cursor = len(posts) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
	l.offset = 0
}

// SetTags replaces the tag bar content. The "all" sentinel always leads.
func (l *listPanel) SetTags(tags []string) {
	l.tags = append([]string{filter.AllTag}, tags...)
	if l.tagCursor >= len(l.tags) {
		l.tagCursor = 0
	}
}

func (l *listPanel) SetActiveTag(tag string) { l.activeTag = tag }

func (l *listPanel) ToggleTagBar() { l.showTags = !l.showTags }

func (l *listPanel) ShowingTags() bool { return l.showTags }

// Selected returns the post under the cursor.
func (l *listPanel) Selected() (catalog.Post, bool) {
	if l.cursor < 0 || l.cursor >= len(l.posts) {
		return catalog.Post{}, false
	}
	return l.posts[l.cursor], true
}

// TagUnderCursor returns the tag the tag-bar cursor points at.
func (l *listPanel) TagUnderCursor() string {
	if l.tagCursor < 0 || l.tagCursor >= len(l.tags) {
		return filter.AllTag
	}
	return l.tags[l.tagCursor]
}

func (l *listPanel) CursorUp() {
	if l.cursor > 0 {
		l.cursor--
	}
}

func (l *listPanel) CursorDown() {
	if l.cursor < len(l.posts)-1 {
		l.cursor++
	}
}

func (l *listPanel) NextTag() {
	if len(l.tags) > 0 {
		l.tagCursor = (l.tagCursor + 1) % len(l.tags)
	}
}

func (l *listPanel) PrevTag() {
	if len(l.tags) > 0 {
		l.tagCursor = (l.tagCursor - 1 + len(l.tags)) % len(l.tags)
	}
}

// rowsPerPost is the height of one list entry: title line, meta line,
// and a blank separator.
const rowsPerPost = 3

func (l listPanel) View() string {
	var b strings.Builder

	b.WriteString(l.viewSearch())
	b.WriteString("\n")
	if l.showTags {
		b.WriteString(l.viewTagBar())
		b.WriteString("\n")
	}

	listHeight := l.height - lipgloss.Height(b.String())
	if listHeight < rowsPerPost {
		listHeight = rowsPerPost
	}

	if len(l.posts) == 0 {
		empty := lipgloss.NewStyle().
			Foreground(l.palette.Dim).
			Padding(1, 2).
			Render("No posts match.")
		b.WriteString(empty)
		return b.String()
	}

	visible := listHeight / rowsPerPost
	offset := l.scrollOffset(visible)
	end := offset + visible
	if end > len(l.posts) {
		end = len(l.posts)
	}

	for i := offset; i < end; i++ {
		b.WriteString(l.viewPost(l.posts[i], i == l.cursor))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (l listPanel) viewSearch() string {
	style := lipgloss.NewStyle().
		Foreground(l.palette.Text).
		Padding(0, 1)
	if l.input.Focused() {
		style = style.Foreground(l.palette.Accent)
	}
	return style.Render(l.input.View())
}

func (l listPanel) viewTagBar() string {
	active := lipgloss.NewStyle().
		Background(l.palette.Accent).
		Foreground(l.palette.StatusBg).
		Padding(0, 1)
	hover := lipgloss.NewStyle().
		Background(l.palette.TagBg).
		Foreground(l.palette.TagFg).
		Underline(true).
		Padding(0, 1)
	normal := lipgloss.NewStyle().
		Background(l.palette.TagBg).
		Foreground(l.palette.TagFg).
		Padding(0, 1)

	var chips []string
	for i, tag := range l.tags {
		selected := tag == l.activeTag || (tag == filter.AllTag && l.activeTag == "")
		switch {
		case selected:
			chips = append(chips, active.Render(tag))
		case i == l.tagCursor:
			chips = append(chips, hover.Render(tag))
		default:
			chips = append(chips, normal.Render(tag))
		}
	}

	bar := strings.Join(chips, " ")
	return ansi.Truncate(lipgloss.NewStyle().Padding(0, 1).Render(bar), l.width, "…")
}

func (l listPanel) viewPost(p catalog.Post, selected bool) string {
	titleStyle := lipgloss.NewStyle().Foreground(l.palette.Text).Bold(true)
	metaStyle := lipgloss.NewStyle().Foreground(l.palette.Subtle)
	marker := "  "
	if selected {
		titleStyle = titleStyle.Foreground(l.palette.Accent)
		marker = lipgloss.NewStyle().Foreground(l.palette.Accent).Render("> ")
	}

	title := ansi.Truncate(p.Title, l.width-4, "…")

	meta := p.Date
	if p.Category != "" {
		meta += "  " + p.Category
	}
	if len(p.Tags) > 0 {
		meta += "  #" + strings.Join(p.Tags, " #")
	}
	if p.Excerpt != "" {
		meta += "  " + p.Excerpt
	}
	meta = ansi.Truncate(meta, l.width-4, "…")

	return fmt.Sprintf("%s%s\n  %s\n",
		marker, titleStyle.Render(title), metaStyle.Render(meta))
}

// scrollOffset keeps the cursor inside the visible window.
func (l listPanel) scrollOffset(visible int) int {
	if visible <= 0 {
		return l.cursor
	}
	offset := l.offset
	if l.cursor < offset {
		offset = l.cursor
	}
	if l.cursor >= offset+visible {
		offset = l.cursor - visible + 1
	}
	if offset < 0 {
		offset = 0
	}
	return offset
}
