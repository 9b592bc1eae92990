package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plume/internal/catalog"
	"plume/internal/comments"
	"plume/internal/render"
	"plume/internal/theme"
)

// detailPanel shows one post: rendered markdown in a scrollable viewport,
// with the discussion footer underneath when a comment widget is configured.
type detailPanel struct {
	palette *theme.Palette
	vp      viewport.Model

	post   catalog.Post
	body   string
	cached bool
	errMsg string

	discussion    *comments.Discussion
	discussionErr string

	width  int
	height int
}

func newDetailPanel(palette *theme.Palette) detailPanel {
	return detailPanel{
		palette: palette,
		vp:      viewport.New(0, 0),
	}
}

func (d *detailPanel) SetSize(width, height int) {
	d.width = width
	d.height = height
	d.vp.Width = width
	vpHeight := height - lipgloss.Height(d.viewHeader()) - 1
	if vpHeight < 1 {
		vpHeight = 1
	}
	d.vp.Height = vpHeight
}

// Show loads a post body into the panel and resets scroll position.
func (d *detailPanel) Show(post catalog.Post, body string, cached bool, mode theme.Mode) {
	d.post = post
	d.body = body
	d.cached = cached
	d.errMsg = ""
	d.discussion = nil
	d.discussionErr = ""
	d.Render(mode)
	d.vp.GotoTop()
}

// ShowError puts the panel into its inline error state for a post whose
// document could not be fetched.
func (d *detailPanel) ShowError(post catalog.Post, err error) {
	d.post = post
	d.body = ""
	d.cached = false
	d.errMsg = err.Error()
	d.discussion = nil
	d.discussionErr = ""
	d.vp.SetContent("")
}

// Render re-renders the markdown body, e.g. after a theme change or resize.
func (d *detailPanel) Render(mode theme.Mode) {
	if d.errMsg != "" {
		return
	}
	width := d.width - 2
	if width < 10 {
		width = 78
	}
	d.vp.SetContent(render.Markdown(d.body, mode, width))
}

func (d *detailPanel) SetDiscussion(disc comments.Discussion) {
	d.discussion = &disc
	d.discussionErr = ""
}

func (d *detailPanel) SetDiscussionError(err error) {
	d.discussion = nil
	d.discussionErr = err.Error()
}

func (d *detailPanel) Post() catalog.Post { return d.post }

func (d detailPanel) Update(msg tea.Msg) (detailPanel, tea.Cmd) {
	var cmd tea.Cmd
	d.vp, cmd = d.vp.Update(msg)
	return d, cmd
}

func (d detailPanel) View() string {
	var b strings.Builder
	b.WriteString(d.viewHeader())
	b.WriteString("\n")

	if d.errMsg != "" {
		errStyle := lipgloss.NewStyle().
			Foreground(d.palette.Error).
			Padding(1, 2)
		b.WriteString(errStyle.Render("Could not load this post:\n" + d.errMsg + "\n\nPress r to retry, esc to go back."))
		return b.String()
	}

	b.WriteString(d.vp.View())
	b.WriteString("\n")
	b.WriteString(d.viewFooter())
	return b.String()
}

func (d detailPanel) viewHeader() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(d.palette.Accent).
		Bold(true).
		Padding(0, 1)
	metaStyle := lipgloss.NewStyle().
		Foreground(d.palette.Subtle).
		Padding(0, 1)

	meta := d.post.Date
	if len(d.post.Tags) > 0 {
		meta += "  #" + strings.Join(d.post.Tags, " #")
	}
	if d.cached {
		meta += "  (offline copy)"
	}

	ruleWidth := d.width
	if ruleWidth < 1 {
		ruleWidth = 1
	}
	rule := lipgloss.NewStyle().
		Foreground(d.palette.Border).
		Render(strings.Repeat("─", ruleWidth))

	return titleStyle.Render(d.post.Title) + "\n" + metaStyle.Render(meta) + "\n" + rule
}

func (d detailPanel) viewFooter() string {
	style := lipgloss.NewStyle().
		Foreground(d.palette.Dim).
		Padding(0, 1)

	switch {
	case d.discussionErr != "":
		return style.Render("comments unavailable: " + d.discussionErr)
	case d.discussion != nil:
		label := fmt.Sprintf("%d comments", d.discussion.Count)
		if d.discussion.Count == 1 {
			label = "1 comment"
		}
		if d.discussion.URL != "" {
			label += "  " + d.discussion.URL
		}
		return style.Render(label)
	default:
		scroll := fmt.Sprintf("%3.f%%", d.vp.ScrollPercent()*100)
		return style.Render(scroll)
	}
}
