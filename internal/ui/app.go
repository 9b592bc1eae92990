package ui

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"plume/internal/cache"
	"plume/internal/catalog"
	"plume/internal/comments"
	"plume/internal/config"
	"plume/internal/debounce"
	"plume/internal/filter"
	"plume/internal/session"
	"plume/internal/source"
	"plume/internal/theme"
)

// App is the root Bubble Tea model: a post list with tag and search filters,
// and a detail view for one post at a time.
type App struct {
	cfg     config.Config
	src     source.Source
	site    string
	cache   *cache.DB
	store   *session.Store
	themes  *theme.Controller
	widget  *comments.Widget
	deb     *debounce.Debouncer
	program *tea.Program
	watcher *source.Watcher
	sysDark func() bool

	closeOnce sync.Once

	palette theme.Palette
	list    listPanel
	detail  detailPanel
	status  statusBar
	spin    spinner.Model

	cat       *catalog.Catalog
	activeTag string
	query     string

	showDetail bool
	loading    bool
	fromCache  bool
	loadErr    string

	// docGen invalidates in-flight document fetches when the user opens
	// another post before the previous fetch lands.
	docGen uint64

	width  int
	height int
}

// New builds the app around an already detected source. db, store, and
// widget may be nil (no offline cache, no persistence, no comment widget).
// systemDark reports the terminal background; nil means the local terminal.
func New(cfg config.Config, src source.Source, db *cache.DB, store *session.Store, widget *comments.Widget, systemDark func() bool) *App {
	if systemDark == nil {
		systemDark = theme.SystemDark
	}

	a := &App{
		cfg:     cfg,
		src:     src,
		site:    src.Location(),
		cache:   db,
		store:   store,
		widget:  widget,
		sysDark: systemDark,
	}

	// A nil *session.Store has to stay a nil interface here; wrapped in a
	// non-nil theme.Store it would pass the controller's guard and get its
	// methods called on a nil receiver.
	var prefs theme.Store
	if store != nil {
		prefs = store
	}

	// The widget tolerates theme-sync calls before it has loaded, so the
	// controller can notify unconditionally from the start.
	a.themes = theme.NewController(prefs, systemDark(), func(m theme.Mode) {
		widget.SetTheme(m)
	})
	a.palette = a.themes.Mode().Colors()

	state := session.Default()
	if store != nil {
		state, _ = store.Load()
	}

	a.list = newListPanel(&a.palette, state.ShowTagBar)
	a.detail = newDetailPanel(&a.palette)
	a.status = newStatusBar(src.Location(), &a.palette)
	a.status.SetMode(string(a.themes.Mode()))

	a.spin = spinner.New()
	a.spin.Spinner = spinner.Dot

	window := time.Duration(cfg.DebounceMS) * time.Millisecond
	a.deb = debounce.New(window, func(q string) {
		if a.program != nil {
			a.program.Send(searchFiredMsg{query: q})
		}
	})

	a.loading = true
	return a
}

// SetProgram hands the app its running program so background goroutines (the
// debouncer, the file watcher) can send messages into the event loop.
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
}

func (a *App) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, a.spin.Tick, a.loadCatalog())
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		// Some terminals send transient 0x0 sizes during live resizes.
		if msg.Width <= 0 || msg.Height <= 0 {
			return a, nil
		}
		a.width = msg.Width
		a.height = msg.Height
		a.layout()
		if a.showDetail {
			a.detail.Render(a.themes.Mode())
		}
		return a, tea.ClearScreen

	case tea.ResumeMsg:
		// The terminal background may have flipped while we were suspended.
		prev := a.themes.Mode()
		a.themes.SystemChanged(a.sysDark())
		if a.themes.Mode() != prev {
			a.applyTheme()
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case searchFiredMsg:
		a.query = msg.query
		a.refreshVisible()
		return a, nil

	case catalogLoadedMsg:
		return a, a.handleCatalogLoaded(msg)

	case catalogErrMsg:
		a.loading = false
		a.loadErr = msg.err.Error()
		a.cat = nil
		a.list.SetPosts(nil)
		return a, nil

	case docLoadedMsg:
		if msg.gen != a.docGen {
			return a, nil
		}
		a.status.SetNote("")
		a.adoptDerivedFields(msg.post)
		a.detail.Show(msg.post, msg.doc.Body, msg.cached, a.themes.Mode())
		a.showDetail = true
		a.layout()
		if a.widget != nil {
			return a, a.loadDiscussion(msg.post)
		}
		return a, nil

	case docErrMsg:
		if msg.gen != a.docGen {
			return a, nil
		}
		a.status.SetNote("")
		a.detail.ShowError(msg.post, msg.err)
		a.showDetail = true
		a.layout()
		return a, nil

	case discussionMsg:
		if !a.showDetail || a.detail.Post().File != msg.file {
			return a, nil
		}
		if msg.err != nil {
			a.detail.SetDiscussionError(msg.err)
		} else {
			a.detail.SetDiscussion(msg.d)
		}
		return a, nil

	case sourceChangedMsg:
		a.status.SetNote("reloading")
		return a, a.loadCatalog()
	}

	if a.showDetail {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.Close()
		return a, tea.Quit
	}

	// While the search input is focused every key belongs to it, except the
	// two that leave it.
	if a.list.input.Focused() {
		switch msg.String() {
		case "esc":
			a.list.input.Blur()
			a.list.input.SetValue("")
			a.deb.Flush("")
			return a, nil
		case "enter":
			a.list.input.Blur()
			a.deb.Flush(a.list.input.Value())
			return a, nil
		}

		var cmd tea.Cmd
		prev := a.list.input.Value()
		a.list.input, cmd = a.list.input.Update(msg)
		if v := a.list.input.Value(); v != prev {
			a.deb.Input(v)
		}
		return a, cmd
	}

	switch msg.String() {
	case "q":
		a.Close()
		return a, tea.Quit

	case "/":
		if !a.showDetail {
			a.list.input.Focus()
			return a, textinput.Blink
		}

	case "esc":
		if a.showDetail {
			a.showDetail = false
			a.layout()
			return a, nil
		}
		if a.query != "" || a.list.input.Value() != "" {
			a.list.input.SetValue("")
			a.deb.Flush("")
		}
		return a, nil

	case "t":
		return a, a.toggleTheme()

	case "r":
		return a, a.reload()

	case "b":
		if !a.showDetail {
			a.list.ToggleTagBar()
			a.layout()
		}
		return a, nil

	case "up", "k":
		if !a.showDetail {
			a.list.CursorUp()
			return a, nil
		}

	case "down", "j":
		if !a.showDetail {
			a.list.CursorDown()
			return a, nil
		}

	case "tab":
		if !a.showDetail {
			a.list.NextTag()
			return a, nil
		}

	case "shift+tab":
		if !a.showDetail {
			a.list.PrevTag()
			return a, nil
		}

	case " ":
		if !a.showDetail {
			a.selectTag(a.list.TagUnderCursor())
			return a, nil
		}

	case "enter":
		if !a.showDetail {
			return a, a.openSelected()
		}
	}

	if a.showDetail {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleCatalogLoaded(msg catalogLoadedMsg) tea.Cmd {
	a.loading = false
	a.loadErr = ""
	a.cat = msg.cat
	a.fromCache = msg.fromCache

	if msg.fromCache {
		a.status.SetNote("offline copy")
	} else {
		a.status.SetNote("")
	}

	a.list.SetTags(a.cat.Tags)
	a.refreshVisible()

	// Directory blogs get live reload once the first catalog is in.
	if d, ok := a.src.(*source.Dir); ok && a.watcher == nil {
		w, err := source.NewWatcher(d, func() {
			if a.program != nil {
				a.program.Send(sourceChangedMsg{})
			}
		})
		if err != nil {
			a.status.SetError(fmt.Sprintf("watch %s: %v", d.Root(), err))
			return nil
		}
		a.watcher = w
		go w.Start()
	}
	return nil
}

// adoptDerivedFields copies title and excerpt derived from a fetched body
// back into the catalog entry, so the list and the search see them too.
func (a *App) adoptDerivedFields(post catalog.Post) {
	if a.cat == nil {
		return
	}
	for i := range a.cat.Posts {
		p := &a.cat.Posts[i]
		if p.File != post.File {
			continue
		}
		changed := false
		if p.Title == "" && post.Title != "" {
			p.Title = post.Title
			changed = true
		}
		if p.Excerpt == "" && post.Excerpt != "" {
			p.Excerpt = post.Excerpt
			changed = true
		}
		if changed {
			a.refreshVisible()
		}
		return
	}
}

// selectTag applies a tag-bar selection. Selecting the active tag again, or
// the "all" chip, clears the filter.
func (a *App) selectTag(tag string) {
	a.activeTag = filter.Toggle(a.activeTag, tag)
	a.list.SetActiveTag(a.activeTag)
	a.refreshVisible()
}

// refreshVisible recomputes the visible posts from the catalog and the
// current tag and query.
func (a *App) refreshVisible() {
	if a.cat == nil {
		return
	}
	vis := filter.Visible(a.cat, a.activeTag, a.query)
	a.list.SetPosts(vis)

	info := fmt.Sprintf("%d/%d posts", len(vis), len(a.cat.Posts))
	if a.activeTag != "" {
		info += "  #" + a.activeTag
	}
	if a.query != "" {
		info += fmt.Sprintf("  %q", a.query)
	}
	a.status.SetFilter(info)
}

func (a *App) toggleTheme() tea.Cmd {
	if _, err := a.themes.Toggle(); err != nil {
		a.status.SetError(fmt.Sprintf("save theme: %v", err))
	} else {
		a.status.ClearError()
	}
	a.applyTheme()
	return nil
}

// applyTheme swaps the palette in place (panels hold a pointer into it) and
// re-renders the markdown view with the matching glamour style.
func (a *App) applyTheme() {
	a.palette = a.themes.Mode().Colors()
	a.status.SetMode(string(a.themes.Mode()))
	if a.showDetail {
		a.detail.Render(a.themes.Mode())
	}
}

func (a *App) openSelected() tea.Cmd {
	post, ok := a.list.Selected()
	if !ok {
		return nil
	}
	a.docGen++
	a.status.SetNote("fetching " + post.File)
	return a.loadDocument(post, a.docGen)
}

// reload refetches whatever the current view depends on: the open post in
// detail, otherwise the whole catalog.
func (a *App) reload() tea.Cmd {
	if a.showDetail {
		a.docGen++
		return a.loadDocument(a.detail.Post(), a.docGen)
	}
	a.loading = true
	a.loadErr = ""
	return tea.Batch(a.spin.Tick, a.loadCatalog())
}

func (a *App) layout() {
	panelHeight := a.height - 1
	if panelHeight < 1 {
		panelHeight = 1
	}
	a.list.SetSize(a.width, panelHeight)
	a.detail.SetSize(a.width, panelHeight)
	a.status.SetWidth(a.width)
}

func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var panel string
	switch {
	case a.loading && a.cat == nil:
		panel = lipgloss.NewStyle().
			Foreground(a.palette.Subtle).
			Padding(1, 2).
			Render(a.spin.View() + " loading " + a.site)

	case a.loadErr != "" && a.cat == nil:
		panel = lipgloss.NewStyle().
			Foreground(a.palette.Error).
			Padding(1, 2).
			Render("Could not load the post index:\n" + a.loadErr + "\n\nPress r to retry, q to quit.")

	case a.showDetail:
		panel = a.detail.View()

	default:
		panel = a.list.View()
	}

	panelHeight := a.height - 1
	if panelHeight < 1 {
		panelHeight = 1
	}
	main := lipgloss.NewStyle().
		Width(a.width).
		Height(panelHeight).
		Render(panel)

	return main + "\n" + a.status.View()
}

// Close releases background resources and persists session state. It runs
// once no matter how often it is called: explicit quit keys and the
// program-exit hook in serve mode can both reach it.
func (a *App) Close() {
	a.closeOnce.Do(a.close)
}

func (a *App) close() {
	a.deb.Cancel()

	if a.watcher != nil {
		if err := a.watcher.Stop(); err != nil {
			fmt.Fprintln(os.Stderr, "stop watcher:", err)
		}
		a.watcher = nil
	}

	// The cache is shared (serve mode runs one per server) and is closed by
	// whoever opened it, not here.

	if a.store != nil {
		state, err := a.store.Load()
		if err != nil {
			state = session.Default()
		}
		state.ShowTagBar = a.list.ShowingTags()
		if err := a.store.Save(state); err != nil {
			fmt.Fprintln(os.Stderr, "save session state:", err)
		}
	}
}
