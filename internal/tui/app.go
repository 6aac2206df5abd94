package tui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"pavo/internal/display"
	"pavo/internal/lifecycle"
	"pavo/internal/model"
	"pavo/internal/preview"
	"pavo/internal/search"
)

// Panel identifies one of the three focusable panels.
type Panel int

const (
	PanelSearch Panel = iota
	PanelPaths
	PanelPreview
)

// ModalField identifies the focused field inside the edit modal.
type ModalField int

const (
	FieldPersist ModalField = iota
	FieldTags
)

// App is the main bubbletea model for the path picker.
type App struct {
	manager  *lifecycle.Manager
	previews *preview.Provider
	keys     KeyMap
	styles   Styles
	tag      string

	searchInput textinput.Model
	lastQuery   string
	results     []search.Result
	labels      []string // short display paths, aligned with results
	cursor      int

	focus         Panel
	previewText   string
	previewScroll int

	showModal    bool
	modalFocus   ModalField
	modalPersist bool
	modalTags    textinput.Model

	// One-shot status line, cleared on the next keypress.
	message string

	selectedPath string
	cancelled    bool
	touchErr     error

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Manager  *lifecycle.Manager
	Previews *preview.Provider
	Tag      string  // optional tag filter applied to all results
	Keys     *KeyMap // optional, uses default if nil
	Styles   *Styles // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	previews := params.Previews
	if previews == nil {
		previews = preview.NewProvider()
	}

	searchInput := textinput.New()
	searchInput.Prompt = "> "
	searchInput.Placeholder = "search"
	searchInput.Focus()

	modalTags := textinput.New()
	modalTags.Prompt = ""
	modalTags.Placeholder = "comma, separated, tags"

	app := App{
		manager:     params.Manager,
		previews:    previews,
		keys:        keys,
		styles:      styles,
		tag:         params.Tag,
		searchInput: searchInput,
		modalTags:   modalTags,
		focus:       PanelSearch,
		width:       80,
		height:      24,
	}

	app.refresh()
	return app
}

// refresh rebuilds the result list from the current query and tag filter.
// A changed query always puts the cursor back on the top result.
func (a *App) refresh() {
	query := a.searchInput.Value()
	a.results = search.Filter(a.manager.Store(), query, a.tag)
	if query != a.lastQuery {
		a.lastQuery = query
		a.cursor = 0
	} else if a.cursor >= len(a.results) {
		a.cursor = 0
	}

	paths := make([]string, len(a.results))
	for i, r := range a.results {
		paths[i] = r.Bookmark.Path
	}
	a.labels = display.ShortPaths(paths)

	a.updatePreview()
}

func (a *App) updatePreview() {
	a.previewScroll = 0
	if len(a.results) == 0 {
		a.previewText = ""
		return
	}
	a.previewText = a.previews.For(a.results[a.cursor].Bookmark.Path)
}

func (a *App) syncFocus() {
	if a.focus == PanelSearch {
		a.searchInput.Focus()
	} else {
		a.searchInput.Blur()
	}
}

// Cursor returns the current cursor position in the result list.
func (a App) Cursor() int {
	return a.cursor
}

// Focus returns the currently focused panel.
func (a App) Focus() Panel {
	return a.focus
}

// Results returns the current filtered result list.
func (a App) Results() []search.Result {
	return a.results
}

// ShowModal reports whether the edit modal is open.
func (a App) ShowModal() bool {
	return a.showModal
}

// ModalFocus returns the focused modal field.
func (a App) ModalFocus() ModalField {
	return a.modalFocus
}

// SelectedPath returns the confirmed path, empty when none was selected.
func (a App) SelectedPath() string {
	return a.selectedPath
}

// Cancelled reports whether the session ended without a selection.
func (a App) Cancelled() bool {
	return a.cancelled
}

// TouchErr returns the persistence error from recording the selection,
// if any. The selection itself is still valid.
func (a App) TouchErr() error {
	return a.touchErr
}

// Message returns the current status line text.
func (a App) Message() string {
	return a.message
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if a.showModal {
			return a.updateModal(msg)
		}
		return a.updateNormal(msg)
	}

	return a, nil
}

func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.message = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.cancelled = true
		return a, tea.Quit

	case key.Matches(msg, a.keys.NextPanel):
		a.focus = (a.focus + 1) % 3
		a.syncFocus()

	case key.Matches(msg, a.keys.PrevPanel):
		a.focus = (a.focus + 2) % 3
		a.syncFocus()

	case key.Matches(msg, a.keys.Confirm):
		switch a.focus {
		case PanelSearch:
			return a.confirmSelection()
		case PanelPaths:
			a.openModal()
		}

	case key.Matches(msg, a.keys.Down):
		if a.focus == PanelPreview {
			a.previewScroll++
		} else if n := len(a.results); n > 0 {
			a.cursor = (a.cursor + 1) % n
			a.updatePreview()
		}

	case key.Matches(msg, a.keys.Up):
		if a.focus == PanelPreview {
			if a.previewScroll > 0 {
				a.previewScroll--
			}
		} else if n := len(a.results); n > 0 {
			a.cursor = (a.cursor + n - 1) % n
			a.updatePreview()
		}

	case key.Matches(msg, a.keys.Yank):
		a.yankPath()

	default:
		if a.focus == PanelSearch {
			var cmd tea.Cmd
			a.searchInput, cmd = a.searchInput.Update(msg)
			a.refresh()
			return a, cmd
		}
	}

	return a, nil
}

func (a App) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, a.keys.Confirm):
		a.commitModal()

	case key.Matches(msg, a.keys.Quit):
		// Discard edits, the bookmark keeps its previous options.
		a.showModal = false

	case key.Matches(msg, a.keys.NextPanel), key.Matches(msg, a.keys.PrevPanel):
		if a.modalFocus == FieldPersist {
			a.modalFocus = FieldTags
			a.modalTags.Focus()
		} else {
			a.modalFocus = FieldPersist
			a.modalTags.Blur()
		}

	case a.modalFocus == FieldPersist && key.Matches(msg, a.keys.Toggle):
		a.modalPersist = !a.modalPersist

	default:
		if a.modalFocus == FieldTags {
			var cmd tea.Cmd
			a.modalTags, cmd = a.modalTags.Update(msg)
			return a, cmd
		}
	}

	return a, nil
}

func (a App) confirmSelection() (tea.Model, tea.Cmd) {
	if len(a.results) == 0 {
		return a, nil
	}
	path := a.results[a.cursor].Bookmark.Path
	a.selectedPath = path
	a.touchErr = a.manager.Touch(path, time.Now())
	return a, tea.Quit
}

func (a *App) openModal() {
	if len(a.results) == 0 {
		return
	}
	b := a.results[a.cursor].Bookmark
	a.modalPersist = b.Persist
	a.modalTags.SetValue(model.FormatTags(b.Tags))
	a.modalTags.CursorEnd()
	a.modalTags.Blur()
	a.modalFocus = FieldPersist
	a.showModal = true
}

// commitModal applies the modal edits. A failed save keeps the in-memory
// change and surfaces a warning instead of blocking the session.
func (a *App) commitModal() {
	b := a.results[a.cursor].Bookmark
	tags := model.ParseTags(a.modalTags.Value())
	if err := a.manager.SetOptions(b.Path, a.modalPersist, tags); err != nil {
		a.message = "Save failed: " + err.Error()
	}
	a.showModal = false
}

func (a *App) yankPath() {
	if len(a.results) == 0 {
		return
	}
	path := a.results[a.cursor].Bookmark.Path
	if err := clipboard.WriteAll(path); err != nil {
		a.message = "Yank failed: " + err.Error()
		return
	}
	a.message = "Copied " + path
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
