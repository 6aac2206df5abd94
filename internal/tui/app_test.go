package tui_test

import (
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"pavo/internal/lifecycle"
	"pavo/internal/model"
	"pavo/internal/storage"
	"pavo/internal/tui"
)

func newTestApp(t *testing.T, dirs ...string) (tui.App, *lifecycle.Manager) {
	t.Helper()

	st := storage.NewYAMLStorage(filepath.Join(t.TempDir(), "pavo.yml"))
	manager := lifecycle.NewManager(model.DefaultStore(), st)

	base := t.TempDir()
	for _, name := range dirs {
		dir := filepath.Join(base, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if _, err := manager.Add(dir, false); err != nil {
			t.Fatal(err)
		}
	}

	return tui.NewApp(tui.AppParams{Manager: manager}), manager
}

func press(app tui.App, msg tea.KeyMsg) (tui.App, tea.Cmd) {
	updated, cmd := app.Update(msg)
	return updated.(tui.App), cmd
}

func typeRunes(app tui.App, s string) tui.App {
	for _, r := range s {
		app, _ = press(app, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return app
}

func TestApp_InitialFocusIsSearch(t *testing.T) {
	app, _ := newTestApp(t, "alpha", "beta")

	if app.Focus() != tui.PanelSearch {
		t.Errorf("expected search panel focused, got %v", app.Focus())
	}
	if len(app.Results()) != 2 {
		t.Errorf("expected 2 results, got %d", len(app.Results()))
	}
}

func TestApp_TypingFiltersResults(t *testing.T) {
	app, _ := newTestApp(t, "alpha", "beta")

	app = typeRunes(app, "alpha")

	if len(app.Results()) != 1 {
		t.Fatalf("expected 1 result, got %d", len(app.Results()))
	}
	if filepath.Base(app.Results()[0].Bookmark.Path) != "alpha" {
		t.Errorf("wrong result: %s", app.Results()[0].Bookmark.Path)
	}
}

func TestApp_QueryChangeResetsCursor(t *testing.T) {
	app, _ := newTestApp(t, "alpha", "beta", "gamma")

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown})
	if app.Cursor() != 1 {
		t.Fatalf("expected cursor moved to 1, got %d", app.Cursor())
	}

	app = typeRunes(app, "a")
	if app.Cursor() != 0 {
		t.Errorf("typing must reset the cursor to the top result, got %d", app.Cursor())
	}

	// Deleting a character changes the query too.
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyBackspace})
	if app.Cursor() != 0 {
		t.Errorf("erasing must reset the cursor to the top result, got %d", app.Cursor())
	}
}

func TestApp_TabCyclesPanels(t *testing.T) {
	app, _ := newTestApp(t, "alpha")

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.Focus() != tui.PanelPaths {
		t.Errorf("after tab, expected paths panel, got %v", app.Focus())
	}

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.Focus() != tui.PanelPreview {
		t.Errorf("after two tabs, expected preview panel, got %v", app.Focus())
	}

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.Focus() != tui.PanelSearch {
		t.Errorf("tab should wrap back to search, got %v", app.Focus())
	}

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyShiftTab})
	if app.Focus() != tui.PanelPreview {
		t.Errorf("shift+tab should cycle backwards, got %v", app.Focus())
	}
}

func TestApp_CursorWrapsAround(t *testing.T) {
	app, _ := newTestApp(t, "alpha", "beta", "gamma")

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown})
	if app.Cursor() != 1 {
		t.Errorf("after down, expected cursor 1, got %d", app.Cursor())
	}

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyDown})
	if app.Cursor() != 0 {
		t.Errorf("down at bottom should wrap to 0, got %d", app.Cursor())
	}

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyUp})
	if app.Cursor() != 2 {
		t.Errorf("up at top should wrap to bottom, got %d", app.Cursor())
	}
}

func TestApp_ConfirmSelectsAndRecordsUsage(t *testing.T) {
	app, manager := newTestApp(t, "alpha")

	app, cmd := press(app, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if app.SelectedPath() == "" {
		t.Fatal("expected a selected path")
	}
	if app.Cancelled() {
		t.Error("confirmed selection must not be cancelled")
	}
	if app.TouchErr() != nil {
		t.Errorf("touch failed: %v", app.TouchErr())
	}

	b := manager.Store().Get(app.SelectedPath())
	if b == nil {
		t.Fatal("selected path missing from store")
	}
	if b.AccessCount != 1 {
		t.Errorf("expected access count 1, got %d", b.AccessCount)
	}
}

func TestApp_EscapeCancels(t *testing.T) {
	app, _ := newTestApp(t, "alpha")

	app, cmd := press(app, tea.KeyMsg{Type: tea.KeyEsc})

	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !app.Cancelled() {
		t.Error("expected cancelled session")
	}
	if app.SelectedPath() != "" {
		t.Errorf("cancelled session must not select, got %q", app.SelectedPath())
	}
}

func TestApp_ConfirmWithNoResultsDoesNothing(t *testing.T) {
	app, _ := newTestApp(t, "alpha")
	app = typeRunes(app, "zzzzzz")

	app, cmd := press(app, tea.KeyMsg{Type: tea.KeyEnter})

	if cmd != nil {
		t.Error("expected no quit command with empty result list")
	}
	if app.SelectedPath() != "" {
		t.Errorf("got selection %q", app.SelectedPath())
	}
}

func TestApp_EnterOnPathsPanelOpensModal(t *testing.T) {
	app, _ := newTestApp(t, "alpha")

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyEnter})

	if !app.ShowModal() {
		t.Fatal("expected modal to open")
	}
	if app.ModalFocus() != tui.FieldPersist {
		t.Errorf("modal should open on persist field, got %v", app.ModalFocus())
	}
}

func TestApp_ModalCommitPersistsOptions(t *testing.T) {
	app, manager := newTestApp(t, "alpha")
	path := app.Results()[0].Bookmark.Path

	// Open the modal from the paths panel.
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyEnter})

	// Toggle persist, then tab to tags and type.
	app, _ = press(app, tea.KeyMsg{Type: tea.KeySpace})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	if app.ModalFocus() != tui.FieldTags {
		t.Fatalf("expected tags field focused, got %v", app.ModalFocus())
	}
	app = typeRunes(app, "work, go")

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyEnter})
	if app.ShowModal() {
		t.Fatal("modal should close on commit")
	}

	b := manager.Store().Get(path)
	if b == nil {
		t.Fatal("bookmark missing")
	}
	if !b.Persist {
		t.Error("expected persist set")
	}
	if len(b.Tags) != 2 || b.Tags[0] != "work" || b.Tags[1] != "go" {
		t.Errorf("got tags %v", b.Tags)
	}
}

func TestApp_ModalEscapeDiscardsEdits(t *testing.T) {
	app, manager := newTestApp(t, "alpha")
	path := app.Results()[0].Bookmark.Path

	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyEnter})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeySpace})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyEsc})

	if app.ShowModal() {
		t.Fatal("modal should close on escape")
	}

	b := manager.Store().Get(path)
	if b.Persist {
		t.Error("escape must not apply the persist toggle")
	}
}

func TestApp_TagFilterNarrowsResults(t *testing.T) {
	st := storage.NewYAMLStorage(filepath.Join(t.TempDir(), "pavo.yml"))
	manager := lifecycle.NewManager(model.DefaultStore(), st)

	base := t.TempDir()
	for _, name := range []string{"alpha", "beta"} {
		dir := filepath.Join(base, name)
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
		if _, err := manager.Add(dir, false); err != nil {
			t.Fatal(err)
		}
	}
	tagged := manager.Store().Bookmarks[0].Path
	if err := manager.SetOptions(tagged, false, []string{"work"}); err != nil {
		t.Fatal(err)
	}

	app := tui.NewApp(tui.AppParams{Manager: manager, Tag: "work"})

	if len(app.Results()) != 1 {
		t.Fatalf("expected 1 result, got %d", len(app.Results()))
	}
	if app.Results()[0].Bookmark.Path != tagged {
		t.Errorf("got %s", app.Results()[0].Bookmark.Path)
	}
}

func TestApp_ViewRendersWithoutResults(t *testing.T) {
	app, _ := newTestApp(t)

	view := app.View()
	if view == "" {
		t.Error("expected non-empty view")
	}
}
