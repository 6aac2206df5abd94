package tui_test

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"pavo/internal/tui"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func resize(app tui.App, width, height int) tui.App {
	updated, _ := app.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return updated.(tui.App)
}

func TestView_ShowsShortPathLabels(t *testing.T) {
	app, _ := newTestApp(t, "alpha", "beta")
	app = resize(app, 120, 40)

	view := stripANSI(app.View())
	assert.Assert(t, cmp.Contains(view, "alpha"))
	assert.Assert(t, cmp.Contains(view, "beta"))
}

func TestView_ShowsHelpBar(t *testing.T) {
	app, _ := newTestApp(t, "alpha")
	app = resize(app, 120, 40)

	view := stripANSI(app.View())
	assert.Assert(t, cmp.Contains(view, "[enter] select"))
	assert.Assert(t, cmp.Contains(view, "[esc] quit"))
}

func TestView_EmptyResults(t *testing.T) {
	app, _ := newTestApp(t, "alpha")
	app = typeRunes(app, "zzzzz")
	app = resize(app, 120, 40)

	view := stripANSI(app.View())
	assert.Assert(t, cmp.Contains(view, "(no matches)"))
}

func TestView_WideRunesInSelectedRow(t *testing.T) {
	app, _ := newTestApp(t, "plain", "日本語メモ")
	app = resize(app, 120, 40)

	view := stripANSI(app.View())
	assert.Assert(t, utf8.ValidString(view))
	assert.Assert(t, cmp.Contains(view, "日本語メモ"))
}

func TestView_WideRunesTruncateOnRuneBoundary(t *testing.T) {
	app, _ := newTestApp(t, strings.Repeat("ほ", 40))
	app = resize(app, 60, 20)

	view := stripANSI(app.View())
	assert.Assert(t, utf8.ValidString(view))
}

func TestView_TagFilterIndicator(t *testing.T) {
	_, manager := newTestApp(t, "alpha")
	tagged := tui.NewApp(tui.AppParams{Manager: manager, Tag: "work"})

	view := stripANSI(resize(tagged, 120, 40).View())
	assert.Assert(t, cmp.Contains(view, "[tag: work]"))
}

func TestView_Modal(t *testing.T) {
	app, _ := newTestApp(t, "alpha")
	app = resize(app, 120, 40)
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyEnter})

	view := stripANSI(app.View())
	assert.Assert(t, cmp.Contains(view, "Edit Bookmark"))
	assert.Assert(t, cmp.Contains(view, "[ ] Persist"))
	assert.Assert(t, cmp.Contains(view, "Tags (comma-separated):"))
}

func TestView_ModalPersistToggled(t *testing.T) {
	app, _ := newTestApp(t, "alpha")
	app = resize(app, 120, 40)
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyTab})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeyEnter})
	app, _ = press(app, tea.KeyMsg{Type: tea.KeySpace})

	view := stripANSI(app.View())
	assert.Assert(t, cmp.Contains(view, "[x] Persist"))
}
