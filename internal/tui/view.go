package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// renderView creates the complete picker view.
func (a App) renderView() string {
	if a.showModal {
		return a.renderModal()
	}

	contentWidth := a.width - 4 // app padding
	paneWidth := (contentWidth - 4) / 2
	paneHeight := a.height - 10 // search bar, help bar, padding

	searchBar := a.renderSearchBar(contentWidth - 2)
	pathsPane := a.renderPathsPane(paneWidth, paneHeight)
	previewPane := a.renderPreviewPane(paneWidth, paneHeight)

	columns := lipgloss.JoinHorizontal(lipgloss.Top, pathsPane, previewPane)
	helpBar := a.renderHelpBar()

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left, searchBar, columns, helpBar),
	)

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

func (a App) renderSearchBar(width int) string {
	content := a.searchInput.View()
	if a.tag != "" {
		content += "  " + a.styles.Tag.Render("[tag: "+a.tag+"]")
	}

	style := a.styles.Pane
	if a.focus == PanelSearch {
		style = a.styles.PaneActive
	}
	return style.Width(width).Render(content)
}

func (a App) renderPathsPane(width, height int) string {
	var content strings.Builder

	itemWidth := width - 2

	if len(a.results) == 0 {
		content.WriteString(a.styles.Empty.Render("(no matches)"))
	} else {
		// Viewport offset keeps the cursor visible.
		offset := 0
		if a.cursor >= height {
			offset = a.cursor - height + 1
		}

		for i := range a.results {
			if i < offset {
				continue
			}
			if i >= offset+height {
				break
			}
			selected := a.focus != PanelPreview && i == a.cursor
			content.WriteString(a.renderPathItem(i, selected, itemWidth) + "\n")
		}
	}

	style := a.styles.Pane
	if a.focus == PanelPaths {
		style = a.styles.PaneActive
	}
	return style.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) renderPathItem(i int, selected bool, maxWidth int) string {
	b := a.results[i].Bookmark
	label := a.labels[i]

	var prefix string
	if b.Persist {
		prefix = "* "
	}

	if selected {
		line := prefix + label
		if len(b.Tags) > 0 {
			line += "  #" + strings.Join(b.Tags, " #")
		}
		// Measure in display cells, not bytes. Wide runes in a path
		// component would otherwise break truncation and padding.
		runes := []rune(line)
		for lipgloss.Width(string(runes)) > maxWidth && len(runes) > 0 {
			runes = runes[:len(runes)-1]
		}
		line = string(runes)
		if pad := maxWidth - lipgloss.Width(line); pad > 0 {
			line += strings.Repeat(" ", pad)
		}
		return a.styles.ItemSelected.Render(line)
	}

	var line strings.Builder
	if b.Persist {
		line.WriteString(a.styles.Persist.Render(prefix))
	}
	line.WriteString(a.highlightLabel(label))
	if len(b.Tags) > 0 {
		line.WriteString("  " + a.styles.Tag.Render("#"+strings.Join(b.Tags, " #")))
	}
	return a.styles.Item.Render(line.String())
}

// highlightLabel marks the query's matched runes within a display label.
// The filter matches against full paths, so the label is re-matched here
// to find positions within the shortened form.
func (a App) highlightLabel(label string) string {
	query := a.searchInput.Value()
	if query == "" {
		return label
	}

	matches := fuzzy.Find(query, []string{label})
	if len(matches) == 0 {
		return label
	}

	matched := make(map[int]bool)
	for _, idx := range matches[0].MatchedIndexes {
		matched[idx] = true
	}

	var out strings.Builder
	for i, r := range []rune(label) {
		if matched[i] {
			out.WriteString(a.styles.Match.Render(string(r)))
		} else {
			out.WriteRune(r)
		}
	}
	return out.String()
}

func (a App) renderPreviewPane(width, height int) string {
	var content string

	if len(a.results) == 0 {
		content = a.styles.Empty.Render("(nothing to preview)")
	} else {
		lines := strings.Split(a.previewText, "\n")
		offset := a.previewScroll
		if offset > len(lines)-1 {
			offset = len(lines) - 1
		}
		if offset < 0 {
			offset = 0
		}
		end := offset + height
		if end > len(lines) {
			end = len(lines)
		}
		content = strings.Join(lines[offset:end], "\n")
	}

	style := a.styles.Pane
	if a.focus == PanelPreview {
		style = a.styles.PaneActive
	}
	return style.
		Width(width).
		Height(height).
		Render(content)
}

func (a App) renderModal() string {
	modalWidth := a.width * 6 / 10
	if modalWidth < 40 {
		modalWidth = 40
	}

	b := a.results[a.cursor].Bookmark

	var content strings.Builder
	content.WriteString(a.styles.Title.Render("Edit Bookmark"))
	content.WriteString("\n\n")
	content.WriteString(a.styles.Tag.Render(b.Path))
	content.WriteString("\n\n")

	checkbox := "[ ]"
	if a.modalPersist {
		checkbox = "[x]"
	}
	persistLine := checkbox + " Persist"
	if a.modalFocus == FieldPersist {
		content.WriteString(a.styles.ItemSelected.Render(persistLine))
	} else {
		content.WriteString(persistLine)
	}
	content.WriteString("\n\n")

	tagsLabel := "Tags (comma-separated):"
	if a.modalFocus == FieldTags {
		tagsLabel = a.styles.Tag.Render(tagsLabel)
	}
	content.WriteString(tagsLabel + "\n")
	content.WriteString(a.modalTags.View())
	content.WriteString("\n\n")
	content.WriteString(a.styles.Help.Render("[tab] field  [enter] save  [esc] cancel"))

	modal := lipgloss.Place(
		a.width,
		a.height-3,
		lipgloss.Center,
		lipgloss.Center,
		a.styles.Modal.Width(modalWidth).Render(content.String()),
	)

	return lipgloss.JoinVertical(lipgloss.Left, modal, a.renderHelpBar())
}

func (a App) renderHelpBar() string {
	var lines []string

	if a.message != "" {
		lines = append(lines, a.styles.Warning.Render(a.message))
	} else {
		lines = append(lines, "")
	}

	hints := "[enter] select  [tab] panel  [ctrl+y] yank  [esc] quit"
	if a.focus == PanelPaths {
		hints = "[enter] edit  [tab] panel  [ctrl+y] yank  [esc] quit"
	}
	lines = append(lines, a.styles.Help.Render(hints))

	return strings.Join(lines, "\n")
}
