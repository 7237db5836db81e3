package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/stitchcli/internal/client"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"}
	colorRed   = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"}
	colorGray  = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"}
	colorCyan  = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"}
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the main view (image sidebar + form/result column)
func (m Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	sidebarWidth := max(30, m.width*35/100)
	if m.width < 90 {
		sidebarWidth = m.width / 2
	}
	rightWidth := m.width - sidebarWidth - 4

	sidebar := m.renderSidebar(sidebarWidth-2, m.height-3)
	form := m.renderForm(rightWidth - 2)
	result := m.renderResult(rightWidth - 2)

	sidebarBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(sidebarWidth).
		Height(m.height - 1).
		Render(sidebar)

	formBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(rightWidth).
		Render(form)

	resultBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(rightWidth).
		Render(result)

	rightColumn := lipgloss.JoinVertical(lipgloss.Left, formBox, resultBox)
	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebarBox, rightColumn)
	statusBar := m.renderStatusBar()

	return lipgloss.JoinVertical(lipgloss.Left, body, statusBar)
}

// renderSidebar renders the source image list
func (m Model) renderSidebar(width, height int) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Images"))
	b.WriteString("\n\n")

	if len(m.files) == 0 {
		b.WriteString(styleSubtle.Render("No images found.\nDrop files into the images directory\nand press 'r' to refresh."))
		return b.String()
	}

	visible := m.getFileListHeight()
	end := m.fileOffset + visible
	if end > len(m.files) {
		end = len(m.files)
	}

	for i := m.fileOffset; i < end; i++ {
		f := m.files[i]
		line := f.Name
		if len(line) > width-4 && width > 7 {
			line = line[:width-7] + "..."
		}

		marker := "  "
		if f.Path == m.form.FilePath {
			marker = "* "
		}
		line = marker + line

		if i == m.fileIndex {
			b.WriteString(styleSelected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}

	if len(m.files) > visible {
		b.WriteString("\n")
		b.WriteString(styleSubtle.Render(fmt.Sprintf("%d/%d", m.fileIndex+1, len(m.files))))
	}

	return b.String()
}

// renderForm renders the upload parameters panel
func (m Model) renderForm(width int) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Pattern settings"))
	b.WriteString("\n\n")

	fileName := m.form.FileName
	if fileName == "" {
		fileName = styleSubtle.Render("none (enter to pick from the list)")
	}
	b.WriteString(fmt.Sprintf("%-22s %s\n", "Selected image:", fileName))

	for i := 0; i < fieldCount; i++ {
		value := m.form.Field(i)
		if m.mode == ModeParamEdit && m.paramIndex == i {
			value = m.renderInputWithCursor(m.paramInput, m.paramCursor)
		}
		hint := styleSubtle.Render(" [" + fieldHints[i] + "]")
		b.WriteString(fmt.Sprintf("%-22s %s%s\n", fieldLabels[i]+":", value, hint))
	}

	b.WriteString("\n")
	if m.loading {
		b.WriteString(m.spin.View())
		b.WriteString(" Generating pattern...")
	} else if m.form.CanSubmit(false) {
		b.WriteString(styleSubtle.Render("press 's' to generate"))
	} else {
		b.WriteString(styleSubtle.Render("select an image to enable generation"))
	}

	return b.String()
}

// renderResult renders the pattern result panel
func (m Model) renderResult(width int) string {
	var b strings.Builder

	b.WriteString(styleTitle.Render("Pattern"))
	b.WriteString("\n\n")

	if m.patternRef == "" {
		b.WriteString(styleSubtle.Render("No pattern generated yet."))
		return b.String()
	}

	b.WriteString(styleSuccess.Render("Ready: "))
	b.WriteString(m.client.PatternURL(m.patternRef))
	b.WriteString("\n")

	if m.lastResult != nil && m.lastResult.Error == "" {
		b.WriteString(styleSubtle.Render(fmt.Sprintf("generated in %s, %s",
			client.FormatDuration(m.lastResult.Duration),
			client.FormatSize(m.lastResult.ResponseSize))))
		b.WriteString("\n")
	}

	if m.savedPath != "" {
		b.WriteString(styleSubtle.Render("saved to " + m.savedPath))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("'d' download as " + client.DownloadFilename + "  -  'c' copy URL"))

	return b.String()
}

// renderStatusBar renders the footer line
func (m Model) renderStatusBar() string {
	if m.errorMsg != "" {
		return styleError.Render(truncate(m.errorMsg, m.width-2))
	}
	if m.statusMsg != "" {
		return truncate(m.statusMsg, m.width-2)
	}
	return styleSubtle.Render("s: generate  e/1/2/3: edit params  d: download  H: history  ?: help  q: quit")
}

// renderInputWithCursor shows an input buffer with a block cursor.
// The cursor position counts runes, not bytes.
func (m Model) renderInputWithCursor(input string, cursor int) string {
	runes := []rune(input)
	if cursor >= len(runes) {
		return input + styleSelected.Render(" ")
	}
	return string(runes[:cursor]) + styleSelected.Render(string(runes[cursor])) + string(runes[cursor+1:])
}

// renderHistory renders the pattern history modal
func (m Model) renderHistory() string {
	title := styleTitle.Render("Pattern history")
	footer := styleSubtle.Render("enter: load pattern  C: clear  esc: back")

	content := m.historyView.View()

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(m.width - 4).
		Height(m.height - 4).
		Render(title + "\n\n" + content + "\n" + footer)

	return box
}

// updateHistoryView refreshes the history viewport content
func (m *Model) updateHistoryView() {
	if m.width > 8 {
		m.historyView.Width = m.width - 8
	}
	if m.height > 9 {
		m.historyView.Height = m.height - 9
	}

	if len(m.historyEntries) == 0 {
		m.historyView.SetContent(styleSubtle.Render("No patterns generated yet."))
		return
	}

	var b strings.Builder
	for i, e := range m.historyEntries {
		status := styleSuccess.Render("ok")
		if e.Error != "" {
			status = styleError.Render("failed")
		}

		line := fmt.Sprintf("%s  %-24s cols=%-5s %s",
			e.Timestamp, truncate(e.SourceImage, 24), e.Cols, status)

		if i == m.historyIndex {
			b.WriteString(styleSelected.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")

		if i == m.historyIndex && e.Error != "" {
			b.WriteString(styleSubtle.Render("  " + truncate(e.Error, m.width-12)))
			b.WriteString("\n")
		}
	}

	m.historyView.SetContent(b.String())
}

// renderHistoryClearConfirmation renders the destructive-action prompt
func (m Model) renderHistoryClearConfirmation() string {
	content := styleTitle.Render("Clear history") + "\n\n" +
		"Delete all pattern history entries?\n\n" +
		styleSubtle.Render("y: yes  n: no")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorRed).
			Padding(1, 2).
			Render(content))
}

// renderHelp renders the keybinding help screen
func (m Model) renderHelp() string {
	help := []string{
		styleTitle.Render("stitchcli " + m.version),
		"",
		"j/k, up/down   navigate images",
		"enter, space   select image",
		"x              clear selection",
		"s              generate pattern",
		"e, 1/2/3       edit parameters (cols, stitch width, stitch height)",
		"d              download pattern (" + client.DownloadFilename + ")",
		"c              copy pattern URL",
		"r              refresh image list",
		"H              pattern history",
		"q, ctrl+c      quit",
		"",
		styleSubtle.Render("Server: " + m.client.BaseURL()),
	}

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(1, 3).
			Render(strings.Join(help, "\n")))
}

// getFileListHeight returns how many sidebar rows are available
func (m Model) getFileListHeight() int {
	h := m.height - 7
	if h < 1 {
		return 1
	}
	return h
}

// truncate shortens a string for single-line display
func truncate(s string, width int) string {
	if width <= 3 || len(s) <= width {
		return s
	}
	return s[:width-3] + "..."
}
