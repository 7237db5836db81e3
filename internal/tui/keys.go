package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeParamEdit:
		return m.handleParamEditKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeHistoryClearConfirm:
		return m.handleHistoryClearConfirmKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return nil
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.Cleanup()
		return tea.Quit

	case "up", "k":
		m.navigateFiles(-1)

	case "down", "j":
		m.navigateFiles(1)

	case "enter", " ":
		m.selectCurrentFile()

	case "x":
		m.clearSelection()

	case "s":
		return m.submitPattern()

	case "e":
		m.startParamEdit(fieldCols)

	case "1":
		m.startParamEdit(fieldCols)

	case "2":
		m.startParamEdit(fieldStitchWidth)

	case "3":
		m.startParamEdit(fieldStitchHeight)

	case "d":
		return m.downloadPattern()

	case "c":
		if m.patternRef == "" {
			m.statusMsg = "No pattern URL to copy"
			return nil
		}
		if err := clipboard.WriteAll(m.client.PatternURL(m.patternRef)); err != nil {
			m.errorMsg = "Failed to copy URL: " + err.Error()
			return nil
		}
		m.statusMsg = "Pattern URL copied"

	case "r":
		return m.refreshFiles()

	case "H":
		m.mode = ModeHistory
		return m.loadHistory()

	case "?":
		m.mode = ModeHelp
	}

	return nil
}

// startParamEdit enters parameter editing on the given field.
// The cursor is rune-indexed into the input buffer.
func (m *Model) startParamEdit(field int) {
	m.mode = ModeParamEdit
	m.paramIndex = field
	m.paramInput = m.form.Field(field)
	m.paramCursor = len([]rune(m.paramInput))
}

// commitParamEdit stores the input buffer into the form, as typed
func (m *Model) commitParamEdit() {
	m.form.SetField(m.paramIndex, m.paramInput)
}

func (m *Model) handleParamEditKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal

	case "enter":
		m.commitParamEdit()
		m.mode = ModeNormal

	case "tab", "down":
		m.commitParamEdit()
		m.startParamEdit((m.paramIndex + 1) % fieldCount)

	case "shift+tab", "up":
		m.commitParamEdit()
		m.startParamEdit((m.paramIndex + fieldCount - 1) % fieldCount)

	case "left":
		if m.paramCursor > 0 {
			m.paramCursor--
		}

	case "right":
		if m.paramCursor < len([]rune(m.paramInput)) {
			m.paramCursor++
		}

	case "backspace":
		if m.paramCursor > 0 {
			runes := []rune(m.paramInput)
			m.paramInput = string(runes[:m.paramCursor-1]) + string(runes[m.paramCursor:])
			m.paramCursor--
		}

	default:
		if msg.Type == tea.KeyRunes {
			runes := []rune(m.paramInput)
			m.paramInput = string(runes[:m.paramCursor]) + string(msg.Runes) + string(runes[m.paramCursor:])
			m.paramCursor += len(msg.Runes)
		}
	}

	return nil
}

func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "H":
		m.mode = ModeNormal

	case "up", "k":
		if m.historyIndex > 0 {
			m.historyIndex--
			m.updateHistoryView()
		}

	case "down", "j":
		if m.historyIndex < len(m.historyEntries)-1 {
			m.historyIndex++
			m.updateHistoryView()
		}

	case "enter":
		// Restore a past result into the result panel
		if m.historyIndex < len(m.historyEntries) {
			entry := m.historyEntries[m.historyIndex]
			if entry.PatternImage != "" {
				m.patternRef = entry.PatternImage
				m.savedPath = ""
				m.statusMsg = "Loaded pattern from history"
				m.mode = ModeNormal
			}
		}

	case "C":
		m.mode = ModeHistoryClearConfirm
	}

	return nil
}

func (m *Model) handleHistoryClearConfirmKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "y", "Y":
		m.mode = ModeHistory
		return m.clearHistory()

	case "n", "N", "esc":
		m.mode = ModeHistory
	}

	return nil
}

func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = ModeNormal
	}

	return nil
}
