package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/stitchcli/internal/config"
)

// navigateFiles moves the file selection up or down with wrap-around
func (m *Model) navigateFiles(delta int) {
	if len(m.files) == 0 {
		return
	}

	m.fileIndex += delta

	if m.fileIndex < 0 {
		m.fileIndex = len(m.files) - 1
	} else if m.fileIndex >= len(m.files) {
		m.fileIndex = 0
	}

	pageSize := m.getFileListHeight()
	if m.fileIndex < m.fileOffset {
		m.fileOffset = m.fileIndex
	} else if m.fileIndex >= m.fileOffset+pageSize {
		m.fileOffset = m.fileIndex - pageSize + 1
	}
}

// selectCurrentFile stores the highlighted image in the upload form
func (m *Model) selectCurrentFile() {
	if len(m.files) == 0 {
		return
	}
	m.form.SelectFile(m.files[m.fileIndex].Path)
	m.statusMsg = "Selected " + m.form.FileName
}

// clearSelection resets the selected file and its display name
func (m *Model) clearSelection() {
	m.form.SelectFile("")
	m.statusMsg = "Selection cleared"
}

// submitPattern dispatches the upload. It is a no-op when no file is
// selected and refuses to start while a request is already in flight.
func (m *Model) submitPattern() tea.Cmd {
	if m.loading {
		m.statusMsg = "Generation already in progress"
		return nil
	}

	if m.form.FilePath == "" {
		// No network call, no state change
		m.statusMsg = "No image selected"
		return nil
	}

	// Busy until the request settles; cleared in patternGeneratedMsg
	// and errorMsg handling
	m.loading = true
	m.errorMsg = ""
	m.statusMsg = "Generating pattern..."

	req := m.form.UploadRequest()
	c := m.client

	upload := func() tea.Msg {
		result, err := c.Upload(req)
		if err != nil {
			return errorMsg("Failed to submit image: " + err.Error())
		}
		return patternGeneratedMsg{request: req, result: result}
	}

	return tea.Batch(m.spin.Tick, upload)
}

// downloadPattern saves the current pattern chart to the outputs directory
func (m *Model) downloadPattern() tea.Cmd {
	if m.patternRef == "" {
		m.statusMsg = "No pattern to download"
		return nil
	}

	ref := m.patternRef
	c := m.client

	return func() tea.Msg {
		path, err := c.Download(ref, config.OutputsDir)
		if err != nil {
			return errorMsg(err.Error())
		}
		return patternSavedMsg{path: path}
	}
}

// loadHistory fetches pattern history from the database
func (m *Model) loadHistory() tea.Cmd {
	if m.historyMgr == nil {
		return func() tea.Msg {
			return errorMsg("History is not available")
		}
	}

	mgr := m.historyMgr
	return func() tea.Msg {
		entries, err := mgr.Load()
		if err != nil {
			return errorMsg("Failed to load history: " + err.Error())
		}
		return historyLoadedMsg{entries: entries}
	}
}

// clearHistory deletes all history entries
func (m *Model) clearHistory() tea.Cmd {
	mgr := m.historyMgr
	return func() tea.Msg {
		if err := mgr.Clear(); err != nil {
			return errorMsg("Failed to clear history: " + err.Error())
		}
		return historyLoadedMsg{entries: nil}
	}
}

// refreshFiles reloads the image list from the working directory
func (m *Model) refreshFiles() tea.Cmd {
	mgr := m.sessionMgr
	return func() tea.Msg {
		files, err := loadFiles(mgr)
		if err != nil {
			return errorMsg("Failed to reload images: " + err.Error())
		}
		return fileListLoadedMsg{files: files}
	}
}
