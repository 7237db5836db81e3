package tui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/stitchcli/internal/client"
	"github.com/studiowebux/stitchcli/internal/history"
	"github.com/studiowebux/stitchcli/internal/session"
	"github.com/studiowebux/stitchcli/internal/types"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeParamEdit
	ModeHistory
	ModeHistoryClearConfirm
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	// Core state
	sessionMgr *session.Manager
	historyMgr *history.Manager
	client     *client.Client
	mode       Mode
	version    string

	// File list
	files      []types.FileInfo
	fileIndex  int // Current selected file
	fileOffset int // Scroll offset for file list

	// Upload form
	form        Form
	paramIndex  int    // Field being edited in ModeParamEdit
	paramInput  string // Input buffer for the field under edit
	paramCursor int    // Cursor position in paramInput

	// Request/Result
	loading    bool // True while a generation request is in flight
	spin       spinner.Model
	patternRef string // Server-provided pattern reference; survives failed requests
	lastResult *types.UploadResult
	savedPath  string // Last saved chart path, shown in the result panel

	// History state
	historyEntries []types.PatternEntry
	historyIndex   int
	historyView    viewport.Model

	// UI state
	width     int
	height    int
	statusMsg string
	errorMsg  string
}

// Init initializes the TUI
func (m *Model) Init() tea.Cmd {
	return nil
}

// Cleanup closes database connections
func (m *Model) Cleanup() {
	if m.historyMgr != nil {
		if err := m.historyMgr.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing history database: %v\n", err)
		}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateHistoryView()

	case spinner.TickMsg:
		if m.loading {
			m.spin, cmd = m.spin.Update(msg)
		}

	case fileListLoadedMsg:
		m.files = msg.files
		m.fileIndex = 0
		m.fileOffset = 0
		m.statusMsg = fmt.Sprintf("Found %d images", len(msg.files))

	case patternGeneratedMsg:
		// Busy flag always clears on settlement, success or failure
		m.loading = false
		m.lastResult = msg.result

		if msg.result.Error != "" {
			// Request failures are swallowed: the previous pattern
			// reference stays visible and only the footer reports it
			m.errorMsg = fmt.Sprintf("Pattern generation failed: %s", msg.result.Error)
			m.statusMsg = ""
		} else {
			m.patternRef = msg.result.PatternImage
			m.savedPath = ""
			m.errorMsg = ""
			m.statusMsg = fmt.Sprintf("Pattern ready in %s", client.FormatDuration(msg.result.Duration))
		}

		m.saveHistoryEntry(msg.request, msg.result)

	case patternSavedMsg:
		m.savedPath = msg.path
		m.statusMsg = fmt.Sprintf("Saved %s", msg.path)

	case historyLoadedMsg:
		m.historyEntries = msg.entries
		m.historyIndex = 0
		if len(msg.entries) > 0 {
			m.statusMsg = fmt.Sprintf("Loaded %d history entries", len(msg.entries))
		}
		m.updateHistoryView()

	case clearStatusMsg:
		m.statusMsg = ""

	case errorMsg:
		m.loading = false // Clear loading flag on error
		m.errorMsg = string(msg)
	}

	return m, cmd
}

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.mode {
	case ModeHelp:
		return m.renderHelp()
	case ModeHistory:
		return m.renderHistory()
	case ModeHistoryClearConfirm:
		return m.renderHistoryClearConfirmation()
	default:
		return m.renderMain()
	}
}

// saveHistoryEntry records a settled request, best-effort
func (m *Model) saveHistoryEntry(req *types.UploadRequest, result *types.UploadResult) {
	if m.historyMgr == nil || !m.sessionMgr.IsHistoryEnabled() || req == nil {
		return
	}

	profile := m.sessionMgr.GetActiveProfile()
	_ = m.historyMgr.Save(types.PatternEntry{
		SourceImage:  req.FileName,
		Cols:         req.Cols,
		StitchWidth:  req.StitchWidth,
		StitchHeight: req.StitchHeight,
		PatternImage: result.PatternImage,
		Status:       result.Status,
		DurationMs:   result.Duration,
		Error:        result.Error,
		ProfileName:  profile.Name,
	})
}

// Custom message types
type fileListLoadedMsg struct {
	files []types.FileInfo
}

type patternGeneratedMsg struct {
	request *types.UploadRequest
	result  *types.UploadResult
}

type patternSavedMsg struct {
	path string
}

type historyLoadedMsg struct {
	entries []types.PatternEntry
}

type clearStatusMsg struct{}

type errorMsg string
