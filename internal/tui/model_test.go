package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/studiowebux/stitchcli/internal/client"
	"github.com/studiowebux/stitchcli/internal/session"
	"github.com/studiowebux/stitchcli/internal/types"
)

// newTestModel creates a Model with minimal dependencies and no database
func newTestModel(t *testing.T) *Model {
	t.Helper()

	return &Model{
		sessionMgr:  session.NewManager(),
		client:      client.New("http://localhost:5001"),
		mode:        ModeNormal,
		form:        NewForm(),
		spin:        spinner.New(),
		historyView: viewport.New(80, 20),
		width:       100,
		height:      30,
	}
}

func TestSubmitWithoutFileIsNoOp(t *testing.T) {
	m := newTestModel(t)
	m.patternRef = "/api/output/previous.png"

	cmd := m.submitPattern()

	// No command means no network call is dispatched
	if cmd != nil {
		t.Error("Expected no command when no file is selected")
	}
	if m.loading {
		t.Error("Expected busy flag to stay false")
	}
	if m.patternRef != "/api/output/previous.png" {
		t.Errorf("Expected result state unchanged, got %q", m.patternRef)
	}
}

func TestSubmitSetsBusyFlag(t *testing.T) {
	m := newTestModel(t)
	m.form.SelectFile("/tmp/cat.png")

	if m.loading {
		t.Fatal("Expected busy flag false before submit")
	}

	cmd := m.submitPattern()
	if cmd == nil {
		t.Fatal("Expected a command to be dispatched")
	}
	if !m.loading {
		t.Error("Expected busy flag true while request is in flight")
	}
}

func TestSubmitWhileBusyIsRejected(t *testing.T) {
	m := newTestModel(t)
	m.form.SelectFile("/tmp/cat.png")
	m.loading = true

	if cmd := m.submitPattern(); cmd != nil {
		t.Error("Expected no command while a request is in flight")
	}
}

func TestSuccessfulResponseUpdatesResult(t *testing.T) {
	m := newTestModel(t)
	m.form.SelectFile("/tmp/cat.png")
	m.submitPattern()

	m.Update(patternGeneratedMsg{
		request: m.form.UploadRequest(),
		result:  &types.UploadResult{PatternImage: "/x.png", Status: 200, Duration: 100},
	})

	if m.loading {
		t.Error("Expected busy flag cleared after success")
	}
	if m.patternRef != "/x.png" {
		t.Errorf("Expected pattern reference /x.png, got %q", m.patternRef)
	}
	if m.errorMsg != "" {
		t.Errorf("Expected no error message, got %q", m.errorMsg)
	}
}

func TestMissingPatternFieldClearsResult(t *testing.T) {
	m := newTestModel(t)
	m.patternRef = "/api/output/previous.png"
	m.form.SelectFile("/tmp/cat.png")
	m.submitPattern()

	// A successful response without pattern_image clears the reference
	m.Update(patternGeneratedMsg{
		request: m.form.UploadRequest(),
		result:  &types.UploadResult{PatternImage: "", Status: 200},
	})

	if m.patternRef != "" {
		t.Errorf("Expected empty pattern reference, got %q", m.patternRef)
	}
}

func TestFailedRequestPreservesResult(t *testing.T) {
	m := newTestModel(t)
	m.patternRef = "/api/output/previous.png"
	m.form.SelectFile("/tmp/cat.png")
	m.submitPattern()

	m.Update(patternGeneratedMsg{
		request: m.form.UploadRequest(),
		result:  &types.UploadResult{Error: "connection refused"},
	})

	if m.loading {
		t.Error("Expected busy flag cleared after failure")
	}
	if m.patternRef != "/api/output/previous.png" {
		t.Errorf("Expected previous result preserved, got %q", m.patternRef)
	}
	if m.errorMsg == "" {
		t.Error("Expected a footer error message")
	}
}

func TestErrorMessageClearsBusyFlag(t *testing.T) {
	m := newTestModel(t)
	m.loading = true

	m.Update(errorMsg("something broke"))

	if m.loading {
		t.Error("Expected busy flag cleared on error")
	}
	if m.errorMsg != "something broke" {
		t.Errorf("Unexpected error message: %q", m.errorMsg)
	}
}

func TestSelectAndClearFile(t *testing.T) {
	m := newTestModel(t)
	m.files = []types.FileInfo{
		{Path: "/tmp/images/cat.png", Name: "cat.png"},
		{Path: "/tmp/images/dog.png", Name: "dog.png"},
	}

	m.selectCurrentFile()
	if m.form.FileName != "cat.png" {
		t.Errorf("Expected cat.png selected, got %q", m.form.FileName)
	}

	m.navigateFiles(1)
	m.selectCurrentFile()
	if m.form.FileName != "dog.png" {
		t.Errorf("Expected dog.png selected, got %q", m.form.FileName)
	}

	m.clearSelection()
	if m.form.FileName != "" || m.form.FilePath != "" {
		t.Error("Expected selection cleared")
	}
}

func TestNavigateFilesWrapsAround(t *testing.T) {
	m := newTestModel(t)
	m.files = []types.FileInfo{
		{Path: "/a.png", Name: "a.png"},
		{Path: "/b.png", Name: "b.png"},
		{Path: "/c.png", Name: "c.png"},
	}

	m.navigateFiles(-1)
	if m.fileIndex != 2 {
		t.Errorf("Expected wrap to last file, got index %d", m.fileIndex)
	}

	m.navigateFiles(1)
	if m.fileIndex != 0 {
		t.Errorf("Expected wrap to first file, got index %d", m.fileIndex)
	}
}

func TestParamEditCommitsRawInput(t *testing.T) {
	m := newTestModel(t)

	m.startParamEdit(fieldCols)
	if m.mode != ModeParamEdit {
		t.Fatal("Expected ModeParamEdit")
	}
	if m.paramInput != "50" {
		t.Errorf("Expected input seeded with current value, got %q", m.paramInput)
	}

	m.paramInput = "not-a-number"
	m.paramCursor = len(m.paramInput)
	m.commitParamEdit()

	if m.form.Cols != "not-a-number" {
		t.Errorf("Expected raw value stored, got %q", m.form.Cols)
	}
}

func TestParamEditHandlesMultibyteRunes(t *testing.T) {
	m := newTestModel(t)
	m.startParamEdit(fieldStitchWidth)
	m.paramInput = ""
	m.paramCursor = 0

	// Pasting multibyte text keeps the cursor on rune boundaries
	m.handleParamEditKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("1½")})
	if m.paramInput != "1½" {
		t.Fatalf("Unexpected input buffer: %q", m.paramInput)
	}
	if m.paramCursor != 2 {
		t.Errorf("Expected cursor at rune 2, got %d", m.paramCursor)
	}

	// Stepping left and inserting lands between the two runes, not inside one
	m.handleParamEditKeys(tea.KeyMsg{Type: tea.KeyLeft})
	m.handleParamEditKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(".")})
	if m.paramInput != "1.½" {
		t.Errorf("Expected insertion between runes, got %q", m.paramInput)
	}

	// Backspace at the end removes the whole multibyte rune
	m.handleParamEditKeys(tea.KeyMsg{Type: tea.KeyRight})
	m.handleParamEditKeys(tea.KeyMsg{Type: tea.KeyBackspace})
	if m.paramInput != "1." {
		t.Errorf("Expected trailing rune removed, got %q", m.paramInput)
	}
	if m.paramCursor != 2 {
		t.Errorf("Expected cursor at rune 2, got %d", m.paramCursor)
	}

	m.commitParamEdit()
	if m.form.StitchWidth != "1." {
		t.Errorf("Expected edited value committed, got %q", m.form.StitchWidth)
	}
}
