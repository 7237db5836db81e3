package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/studiowebux/stitchcli/internal/config"
)

// useTempConfig points the config globals at a temp directory so tests
// never touch the real ~/.stitchcli
func useTempConfig(t *testing.T) string {
	t.Helper()

	tempDir := t.TempDir()

	origSession := config.SessionFile
	origProfiles := config.ProfilesFile
	config.SessionFile = filepath.Join(tempDir, ".session.json")
	config.ProfilesFile = filepath.Join(tempDir, ".profiles.json")
	t.Cleanup(func() {
		config.SessionFile = origSession
		config.ProfilesFile = origProfiles
	})

	return tempDir
}

func TestLoadDefaults(t *testing.T) {
	useTempConfig(t)

	mgr := NewManager()
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !mgr.IsHistoryEnabled() {
		t.Error("Expected history enabled by default")
	}

	profile := mgr.GetActiveProfile()
	if profile.Name != "Default" {
		t.Errorf("Expected Default profile, got %s", profile.Name)
	}
	if profile.BaseURL == "" {
		t.Error("Expected a default base URL")
	}
	if profile.Cols != "50" {
		t.Errorf("Expected default cols 50, got %s", profile.Cols)
	}
}

func TestLoadProfilesWithComments(t *testing.T) {
	tempDir := useTempConfig(t)

	content := `[
  // local development server
  {
    "name": "dev",
    "baseUrl": "http://localhost:5001",
    "cols": "80"
  }
]`
	if err := os.WriteFile(filepath.Join(tempDir, ".profiles.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profiles file: %v", err)
	}

	mgr := NewManager()
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	profiles := mgr.GetProfiles()
	if len(profiles) != 1 {
		t.Fatalf("Expected 1 profile, got %d", len(profiles))
	}
	if profiles[0].Name != "dev" {
		t.Errorf("Expected dev profile, got %s", profiles[0].Name)
	}
	if profiles[0].Cols != "80" {
		t.Errorf("Expected cols 80, got %s", profiles[0].Cols)
	}
}

func TestSetActiveProfile(t *testing.T) {
	tempDir := useTempConfig(t)

	content := `[{"name":"a"},{"name":"b","baseUrl":"http://b:5001"}]`
	if err := os.WriteFile(filepath.Join(tempDir, ".profiles.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profiles file: %v", err)
	}

	mgr := NewManager()
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if err := mgr.SetActiveProfile("b"); err != nil {
		t.Fatalf("SetActiveProfile failed: %v", err)
	}
	if got := mgr.GetActiveProfile().Name; got != "b" {
		t.Errorf("Expected active profile b, got %s", got)
	}

	if err := mgr.SetActiveProfile("missing"); err == nil {
		t.Error("Expected error for unknown profile")
	}
}

func TestSaveSessionRoundTrip(t *testing.T) {
	tempDir := useTempConfig(t)

	content := `[{"name":"a"},{"name":"b"}]`
	if err := os.WriteFile(filepath.Join(tempDir, ".profiles.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write profiles file: %v", err)
	}

	mgr := NewManager()
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := mgr.SetActiveProfile("b"); err != nil {
		t.Fatalf("SetActiveProfile failed: %v", err)
	}
	if err := mgr.SaveSession(); err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}

	mgr2 := NewManager()
	if err := mgr2.Load(); err != nil {
		t.Fatalf("Reload failed: %v", err)
	}
	if got := mgr2.GetActiveProfile().Name; got != "b" {
		t.Errorf("Expected persisted active profile b, got %s", got)
	}
}

func TestHistoryToggle(t *testing.T) {
	tempDir := useTempConfig(t)

	content := `{"historyEnabled": false}`
	if err := os.WriteFile(filepath.Join(tempDir, ".session.json"), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write session file: %v", err)
	}

	mgr := NewManager()
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if mgr.IsHistoryEnabled() {
		t.Error("Expected history disabled")
	}
}
