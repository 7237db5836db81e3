package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// useTempHome points the home directory at a temp dir so Initialize never
// touches the real ~/.stitchcli
func useTempHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	return home
}

func TestInitializeCreatesLayout(t *testing.T) {
	home := useTempHome(t)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	if ConfigDir != filepath.Join(home, ".stitchcli") {
		t.Errorf("Unexpected config dir: %q", ConfigDir)
	}

	for _, dir := range []string{ConfigDir, ImagesDir, OutputsDir, UploadsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Errorf("Expected directory %s to exist: %v", dir, err)
			continue
		}
		if !info.IsDir() {
			t.Errorf("Expected %s to be a directory", dir)
		}
	}

	for _, file := range []string{SessionFile, ProfilesFile} {
		if _, err := os.Stat(file); err != nil {
			t.Errorf("Expected file %s to exist: %v", file, err)
		}
	}
}

func TestSeededProfileResolvesToImagesDir(t *testing.T) {
	useTempHome(t)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	data, err := os.ReadFile(ProfilesFile)
	if err != nil {
		t.Fatalf("Failed to read seeded profiles: %v", err)
	}

	var profiles []struct {
		Name    string `json:"name"`
		Workdir string `json:"workdir"`
	}
	if err := json.Unmarshal(data, &profiles); err != nil {
		t.Fatalf("Failed to parse seeded profiles: %v", err)
	}
	if len(profiles) == 0 {
		t.Fatal("Expected at least one seeded profile")
	}

	// The out-of-the-box profile must scan the same directory Initialize
	// creates and the empty sidebar tells the user to drop images into
	workdir, err := GetWorkingDirectory(profiles[0].Workdir)
	if err != nil {
		t.Fatalf("GetWorkingDirectory failed: %v", err)
	}
	if workdir != ImagesDir {
		t.Errorf("Expected seeded profile to resolve to %s, got %s", ImagesDir, workdir)
	}
}

func TestGetWorkingDirectory(t *testing.T) {
	home := useTempHome(t)

	if err := Initialize(); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// Empty falls back to the global images directory
	dir, err := GetWorkingDirectory("")
	if err != nil {
		t.Fatalf("GetWorkingDirectory failed: %v", err)
	}
	if dir != ImagesDir {
		t.Errorf("Expected %s for empty workdir, got %s", ImagesDir, dir)
	}

	// Absolute paths are used as-is
	abs := t.TempDir()
	dir, err = GetWorkingDirectory(abs)
	if err != nil {
		t.Fatalf("GetWorkingDirectory failed: %v", err)
	}
	if dir != abs {
		t.Errorf("Expected %s, got %s", abs, dir)
	}

	// Tilde expands to the home directory
	dir, err = GetWorkingDirectory("~/pictures")
	if err != nil {
		t.Fatalf("GetWorkingDirectory failed: %v", err)
	}
	if dir != filepath.Join(home, "pictures") {
		t.Errorf("Expected tilde expansion, got %s", dir)
	}

	// Relative paths resolve under the config directory and are created
	dir, err = GetWorkingDirectory("custom")
	if err != nil {
		t.Fatalf("GetWorkingDirectory failed: %v", err)
	}
	if dir != filepath.Join(ConfigDir, "custom") {
		t.Errorf("Expected relative path under config dir, got %s", dir)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("Expected relative workdir to be created: %v", err)
	}
}
