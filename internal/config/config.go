package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// FilePermissions is the default permission mode for regular files (read/write for owner, read for others)
	FilePermissions = 0644
	// DirPermissions is the default permission mode for directories (rwxr-xr-x)
	DirPermissions = 0755
)

var (
	// ConfigDir is the global configuration directory (~/.stitchcli)
	ConfigDir string

	// ImagesDir is the default directory scanned for source images
	ImagesDir string

	// OutputsDir is where generated pattern charts are written
	OutputsDir string

	// UploadsDir is the pattern server's temporary upload directory
	UploadsDir string

	// DatabasePath is the SQLite database file for pattern history
	DatabasePath string

	// PaletteFile is the yarn palette definition (YAML)
	PaletteFile string

	// SessionFile is the session state file
	SessionFile string

	// ProfilesFile is the profiles configuration file
	ProfilesFile string
)

// Initialize sets up the configuration directories and files
// It creates ~/.stitchcli/ if it doesn't exist
func Initialize() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}

	// Set global paths
	ConfigDir = filepath.Join(homeDir, ".stitchcli")
	ImagesDir = filepath.Join(ConfigDir, "images")
	OutputsDir = filepath.Join(ConfigDir, "outputs")
	UploadsDir = filepath.Join(ConfigDir, "uploads")
	DatabasePath = filepath.Join(ConfigDir, "stitchcli.db")
	PaletteFile = filepath.Join(ConfigDir, "yarn_palette.yaml")
	SessionFile = filepath.Join(ConfigDir, ".session.json")
	ProfilesFile = filepath.Join(ConfigDir, ".profiles.json")

	// Create directories if they don't exist
	dirs := []string{ConfigDir, ImagesDir, OutputsDir, UploadsDir}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, DirPermissions); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Create empty session file if it doesn't exist
	if _, err := os.Stat(SessionFile); os.IsNotExist(err) {
		defaultSession := []byte(`{"historyEnabled":true}`)
		if err := os.WriteFile(SessionFile, defaultSession, FilePermissions); err != nil {
			return fmt.Errorf("failed to create session file: %w", err)
		}
	}

	// Create empty profiles file if it doesn't exist
	if _, err := os.Stat(ProfilesFile); os.IsNotExist(err) {
		// An empty workdir resolves to the global images directory
		defaultProfiles := []byte(`[{"name":"Default","baseUrl":"http://localhost:5001","workdir":"","cols":"50","stitchWidth":"1.0","stitchHeight":"1.0"}]`)
		if err := os.WriteFile(ProfilesFile, defaultProfiles, FilePermissions); err != nil {
			return fmt.Errorf("failed to create profiles file: %w", err)
		}
	}

	return nil
}

// GetWorkingDirectory returns the image directory for a profile
// Falls back to the global images directory if profile workdir is not set
func GetWorkingDirectory(profileWorkdir string) (string, error) {
	if profileWorkdir == "" {
		return ImagesDir, nil
	}

	// Expand tilde to home directory
	if strings.HasPrefix(profileWorkdir, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		profileWorkdir = filepath.Join(homeDir, profileWorkdir[2:])
	}

	// If it's an absolute path, use it directly
	if filepath.IsAbs(profileWorkdir) {
		return profileWorkdir, nil
	}

	// Otherwise, it's relative to config directory
	workdir := filepath.Join(ConfigDir, profileWorkdir)

	// Ensure the directory exists
	if err := os.MkdirAll(workdir, DirPermissions); err != nil {
		return "", fmt.Errorf("failed to create working directory %s: %w", workdir, err)
	}

	return workdir, nil
}

// LocalConfigExists checks if there's a local .session.json or .profiles.json
func LocalConfigExists() bool {
	_, sessionErr := os.Stat(".session.json")
	_, profilesErr := os.Stat(".profiles.json")
	return sessionErr == nil || profilesErr == nil
}

// GetSessionFilePath returns the session file path (local or global)
func GetSessionFilePath() string {
	if _, err := os.Stat(".session.json"); err == nil {
		return ".session.json"
	}
	return SessionFile
}

// GetProfilesFilePath returns the profiles file path (local or global)
func GetProfilesFilePath() string {
	if _, err := os.Stat(".profiles.json"); err == nil {
		return ".profiles.json"
	}
	return ProfilesFile
}
