package session

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"

	"github.com/studiowebux/stitchcli/internal/client"
	"github.com/studiowebux/stitchcli/internal/config"
	"github.com/studiowebux/stitchcli/internal/pattern"
	"github.com/studiowebux/stitchcli/internal/types"
)

// Manager handles session and profile management
type Manager struct {
	session  *types.Session
	profiles []types.Profile
}

// NewManager creates a new session manager
func NewManager() *Manager {
	return &Manager{
		session:  &types.Session{},
		profiles: []types.Profile{},
	}
}

// Load loads session and profiles from disk
func (m *Manager) Load() error {
	if err := m.LoadSession(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if err := m.LoadProfiles(); err != nil {
		return fmt.Errorf("failed to load profiles: %w", err)
	}

	return nil
}

// LoadSession loads the session file
func (m *Manager) LoadSession() error {
	sessionPath := config.GetSessionFilePath()

	data, err := os.ReadFile(sessionPath)
	if err != nil {
		// If file doesn't exist, use default session
		m.session = &types.Session{}
		enabled := true
		m.session.HistoryEnabled = &enabled
		return nil
	}

	var session types.Session
	// Session and profile files tolerate comments
	if err := json.Unmarshal(jsonc.ToJSON(data), &session); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	if session.HistoryEnabled == nil {
		enabled := true
		session.HistoryEnabled = &enabled
	}

	m.session = &session
	return nil
}

// SaveSession saves the session to disk
func (m *Manager) SaveSession() error {
	sessionPath := config.GetSessionFilePath()

	data, err := json.MarshalIndent(m.session, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(sessionPath, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}

	return nil
}

// LoadProfiles loads the profiles file
func (m *Manager) LoadProfiles() error {
	profilesPath := config.GetProfilesFilePath()

	data, err := os.ReadFile(profilesPath)
	if err != nil {
		// If file doesn't exist, create default profile
		m.profiles = []types.Profile{defaultProfile()}
		return nil
	}

	var profiles []types.Profile
	if err := json.Unmarshal(jsonc.ToJSON(data), &profiles); err != nil {
		return fmt.Errorf("failed to parse profiles file: %w", err)
	}

	if len(profiles) == 0 {
		profiles = []types.Profile{defaultProfile()}
	}

	m.profiles = profiles
	return nil
}

// SaveProfiles saves the profiles to disk
func (m *Manager) SaveProfiles() error {
	profilesPath := config.GetProfilesFilePath()

	data, err := json.MarshalIndent(m.profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal profiles: %w", err)
	}

	if err := os.WriteFile(profilesPath, data, config.FilePermissions); err != nil {
		return fmt.Errorf("failed to write profiles file: %w", err)
	}

	return nil
}

// GetSession returns the current session
func (m *Manager) GetSession() *types.Session {
	return m.session
}

// GetProfiles returns all profiles
func (m *Manager) GetProfiles() []types.Profile {
	return m.profiles
}

// GetActiveProfile returns the active profile, falling back to the first
// profile (or a default) when none is selected
func (m *Manager) GetActiveProfile() *types.Profile {
	for i := range m.profiles {
		if m.profiles[i].Name == m.session.ActiveProfile {
			return &m.profiles[i]
		}
	}

	if len(m.profiles) > 0 {
		return &m.profiles[0]
	}

	p := defaultProfile()
	m.profiles = append(m.profiles, p)
	return &m.profiles[0]
}

// SetActiveProfile switches the active profile by name
func (m *Manager) SetActiveProfile(name string) error {
	for _, p := range m.profiles {
		if p.Name == name {
			m.session.ActiveProfile = name
			return nil
		}
	}
	return fmt.Errorf("profile %q not found", name)
}

// IsHistoryEnabled reports whether pattern history should be recorded
func (m *Manager) IsHistoryEnabled() bool {
	if m.session.HistoryEnabled == nil {
		return true
	}
	return *m.session.HistoryEnabled
}

func defaultProfile() types.Profile {
	return types.Profile{
		Name:         "Default",
		BaseURL:      client.DefaultBaseURL,
		Workdir:      "",
		Cols:         fmt.Sprintf("%d", pattern.DefaultCols),
		StitchWidth:  fmt.Sprintf("%.1f", pattern.DefaultStitchSize),
		StitchHeight: fmt.Sprintf("%.1f", pattern.DefaultStitchSize),
	}
}
