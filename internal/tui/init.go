package tui

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/studiowebux/stitchcli/internal/client"
	"github.com/studiowebux/stitchcli/internal/config"
	"github.com/studiowebux/stitchcli/internal/history"
	"github.com/studiowebux/stitchcli/internal/session"
	"github.com/studiowebux/stitchcli/internal/types"
)

// New creates a new TUI model
func New(mgr *session.Manager, historyMgr *history.Manager, c *client.Client, version string) (Model, error) {
	files, err := loadFiles(mgr)
	if err != nil {
		return Model{}, err
	}

	profile := mgr.GetActiveProfile()

	form := NewForm()
	if profile.Cols != "" {
		form.Cols = profile.Cols
	}
	if profile.StitchWidth != "" {
		form.StitchWidth = profile.StitchWidth
	}
	if profile.StitchHeight != "" {
		form.StitchHeight = profile.StitchHeight
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorCyan)

	m := Model{
		sessionMgr:  mgr,
		historyMgr:  historyMgr,
		client:      c,
		mode:        ModeNormal,
		version:     version,
		files:       files,
		form:        form,
		spin:        sp,
		historyView: viewport.New(80, 20),
	}

	return m, nil
}

// Run starts the TUI
func Run(version string) error {
	if err := config.Initialize(); err != nil {
		return err
	}

	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return err
	}

	historyMgr, err := history.NewManager(config.DatabasePath)
	if err != nil {
		return err
	}

	profile := mgr.GetActiveProfile()
	c := client.New(profile.BaseURL)

	m, err := New(mgr, historyMgr, c, version)
	if err != nil {
		return err
	}

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	m.Cleanup()
	return nil
}

// loadFiles loads all image files from the working directory
func loadFiles(mgr *session.Manager) ([]types.FileInfo, error) {
	profile := mgr.GetActiveProfile()
	workdir, err := config.GetWorkingDirectory(profile.Workdir)
	if err != nil {
		return nil, err
	}

	var files []types.FileInfo

	err = filepath.Walk(workdir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip files that cause errors
		}

		if info.IsDir() {
			// Skip hidden directories (except the root)
			dirName := filepath.Base(path)
			if strings.HasPrefix(dirName, ".") && path != workdir {
				return filepath.SkipDir
			}
			return nil
		}

		if !isImageFile(path) {
			return nil
		}

		relPath, _ := filepath.Rel(workdir, path)
		files = append(files, types.FileInfo{
			Path:         path,
			Name:         relPath,
			Size:         info.Size(),
			ModifiedTime: info.ModTime(),
		})

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Sort files by name
	sort.Slice(files, func(i, j int) bool {
		return files[i].Name < files[j].Name
	})

	return files, nil
}

// isImageFile reports whether a path looks like a supported source image
func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}
