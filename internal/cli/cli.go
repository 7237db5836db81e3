package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/studiowebux/stitchcli/internal/client"
	"github.com/studiowebux/stitchcli/internal/config"
	"github.com/studiowebux/stitchcli/internal/history"
	"github.com/studiowebux/stitchcli/internal/session"
	"github.com/studiowebux/stitchcli/internal/types"
)

// RunOptions contains options for generating a pattern in CLI mode
type RunOptions struct {
	FilePath     string
	Profile      string
	BaseURL      string
	Cols         string
	StitchWidth  string
	StitchHeight string
	SavePath     string // Directory to download the chart into; empty skips download
	OutputFormat string // json or text
}

// Run submits one image to the pattern server and prints the result
func Run(opts RunOptions) error {
	mgr := session.NewManager()
	if err := mgr.Load(); err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	if opts.Profile != "" {
		if err := mgr.SetActiveProfile(opts.Profile); err != nil {
			return fmt.Errorf("failed to set profile: %w", err)
		}
	}
	profile := mgr.GetActiveProfile()

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = profile.BaseURL
	}

	req := &types.UploadRequest{
		FilePath:     opts.FilePath,
		FileName:     filepath.Base(opts.FilePath),
		Cols:         firstNonEmpty(opts.Cols, profile.Cols, "50"),
		StitchWidth:  firstNonEmpty(opts.StitchWidth, profile.StitchWidth, "1.0"),
		StitchHeight: firstNonEmpty(opts.StitchHeight, profile.StitchHeight, "1.0"),
	}

	if _, err := os.Stat(req.FilePath); err != nil {
		return fmt.Errorf("image not found: %s", req.FilePath)
	}

	c := client.New(baseURL)
	result, err := c.Upload(req)
	if err != nil {
		return err
	}

	saveHistory(mgr, req, result)

	if result.Error != "" {
		return fmt.Errorf("pattern generation failed: %s", result.Error)
	}

	if result.PatternImage == "" {
		return fmt.Errorf("server returned no pattern reference")
	}

	if err := printResult(c, req, result, opts.OutputFormat); err != nil {
		return err
	}

	if opts.SavePath != "" {
		path, err := c.Download(result.PatternImage, opts.SavePath)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Saved %s\n", path)
	}

	return nil
}

// printResult writes the outcome to stdout in the requested format
func printResult(c *client.Client, req *types.UploadRequest, result *types.UploadResult, format string) error {
	switch format {
	case "json":
		out := map[string]any{
			"source_image":  req.FileName,
			"pattern_image": result.PatternImage,
			"pattern_url":   c.PatternURL(result.PatternImage),
			"duration_ms":   result.Duration,
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)

	default:
		fmt.Printf("Pattern: %s\n", c.PatternURL(result.PatternImage))
		fmt.Printf("Generated in %s\n", client.FormatDuration(result.Duration))
		return nil
	}
}

// saveHistory records the attempt, best-effort
func saveHistory(mgr *session.Manager, req *types.UploadRequest, result *types.UploadResult) {
	if !mgr.IsHistoryEnabled() {
		return
	}

	historyMgr, err := history.NewManager(config.DatabasePath)
	if err != nil {
		return
	}
	defer historyMgr.Close()

	profile := mgr.GetActiveProfile()
	_ = historyMgr.Save(types.PatternEntry{
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

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
