package types

import "time"

// UploadRequest describes one pattern generation submission.
// Numeric parameters are carried as the raw strings the user typed; the
// server is responsible for parsing them (range hints in the UI are advisory).
type UploadRequest struct {
	FilePath     string `json:"filePath"`
	FileName     string `json:"fileName"`
	Cols         string `json:"cols"`
	StitchWidth  string `json:"stitchWidth"`
	StitchHeight string `json:"stitchHeight"`
}

// UploadResult is the outcome of a pattern generation request.
// Transport and decode failures are soft errors carried in Error so the
// caller can decide how loudly to surface them.
type UploadResult struct {
	PatternImage string `json:"pattern_image"`
	Status       int    `json:"status,omitempty"`
	Duration     int64  `json:"durationMs,omitempty"`
	ResponseSize int    `json:"responseSize,omitempty"`
	Error        string `json:"error,omitempty"`
}

// FileInfo represents a source image file in the sidebar
type FileInfo struct {
	Path         string
	Name         string
	Size         int64
	ModifiedTime time.Time
}

// PatternEntry is a row in the pattern history database
type PatternEntry struct {
	ID           int64  `json:"id"`
	Timestamp    string `json:"timestamp"`
	SourceImage  string `json:"sourceImage"`
	Cols         string `json:"cols"`
	StitchWidth  string `json:"stitchWidth"`
	StitchHeight string `json:"stitchHeight"`
	PatternImage string `json:"patternImage"`
	Status       int    `json:"status"`
	DurationMs   int64  `json:"durationMs"`
	Error        string `json:"error,omitempty"`
	ProfileName  string `json:"profileName,omitempty"`
}

// Session represents ephemeral session state
type Session struct {
	ActiveProfile  string `json:"activeProfile,omitempty"`
	HistoryEnabled *bool  `json:"historyEnabled,omitempty"`
}

// Profile represents a server/parameter profile
type Profile struct {
	Name         string `json:"name"`
	BaseURL      string `json:"baseUrl,omitempty"`
	Workdir      string `json:"workdir,omitempty"`
	Cols         string `json:"cols,omitempty"`
	StitchWidth  string `json:"stitchWidth,omitempty"`
	StitchHeight string `json:"stitchHeight,omitempty"`
	OutputDir    string `json:"outputDir,omitempty"`
}
