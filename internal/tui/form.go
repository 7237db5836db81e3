package tui

import (
	"path/filepath"

	"github.com/studiowebux/stitchcli/internal/types"
)

// Form field indexes for parameter editing
const (
	fieldCols = iota
	fieldStitchWidth
	fieldStitchHeight
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Columns (stitches)",
	"Stitch width (cm)",
	"Stitch height (cm)",
}

// Advisory range hints shown next to each field. They are display-only:
// values are submitted exactly as typed and the server applies its own
// defaults for anything it cannot parse.
var fieldHints = [fieldCount]string{
	"10-200",
	"0.1-5.0",
	"0.1-5.0",
}

// Form holds the upload form state: the selected source image and the
// three stitch parameters, kept as the raw strings the user typed
type Form struct {
	FilePath     string
	FileName     string
	Cols         string
	StitchWidth  string
	StitchHeight string
}

// NewForm returns a form with default parameter values
func NewForm() Form {
	return Form{
		Cols:         "50",
		StitchWidth:  "1.0",
		StitchHeight: "1.0",
	}
}

// SelectFile stores the chosen image and its display name.
// An empty path clears the selection.
func (f *Form) SelectFile(path string) {
	f.FilePath = path
	if path == "" {
		f.FileName = ""
		return
	}
	f.FileName = filepath.Base(path)
}

// Field returns the current value of a parameter field
func (f *Form) Field(index int) string {
	switch index {
	case fieldCols:
		return f.Cols
	case fieldStitchWidth:
		return f.StitchWidth
	case fieldStitchHeight:
		return f.StitchHeight
	}
	return ""
}

// SetField stores a parameter field value as given, without parsing or
// clamping
func (f *Form) SetField(index int, value string) {
	switch index {
	case fieldCols:
		f.Cols = value
	case fieldStitchWidth:
		f.StitchWidth = value
	case fieldStitchHeight:
		f.StitchHeight = value
	}
}

// CanSubmit reports whether a submission is allowed: a file must be
// selected and no request may be in flight
func (f *Form) CanSubmit(busy bool) bool {
	return f.FilePath != "" && !busy
}

// UploadRequest builds the request payload from the current form state
func (f *Form) UploadRequest() *types.UploadRequest {
	return &types.UploadRequest{
		FilePath:     f.FilePath,
		FileName:     f.FileName,
		Cols:         f.Cols,
		StitchWidth:  f.StitchWidth,
		StitchHeight: f.StitchHeight,
	}
}
