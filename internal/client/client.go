package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/studiowebux/stitchcli/internal/types"
)

const (
	// DefaultBaseURL is the pattern server address used when no profile overrides it
	DefaultBaseURL = "http://localhost:5001"

	// UploadPath is the pattern generation endpoint
	UploadPath = "/api/upload"

	// DownloadFilename is the suggested filename for saved pattern charts
	DownloadFilename = "crochet_pattern.png"
)

// Client talks to the pattern server
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the given base URL.
// The underlying HTTP client has no timeout: pattern generation on large
// grids can legitimately take a long time, and the workflow has no retry
// or cancellation semantics.
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// BaseURL returns the configured server base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Upload submits an image and its stitch parameters to the pattern server
// and returns the generated pattern reference.
//
// Transport errors, non-2xx statuses and undecodable bodies are soft
// failures: they are reported through UploadResult.Error so the caller can
// log them and keep its previous result. A hard error is returned only when
// the request cannot be built at all (missing file, bad URL).
func (c *Client) Upload(req *types.UploadRequest) (*types.UploadResult, error) {
	if req == nil || req.FilePath == "" {
		return nil, fmt.Errorf("no image selected")
	}

	startTime := time.Now()

	body, contentType, err := buildMultipartBody(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequest(http.MethodPost, c.baseURL+UploadPath, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(httpReq)
	duration := time.Since(startTime).Milliseconds()

	if err != nil {
		return &types.UploadResult{
			Error:    err.Error(),
			Duration: duration,
		}, nil
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return &types.UploadResult{
			Status:   resp.StatusCode,
			Error:    fmt.Sprintf("failed to read response body: %v", err),
			Duration: duration,
		}, nil
	}

	result := &types.UploadResult{
		Status:       resp.StatusCode,
		Duration:     duration,
		ResponseSize: len(bodyBytes),
	}

	var decoded struct {
		PatternImage *string `json:"pattern_image"`
		Error        string  `json:"error"`
	}
	if err := json.Unmarshal(bodyBytes, &decoded); err != nil {
		result.Error = fmt.Sprintf("failed to decode response: %v", err)
		return result, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decoded.Error != "" {
			result.Error = decoded.Error
		} else {
			result.Error = fmt.Sprintf("server returned %s", resp.Status)
		}
		return result, nil
	}

	// A successful response without a pattern_image field clears the
	// reference rather than preserving the previous one.
	if decoded.PatternImage != nil {
		result.PatternImage = *decoded.PatternImage
	}

	return result, nil
}

// buildMultipartBody serializes the upload request into a multipart form.
// Parameter values are sent exactly as the user typed them.
func buildMultipartBody(req *types.UploadRequest) (io.Reader, string, error) {
	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	fileName := req.FileName
	if fileName == "" {
		fileName = filepath.Base(req.FilePath)
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("image", fileName)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("failed to copy image data: %w", err)
	}

	fields := map[string]string{
		"cols":          req.Cols,
		"stitch_width":  req.StitchWidth,
		"stitch_height": req.StitchHeight,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("failed to write field %s: %w", key, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

// PatternURL resolves a server-provided pattern reference against the base URL
func (c *Client) PatternURL(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return c.baseURL + ref
}

// Download fetches a generated pattern and saves it under destDir using the
// suggested download filename. It returns the path of the written file.
func (c *Client) Download(ref string, destDir string) (string, error) {
	if ref == "" {
		return "", fmt.Errorf("no pattern to download")
	}

	resp, err := c.httpClient.Get(c.PatternURL(ref))
	if err != nil {
		return "", fmt.Errorf("failed to fetch pattern: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch pattern: server returned %s", resp.Status)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	destPath := filepath.Join(destDir, DownloadFilename)
	out, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		return "", fmt.Errorf("failed to write pattern file: %w", err)
	}

	return destPath, nil
}

// FormatDuration formats duration in milliseconds to human-readable string
func FormatDuration(ms int64) string {
	if ms < 1000 {
		return fmt.Sprintf("%dms", ms)
	}
	seconds := float64(ms) / 1000.0
	return fmt.Sprintf("%.2fs", seconds)
}

// FormatSize formats byte size to human-readable string
func FormatSize(bytes int) string {
	if bytes < 1024 {
		return fmt.Sprintf("%dB", bytes)
	}
	if bytes < 1024*1024 {
		return fmt.Sprintf("%.2fKB", float64(bytes)/1024.0)
	}
	return fmt.Sprintf("%.2fMB", float64(bytes)/(1024.0*1024.0))
}
