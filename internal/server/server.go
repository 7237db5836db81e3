package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/studiowebux/stitchcli/internal/pattern"
)

const (
	// maxUploadSize caps the multipart form memory budget
	maxUploadSize = 50 << 20 // 50 MB

	// uploadRoute accepts pattern generation submissions
	uploadRoute = "/api/upload"
	// outputRoute serves generated chart files
	outputRoute = "/api/output/"
)

// Config holds the pattern server settings
type Config struct {
	Host       string
	Port       int
	UploadsDir string
	OutputsDir string
}

// Server generates stitch charts from uploaded images
type Server struct {
	config     Config
	generator  *pattern.Generator
	httpServer *http.Server
}

// NewServer creates a pattern server
func NewServer(config Config, gen *pattern.Generator) *Server {
	if config.Port == 0 {
		config.Port = 5001
	}
	if config.Host == "" {
		config.Host = "localhost"
	}
	if gen == nil {
		gen = pattern.NewGenerator(nil)
	}

	return &Server{
		config:    config,
		generator: gen,
	}
}

// Handler returns the server's HTTP handler
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(uploadRoute, s.handleUpload)
	mux.HandleFunc(outputRoute, s.handleOutput)
	return mux
}

// Start starts the server in the background
func (s *Server) Start() error {
	for _, dir := range []string{s.config.UploadsDir, s.config.OutputsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.httpServer = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Host, s.config.Port),
		Handler: s.Handler(),
	}

	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Pattern server error: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// GetAddress returns the server base URL
func (s *Server) GetAddress() string {
	return fmt.Sprintf("http://%s:%d", s.config.Host, s.config.Port)
}

// handleUpload accepts a multipart form (image, cols, stitch_width,
// stitch_height), generates the stitch chart and replies with the chart's
// output reference
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	startTime := time.Now()

	if r.Method != http.MethodPost {
		sendError(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		sendError(w, "failed to parse multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		sendError(w, "No image uploaded", http.StatusBadRequest)
		return
	}
	defer file.Close()

	cols := pattern.ParseCols(r.FormValue("cols"))
	stitchWidth := pattern.ParseStitchSize(r.FormValue("stitch_width"))
	stitchHeight := pattern.ParseStitchSize(r.FormValue("stitch_height"))

	uploadPath, err := s.saveUpload(file, header)
	if err != nil {
		sendError(w, fmt.Sprintf("failed to store upload: %v", err), http.StatusInternalServerError)
		return
	}
	defer os.Remove(uploadPath)

	outputName := fmt.Sprintf("%s_pattern.png", filepath.Base(uploadPath))
	outputPath := filepath.Join(s.config.OutputsDir, outputName)

	result, err := s.generator.Generate(uploadPath, outputPath, cols, stitchWidth, stitchHeight)
	if err != nil {
		sendError(w, fmt.Sprintf("failed to generate pattern: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("Generated %s: %dx%d stitches, %.1fcm x %.1fcm in %v",
		outputName, result.Cols, result.Rows, result.WidthCm, result.HeightCm, time.Since(startTime))

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"pattern_image": outputRoute + outputName,
	})
}

// handleOutput serves generated chart files
func (s *Server) handleOutput(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, outputRoute)
	name = sanitizeFilename(name)
	if name == "" {
		sendError(w, "File not found", http.StatusNotFound)
		return
	}

	path := filepath.Join(s.config.OutputsDir, name)
	if _, err := os.Stat(path); err != nil {
		sendError(w, "File not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	http.ServeFile(w, r, path)
}

// saveUpload writes the uploaded image to a temporary file in the uploads
// directory and returns its path
func (s *Server) saveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := sanitizeFilename(header.Filename)
	if name == "" {
		name = "upload"
	}

	path := filepath.Join(s.config.UploadsDir, fmt.Sprintf("%d_%s", time.Now().UnixNano(), name))
	out, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, file); err != nil {
		os.Remove(path)
		return "", err
	}

	return path, nil
}

// sanitizeFilename strips any path components from a client-provided name
func sanitizeFilename(name string) string {
	name = filepath.Base(filepath.Clean(name))
	if name == "." || name == string(filepath.Separator) || strings.Contains(name, "..") {
		return ""
	}
	return name
}

// sendError writes a JSON error response
func sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
