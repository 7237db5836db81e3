package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/studiowebux/stitchcli/internal/cli"
	"github.com/studiowebux/stitchcli/internal/config"
	"github.com/studiowebux/stitchcli/internal/pattern"
	"github.com/studiowebux/stitchcli/internal/server"
	"github.com/studiowebux/stitchcli/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stitchcli [image]",
	Short: "Stitch CLI - crochet pattern generator",
	Long: `Stitch CLI turns images into crochet stitch charts.

Run without arguments to start the interactive TUI: pick an image, tune the
stitch parameters and generate a chart from a running pattern server.
Provide an image file to generate a pattern directly from the command line.

Examples:
  stitchcli                              # Start interactive TUI
  stitchcli cat.png                      # Generate a pattern for cat.png
  stitchcli run cat.png -c 80            # 80 stitch columns
  stitchcli run cat.png -s ./out         # Download the chart to ./out
  stitchcli serve                        # Run a local pattern server
  stitchcli --help                       # Show help`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Initialize configuration
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		// If an image is provided, run in CLI mode
		if len(args) > 0 {
			return runCLI(args[0])
		}

		// Otherwise, start the TUI
		return tui.Run(version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run <image>",
	Short: "Generate a pattern for an image in CLI mode",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runCLI(args[0])
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the pattern generation server",
	Long: `Run the HTTP server that generates stitch charts.

The server accepts multipart uploads on /api/upload and serves generated
charts from /api/output/. The yarn palette is read from the configured
palette file when present, otherwise a built-in palette is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		return runServe()
	},
}

// Flags for root/run command
var (
	flagProfile      string
	flagBaseURL      string
	flagCols         string
	flagStitchWidth  string
	flagStitchHeight string
	flagSave         string
	flagOutput       string
)

// Flags for serve
var (
	serveHost    string
	servePort    int
	servePalette string
)

func init() {
	// Root command flags
	rootCmd.PersistentFlags().StringVarP(&flagProfile, "profile", "p", "", "Profile to use")
	rootCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Pattern server base URL")
	rootCmd.Flags().StringVarP(&flagCols, "cols", "c", "", "Number of stitch columns")
	rootCmd.Flags().StringVar(&flagStitchWidth, "stitch-width", "", "Width of one stitch (cm)")
	rootCmd.Flags().StringVar(&flagStitchHeight, "stitch-height", "", "Height of one stitch (cm)")
	rootCmd.Flags().StringVarP(&flagSave, "save", "s", "", "Download the chart into this directory")
	rootCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (json/text)")

	// Run command flags (same as root)
	runCmd.Flags().StringVar(&flagBaseURL, "base-url", "", "Pattern server base URL")
	runCmd.Flags().StringVarP(&flagCols, "cols", "c", "", "Number of stitch columns")
	runCmd.Flags().StringVar(&flagStitchWidth, "stitch-width", "", "Width of one stitch (cm)")
	runCmd.Flags().StringVar(&flagStitchHeight, "stitch-height", "", "Height of one stitch (cm)")
	runCmd.Flags().StringVarP(&flagSave, "save", "s", "", "Download the chart into this directory")
	runCmd.Flags().StringVarP(&flagOutput, "output", "o", "", "Output format (json/text)")

	// serve flags
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind")
	serveCmd.Flags().IntVar(&servePort, "port", 5001, "Port to listen on")
	serveCmd.Flags().StringVar(&servePalette, "palette", "", "Yarn palette YAML file")

	// Add subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(serveCmd)
}

// runCLI generates a pattern for one image in CLI mode
func runCLI(filePath string) error {
	opts := cli.RunOptions{
		FilePath:     filePath,
		Profile:      flagProfile,
		BaseURL:      flagBaseURL,
		Cols:         flagCols,
		StitchWidth:  flagStitchWidth,
		StitchHeight: flagStitchHeight,
		SavePath:     flagSave,
		OutputFormat: flagOutput,
	}
	return cli.Run(opts)
}

// runServe starts the pattern server and blocks until interrupted
func runServe() error {
	pal, err := loadPalette()
	if err != nil {
		return err
	}

	srv := server.NewServer(server.Config{
		Host:       serveHost,
		Port:       servePort,
		UploadsDir: config.UploadsDir,
		OutputsDir: config.OutputsDir,
	}, pattern.NewGenerator(pal))

	if err := srv.Start(); err != nil {
		return err
	}
	fmt.Printf("Pattern server listening on %s\n", srv.GetAddress())

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	return srv.Stop()
}

// loadPalette resolves the yarn palette: explicit flag, then the config
// file, then the built-in default
func loadPalette() (*pattern.Palette, error) {
	path := servePalette
	if path == "" {
		if _, err := os.Stat(config.PaletteFile); err == nil {
			path = config.PaletteFile
		}
	}

	if path == "" {
		return pattern.DefaultPalette(), nil
	}

	pal, err := pattern.LoadPalette(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load palette: %w", err)
	}
	return pal, nil
}
