/*
Package tui implements the terminal user interface for StitchCLI.

# Architecture

The TUI follows the Bubble Tea framework's Model-Update-View pattern:
  - Model: Maintains all application state
  - Update: Processes messages and returns commands
  - View: Renders the current state to the terminal

# Key Components

  - model.go: Core state and message handling, defines the Model struct
  - form.go: Upload form state (selected image and pattern parameters)
  - keys.go: Keyboard input handling and mode routing
  - render.go: View rendering for the main interface and modals
  - actions.go: Side effects (uploads, downloads, history access)
  - init.go: Program setup, session wiring and image discovery

# Modal System

The application uses a mode-based system:
  - ModeNormal: File navigation and form display
  - ModeParamEdit: Inline editing of one pattern parameter
  - ModeHistory: Past generation attempts in a scrollable viewport
  - ModeHistoryClearConfirm: Destructive action confirmation
  - ModeHelp: Keybinding reference

Each mode has an associated handler in keys.go and a render function.

# Upload Lifecycle

Submitting the form dispatches the upload on a background goroutine via
a tea.Cmd. The loading flag is set when the request starts and cleared
when it settles, in both the success and the error message handlers.
While loading, further submissions are refused.

A failed request only updates the footer: the previously generated
pattern reference stays in the result panel. A successful response
replaces it, even when the server omitted the reference.

# Threading Model

The TUI runs in a single goroutine (Bubble Tea's event loop), but spawns
goroutines for:
  - Pattern generation requests
  - Chart downloads
  - History database access
  - Image directory scans

Communication with background goroutines uses tea.Cmd functions.

# Example Usage

	m := New(sessionMgr, historyMgr, client.New(baseURL), version)
	program := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := program.Run(); err != nil {
		log.Fatal(err)
	}
*/
package tui
