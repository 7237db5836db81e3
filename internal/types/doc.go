/*
Package types defines core data structures used throughout StitchCLI.

# Overview

The types package provides shared type definitions for:
  - Upload requests and results
  - Configuration (profiles, session)
  - Pattern history
  - File listings

# Request Types

UploadRequest:
  - Source image path and display name
  - Pattern parameters (cols, stitch width, stitch height)
  - Parameters are stored as typed-in strings; the server applies
    defaults when a value does not parse

# Result Types

UploadResult:
  - Server-provided pattern reference
  - Status, duration and size metrics
  - Error information for failed requests

A failed request produces a result with Error set rather than a Go
error, so callers can decide how to surface it.

# Configuration

Profile:
  - Environment-specific settings
  - Base URL, working directory, output directory
  - Default pattern parameters

Session:
  - Active profile name
  - History toggle

# History

PatternEntry:
  - One generation attempt, successful or not
  - Timestamp, parameters, status, duration
  - Profile used at the time

# Field Tags

All types use JSON tags for serialization:
  - Configuration files (profiles.json, session.json)
  - History database rows

The `omitempty` tag is used to keep serialized data clean.

# Example Structures

Profile:

	{
	  "name": "default",
	  "baseUrl": "http://localhost:5001",
	  "cols": "50",
	  "stitchWidth": "1.0",
	  "stitchHeight": "1.0"
	}
*/
package types
