/*
Package client talks to the pattern generation API.

# Overview

The client package handles:
  - Multipart image uploads to /api/upload
  - Pattern chart downloads
  - Response decoding and soft error reporting

# Error Handling

Errors are categorized two ways:
  - Hard errors (missing source file, invalid request) are returned as
    Go errors and indicate caller bugs
  - Soft errors (network failures, bad status codes, undecodable
    responses) are reported in UploadResult.Error so the UI can show
    them without discarding previous results

The HTTP client carries no timeout. A request runs until the server
responds or the connection drops.

# Response Format

A successful upload returns:

	{"pattern_image": "/api/output/cat_pattern.png"}

When the field is absent, the result carries an empty reference and the
caller is expected to clear its displayed pattern.
*/
package client
