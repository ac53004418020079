// Package mcp provides an MCP (Model Context Protocol) server adapter for
// Redraft. It lets AI assistants drive manuscript review, sweeps and scans.
package mcp

import "errors"

// ErrMissingProjectSession is returned when the project session is not provided.
var ErrMissingProjectSession = errors.New("mcp: project session is required")

// ErrMissingReviewer is returned when the reviewer is not provided.
var ErrMissingReviewer = errors.New("mcp: reviewer is required")
