package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrUnknownFormat is returned for output formats other than json, yaml
	// and pretty.
	ErrUnknownFormat = errors.New("tui: unknown output format")
)
