// Package orchestrator wires a finished form set through theme resolution,
// rendering and submission so callers have a single entry point for
// previewing and publishing surveys.
package orchestrator
