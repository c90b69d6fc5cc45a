// Package logging assembles the structured slog loggers used across the
// scenelink pipeline.
//
// It owns the console/JSON handler selection, centralizes level parsing, and
// exposes attribute helpers plus a no-op logger so stage code and tests emit
// data with the same shape. Prefer these constructors over hand-rolled slog
// setup.
package logging
