// Package report renders pipeline diagnostics: match summaries, the
// unmatched candidate list, and scene inspection output.
package report
