// Package enrich writes reconciled identifiers back onto scene nodes.
//
// Enrichment joins the extraction records with the resolver's matched set,
// sets one string attribute per joined node, and exports the modified scene.
// The write phase is single-writer: a file lock keyed to the output location
// rejects concurrent enrichment passes against the same target.
package enrich
