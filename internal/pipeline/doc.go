// Package pipeline wires the extraction, resolution, and enrichment stages
// into complete runs.
//
// A Session is the explicitly passed execution context the stages share:
// configuration, logger, the registry and table store handles, and a run
// identifier. Acquire one per pipeline run and release it with Close. Stage
// failures are isolated: extraction or registry failure aborts a run before
// resolution starts, and enrichment only begins once the complete outcome
// has been gathered.
package pipeline
