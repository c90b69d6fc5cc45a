// Package registry queries the SQL-backed entity registry the pipeline
// reconciles scene identifiers against.
//
// A registry item named N owns three tables: N_entitytype, N_entityinstance,
// and N_relationshipinstance. A missing database or missing tables surfaces
// as ErrNotConnected so callers can tell "connect the registry first" apart
// from a genuine query failure.
package registry
