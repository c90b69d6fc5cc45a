// Package extract walks a scene document and emits the flat candidate
// records the resolver consumes.
package extract
