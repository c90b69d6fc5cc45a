// Package scenegraph models the hierarchical scene documents the pipeline
// reads and enriches.
//
// A document is a tree of typed nodes addressable by slash-delimited paths.
// Consumers only ever add or overwrite string attributes; node topology is
// fixed once a document is loaded. Load and export go through viant/afs so
// scene locations can be plain file paths or any afs-supported URL.
package scenegraph
