// Package tabular is the pipeline's columnar output store, backed by SQLite.
//
// Tables are written whole with overwrite semantics, mirroring the
// saveAsTable(mode=overwrite) contract of the lakehouse store the pipeline
// targets in production.
package tabular
