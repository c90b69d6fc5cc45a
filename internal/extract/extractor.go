package extract

import (
	"context"
	"strings"

	"scenelink/internal/scenegraph"
	"scenelink/internal/tabular"
)

// MetadataTable is the tabular store table the extraction pass writes.
const MetadataTable = "ExtractedUSDMetadata"

// DefaultTypeFilter selects transform/group nodes, the node kind that carries
// asset identity in the scenes this pipeline targets.
const DefaultTypeFilter = "Xform"

// Record pairs a qualifying node's path with the candidate identifier derived
// from it. Records are value objects; later stages never mutate them.
type Record struct {
	SourcePath  string
	CandidateID string
}

// Extractor selects scene nodes by declared type and derives candidate
// identifiers from their paths.
type Extractor struct {
	typeFilter string
}

// NewExtractor returns an Extractor for the given node type. An empty filter
// falls back to DefaultTypeFilter.
func NewExtractor(typeFilter string) *Extractor {
	if strings.TrimSpace(typeFilter) == "" {
		typeFilter = DefaultTypeFilter
	}
	return &Extractor{typeFilter: typeFilter}
}

// Records walks the document and returns one Record per node whose type
// matches the filter, in document order. The walk is read-only; calling
// Records again yields the same result. A scene with no qualifying nodes
// yields an empty slice.
func (e *Extractor) Records(doc *scenegraph.Document) []Record {
	var records []Record
	doc.Walk(func(node *scenegraph.Node) {
		if node.TypeName() != e.typeFilter {
			return
		}
		path := node.Path()
		records = append(records, Record{
			SourcePath:  path,
			CandidateID: candidateID(path),
		})
	})
	return records
}

// CandidateIDs projects records onto their candidate identifiers, preserving
// order and duplicates.
func CandidateIDs(records []Record) []string {
	ids := make([]string, len(records))
	for i, record := range records {
		ids[i] = record.CandidateID
	}
	return ids
}

// WriteMetadataTable persists the extraction result to the tabular store,
// replacing any previous extraction.
func WriteMetadataTable(ctx context.Context, store *tabular.Store, records []Record) error {
	rows := make([][]string, len(records))
	for i, record := range records {
		rows[i] = []string{record.SourcePath, record.CandidateID}
	}
	return store.WriteTable(ctx, MetadataTable, []string{"sourcePath", "candidateId"}, rows)
}

// candidateID takes the last non-empty slash-delimited segment of path.
func candidateID(path string) string {
	segments := strings.Split(path, "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return segments[i]
		}
	}
	return ""
}
