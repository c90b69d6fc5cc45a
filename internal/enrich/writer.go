package enrich

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"scenelink/internal/extract"
	"scenelink/internal/logging"
	"scenelink/internal/resolve"
	"scenelink/internal/scenegraph"
	"scenelink/internal/services"
)

// DefaultAttributeName is the cross-reference attribute written onto matched
// nodes.
const DefaultAttributeName = "dtbAssetId"

// Summary reports what an enrichment pass did.
type Summary struct {
	// Enriched counts nodes that received the attribute.
	Enriched int
	// Skipped counts join results whose node was missing from the scene.
	Skipped int
}

// Writer applies matched identifiers to scene nodes.
type Writer struct {
	attributeName string
	logger        *slog.Logger
}

// NewWriter constructs a Writer. An empty attribute name falls back to
// DefaultAttributeName.
func NewWriter(logger *slog.Logger, attributeName string) *Writer {
	if strings.TrimSpace(attributeName) == "" {
		attributeName = DefaultAttributeName
	}
	return &Writer{
		attributeName: attributeName,
		logger:        logging.NewComponentLogger(logger, "enrich"),
	}
}

// AttributeName returns the attribute the writer sets on matched nodes.
func (w *Writer) AttributeName() string { return w.attributeName }

// Enrich inner-joins records with the outcome's matched set on candidate id
// and sets the attribute on each joined node, creating it if absent and
// overwriting it otherwise. A record with no match is simply absent from the
// join. A join result whose node cannot be found is logged and counted as a
// skip, never an error. Node topology is untouched, and re-running against
// the same matched set leaves the scene in the same state.
func (w *Writer) Enrich(doc *scenegraph.Document, records []extract.Record, outcome resolve.Outcome) Summary {
	matchedBy := make(map[string]string, len(outcome.Matched))
	for _, match := range outcome.Matched {
		matchedBy[match.CandidateID] = match.MatchedID
	}

	var summary Summary
	for _, record := range records {
		matchedID, ok := matchedBy[record.CandidateID]
		if !ok {
			continue
		}
		node := doc.NodeAt(record.SourcePath)
		if node == nil {
			w.logger.Warn("invalid or missing node",
				logging.Args(logging.String("path", record.SourcePath))...)
			summary.Skipped++
			continue
		}
		node.SetAttribute(w.attributeName, matchedID)
		summary.Enriched++
	}
	return summary
}

// EnrichAndExport runs Enrich under the single-writer lock for outputURL and
// persists the modified scene there. Export failure is fatal and propagates
// to the caller.
func (w *Writer) EnrichAndExport(
	ctx context.Context,
	source *scenegraph.Source,
	doc *scenegraph.Document,
	records []extract.Record,
	outcome resolve.Outcome,
	outputURL string,
) (Summary, error) {
	lock := flock.New(lockPath(outputURL))
	locked, err := lock.TryLock()
	if err != nil {
		return Summary{}, fmt.Errorf("acquire enrichment lock: %w", err)
	}
	if !locked {
		return Summary{}, services.Wrap(services.ErrValidation, "enrich", "lock",
			fmt.Sprintf("another enrichment pass holds %s", outputURL), nil)
	}
	defer func() { _ = lock.Unlock() }()

	summary := w.Enrich(doc, records, outcome)
	if err := source.Export(ctx, doc, outputURL); err != nil {
		return summary, err
	}

	w.logger.Info("enriched scene saved",
		logging.Args(
			logging.String("output", outputURL),
			logging.Int("enriched", summary.Enriched),
			logging.Int("skipped", summary.Skipped),
		)...)
	return summary, nil
}

// lockPath derives a lock file location for an output URL. The lock lives in
// the temp directory so non-filesystem scene URLs still serialize against
// each other on the same host.
func lockPath(outputURL string) string {
	sum := sha256.Sum256([]byte(outputURL))
	return filepath.Join(os.TempDir(), "scenelink-"+hex.EncodeToString(sum[:8])+".lock")
}
