package pipeline

import (
	"context"
	"errors"
	"fmt"

	"scenelink/internal/config"
	"scenelink/internal/enrich"
	"scenelink/internal/extract"
	"scenelink/internal/logging"
	"scenelink/internal/registry"
	"scenelink/internal/resolve"
	"scenelink/internal/scenegraph"
	"scenelink/internal/services"
)

// ContextTable is the tabular store table Contextualize writes.
const ContextTable = "ContextualizationResults"

// RunOptions selects the scene to process and where the enriched scene goes.
type RunOptions struct {
	SceneURL string
	// OutputURL defaults to SceneURL when empty.
	OutputURL string
	// SkipEnrich stops the run after resolution, leaving the scene untouched.
	SkipEnrich bool
}

// RunResult carries the artifacts of a completed run.
type RunResult struct {
	Records    []extract.Record
	References int
	Outcome    resolve.Outcome
	Summary    enrich.Summary
}

// Run executes the full pipeline: extract candidates, load the reference
// set, resolve, and enrich. Extraction and registry failures abort the run
// before resolution begins so partial input is never treated as complete.
// Enrichment starts only after the complete outcome has been gathered, and
// persistence failures propagate.
func Run(ctx context.Context, sess *Session, opts RunOptions) (*RunResult, error) {
	ctx = services.WithRunID(ctx, sess.RunID)
	logger := logging.NewComponentLogger(sess.Logger, "pipeline")

	doc, records, err := extractStage(ctx, sess, opts.SceneURL)
	if err != nil {
		return nil, err
	}

	references, err := loadReferences(ctx, sess)
	if err != nil {
		return nil, err
	}

	resolver := resolverFromConfig(sess)
	outcome, err := resolver.Resolve(services.WithStage(ctx, "resolve"), extract.CandidateIDs(records), references)
	if err != nil {
		return nil, err
	}
	if err := resolve.WriteMatchTable(ctx, sess.Tables(), outcome); err != nil {
		return nil, services.Wrap(services.ErrPersistence, "resolve", "write match table", resolve.MatchTable, err)
	}

	result := &RunResult{Records: records, References: len(references), Outcome: outcome}
	if opts.SkipEnrich {
		return result, nil
	}

	outputURL := opts.OutputURL
	if outputURL == "" {
		outputURL = opts.SceneURL
	}
	writer := enrich.NewWriter(sess.Logger, sess.Config.Matching.AttributeName)
	summary, err := writer.EnrichAndExport(services.WithStage(ctx, "enrich"), sess.Scenes(), doc, records, outcome, outputURL)
	if err != nil {
		return nil, err
	}
	result.Summary = summary

	logger.Info("pipeline run complete",
		logging.Args(
			logging.String("scene", opts.SceneURL),
			logging.String("output", outputURL),
			logging.Int("records", len(records)),
			logging.Int("matched", len(outcome.Matched)),
			logging.Int("enriched", summary.Enriched),
		)...)
	return result, nil
}

// Extract opens the scene and runs the extraction stage only, persisting the
// metadata table.
func Extract(ctx context.Context, sess *Session, sceneURL string) ([]extract.Record, error) {
	ctx = services.WithRunID(ctx, sess.RunID)
	_, records, err := extractStage(ctx, sess, sceneURL)
	return records, err
}

// EnrichFromTables replays a previously persisted resolution against a scene:
// the extraction and match tables are read back from the tabular store,
// joined, and applied. This mirrors driving enrichment from stored job
// results rather than an in-process resolution pass.
func EnrichFromTables(ctx context.Context, sess *Session, sceneURL, outputURL string) (enrich.Summary, error) {
	ctx = services.WithRunID(ctx, sess.RunID)

	_, metaRows, err := sess.Tables().ReadTable(ctx, extract.MetadataTable)
	if err != nil {
		return enrich.Summary{}, services.Wrap(services.ErrSourceUnavailable, "enrich", "read table", extract.MetadataTable, err)
	}
	_, matchRows, err := sess.Tables().ReadTable(ctx, resolve.MatchTable)
	if err != nil {
		return enrich.Summary{}, services.Wrap(services.ErrSourceUnavailable, "enrich", "read table", resolve.MatchTable, err)
	}

	records := make([]extract.Record, len(metaRows))
	for i, row := range metaRows {
		records[i] = extract.Record{SourcePath: row[0], CandidateID: row[1]}
	}
	outcome := resolve.Outcome{}
	for _, row := range matchRows {
		outcome.Matched = append(outcome.Matched, resolve.Match{
			CandidateID: row[0],
			MatchedID:   row[1],
			Matched:     true,
		})
	}

	doc, err := sess.Scenes().Open(ctx, sceneURL)
	if err != nil {
		return enrich.Summary{}, services.Wrap(services.ErrSourceUnavailable, "enrich", "open scene", sceneURL, err)
	}
	if outputURL == "" {
		outputURL = sceneURL
	}
	writer := enrich.NewWriter(sess.Logger, sess.Config.Matching.AttributeName)
	return writer.EnrichAndExport(ctx, sess.Scenes(), doc, records, outcome, outputURL)
}

// Contextualize reads the registry's contextualization job results and
// persists them to the tabular store, returning the pair count.
func Contextualize(ctx context.Context, sess *Session) (int, error) {
	ctx = services.WithRunID(ctx, sess.RunID)

	reg, err := sess.Registry()
	if err != nil {
		return 0, classifyRegistryError(err)
	}
	pairs, err := reg.ContextualizationResults(ctx, sess.Config.Registry.Name)
	if err != nil {
		return 0, classifyRegistryError(err)
	}

	rows := make([][]string, len(pairs))
	for i, pair := range pairs {
		rows[i] = []string{pair.USDDisplayID, pair.AssetDisplayID}
	}
	if err := sess.Tables().WriteTable(ctx, ContextTable, []string{"USDDisplayID", "AssetDisplayID"}, rows); err != nil {
		return 0, services.Wrap(services.ErrPersistence, "contextualize", "write table", ContextTable, err)
	}
	return len(pairs), nil
}

func extractStage(ctx context.Context, sess *Session, sceneURL string) (*scenegraph.Document, []extract.Record, error) {
	ctx = services.WithStage(ctx, "extract")
	doc, err := sess.Scenes().Open(ctx, sceneURL)
	if err != nil {
		if errors.Is(err, scenegraph.ErrOpen) {
			return nil, nil, services.Wrap(services.ErrSourceUnavailable, "extract", "open scene", sceneURL, err)
		}
		return nil, nil, err
	}

	extractor := extract.NewExtractor(sess.Config.Matching.TypeFilter)
	records := extractor.Records(doc)
	if err := extract.WriteMetadataTable(ctx, sess.Tables(), records); err != nil {
		return nil, nil, services.Wrap(services.ErrPersistence, "extract", "write table", extract.MetadataTable, err)
	}
	return doc, records, nil
}

// loadReferences queries the reference set. Any failure here is a hard stop:
// resolution never runs against partial input.
func loadReferences(ctx context.Context, sess *Session) ([]string, error) {
	ctx = services.WithStage(ctx, "registry")
	reg, err := sess.Registry()
	if err != nil {
		return nil, classifyRegistryError(err)
	}
	references, err := reg.EntityInstances(ctx, sess.Config.Registry.Name, sess.Config.Registry.EntityType)
	if err != nil {
		return nil, classifyRegistryError(err)
	}
	return references, nil
}

func classifyRegistryError(err error) error {
	if errors.Is(err, registry.ErrNotConnected) {
		return services.Wrap(services.ErrSourceUnavailable, "registry", "query",
			"connect the registry data source before proceeding", err)
	}
	return fmt.Errorf("registry: %w", err)
}

func resolverFromConfig(sess *Session) *resolve.Resolver {
	opts := []resolve.Option{
		resolve.WithThreshold(sess.Config.Matching.Threshold),
		resolve.WithWorkers(sess.Config.Matching.Workers),
	}
	if sess.Config.Matching.Strategy == config.StrategyExact {
		opts = append(opts, resolve.WithScorer(resolve.ExactScore))
	}
	return resolve.NewResolver(sess.Logger, opts...)
}
