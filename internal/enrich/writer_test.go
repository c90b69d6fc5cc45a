package enrich_test

import (
	"context"
	"path/filepath"
	"testing"

	"scenelink/internal/enrich"
	"scenelink/internal/extract"
	"scenelink/internal/logging"
	"scenelink/internal/resolve"
	"scenelink/internal/scenegraph"
	"scenelink/internal/services"
	"scenelink/internal/testsupport"
)

func sampleDoc(t *testing.T) *scenegraph.Document {
	t.Helper()
	doc, err := scenegraph.Parse([]byte(testsupport.SampleScene))
	if err != nil {
		t.Fatalf("parse scene: %v", err)
	}
	return doc
}

func TestEnrichSetsAttributeOnMatchedNodes(t *testing.T) {
	doc := sampleDoc(t)
	records := []extract.Record{
		{SourcePath: "/World/Pump101", CandidateID: "Pump101"},
		{SourcePath: "/World/Valve22", CandidateID: "Valve22"},
	}
	outcome := resolve.Outcome{
		Matched: []resolve.Match{
			{CandidateID: "Pump101", MatchedID: "DTB-9", Score: 100, Matched: true},
		},
		Unmatched: []resolve.Match{
			{CandidateID: "Valve22"},
		},
	}

	writer := enrich.NewWriter(logging.NewNop(), "")
	summary := writer.Enrich(doc, records, outcome)

	if summary.Enriched != 1 || summary.Skipped != 0 {
		t.Fatalf("summary = %+v", summary)
	}
	if value, ok := doc.NodeAt("/World/Pump101").Attribute(enrich.DefaultAttributeName); !ok || value != "DTB-9" {
		t.Fatalf("matched node attribute = %q, %v", value, ok)
	}
	if _, ok := doc.NodeAt("/World/Valve22").Attribute(enrich.DefaultAttributeName); ok {
		t.Fatal("unmatched node must not gain an attribute")
	}
}

func TestEnrichIsIdempotent(t *testing.T) {
	doc := sampleDoc(t)
	records := []extract.Record{{SourcePath: "/World/Pump101", CandidateID: "Pump101"}}
	outcome := resolve.Outcome{Matched: []resolve.Match{
		{CandidateID: "Pump101", MatchedID: "DTB-9", Score: 100, Matched: true},
	}}

	writer := enrich.NewWriter(logging.NewNop(), "dtbAssetId")
	first := writer.Enrich(doc, records, outcome)
	second := writer.Enrich(doc, records, outcome)

	if first.Enriched != 1 || second.Enriched != 1 {
		t.Fatalf("summaries = %+v, %+v", first, second)
	}
	node := doc.NodeAt("/World/Pump101")
	if value, _ := node.Attribute("dtbAssetId"); value != "DTB-9" {
		t.Fatalf("attribute = %q", value)
	}
	if len(node.Attributes()) != 1 {
		t.Fatalf("attribute duplicated: %v", node.Attributes())
	}
}

func TestEnrichSkipsMissingNodes(t *testing.T) {
	doc := sampleDoc(t)
	records := []extract.Record{{SourcePath: "/World/Demolished", CandidateID: "Demolished"}}
	outcome := resolve.Outcome{Matched: []resolve.Match{
		{CandidateID: "Demolished", MatchedID: "DTB-404", Score: 90, Matched: true},
	}}

	writer := enrich.NewWriter(logging.NewNop(), "dtbAssetId")
	summary := writer.Enrich(doc, records, outcome)
	if summary.Enriched != 0 || summary.Skipped != 1 {
		t.Fatalf("summary = %+v", summary)
	}
}

func TestEnrichAndExportWritesScene(t *testing.T) {
	dir := t.TempDir()
	scenePath := testsupport.WriteScene(t, dir, "")
	outputPath := filepath.Join(dir, "enriched.json")

	ctx := context.Background()
	source := scenegraph.NewSource()
	doc, err := source.Open(ctx, scenePath)
	if err != nil {
		t.Fatalf("open scene: %v", err)
	}

	records := []extract.Record{{SourcePath: "/World/Pump101", CandidateID: "Pump101"}}
	outcome := resolve.Outcome{Matched: []resolve.Match{
		{CandidateID: "Pump101", MatchedID: "DTB-9", Score: 100, Matched: true},
	}}

	writer := enrich.NewWriter(logging.NewNop(), "dtbAssetId")
	summary, err := writer.EnrichAndExport(ctx, source, doc, records, outcome, outputPath)
	if err != nil {
		t.Fatalf("enrich and export: %v", err)
	}
	if summary.Enriched != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	exported, err := source.Open(ctx, outputPath)
	if err != nil {
		t.Fatalf("open exported scene: %v", err)
	}
	if value, ok := exported.NodeAt("/World/Pump101").Attribute("dtbAssetId"); !ok || value != "DTB-9" {
		t.Fatalf("exported attribute = %q, %v", value, ok)
	}
}

func TestEnrichAndExportFailsOnUnwritableOutput(t *testing.T) {
	dir := t.TempDir()
	scenePath := testsupport.WriteScene(t, dir, "")

	ctx := context.Background()
	source := scenegraph.NewSource()
	doc, err := source.Open(ctx, scenePath)
	if err != nil {
		t.Fatalf("open scene: %v", err)
	}

	writer := enrich.NewWriter(logging.NewNop(), "dtbAssetId")
	// Target a path whose parent is a regular file, which cannot be created.
	badOutput := filepath.Join(scenePath, "nested", "out.json")
	_, err = writer.EnrichAndExport(ctx, source, doc, nil, resolve.Outcome{}, badOutput)
	if err == nil {
		t.Fatal("expected persistence failure")
	}
	if !services.IsPersistenceFailure(err) {
		t.Fatalf("expected ErrPersistence tag, got %v", err)
	}
}
