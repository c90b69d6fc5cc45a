package extract_test

import (
	"context"
	"reflect"
	"testing"

	"scenelink/internal/extract"
	"scenelink/internal/scenegraph"
	"scenelink/internal/tabular"
	"scenelink/internal/testsupport"
)

func mustParse(t *testing.T, data string) *scenegraph.Document {
	t.Helper()
	doc, err := scenegraph.Parse([]byte(data))
	if err != nil {
		t.Fatalf("parse scene: %v", err)
	}
	return doc
}

func TestRecordsFiltersByTypeAndDerivesCandidateID(t *testing.T) {
	doc := mustParse(t, testsupport.SampleScene)

	extractor := extract.NewExtractor("")
	records := extractor.Records(doc)

	want := []extract.Record{
		{SourcePath: "/World/Pump101", CandidateID: "Pump101"},
		{SourcePath: "/World/Valve22", CandidateID: "Valve22"},
	}
	if !reflect.DeepEqual(records, want) {
		t.Fatalf("records = %+v, want %+v", records, want)
	}
}

func TestRecordsIsRestartable(t *testing.T) {
	doc := mustParse(t, testsupport.SampleScene)
	extractor := extract.NewExtractor("Xform")

	first := extractor.Records(doc)
	second := extractor.Records(doc)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated extraction differs: %+v vs %+v", first, second)
	}
}

func TestRecordsEmptySceneIsNotAnError(t *testing.T) {
	doc := mustParse(t, `{"nodes": [{"name": "World", "type": "Scope"}]}`)
	records := extract.NewExtractor("Xform").Records(doc)
	if len(records) != 0 {
		t.Fatalf("expected no records, got %+v", records)
	}
}

func TestRecordsCustomTypeFilter(t *testing.T) {
	doc := mustParse(t, testsupport.SampleScene)
	records := extract.NewExtractor("Scope").Records(doc)

	paths := make([]string, len(records))
	for i, record := range records {
		paths[i] = record.SourcePath
	}
	want := []string{"/World", "/World/Notes"}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
}

func TestWriteMetadataTable(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store, err := tabular.Open(cfg.Paths.TableDB)
	if err != nil {
		t.Fatalf("open table store: %v", err)
	}
	defer store.Close()

	records := []extract.Record{
		{SourcePath: "/World/Pump101", CandidateID: "Pump101"},
		{SourcePath: "/World/Valve22", CandidateID: "Valve22"},
	}
	ctx := context.Background()
	if err := extract.WriteMetadataTable(ctx, store, records); err != nil {
		t.Fatalf("write metadata table: %v", err)
	}

	columns, rows, err := store.ReadTable(ctx, extract.MetadataTable)
	if err != nil {
		t.Fatalf("read metadata table: %v", err)
	}
	if !reflect.DeepEqual(columns, []string{"sourcePath", "candidateId"}) {
		t.Fatalf("columns = %v", columns)
	}
	if len(rows) != 2 || rows[0][1] != "Pump101" || rows[1][1] != "Valve22" {
		t.Fatalf("rows = %v", rows)
	}
}

func TestCandidateIDs(t *testing.T) {
	records := []extract.Record{
		{SourcePath: "/World/Pump101", CandidateID: "Pump101"},
		{SourcePath: "/Other/Pump101", CandidateID: "Pump101"},
	}
	ids := extract.CandidateIDs(records)
	if !reflect.DeepEqual(ids, []string{"Pump101", "Pump101"}) {
		t.Fatalf("ids = %v", ids)
	}
}
