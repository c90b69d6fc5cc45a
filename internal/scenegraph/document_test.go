package scenegraph_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"scenelink/internal/scenegraph"
)

const sampleDoc = `{
  "nodes": [
    {
      "name": "World",
      "type": "Scope",
      "children": [
        {"name": "Pump101", "type": "Xform", "attributes": {"displayName": "Pump 101"}},
        {"name": "Valve22", "type": "Xform"}
      ]
    }
  ]
}`

func TestParseAndNodeAt(t *testing.T) {
	doc, err := scenegraph.Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	node := doc.NodeAt("/World/Pump101")
	if node == nil {
		t.Fatal("expected node at /World/Pump101")
	}
	if node.TypeName() != "Xform" || node.Name() != "Pump101" {
		t.Fatalf("unexpected node: %s %s", node.TypeName(), node.Name())
	}
	if node.Path() != "/World/Pump101" {
		t.Fatalf("path = %s", node.Path())
	}
	if value, ok := node.Attribute("displayName"); !ok || value != "Pump 101" {
		t.Fatalf("displayName = %q, %v", value, ok)
	}

	if doc.NodeAt("/World/Missing") != nil {
		t.Fatal("expected nil for missing node")
	}
	if doc.NodeAt("") != nil {
		t.Fatal("expected nil for empty path")
	}
}

func TestWalkVisitsDepthFirstInDocumentOrder(t *testing.T) {
	doc, err := scenegraph.Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var paths []string
	doc.Walk(func(node *scenegraph.Node) {
		paths = append(paths, node.Path())
	})
	want := []string{"/World", "/World/Pump101", "/World/Valve22"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v", paths)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Fatalf("paths = %v, want %v", paths, want)
		}
	}
}

func TestSetAttributeCreatesAndOverwrites(t *testing.T) {
	doc, err := scenegraph.Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	node := doc.NodeAt("/World/Valve22")

	node.SetAttribute("dtbAssetId", "DTB-1")
	if value, _ := node.Attribute("dtbAssetId"); value != "DTB-1" {
		t.Fatalf("attribute = %q", value)
	}

	node.SetAttribute("dtbAssetId", "DTB-2")
	if value, _ := node.Attribute("dtbAssetId"); value != "DTB-2" {
		t.Fatalf("overwrite failed, attribute = %q", value)
	}
	if len(node.Attributes()) != 1 {
		t.Fatalf("expected exactly one attribute, got %v", node.Attributes())
	}
}

func TestParseRejectsInvalidNodeNames(t *testing.T) {
	if _, err := scenegraph.Parse([]byte(`{"nodes": [{"name": "a/b"}]}`)); err == nil {
		t.Fatal("expected error for slash in node name")
	}
	if _, err := scenegraph.Parse([]byte(`{"nodes": [{"name": "  "}]}`)); err == nil {
		t.Fatal("expected error for blank node name")
	}
}

func TestOpenExportRoundTrip(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "scene.json")
	outPath := filepath.Join(dir, "enriched.json")
	if err := os.WriteFile(inPath, []byte(sampleDoc), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}

	ctx := context.Background()
	source := scenegraph.NewSource()
	doc, err := source.Open(ctx, inPath)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if doc.SourceURL() != inPath {
		t.Fatalf("source url = %s", doc.SourceURL())
	}

	doc.NodeAt("/World/Pump101").SetAttribute("dtbAssetId", "DTB-9")
	if err := source.Export(ctx, doc, outPath); err != nil {
		t.Fatalf("export: %v", err)
	}

	reloaded, err := source.Open(ctx, outPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if value, ok := reloaded.NodeAt("/World/Pump101").Attribute("dtbAssetId"); !ok || value != "DTB-9" {
		t.Fatalf("round-tripped attribute = %q, %v", value, ok)
	}
	// Topology unchanged.
	if reloaded.NodeAt("/World/Valve22") == nil {
		t.Fatal("sibling lost in round trip")
	}
}

func TestOpenMissingSceneIsDistinguished(t *testing.T) {
	source := scenegraph.NewSource()
	_, err := source.Open(context.Background(), filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing scene")
	}
	if !errors.Is(err, scenegraph.ErrOpen) {
		t.Fatalf("expected ErrOpen, got %v", err)
	}
}
