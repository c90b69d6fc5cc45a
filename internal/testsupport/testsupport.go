// Package testsupport provides shared fixtures for package tests: temp
// configs, seeded registry databases, and sample scene documents.
package testsupport

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"scenelink/internal/config"
)

// NewConfig returns a validated configuration rooted in a temp directory.
func NewConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.RegistryDB = filepath.Join(base, "registry.db")
	cfg.Paths.TableDB = filepath.Join(base, "tables.db")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default test config invalid: %v", err)
	}
	return &cfg
}

// SeedRegistry creates a registry database at path with the standard tables
// for registry item "factory" and inserts the provided Asset display ids.
func SeedRegistry(t *testing.T, path string, displayIDs ...string) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open seed registry: %v", err)
	}
	defer db.Close()

	statements := []string{
		`CREATE TABLE factory_entitytype (ID INTEGER PRIMARY KEY, Name TEXT NOT NULL)`,
		`CREATE TABLE factory_entityinstance (
            Id1 INTEGER, Id2 INTEGER,
            EntityTypeId INTEGER NOT NULL,
            EntityInstanceDisplayId TEXT NOT NULL
        )`,
		`CREATE TABLE factory_relationshipinstance (
            FirstEntityInstanceId1 INTEGER, FirstEntityInstanceId2 INTEGER,
            SecondEntityInstanceId1 INTEGER, SecondEntityInstanceId2 INTEGER
        )`,
		`INSERT INTO factory_entitytype (ID, Name) VALUES (1, 'Asset')`,
	}
	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			t.Fatalf("seed registry schema: %v", err)
		}
	}
	for i, id := range displayIDs {
		if _, err := db.Exec(
			`INSERT INTO factory_entityinstance (Id1, Id2, EntityTypeId, EntityInstanceDisplayId) VALUES (?, ?, 1, ?)`,
			i+1, i+1, id,
		); err != nil {
			t.Fatalf("seed entity instance: %v", err)
		}
	}
}

// SeedRelationship links two previously seeded entity instances by their
// (Id1, Id2) pairs.
func SeedRelationship(t *testing.T, path string, first, second int) {
	t.Helper()
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("open seed registry: %v", err)
	}
	defer db.Close()
	if _, err := db.Exec(
		`INSERT INTO factory_relationshipinstance (
            FirstEntityInstanceId1, FirstEntityInstanceId2,
            SecondEntityInstanceId1, SecondEntityInstanceId2
        ) VALUES (?, ?, ?, ?)`,
		first, first, second, second,
	); err != nil {
		t.Fatalf("seed relationship: %v", err)
	}
}

// SampleScene is a small scene document with two Xform assets under /World;
// the Scope nodes must be skipped by extraction.
const SampleScene = `{
  "nodes": [
    {
      "name": "World",
      "type": "Scope",
      "children": [
        {"name": "Pump101", "type": "Xform"},
        {"name": "Valve22", "type": "Xform"},
        {"name": "Notes", "type": "Scope"}
      ]
    }
  ]
}
`

// WriteScene writes content (or SampleScene when empty) into dir and returns
// the file path.
func WriteScene(t *testing.T, dir, content string) string {
	t.Helper()
	if content == "" {
		content = SampleScene
	}
	path := filepath.Join(dir, "scene.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write scene: %v", err)
	}
	return path
}
