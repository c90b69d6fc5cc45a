package registry_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"scenelink/internal/registry"
	"scenelink/internal/testsupport"
)

func TestOpenMissingDatabaseIsNotConnected(t *testing.T) {
	_, err := registry.Open(filepath.Join(t.TempDir(), "missing.db"))
	if !errors.Is(err, registry.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected, got %v", err)
	}
}

func TestEntityInstancesReturnsSeededDisplayIDs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	testsupport.SeedRegistry(t, path, "Pump101", "Valve-022", "Tank-9")

	reg, err := registry.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reg.Close()

	ids, err := reg.EntityInstances(context.Background(), "factory", "Asset")
	if err != nil {
		t.Fatalf("entity instances: %v", err)
	}
	if !reflect.DeepEqual(ids, []string{"Pump101", "Valve-022", "Tank-9"}) {
		t.Fatalf("ids = %v", ids)
	}
}

func TestEntityInstancesUnknownTypeIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	testsupport.SeedRegistry(t, path, "Pump101")

	reg, err := registry.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reg.Close()

	ids, err := reg.EntityInstances(context.Background(), "factory", "Sensor")
	if err != nil {
		t.Fatalf("entity instances: %v", err)
	}
	if len(ids) != 0 {
		t.Fatalf("expected no ids for unknown type, got %v", ids)
	}
}

func TestMissingTablesAreNotConnected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.db")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("create empty db: %v", err)
	}

	reg, err := registry.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reg.Close()

	_, err = reg.EntityInstances(context.Background(), "factory", "Asset")
	if !errors.Is(err, registry.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected for missing tables, got %v", err)
	}

	_, err = reg.ContextualizationResults(context.Background(), "factory")
	if !errors.Is(err, registry.ErrNotConnected) {
		t.Fatalf("expected ErrNotConnected for missing tables, got %v", err)
	}
}

func TestContextualizationResults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	testsupport.SeedRegistry(t, path, "PumpScene", "Pump101")
	testsupport.SeedRelationship(t, path, 1, 2)

	reg, err := registry.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reg.Close()

	pairs, err := reg.ContextualizationResults(context.Background(), "factory")
	if err != nil {
		t.Fatalf("contextualization results: %v", err)
	}
	want := []registry.ContextPair{{USDDisplayID: "PumpScene", AssetDisplayID: "Pump101"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("pairs = %+v, want %+v", pairs, want)
	}
}

func TestInvalidRegistryNameRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.db")
	testsupport.SeedRegistry(t, path)

	reg, err := registry.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer reg.Close()

	if _, err := reg.EntityInstances(context.Background(), "fac tory; DROP", "Asset"); err == nil {
		t.Fatal("expected error for invalid registry name")
	}
}
