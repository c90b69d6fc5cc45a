package services_test

import (
	"errors"
	"strings"
	"testing"

	"scenelink/internal/services"
)

func TestWrapTagsAndFormats(t *testing.T) {
	cause := errors.New("disk full")
	err := services.Wrap(services.ErrPersistence, "enrich", "export", "/tmp/out.json", cause)

	if !services.IsPersistenceFailure(err) {
		t.Fatalf("expected persistence classification: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("cause lost")
	}
	msg := err.Error()
	for _, part := range []string{"enrich", "export", "/tmp/out.json", "disk full"} {
		if !strings.Contains(msg, part) {
			t.Fatalf("message %q missing %q", msg, part)
		}
	}
}

func TestWrapNilMarkerDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
	if !strings.Contains(err.Error(), "service failure") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestClassificationHelpers(t *testing.T) {
	unavailable := services.Wrap(services.ErrSourceUnavailable, "registry", "query", "", nil)
	if !services.IsSourceUnavailable(unavailable) {
		t.Fatal("source-unavailable tag missed")
	}
	if services.IsPersistenceFailure(unavailable) {
		t.Fatal("misclassified as persistence failure")
	}
}
