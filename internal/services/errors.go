package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSourceUnavailable marks a scene file, registry, or table store that
	// could not be opened or is not connected. Not retryable by the core.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrValidation marks bad input or configuration.
	ErrValidation = errors.New("validation error")
	// ErrPersistence marks a failed write of the enriched scene or an output
	// table. Always fatal to the run.
	ErrPersistence = errors.New("persistence failure")
	// ErrTransient marks everything else.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes stage context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsSourceUnavailable reports whether err is tagged as a missing or
// disconnected collaborator.
func IsSourceUnavailable(err error) bool {
	return errors.Is(err, ErrSourceUnavailable)
}

// IsPersistenceFailure reports whether err is tagged as a failed write.
func IsPersistenceFailure(err error) bool {
	return errors.Is(err, ErrPersistence)
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
