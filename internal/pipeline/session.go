package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"scenelink/internal/config"
	"scenelink/internal/logging"
	"scenelink/internal/registry"
	"scenelink/internal/scenegraph"
	"scenelink/internal/tabular"
)

// Session is the shared execution context for one or more pipeline runs.
type Session struct {
	Config *config.Config
	Logger *slog.Logger
	RunID  string

	scenes *scenegraph.Source
	tables *tabular.Store
	reg    *registry.Registry
}

// NewSession acquires the stores a pipeline run depends on. Callers own the
// session and must Close it.
func NewSession(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: nil config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	tables, err := tabular.Open(cfg.Paths.TableDB)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	return &Session{
		Config: cfg,
		Logger: logger.With(logging.String(logging.FieldRunID, runID)),
		RunID:  runID,
		scenes: scenegraph.NewSource(),
		tables: tables,
	}, nil
}

// Scenes returns the scene source collaborator.
func (s *Session) Scenes() *scenegraph.Source { return s.scenes }

// Tables returns the tabular store collaborator.
func (s *Session) Tables() *tabular.Store { return s.tables }

// Registry lazily opens the registry database. The first failure is sticky
// only in the sense that every call retries the open; a missing database
// keeps returning registry.ErrNotConnected.
func (s *Session) Registry() (*registry.Registry, error) {
	if s.reg != nil {
		return s.reg, nil
	}
	reg, err := registry.Open(s.Config.Paths.RegistryDB)
	if err != nil {
		return nil, err
	}
	s.reg = reg
	return s.reg, nil
}

// Close releases the session's store handles.
func (s *Session) Close() error {
	var errs []error
	if s.reg != nil {
		errs = append(errs, s.reg.Close())
		s.reg = nil
	}
	if s.tables != nil {
		errs = append(errs, s.tables.Close())
		s.tables = nil
	}
	return errors.Join(errs...)
}
