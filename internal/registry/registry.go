package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotConnected indicates the registry database or its tables are absent.
var ErrNotConnected = errors.New("registry not found or not connected")

// Registry reads entity and relationship instances from a registry database.
type Registry struct {
	db   *sql.DB
	path string
}

// Open connects to the registry database at path. A missing file is reported
// as ErrNotConnected rather than created.
func Open(path string) (*Registry, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotConnected, path)
		}
		return nil, fmt.Errorf("stat registry db: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open registry db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	return &Registry{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (r *Registry) Close() error {
	if r == nil || r.db == nil {
		return nil
	}
	return r.db.Close()
}

// EntityInstances returns the display ids of every instance of the named
// entity type in the named registry item. The result is the reference set for
// a resolution pass; duplicates are returned as stored.
func (r *Registry) EntityInstances(ctx context.Context, registryName, entityTypeName string) ([]string, error) {
	if err := validateIdentifier(registryName); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
        SELECT ei.EntityInstanceDisplayId
        FROM %q et
        JOIN %q ei ON et.ID = ei.EntityTypeId
        WHERE et.Name = ?
        ORDER BY ei.rowid`,
		registryName+"_entitytype", registryName+"_entityinstance")

	rows, err := r.db.QueryContext(ctx, query, entityTypeName)
	if err != nil {
		return nil, classifyQueryError(registryName, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan entity instance: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entity instances: %w", err)
	}
	return ids, nil
}

// ContextPair maps a scene-side entity display id to the asset-side display
// id it is related to. Either side may be empty when the relationship's
// endpoint did not resolve.
type ContextPair struct {
	USDDisplayID   string
	AssetDisplayID string
}

// ContextualizationResults joins relationship instances to their entity
// endpoints and returns the scene-to-asset display id pairs produced by a
// contextualization job.
func (r *Registry) ContextualizationResults(ctx context.Context, registryName string) ([]ContextPair, error) {
	if err := validateIdentifier(registryName); err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
        SELECT e1.EntityInstanceDisplayId, e2.EntityInstanceDisplayId
        FROM %q r
        LEFT JOIN %q e1
            ON r.FirstEntityInstanceId1 = e1.Id1 AND r.FirstEntityInstanceId2 = e1.Id2
        LEFT JOIN %q e2
            ON r.SecondEntityInstanceId1 = e2.Id1 AND r.SecondEntityInstanceId2 = e2.Id2
        ORDER BY r.rowid`,
		registryName+"_relationshipinstance",
		registryName+"_entityinstance",
		registryName+"_entityinstance")

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, classifyQueryError(registryName, err)
	}
	defer rows.Close()

	var pairs []ContextPair
	for rows.Next() {
		var usdID, assetID sql.NullString
		if err := rows.Scan(&usdID, &assetID); err != nil {
			return nil, fmt.Errorf("scan contextualization row: %w", err)
		}
		pairs = append(pairs, ContextPair{USDDisplayID: usdID.String, AssetDisplayID: assetID.String})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate contextualization rows: %w", err)
	}
	return pairs, nil
}

// classifyQueryError maps "no such table" onto ErrNotConnected; everything
// else stays a plain query failure.
func classifyQueryError(registryName string, err error) error {
	if strings.Contains(err.Error(), "no such table") {
		return fmt.Errorf("%w: registry item %q (connect the registry data source before proceeding)", ErrNotConnected, registryName)
	}
	return fmt.Errorf("query registry %q: %w", registryName, err)
}

func validateIdentifier(name string) error {
	if name == "" {
		return errors.New("empty registry name")
	}
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
		default:
			return fmt.Errorf("invalid registry name %q", name)
		}
	}
	return nil
}
