package file

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/aretw0/expect/pkg/ports"
)

// extensions are tried in order by Load.
var extensions = []string{".yaml", ".yml", ".json"}

// Store implements ports.SchemaStore on a directory of schema documents,
// one file per schema named <name>.yaml, <name>.yml or <name>.json.
type Store struct {
	BasePath string
}

// New creates a new Store with the given base path.
// If basePath is empty, it defaults to ".expect/schemas".
func New(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".expect", "schemas")
	}
	return &Store{BasePath: basePath}
}

// extensionFor picks .json for JSON objects and .yaml for everything else.
func extensionFor(doc []byte) string {
	if trimmed := bytes.TrimSpace(doc); len(trimmed) > 0 && trimmed[0] == '{' {
		return ".json"
	}
	return ".yaml"
}

// Save writes the document atomically: temp file, fsync, rename. A previous
// file for the same name with another extension is removed.
func (s *Store) Save(ctx context.Context, name string, doc []byte) error {
	if err := ports.ValidName(name); err != nil {
		return err
	}
	if err := os.MkdirAll(s.BasePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure schema directory: %w", err)
	}

	ext := extensionFor(doc)
	destPath := filepath.Join(s.BasePath, name+ext)

	// Same directory, so the rename stays on one filesystem.
	tmpFile, err := os.CreateTemp(s.BasePath, ".tmp-"+name+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmpFile.Write(doc); err != nil {
		return fmt.Errorf("failed to write to temp file: %w", err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("failed to fsync temp file: %w", err)
	}
	// Windows cannot rename an open file.
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	// Windows os.Rename fails if the destination exists.
	if _, err := os.Stat(destPath); err == nil {
		if err := os.Remove(destPath); err != nil {
			return fmt.Errorf("failed to remove existing schema file for overwrite: %w", err)
		}
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file to schema file: %w", err)
	}

	for _, other := range extensions {
		if other == ext {
			continue
		}
		if err := os.Remove(filepath.Join(s.BasePath, name+other)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to remove stale schema file: %w", err)
		}
	}
	return nil
}

// Load reads the first existing <name><ext> file.
func (s *Store) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ports.ValidName(name); err != nil {
		return nil, err
	}

	for _, ext := range extensions {
		data, err := os.ReadFile(filepath.Join(s.BasePath, name+ext))
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read schema file: %w", err)
		}
	}
	return nil, ports.ErrSchemaNotFound
}

// Delete removes every file stored for name.
func (s *Store) Delete(ctx context.Context, name string) error {
	if err := ports.ValidName(name); err != nil {
		return err
	}

	for _, ext := range extensions {
		err := os.Remove(filepath.Join(s.BasePath, name+ext))
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to delete schema file: %w", err)
		}
	}
	return nil
}

// List returns the names of all schema files in ascending order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.BasePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list schemas: %w", err)
	}

	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name, ok := schemaName(entry.Name()); ok && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names, nil
}

// schemaName maps a file name back to its schema name. Temp files and
// other extensions are not schemas.
func schemaName(file string) (string, bool) {
	ext := filepath.Ext(file)
	if !slices.Contains(extensions, ext) {
		return "", false
	}
	name := strings.TrimSuffix(file, ext)
	if ports.ValidName(name) != nil {
		return "", false
	}
	return name, true
}
