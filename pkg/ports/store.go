package ports

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

var (
	// ErrSchemaNotFound is returned by SchemaStore.Load for unknown names.
	ErrSchemaNotFound = errors.New("schema not found")

	// ErrInvalidName is returned for schema names that ValidName rejects.
	ErrInvalidName = errors.New("invalid schema name")
)

// SchemaStore persists raw schema documents (YAML or JSON) by name.
// Stores keep the bytes as given so the document's key order survives.
type SchemaStore interface {
	// Save creates or replaces the document stored under name.
	Save(ctx context.Context, name string, doc []byte) error

	// Load returns the document stored under name.
	// Returns ErrSchemaNotFound if there is none.
	Load(ctx context.Context, name string) ([]byte, error)

	// Delete removes the document. Deleting an unknown name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the stored names in ascending order.
	List(ctx context.Context) ([]string, error)
}

// Watchable is implemented by stores that can observe changes made outside
// the process.
type Watchable interface {
	// Watch emits the name of every schema that changed until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}

var namePattern = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]{0,127}$`)

// ValidName checks that name can be used as a store key and as a file name.
func ValidName(name string) error {
	if !namePattern.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}
