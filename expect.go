package expect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"sync"
	"time"

	"github.com/aretw0/expect/internal/logging"
	"github.com/aretw0/expect/pkg/pattern"
	"github.com/aretw0/expect/pkg/ports"
	"github.com/aretw0/expect/pkg/schema"
)

var (
	// ErrNoStore is returned by named-schema operations when the Validator
	// was built without WithStore.
	ErrNoStore = errors.New("no schema store configured")

	// ErrNotWatchable is returned by Watch when the store cannot observe changes.
	ErrNotWatchable = errors.New("schema store does not support watching")
)

// Validator is the high-level entry point for the expect library.
// It binds a pattern Registry to the schema engine and, optionally, to a
// store of named schema documents. Safe for concurrent use.
type Validator struct {
	registry *pattern.Registry
	store    ports.SchemaStore
	hooks    Hooks
	logger   *slog.Logger

	mu    sync.RWMutex
	cache map[string]schema.Schema
	// gen counts changes per name; a parse started before a change is not cached.
	gen map[string]uint64
}

// Option defines a functional option for configuring the Validator.
type Option func(*Validator)

// WithRegistry replaces the default pattern registry.
func WithRegistry(reg *pattern.Registry) Option {
	return func(v *Validator) {
		v.registry = reg
	}
}

// WithStore enables ValidateNamed and the schema management methods.
func WithStore(store ports.SchemaStore) Option {
	return func(v *Validator) {
		v.store = store
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Validator) {
		v.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(v *Validator) {
		v.hooks = hooks
	}
}

// New initializes a Validator. Without options it uses pattern.Default(),
// has no store and discards logs.
func New(opts ...Option) *Validator {
	v := &Validator{
		cache: make(map[string]schema.Schema),
		gen:   make(map[string]uint64),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = pattern.Default()
	}
	if v.logger == nil {
		v.logger = logging.NewNop()
	}
	return v
}

// Registry returns the pattern registry in use.
func (v *Validator) Registry() *pattern.Registry {
	return v.registry
}

// Store returns the schema store, or nil.
func (v *Validator) Store() ports.SchemaStore {
	return v.store
}

// LookupPattern returns the regex source registered under name.
func (v *Validator) LookupPattern(name string) (string, bool) {
	return v.registry.Lookup(name)
}

// ExpandFormat substitutes every <name> placeholder of format.
func (v *Validator) ExpandFormat(format string) string {
	return v.registry.Expand(format)
}

// CompilePattern expands and compiles format.
func (v *Validator) CompilePattern(format string) (*regexp.Regexp, error) {
	return v.registry.Compile(format)
}

// Pattern compiles the registered pattern name.
func (v *Validator) Pattern(name string) (*regexp.Regexp, error) {
	return v.registry.Pattern(name)
}

// Parse converts untyped schema data, expanding formats through the
// Validator's registry.
func (v *Validator) Parse(raw any) (schema.Schema, error) {
	return schema.Parse(raw, v.registry)
}

// ParseDocument parses a YAML or JSON schema document.
func (v *Validator) ParseDocument(data []byte) (schema.Schema, error) {
	return schema.ParseDocument(data, v.registry)
}

// Validate checks value against s.
func (v *Validator) Validate(ctx context.Context, value any, s schema.Schema) schema.Result {
	return v.run(ctx, "", func() schema.Result {
		return schema.Validate(value, s)
	})
}

// ValidateRaw parses raw (a document as []byte or string, or untyped data)
// and checks value against it. A malformed schema yields a SchemaError
// result naming the first bad field.
func (v *Validator) ValidateRaw(ctx context.Context, value any, raw any) schema.Result {
	return v.run(ctx, "", func() schema.Result {
		s, err := v.parseRaw(raw)
		if err != nil {
			return schema.ResultFromError(err)
		}
		return schema.Validate(value, s)
	})
}

func (v *Validator) parseRaw(raw any) (schema.Schema, error) {
	switch r := raw.(type) {
	case []byte:
		return v.ParseDocument(r)
	case string:
		return v.ParseDocument([]byte(r))
	case schema.Schema:
		return r, nil
	}
	return v.Parse(raw)
}

// ValidateNamed checks value against the stored schema name. Store failures
// (including ports.ErrSchemaNotFound) are returned as errors; a malformed
// stored document yields a SchemaError result.
func (v *Validator) ValidateNamed(ctx context.Context, name string, value any) (schema.Result, error) {
	s, err := v.Schema(ctx, name)
	if err != nil {
		if schema.IsSchemaError(err) {
			return v.run(ctx, name, func() schema.Result { return schema.ResultFromError(err) }), nil
		}
		return schema.Result{}, err
	}
	return v.run(ctx, name, func() schema.Result {
		return schema.Validate(value, s)
	}), nil
}

func (v *Validator) run(ctx context.Context, name string, validate func() schema.Result) schema.Result {
	start := time.Now()
	res := validate()
	elapsed := time.Since(start)

	if !res.OK() {
		v.logger.Debug("validation failed",
			"schema", name,
			"status", string(res.Status),
			"path", res.Path(),
		)
	}
	if v.hooks.OnValidate != nil {
		v.hooks.OnValidate(ctx, &Event{
			Timestamp: start,
			Schema:    name,
			Result:    res,
			Duration:  elapsed,
		})
	}
	return res
}

// Schema loads and parses the stored schema name. Parsed schemas are cached
// until SaveSchema, DeleteSchema, Invalidate or a Watch event replaces them.
func (v *Validator) Schema(ctx context.Context, name string) (schema.Schema, error) {
	if v.store == nil {
		return nil, ErrNoStore
	}

	v.mu.RLock()
	s, ok := v.cache[name]
	gen := v.gen[name]
	v.mu.RUnlock()
	if ok {
		return s, nil
	}

	doc, err := v.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	s, err = v.ParseDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("schema %q: %w", name, err)
	}

	v.mu.Lock()
	if v.gen[name] == gen {
		v.cache[name] = s
	}
	v.mu.Unlock()
	return s, nil
}

// SchemaDocument returns the stored document for name as written.
func (v *Validator) SchemaDocument(ctx context.Context, name string) ([]byte, error) {
	if v.store == nil {
		return nil, ErrNoStore
	}
	return v.store.Load(ctx, name)
}

// SaveSchema parses doc and, when it is well formed, stores it under name.
func (v *Validator) SaveSchema(ctx context.Context, name string, doc []byte) (schema.Schema, error) {
	if v.store == nil {
		return nil, ErrNoStore
	}
	s, err := v.ParseDocument(doc)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, &schema.DefinitionError{Reason: "empty schema document"}
	}
	if err := v.store.Save(ctx, name, doc); err != nil {
		return nil, err
	}

	v.mu.Lock()
	v.gen[name]++
	v.cache[name] = s
	v.mu.Unlock()
	v.logger.Info("schema saved", "schema", name, "fields", len(s))
	return s, nil
}

// DeleteSchema removes the stored schema name.
func (v *Validator) DeleteSchema(ctx context.Context, name string) error {
	if v.store == nil {
		return ErrNoStore
	}
	if err := v.store.Delete(ctx, name); err != nil {
		return err
	}
	v.Invalidate(name)
	v.logger.Info("schema deleted", "schema", name)
	return nil
}

// ListSchemas returns the stored schema names.
func (v *Validator) ListSchemas(ctx context.Context) ([]string, error) {
	if v.store == nil {
		return nil, ErrNoStore
	}
	return v.store.List(ctx)
}

// Invalidate drops the cached parse of name.
func (v *Validator) Invalidate(name string) {
	v.mu.Lock()
	v.gen[name]++
	delete(v.cache, name)
	v.mu.Unlock()
}

// Watch invalidates cached schemas as the store reports changes, until ctx
// is done. It returns ErrNotWatchable if the store cannot observe changes.
// The returned channel relays the changed names and may be ignored.
func (v *Validator) Watch(ctx context.Context) (<-chan string, error) {
	w, ok := v.store.(ports.Watchable)
	if !ok {
		return nil, ErrNotWatchable
	}
	changes, err := w.Watch(ctx)
	if err != nil {
		return nil, err
	}

	out := make(chan string, 16)
	go func() {
		defer close(out)
		for name := range changes {
			v.Invalidate(name)
			v.logger.Info("schema changed", "schema", name)
			select {
			case out <- name:
			default:
			}
		}
	}()
	return out, nil
}
