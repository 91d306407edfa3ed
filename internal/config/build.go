package config

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/expect/internal/logging"
	"github.com/aretw0/expect/pkg/adapters/file"
	"github.com/aretw0/expect/pkg/adapters/memory"
	"github.com/aretw0/expect/pkg/adapters/redis"
	"github.com/aretw0/expect/pkg/pattern"
	"github.com/aretw0/expect/pkg/ports"
)

// Logger builds the logger described by c, writing to w.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	level, err := logging.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.NewFormat(c.LogFormat, w, level)
}

// Registry returns the default patterns, layered with c.Patterns if set.
func (c Config) Registry() (*pattern.Registry, error) {
	if c.Patterns == "" {
		return pattern.Default(), nil
	}
	return pattern.Load(c.Patterns, pattern.Default())
}

// OpenStore builds the configured schema store.
func (c Config) OpenStore() (ports.SchemaStore, error) {
	switch c.Store.Driver {
	case "memory":
		return memory.NewStore(), nil
	case "file":
		return file.New(c.Store.Dir), nil
	case "redis":
		var opts []redis.Option
		if c.Store.Redis.Prefix != "" {
			opts = append(opts, redis.WithPrefix(c.Store.Redis.Prefix))
		}
		if c.Store.Redis.TTL != "" {
			ttl, err := time.ParseDuration(c.Store.Redis.TTL)
			if err != nil {
				return nil, fmt.Errorf("store.redis.ttl: %w", err)
			}
			opts = append(opts, redis.WithTTL(ttl))
		}
		r := c.Store.Redis
		return redis.New(r.Addr, r.Password, r.DB, opts...), nil
	}
	return nil, fmt.Errorf("unknown store driver %q", c.Store.Driver)
}
