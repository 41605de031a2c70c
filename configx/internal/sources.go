package internal

import (
	"context"
	"os"
	"strings"
)

// EnvOptions configures environment variable source behavior.
type EnvOptions struct {
	Prefix    string // Only variables with this prefix are read; the prefix is stripped
	Lowercase bool   // Convert keys to lowercase
}

// EnvSource loads configuration from environment variables.
type EnvSource struct {
	prefix    string
	lowercase bool
	environ   func() []string
}

// NewEnvSource creates a new environment variable source.
func NewEnvSource(opts EnvOptions) *EnvSource {
	return &EnvSource{
		prefix:    opts.Prefix,
		lowercase: opts.Lowercase,
		environ:   os.Environ,
	}
}

// Load reads configuration from environment variables.
func (s *EnvSource) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config := make(map[string]string)
	for _, env := range s.environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}

		if s.prefix != "" {
			if !strings.HasPrefix(key, s.prefix) {
				continue
			}
			key = strings.TrimPrefix(key, s.prefix)
		}

		if s.lowercase {
			key = strings.ToLower(key)
		}

		config[key] = value
	}

	return config, nil
}

// MapSource serves a fixed set of values, typically explicit command-line flags.
type MapSource struct {
	values map[string]string
}

// NewMapSource copies values into a new MapSource.
func NewMapSource(values map[string]string) *MapSource {
	copied := make(map[string]string, len(values))
	for k, v := range values {
		copied[k] = v
	}
	return &MapSource{values: copied}
}

// Load returns a copy of the configured values.
func (s *MapSource) Load(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out := make(map[string]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}
