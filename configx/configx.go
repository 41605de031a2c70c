// Package configx provides layered configuration loading for hatch.
//
// Overview:
//   - Responsibility: Merge configuration sources and bind them into tagged structs
//   - Key Types: Source interface, EnvOptions, Settings
//   - Concurrency Model: Load is safe for concurrent use; sources must be thread-safe
//   - Error Semantics: Load returns INVALID_ARGUMENT for binding and validation failures
//   - Performance Notes: Sources are read once per Load call
//
// Usage:
//
//	var settings configx.Settings
//	err := configx.Load(ctx, &settings,
//	  configx.NewEnvSource(configx.EnvOptions{Prefix: "HATCH_"}),
//	  configx.NewMapSource(flagValues),
//	)
package configx

import (
	"context"
	"fmt"

	"go.eggybyte.com/hatch/configx/internal"
	"go.eggybyte.com/hatch/core/errors"
)

// Source describes a configuration source that returns a snapshot of key-value pairs.
// Implementations must be thread-safe and honor context cancellation.
type Source interface {
	Load(ctx context.Context) (map[string]string, error)
}

// EnvOptions configures environment variable source behavior.
type EnvOptions struct {
	Prefix    string
	Lowercase bool
}

// NewEnvSource creates an environment variable configuration source.
func NewEnvSource(opts EnvOptions) Source {
	return internal.NewEnvSource(internal.EnvOptions{
		Prefix:    opts.Prefix,
		Lowercase: opts.Lowercase,
	})
}

// NewMapSource creates a source serving a fixed set of values.
func NewMapSource(values map[string]string) Source {
	return internal.NewMapSource(values)
}

// Merge loads every source in order. Later sources override earlier ones.
func Merge(ctx context.Context, sources ...Source) (map[string]string, error) {
	merged := make(map[string]string)
	for i, src := range sources {
		snapshot, err := src.Load(ctx)
		if err != nil {
			return nil, fmt.Errorf("load source %d: %w", i, err)
		}
		for k, v := range snapshot {
			merged[k] = v
		}
	}
	return merged, nil
}

// Load merges sources, binds the result into target and validates it.
//
// Parameters:
//   - ctx: context for source loading
//   - target: pointer to a struct carrying env, default and validate tags
//   - sources: configuration sources, later sources win
//
// Returns:
//   - error: source failure, or INVALID_ARGUMENT when binding or validation fails
//
// Concurrency:
//   - Safe to call from multiple goroutines with distinct targets
func Load(ctx context.Context, target any, sources ...Source) error {
	snapshot, err := Merge(ctx, sources...)
	if err != nil {
		return err
	}

	if err := internal.BindToStruct(snapshot, target); err != nil {
		return errors.Wrap(errors.CodeInvalidArgument, "configx.bind", err)
	}

	if err := ValidateStruct(NewValidator(), target); err != nil {
		return errors.Wrap(errors.CodeInvalidArgument, "configx.validate", err)
	}

	return nil
}
