// Package configx loads hatch process settings from layered sources.
//
// # Overview
//
// configx reads the environment and explicit command-line values, merges them
// with last-wins semantics, and binds the result into structs through env and
// default tags. Bound structs are then checked with validator tags.
//
// # Usage
//
//	var s configx.Settings
//	if err := configx.Load(ctx, &s, configx.NewEnvSource(configx.EnvOptions{Prefix: configx.EnvPrefix})); err != nil {
//		return err
//	}
//
// # Layer
//
// configx depends on core only.
package configx
